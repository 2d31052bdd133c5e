package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/lumenworks/agency-service/internal/domain"
)

// ServiceFilter captures catalog listing parameters.
type ServiceFilter struct {
	Category   *domain.ServiceCategory
	IsActive   *bool
	IsFeatured *bool
	SearchTerm *string
	SortBy     string
	SortDesc   bool
	Limit      int
	Offset     int
}

// ServiceCategoryCount is one row of the category breakdown.
type ServiceCategoryCount struct {
	Category string
	Count    int64
}

// ServiceStats is the on-demand reporting rollup for the catalog.
type ServiceStats struct {
	Total          int64
	ActiveCount    int64
	FeaturedCount  int64
	TotalViews     int64
	TotalInquiries int64
	ByCategory     []ServiceCategoryCount
}

// ServiceRepository encapsulates catalog persistence.
type ServiceRepository interface {
	Create(ctx context.Context, svc *domain.Service) error
	Update(ctx context.Context, svc *domain.Service) error
	GetByID(ctx context.Context, id string) (*domain.Service, error)
	GetBySlug(ctx context.Context, slug string) (*domain.Service, error)
	List(ctx context.Context, filter ServiceFilter) ([]domain.Service, int64, error)
	Delete(ctx context.Context, id string) error
	IncrementViews(ctx context.Context, slug string) error
	IncrementInquiries(ctx context.Context, id string) error
	Stats(ctx context.Context) (*ServiceStats, error)
}

type serviceRepository struct {
	pool *pgxpool.Pool
}

// NewServiceRepository instantiates the repository.
func NewServiceRepository(pool *pgxpool.Pool) ServiceRepository {
	return &serviceRepository{pool: pool}
}

const serviceColumns = `id, title, slug, short_description, description, category, icon, image,
        features, benefits, pricing, process, technologies, faqs, testimonials,
        related_services, is_active, is_featured, display_order, views, inquiries,
        created_by, updated_by, created_at, updated_at`

func (r *serviceRepository) Create(ctx context.Context, svc *domain.Service) error {
	const query = `
        INSERT INTO services (title, slug, short_description, description, category, icon, image,
            features, benefits, pricing, process, technologies, faqs, testimonials,
            related_services, is_active, is_featured, display_order, created_by, updated_by)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,$19,$20)
        RETURNING id, views, inquiries, created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		svc.Title,
		svc.Slug,
		svc.ShortDescription,
		svc.Description,
		svc.Category,
		svc.Icon,
		svc.Image,
		svc.Features,
		svc.Benefits,
		svc.Pricing,
		svc.Process,
		svc.Technologies,
		svc.FAQs,
		svc.Testimonials,
		svc.RelatedServices,
		svc.IsActive,
		svc.IsFeatured,
		svc.DisplayOrder,
		svc.CreatedBy,
		svc.UpdatedBy,
	).Scan(&svc.ID, &svc.Views, &svc.Inquiries, &svc.CreatedAt, &svc.UpdatedAt)
}

func (r *serviceRepository) Update(ctx context.Context, svc *domain.Service) error {
	const query = `
        UPDATE services SET title=$1, slug=$2, short_description=$3, description=$4, category=$5,
            icon=$6, image=$7, features=$8, benefits=$9, pricing=$10, process=$11,
            technologies=$12, faqs=$13, testimonials=$14, related_services=$15,
            is_active=$16, is_featured=$17, display_order=$18, updated_by=$19, updated_at=NOW()
        WHERE id=$20`
	cmd, err := r.pool.Exec(ctx, query,
		svc.Title,
		svc.Slug,
		svc.ShortDescription,
		svc.Description,
		svc.Category,
		svc.Icon,
		svc.Image,
		svc.Features,
		svc.Benefits,
		svc.Pricing,
		svc.Process,
		svc.Technologies,
		svc.FAQs,
		svc.Testimonials,
		svc.RelatedServices,
		svc.IsActive,
		svc.IsFeatured,
		svc.DisplayOrder,
		svc.UpdatedBy,
		svc.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *serviceRepository) GetByID(ctx context.Context, id string) (*domain.Service, error) {
	query := fmt.Sprintf(`SELECT %s FROM services WHERE id=$1`, serviceColumns)
	return r.fetchSingle(ctx, query, id)
}

func (r *serviceRepository) GetBySlug(ctx context.Context, slug string) (*domain.Service, error) {
	query := fmt.Sprintf(`SELECT %s FROM services WHERE slug=$1`, serviceColumns)
	return r.fetchSingle(ctx, query, slug)
}

func (r *serviceRepository) fetchSingle(ctx context.Context, query string, arg any) (*domain.Service, error) {
	var svc domain.Service
	if err := r.pool.QueryRow(ctx, query, arg).Scan(serviceScanTargets(&svc)...); err != nil {
		return nil, err
	}
	return &svc, nil
}

var serviceSortColumns = map[string]string{
	"created_at":    "created_at",
	"updated_at":    "updated_at",
	"title":         "title",
	"display_order": "display_order",
	"views":         "views",
}

func (r *serviceRepository) List(ctx context.Context, filter ServiceFilter) ([]domain.Service, int64, error) {
	clauses := []string{"1=1"}
	args := []any{}

	if filter.Category != nil {
		args = append(args, *filter.Category)
		clauses = append(clauses, fmt.Sprintf("category=$%d", len(args)))
	}
	if filter.IsActive != nil {
		args = append(args, *filter.IsActive)
		clauses = append(clauses, fmt.Sprintf("is_active=$%d", len(args)))
	}
	if filter.IsFeatured != nil {
		args = append(args, *filter.IsFeatured)
		clauses = append(clauses, fmt.Sprintf("is_featured=$%d", len(args)))
	}
	if filter.SearchTerm != nil && strings.TrimSpace(*filter.SearchTerm) != "" {
		args = append(args, "%"+strings.ToLower(strings.TrimSpace(*filter.SearchTerm))+"%")
		placeholder := fmt.Sprintf("$%d", len(args))
		clauses = append(clauses, fmt.Sprintf(
			"(LOWER(title) LIKE %s OR LOWER(short_description) LIKE %s)", placeholder, placeholder))
	}

	where := strings.Join(clauses, " AND ")

	var total int64
	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM services WHERE %s`, where)
	if err := r.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	order := orderClause(serviceSortColumns, filter.SortBy, filter.SortDesc)
	if filter.SortBy == "" {
		order = "display_order ASC, created_at DESC"
	}

	query := fmt.Sprintf(`SELECT %s FROM services WHERE %s ORDER BY %s LIMIT %d OFFSET %d`,
		serviceColumns, where, order, PageSize(filter.Limit), normalizeOffset(filter.Offset))

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var result []domain.Service
	for rows.Next() {
		var svc domain.Service
		if err := rows.Scan(serviceScanTargets(&svc)...); err != nil {
			return nil, 0, err
		}
		result = append(result, svc)
	}
	return result, total, rows.Err()
}

func (r *serviceRepository) Delete(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM services WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

// IncrementViews bumps the public view counter. The update is atomic at the
// store, so concurrent detail fetches never lose increments.
func (r *serviceRepository) IncrementViews(ctx context.Context, slug string) error {
	_, err := r.pool.Exec(ctx, `UPDATE services SET views = views + 1 WHERE slug=$1`, slug)
	return err
}

// IncrementInquiries bumps the inquiry counter when a contact references the service.
func (r *serviceRepository) IncrementInquiries(ctx context.Context, id string) error {
	_, err := r.pool.Exec(ctx, `UPDATE services SET inquiries = inquiries + 1 WHERE id=$1`, id)
	return err
}

func (r *serviceRepository) Stats(ctx context.Context) (*ServiceStats, error) {
	stats := &ServiceStats{}

	const overview = `
        SELECT COUNT(*),
               COUNT(*) FILTER (WHERE is_active),
               COUNT(*) FILTER (WHERE is_featured),
               COALESCE(SUM(views), 0),
               COALESCE(SUM(inquiries), 0)
        FROM services`
	if err := r.pool.QueryRow(ctx, overview).Scan(
		&stats.Total,
		&stats.ActiveCount,
		&stats.FeaturedCount,
		&stats.TotalViews,
		&stats.TotalInquiries,
	); err != nil {
		return nil, err
	}

	const byCategory = `SELECT category, COUNT(*) FROM services GROUP BY category ORDER BY COUNT(*) DESC`
	rows, err := r.pool.Query(ctx, byCategory)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var row ServiceCategoryCount
		if err := rows.Scan(&row.Category, &row.Count); err != nil {
			return nil, err
		}
		stats.ByCategory = append(stats.ByCategory, row)
	}
	return stats, rows.Err()
}

func serviceScanTargets(s *domain.Service) []any {
	return []any{
		&s.ID,
		&s.Title,
		&s.Slug,
		&s.ShortDescription,
		&s.Description,
		&s.Category,
		&s.Icon,
		&s.Image,
		&s.Features,
		&s.Benefits,
		&s.Pricing,
		&s.Process,
		&s.Technologies,
		&s.FAQs,
		&s.Testimonials,
		&s.RelatedServices,
		&s.IsActive,
		&s.IsFeatured,
		&s.DisplayOrder,
		&s.Views,
		&s.Inquiries,
		&s.CreatedBy,
		&s.UpdatedBy,
		&s.CreatedAt,
		&s.UpdatedAt,
	}
}
