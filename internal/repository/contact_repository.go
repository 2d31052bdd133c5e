package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/lumenworks/agency-service/internal/domain"
)

// ContactFilter captures admin listing parameters.
type ContactFilter struct {
	Status     *domain.ContactStatus
	Priority   *domain.Priority
	Source     *domain.ContactSource
	AssignedTo *string
	IsSpam     *bool
	SearchTerm *string
	SortBy     string
	SortDesc   bool
	Limit      int
	Offset     int
}

// ContactStatusCount is one row of a categorical breakdown.
type ContactStatusCount struct {
	Key   string
	Count int64
}

// ContactMonthCount is one (year, month) bucket of the time series.
type ContactMonthCount struct {
	Year  int
	Month int
	Count int64
}

// ContactStats is the on-demand reporting rollup for contacts.
type ContactStats struct {
	Total         int64
	SpamCount     int64
	AvgSpamScore  float64
	ByStatus      []ContactStatusCount
	BySource      []ContactStatusCount
	MonthlySeries []ContactMonthCount
}

// ContactRepository encapsulates contact persistence.
type ContactRepository interface {
	Create(ctx context.Context, contact *domain.Contact) error
	Update(ctx context.Context, contact *domain.Contact) error
	GetByID(ctx context.Context, id string) (*domain.Contact, error)
	List(ctx context.Context, filter ContactFilter) ([]domain.Contact, int64, error)
	Delete(ctx context.Context, id string) error
	Stats(ctx context.Context) (*ContactStats, error)
}

type contactRepository struct {
	pool *pgxpool.Pool
}

// NewContactRepository instantiates the repository.
func NewContactRepository(pool *pgxpool.Pool) ContactRepository {
	return &contactRepository{pool: pool}
}

const contactColumns = `id, name, email, phone, company, subject, message, service_id,
        budget, timeline, source, status, priority, assigned_to, tags, follow_up,
        ip_address, user_agent, is_spam, spam_score, created_by, updated_by,
        created_at, updated_at`

func (r *contactRepository) Create(ctx context.Context, contact *domain.Contact) error {
	const query = `
        INSERT INTO contacts (name, email, phone, company, subject, message, service_id,
            budget, timeline, source, status, priority, assigned_to, tags, follow_up,
            ip_address, user_agent, is_spam, spam_score, created_by, updated_by)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,$19,$20,$21)
        RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		contact.Name,
		contact.Email,
		contact.Phone,
		contact.Company,
		contact.Subject,
		contact.Message,
		contact.ServiceID,
		contact.Budget,
		contact.Timeline,
		contact.Source,
		contact.Status,
		contact.Priority,
		contact.AssignedTo,
		contact.Tags,
		contact.FollowUp,
		contact.IPAddress,
		contact.UserAgent,
		contact.IsSpam,
		contact.SpamScore,
		contact.CreatedBy,
		contact.UpdatedBy,
	).Scan(&contact.ID, &contact.CreatedAt, &contact.UpdatedAt)
}

func (r *contactRepository) Update(ctx context.Context, contact *domain.Contact) error {
	const query = `
        UPDATE contacts SET name=$1, email=$2, phone=$3, company=$4, subject=$5, message=$6,
            service_id=$7, budget=$8, timeline=$9, source=$10, status=$11, priority=$12,
            assigned_to=$13, tags=$14, follow_up=$15, is_spam=$16, spam_score=$17,
            updated_by=$18, updated_at=NOW()
        WHERE id=$19`
	cmd, err := r.pool.Exec(ctx, query,
		contact.Name,
		contact.Email,
		contact.Phone,
		contact.Company,
		contact.Subject,
		contact.Message,
		contact.ServiceID,
		contact.Budget,
		contact.Timeline,
		contact.Source,
		contact.Status,
		contact.Priority,
		contact.AssignedTo,
		contact.Tags,
		contact.FollowUp,
		contact.IsSpam,
		contact.SpamScore,
		contact.UpdatedBy,
		contact.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *contactRepository) GetByID(ctx context.Context, id string) (*domain.Contact, error) {
	query := fmt.Sprintf(`SELECT %s FROM contacts WHERE id=$1`, contactColumns)
	var contact domain.Contact
	if err := r.pool.QueryRow(ctx, query, id).Scan(contactScanTargets(&contact)...); err != nil {
		return nil, err
	}
	return &contact, nil
}

// contactSearchFields is the fixed set of text columns matched by search.
var contactSearchFields = []string{"name", "email", "subject", "message", "company"}

var contactSortColumns = map[string]string{
	"created_at": "created_at",
	"updated_at": "updated_at",
	"priority":   "priority",
	"status":     "status",
	"spam_score": "spam_score",
}

func (r *contactRepository) List(ctx context.Context, filter ContactFilter) ([]domain.Contact, int64, error) {
	clauses := []string{"1=1"}
	args := []any{}

	if filter.Status != nil {
		args = append(args, *filter.Status)
		clauses = append(clauses, fmt.Sprintf("status=$%d", len(args)))
	}
	if filter.Priority != nil {
		args = append(args, *filter.Priority)
		clauses = append(clauses, fmt.Sprintf("priority=$%d", len(args)))
	}
	if filter.Source != nil {
		args = append(args, *filter.Source)
		clauses = append(clauses, fmt.Sprintf("source=$%d", len(args)))
	}
	if filter.AssignedTo != nil {
		args = append(args, *filter.AssignedTo)
		clauses = append(clauses, fmt.Sprintf("assigned_to=$%d", len(args)))
	}
	if filter.IsSpam != nil {
		args = append(args, *filter.IsSpam)
		clauses = append(clauses, fmt.Sprintf("is_spam=$%d", len(args)))
	}
	if filter.SearchTerm != nil && strings.TrimSpace(*filter.SearchTerm) != "" {
		args = append(args, "%"+strings.ToLower(strings.TrimSpace(*filter.SearchTerm))+"%")
		placeholder := fmt.Sprintf("$%d", len(args))
		matches := make([]string, 0, len(contactSearchFields))
		for _, field := range contactSearchFields {
			matches = append(matches, fmt.Sprintf("LOWER(%s) LIKE %s", field, placeholder))
		}
		clauses = append(clauses, "("+strings.Join(matches, " OR ")+")")
	}

	where := strings.Join(clauses, " AND ")

	var total int64
	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM contacts WHERE %s`, where)
	if err := r.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := fmt.Sprintf(`SELECT %s FROM contacts WHERE %s ORDER BY %s LIMIT %d OFFSET %d`,
		contactColumns, where, orderClause(contactSortColumns, filter.SortBy, filter.SortDesc),
		PageSize(filter.Limit), normalizeOffset(filter.Offset))

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var result []domain.Contact
	for rows.Next() {
		var contact domain.Contact
		if err := rows.Scan(contactScanTargets(&contact)...); err != nil {
			return nil, 0, err
		}
		result = append(result, contact)
	}
	return result, total, rows.Err()
}

func (r *contactRepository) Delete(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM contacts WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *contactRepository) Stats(ctx context.Context) (*ContactStats, error) {
	stats := &ContactStats{}

	const overview = `
        SELECT COUNT(*),
               COUNT(*) FILTER (WHERE is_spam),
               COALESCE(AVG(spam_score), 0)
        FROM contacts`
	if err := r.pool.QueryRow(ctx, overview).Scan(&stats.Total, &stats.SpamCount, &stats.AvgSpamScore); err != nil {
		return nil, err
	}

	byStatus, err := r.breakdown(ctx, "status")
	if err != nil {
		return nil, err
	}
	stats.ByStatus = byStatus

	bySource, err := r.breakdown(ctx, "source")
	if err != nil {
		return nil, err
	}
	stats.BySource = bySource

	const series = `
        SELECT EXTRACT(YEAR FROM created_at)::int,
               EXTRACT(MONTH FROM created_at)::int,
               COUNT(*)
        FROM contacts
        GROUP BY 1, 2
        ORDER BY 1 DESC, 2 DESC
        LIMIT 12`
	rows, err := r.pool.Query(ctx, series)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var bucket ContactMonthCount
		if err := rows.Scan(&bucket.Year, &bucket.Month, &bucket.Count); err != nil {
			return nil, err
		}
		stats.MonthlySeries = append(stats.MonthlySeries, bucket)
	}
	return stats, rows.Err()
}

func (r *contactRepository) breakdown(ctx context.Context, column string) ([]ContactStatusCount, error) {
	query := fmt.Sprintf(`SELECT %s, COUNT(*) FROM contacts GROUP BY %s ORDER BY COUNT(*) DESC`, column, column)
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []ContactStatusCount
	for rows.Next() {
		var row ContactStatusCount
		if err := rows.Scan(&row.Key, &row.Count); err != nil {
			return nil, err
		}
		result = append(result, row)
	}
	return result, rows.Err()
}

func contactScanTargets(c *domain.Contact) []any {
	return []any{
		&c.ID,
		&c.Name,
		&c.Email,
		&c.Phone,
		&c.Company,
		&c.Subject,
		&c.Message,
		&c.ServiceID,
		&c.Budget,
		&c.Timeline,
		&c.Source,
		&c.Status,
		&c.Priority,
		&c.AssignedTo,
		&c.Tags,
		&c.FollowUp,
		&c.IPAddress,
		&c.UserAgent,
		&c.IsSpam,
		&c.SpamScore,
		&c.CreatedBy,
		&c.UpdatedBy,
		&c.CreatedAt,
		&c.UpdatedAt,
	}
}
