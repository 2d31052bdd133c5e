package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/lumenworks/agency-service/internal/domain"
)

// OrderFilter captures admin listing parameters.
type OrderFilter struct {
	Status     *domain.OrderStatus
	Priority   *domain.Priority
	ServiceID  *string
	AssignedTo *string
	CreatedBy  *string
	SearchTerm *string
	SortBy     string
	SortDesc   bool
	Limit      int
	Offset     int
}

// OrderBreakdownRow is one row of a categorical breakdown with revenue.
type OrderBreakdownRow struct {
	Key     string
	Count   int64
	Revenue float64
}

// OrderMonthRow is one (year, month) bucket with revenue.
type OrderMonthRow struct {
	Year    int
	Month   int
	Count   int64
	Revenue float64
}

// OrderStats is the on-demand reporting rollup for orders.
type OrderStats struct {
	Total         int64
	TotalRevenue  float64
	AvgOrderValue float64
	ByStatus      []OrderBreakdownRow
	ByPriority    []OrderBreakdownRow
	MonthlySeries []OrderMonthRow
}

// OrderRepository encapsulates order persistence.
type OrderRepository interface {
	Create(ctx context.Context, order *domain.Order) error
	Update(ctx context.Context, order *domain.Order) error
	GetByID(ctx context.Context, id string) (*domain.Order, error)
	List(ctx context.Context, filter OrderFilter) ([]domain.Order, int64, error)
	Delete(ctx context.Context, id string) error
	CountCreatedBetween(ctx context.Context, from, to time.Time) (int64, error)
	Stats(ctx context.Context) (*OrderStats, error)
}

type orderRepository struct {
	pool *pgxpool.Pool
}

// NewOrderRepository instantiates the repository.
func NewOrderRepository(pool *pgxpool.Pool) OrderRepository {
	return &orderRepository{pool: pool}
}

const orderColumns = `id, order_number, customer, service_id, service_details, package,
        requirements, pricing, status, priority, timeline, communication, files,
        payment, assigned_to, created_by, updated_by, source, tags, notes,
        created_at, updated_at`

func (r *orderRepository) Create(ctx context.Context, order *domain.Order) error {
	const query = `
        INSERT INTO orders (order_number, customer, service_id, service_details, package,
            requirements, pricing, status, priority, timeline, communication, files,
            payment, assigned_to, created_by, updated_by, source, tags, notes)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,$19)
        RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		order.OrderNumber,
		order.Customer,
		order.ServiceID,
		order.ServiceDetails,
		order.Package,
		order.Requirements,
		order.Pricing,
		order.Status,
		order.Priority,
		order.Timeline,
		order.Communication,
		order.Files,
		order.Payment,
		order.AssignedTo,
		order.CreatedBy,
		order.UpdatedBy,
		order.Source,
		order.Tags,
		order.Notes,
	).Scan(&order.ID, &order.CreatedAt, &order.UpdatedAt)
}

func (r *orderRepository) Update(ctx context.Context, order *domain.Order) error {
	// order_number, service_details and created_by are immutable after creation.
	const query = `
        UPDATE orders SET customer=$1, package=$2, requirements=$3, pricing=$4, status=$5,
            priority=$6, timeline=$7, communication=$8, files=$9, payment=$10,
            assigned_to=$11, updated_by=$12, source=$13, tags=$14, notes=$15, updated_at=NOW()
        WHERE id=$16`
	cmd, err := r.pool.Exec(ctx, query,
		order.Customer,
		order.Package,
		order.Requirements,
		order.Pricing,
		order.Status,
		order.Priority,
		order.Timeline,
		order.Communication,
		order.Files,
		order.Payment,
		order.AssignedTo,
		order.UpdatedBy,
		order.Source,
		order.Tags,
		order.Notes,
		order.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *orderRepository) GetByID(ctx context.Context, id string) (*domain.Order, error) {
	query := fmt.Sprintf(`SELECT %s FROM orders WHERE id=$1`, orderColumns)
	var order domain.Order
	if err := r.pool.QueryRow(ctx, query, id).Scan(orderScanTargets(&order)...); err != nil {
		return nil, err
	}
	return &order, nil
}

var orderSortColumns = map[string]string{
	"created_at":   "created_at",
	"updated_at":   "updated_at",
	"order_number": "order_number",
	"status":       "status",
	"priority":     "priority",
}

func (r *orderRepository) List(ctx context.Context, filter OrderFilter) ([]domain.Order, int64, error) {
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
	if filter.ServiceID != nil {
		args = append(args, *filter.ServiceID)
		clauses = append(clauses, fmt.Sprintf("service_id=$%d", len(args)))
	}
	if filter.AssignedTo != nil {
		args = append(args, *filter.AssignedTo)
		clauses = append(clauses, fmt.Sprintf("assigned_to=$%d", len(args)))
	}
	if filter.CreatedBy != nil {
		args = append(args, *filter.CreatedBy)
		clauses = append(clauses, fmt.Sprintf("created_by=$%d", len(args)))
	}
	if filter.SearchTerm != nil && strings.TrimSpace(*filter.SearchTerm) != "" {
		args = append(args, "%"+strings.ToLower(strings.TrimSpace(*filter.SearchTerm))+"%")
		placeholder := fmt.Sprintf("$%d", len(args))
		clauses = append(clauses, fmt.Sprintf(
			"(LOWER(order_number) LIKE %s OR LOWER(customer->>'name') LIKE %s OR LOWER(customer->>'email') LIKE %s)",
			placeholder, placeholder, placeholder))
	}

	where := strings.Join(clauses, " AND ")

	var total int64
	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM orders WHERE %s`, where)
	if err := r.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := fmt.Sprintf(`SELECT %s FROM orders WHERE %s ORDER BY %s LIMIT %d OFFSET %d`,
		orderColumns, where, orderClause(orderSortColumns, filter.SortBy, filter.SortDesc),
		PageSize(filter.Limit), normalizeOffset(filter.Offset))

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var result []domain.Order
	for rows.Next() {
		var order domain.Order
		if err := rows.Scan(orderScanTargets(&order)...); err != nil {
			return nil, 0, err
		}
		result = append(result, order)
	}
	return result, total, rows.Err()
}

func (r *orderRepository) Delete(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM orders WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *orderRepository) CountCreatedBetween(ctx context.Context, from, to time.Time) (int64, error) {
	var count int64
	const query = `SELECT COUNT(*) FROM orders WHERE created_at >= $1 AND created_at < $2`
	if err := r.pool.QueryRow(ctx, query, from, to).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

func (r *orderRepository) Stats(ctx context.Context) (*OrderStats, error) {
	stats := &OrderStats{}

	const overview = `
        SELECT COUNT(*),
               COALESCE(SUM((pricing->>'total_price')::numeric), 0),
               COALESCE(AVG((pricing->>'total_price')::numeric), 0)
        FROM orders`
	if err := r.pool.QueryRow(ctx, overview).Scan(&stats.Total, &stats.TotalRevenue, &stats.AvgOrderValue); err != nil {
		return nil, err
	}

	byStatus, err := r.breakdown(ctx, "status")
	if err != nil {
		return nil, err
	}
	stats.ByStatus = byStatus

	byPriority, err := r.breakdown(ctx, "priority")
	if err != nil {
		return nil, err
	}
	stats.ByPriority = byPriority

	const series = `
        SELECT EXTRACT(YEAR FROM created_at)::int,
               EXTRACT(MONTH FROM created_at)::int,
               COUNT(*),
               COALESCE(SUM((pricing->>'total_price')::numeric), 0)
        FROM orders
        GROUP BY 1, 2
        ORDER BY 1 DESC, 2 DESC
        LIMIT 12`
	rows, err := r.pool.Query(ctx, series)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var bucket OrderMonthRow
		if err := rows.Scan(&bucket.Year, &bucket.Month, &bucket.Count, &bucket.Revenue); err != nil {
			return nil, err
		}
		stats.MonthlySeries = append(stats.MonthlySeries, bucket)
	}
	return stats, rows.Err()
}

func (r *orderRepository) breakdown(ctx context.Context, column string) ([]OrderBreakdownRow, error) {
	query := fmt.Sprintf(`
        SELECT %s, COUNT(*), COALESCE(SUM((pricing->>'total_price')::numeric), 0)
        FROM orders GROUP BY %s ORDER BY COUNT(*) DESC`, column, column)
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []OrderBreakdownRow
	for rows.Next() {
		var row OrderBreakdownRow
		if err := rows.Scan(&row.Key, &row.Count, &row.Revenue); err != nil {
			return nil, err
		}
		result = append(result, row)
	}
	return result, rows.Err()
}

func orderScanTargets(o *domain.Order) []any {
	return []any{
		&o.ID,
		&o.OrderNumber,
		&o.Customer,
		&o.ServiceID,
		&o.ServiceDetails,
		&o.Package,
		&o.Requirements,
		&o.Pricing,
		&o.Status,
		&o.Priority,
		&o.Timeline,
		&o.Communication,
		&o.Files,
		&o.Payment,
		&o.AssignedTo,
		&o.CreatedBy,
		&o.UpdatedBy,
		&o.Source,
		&o.Tags,
		&o.Notes,
		&o.CreatedAt,
		&o.UpdatedAt,
	}
}
