package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/lumenworks/agency-service/internal/domain"
)

// OrderMessageRepository manages the order message thread.
type OrderMessageRepository interface {
	Create(ctx context.Context, msg *domain.OrderMessage) error
	ListByOrder(ctx context.Context, orderID string) ([]domain.OrderMessage, error)
	MarkRead(ctx context.Context, orderID string, sender domain.MessageSender) error
}

type orderMessageRepository struct {
	pool *pgxpool.Pool
}

// NewOrderMessageRepository builds the repository.
func NewOrderMessageRepository(pool *pgxpool.Pool) OrderMessageRepository {
	return &orderMessageRepository{pool: pool}
}

func (r *orderMessageRepository) Create(ctx context.Context, msg *domain.OrderMessage) error {
	const query = `
        INSERT INTO order_messages (order_id, sender, message, read)
        VALUES ($1,$2,$3,$4)
        RETURNING id, created_at`
	return r.pool.QueryRow(ctx, query,
		msg.OrderID,
		msg.Sender,
		msg.Message,
		msg.Read,
	).Scan(&msg.ID, &msg.CreatedAt)
}

func (r *orderMessageRepository) ListByOrder(ctx context.Context, orderID string) ([]domain.OrderMessage, error) {
	const query = `
        SELECT id, order_id, sender, message, read, created_at
        FROM order_messages WHERE order_id=$1 ORDER BY created_at ASC`
	rows, err := r.pool.Query(ctx, query, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.OrderMessage
	for rows.Next() {
		var msg domain.OrderMessage
		if err := rows.Scan(&msg.ID, &msg.OrderID, &msg.Sender, &msg.Message, &msg.Read, &msg.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, msg)
	}
	return result, rows.Err()
}

// MarkRead flags messages authored by the given sender as read, used when
// the counterparty opens the thread.
func (r *orderMessageRepository) MarkRead(ctx context.Context, orderID string, sender domain.MessageSender) error {
	const query = `UPDATE order_messages SET read=true WHERE order_id=$1 AND sender=$2 AND read=false`
	_, err := r.pool.Exec(ctx, query, orderID, sender)
	return err
}
