package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/lumenworks/agency-service/internal/domain"
)

// ContactNoteRepository manages append-only internal notes.
type ContactNoteRepository interface {
	Create(ctx context.Context, note *domain.ContactNote) error
	ListByContact(ctx context.Context, contactID string) ([]domain.ContactNote, error)
}

// ContactResponseRepository manages append-only outbound responses.
type ContactResponseRepository interface {
	Create(ctx context.Context, response *domain.ContactResponse) error
	ListByContact(ctx context.Context, contactID string) ([]domain.ContactResponse, error)
}

type contactNoteRepository struct {
	pool *pgxpool.Pool
}

// NewContactNoteRepository builds the repository.
func NewContactNoteRepository(pool *pgxpool.Pool) ContactNoteRepository {
	return &contactNoteRepository{pool: pool}
}

func (r *contactNoteRepository) Create(ctx context.Context, note *domain.ContactNote) error {
	const query = `
        INSERT INTO contact_notes (contact_id, text, author)
        VALUES ($1,$2,$3)
        RETURNING id, created_at`
	return r.pool.QueryRow(ctx, query,
		note.ContactID,
		note.Text,
		note.Author,
	).Scan(&note.ID, &note.CreatedAt)
}

func (r *contactNoteRepository) ListByContact(ctx context.Context, contactID string) ([]domain.ContactNote, error) {
	const query = `
        SELECT id, contact_id, text, author, created_at
        FROM contact_notes WHERE contact_id=$1 ORDER BY created_at ASC`
	rows, err := r.pool.Query(ctx, query, contactID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.ContactNote
	for rows.Next() {
		var note domain.ContactNote
		if err := rows.Scan(&note.ID, &note.ContactID, &note.Text, &note.Author, &note.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, note)
	}
	return result, rows.Err()
}

type contactResponseRepository struct {
	pool *pgxpool.Pool
}

// NewContactResponseRepository builds the repository.
func NewContactResponseRepository(pool *pgxpool.Pool) ContactResponseRepository {
	return &contactResponseRepository{pool: pool}
}

func (r *contactResponseRepository) Create(ctx context.Context, response *domain.ContactResponse) error {
	const query = `
        INSERT INTO contact_responses (contact_id, message, method, author)
        VALUES ($1,$2,$3,$4)
        RETURNING id, created_at`
	return r.pool.QueryRow(ctx, query,
		response.ContactID,
		response.Message,
		response.Method,
		response.Author,
	).Scan(&response.ID, &response.CreatedAt)
}

func (r *contactResponseRepository) ListByContact(ctx context.Context, contactID string) ([]domain.ContactResponse, error) {
	const query = `
        SELECT id, contact_id, message, method, author, created_at
        FROM contact_responses WHERE contact_id=$1 ORDER BY created_at ASC`
	rows, err := r.pool.Query(ctx, query, contactID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.ContactResponse
	for rows.Next() {
		var response domain.ContactResponse
		if err := rows.Scan(&response.ID, &response.ContactID, &response.Message, &response.Method, &response.Author, &response.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, response)
	}
	return result, rows.Err()
}
