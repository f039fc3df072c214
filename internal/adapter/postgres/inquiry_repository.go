package postgres

import (
	"context"
	"fmt"

	"github.com/YelzhanWeb/goodplatters/internal/domain"
	"github.com/YelzhanWeb/goodplatters/internal/interfaces"
)

type inquiryRepository struct {
	db DB
}

func NewInquiryRepository(db DB) interfaces.InquiryRepository {
	return &inquiryRepository{db: db}
}

const inquiryColumns = `id, name, email, subject, message, date`

func scanInquiry(row Row) (*domain.Inquiry, error) {
	var inq domain.Inquiry
	if err := row.Scan(&inq.ID, &inq.Name, &inq.Email, &inq.Subject, &inq.Message, &inq.Date); err != nil {
		return nil, err
	}
	inq.Date = inq.Date.UTC()
	return &inq, nil
}

func insertInquiry(ctx context.Context, q Querier, inq *domain.Inquiry) error {
	_, err := q.Exec(ctx, `
		INSERT INTO inquiries (id, name, email, subject, message, date)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		inq.ID, inq.Name, inq.Email, inq.Subject, inq.Message, inq.Date,
	)
	return err
}

func (r *inquiryRepository) Create(ctx context.Context, inq *domain.Inquiry) error {
	err := insertInquiry(ctx, r.db, inq)
	if isUniqueViolation(err) {
		return domain.ErrAlreadyExists
	}
	if err != nil {
		return fmt.Errorf("failed to create inquiry: %w", err)
	}
	return nil
}

// List returns inquiries newest first.
func (r *inquiryRepository) List(ctx context.Context) ([]*domain.Inquiry, error) {
	rows, err := r.db.Query(ctx, `SELECT `+inquiryColumns+` FROM inquiries ORDER BY date DESC, id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list inquiries: %w", err)
	}
	defer rows.Close()

	out := []*domain.Inquiry{}
	for rows.Next() {
		inq, err := scanInquiry(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan inquiry: %w", err)
		}
		out = append(out, inq)
	}
	return out, rows.Err()
}

func (r *inquiryRepository) Get(ctx context.Context, id string) (*domain.Inquiry, error) {
	inq, err := scanInquiry(r.db.QueryRow(ctx, `SELECT `+inquiryColumns+` FROM inquiries WHERE id = $1`, id))
	if isNoRows(err) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get inquiry: %w", err)
	}
	return inq, nil
}

func (r *inquiryRepository) Delete(ctx context.Context, id string) error {
	if _, err := r.db.Exec(ctx, `DELETE FROM inquiries WHERE id = $1`, id); err != nil {
		return fmt.Errorf("failed to delete inquiry: %w", err)
	}
	return nil
}
