package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/YelzhanWeb/goodplatters/internal/domain"
	"github.com/YelzhanWeb/goodplatters/internal/interfaces"
)

type reservationRepository struct {
	db DB
}

func NewReservationRepository(db DB) interfaces.ReservationRepository {
	return &reservationRepository{db: db}
}

const reservationColumns = `id, date, time, guests, name, email, phone, status, special_requests, created_at, version`

func scanReservation(row Row) (*domain.Reservation, error) {
	var r domain.Reservation
	if err := row.Scan(&r.ID, &r.Date, &r.Time, &r.Guests, &r.Name, &r.Email, &r.Phone,
		&r.Status, &r.SpecialRequests, &r.CreatedAt, &r.Version); err != nil {
		return nil, err
	}
	r.CreatedAt = r.CreatedAt.UTC()
	return &r, nil
}

func insertReservation(ctx context.Context, q Querier, r *domain.Reservation, version int64) error {
	_, err := q.Exec(ctx, `
		INSERT INTO reservations (id, date, time, guests, name, email, phone, status, special_requests, created_at, version)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		r.ID, r.Date, r.Time, r.Guests, r.Name, r.Email, r.Phone,
		string(r.Status), r.SpecialRequests, r.CreatedAt, version,
	)
	return err
}

func (r *reservationRepository) Create(ctx context.Context, reservation *domain.Reservation) error {
	err := insertReservation(ctx, r.db, reservation, 1)
	if isUniqueViolation(err) {
		return domain.ErrAlreadyExists
	}
	if err != nil {
		return fmt.Errorf("failed to create reservation: %w", err)
	}
	reservation.Version = 1
	return nil
}

// List returns reservations newest first.
func (r *reservationRepository) List(ctx context.Context) ([]*domain.Reservation, error) {
	rows, err := r.db.Query(ctx, `SELECT `+reservationColumns+` FROM reservations ORDER BY created_at DESC, id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list reservations: %w", err)
	}
	defer rows.Close()

	out := []*domain.Reservation{}
	for rows.Next() {
		reservation, err := scanReservation(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan reservation: %w", err)
		}
		out = append(out, reservation)
	}
	return out, rows.Err()
}

func (r *reservationRepository) Get(ctx context.Context, id string) (*domain.Reservation, error) {
	reservation, err := scanReservation(r.db.QueryRow(ctx, `SELECT `+reservationColumns+` FROM reservations WHERE id = $1`, id))
	if isNoRows(err) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get reservation: %w", err)
	}
	return reservation, nil
}

// Put inserts or replaces by id.
func (r *reservationRepository) Put(ctx context.Context, reservation *domain.Reservation) error {
	var version int64

	err := inTx(ctx, r.db, func(tx Tx) error {
		var current int64
		err := tx.QueryRow(ctx, `SELECT version FROM reservations WHERE id = $1 FOR UPDATE`, reservation.ID).Scan(&current)
		if isNoRows(err) {
			version = 1
			return insertReservation(ctx, tx, reservation, 1)
		}
		if err != nil {
			return err
		}

		if reservation.Version != 0 && reservation.Version != current {
			return domain.ErrVersionConflict
		}

		_, err = tx.Exec(ctx, `
			UPDATE reservations
			SET date = $2, time = $3, guests = $4, name = $5, email = $6, phone = $7,
			    status = $8, special_requests = $9, created_at = $10, version = version + 1
			WHERE id = $1`,
			reservation.ID, reservation.Date, reservation.Time, reservation.Guests, reservation.Name,
			reservation.Email, reservation.Phone, string(reservation.Status), reservation.SpecialRequests,
			reservation.CreatedAt,
		)
		version = current + 1
		return err
	})
	if errors.Is(err, domain.ErrVersionConflict) {
		return err
	}
	if err != nil {
		return fmt.Errorf("failed to put reservation: %w", err)
	}

	reservation.Version = version
	return nil
}
