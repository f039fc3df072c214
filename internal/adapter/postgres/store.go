package postgres

import (
	"context"
	"fmt"

	"github.com/YelzhanWeb/goodplatters/internal/domain"
	"github.com/YelzhanWeb/goodplatters/internal/interfaces"
)

// Store is the PostgreSQL record store.
type Store struct {
	db DB

	menu         interfaces.MenuRepository
	reservations interfaces.ReservationRepository
	inquiries    interfaces.InquiryRepository
	settings     interfaces.SettingsRepository
	values       interfaces.ValueRepository
}

var _ interfaces.Store = (*Store)(nil)

func NewStore(db DB) *Store {
	return &Store{
		db:           db,
		menu:         NewMenuRepository(db),
		reservations: NewReservationRepository(db),
		inquiries:    NewInquiryRepository(db),
		settings:     NewSettingsRepository(db),
		values:       NewValueRepository(db),
	}
}

func (s *Store) Menu() interfaces.MenuRepository                { return s.menu }
func (s *Store) Reservations() interfaces.ReservationRepository { return s.reservations }
func (s *Store) Inquiries() interfaces.InquiryRepository        { return s.inquiries }
func (s *Store) Settings() interfaces.SettingsRepository        { return s.settings }
func (s *Store) Values() interfaces.ValueRepository             { return s.values }

func (s *Store) Ping(ctx context.Context) error {
	return s.db.Ping(ctx)
}

func (s *Store) Close() error {
	s.db.Close()
	return nil
}

// ReplaceAll swaps menu, reservations, inquiries and settings in one
// transaction. Records that survive the swap get their version bumped.
func (s *Store) ReplaceAll(ctx context.Context, snapshot *domain.Snapshot) error {
	err := inTx(ctx, s.db, func(tx Tx) error {
		menuVersions, err := versionsByID(ctx, tx, `SELECT id, version FROM menu_items`)
		if err != nil {
			return err
		}
		reservationVersions, err := versionsByID(ctx, tx, `SELECT id, version FROM reservations`)
		if err != nil {
			return err
		}

		if _, err := tx.Exec(ctx, `DELETE FROM menu_items`); err != nil {
			return err
		}
		if _, err := tx.Exec(ctx, `DELETE FROM reservations`); err != nil {
			return err
		}
		if _, err := tx.Exec(ctx, `DELETE FROM inquiries`); err != nil {
			return err
		}

		for i, item := range snapshot.Menu {
			version := menuVersions[item.ID] + 1
			err := tx.QueryRow(ctx, `
				INSERT INTO menu_items (id, position, name, category, price, description, dietary_tags, image, chef_special, version, updated_at)
				VALUES ($1, $2, $3, $4, $5::numeric, $6, $7, $8, $9, $10, now())
				RETURNING updated_at`,
				item.ID, i+1, item.Name, item.Category, item.Price.String(), item.Description,
				tags(item.DietaryTags), item.Image, item.ChefSpecial, version,
			).Scan(&item.UpdatedAt)
			if err != nil {
				return fmt.Errorf("menu item %s: %w", item.ID, err)
			}
			item.Version = version
		}

		for _, r := range snapshot.Reservations {
			version := reservationVersions[r.ID] + 1
			if err := insertReservation(ctx, tx, r, version); err != nil {
				return fmt.Errorf("reservation %s: %w", r.ID, err)
			}
			r.Version = version
		}

		for _, inq := range snapshot.Inquiries {
			if err := insertInquiry(ctx, tx, inq); err != nil {
				return fmt.Errorf("inquiry %s: %w", inq.ID, err)
			}
		}

		version, err := saveSettings(ctx, tx, snapshot.Settings, false)
		if err != nil {
			return err
		}
		snapshot.Settings.Version = version
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to replace content: %w", err)
	}
	return nil
}

func versionsByID(ctx context.Context, q Querier, query string) (map[string]int64, error) {
	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[string]int64)
	for rows.Next() {
		var (
			id      string
			version int64
		)
		if err := rows.Scan(&id, &version); err != nil {
			return nil, err
		}
		out[id] = version
	}
	return out, rows.Err()
}
