package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/YelzhanWeb/goodplatters/internal/domain"
	"github.com/YelzhanWeb/goodplatters/internal/interfaces"
)

type menuRepository struct {
	db DB
}

func NewMenuRepository(db DB) interfaces.MenuRepository {
	return &menuRepository{db: db}
}

const menuColumns = `id, name, category, price::text, description, dietary_tags, image, chef_special, version, updated_at`

func scanMenuItem(row Row) (*domain.MenuItem, error) {
	var (
		item  domain.MenuItem
		price string
	)
	if err := row.Scan(&item.ID, &item.Name, &item.Category, &price, &item.Description,
		&item.DietaryTags, &item.Image, &item.ChefSpecial, &item.Version, &item.UpdatedAt); err != nil {
		return nil, err
	}

	p, err := decimal.NewFromString(price)
	if err != nil {
		return nil, fmt.Errorf("invalid price %q: %w", price, err)
	}
	item.Price = p
	if item.DietaryTags == nil {
		item.DietaryTags = []string{}
	}
	return &item, nil
}

func (r *menuRepository) List(ctx context.Context) ([]*domain.MenuItem, error) {
	rows, err := r.db.Query(ctx, `SELECT `+menuColumns+` FROM menu_items ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("failed to list menu items: %w", err)
	}
	defer rows.Close()

	items := []*domain.MenuItem{}
	for rows.Next() {
		item, err := scanMenuItem(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan menu item: %w", err)
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

func (r *menuRepository) Get(ctx context.Context, id string) (*domain.MenuItem, error) {
	item, err := scanMenuItem(r.db.QueryRow(ctx, `SELECT `+menuColumns+` FROM menu_items WHERE id = $1`, id))
	if isNoRows(err) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get menu item: %w", err)
	}
	return item, nil
}

func (r *menuRepository) Upsert(ctx context.Context, item *domain.MenuItem) (bool, error) {
	var (
		created bool
		version int64
		now     = time.Now().UTC()
	)

	err := inTx(ctx, r.db, func(tx Tx) error {
		var current int64
		err := tx.QueryRow(ctx, `SELECT version FROM menu_items WHERE id = $1 FOR UPDATE`, item.ID).Scan(&current)
		if isNoRows(err) {
			_, err := tx.Exec(ctx, `
				INSERT INTO menu_items (id, position, name, category, price, description, dietary_tags, image, chef_special, version, updated_at)
				VALUES ($1, (SELECT COALESCE(MAX(position), 0) + 1 FROM menu_items), $2, $3, $4::numeric, $5, $6, $7, $8, 1, $9)`,
				item.ID, item.Name, item.Category, item.Price.String(), item.Description,
				tags(item.DietaryTags), item.Image, item.ChefSpecial, now,
			)
			created, version = true, 1
			return err
		}
		if err != nil {
			return err
		}

		if item.Version != 0 && item.Version != current {
			return domain.ErrVersionConflict
		}

		_, err = tx.Exec(ctx, `
			UPDATE menu_items
			SET name = $2, category = $3, price = $4::numeric, description = $5, dietary_tags = $6,
			    image = $7, chef_special = $8, version = version + 1, updated_at = $9
			WHERE id = $1`,
			item.ID, item.Name, item.Category, item.Price.String(), item.Description,
			tags(item.DietaryTags), item.Image, item.ChefSpecial, now,
		)
		version = current + 1
		return err
	})
	if errors.Is(err, domain.ErrVersionConflict) {
		return false, err
	}
	if err != nil {
		return false, fmt.Errorf("failed to upsert menu item: %w", err)
	}

	item.Version = version
	item.UpdatedAt = now
	return created, nil
}

func (r *menuRepository) Delete(ctx context.Context, id string) (bool, error) {
	tag, err := r.db.Exec(ctx, `DELETE FROM menu_items WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("failed to delete menu item: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

func tags(t []string) []string {
	if t == nil {
		return []string{}
	}
	return t
}
