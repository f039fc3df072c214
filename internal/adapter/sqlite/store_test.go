package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/YelzhanWeb/goodplatters/internal/domain"
)

func setupTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func testReservation(id string, createdAt time.Time) *domain.Reservation {
	return &domain.Reservation{
		ID:        id,
		Date:      "2025-06-01",
		Time:      "19:30",
		Guests:    2,
		Name:      "Ada Lovelace",
		Email:     "ada@example.com",
		Phone:     "555-0199",
		Status:    domain.StatusPending,
		CreatedAt: createdAt,
	}
}

func TestMenuUpsertAppendsAndUpdatesInPlace(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	first := &domain.MenuItem{ID: "a", Name: "Soup", Category: "Starters", Price: decimal.RequireFromString("6.50"), DietaryTags: []string{"V"}}
	second := &domain.MenuItem{ID: "b", Name: "Steak", Category: "Mains", Price: decimal.RequireFromString("31.00")}

	created, err := store.Menu().Upsert(ctx, first)
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, int64(1), first.Version)

	created, err = store.Menu().Upsert(ctx, second)
	require.NoError(t, err)
	assert.True(t, created)

	first.Name = "Tomato Soup"
	created, err = store.Menu().Upsert(ctx, first)
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, int64(2), first.Version)

	items, err := store.Menu().List(ctx)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "a", items[0].ID)
	assert.Equal(t, "Tomato Soup", items[0].Name)
	assert.Equal(t, []string{"V"}, items[0].DietaryTags)
	assert.True(t, decimal.RequireFromString("6.50").Equal(items[0].Price))
	assert.Equal(t, "b", items[1].ID)
	assert.Equal(t, []string{}, items[1].DietaryTags)
}

func TestMenuUpsertStaleVersion(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	item := &domain.MenuItem{ID: "a", Name: "Soup", Category: "Starters", Price: decimal.NewFromInt(6)}
	_, err := store.Menu().Upsert(ctx, item)
	require.NoError(t, err)

	stale := *item
	item.Name = "Soup of the day"
	_, err = store.Menu().Upsert(ctx, item)
	require.NoError(t, err)

	stale.Name = "Lost update"
	_, err = store.Menu().Upsert(ctx, &stale)
	assert.ErrorIs(t, err, domain.ErrVersionConflict)

	got, err := store.Menu().Get(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, "Soup of the day", got.Name)
}

func TestMenuDelete(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	_, err := store.Menu().Upsert(ctx, &domain.MenuItem{ID: "a", Name: "Soup", Category: "Starters"})
	require.NoError(t, err)

	deleted, err := store.Menu().Delete(ctx, "a")
	require.NoError(t, err)
	assert.True(t, deleted)

	deleted, err = store.Menu().Delete(ctx, "a")
	require.NoError(t, err)
	assert.False(t, deleted)

	_, err = store.Menu().Get(ctx, "a")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestReservationCreateDuplicate(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	r := testReservation("r-1", time.Now().UTC())
	require.NoError(t, store.Reservations().Create(ctx, r))

	err := store.Reservations().Create(ctx, testReservation("r-1", time.Now().UTC()))
	assert.ErrorIs(t, err, domain.ErrAlreadyExists)
}

func TestReservationListNewestFirst(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	base := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	require.NoError(t, store.Reservations().Create(ctx, testReservation("old", base)))
	require.NoError(t, store.Reservations().Create(ctx, testReservation("new", base.Add(time.Hour))))

	list, err := store.Reservations().List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "new", list[0].ID)
	assert.Equal(t, "old", list[1].ID)
}

func TestReservationPut(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	r := testReservation("r-1", time.Now().UTC())
	require.NoError(t, store.Reservations().Put(ctx, r))
	assert.Equal(t, int64(1), r.Version)

	stale := *r
	r.Status = domain.StatusConfirmed
	require.NoError(t, store.Reservations().Put(ctx, r))
	assert.Equal(t, int64(2), r.Version)

	stale.Status = domain.StatusCancelled
	assert.ErrorIs(t, store.Reservations().Put(ctx, &stale), domain.ErrVersionConflict)

	got, err := store.Reservations().Get(ctx, "r-1")
	require.NoError(t, err)
	assert.Equal(t, domain.StatusConfirmed, got.Status)

	_, err = store.Reservations().Get(ctx, "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestInquiryLifecycle(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	inq, err := domain.NewInquiry("Grace", "grace@example.com", "Private dining", "Do you host parties of 30?")
	require.NoError(t, err)
	require.NoError(t, store.Inquiries().Create(ctx, inq))
	assert.ErrorIs(t, store.Inquiries().Create(ctx, inq), domain.ErrAlreadyExists)

	got, err := store.Inquiries().Get(ctx, inq.ID)
	require.NoError(t, err)
	assert.Equal(t, "Private dining", got.Subject)

	require.NoError(t, store.Inquiries().Delete(ctx, inq.ID))
	require.NoError(t, store.Inquiries().Delete(ctx, inq.ID))

	list, err := store.Inquiries().List(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestSettingsSaveAndVersion(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	_, err := store.Settings().Get(ctx)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	settings := domain.DefaultSettings()
	require.NoError(t, store.Settings().Save(ctx, settings))
	assert.Equal(t, int64(1), settings.Version)

	settings.Tagline = "New tagline"
	require.NoError(t, store.Settings().Save(ctx, settings))
	assert.Equal(t, int64(2), settings.Version)

	stale := domain.DefaultSettings()
	stale.Version = 1
	assert.ErrorIs(t, store.Settings().Save(ctx, stale), domain.ErrVersionConflict)

	got, err := store.Settings().Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, "New tagline", got.Tagline)
	assert.Equal(t, "11:00 AM - 10:00 PM", got.OpeningHours.Weekday)
}

func TestValues(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	_, err := store.Values().Get(ctx, domain.ValueWhatsAppNumber)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	require.NoError(t, store.Values().Set(ctx, domain.ValueWhatsAppNumber, "12345678"))
	require.NoError(t, store.Values().Set(ctx, domain.ValueWhatsAppNumber, "87654321"))

	v, err := store.Values().Get(ctx, domain.ValueWhatsAppNumber)
	require.NoError(t, err)
	assert.Equal(t, "87654321", v)
}

func TestReplaceAll(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.ReplaceAll(ctx, domain.DefaultSnapshot()))

	next := &domain.Snapshot{
		Menu: []*domain.MenuItem{
			{ID: "x", Name: "Only dish", Category: "Mains", Price: decimal.NewFromInt(10), DietaryTags: []string{}},
		},
		Reservations: []*domain.Reservation{testReservation("r1", time.Now().UTC())},
		Inquiries:    []*domain.Inquiry{},
		Settings:     domain.DefaultSettings(),
	}
	next.Settings.BrandName = "Other Platters"
	require.NoError(t, store.ReplaceAll(ctx, next))

	menu, err := store.Menu().List(ctx)
	require.NoError(t, err)
	require.Len(t, menu, 1)
	assert.Equal(t, "x", menu[0].ID)

	reservations, err := store.Reservations().List(ctx)
	require.NoError(t, err)
	require.Len(t, reservations, 1)
	assert.Equal(t, domain.StatusPending, reservations[0].Status)
	assert.Equal(t, int64(2), reservations[0].Version)

	settings, err := store.Settings().Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Other Platters", settings.BrandName)
	assert.Equal(t, int64(2), settings.Version)
	assert.Equal(t, int64(2), next.Settings.Version)
}

func TestPing(t *testing.T) {
	store := setupTestStore(t)
	assert.NoError(t, store.Ping(context.Background()))
}
