package sqlite

import (
	"context"
	"fmt"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/YelzhanWeb/goodplatters/internal/interfaces"
)

// Store is the gorm backed record store used for single-node deployments.
type Store struct {
	db *gorm.DB

	menu         *menuRepository
	reservations *reservationRepository
	inquiries    *inquiryRepository
	settings     *settingsRepository
	values       *valueRepository
}

var _ interfaces.Store = (*Store)(nil)

// Open opens (or creates) the database at path and migrates the schema.
// Use ":memory:" for a throwaway database.
func Open(path string) (*Store, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger:                 gormlogger.Default.LogMode(gormlogger.Silent),
		SkipDefaultTransaction: true,
		NowFunc:                func() time.Time { return time.Now().UTC() },
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	// sqlite allows one writer; a single connection also keeps ":memory:" shared
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetConnMaxLifetime(time.Hour)

	if err := Migrate(db); err != nil {
		return nil, err
	}

	return newStore(db), nil
}

func newStore(db *gorm.DB) *Store {
	return &Store{
		db:           db,
		menu:         &menuRepository{db: db},
		reservations: &reservationRepository{db: db},
		inquiries:    &inquiryRepository{db: db},
		settings:     &settingsRepository{db: db},
		values:       &valueRepository{db: db},
	}
}

// Migrate creates or updates every table the store needs.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&menuItemModel{},
		&reservationModel{},
		&inquiryModel{},
		&settingsModel{},
		&valueModel{},
	); err != nil {
		return fmt.Errorf("failed to migrate sqlite schema: %w", err)
	}
	return nil
}

func (s *Store) Menu() interfaces.MenuRepository                { return s.menu }
func (s *Store) Reservations() interfaces.ReservationRepository { return s.reservations }
func (s *Store) Inquiries() interfaces.InquiryRepository        { return s.inquiries }
func (s *Store) Settings() interfaces.SettingsRepository        { return s.settings }
func (s *Store) Values() interfaces.ValueRepository             { return s.values }

func (s *Store) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
