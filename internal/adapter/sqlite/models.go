package sqlite

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"github.com/YelzhanWeb/goodplatters/internal/domain"
)

// tagList is stored as a JSON array in a text column.
type tagList []string

func (t tagList) Value() (driver.Value, error) {
	if t == nil {
		return "[]", nil
	}
	b, err := json.Marshal([]string(t))
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (t *tagList) Scan(src interface{}) error {
	var raw []byte
	switch v := src.(type) {
	case nil:
		*t = tagList{}
		return nil
	case string:
		raw = []byte(v)
	case []byte:
		raw = v
	default:
		return errors.New("unsupported dietary tags column type")
	}
	return json.Unmarshal(raw, (*[]string)(t))
}

type menuItemModel struct {
	ID          string  `gorm:"primaryKey;type:varchar(64)"`
	Position    int64   `gorm:"not null;index"`
	Name        string  `gorm:"type:varchar(120);not null"`
	Category    string  `gorm:"type:varchar(100);not null"`
	Price       string  `gorm:"type:varchar(32);not null"`
	Description string  `gorm:"type:text"`
	DietaryTags tagList `gorm:"type:text"`
	Image       string  `gorm:"type:text"`
	ChefSpecial bool    `gorm:"not null;default:false"`
	Version     int64   `gorm:"not null;default:1"`
	UpdatedAt   time.Time
}

func (menuItemModel) TableName() string { return "menu_items" }

type reservationModel struct {
	ID              string    `gorm:"primaryKey;type:varchar(64)"`
	Date            string    `gorm:"type:varchar(10);not null"`
	Time            string    `gorm:"type:varchar(5);not null"`
	Guests          int       `gorm:"not null"`
	Name            string    `gorm:"type:varchar(100);not null"`
	Email           string    `gorm:"type:varchar(255);not null"`
	Phone           string    `gorm:"type:varchar(32);not null"`
	Status          string    `gorm:"type:varchar(16);not null;index"`
	SpecialRequests string    `gorm:"type:text"`
	CreatedAt       time.Time `gorm:"not null;index"`
	Version         int64     `gorm:"not null;default:1"`
}

func (reservationModel) TableName() string { return "reservations" }

type inquiryModel struct {
	ID      string    `gorm:"primaryKey;type:varchar(64)"`
	Name    string    `gorm:"type:varchar(100);not null"`
	Email   string    `gorm:"type:varchar(255);not null"`
	Subject string    `gorm:"type:varchar(200);not null"`
	Message string    `gorm:"type:text;not null"`
	Date    time.Time `gorm:"not null;index"`
}

func (inquiryModel) TableName() string { return "inquiries" }

// settingsModel always lives in row 1.
type settingsModel struct {
	ID             uint `gorm:"primaryKey"`
	BrandName      string
	Tagline        string
	PrimaryColor   string `gorm:"type:varchar(7)"`
	SecondaryColor string `gorm:"type:varchar(7)"`
	Phone          string
	Email          string
	Address        string
	StoryImage     string `gorm:"type:text"`
	StoryText      string `gorm:"type:text"`
	WeekdayHours   string
	WeekendHours   string
	Version        int64 `gorm:"not null;default:1"`
	UpdatedAt      time.Time
}

func (settingsModel) TableName() string { return "settings" }

const settingsRowID = 1

type valueModel struct {
	Key       string `gorm:"column:name;primaryKey;type:varchar(64)"`
	Value     string `gorm:"type:text;not null"`
	UpdatedAt time.Time
}

func (valueModel) TableName() string { return "site_values" }

func toMenuModel(m *domain.MenuItem) *menuItemModel {
	return &menuItemModel{
		ID:          m.ID,
		Name:        m.Name,
		Category:    m.Category,
		Price:       m.Price.String(),
		Description: m.Description,
		DietaryTags: tagList(m.DietaryTags),
		Image:       m.Image,
		ChefSpecial: m.ChefSpecial,
		Version:     m.Version,
		UpdatedAt:   m.UpdatedAt,
	}
}

func (m *menuItemModel) toDomain() (*domain.MenuItem, error) {
	price, err := decimal.NewFromString(m.Price)
	if err != nil {
		return nil, err
	}
	tags := []string(m.DietaryTags)
	if tags == nil {
		tags = []string{}
	}
	return &domain.MenuItem{
		ID:          m.ID,
		Name:        m.Name,
		Category:    m.Category,
		Price:       price,
		Description: m.Description,
		DietaryTags: tags,
		Image:       m.Image,
		ChefSpecial: m.ChefSpecial,
		Version:     m.Version,
		UpdatedAt:   m.UpdatedAt,
	}, nil
}

func toReservationModel(r *domain.Reservation) *reservationModel {
	return &reservationModel{
		ID:              r.ID,
		Date:            r.Date,
		Time:            r.Time,
		Guests:          r.Guests,
		Name:            r.Name,
		Email:           r.Email,
		Phone:           r.Phone,
		Status:          string(r.Status),
		SpecialRequests: r.SpecialRequests,
		CreatedAt:       r.CreatedAt.UTC(),
		Version:         r.Version,
	}
}

func (m *reservationModel) toDomain() *domain.Reservation {
	return &domain.Reservation{
		ID:              m.ID,
		Date:            m.Date,
		Time:            m.Time,
		Guests:          m.Guests,
		Name:            m.Name,
		Email:           m.Email,
		Phone:           m.Phone,
		Status:          domain.ReservationStatus(m.Status),
		SpecialRequests: m.SpecialRequests,
		CreatedAt:       m.CreatedAt.UTC(),
		Version:         m.Version,
	}
}

func toInquiryModel(i *domain.Inquiry) *inquiryModel {
	return &inquiryModel{
		ID:      i.ID,
		Name:    i.Name,
		Email:   i.Email,
		Subject: i.Subject,
		Message: i.Message,
		Date:    i.Date.UTC(),
	}
}

func (m *inquiryModel) toDomain() *domain.Inquiry {
	return &domain.Inquiry{
		ID:      m.ID,
		Name:    m.Name,
		Email:   m.Email,
		Subject: m.Subject,
		Message: m.Message,
		Date:    m.Date.UTC(),
	}
}

func toSettingsModel(s *domain.RestaurantSettings) *settingsModel {
	return &settingsModel{
		ID:             settingsRowID,
		BrandName:      s.BrandName,
		Tagline:        s.Tagline,
		PrimaryColor:   s.PrimaryColor,
		SecondaryColor: s.SecondaryColor,
		Phone:          s.Phone,
		Email:          s.Email,
		Address:        s.Address,
		StoryImage:     s.StoryImage,
		StoryText:      s.StoryText,
		WeekdayHours:   s.OpeningHours.Weekday,
		WeekendHours:   s.OpeningHours.Weekend,
		Version:        s.Version,
	}
}

func (m *settingsModel) toDomain() *domain.RestaurantSettings {
	return &domain.RestaurantSettings{
		BrandName:      m.BrandName,
		Tagline:        m.Tagline,
		PrimaryColor:   m.PrimaryColor,
		SecondaryColor: m.SecondaryColor,
		Phone:          m.Phone,
		Email:          m.Email,
		Address:        m.Address,
		StoryImage:     m.StoryImage,
		StoryText:      m.StoryText,
		OpeningHours: domain.OpeningHours{
			Weekday: m.WeekdayHours,
			Weekend: m.WeekendHours,
		},
		Version: m.Version,
	}
}
