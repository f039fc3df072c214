package domain

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// MaxPrice is the exclusive upper bound of a menu price; prices carry at most two decimals.
var MaxPrice = decimal.New(1, 8)

// MenuItem represents a dish on the restaurant menu
type MenuItem struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Category    string          `json:"category"`
	Price       decimal.Decimal `json:"price"`
	Description string          `json:"description"`
	DietaryTags []string        `json:"dietaryTags"`
	Image       string          `json:"image"`
	ChefSpecial bool            `json:"isChefSpecial"`
	Version     int64           `json:"version,omitempty"`
	UpdatedAt   time.Time       `json:"updatedAt,omitempty"`
}

// Validate applies business validation rules
func (m *MenuItem) Validate() error {
	var errs ValidationErrors

	name := strings.TrimSpace(m.Name)
	if name == "" {
		errs.Add("name", "name is required")
	} else if len(name) > 120 {
		errs.Add("name", "name must not exceed 120 characters")
	}

	if strings.TrimSpace(m.Category) == "" {
		errs.Add("category", "category is required")
	}

	switch {
	case m.Price.IsNegative():
		errs.Add("price", "price must not be negative")
	case m.Price.GreaterThanOrEqual(MaxPrice):
		errs.Add("price", "price must be less than 100000000")
	case !m.Price.Equal(m.Price.Round(2)):
		errs.Add("price", "price must have at most two decimal places")
	}

	for _, tag := range m.DietaryTags {
		if strings.TrimSpace(tag) == "" {
			errs.Add("dietaryTags", "dietary tags must not be blank")
			break
		}
	}

	return errs.Err()
}

// Normalize trims free text and turns the dietary tags into a set, keeping first-seen order.
func (m *MenuItem) Normalize() {
	m.Name = strings.TrimSpace(m.Name)
	m.Category = strings.TrimSpace(m.Category)
	m.Description = strings.TrimSpace(m.Description)
	m.Image = strings.TrimSpace(m.Image)

	seen := make(map[string]bool, len(m.DietaryTags))
	tags := make([]string, 0, len(m.DietaryTags))
	for _, tag := range m.DietaryTags {
		tag = strings.ToUpper(strings.TrimSpace(tag))
		if tag == "" || seen[tag] {
			continue
		}
		seen[tag] = true
		tags = append(tags, tag)
	}
	m.DietaryTags = tags
}
