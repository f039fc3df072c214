package domain

import (
	"strconv"
	"time"

	"github.com/shopspring/decimal"
)

// Snapshot is the whole application state as one document:
// { menu, reservations, inquiries, settings }.
type Snapshot struct {
	Menu         []*MenuItem         `json:"menu"`
	Reservations []*Reservation      `json:"reservations"`
	Inquiries    []*Inquiry          `json:"inquiries"`
	Settings     *RestaurantSettings `json:"settings"`
}

// Validate checks every entity and id uniqueness within each collection.
func (s *Snapshot) Validate() error {
	var errs ValidationErrors

	if s.Settings == nil {
		errs.Add("settings", "settings are required")
	} else if err := s.Settings.Validate(); err != nil {
		errs = append(errs, prefixed("settings", err)...)
	}

	seen := make(map[string]bool)
	for i, m := range s.Menu {
		if m == nil {
			errs.Add(indexed("menu", i, ""), "entry is required")
			continue
		}
		if m.ID == "" || seen[m.ID] {
			errs.Add(indexed("menu", i, "id"), "id must be present and unique")
		}
		seen[m.ID] = true
		if err := m.Validate(); err != nil {
			errs = append(errs, prefixed(indexed("menu", i, ""), err)...)
		}
	}

	seen = make(map[string]bool)
	for i, r := range s.Reservations {
		if r == nil {
			errs.Add(indexed("reservations", i, ""), "entry is required")
			continue
		}
		if seen[r.ID] {
			errs.Add(indexed("reservations", i, "id"), "id must be unique")
		}
		seen[r.ID] = true
		if err := r.Validate(); err != nil {
			errs = append(errs, prefixed(indexed("reservations", i, ""), err)...)
		}
	}

	seen = make(map[string]bool)
	for i, inq := range s.Inquiries {
		if inq == nil {
			errs.Add(indexed("inquiries", i, ""), "entry is required")
			continue
		}
		if seen[inq.ID] {
			errs.Add(indexed("inquiries", i, "id"), "id must be unique")
		}
		seen[inq.ID] = true
		if err := inq.Validate(); err != nil {
			errs = append(errs, prefixed(indexed("inquiries", i, ""), err)...)
		}
	}

	return errs.Err()
}

func indexed(collection string, i int, field string) string {
	name := collection + "[" + strconv.Itoa(i) + "]"
	if field != "" {
		name += "." + field
	}
	return name
}

func prefixed(prefix string, err error) ValidationErrors {
	verrs, ok := err.(ValidationErrors)
	if !ok {
		return ValidationErrors{{Field: prefix, Message: err.Error()}}
	}
	out := make(ValidationErrors, len(verrs))
	for i, fe := range verrs {
		out[i] = FieldError{Field: prefix + "." + fe.Field, Message: fe.Message}
	}
	return out
}

// DefaultSnapshot returns the content a fresh deployment starts with.
func DefaultSnapshot() *Snapshot {
	return &Snapshot{
		Menu:         DefaultMenu(),
		Reservations: DefaultReservations(),
		Inquiries:    []*Inquiry{},
		Settings:     DefaultSettings(),
	}
}

// DefaultMenu is the seed menu.
func DefaultMenu() []*MenuItem {
	return []*MenuItem{
		{
			ID:          "1",
			Name:        "Grilled Atlantic Salmon",
			Category:    "Mains",
			Price:       decimal.RequireFromString("28.50"),
			Description: "Fresh Atlantic salmon grilled with lemon butter sauce, served with seasonal asparagus and jasmine rice.",
			DietaryTags: []string{"GF"},
			Image:       "https://images.unsplash.com/photo-1467003909585-2f8a72700288?auto=format&fit=crop&w=800&q=80",
			ChefSpecial: true,
		},
		{
			ID:          "2",
			Name:        "Truffle Mushroom Risotto",
			Category:    "Mains",
			Price:       decimal.RequireFromString("24.00"),
			Description: "Creamy Arborio rice with wild mushrooms, white truffle oil, and shaved Parmesan.",
			DietaryTags: []string{"V", "GF"},
			Image:       "https://images.unsplash.com/photo-1476124369491-e7addf5db371?auto=format&fit=crop&w=800&q=80",
		},
		{
			ID:          "3",
			Name:        "Wagyu Beef Burger",
			Category:    "Mains",
			Price:       decimal.RequireFromString("22.00"),
			Description: "Premium Wagyu beef, aged cheddar, caramelized onions, and house-made aioli on a brioche bun.",
			DietaryTags: []string{},
			Image:       "https://images.unsplash.com/photo-1568901346375-23c9450c58cd?auto=format&fit=crop&w=800&q=80",
			ChefSpecial: true,
		},
		{
			ID:          "4",
			Name:        "Classic Caesar Salad",
			Category:    "Appetizers",
			Price:       decimal.RequireFromString("14.00"),
			Description: "Crisp romaine, sourdough croutons, anchovies, and traditional Caesar dressing.",
			DietaryTags: []string{"V"},
			Image:       "https://images.unsplash.com/photo-1550304943-4f24f54ddde9?auto=format&fit=crop&w=800&q=80",
		},
	}
}

// DefaultSettings is the seed site configuration.
func DefaultSettings() *RestaurantSettings {
	return &RestaurantSettings{
		BrandName:      "Good Platters",
		Tagline:        "Modern casual dining with a soulful touch.",
		PrimaryColor:   "#f97316",
		SecondaryColor: "#1e293b",
		Phone:          "(555) 123-4567",
		Email:          "hello@goodplatters.com",
		Address:        "123 Culinary Ave, Foodie City, FC 54321",
		StoryImage:     "https://images.unsplash.com/photo-1577214411470-125ad8060ca2?auto=format&fit=crop&w=1200&q=80",
		StoryText: "Good Platters began with a simple dream: to bring the freshness of the farm to the warmth of a local neighborhood table. " +
			"Our journey started in 2008 in a small kitchen with big ambitions.\n\n" +
			"Today, we are proud to be a staple in the community, known for our innovative approach to traditional dishes " +
			"and our unwavering commitment to local sourcing. Every ingredient we use is selected for its quality, sustainability, and story.",
		OpeningHours: OpeningHours{
			Weekday: "11:00 AM - 10:00 PM",
			Weekend: "10:00 AM - 11:30 PM",
		},
	}
}

// DefaultReservations is the seed booking list.
func DefaultReservations() []*Reservation {
	return []*Reservation{
		{
			ID:        "r1",
			Date:      "2024-05-20",
			Time:      "19:00",
			Guests:    4,
			Name:      "John Smith",
			Email:     "john@example.com",
			Phone:     "555-0101",
			Status:    StatusConfirmed,
			CreatedAt: time.Now().UTC(),
		},
	}
}
