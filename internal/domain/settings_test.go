package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSettingsValidate(t *testing.T) {
	require.NoError(t, DefaultSettings().Validate())

	s := DefaultSettings()
	s.BrandName = " "
	s.SecondaryColor = "#12345"
	s.Email = "nobody"

	var verrs ValidationErrors
	require.ErrorAs(t, s.Validate(), &verrs)
	assert.Len(t, verrs, 3)
}

func TestStoryParagraphs(t *testing.T) {
	s := &RestaurantSettings{StoryText: "One.\r\n\r\nTwo.\n   \nThree.\n\n\n"}
	assert.Equal(t, []string{"One.", "Two.", "Three."}, s.StoryParagraphs())

	assert.Len(t, DefaultSettings().StoryParagraphs(), 2)
	assert.Empty(t, (&RestaurantSettings{}).StoryParagraphs())
}

func TestMenuItemNormalize(t *testing.T) {
	m := &MenuItem{Name: "  Soup ", Category: " Starters", DietaryTags: []string{"v", " GF", "V", ""}}
	m.Normalize()

	assert.Equal(t, "Soup", m.Name)
	assert.Equal(t, "Starters", m.Category)
	assert.Equal(t, []string{"V", "GF"}, m.DietaryTags)
	assert.NoError(t, m.Validate())

	m.Price = decimal.NewFromInt(-2)
	assert.Error(t, m.Validate())
}

func TestMenuItemPriceFitsStoredPrecision(t *testing.T) {
	tests := []struct {
		price string
		valid bool
	}{
		{"0", true},
		{"12.5", true},
		{"12.50", true},
		{"12.3400", true},
		{"99999999.99", true},
		{"12.345", false},
		{"0.001", false},
		{"100000000", false},
		{"1e9", false},
	}

	for _, tt := range tests {
		t.Run(tt.price, func(t *testing.T) {
			m := &MenuItem{Name: "Soup", Category: "Starters", Price: decimal.RequireFromString(tt.price)}
			err := m.Validate()
			if tt.valid {
				assert.NoError(t, err)
				return
			}
			var verrs ValidationErrors
			require.ErrorAs(t, err, &verrs)
			assert.Equal(t, "price", verrs[0].Field)
		})
	}
}

func TestSnapshotValidate(t *testing.T) {
	require.NoError(t, DefaultSnapshot().Validate())

	s := DefaultSnapshot()
	s.Menu[1].ID = s.Menu[0].ID
	s.Reservations = append(s.Reservations, DefaultReservations()[0])

	var verrs ValidationErrors
	require.ErrorAs(t, s.Validate(), &verrs)
	fields := make([]string, len(verrs))
	for i, fe := range verrs {
		fields[i] = fe.Field
	}
	assert.Contains(t, fields, "menu[1].id")
	assert.Contains(t, fields, "reservations[1].id")

	s = DefaultSnapshot()
	s.Menu = append(s.Menu, nil)
	s.Reservations = []*Reservation{nil}
	s.Inquiries = []*Inquiry{nil}
	require.ErrorAs(t, s.Validate(), &verrs)
	fields = fields[:0]
	for _, fe := range verrs {
		fields = append(fields, fe.Field)
	}
	assert.Equal(t, []string{"menu[4]", "reservations[0]", "inquiries[0]"}, fields)

	s = DefaultSnapshot()
	s.Settings = nil
	require.ErrorAs(t, s.Validate(), &verrs)
	assert.Equal(t, "settings", verrs[0].Field)
}
