package domain

import (
	"regexp"
	"strings"
)

var (
	colorRegex     = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)
	blankLineRegex = regexp.MustCompile(`\n\s*\n`)
)

// OpeningHours holds the human readable opening times.
type OpeningHours struct {
	Weekday string `json:"weekday"`
	Weekend string `json:"weekend"`
}

// RestaurantSettings is the site-wide singleton read by every public page
type RestaurantSettings struct {
	BrandName      string       `json:"brandName"`
	Tagline        string       `json:"tagline"`
	PrimaryColor   string       `json:"primaryColor"`
	SecondaryColor string       `json:"secondaryColor"`
	Phone          string       `json:"phone"`
	Email          string       `json:"email"`
	Address        string       `json:"address"`
	StoryImage     string       `json:"storyImage"`
	StoryText      string       `json:"storyText"`
	OpeningHours   OpeningHours `json:"openingHours"`
	Version        int64        `json:"version,omitempty"`
}

// Validate applies business validation rules
func (s *RestaurantSettings) Validate() error {
	var errs ValidationErrors

	if strings.TrimSpace(s.BrandName) == "" {
		errs.Add("brandName", "brand name is required")
	}
	if !colorRegex.MatchString(s.PrimaryColor) {
		errs.Add("primaryColor", "primary color must be a #rrggbb value")
	}
	if !colorRegex.MatchString(s.SecondaryColor) {
		errs.Add("secondaryColor", "secondary color must be a #rrggbb value")
	}
	if s.Phone != "" && !ValidPhone(s.Phone) {
		errs.Add("phone", "phone number is invalid")
	}
	if s.Email != "" && !emailRegex.MatchString(s.Email) {
		errs.Add("email", "email address is invalid")
	}

	return errs.Err()
}

// StoryParagraphs splits the story text on blank lines.
func (s *RestaurantSettings) StoryParagraphs() []string {
	text := strings.ReplaceAll(s.StoryText, "\r\n", "\n")
	var paragraphs []string
	for _, p := range blankLineRegex.Split(text, -1) {
		if p = strings.TrimSpace(p); p != "" {
			paragraphs = append(paragraphs, p)
		}
	}
	return paragraphs
}
