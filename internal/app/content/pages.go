package content

import "github.com/YelzhanWeb/goodplatters/internal/domain"

type GalleryImage struct {
	URL      string `json:"url"`
	Title    string `json:"title"`
	Category string `json:"category"`
}

type LegalSection struct {
	Title      string   `json:"title"`
	Intro      string   `json:"intro"`
	Paragraphs []string `json:"paragraphs"`
}

func GalleryImages() []GalleryImage {
	const q = "?auto=format&fit=crop&w=800&q=80"
	return []GalleryImage{
		{URL: "https://images.unsplash.com/photo-1517248135467-4c7edcad34c4" + q, Title: "Elegant Dining Area", Category: "Interior"},
		{URL: "https://images.unsplash.com/photo-1559339352-11d035aa65de" + q, Title: "Cozy Booths", Category: "Interior"},
		{URL: "https://images.unsplash.com/photo-1414235077428-338989a2e8c0" + q, Title: "Chef at Work", Category: "Action"},
		{URL: "https://images.unsplash.com/photo-1504674900247-0877df9cc836" + q, Title: "Signature Platter", Category: "Food"},
		{URL: "https://images.unsplash.com/photo-1476224203421-9ac39bcb3327" + q, Title: "Fresh Seafood", Category: "Food"},
		{URL: "https://images.unsplash.com/photo-1550547660-d9450f859349" + q, Title: "Artisan Burger", Category: "Food"},
		{URL: "https://images.unsplash.com/photo-1466637574441-749b8f19452f" + q, Title: "Farm-to-Table Veggies", Category: "Food"},
		{URL: "https://images.unsplash.com/photo-1551024601-bec78aea704b" + q, Title: "Dessert Selection", Category: "Food"},
		{URL: "https://images.unsplash.com/photo-1514362545857-3bc16c4c7d1b" + q, Title: "Craft Cocktails", Category: "Drinks"},
	}
}

func LegalSections(brandName string) []LegalSection {
	return []LegalSection{
		{
			Title: "Privacy Policy",
			Intro: "At " + brandName + ", we take your privacy seriously. This policy describes how we collect, use, and handle your personal information when you use our website and reservation services.",
			Paragraphs: []string{
				"Information We Collect: we collect information that you provide directly to us, such as your name, email address, and phone number when making a reservation or sending an inquiry.",
				"Use of Information: we use your information to manage reservations, respond to inquiries, and send occasional marketing communications if you have opted in.",
			},
		},
		{
			Title: "Terms of Service",
			Intro: "By accessing our website and using our services, you agree to comply with and be bound by the following terms and conditions.",
			Paragraphs: []string{
				"Reservation Policy: tables are held for a maximum of 15 minutes past the scheduled time. We reserve the right to release the table thereafter.",
				"Limitation of Liability: " + brandName + " shall not be liable for any indirect, incidental, or consequential damages resulting from the use of our website.",
			},
		},
	}
}

// Categories lists the distinct menu categories in first-seen order.
func Categories(menu []*domain.MenuItem) []string {
	seen := make(map[string]bool)
	var out []string
	for _, m := range menu {
		if !seen[m.Category] {
			seen[m.Category] = true
			out = append(out, m.Category)
		}
	}
	return out
}

// ChefSpecials returns the items flagged as chef specials.
func ChefSpecials(menu []*domain.MenuItem) []*domain.MenuItem {
	out := []*domain.MenuItem{}
	for _, m := range menu {
		if m.ChefSpecial {
			out = append(out, m)
		}
	}
	return out
}
