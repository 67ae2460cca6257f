package category

import (
	"regexp"
	"strings"
)

// Category groups products on the storefront. The ID doubles as the slug for
// the seeded categories.
type Category struct {
	ID          string `json:"id"`
	Name        string `json:"name" validate:"required"`
	Slug        string `json:"slug"`
	Image       string `json:"image,omitempty"`
	Description string `json:"description,omitempty"`
	Ord         int    `json:"-"`
}

var (
	nonSlugChars = regexp.MustCompile(`[^a-z0-9-]+`)
	dashRuns     = regexp.MustCompile(`-{2,}`)
)

// Slugify lower-cases s, turns whitespace into dashes and drops everything
// else that is not a letter, digit or dash.
func Slugify(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.Join(strings.Fields(s), "-")
	s = nonSlugChars.ReplaceAllString(s, "")
	s = dashRuns.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

func Seed() []Category {
	return []Category{
		{ID: "fruits", Name: "Fruits", Slug: "fruits", Image: "https://images.pexels.com/photos/1132047/pexels-photo-1132047.jpeg?auto=compress&cs=tinysrgb&w=300", Description: "Fresh seasonal fruits", Ord: 6},
		{ID: "vegetables", Name: "Vegetables", Slug: "vegetables", Image: "https://images.pexels.com/photos/1458694/pexels-photo-1458694.jpeg?auto=compress&cs=tinysrgb&w=300", Description: "Farm fresh vegetables", Ord: 5},
		{ID: "dairy", Name: "Dairy", Slug: "dairy", Image: "https://images.pexels.com/photos/236010/pexels-photo-236010.jpeg?auto=compress&cs=tinysrgb&w=300", Description: "Fresh milk and dairy products", Ord: 4},
		{ID: "staples", Name: "Staples", Slug: "staples", Image: "https://images.pexels.com/photos/1414651/pexels-photo-1414651.jpeg?auto=compress&cs=tinysrgb&w=300", Description: "Rice, flour, and essential staples", Ord: 3},
		{ID: "snacks", Name: "Snacks", Slug: "snacks", Image: "https://images.pexels.com/photos/1090638/pexels-photo-1090638.jpeg?auto=compress&cs=tinysrgb&w=300", Description: "Healthy snacks and treats", Ord: 2},
		{ID: "drinks", Name: "Drinks", Slug: "drinks", Image: "https://images.pexels.com/photos/1337825/pexels-photo-1337825.jpeg?auto=compress&cs=tinysrgb&w=300", Description: "Fresh juices and beverages", Ord: 1},
	}
}
