// Package domain defines the normalized domain types for the portfolio slideshow.
// These types are independent of how projects are loaded or rendered.
package domain

// Project represents one portfolio entry shown as a slide.
type Project struct {
	ID            string // Stable identifier, used as the display key
	Name          string // Project title (e.g., "Everyday Flowers")
	Description   string // Short credit line (e.g., "Johanna Hobel for Vogue")
	Date          string // Free-form date label (e.g., "Jun 2019")
	ImageURL      string // Slide image location
	BackgroundURL string // Full-bleed background image location
}

// Size is a width/height pair in whatever unit the caller measures in
// (pixels for the geometry export, terminal cells for the TUI).
type Size struct {
	Width  float64
	Height float64
}

// IsZero reports whether either dimension is unmeasured.
func (s Size) IsZero() bool {
	return s.Width <= 0 || s.Height <= 0
}

// MinProjects is the smallest catalogue that keeps current, next and prev distinct.
const MinProjects = 3
