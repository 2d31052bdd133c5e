package domain

import (
	"math"
	"regexp"
	"strings"
	"time"
)

// ServiceCategory enumerates catalog groupings.
type ServiceCategory string

const (
	CategoryWebDevelopment    ServiceCategory = "web-development"
	CategoryMobileDevelopment ServiceCategory = "mobile-development"
	CategoryUIUXDesign        ServiceCategory = "ui-ux-design"
	CategoryDigitalMarketing  ServiceCategory = "digital-marketing"
	CategoryConsulting        ServiceCategory = "consulting"
)

// Feature describes a selling point of a service.
type Feature struct {
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Icon        string `json:"icon,omitempty"`
}

// PricingTier is one of the basic/professional/enterprise packages.
type PricingTier struct {
	Name        string   `json:"name"`
	Price       float64  `json:"price"`
	Currency    string   `json:"currency"`
	Features    []string `json:"features,omitempty"`
	Description string   `json:"description,omitempty"`
	Popular     bool     `json:"popular,omitempty"`
}

// ServicePricing groups the three offered tiers.
type ServicePricing struct {
	Basic        *PricingTier `json:"basic,omitempty"`
	Professional *PricingTier `json:"professional,omitempty"`
	Enterprise   *PricingTier `json:"enterprise,omitempty"`
}

// ProcessStep is one step of the delivery process description.
type ProcessStep struct {
	Step        int    `json:"step"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Icon        string `json:"icon,omitempty"`
}

// FAQ is a question/answer pair shown on the detail page.
type FAQ struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// Testimonial is a customer quote with a 1-5 rating.
type Testimonial struct {
	Quote    string `json:"quote"`
	Author   string `json:"author"`
	Position string `json:"position,omitempty"`
	Company  string `json:"company,omitempty"`
	Rating   int    `json:"rating"`
}

// Service is a catalog offering shown on the public site.
type Service struct {
	ID               string
	Title            string
	Slug             string
	ShortDescription string
	Description      string
	Category         ServiceCategory
	Icon             string
	Image            string
	Features         []Feature
	Benefits         []Feature
	Pricing          ServicePricing
	Process          []ProcessStep
	Technologies     []string
	FAQs             []FAQ
	Testimonials     []Testimonial
	RelatedServices  []string
	IsActive         bool
	IsFeatured       bool
	DisplayOrder     int
	Views            int64
	Inquiries        int64
	CreatedBy        *string
	UpdatedBy        *string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

var nonSlugRuns = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify derives a URL slug from a title: lowercase, every maximal run of
// non-alphanumeric characters collapses to a single dash, leading and
// trailing dashes stripped.
func Slugify(title string) string {
	slug := nonSlugRuns.ReplaceAllString(strings.ToLower(title), "-")
	return strings.Trim(slug, "-")
}

// AverageRating is the mean testimonial rating rounded to one decimal,
// zero when there are no testimonials.
func (s *Service) AverageRating() float64 {
	if len(s.Testimonials) == 0 {
		return 0
	}
	var sum int
	for _, t := range s.Testimonials {
		sum += t.Rating
	}
	mean := float64(sum) / float64(len(s.Testimonials))
	return math.Round(mean*10) / 10
}
