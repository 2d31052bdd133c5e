package dto

import (
	"time"

	"github.com/lumenworks/agency-service/internal/domain"
)

// ServiceRequest is the admin create/update payload for catalog entries.
type ServiceRequest struct {
	Title            string                 `json:"title"`
	Slug             string                 `json:"slug,omitempty"`
	ShortDescription string                 `json:"short_description"`
	Description      string                 `json:"description"`
	Category         domain.ServiceCategory `json:"category"`
	Icon             string                 `json:"icon,omitempty"`
	Image            string                 `json:"image,omitempty"`
	Features         []domain.Feature       `json:"features,omitempty"`
	Benefits         []domain.Feature       `json:"benefits,omitempty"`
	Pricing          domain.ServicePricing  `json:"pricing,omitempty"`
	Process          []domain.ProcessStep   `json:"process,omitempty"`
	Technologies     []string               `json:"technologies,omitempty"`
	FAQs             []domain.FAQ           `json:"faqs,omitempty"`
	Testimonials     []domain.Testimonial   `json:"testimonials,omitempty"`
	RelatedServices  []string               `json:"related_services,omitempty"`
	IsActive         *bool                  `json:"is_active,omitempty"`
	IsFeatured       *bool                  `json:"is_featured,omitempty"`
	DisplayOrder     int                    `json:"display_order"`
}

// DisplayOrderRequest payload.
type DisplayOrderRequest struct {
	DisplayOrder int `json:"display_order"`
}

// ServiceSummary is the public listing row.
type ServiceSummary struct {
	ID               string                 `json:"id"`
	Title            string                 `json:"title"`
	Slug             string                 `json:"slug"`
	ShortDescription string                 `json:"short_description"`
	Category         domain.ServiceCategory `json:"category"`
	Icon             string                 `json:"icon,omitempty"`
	Image            string                 `json:"image,omitempty"`
	IsActive         bool                   `json:"is_active"`
	IsFeatured       bool                   `json:"is_featured"`
	DisplayOrder     int                    `json:"display_order"`
	AverageRating    float64                `json:"average_rating"`
	Views            int64                  `json:"views"`
	Inquiries        int64                  `json:"inquiries"`
	CreatedAt        time.Time              `json:"created_at"`
}

// ServiceDetailResponse is the full catalog entry with derived rating.
type ServiceDetailResponse struct {
	ID               string                 `json:"id"`
	Title            string                 `json:"title"`
	Slug             string                 `json:"slug"`
	ShortDescription string                 `json:"short_description"`
	Description      string                 `json:"description"`
	Category         domain.ServiceCategory `json:"category"`
	Icon             string                 `json:"icon,omitempty"`
	Image            string                 `json:"image,omitempty"`
	Features         []domain.Feature       `json:"features,omitempty"`
	Benefits         []domain.Feature       `json:"benefits,omitempty"`
	Pricing          domain.ServicePricing  `json:"pricing"`
	Process          []domain.ProcessStep   `json:"process,omitempty"`
	Technologies     []string               `json:"technologies,omitempty"`
	FAQs             []domain.FAQ           `json:"faqs,omitempty"`
	Testimonials     []domain.Testimonial   `json:"testimonials,omitempty"`
	RelatedServices  []string               `json:"related_services,omitempty"`
	AverageRating    float64                `json:"average_rating"`
	IsActive         bool                   `json:"is_active"`
	IsFeatured       bool                   `json:"is_featured"`
	DisplayOrder     int                    `json:"display_order"`
	Views            int64                  `json:"views"`
	Inquiries        int64                  `json:"inquiries"`
	CreatedAt        time.Time              `json:"created_at"`
	UpdatedAt        time.Time              `json:"updated_at"`
}

// ServiceStatsResponse is the reporting rollup for the catalog.
type ServiceStatsResponse struct {
	Total          int64          `json:"total"`
	ActiveCount    int64          `json:"active_count"`
	FeaturedCount  int64          `json:"featured_count"`
	TotalViews     int64          `json:"total_views"`
	TotalInquiries int64          `json:"total_inquiries"`
	ByCategory     []BreakdownRow `json:"by_category"`
}
