package service

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/lumenworks/agency-service/internal/domain"
	"github.com/lumenworks/agency-service/internal/repository"
	apperrors "github.com/lumenworks/agency-service/pkg/util"
)

// CatalogService manages the public service-offering catalog.
type CatalogService struct {
	services repository.ServiceRepository
}

// NewCatalogService constructs the service.
func NewCatalogService(services repository.ServiceRepository) *CatalogService {
	return &CatalogService{services: services}
}

// ServiceInput describes create/update payloads for catalog entries.
type ServiceInput struct {
	Title            string
	Slug             string
	ShortDescription string
	Description      string
	Category         domain.ServiceCategory
	Icon             string
	Image            string
	Features         []domain.Feature
	Benefits         []domain.Feature
	Pricing          domain.ServicePricing
	Process          []domain.ProcessStep
	Technologies     []string
	FAQs             []domain.FAQ
	Testimonials     []domain.Testimonial
	RelatedServices  []string
	IsActive         *bool
	IsFeatured       *bool
	DisplayOrder     int
}

// Create adds a catalog entry. A missing slug is derived from the title; a
// duplicate slug is rejected by the store's unique constraint.
func (s *CatalogService) Create(ctx context.Context, input ServiceInput, createdBy string) (*domain.Service, error) {
	slug := strings.TrimSpace(input.Slug)
	if slug == "" {
		slug = domain.Slugify(input.Title)
	}
	if slug == "" {
		return nil, apperrors.NewValidationError("title must contain at least one alphanumeric character", nil)
	}

	svc := &domain.Service{
		Title:            strings.TrimSpace(input.Title),
		Slug:             slug,
		ShortDescription: input.ShortDescription,
		Description:      input.Description,
		Category:         input.Category,
		Icon:             input.Icon,
		Image:            input.Image,
		Features:         input.Features,
		Benefits:         input.Benefits,
		Pricing:          input.Pricing,
		Process:          input.Process,
		Technologies:     input.Technologies,
		FAQs:             input.FAQs,
		Testimonials:     input.Testimonials,
		RelatedServices:  input.RelatedServices,
		IsActive:         true,
		IsFeatured:       false,
		DisplayOrder:     input.DisplayOrder,
		CreatedBy:        &createdBy,
		UpdatedBy:        &createdBy,
	}
	if input.IsActive != nil {
		svc.IsActive = *input.IsActive
	}
	if input.IsFeatured != nil {
		svc.IsFeatured = *input.IsFeatured
	}

	if err := s.services.Create(ctx, svc); err != nil {
		if apperrors.IsUniqueViolation(err) {
			return nil, apperrors.NewConflict("slug already exists", map[string]any{"slug": slug})
		}
		return nil, apperrors.MapError(err)
	}
	return svc, nil
}

// List returns a filtered page of catalog entries plus the total count.
func (s *CatalogService) List(ctx context.Context, filter repository.ServiceFilter) ([]domain.Service, int64, error) {
	items, total, err := s.services.List(ctx, filter)
	if err != nil {
		return nil, 0, apperrors.MapError(err)
	}
	return items, total, nil
}

// GetBySlug serves the public detail view and bumps the view counter. The
// counter is at-least-once; a failed bump does not fail the read.
func (s *CatalogService) GetBySlug(ctx context.Context, slug string) (*domain.Service, error) {
	svc, err := s.services.GetBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("service", map[string]any{"slug": slug})
		}
		return nil, apperrors.MapError(err)
	}
	if !svc.IsActive {
		return nil, apperrors.NewNotFound("service", map[string]any{"slug": slug})
	}
	if err := s.services.IncrementViews(ctx, slug); err == nil {
		svc.Views++
	}
	return svc, nil
}

// GetByID serves the admin detail view without touching counters.
func (s *CatalogService) GetByID(ctx context.Context, id string) (*domain.Service, error) {
	return s.getService(ctx, id)
}

// Update replaces a catalog entry's editable fields. Clearing the slug
// re-derives it from the (possibly new) title.
func (s *CatalogService) Update(ctx context.Context, id string, input ServiceInput, updatedBy string) (*domain.Service, error) {
	svc, err := s.getService(ctx, id)
	if err != nil {
		return nil, err
	}

	slug := strings.TrimSpace(input.Slug)
	if slug == "" {
		slug = domain.Slugify(input.Title)
	}

	svc.Title = strings.TrimSpace(input.Title)
	svc.Slug = slug
	svc.ShortDescription = input.ShortDescription
	svc.Description = input.Description
	svc.Category = input.Category
	svc.Icon = input.Icon
	svc.Image = input.Image
	svc.Features = input.Features
	svc.Benefits = input.Benefits
	svc.Pricing = input.Pricing
	svc.Process = input.Process
	svc.Technologies = input.Technologies
	svc.FAQs = input.FAQs
	svc.Testimonials = input.Testimonials
	svc.RelatedServices = input.RelatedServices
	svc.DisplayOrder = input.DisplayOrder
	if input.IsActive != nil {
		svc.IsActive = *input.IsActive
	}
	if input.IsFeatured != nil {
		svc.IsFeatured = *input.IsFeatured
	}
	svc.UpdatedBy = &updatedBy

	if err := s.services.Update(ctx, svc); err != nil {
		if apperrors.IsUniqueViolation(err) {
			return nil, apperrors.NewConflict("slug already exists", map[string]any{"slug": slug})
		}
		return nil, apperrors.MapError(err)
	}
	return svc, nil
}

// ToggleActive flips the visibility flag.
func (s *CatalogService) ToggleActive(ctx context.Context, id, updatedBy string) (*domain.Service, error) {
	svc, err := s.getService(ctx, id)
	if err != nil {
		return nil, err
	}
	svc.IsActive = !svc.IsActive
	svc.UpdatedBy = &updatedBy
	if err := s.services.Update(ctx, svc); err != nil {
		return nil, apperrors.MapError(err)
	}
	return svc, nil
}

// ToggleFeatured flips the homepage-highlight flag.
func (s *CatalogService) ToggleFeatured(ctx context.Context, id, updatedBy string) (*domain.Service, error) {
	svc, err := s.getService(ctx, id)
	if err != nil {
		return nil, err
	}
	svc.IsFeatured = !svc.IsFeatured
	svc.UpdatedBy = &updatedBy
	if err := s.services.Update(ctx, svc); err != nil {
		return nil, apperrors.MapError(err)
	}
	return svc, nil
}

// SetDisplayOrder sets the catalog sort rank.
func (s *CatalogService) SetDisplayOrder(ctx context.Context, id string, order int, updatedBy string) (*domain.Service, error) {
	svc, err := s.getService(ctx, id)
	if err != nil {
		return nil, err
	}
	svc.DisplayOrder = order
	svc.UpdatedBy = &updatedBy
	if err := s.services.Update(ctx, svc); err != nil {
		return nil, apperrors.MapError(err)
	}
	return svc, nil
}

// Delete removes a catalog entry permanently.
func (s *CatalogService) Delete(ctx context.Context, id string) error {
	if err := s.services.Delete(ctx, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("service", map[string]any{"service_id": id})
		}
		return apperrors.MapError(err)
	}
	return nil
}

// Stats returns the reporting rollup for the catalog.
func (s *CatalogService) Stats(ctx context.Context) (*repository.ServiceStats, error) {
	stats, err := s.services.Stats(ctx)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return stats, nil
}

func (s *CatalogService) getService(ctx context.Context, id string) (*domain.Service, error) {
	svc, err := s.services.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("service", map[string]any{"service_id": id})
		}
		return nil, apperrors.MapError(err)
	}
	return svc, nil
}
