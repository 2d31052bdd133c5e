package service

import (
	"context"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/lumenworks/agency-service/internal/domain"
)

func TestCreateServiceDerivesSlug(t *testing.T) {
	repo := newFakeServiceRepo()
	svc := NewCatalogService(repo)

	created, err := svc.Create(context.Background(), ServiceInput{
		Title:    "Web  & Mobile Dev!",
		Category: domain.CategoryWebDevelopment,
	}, "admin-1")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if created.Slug != "web-mobile-dev" {
		t.Errorf("slug = %q, want web-mobile-dev", created.Slug)
	}
	if !created.IsActive {
		t.Error("new services default to active")
	}
	if created.IsFeatured {
		t.Error("new services default to not featured")
	}
}

func TestCreateServiceExplicitSlugWins(t *testing.T) {
	repo := newFakeServiceRepo()
	svc := NewCatalogService(repo)

	created, err := svc.Create(context.Background(), ServiceInput{
		Title:    "Web Development",
		Slug:     "custom-slug",
		Category: domain.CategoryWebDevelopment,
	}, "admin-1")
	if err != nil {
		t.Fatal(err)
	}
	if created.Slug != "custom-slug" {
		t.Errorf("slug = %q, want custom-slug", created.Slug)
	}
}

func TestCreateServiceRejectsEmptySlug(t *testing.T) {
	svc := NewCatalogService(newFakeServiceRepo())
	_, err := svc.Create(context.Background(), ServiceInput{
		Title:    "!!!",
		Category: domain.CategoryConsulting,
	}, "admin-1")
	assertErrCode(t, err, "VALIDATION_FAILED")
}

func TestCreateServiceDuplicateSlugConflicts(t *testing.T) {
	repo := newFakeServiceRepo()
	repo.createErr = &pgconn.PgError{Code: "23505"}
	svc := NewCatalogService(repo)

	_, err := svc.Create(context.Background(), ServiceInput{
		Title:    "Web Development",
		Category: domain.CategoryWebDevelopment,
	}, "admin-1")
	assertErrCode(t, err, "CONFLICT")
}

func TestGetBySlugBumpsViews(t *testing.T) {
	repo := newFakeServiceRepo()
	svc := NewCatalogService(repo)

	created, err := svc.Create(context.Background(), ServiceInput{
		Title:    "Web Development",
		Category: domain.CategoryWebDevelopment,
	}, "admin-1")
	if err != nil {
		t.Fatal(err)
	}

	got, err := svc.GetBySlug(context.Background(), created.Slug)
	if err != nil {
		t.Fatalf("GetBySlug: %v", err)
	}
	if got.Views != 1 {
		t.Errorf("views = %d, want 1", got.Views)
	}
	again, _ := svc.GetBySlug(context.Background(), created.Slug)
	if again.Views != 2 {
		t.Errorf("views = %d, want 2", again.Views)
	}
}

func TestGetBySlugHidesInactive(t *testing.T) {
	repo := newFakeServiceRepo()
	svc := NewCatalogService(repo)

	inactive := false
	created, err := svc.Create(context.Background(), ServiceInput{
		Title:    "Retired Offering",
		Category: domain.CategoryConsulting,
		IsActive: &inactive,
	}, "admin-1")
	if err != nil {
		t.Fatal(err)
	}

	_, err = svc.GetBySlug(context.Background(), created.Slug)
	assertErrCode(t, err, "NOT_FOUND")
}

func TestGetBySlugUnknown(t *testing.T) {
	svc := NewCatalogService(newFakeServiceRepo())
	_, err := svc.GetBySlug(context.Background(), "nope")
	assertErrCode(t, err, "NOT_FOUND")
}

func TestUpdateServiceClearedSlugRederives(t *testing.T) {
	repo := newFakeServiceRepo()
	svc := NewCatalogService(repo)

	created, err := svc.Create(context.Background(), ServiceInput{
		Title:    "Web Development",
		Slug:     "old-slug",
		Category: domain.CategoryWebDevelopment,
	}, "admin-1")
	if err != nil {
		t.Fatal(err)
	}

	updated, err := svc.Update(context.Background(), created.ID, ServiceInput{
		Title:    "Mobile App Development",
		Category: domain.CategoryMobileDevelopment,
	}, "admin-1")
	if err != nil {
		t.Fatal(err)
	}
	if updated.Slug != "mobile-app-development" {
		t.Errorf("slug = %q, want mobile-app-development", updated.Slug)
	}
}

func TestToggleFlags(t *testing.T) {
	repo := newFakeServiceRepo()
	svc := NewCatalogService(repo)

	created, err := svc.Create(context.Background(), ServiceInput{
		Title:    "Web Development",
		Category: domain.CategoryWebDevelopment,
	}, "admin-1")
	if err != nil {
		t.Fatal(err)
	}

	toggled, err := svc.ToggleActive(context.Background(), created.ID, "admin-1")
	if err != nil {
		t.Fatal(err)
	}
	if toggled.IsActive {
		t.Error("active flag should have flipped off")
	}

	featured, err := svc.ToggleFeatured(context.Background(), created.ID, "admin-1")
	if err != nil {
		t.Fatal(err)
	}
	if !featured.IsFeatured {
		t.Error("featured flag should have flipped on")
	}
}

func TestSetDisplayOrder(t *testing.T) {
	repo := newFakeServiceRepo()
	svc := NewCatalogService(repo)

	created, err := svc.Create(context.Background(), ServiceInput{
		Title:    "Web Development",
		Category: domain.CategoryWebDevelopment,
	}, "admin-1")
	if err != nil {
		t.Fatal(err)
	}

	ranked, err := svc.SetDisplayOrder(context.Background(), created.ID, 5, "admin-1")
	if err != nil {
		t.Fatal(err)
	}
	if ranked.DisplayOrder != 5 {
		t.Errorf("display order = %d, want 5", ranked.DisplayOrder)
	}
}

func TestDeleteServiceMissing(t *testing.T) {
	svc := NewCatalogService(newFakeServiceRepo())
	err := svc.Delete(context.Background(), "service-404")
	assertErrCode(t, err, "NOT_FOUND")
}
