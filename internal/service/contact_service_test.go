package service

import (
	"context"
	"errors"
	"testing"

	"github.com/lumenworks/agency-service/internal/domain"
	apperrors "github.com/lumenworks/agency-service/pkg/util"
)

func newContactTestService(contacts *fakeContactRepo, services *fakeServiceRepo) *ContactService {
	return NewContactService(ContactDependencies{
		ContactRepo:  contacts,
		NoteRepo:     &fakeNoteRepo{},
		ResponseRepo: &fakeResponseRepo{},
		ServiceRepo:  services,
		UserRepo:     newFakeUserRepo(&domain.User{ID: "admin-1", Name: "Admin", Role: domain.RoleAdmin}),
	})
}

func assertErrCode(t *testing.T, err error, code string) {
	t.Helper()
	var de *apperrors.DomainError
	if !errors.As(err, &de) {
		t.Fatalf("expected DomainError with code %s, got %v", code, err)
	}
	if de.Code != code {
		t.Fatalf("error code = %s, want %s", de.Code, code)
	}
}

func TestSubmitCleanContact(t *testing.T) {
	svc := newContactTestService(newFakeContactRepo(), newFakeServiceRepo())

	contact, err := svc.Submit(context.Background(), ContactCreateInput{
		Name:    "  Jane Doe  ",
		Email:   "jane@acme.com",
		Subject: "Website inquiry",
		Message: "We would like a quote for a new company website.",
	})
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if contact.Name != "Jane Doe" {
		t.Errorf("name not trimmed: %q", contact.Name)
	}
	if contact.Status != domain.ContactStatusNew {
		t.Errorf("status = %s, want new", contact.Status)
	}
	if contact.Priority != domain.PriorityMedium {
		t.Errorf("priority = %s, want medium", contact.Priority)
	}
	if contact.Source != domain.SourceWebsite {
		t.Errorf("source = %s, want website", contact.Source)
	}
	if contact.IsSpam || contact.SpamScore != 0 {
		t.Errorf("clean contact scored %d", contact.SpamScore)
	}
}

func TestSubmitSpamLandsInSpamStatus(t *testing.T) {
	svc := newContactTestService(newFakeContactRepo(), newFakeServiceRepo())

	contact, err := svc.Submit(context.Background(), ContactCreateInput{
		Name:    "Bot",
		Email:   "bot@test.com",
		Subject: "cheap viagra",
		Message: "viagra",
	})
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if !contact.IsSpam {
		t.Fatal("contact should be flagged as spam")
	}
	if contact.Status != domain.ContactStatusSpam {
		t.Errorf("status = %s, want spam", contact.Status)
	}
	if contact.SpamScore != 150 {
		t.Errorf("score = %d, want 150", contact.SpamScore)
	}
}

func TestSubmitWithServiceReference(t *testing.T) {
	services := newFakeServiceRepo()
	offering := &domain.Service{Title: "Web Development", Slug: "web-development", IsActive: true}
	if err := services.Create(context.Background(), offering); err != nil {
		t.Fatal(err)
	}
	svc := newContactTestService(newFakeContactRepo(), services)

	_, err := svc.Submit(context.Background(), ContactCreateInput{
		Name:      "Jane",
		Email:     "jane@acme.com",
		Subject:   "Quote",
		Message:   "Interested in the web development offering.",
		ServiceID: &offering.ID,
	})
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	stored, _ := services.GetByID(context.Background(), offering.ID)
	if stored.Inquiries != 1 {
		t.Errorf("inquiries = %d, want 1", stored.Inquiries)
	}
}

func TestSubmitUnknownServiceReference(t *testing.T) {
	svc := newContactTestService(newFakeContactRepo(), newFakeServiceRepo())
	missing := "service-404"

	_, err := svc.Submit(context.Background(), ContactCreateInput{
		Name:      "Jane",
		Email:     "jane@acme.com",
		Subject:   "Quote",
		Message:   "Interested in something that does not exist.",
		ServiceID: &missing,
	})
	assertErrCode(t, err, "VALIDATION_FAILED")
}

func TestUpdateRecomputesSpamScore(t *testing.T) {
	contacts := newFakeContactRepo()
	svc := newContactTestService(contacts, newFakeServiceRepo())

	contact, err := svc.Submit(context.Background(), ContactCreateInput{
		Name:    "Jane",
		Email:   "jane@acme.com",
		Subject: "Quote",
		Message: "A perfectly reasonable project description.",
	})
	if err != nil {
		t.Fatal(err)
	}

	updated, err := svc.Update(context.Background(), contact.ID, ContactUpdateInput{
		Name:    "Jane",
		Email:   "bot@test.com",
		Subject: "viagra",
		Message: "viagra",
	}, "admin-1")
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.SpamScore != 150 || !updated.IsSpam {
		t.Errorf("spam not recomputed: score=%d isSpam=%v", updated.SpamScore, updated.IsSpam)
	}
}

func TestUpdateStatusRejectsUnknownState(t *testing.T) {
	svc := newContactTestService(newFakeContactRepo(), newFakeServiceRepo())
	_, err := svc.UpdateStatus(context.Background(), "contact-1", domain.ContactStatus("archived"), "admin-1")
	assertErrCode(t, err, "VALIDATION_FAILED")
}

func TestUpdateStatusMissingContact(t *testing.T) {
	svc := newContactTestService(newFakeContactRepo(), newFakeServiceRepo())
	_, err := svc.UpdateStatus(context.Background(), "contact-404", domain.ContactStatusClosed, "admin-1")
	assertErrCode(t, err, "NOT_FOUND")
}

func TestUpdateStatusAnyTransitionAllowed(t *testing.T) {
	contacts := newFakeContactRepo()
	svc := newContactTestService(contacts, newFakeServiceRepo())

	contact, err := svc.Submit(context.Background(), ContactCreateInput{
		Name:    "Jane",
		Email:   "jane@acme.com",
		Subject: "Quote",
		Message: "Closed conversations can be reopened at any time.",
	})
	if err != nil {
		t.Fatal(err)
	}

	for _, status := range []domain.ContactStatus{
		domain.ContactStatusClosed, domain.ContactStatusNew, domain.ContactStatusResponded,
	} {
		if _, err := svc.UpdateStatus(context.Background(), contact.ID, status, "admin-1"); err != nil {
			t.Fatalf("transition to %s: %v", status, err)
		}
	}
}

func TestSetSpamFlagManualOverride(t *testing.T) {
	contacts := newFakeContactRepo()
	svc := newContactTestService(contacts, newFakeServiceRepo())

	contact, err := svc.Submit(context.Background(), ContactCreateInput{
		Name:    "Jane",
		Email:   "jane@acme.com",
		Subject: "Quote",
		Message: "A legitimate inquiry flagged by a suspicious admin.",
	})
	if err != nil {
		t.Fatal(err)
	}

	flagged, err := svc.SetSpamFlag(context.Background(), contact.ID, true, "admin-1")
	if err != nil {
		t.Fatal(err)
	}
	if !flagged.IsSpam || flagged.Status != domain.ContactStatusSpam {
		t.Errorf("manual flag: isSpam=%v status=%s", flagged.IsSpam, flagged.Status)
	}
	// The override writes the flag directly; the heuristic score is untouched.
	if flagged.SpamScore != 0 {
		t.Errorf("score changed by manual flag: %d", flagged.SpamScore)
	}

	cleared, err := svc.SetSpamFlag(context.Background(), contact.ID, false, "admin-1")
	if err != nil {
		t.Fatal(err)
	}
	if cleared.IsSpam || cleared.Status != domain.ContactStatusNew {
		t.Errorf("clear flag: isSpam=%v status=%s", cleared.IsSpam, cleared.Status)
	}
}

func TestAddNoteAndResponseAppendToThread(t *testing.T) {
	contacts := newFakeContactRepo()
	svc := newContactTestService(contacts, newFakeServiceRepo())

	contact, err := svc.Submit(context.Background(), ContactCreateInput{
		Name:    "Jane",
		Email:   "jane@acme.com",
		Subject: "Quote",
		Message: "Looking forward to hearing back from your team.",
	})
	if err != nil {
		t.Fatal(err)
	}

	if _, err := svc.AddNote(context.Background(), contact.ID, "checked budget range", "admin-1"); err != nil {
		t.Fatalf("AddNote: %v", err)
	}
	if _, err := svc.AddResponse(context.Background(), contact.ID, "sent proposal", domain.ResponseMethodEmail, "admin-1"); err != nil {
		t.Fatalf("AddResponse: %v", err)
	}

	detail, err := svc.Get(context.Background(), contact.ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(detail.Notes) != 1 || len(detail.Responses) != 1 {
		t.Errorf("thread sizes: notes=%d responses=%d", len(detail.Notes), len(detail.Responses))
	}
	if detail.Contact.UpdatedBy == nil || *detail.Contact.UpdatedBy != "admin-1" {
		t.Error("parent not touched after append")
	}
}

func TestAssignUnknownUser(t *testing.T) {
	svc := newContactTestService(newFakeContactRepo(), newFakeServiceRepo())
	_, err := svc.Assign(context.Background(), "contact-1", "user-404", "admin-1")
	assertErrCode(t, err, "NOT_FOUND")
}
