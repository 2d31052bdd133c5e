package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/lumenworks/agency-service/internal/domain"
	"github.com/lumenworks/agency-service/internal/events"
	"github.com/lumenworks/agency-service/internal/repository"
	apperrors "github.com/lumenworks/agency-service/pkg/util"
)

// ContactService coordinates inquiry intake and triage workflows.
type ContactService struct {
	contacts   repository.ContactRepository
	notes      repository.ContactNoteRepository
	responses  repository.ContactResponseRepository
	services   repository.ServiceRepository
	users      repository.UserRepository
	dispatcher events.Dispatcher
}

// ContactDependencies bundles repositories for the contact service.
type ContactDependencies struct {
	ContactRepo  repository.ContactRepository
	NoteRepo     repository.ContactNoteRepository
	ResponseRepo repository.ContactResponseRepository
	ServiceRepo  repository.ServiceRepository
	UserRepo     repository.UserRepository
	Dispatcher   events.Dispatcher
}

// ContactCreateInput describes the public submission payload.
type ContactCreateInput struct {
	Name      string
	Email     string
	Phone     string
	Company   *string
	Subject   string
	Message   string
	ServiceID *string
	Budget    *string
	Timeline  *string
	Source    domain.ContactSource
	IPAddress string
	UserAgent string
	CreatedBy *string
}

// ContactUpdateInput describes admin edits to an inquiry.
type ContactUpdateInput struct {
	Name     string
	Email    string
	Phone    string
	Company  *string
	Subject  string
	Message  string
	Budget   *string
	Timeline *string
	Priority domain.Priority
	Tags     []string
	FollowUp domain.FollowUp
}

// ContactDetail is the read-side projection of a contact with its thread and
// resolved references.
type ContactDetail struct {
	Contact      *domain.Contact
	Notes        []domain.ContactNote
	Responses    []domain.ContactResponse
	AssigneeName *string
	ServiceTitle *string
}

// NewContactService constructs the service.
func NewContactService(deps ContactDependencies) *ContactService {
	return &ContactService{
		contacts:   deps.ContactRepo,
		notes:      deps.NoteRepo,
		responses:  deps.ResponseRepo,
		services:   deps.ServiceRepo,
		users:      deps.UserRepo,
		dispatcher: deps.Dispatcher,
	}
}

// Submit creates an inquiry from the public contact form. The spam heuristic
// runs as part of the save; a contact scored as spam lands directly in the
// spam status.
func (s *ContactService) Submit(ctx context.Context, input ContactCreateInput) (*domain.Contact, error) {
	contact := &domain.Contact{
		Name:      strings.TrimSpace(input.Name),
		Email:     strings.TrimSpace(input.Email),
		Phone:     strings.TrimSpace(input.Phone),
		Company:   input.Company,
		Subject:   strings.TrimSpace(input.Subject),
		Message:   strings.TrimSpace(input.Message),
		ServiceID: input.ServiceID,
		Budget:    input.Budget,
		Timeline:  input.Timeline,
		Source:    input.Source,
		Status:    domain.ContactStatusNew,
		Priority:  domain.PriorityMedium,
		IPAddress: input.IPAddress,
		UserAgent: input.UserAgent,
		CreatedBy: input.CreatedBy,
	}
	if contact.Source == "" {
		contact.Source = domain.SourceWebsite
	}

	contact.ApplySpamScore()
	if contact.IsSpam {
		contact.Status = domain.ContactStatusSpam
	}

	if input.ServiceID != nil {
		if _, err := s.services.GetByID(ctx, *input.ServiceID); err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return nil, apperrors.NewValidationError("referenced service does not exist", nil)
			}
			return nil, apperrors.MapError(err)
		}
	}

	if err := s.contacts.Create(ctx, contact); err != nil {
		return nil, apperrors.MapError(err)
	}

	if contact.ServiceID != nil {
		// Counter is best-effort; a failed bump must not fail the intake.
		_ = s.services.IncrementInquiries(ctx, *contact.ServiceID)
	}

	s.publishEvent(ctx, events.Event{
		Type:     events.EventContactCreated,
		EntityID: contact.ID,
		Payload: events.ContactCreatedPayload{
			Name:      contact.Name,
			Email:     contact.Email,
			Subject:   contact.Subject,
			IsSpam:    contact.IsSpam,
			SpamScore: contact.SpamScore,
			Status:    contact.Status,
		},
	})
	return contact, nil
}

// List returns a filtered, paginated page of contacts plus the total count.
func (s *ContactService) List(ctx context.Context, filter repository.ContactFilter) ([]domain.Contact, int64, error) {
	items, total, err := s.contacts.List(ctx, filter)
	if err != nil {
		return nil, 0, apperrors.MapError(err)
	}
	return items, total, nil
}

// Get fetches one contact with its thread and resolved references.
func (s *ContactService) Get(ctx context.Context, id string) (*ContactDetail, error) {
	contact, err := s.getContact(ctx, id)
	if err != nil {
		return nil, err
	}

	detail := &ContactDetail{Contact: contact}

	if detail.Notes, err = s.notes.ListByContact(ctx, id); err != nil {
		return nil, apperrors.MapError(err)
	}
	if detail.Responses, err = s.responses.ListByContact(ctx, id); err != nil {
		return nil, apperrors.MapError(err)
	}

	if contact.AssignedTo != nil {
		if assignee, err := s.users.GetByID(ctx, *contact.AssignedTo); err == nil {
			detail.AssigneeName = &assignee.Name
		}
	}
	if contact.ServiceID != nil {
		if svc, err := s.services.GetByID(ctx, *contact.ServiceID); err == nil {
			detail.ServiceTitle = &svc.Title
		}
	}
	return detail, nil
}

// Update applies admin edits. The spam score is recomputed from the updated
// content, overwriting whatever was stored before.
func (s *ContactService) Update(ctx context.Context, id string, input ContactUpdateInput, updatedBy string) (*domain.Contact, error) {
	contact, err := s.getContact(ctx, id)
	if err != nil {
		return nil, err
	}

	contact.Name = strings.TrimSpace(input.Name)
	contact.Email = strings.TrimSpace(input.Email)
	contact.Phone = strings.TrimSpace(input.Phone)
	contact.Company = input.Company
	contact.Subject = strings.TrimSpace(input.Subject)
	contact.Message = strings.TrimSpace(input.Message)
	contact.Budget = input.Budget
	contact.Timeline = input.Timeline
	contact.Tags = input.Tags
	contact.FollowUp = input.FollowUp
	if input.Priority != "" {
		if !input.Priority.Valid() {
			return nil, apperrors.NewValidationError("invalid priority", nil)
		}
		contact.Priority = input.Priority
	}
	contact.UpdatedBy = &updatedBy

	contact.ApplySpamScore()

	if err := s.contacts.Update(ctx, contact); err != nil {
		return nil, apperrors.MapError(err)
	}
	return contact, nil
}

// UpdateStatus overwrites the status. Any state is reachable from any state.
func (s *ContactService) UpdateStatus(ctx context.Context, id string, status domain.ContactStatus, updatedBy string) (*domain.Contact, error) {
	if !status.Valid() {
		return nil, apperrors.NewValidationError("invalid status", map[string]any{"status": status})
	}
	contact, err := s.getContact(ctx, id)
	if err != nil {
		return nil, err
	}
	oldStatus := contact.Status
	contact.Status = status
	contact.UpdatedBy = &updatedBy
	if err := s.contacts.Update(ctx, contact); err != nil {
		return nil, apperrors.MapError(err)
	}
	s.publishEvent(ctx, events.Event{
		Type:     events.EventContactStatusChanged,
		EntityID: contact.ID,
		Actor:    events.Actor{UserID: updatedBy, Role: domain.RoleAdmin},
		Payload: events.ContactStatusChangedPayload{
			OldStatus: oldStatus,
			NewStatus: status,
		},
	})
	return contact, nil
}

// Assign sets the owning admin for an inquiry.
func (s *ContactService) Assign(ctx context.Context, id, assigneeID, updatedBy string) (*domain.Contact, error) {
	if _, err := s.users.GetByID(ctx, assigneeID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("assignee", map[string]any{"user_id": assigneeID})
		}
		return nil, apperrors.MapError(err)
	}
	contact, err := s.getContact(ctx, id)
	if err != nil {
		return nil, err
	}
	contact.AssignedTo = &assigneeID
	contact.UpdatedBy = &updatedBy
	if err := s.contacts.Update(ctx, contact); err != nil {
		return nil, apperrors.MapError(err)
	}
	return contact, nil
}

// AddNote appends an internal note; entries are immutable once written.
func (s *ContactService) AddNote(ctx context.Context, id, text, author string) (*domain.ContactNote, error) {
	contact, err := s.getContact(ctx, id)
	if err != nil {
		return nil, err
	}
	note := &domain.ContactNote{
		ContactID: contact.ID,
		Text:      strings.TrimSpace(text),
		Author:    author,
	}
	if err := s.notes.Create(ctx, note); err != nil {
		return nil, apperrors.MapError(err)
	}
	if err := s.touch(ctx, contact, author); err != nil {
		return nil, err
	}
	return note, nil
}

// AddResponse appends an outbound response record.
func (s *ContactService) AddResponse(ctx context.Context, id, message string, method domain.ResponseMethod, author string) (*domain.ContactResponse, error) {
	contact, err := s.getContact(ctx, id)
	if err != nil {
		return nil, err
	}
	response := &domain.ContactResponse{
		ContactID: contact.ID,
		Message:   strings.TrimSpace(message),
		Method:    method,
		Author:    author,
	}
	if err := s.responses.Create(ctx, response); err != nil {
		return nil, apperrors.MapError(err)
	}
	if err := s.touch(ctx, contact, author); err != nil {
		return nil, err
	}
	return response, nil
}

// SetSpamFlag is the manual override path. It writes the flag directly and
// does not run the heuristic; the next content-changing update recomputes it.
func (s *ContactService) SetSpamFlag(ctx context.Context, id string, isSpam bool, updatedBy string) (*domain.Contact, error) {
	contact, err := s.getContact(ctx, id)
	if err != nil {
		return nil, err
	}
	contact.IsSpam = isSpam
	if isSpam {
		contact.Status = domain.ContactStatusSpam
	} else if contact.Status == domain.ContactStatusSpam {
		contact.Status = domain.ContactStatusNew
	}
	contact.UpdatedBy = &updatedBy
	if err := s.contacts.Update(ctx, contact); err != nil {
		return nil, apperrors.MapError(err)
	}
	return contact, nil
}

// Delete removes a contact permanently.
func (s *ContactService) Delete(ctx context.Context, id string) error {
	if err := s.contacts.Delete(ctx, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("contact", map[string]any{"contact_id": id})
		}
		return apperrors.MapError(err)
	}
	return nil
}

// Stats returns the reporting rollup for contacts.
func (s *ContactService) Stats(ctx context.Context) (*repository.ContactStats, error) {
	stats, err := s.contacts.Stats(ctx)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return stats, nil
}

func (s *ContactService) getContact(ctx context.Context, id string) (*domain.Contact, error) {
	contact, err := s.contacts.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("contact", map[string]any{"contact_id": id})
		}
		return nil, apperrors.MapError(err)
	}
	return contact, nil
}

// touch stamps updated_by/updated_at on the parent after a sub-record append.
func (s *ContactService) touch(ctx context.Context, contact *domain.Contact, author string) error {
	contact.UpdatedBy = &author
	if err := s.contacts.Update(ctx, contact); err != nil {
		return apperrors.MapError(err)
	}
	return nil
}

func (s *ContactService) publishEvent(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	_ = s.dispatcher.Publish(ctx, event)
}
