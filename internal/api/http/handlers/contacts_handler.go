package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/lumenworks/agency-service/internal/api/dto"
	"github.com/lumenworks/agency-service/internal/auth"
	"github.com/lumenworks/agency-service/internal/domain"
	"github.com/lumenworks/agency-service/internal/repository"
	"github.com/lumenworks/agency-service/internal/service"
	apperrors "github.com/lumenworks/agency-service/pkg/util"
)

// ContactsHandler exposes the contact form and its admin triage endpoints.
type ContactsHandler struct {
	service *service.ContactService
}

// NewContactsHandler constructs handler.
func NewContactsHandler(contactService *service.ContactService) *ContactsHandler {
	return &ContactsHandler{service: contactService}
}

// Submit POST /contact.
func (h *ContactsHandler) Submit(c *fiber.Ctx) error {
	var req dto.SubmitContactRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if strings.TrimSpace(req.Name) == "" || strings.TrimSpace(req.Email) == "" ||
		strings.TrimSpace(req.Subject) == "" || strings.TrimSpace(req.Message) == "" {
		return apperrors.NewValidationError("name, email, subject, message required", nil)
	}

	input := service.ContactCreateInput{
		Name:      req.Name,
		Email:     req.Email,
		Phone:     req.Phone,
		Company:   req.Company,
		Subject:   req.Subject,
		Message:   req.Message,
		ServiceID: req.ServiceID,
		Budget:    req.Budget,
		Timeline:  req.Timeline,
		Source:    req.Source,
		IPAddress: c.IP(),
		UserAgent: c.Get(fiber.HeaderUserAgent),
	}
	if principal, okAuth := auth.PrincipalFromContext(c); okAuth && principal.User != nil {
		input.CreatedBy = &principal.User.ID
	}

	contact, err := h.service.Submit(c.UserContext(), input)
	if err != nil {
		return err
	}
	return created(c, "thank you for contacting us", contactSummary(contact))
}

// List GET /contact.
func (h *ContactsHandler) List(c *fiber.Ctx) error {
	filter, page, limit := parseContactQuery(c)
	contacts, total, err := h.service.List(c.UserContext(), filter)
	if err != nil {
		return err
	}
	items := make([]dto.ContactSummary, 0, len(contacts))
	for i := range contacts {
		items = append(items, contactSummary(&contacts[i]))
	}
	return okList(c, items, dto.NewPagination(page, limit, total))
}

// Get GET /contact/:id.
func (h *ContactsHandler) Get(c *fiber.Ctx) error {
	detail, err := h.service.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return ok(c, contactDetail(detail))
}

// Update PUT /contact/:id.
func (h *ContactsHandler) Update(c *fiber.Ctx) error {
	principal := mustPrincipal(c)
	var req dto.UpdateContactRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if strings.TrimSpace(req.Name) == "" || strings.TrimSpace(req.Email) == "" ||
		strings.TrimSpace(req.Subject) == "" || strings.TrimSpace(req.Message) == "" {
		return apperrors.NewValidationError("name, email, subject, message required", nil)
	}

	input := service.ContactUpdateInput{
		Name:     req.Name,
		Email:    req.Email,
		Phone:    req.Phone,
		Company:  req.Company,
		Subject:  req.Subject,
		Message:  req.Message,
		Budget:   req.Budget,
		Timeline: req.Timeline,
		Priority: req.Priority,
		Tags:     req.Tags,
		FollowUp: req.FollowUp,
	}
	contact, err := h.service.Update(c.UserContext(), c.Params("id"), input, principal.User.ID)
	if err != nil {
		return err
	}
	return okMessage(c, "contact updated", contactSummary(contact))
}

// UpdateStatus PATCH /contact/:id/status.
func (h *ContactsHandler) UpdateStatus(c *fiber.Ctx) error {
	principal := mustPrincipal(c)
	var req dto.ContactStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	contact, err := h.service.UpdateStatus(c.UserContext(), c.Params("id"), req.Status, principal.User.ID)
	if err != nil {
		return err
	}
	return okMessage(c, "status updated", contactSummary(contact))
}

// Assign PATCH /contact/:id/assign.
func (h *ContactsHandler) Assign(c *fiber.Ctx) error {
	principal := mustPrincipal(c)
	var req dto.AssignRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.UserID == "" {
		return apperrors.NewValidationError("user_id required", nil)
	}
	contact, err := h.service.Assign(c.UserContext(), c.Params("id"), req.UserID, principal.User.ID)
	if err != nil {
		return err
	}
	return okMessage(c, "contact assigned", contactSummary(contact))
}

// SetSpamFlag PATCH /contact/:id/spam.
func (h *ContactsHandler) SetSpamFlag(c *fiber.Ctx) error {
	principal := mustPrincipal(c)
	var req dto.SpamFlagRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	contact, err := h.service.SetSpamFlag(c.UserContext(), c.Params("id"), req.IsSpam, principal.User.ID)
	if err != nil {
		return err
	}
	return okMessage(c, "spam flag updated", contactSummary(contact))
}

// AddNote POST /contact/:id/notes.
func (h *ContactsHandler) AddNote(c *fiber.Ctx) error {
	principal := mustPrincipal(c)
	var req dto.NoteRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if strings.TrimSpace(req.Text) == "" {
		return apperrors.NewValidationError("text required", nil)
	}
	note, err := h.service.AddNote(c.UserContext(), c.Params("id"), req.Text, principal.User.ID)
	if err != nil {
		return err
	}
	return created(c, "note added", contactNoteResponse(note))
}

// AddResponse POST /contact/:id/responses.
func (h *ContactsHandler) AddResponse(c *fiber.Ctx) error {
	principal := mustPrincipal(c)
	var req dto.ResponseRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if strings.TrimSpace(req.Message) == "" {
		return apperrors.NewValidationError("message required", nil)
	}
	response, err := h.service.AddResponse(c.UserContext(), c.Params("id"), req.Message, req.Method, principal.User.ID)
	if err != nil {
		return err
	}
	return created(c, "response recorded", contactResponseEntry(response))
}

// Delete DELETE /contact/:id.
func (h *ContactsHandler) Delete(c *fiber.Ctx) error {
	if err := h.service.Delete(c.UserContext(), c.Params("id")); err != nil {
		return err
	}
	return okMessage(c, "contact deleted", nil)
}

// Stats GET /contact/stats/overview.
func (h *ContactsHandler) Stats(c *fiber.Ctx) error {
	stats, err := h.service.Stats(c.UserContext())
	if err != nil {
		return err
	}
	resp := dto.ContactStatsResponse{
		Total:        stats.Total,
		SpamCount:    stats.SpamCount,
		AvgSpamScore: stats.AvgSpamScore,
	}
	for _, row := range stats.ByStatus {
		resp.ByStatus = append(resp.ByStatus, dto.BreakdownRow{Key: row.Key, Count: row.Count})
	}
	for _, row := range stats.BySource {
		resp.BySource = append(resp.BySource, dto.BreakdownRow{Key: row.Key, Count: row.Count})
	}
	for _, row := range stats.MonthlySeries {
		resp.MonthlySeries = append(resp.MonthlySeries, dto.MonthRow{Year: row.Year, Month: row.Month, Count: row.Count})
	}
	return ok(c, resp)
}

func parseContactQuery(c *fiber.Ctx) (repository.ContactFilter, int, int) {
	filter := repository.ContactFilter{}
	if status := c.Query("status"); status != "" {
		s := domain.ContactStatus(status)
		filter.Status = &s
	}
	if priority := c.Query("priority"); priority != "" {
		p := domain.Priority(priority)
		filter.Priority = &p
	}
	if source := c.Query("source"); source != "" {
		s := domain.ContactSource(source)
		filter.Source = &s
	}
	filter.AssignedTo = strPtr(c.Query("assigned_to"))
	filter.IsSpam = parseBool(c.Query("is_spam"))
	filter.SearchTerm = strPtr(c.Query("search"))
	filter.SortBy, filter.SortDesc = sortOrder(c)

	page, limit := parsePage(c)
	filter.Limit = limit
	filter.Offset = (page - 1) * limit
	return filter, page, limit
}

// mustPrincipal is only called behind the auth middleware, which guarantees a
// resolved user.
func mustPrincipal(c *fiber.Ctx) *auth.Principal {
	principal, _ := auth.PrincipalFromContext(c)
	return principal
}

func contactSummary(contact *domain.Contact) dto.ContactSummary {
	return dto.ContactSummary{
		ID:         contact.ID,
		Name:       contact.Name,
		Email:      contact.Email,
		Subject:    contact.Subject,
		Source:     contact.Source,
		Status:     contact.Status,
		Priority:   contact.Priority,
		AssignedTo: contact.AssignedTo,
		IsSpam:     contact.IsSpam,
		SpamScore:  contact.SpamScore,
		CreatedAt:  contact.CreatedAt,
		UpdatedAt:  contact.UpdatedAt,
	}
}

func contactDetail(detail *service.ContactDetail) dto.ContactDetailResponse {
	contact := detail.Contact
	notes := make([]dto.ContactNoteResponse, 0, len(detail.Notes))
	for i := range detail.Notes {
		notes = append(notes, contactNoteResponse(&detail.Notes[i]))
	}
	responses := make([]dto.ContactResponseEntry, 0, len(detail.Responses))
	for i := range detail.Responses {
		responses = append(responses, contactResponseEntry(&detail.Responses[i]))
	}
	return dto.ContactDetailResponse{
		ID:           contact.ID,
		Name:         contact.Name,
		Email:        contact.Email,
		Phone:        contact.Phone,
		Company:      contact.Company,
		Subject:      contact.Subject,
		Message:      contact.Message,
		ServiceID:    contact.ServiceID,
		ServiceTitle: detail.ServiceTitle,
		Budget:       contact.Budget,
		Timeline:     contact.Timeline,
		Source:       contact.Source,
		Status:       contact.Status,
		Priority:     contact.Priority,
		AssignedTo:   contact.AssignedTo,
		AssigneeName: detail.AssigneeName,
		Tags:         contact.Tags,
		FollowUp:     contact.FollowUp,
		IPAddress:    contact.IPAddress,
		UserAgent:    contact.UserAgent,
		IsSpam:       contact.IsSpam,
		SpamScore:    contact.SpamScore,
		Notes:        notes,
		Responses:    responses,
		CreatedAt:    contact.CreatedAt,
		UpdatedAt:    contact.UpdatedAt,
	}
}

func contactNoteResponse(note *domain.ContactNote) dto.ContactNoteResponse {
	return dto.ContactNoteResponse{
		ID:        note.ID,
		Text:      note.Text,
		Author:    note.Author,
		CreatedAt: note.CreatedAt,
	}
}

func contactResponseEntry(response *domain.ContactResponse) dto.ContactResponseEntry {
	return dto.ContactResponseEntry{
		ID:        response.ID,
		Message:   response.Message,
		Method:    response.Method,
		Author:    response.Author,
		CreatedAt: response.CreatedAt,
	}
}
