package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/lumenworks/agency-service/internal/domain"
	"github.com/lumenworks/agency-service/internal/repository"
)

// In-memory repository fakes shared by the service tests.

type fakeContactRepo struct {
	contacts map[string]*domain.Contact
	seq      int
}

func newFakeContactRepo() *fakeContactRepo {
	return &fakeContactRepo{contacts: map[string]*domain.Contact{}}
}

func (f *fakeContactRepo) Create(_ context.Context, contact *domain.Contact) error {
	f.seq++
	contact.ID = fmt.Sprintf("contact-%d", f.seq)
	contact.CreatedAt = time.Now()
	contact.UpdatedAt = contact.CreatedAt
	stored := *contact
	f.contacts[contact.ID] = &stored
	return nil
}

func (f *fakeContactRepo) Update(_ context.Context, contact *domain.Contact) error {
	if _, ok := f.contacts[contact.ID]; !ok {
		return pgx.ErrNoRows
	}
	contact.UpdatedAt = time.Now()
	stored := *contact
	f.contacts[contact.ID] = &stored
	return nil
}

func (f *fakeContactRepo) GetByID(_ context.Context, id string) (*domain.Contact, error) {
	contact, ok := f.contacts[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := *contact
	return &copied, nil
}

func (f *fakeContactRepo) List(_ context.Context, _ repository.ContactFilter) ([]domain.Contact, int64, error) {
	ids := make([]string, 0, len(f.contacts))
	for id := range f.contacts {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	items := make([]domain.Contact, 0, len(ids))
	for _, id := range ids {
		items = append(items, *f.contacts[id])
	}
	return items, int64(len(items)), nil
}

func (f *fakeContactRepo) Delete(_ context.Context, id string) error {
	if _, ok := f.contacts[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(f.contacts, id)
	return nil
}

func (f *fakeContactRepo) Stats(_ context.Context) (*repository.ContactStats, error) {
	return &repository.ContactStats{Total: int64(len(f.contacts))}, nil
}

type fakeNoteRepo struct {
	notes []domain.ContactNote
}

func (f *fakeNoteRepo) Create(_ context.Context, note *domain.ContactNote) error {
	note.ID = fmt.Sprintf("note-%d", len(f.notes)+1)
	note.CreatedAt = time.Now()
	f.notes = append(f.notes, *note)
	return nil
}

func (f *fakeNoteRepo) ListByContact(_ context.Context, contactID string) ([]domain.ContactNote, error) {
	var out []domain.ContactNote
	for _, n := range f.notes {
		if n.ContactID == contactID {
			out = append(out, n)
		}
	}
	return out, nil
}

type fakeResponseRepo struct {
	responses []domain.ContactResponse
}

func (f *fakeResponseRepo) Create(_ context.Context, response *domain.ContactResponse) error {
	response.ID = fmt.Sprintf("response-%d", len(f.responses)+1)
	response.CreatedAt = time.Now()
	f.responses = append(f.responses, *response)
	return nil
}

func (f *fakeResponseRepo) ListByContact(_ context.Context, contactID string) ([]domain.ContactResponse, error) {
	var out []domain.ContactResponse
	for _, r := range f.responses {
		if r.ContactID == contactID {
			out = append(out, r)
		}
	}
	return out, nil
}

type fakeServiceRepo struct {
	services  map[string]*domain.Service
	bySlug    map[string]string
	seq       int
	createErr error
	updateErr error
}

func newFakeServiceRepo() *fakeServiceRepo {
	return &fakeServiceRepo{services: map[string]*domain.Service{}, bySlug: map[string]string{}}
}

func (f *fakeServiceRepo) Create(_ context.Context, svc *domain.Service) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.seq++
	svc.ID = fmt.Sprintf("service-%d", f.seq)
	svc.CreatedAt = time.Now()
	svc.UpdatedAt = svc.CreatedAt
	stored := *svc
	f.services[svc.ID] = &stored
	f.bySlug[svc.Slug] = svc.ID
	return nil
}

func (f *fakeServiceRepo) Update(_ context.Context, svc *domain.Service) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	old, ok := f.services[svc.ID]
	if !ok {
		return pgx.ErrNoRows
	}
	delete(f.bySlug, old.Slug)
	svc.UpdatedAt = time.Now()
	stored := *svc
	f.services[svc.ID] = &stored
	f.bySlug[svc.Slug] = svc.ID
	return nil
}

func (f *fakeServiceRepo) GetByID(_ context.Context, id string) (*domain.Service, error) {
	svc, ok := f.services[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := *svc
	return &copied, nil
}

func (f *fakeServiceRepo) GetBySlug(_ context.Context, slug string) (*domain.Service, error) {
	id, ok := f.bySlug[slug]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return f.GetByID(context.Background(), id)
}

func (f *fakeServiceRepo) List(_ context.Context, _ repository.ServiceFilter) ([]domain.Service, int64, error) {
	ids := make([]string, 0, len(f.services))
	for id := range f.services {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	items := make([]domain.Service, 0, len(ids))
	for _, id := range ids {
		items = append(items, *f.services[id])
	}
	return items, int64(len(items)), nil
}

func (f *fakeServiceRepo) Delete(_ context.Context, id string) error {
	svc, ok := f.services[id]
	if !ok {
		return pgx.ErrNoRows
	}
	delete(f.bySlug, svc.Slug)
	delete(f.services, id)
	return nil
}

func (f *fakeServiceRepo) IncrementViews(_ context.Context, slug string) error {
	id, ok := f.bySlug[slug]
	if !ok {
		return pgx.ErrNoRows
	}
	f.services[id].Views++
	return nil
}

func (f *fakeServiceRepo) IncrementInquiries(_ context.Context, id string) error {
	svc, ok := f.services[id]
	if !ok {
		return pgx.ErrNoRows
	}
	svc.Inquiries++
	return nil
}

func (f *fakeServiceRepo) Stats(_ context.Context) (*repository.ServiceStats, error) {
	stats := &repository.ServiceStats{Total: int64(len(f.services))}
	for _, svc := range f.services {
		if svc.IsActive {
			stats.ActiveCount++
		}
		if svc.IsFeatured {
			stats.FeaturedCount++
		}
		stats.TotalViews += svc.Views
		stats.TotalInquiries += svc.Inquiries
	}
	return stats, nil
}

type fakeUserRepo struct {
	users map[string]*domain.User
}

func newFakeUserRepo(users ...*domain.User) *fakeUserRepo {
	repo := &fakeUserRepo{users: map[string]*domain.User{}}
	for _, u := range users {
		repo.users[u.ID] = u
	}
	return repo
}

func (f *fakeUserRepo) Create(_ context.Context, user *domain.User) error {
	user.ID = fmt.Sprintf("user-%d", len(f.users)+1)
	f.users[user.ID] = user
	return nil
}

func (f *fakeUserRepo) Update(_ context.Context, user *domain.User) error {
	if _, ok := f.users[user.ID]; !ok {
		return pgx.ErrNoRows
	}
	f.users[user.ID] = user
	return nil
}

func (f *fakeUserRepo) GetByID(_ context.Context, id string) (*domain.User, error) {
	user, ok := f.users[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return user, nil
}

func (f *fakeUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, user := range f.users {
		if user.Email == email {
			return user, nil
		}
	}
	return nil, pgx.ErrNoRows
}

type fakeOrderRepo struct {
	orders map[string]*domain.Order
	seq    int
}

func newFakeOrderRepo() *fakeOrderRepo {
	return &fakeOrderRepo{orders: map[string]*domain.Order{}}
}

func (f *fakeOrderRepo) Create(_ context.Context, order *domain.Order) error {
	for _, existing := range f.orders {
		if existing.OrderNumber == order.OrderNumber {
			return fmt.Errorf("duplicate order number %s", order.OrderNumber)
		}
	}
	f.seq++
	order.ID = fmt.Sprintf("order-%d", f.seq)
	order.CreatedAt = time.Now()
	order.UpdatedAt = order.CreatedAt
	stored := *order
	f.orders[order.ID] = &stored
	return nil
}

func (f *fakeOrderRepo) Update(_ context.Context, order *domain.Order) error {
	if _, ok := f.orders[order.ID]; !ok {
		return pgx.ErrNoRows
	}
	order.UpdatedAt = time.Now()
	stored := *order
	f.orders[order.ID] = &stored
	return nil
}

func (f *fakeOrderRepo) GetByID(_ context.Context, id string) (*domain.Order, error) {
	order, ok := f.orders[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := *order
	return &copied, nil
}

func (f *fakeOrderRepo) List(_ context.Context, filter repository.OrderFilter) ([]domain.Order, int64, error) {
	ids := make([]string, 0, len(f.orders))
	for id := range f.orders {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	items := make([]domain.Order, 0, len(ids))
	for _, id := range ids {
		order := f.orders[id]
		if filter.CreatedBy != nil {
			if order.CreatedBy == nil || *order.CreatedBy != *filter.CreatedBy {
				continue
			}
		}
		items = append(items, *order)
	}
	return items, int64(len(items)), nil
}

func (f *fakeOrderRepo) Delete(_ context.Context, id string) error {
	if _, ok := f.orders[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(f.orders, id)
	return nil
}

func (f *fakeOrderRepo) CountCreatedBetween(_ context.Context, from, to time.Time) (int64, error) {
	var count int64
	for _, order := range f.orders {
		if !order.CreatedAt.Before(from) && order.CreatedAt.Before(to) {
			count++
		}
	}
	return count, nil
}

func (f *fakeOrderRepo) Stats(_ context.Context) (*repository.OrderStats, error) {
	return &repository.OrderStats{Total: int64(len(f.orders))}, nil
}

type fakeMessageRepo struct {
	messages    []domain.OrderMessage
	markedReads []domain.MessageSender
}

func (f *fakeMessageRepo) Create(_ context.Context, msg *domain.OrderMessage) error {
	msg.ID = fmt.Sprintf("msg-%d", len(f.messages)+1)
	msg.CreatedAt = time.Now()
	f.messages = append(f.messages, *msg)
	return nil
}

func (f *fakeMessageRepo) ListByOrder(_ context.Context, orderID string) ([]domain.OrderMessage, error) {
	var out []domain.OrderMessage
	for _, m := range f.messages {
		if m.OrderID == orderID {
			out = append(out, m)
		}
	}
	return out, nil
}

func (f *fakeMessageRepo) MarkRead(_ context.Context, orderID string, sender domain.MessageSender) error {
	f.markedReads = append(f.markedReads, sender)
	for i := range f.messages {
		if f.messages[i].OrderID == orderID && f.messages[i].Sender == sender {
			f.messages[i].Read = true
		}
	}
	return nil
}
