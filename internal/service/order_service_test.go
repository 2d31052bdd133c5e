package service

import (
	"context"
	"testing"
	"time"

	"github.com/lumenworks/agency-service/internal/domain"
)

func newOrderTestService(orders *fakeOrderRepo, services *fakeServiceRepo, messages *fakeMessageRepo, now func() time.Time) *OrderService {
	return NewOrderService(OrderDependencies{
		OrderRepo:   orders,
		MessageRepo: messages,
		ServiceRepo: services,
		UserRepo:    newFakeUserRepo(&domain.User{ID: "admin-1", Name: "Admin", Role: domain.RoleAdmin}),
		Now:         now,
	})
}

func seedOffering(t *testing.T, services *fakeServiceRepo, active bool) *domain.Service {
	t.Helper()
	offering := &domain.Service{
		Title:    "Web Development",
		Slug:     "web-development",
		Category: domain.CategoryWebDevelopment,
		IsActive: active,
	}
	if err := services.Create(context.Background(), offering); err != nil {
		t.Fatal(err)
	}
	return offering
}

func placeInput(serviceID string) OrderCreateInput {
	return OrderCreateInput{
		Customer:  domain.Customer{Name: "Jane Doe", Email: "jane@acme.com"},
		ServiceID: serviceID,
		Package:   "premium",
		BasePrice: 1000,
	}
}

func TestPlaceOrderAllocatesSequentialNumbers(t *testing.T) {
	orders := newFakeOrderRepo()
	services := newFakeServiceRepo()
	offering := seedOffering(t, services, true)
	svc := newOrderTestService(orders, services, &fakeMessageRepo{}, nil)

	first, err := svc.Place(context.Background(), placeInput(offering.ID))
	if err != nil {
		t.Fatalf("Place: %v", err)
	}
	second, err := svc.Place(context.Background(), placeInput(offering.ID))
	if err != nil {
		t.Fatalf("Place: %v", err)
	}

	now := time.Now()
	if want := domain.FormatOrderNumber(now, 1); first.OrderNumber != want {
		t.Errorf("first order number = %s, want %s", first.OrderNumber, want)
	}
	if want := domain.FormatOrderNumber(now, 2); second.OrderNumber != want {
		t.Errorf("second order number = %s, want %s", second.OrderNumber, want)
	}
}

func TestPlaceOrderSnapshotsService(t *testing.T) {
	orders := newFakeOrderRepo()
	services := newFakeServiceRepo()
	offering := seedOffering(t, services, true)
	svc := newOrderTestService(orders, services, &fakeMessageRepo{}, nil)

	order, err := svc.Place(context.Background(), placeInput(offering.ID))
	if err != nil {
		t.Fatalf("Place: %v", err)
	}
	if order.ServiceDetails.Title != "Web Development" || order.ServiceDetails.Slug != "web-development" {
		t.Errorf("snapshot = %+v", order.ServiceDetails)
	}
	if order.Status != domain.OrderStatusPending {
		t.Errorf("status = %s, want pending", order.Status)
	}
	if order.Payment.Status != domain.PaymentStatusPending {
		t.Errorf("payment status = %s, want pending", order.Payment.Status)
	}
	if order.Pricing.Currency != "USD" {
		t.Errorf("currency = %s, want USD default", order.Pricing.Currency)
	}
}

func TestPlaceOrderComputesTotalPrice(t *testing.T) {
	orders := newFakeOrderRepo()
	services := newFakeServiceRepo()
	offering := seedOffering(t, services, true)
	svc := newOrderTestService(orders, services, &fakeMessageRepo{}, nil)

	input := placeInput(offering.ID)
	input.Features = []domain.PricedFeature{
		{Name: "extra pages", Price: 200},
		{Name: "seo setup", Price: 300},
	}
	input.Discount = 10

	order, err := svc.Place(context.Background(), input)
	if err != nil {
		t.Fatalf("Place: %v", err)
	}
	if order.Pricing.TotalPrice != 1350 {
		t.Errorf("total = %v, want 1350", order.Pricing.TotalPrice)
	}
}

func TestPlaceOrderRejectsInactiveService(t *testing.T) {
	orders := newFakeOrderRepo()
	services := newFakeServiceRepo()
	offering := seedOffering(t, services, false)
	svc := newOrderTestService(orders, services, &fakeMessageRepo{}, nil)

	_, err := svc.Place(context.Background(), placeInput(offering.ID))
	assertErrCode(t, err, "VALIDATION_FAILED")
}

func TestPlaceOrderRejectsUnknownService(t *testing.T) {
	svc := newOrderTestService(newFakeOrderRepo(), newFakeServiceRepo(), &fakeMessageRepo{}, nil)
	_, err := svc.Place(context.Background(), placeInput("service-404"))
	assertErrCode(t, err, "VALIDATION_FAILED")
}

func TestPlaceOrderRejectsBadDiscount(t *testing.T) {
	orders := newFakeOrderRepo()
	services := newFakeServiceRepo()
	offering := seedOffering(t, services, true)
	svc := newOrderTestService(orders, services, &fakeMessageRepo{}, nil)

	input := placeInput(offering.ID)
	input.Discount = 120
	_, err := svc.Place(context.Background(), input)
	assertErrCode(t, err, "VALIDATION_FAILED")
}

func TestGetEnforcesOwnership(t *testing.T) {
	orders := newFakeOrderRepo()
	services := newFakeServiceRepo()
	offering := seedOffering(t, services, true)
	svc := newOrderTestService(orders, services, &fakeMessageRepo{}, nil)

	owner := "user-1"
	input := placeInput(offering.ID)
	input.CreatedBy = &owner
	order, err := svc.Place(context.Background(), input)
	if err != nil {
		t.Fatal(err)
	}

	if _, err := svc.Get(context.Background(), Caller{ID: "user-2", Role: domain.RoleUser}, order.ID); err == nil {
		t.Fatal("stranger should not read another user's order")
	} else {
		assertErrCode(t, err, "FORBIDDEN")
	}

	if _, err := svc.Get(context.Background(), Caller{ID: owner, Role: domain.RoleUser}, order.ID); err != nil {
		t.Errorf("owner read failed: %v", err)
	}
	if _, err := svc.Get(context.Background(), Caller{ID: "admin-1", Role: domain.RoleAdmin}, order.ID); err != nil {
		t.Errorf("admin read failed: %v", err)
	}
}

func TestGetMarksCounterpartyMessagesRead(t *testing.T) {
	orders := newFakeOrderRepo()
	services := newFakeServiceRepo()
	messages := &fakeMessageRepo{}
	offering := seedOffering(t, services, true)
	svc := newOrderTestService(orders, services, messages, nil)

	owner := "user-1"
	input := placeInput(offering.ID)
	input.CreatedBy = &owner
	order, err := svc.Place(context.Background(), input)
	if err != nil {
		t.Fatal(err)
	}

	if _, err := svc.AddMessage(context.Background(), Caller{ID: "admin-1", Role: domain.RoleAdmin}, order.ID, "work started"); err != nil {
		t.Fatal(err)
	}

	detail, err := svc.Get(context.Background(), Caller{ID: owner, Role: domain.RoleUser}, order.ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(detail.Messages) != 1 {
		t.Fatalf("messages = %d, want 1", len(detail.Messages))
	}
	if !detail.Messages[0].Read {
		t.Error("admin message should be marked read on customer fetch")
	}
	if detail.Messages[0].Sender != domain.SenderAdmin {
		t.Errorf("sender = %s, want admin", detail.Messages[0].Sender)
	}
}

func TestAddMessageRecordsSenderRole(t *testing.T) {
	orders := newFakeOrderRepo()
	services := newFakeServiceRepo()
	messages := &fakeMessageRepo{}
	offering := seedOffering(t, services, true)
	svc := newOrderTestService(orders, services, messages, nil)

	owner := "user-1"
	input := placeInput(offering.ID)
	input.CreatedBy = &owner
	order, err := svc.Place(context.Background(), input)
	if err != nil {
		t.Fatal(err)
	}

	msg, err := svc.AddMessage(context.Background(), Caller{ID: owner, Role: domain.RoleUser}, order.ID, "  any update?  ")
	if err != nil {
		t.Fatal(err)
	}
	if msg.Sender != domain.SenderCustomer {
		t.Errorf("sender = %s, want customer", msg.Sender)
	}
	if msg.Message != "any update?" {
		t.Errorf("message not trimmed: %q", msg.Message)
	}
}

func TestUpdateStatusStampsActualDates(t *testing.T) {
	orders := newFakeOrderRepo()
	services := newFakeServiceRepo()

	fixed := time.Date(2024, time.March, 15, 10, 0, 0, 0, time.UTC)
	clock := fixed
	svc := newOrderTestService(orders, services, &fakeMessageRepo{}, func() time.Time { return clock })

	// Seed through the repo directly so the fixed clock does not fight the
	// current-month sequence window.
	order := &domain.Order{OrderNumber: "ORD-202403-0001", Status: domain.OrderStatusPending}
	if err := orders.Create(context.Background(), order); err != nil {
		t.Fatal(err)
	}

	started, err := svc.UpdateStatus(context.Background(), order.ID, domain.OrderStatusInProgress, "admin-1")
	if err != nil {
		t.Fatal(err)
	}
	if started.Timeline.ActualStart == nil || !started.Timeline.ActualStart.Equal(fixed) {
		t.Fatalf("ActualStart = %v, want %v", started.Timeline.ActualStart, fixed)
	}

	clock = fixed.Add(48 * time.Hour)
	completed, err := svc.UpdateStatus(context.Background(), order.ID, domain.OrderStatusCompleted, "admin-1")
	if err != nil {
		t.Fatal(err)
	}
	if completed.Timeline.ActualEnd == nil || !completed.Timeline.ActualEnd.Equal(clock) {
		t.Fatalf("ActualEnd = %v, want %v", completed.Timeline.ActualEnd, clock)
	}
	// A repeat transition must not move the original start stamp.
	if !completed.Timeline.ActualStart.Equal(fixed) {
		t.Error("ActualStart moved on later transition")
	}
}

func TestUpdatePreservesImmutableFields(t *testing.T) {
	orders := newFakeOrderRepo()
	services := newFakeServiceRepo()
	offering := seedOffering(t, services, true)
	svc := newOrderTestService(orders, services, &fakeMessageRepo{}, nil)

	owner := "user-1"
	input := placeInput(offering.ID)
	input.CreatedBy = &owner
	order, err := svc.Place(context.Background(), input)
	if err != nil {
		t.Fatal(err)
	}

	updated, err := svc.Update(context.Background(), order.ID, OrderUpdateInput{
		Customer:  domain.Customer{Name: "Jane Doe", Email: "jane@acme.com"},
		Package:   "basic",
		BasePrice: 500,
	}, "admin-1")
	if err != nil {
		t.Fatal(err)
	}
	if updated.OrderNumber != order.OrderNumber {
		t.Error("order number must never change")
	}
	if updated.ServiceDetails != order.ServiceDetails {
		t.Error("service snapshot must never change")
	}
	if updated.CreatedBy == nil || *updated.CreatedBy != owner {
		t.Error("creator must never change")
	}
	if updated.Pricing.TotalPrice != 500 {
		t.Errorf("total = %v, want 500", updated.Pricing.TotalPrice)
	}
}

func TestListForUserOnlyReturnsOwnOrders(t *testing.T) {
	orders := newFakeOrderRepo()
	services := newFakeServiceRepo()
	offering := seedOffering(t, services, true)
	svc := newOrderTestService(orders, services, &fakeMessageRepo{}, nil)

	for _, owner := range []string{"user-1", "user-1", "user-2"} {
		o := owner
		input := placeInput(offering.ID)
		input.CreatedBy = &o
		if _, err := svc.Place(context.Background(), input); err != nil {
			t.Fatal(err)
		}
	}

	items, total, err := svc.ListForUser(context.Background(), "user-1", 10, 0)
	if err != nil {
		t.Fatal(err)
	}
	if total != 2 || len(items) != 2 {
		t.Errorf("total=%d len=%d, want 2/2", total, len(items))
	}
}
