package domain

import (
	"testing"
	"time"
)

func TestFormatOrderNumber(t *testing.T) {
	tests := []struct {
		name string
		at   time.Time
		seq  int64
		want string
	}{
		{
			name: "first order of march",
			at:   time.Date(2024, time.March, 15, 10, 30, 0, 0, time.UTC),
			seq:  1,
			want: "ORD-202403-0001",
		},
		{
			name: "sequence pads to four digits",
			at:   time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC),
			seq:  42,
			want: "ORD-202403-0042",
		},
		{
			name: "sequence past four digits widens",
			at:   time.Date(2024, time.December, 31, 23, 59, 59, 0, time.UTC),
			seq:  10001,
			want: "ORD-202412-10001",
		},
		{
			name: "non-UTC time normalizes to UTC month",
			at:   time.Date(2024, time.April, 1, 0, 30, 0, 0, time.FixedZone("CEST", 2*3600)),
			seq:  7,
			want: "ORD-202403-0007",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := FormatOrderNumber(tc.at, tc.seq); got != tc.want {
				t.Errorf("FormatOrderNumber() = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestMonthBucket(t *testing.T) {
	at := time.Date(2025, time.January, 5, 12, 0, 0, 0, time.UTC)
	if got := MonthBucket(at); got != "202501" {
		t.Fatalf("MonthBucket() = %q, want 202501", got)
	}
}

func TestMonthWindow(t *testing.T) {
	at := time.Date(2024, time.February, 20, 8, 0, 0, 0, time.UTC)
	from, to := MonthWindow(at)
	if !from.Equal(time.Date(2024, time.February, 1, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("window start = %v", from)
	}
	if !to.Equal(time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("window end = %v", to)
	}
}

func TestTotalPaidAndRemaining(t *testing.T) {
	order := &Order{
		Pricing: Pricing{TotalPrice: 5000},
		Payment: Payment{
			Status: PaymentStatusPartial,
			Transactions: []Transaction{
				{Amount: 2000, Status: "completed"},
				{Amount: 1500, Status: "completed"},
				{Amount: 1000, Status: "pending"},
				{Amount: 500, Status: "failed"},
			},
		},
	}
	if got := order.TotalPaid(); got != 3500 {
		t.Errorf("TotalPaid() = %v, want 3500", got)
	}
	if got := order.RemainingAmount(); got != 1500 {
		t.Errorf("RemainingAmount() = %v, want 1500", got)
	}
}

func TestTotalPaidNoTransactions(t *testing.T) {
	order := &Order{Pricing: Pricing{TotalPrice: 1200}}
	if got := order.TotalPaid(); got != 0 {
		t.Errorf("TotalPaid() = %v, want 0", got)
	}
	if got := order.RemainingAmount(); got != 1200 {
		t.Errorf("RemainingAmount() = %v, want 1200", got)
	}
}

func TestOrderStatusValid(t *testing.T) {
	for _, s := range []OrderStatus{
		OrderStatusPending, OrderStatusConfirmed, OrderStatusInProgress,
		OrderStatusReview, OrderStatusCompleted, OrderStatusCancelled,
	} {
		if !s.Valid() {
			t.Errorf("%q should be valid", s)
		}
	}
	if OrderStatus("refunded").Valid() {
		t.Error("unknown status must be invalid")
	}
}
