package payments

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stripe/stripe-go/v79"

	"github.com/beautylounge/salon-booking-service/internal/availability"
	"github.com/beautylounge/salon-booking-service/internal/domain"
	bookingRepo "github.com/beautylounge/salon-booking-service/internal/infra/storage/booking"
	"github.com/beautylounge/salon-booking-service/pkg/ptr"
)

type fakeBookingRepo struct {
	bookings map[int64]*domain.Booking

	paymentStatuses map[int64]string
	updatedStatus   domain.BookingStatus
	statusUpdates   int
}

func newFakeBookingRepo(bookings ...*domain.Booking) *fakeBookingRepo {
	repo := &fakeBookingRepo{
		bookings:        map[int64]*domain.Booking{},
		paymentStatuses: map[int64]string{},
	}
	for _, b := range bookings {
		repo.bookings[b.ID] = b
	}
	return repo
}

func (f *fakeBookingRepo) GetByID(_ context.Context, id int64) (*domain.Booking, error) {
	b, ok := f.bookings[id]
	if !ok {
		return nil, bookingRepo.ErrBookingNotFound
	}
	return b, nil
}

func (f *fakeBookingRepo) UpdateStatus(_ context.Context, id int64, status domain.BookingStatus) error {
	b, ok := f.bookings[id]
	if !ok {
		return bookingRepo.ErrBookingNotFound
	}
	f.updatedStatus = status
	f.statusUpdates++
	b.Status = status
	return nil
}

func (f *fakeBookingRepo) SetPaymentStatus(_ context.Context, id int64, paymentStatus string) error {
	b, ok := f.bookings[id]
	if !ok {
		return bookingRepo.ErrBookingNotFound
	}
	f.paymentStatuses[id] = paymentStatus
	b.PaymentStatus = &paymentStatus
	return nil
}

type sentEmail struct {
	recipient string
	subject   string
}

type fakeMailer struct {
	sent []sentEmail
}

func (f *fakeMailer) Send(_ context.Context, recipient, subject, _ string) error {
	f.sent = append(f.sent, sentEmail{recipient: recipient, subject: subject})
	return nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func testEngine() *availability.Engine {
	return availability.NewEngine(availability.Config{})
}

func pendingCardBooking(id int64) *domain.Booking {
	return &domain.Booking{
		ID:            id,
		MenuItemID:    1,
		StartTime:     time.Date(2025, 10, 20, 8, 0, 0, 0, time.UTC),
		EndTime:       time.Date(2025, 10, 20, 9, 0, 0, 0, time.UTC),
		Status:        domain.StatusPending,
		CustomerEmail: "awa@example.com",
		PaymentMethod: domain.PaymentCard,
		PaymentStatus: ptr.Ptr(paymentStatusAwaiting),
		ServiceName:   "Tresses",
		ServicePrice:  15000,
	}
}

func checkoutEvent(eventType string, bookingID int64) stripe.Event {
	payload, _ := json.Marshal(map[string]interface{}{
		"id": "cs_test_123",
		"metadata": map[string]string{
			"booking_id": fmt.Sprintf("%d", bookingID),
		},
	})
	return stripe.Event{
		ID:   "evt_test_123",
		Type: stripe.EventType(eventType),
		Data: &stripe.EventData{Raw: payload},
	}
}

func newTestService(repo *fakeBookingRepo, m *fakeMailer) *Service {
	return NewService(repo, testEngine(), m, Config{
		Currency:   "xof",
		SuccessURL: "https://salon.example/merci",
		CancelURL:  "https://salon.example/paiement",
		AdminEmail: "salon@example.com",
	}, nopLogger{})
}

func TestHandleEvent_SessionCompletedConfirmsBooking(t *testing.T) {
	repo := newFakeBookingRepo(pendingCardBooking(1))
	m := &fakeMailer{}
	svc := newTestService(repo, m)

	err := svc.HandleEvent(context.Background(), checkoutEvent("checkout.session.completed", 1))
	require.NoError(t, err)

	assert.Equal(t, paymentStatusPaid, repo.paymentStatuses[1])
	assert.Equal(t, domain.StatusConfirmed, repo.updatedStatus)

	// Both the customer and the salon inbox are notified.
	require.Len(t, m.sent, 2)
	assert.Equal(t, "awa@example.com", m.sent[0].recipient)
	assert.Equal(t, "salon@example.com", m.sent[1].recipient)
}

func TestHandleEvent_NoAdminEmailConfigured(t *testing.T) {
	repo := newFakeBookingRepo(pendingCardBooking(1))
	m := &fakeMailer{}
	svc := NewService(repo, testEngine(), m, Config{}, nopLogger{})

	err := svc.HandleEvent(context.Background(), checkoutEvent("checkout.session.completed", 1))
	require.NoError(t, err)

	require.Len(t, m.sent, 1)
	assert.Equal(t, "awa@example.com", m.sent[0].recipient)
}

func TestHandleEvent_ReplayedCompletionIsIgnored(t *testing.T) {
	booking := pendingCardBooking(1)
	booking.Status = domain.StatusConfirmed
	booking.PaymentStatus = ptr.Ptr(paymentStatusPaid)
	repo := newFakeBookingRepo(booking)
	m := &fakeMailer{}
	svc := newTestService(repo, m)

	err := svc.HandleEvent(context.Background(), checkoutEvent("checkout.session.completed", 1))
	require.NoError(t, err)

	assert.Zero(t, repo.statusUpdates)
	assert.Empty(t, m.sent)
}

func TestHandleEvent_SessionExpiredMarksBooking(t *testing.T) {
	repo := newFakeBookingRepo(pendingCardBooking(1))
	m := &fakeMailer{}
	svc := newTestService(repo, m)

	err := svc.HandleEvent(context.Background(), checkoutEvent("checkout.session.expired", 1))
	require.NoError(t, err)

	assert.Equal(t, paymentStatusExpired, repo.paymentStatuses[1])
	assert.Empty(t, m.sent)
}

// A completion for a booking this service never saw is acknowledged so Stripe
// stops retrying.
func TestHandleEvent_UnknownBookingIsAcknowledged(t *testing.T) {
	repo := newFakeBookingRepo()
	svc := newTestService(repo, &fakeMailer{})

	err := svc.HandleEvent(context.Background(), checkoutEvent("checkout.session.completed", 404))
	assert.NoError(t, err)
}

func TestHandleEvent_UnknownEventTypeIsIgnored(t *testing.T) {
	repo := newFakeBookingRepo(pendingCardBooking(1))
	svc := newTestService(repo, &fakeMailer{})

	err := svc.HandleEvent(context.Background(), checkoutEvent("invoice.paid", 1))
	require.NoError(t, err)
	assert.Empty(t, repo.paymentStatuses)
}

func TestCreateCheckoutSession_RejectsNonPayableBookings(t *testing.T) {
	confirmed := pendingCardBooking(1)
	confirmed.Status = domain.StatusConfirmed
	wave := pendingCardBooking(2)
	wave.PaymentMethod = domain.PaymentWave
	repo := newFakeBookingRepo(confirmed, wave)
	svc := newTestService(repo, &fakeMailer{})

	_, err := svc.CreateCheckoutSession(context.Background(), 1)
	assert.ErrorIs(t, err, ErrNotPayable)

	_, err = svc.CreateCheckoutSession(context.Background(), 2)
	assert.ErrorIs(t, err, ErrNotPayable)

	_, err = svc.CreateCheckoutSession(context.Background(), 404)
	assert.ErrorIs(t, err, ErrBookingNotFound)
}
