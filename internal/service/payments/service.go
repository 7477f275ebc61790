// Package payments drives card payments through Stripe Checkout. A card
// booking stays pending until the checkout.session.completed webhook
// confirms it.
package payments

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"github.com/stripe/stripe-go/v79"
	checkoutsession "github.com/stripe/stripe-go/v79/checkout/session"

	"github.com/beautylounge/salon-booking-service/internal/availability"
	"github.com/beautylounge/salon-booking-service/internal/domain"
	bookingRepo "github.com/beautylounge/salon-booking-service/internal/infra/storage/booking"
	"github.com/beautylounge/salon-booking-service/internal/mailer"
)

const (
	paymentStatusAwaiting = "awaiting_payment"
	paymentStatusPaid     = "paid"
	paymentStatusExpired  = "expired"
)

// Config carries the Stripe settings. AdminEmail, when set, receives a copy
// of every payment confirmation.
type Config struct {
	Currency   string
	SuccessURL string
	CancelURL  string
	AdminEmail string
}

// CheckoutResponse is a created checkout session.
type CheckoutResponse struct {
	SessionID string `json:"sessionId"`
	URL       string `json:"url"`
}

// Service manages the payment lifecycle.
type Service struct {
	bookingRepo BookingRepository
	engine      *availability.Engine
	mailer      Mailer
	cfg         Config
	logger      Logger
}

// NewService creates the payments service. The global stripe.Key must be set
// by the caller.
func NewService(
	bookingRepository BookingRepository,
	engine *availability.Engine,
	paymentMailer Mailer,
	cfg Config,
	logger Logger,
) *Service {
	if cfg.Currency == "" {
		cfg.Currency = "xof"
	}
	return &Service{
		bookingRepo: bookingRepository,
		engine:      engine,
		mailer:      paymentMailer,
		cfg:         cfg,
		logger:      logger,
	}
}

// CreateCheckoutSession opens a Stripe Checkout session for a pending card
// booking. XOF has no minor unit, so the catalog price is the Stripe amount.
func (s *Service) CreateCheckoutSession(ctx context.Context, bookingID int64) (*CheckoutResponse, error) {
	s.logger.Info("CreateCheckoutSession: booking id=%d", bookingID)

	booking, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			return nil, ErrBookingNotFound
		}
		s.logger.Error("CreateCheckoutSession: repository error for booking id=%d: %v", bookingID, err)
		return nil, fmt.Errorf("%w: CreateCheckoutSession - repository error: %v", ErrInternal, err)
	}

	if booking.Status != domain.StatusPending || booking.PaymentMethod != domain.PaymentCard {
		s.logger.Warn("CreateCheckoutSession: booking id=%d is not awaiting payment (status=%s, method=%s)",
			bookingID, booking.Status, booking.PaymentMethod)
		return nil, ErrNotPayable
	}

	params := &stripe.CheckoutSessionParams{
		Mode:              stripe.String(string(stripe.CheckoutSessionModePayment)),
		SuccessURL:        stripe.String(s.cfg.SuccessURL),
		CancelURL:         stripe.String(s.cfg.CancelURL),
		CustomerEmail:     stripe.String(booking.CustomerEmail),
		ClientReferenceID: stripe.String(strconv.FormatInt(booking.ID, 10)),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
					Currency: stripe.String(s.cfg.Currency),
					ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
						Name: stripe.String(booking.ServiceName),
					},
					UnitAmount: stripe.Int64(int64(booking.ServicePrice)),
				},
				Quantity: stripe.Int64(1),
			},
		},
		Metadata: map[string]string{
			"booking_id": strconv.FormatInt(booking.ID, 10),
		},
	}
	params.IdempotencyKey = stripe.String(fmt.Sprintf("booking-%d", booking.ID))

	sess, err := checkoutsession.New(params)
	if err != nil {
		s.logger.Error("CreateCheckoutSession: stripe error for booking id=%d: %v", bookingID, err)
		return nil, fmt.Errorf("%w: %v", ErrProvider, err)
	}

	if err := s.bookingRepo.SetPaymentStatus(ctx, booking.ID, paymentStatusAwaiting); err != nil {
		s.logger.Error("CreateCheckoutSession: failed to mark booking id=%d awaiting payment: %v", booking.ID, err)
	}

	s.logger.Info("CreateCheckoutSession: opened session %s for booking id=%d", sess.ID, booking.ID)
	return &CheckoutResponse{SessionID: sess.ID, URL: sess.URL}, nil
}

// HandleEvent applies a verified Stripe event. Unknown event types are
// acknowledged and ignored.
func (s *Service) HandleEvent(ctx context.Context, event stripe.Event) error {
	switch event.Type {
	case "checkout.session.completed":
		return s.handleSessionCompleted(ctx, event)
	case "checkout.session.expired":
		return s.handleSessionExpired(ctx, event)
	default:
		s.logger.Info("HandleEvent: ignoring event type=%s id=%s", event.Type, event.ID)
		return nil
	}
}

func (s *Service) handleSessionCompleted(ctx context.Context, event stripe.Event) error {
	bookingID, err := bookingIDFromEvent(event)
	if err != nil {
		s.logger.Warn("HandleEvent: %v (event id=%s)", err, event.ID)
		return nil
	}

	s.logger.Info("HandleEvent: payment completed for booking id=%d", bookingID)

	booking, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("HandleEvent: booking id=%d not found for event id=%s", bookingID, event.ID)
			return nil
		}
		return fmt.Errorf("%w: HandleEvent - repository error: %v", ErrInternal, err)
	}

	// Replayed events land here with the booking already confirmed.
	if booking.PaymentStatus != nil && *booking.PaymentStatus == paymentStatusPaid {
		s.logger.Info("HandleEvent: booking id=%d already paid, ignoring replay", bookingID)
		return nil
	}

	if err := s.bookingRepo.SetPaymentStatus(ctx, bookingID, paymentStatusPaid); err != nil {
		return fmt.Errorf("%w: HandleEvent - set payment status: %v", ErrInternal, err)
	}
	if err := s.bookingRepo.UpdateStatus(ctx, bookingID, domain.StatusConfirmed); err != nil {
		return fmt.Errorf("%w: HandleEvent - confirm booking: %v", ErrInternal, err)
	}

	booking.Status = domain.StatusConfirmed
	subject, body := mailer.BookingConfirmation(booking, s.engine.Timezone())
	if err := s.mailer.Send(ctx, booking.CustomerEmail, subject, body); err != nil {
		s.logger.Error("HandleEvent: failed to send confirmation for booking id=%d: %v", bookingID, err)
	}

	if s.cfg.AdminEmail != "" {
		subject, body := mailer.AdminBookingNotification(booking, s.engine.Timezone())
		if err := s.mailer.Send(ctx, s.cfg.AdminEmail, subject, body); err != nil {
			s.logger.Error("HandleEvent: failed to notify admin for booking id=%d: %v", bookingID, err)
		}
	}

	return nil
}

func (s *Service) handleSessionExpired(ctx context.Context, event stripe.Event) error {
	bookingID, err := bookingIDFromEvent(event)
	if err != nil {
		s.logger.Warn("HandleEvent: %v (event id=%s)", err, event.ID)
		return nil
	}

	s.logger.Info("HandleEvent: checkout expired for booking id=%d", bookingID)

	if err := s.bookingRepo.SetPaymentStatus(ctx, bookingID, paymentStatusExpired); err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			return nil
		}
		return fmt.Errorf("%w: HandleEvent - set payment status: %v", ErrInternal, err)
	}

	return nil
}

func bookingIDFromEvent(event stripe.Event) (int64, error) {
	var session stripe.CheckoutSession
	if err := json.Unmarshal(event.Data.Raw, &session); err != nil {
		return 0, fmt.Errorf("invalid checkout session payload: %v", err)
	}

	raw := session.Metadata["booking_id"]
	if raw == "" {
		raw = session.ClientReferenceID
	}
	if raw == "" {
		return 0, errors.New("checkout session carries no booking_id")
	}

	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("malformed booking_id %q", raw)
	}
	return id, nil
}
