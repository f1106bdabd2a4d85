package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/meridianadvisory/site-backend/internal/domain"
	"github.com/meridianadvisory/site-backend/internal/notify"
	"github.com/meridianadvisory/site-backend/internal/repo/postgres"
	"github.com/meridianadvisory/site-backend/internal/utils"
	"github.com/meridianadvisory/site-backend/pkg/events"
	"github.com/meridianadvisory/site-backend/pkg/logger"
)

var (
	ErrBookingNotFound = errors.New("booking not found")
	ErrInvalidEmail    = errors.New("invalid email address")
)

type BookingService interface {
	Submit(ctx context.Context, req *domain.BookingIntakeReq) (*BookingResult, error)
	Confirm(ctx context.Context, id, confirmedBy string) (*BookingResult, error)
	Get(ctx context.Context, id string) (*domain.Booking, error)
	List(ctx context.Context, limit, offset int, status *domain.BookingStatus) ([]domain.Booking, error)
}

// BookingResult separates the primary outcome from the email side effect so
// callers can observe "booking saved, notification failed" instead of reading
// it out of logs.
type BookingResult struct {
	Booking   *domain.Booking
	NotifyErr error
}

type bookingService struct {
	repo     postgres.BookingRepository
	notifier notify.Service
	bus      events.Publisher
}

func NewBookingService(repo postgres.BookingRepository, notifier notify.Service, bus events.Publisher) BookingService {
	return &bookingService{
		repo:     repo,
		notifier: notifier,
		bus:      bus,
	}
}

func (s *bookingService) Submit(ctx context.Context, req *domain.BookingIntakeReq) (*BookingResult, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	req.Email = utils.NormalizeEmail(req.Email)
	req.FirstName = utils.NormalizeString(req.FirstName)
	req.LastName = utils.NormalizeString(req.LastName)
	if !utils.IsValidEmail(req.Email) {
		return nil, ErrInvalidEmail
	}

	booking, err := s.repo.Create(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("failed to create booking: %w", err)
	}

	s.publish(ctx, events.BookingCreated, events.BookingCreatedEvent{
		BookingID:        booking.ID,
		Email:            booking.Email,
		Name:             booking.FullName(),
		ConsultationType: booking.ConsultationType,
		PreferredDate:    booking.PreferredDate,
		CreatedAt:        booking.CreatedAt,
	})

	result := &BookingResult{Booking: booking}

	// Admin alert is best-effort: the booking stands even if the email fails.
	if err := s.notifier.BookingReceived(ctx, booking); err != nil {
		logger.ErrorContext(ctx, "Failed to send booking notification",
			"error", err, "booking_id", booking.ID)
		result.NotifyErr = err
	}

	return result, nil
}

// Confirm moves a booking to confirmed and emails the requester. Calling it on
// an already confirmed booking rewrites the row and re-sends the email; the
// admin console relies on that to re-notify.
func (s *bookingService) Confirm(ctx context.Context, id, confirmedBy string) (*BookingResult, error) {
	booking, err := s.repo.Confirm(ctx, id, confirmedBy)
	if err != nil {
		return nil, fmt.Errorf("failed to confirm booking: %w", err)
	}
	if booking == nil {
		return nil, ErrBookingNotFound
	}

	s.publish(ctx, events.BookingConfirmed, events.BookingConfirmedEvent{
		BookingID:   booking.ID,
		Email:       booking.Email,
		ConfirmedBy: confirmedBy,
		ConfirmedAt: time.Now(),
	})

	result := &BookingResult{Booking: booking}

	if err := s.notifier.BookingConfirmed(ctx, booking); err != nil {
		logger.ErrorContext(ctx, "Failed to send confirmation email",
			"error", err, "booking_id", booking.ID)
		result.NotifyErr = err
	}

	return result, nil
}

func (s *bookingService) Get(ctx context.Context, id string) (*domain.Booking, error) {
	booking, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if booking == nil {
		return nil, ErrBookingNotFound
	}
	return booking, nil
}

func (s *bookingService) List(ctx context.Context, limit, offset int, status *domain.BookingStatus) ([]domain.Booking, error) {
	return s.repo.List(ctx, limit, offset, status)
}

func (s *bookingService) publish(ctx context.Context, subject string, event interface{}) {
	if s.bus == nil {
		return
	}
	if err := s.bus.Publish(ctx, subject, event); err != nil {
		logger.ErrorContext(ctx, "Failed to publish event", "error", err, "subject", subject)
	}
}
