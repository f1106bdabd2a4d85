package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http/httptest"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/meridianadvisory/site-backend/internal/domain"
	"github.com/meridianadvisory/site-backend/internal/http/handlers"
	"github.com/meridianadvisory/site-backend/internal/notify"
	"github.com/meridianadvisory/site-backend/internal/platform/cms"
	"github.com/meridianadvisory/site-backend/internal/platform/mailer"
	"github.com/meridianadvisory/site-backend/internal/platform/media"
	"github.com/meridianadvisory/site-backend/internal/platform/payments"
	"github.com/meridianadvisory/site-backend/internal/service"
	"github.com/meridianadvisory/site-backend/pkg/config"
)

// ---------- Mocks ----------

type mockSender struct {
	sent     []*mailer.Message
	failWhen func(msg *mailer.Message) error
}

func (m *mockSender) Send(_ context.Context, msg *mailer.Message) error {
	if m.failWhen != nil {
		if err := m.failWhen(msg); err != nil {
			return err
		}
	}
	m.sent = append(m.sent, msg)
	return nil
}

// failRecipients fails any send addressed to one of the given emails.
func failRecipients(emails ...string) func(msg *mailer.Message) error {
	return func(msg *mailer.Message) error {
		for _, rcpt := range msg.To {
			for _, email := range emails {
				if rcpt.Email == email {
					return fmt.Errorf("smtp: delivery to %s refused", email)
				}
			}
		}
		return nil
	}
}

func (m *mockSender) sentTo(email string) int {
	count := 0
	for _, msg := range m.sent {
		for _, rcpt := range msg.To {
			if rcpt.Email == email {
				count++
			}
		}
	}
	return count
}

type mockBookingRepo struct {
	nextID    int
	bookings  map[string]*domain.Booking
	createErr error
	creates   int
}

func newMockBookingRepo() *mockBookingRepo {
	return &mockBookingRepo{nextID: 1, bookings: make(map[string]*domain.Booking)}
}

func (m *mockBookingRepo) Create(_ context.Context, req *domain.BookingIntakeReq) (*domain.Booking, error) {
	m.creates++
	if m.createErr != nil {
		return nil, m.createErr
	}

	id := fmt.Sprintf("bk-%d", m.nextID)
	m.nextID++

	participants := req.Participants
	if participants < 1 {
		participants = 1
	}

	booking := &domain.Booking{
		ID:               id,
		FirstName:        req.FirstName,
		LastName:         req.LastName,
		Email:            req.Email,
		Phone:            req.Phone,
		Company:          req.Company,
		JobTitle:         req.JobTitle,
		ConsultationType: req.ConsultationType,
		Purpose:          req.Purpose,
		PreferredDate:    req.PreferredDate,
		PreferredTime:    req.PreferredTime,
		AlternativeDate:  req.AlternativeDate,
		AlternativeTime:  req.AlternativeTime,
		Timezone:         req.Timezone,
		MeetingMode:      domain.MeetingMode(req.MeetingMode),
		Agenda:           req.Agenda,
		Participants:     participants,
		SpecialRequests:  req.SpecialRequests,
		Newsletter:       req.Newsletter,
		Status:           domain.BookingPendingConfirmation,
		Source:           domain.BookingSource,
		CreatedAt:        time.Now(),
		UpdatedAt:        time.Now(),
	}
	m.bookings[id] = booking
	return booking, nil
}

func (m *mockBookingRepo) GetByID(_ context.Context, id string) (*domain.Booking, error) {
	return m.bookings[id], nil
}

func (m *mockBookingRepo) Confirm(_ context.Context, id, confirmedBy string) (*domain.Booking, error) {
	booking, ok := m.bookings[id]
	if !ok {
		return nil, nil
	}
	booking.Status = domain.BookingConfirmed
	booking.ConfirmedBy = confirmedBy
	booking.UpdatedAt = time.Now()
	return booking, nil
}

func (m *mockBookingRepo) List(_ context.Context, limit, offset int, status *domain.BookingStatus) ([]domain.Booking, error) {
	var result []domain.Booking
	for _, b := range m.bookings {
		if status != nil && b.Status != *status {
			continue
		}
		result = append(result, *b)
	}
	if offset >= len(result) {
		return []domain.Booking{}, nil
	}
	end := offset + limit
	if end > len(result) {
		end = len(result)
	}
	return result[offset:end], nil
}

type mockGateway struct {
	lastReq *payments.OrderRequest
	order   *payments.Order
	err     error
	calls   int
}

func (m *mockGateway) CreateOrder(_ context.Context, req *payments.OrderRequest) (*payments.Order, error) {
	m.calls++
	m.lastReq = req
	if m.err != nil {
		return nil, m.err
	}
	return m.order, nil
}

type mockCMS struct {
	loginResult *cms.AuthResult
	loginErr    error
	meResult    json.RawMessage
	meErr       error
}

func (m *mockCMS) Login(_ context.Context, identifier, password string) (*cms.AuthResult, error) {
	return m.loginResult, m.loginErr
}

func (m *mockCMS) Me(_ context.Context, token string) (json.RawMessage, error) {
	return m.meResult, m.meErr
}

type mockStats struct {
	pingErr   error
	counts    map[string]int64
	countsErr error
	latest    time.Time
	latestErr error
}

func (m *mockStats) Ping(context.Context) error { return m.pingErr }

func (m *mockStats) CountDocuments(context.Context) (map[string]int64, error) {
	return m.counts, m.countsErr
}

func (m *mockStats) LatestUpdate(context.Context) (time.Time, error) {
	return m.latest, m.latestErr
}

type mockMediaClient struct {
	usedBytes  int64
	limitBytes int64
	err        error
}

func (m *mockMediaClient) Usage(context.Context) (*media.Usage, error) {
	if m.err != nil {
		return nil, m.err
	}
	return &media.Usage{UsedBytes: m.usedBytes, LimitBytes: m.limitBytes}, nil
}

type mockBus struct {
	published []string
}

func (m *mockBus) Publish(_ context.Context, subject string, _ interface{}) error {
	m.published = append(m.published, subject)
	return nil
}

func (m *mockBus) Close() error { return nil }

// ---------- Test environment ----------

type testEnv struct {
	handlers *handlers.Handlers
	repo     *mockBookingRepo
	sender   *mockSender
	gateway  *mockGateway
	cmsMock  *mockCMS
	stats    *mockStats
	media    *mockMediaClient
	bus      *mockBus
	router   *chi.Mux
}

const adminEmail = "admin@meridianadvisory.com"

func newTestEnv() *testEnv {
	env := &testEnv{
		repo:    newMockBookingRepo(),
		sender:  &mockSender{},
		gateway: &mockGateway{order: &payments.Order{ID: "order_1", Amount: 10000, Currency: "INR", Status: "created"}},
		cmsMock: &mockCMS{},
		stats: &mockStats{
			counts: map[string]int64{"bookings": 10, "events": 5},
			latest: time.Now().Add(-30 * time.Minute),
		},
		media: &mockMediaClient{usedBytes: 1 << 30, limitBytes: 10 << 30},
		bus:   &mockBus{},
	}

	cfg := &config.Config{}
	cfg.Auth.JWTSecret = "test-secret"
	cfg.Auth.SessionTokenTTL = time.Hour
	cfg.Payments.DefaultCurrency = "INR"
	cfg.Media.QuotaGB = 25

	notifySvc := notify.New(env.sender, []string{adminEmail})
	bookingSvc := service.NewBookingService(env.repo, notifySvc, env.bus)
	statusSvc := service.NewStatusService(env.stats, env.media, cfg.Media.QuotaGB)

	env.handlers = handlers.New(bookingSvc, statusSvc, notifySvc, env.gateway, env.cmsMock, env.bus, cfg)

	r := chi.NewRouter()
	r.Route("/api", func(r chi.Router) {
		r.Post("/book-consultation", env.handlers.SubmitBooking)
		r.Post("/confirm-booking", env.handlers.ConfirmBooking)
		r.Get("/bookings", env.handlers.ListBookings)
		r.Get("/bookings/{id}", env.handlers.GetBooking)
		r.Post("/create-razorpay-order", env.handlers.CreateOrder)
		r.Post("/send-email", env.handlers.SendEmail)
		r.Get("/system-status", env.handlers.SystemStatus)
		r.Post("/auth/login", env.handlers.Login)
		r.Get("/auth/verify", env.handlers.Verify)
	})
	env.router = r

	return env
}

func (e *testEnv) do(method, path string, body interface{}) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		raw, _ := json.Marshal(body)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

func decodeBody(rec *httptest.ResponseRecorder) map[string]interface{} {
	var body map[string]interface{}
	_ = json.Unmarshal(rec.Body.Bytes(), &body)
	return body
}

func validIntake() map[string]interface{} {
	return map[string]interface{}{
		"firstName":        "Jane",
		"lastName":         "Doe",
		"email":            "jane@x.com",
		"consultationType": "strategy",
		"preferredDate":    "2025-03-01",
	}
}
