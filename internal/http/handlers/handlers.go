package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/meridianadvisory/site-backend/internal/notify"
	"github.com/meridianadvisory/site-backend/internal/platform/cms"
	"github.com/meridianadvisory/site-backend/internal/platform/payments"
	"github.com/meridianadvisory/site-backend/internal/service"
	"github.com/meridianadvisory/site-backend/pkg/config"
	"github.com/meridianadvisory/site-backend/pkg/events"
)

// CMSAuth is the slice of the CMS client the auth handlers need.
type CMSAuth interface {
	Login(ctx context.Context, identifier, password string) (*cms.AuthResult, error)
	Me(ctx context.Context, token string) (json.RawMessage, error)
}

type Handlers struct {
	bookings service.BookingService
	status   service.StatusService
	notifier notify.Service
	gateway  payments.Gateway
	cmsAuth  CMSAuth
	bus      events.Publisher
	config   *config.Config
}

func New(
	bookings service.BookingService,
	status service.StatusService,
	notifySvc notify.Service,
	gateway payments.Gateway,
	cmsAuth CMSAuth,
	bus events.Publisher,
	cfg *config.Config,
) *Handlers {
	return &Handlers{
		bookings: bookings,
		status:   status,
		notifier: notifySvc,
		gateway:  gateway,
		cmsAuth:  cmsAuth,
		bus:      bus,
		config:   cfg,
	}
}

func writeJSON(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(data)
}

func parsePagination(r *http.Request) (limit, offset int) {
	limit = 20
	offset = 0

	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 && n <= 100 {
			limit = n
		}
	}
	if v := r.URL.Query().Get("offset"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			offset = n
		}
	}

	return limit, offset
}
