package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/meridianadvisory/site-backend/internal/domain"
	"github.com/meridianadvisory/site-backend/internal/http/response"
	"github.com/meridianadvisory/site-backend/internal/notify"
)

type sendEmailReq struct {
	Type string              `json:"type"`
	Data domain.Registration `json:"data"`
}

// SendEmail handles POST /api/send-email. Supported types are registration and
// payment_confirmation; consultation-booking notifications go out from the
// booking handlers directly.
func (h *Handlers) SendEmail(w http.ResponseWriter, r *http.Request) {
	var req sendEmailReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	if strings.TrimSpace(req.Data.PrimaryContactEmail) == "" {
		response.BadRequest(w, "primaryContactEmail is required")
		return
	}

	var (
		result *notify.DispatchResult
		err    error
	)
	switch req.Type {
	case "registration":
		result, err = h.notifier.RegistrationReceipt(r.Context(), &req.Data)
	case "payment_confirmation":
		result, err = h.notifier.PaymentReceipt(r.Context(), &req.Data)
	default:
		response.BadRequest(w, "Unknown notification type")
		return
	}

	if err != nil {
		response.InternalError(w, "Failed to send email")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success":       true,
		"recipients":    result.Recipients,
		"adminNotified": result.AdminErr == nil,
	})
}
