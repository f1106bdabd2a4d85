package handlers_test

import (
	"net/http"
	"testing"
)

func validRegistration() map[string]interface{} {
	return map[string]interface{}{
		"registrationId":      "REG-1001",
		"companyName":         "Acme Corp",
		"companyEmail":        "billing@acme.example",
		"primaryContactName":  "Ravi Kumar",
		"primaryContactEmail": "ravi@acme.example",
		"eventTitle":          "Leadership Summit",
		"eventDate":           "2025-06-10",
		"eventLocation":       "Mumbai",
		"ticketType":          "corporate",
		"totalCost":           4999.00,
		"paymentStatus":       "pending",
	}
}

func TestSendEmail_UnknownType(t *testing.T) {
	env := newTestEnv()

	rec := env.do(http.MethodPost, "/api/send-email", map[string]interface{}{
		"type": "newsletter",
		"data": validRegistration(),
	})

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if len(env.sender.sent) != 0 {
		t.Fatalf("expected no email, got %d", len(env.sender.sent))
	}
}

func TestSendEmail_MissingPrimaryContactEmail(t *testing.T) {
	for _, typ := range []string{"registration", "payment_confirmation", "bogus"} {
		t.Run(typ, func(t *testing.T) {
			env := newTestEnv()

			data := validRegistration()
			delete(data, "primaryContactEmail")

			rec := env.do(http.MethodPost, "/api/send-email", map[string]interface{}{
				"type": typ,
				"data": data,
			})

			if rec.Code != http.StatusBadRequest {
				t.Fatalf("expected 400, got %d", rec.Code)
			}
		})
	}
}

func TestSendEmail_RegistrationReceipt(t *testing.T) {
	env := newTestEnv()

	rec := env.do(http.MethodPost, "/api/send-email", map[string]interface{}{
		"type": "registration",
		"data": validRegistration(),
	})

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	body := decodeBody(rec)
	recipients, _ := body["recipients"].([]interface{})
	if len(recipients) != 2 {
		t.Fatalf("expected primary contact + distinct company email, got %v", recipients)
	}
	if env.sender.sentTo(adminEmail) != 1 {
		t.Fatalf("expected admin alert, got %d", env.sender.sentTo(adminEmail))
	}
}

func TestSendEmail_DuplicateCompanyEmailDeduped(t *testing.T) {
	env := newTestEnv()

	data := validRegistration()
	data["companyEmail"] = "RAVI@acme.example" // same mailbox, different case

	rec := env.do(http.MethodPost, "/api/send-email", map[string]interface{}{
		"type": "registration",
		"data": data,
	})

	body := decodeBody(rec)
	recipients, _ := body["recipients"].([]interface{})
	if len(recipients) != 1 {
		t.Fatalf("expected a single deduped recipient, got %v", recipients)
	}
}

func TestSendEmail_UserFailureIsFatal(t *testing.T) {
	env := newTestEnv()
	env.sender.failWhen = failRecipients("ravi@acme.example")

	rec := env.do(http.MethodPost, "/api/send-email", map[string]interface{}{
		"type": "payment_confirmation",
		"data": validRegistration(),
	})

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500 when the user email fails, got %d", rec.Code)
	}
}

func TestSendEmail_AdminFailureIsSwallowed(t *testing.T) {
	env := newTestEnv()
	env.sender.failWhen = failRecipients(adminEmail)

	rec := env.do(http.MethodPost, "/api/send-email", map[string]interface{}{
		"type": "payment_confirmation",
		"data": validRegistration(),
	})

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 when only the admin copy fails, got %d", rec.Code)
	}
	body := decodeBody(rec)
	if body["adminNotified"] != false {
		t.Fatalf("expected adminNotified=false, got %v", body["adminNotified"])
	}
}
