package notify

import (
	"fmt"
	"html/template"
	"strings"
)

// All interpolated fields come from form submissions, so the templates go
// through html/template and are escaped on render.
var templates = template.Must(template.New("emails").Funcs(template.FuncMap{
	"money": func(amount float64) string {
		return fmt.Sprintf("%.2f", amount)
	},
}).Parse(`
{{define "booking_received"}}
<h2>New consultation request</h2>
<p><strong>{{.FullName}}</strong> ({{.Email}}) requested a {{.ConsultationType}} consultation.</p>
<table>
  <tr><td>Preferred date</td><td>{{.PreferredDate}} {{.PreferredTime}}</td></tr>
  {{if .AlternativeDate}}<tr><td>Alternative</td><td>{{.AlternativeDate}} {{.AlternativeTime}}</td></tr>{{end}}
  {{if .Company}}<tr><td>Company</td><td>{{.Company}}</td></tr>{{end}}
  {{if .MeetingMode}}<tr><td>Meeting mode</td><td>{{.MeetingMode}}</td></tr>{{end}}
  <tr><td>Participants</td><td>{{.Participants}}</td></tr>
  {{if .Agenda}}<tr><td>Agenda</td><td>{{.Agenda}}</td></tr>{{end}}
  {{if .SpecialRequests}}<tr><td>Special requests</td><td>{{.SpecialRequests}}</td></tr>{{end}}
</table>
<p>Booking ID: <strong>{{.ID}}</strong></p>
{{end}}

{{define "booking_confirmed"}}
<h2>Your consultation is confirmed</h2>
<p>Hi {{.FirstName}},</p>
<p>Your {{.ConsultationType}} consultation has been confirmed for
<strong>{{.PreferredDate}}{{if .PreferredTime}} at {{.PreferredTime}}{{end}}</strong>{{if .Timezone}} ({{.Timezone}}){{end}}.</p>
{{if .MeetingMode}}<p>Meeting mode: {{.MeetingMode}}</p>{{end}}
<p>Reference: <strong>{{.ID}}</strong></p>
<p>We look forward to speaking with you.</p>
{{end}}

{{define "registration_receipt"}}
<h2>Registration received</h2>
<p>Hi {{.PrimaryContactName}},</p>
<p>We received the registration of <strong>{{.CompanyName}}</strong> for
<strong>{{.EventTitle}}</strong> on {{.EventDate}}{{if .EventLocation}} at {{.EventLocation}}{{end}}.</p>
<table>
  <tr><td>Registration ID</td><td>{{.RegistrationID}}</td></tr>
  <tr><td>Ticket type</td><td>{{.TicketType}}</td></tr>
  <tr><td>Total</td><td>{{money .TotalCost}}</td></tr>
  <tr><td>Payment status</td><td>{{.PaymentStatus}}</td></tr>
</table>
{{end}}

{{define "payment_receipt"}}
<h2>Payment confirmed</h2>
<p>Hi {{.PrimaryContactName}},</p>
<p>We received your payment of <strong>{{money .TotalCost}}</strong> for
<strong>{{.EventTitle}}</strong>.</p>
<table>
  <tr><td>Registration ID</td><td>{{.RegistrationID}}</td></tr>
  <tr><td>Event date</td><td>{{.EventDate}}</td></tr>
  <tr><td>Ticket type</td><td>{{.TicketType}}</td></tr>
</table>
<p>See you there!</p>
{{end}}

{{define "admin_registration_alert"}}
<h2>New event registration</h2>
<p><strong>{{.CompanyName}}</strong> registered for <strong>{{.EventTitle}}</strong> ({{.EventDate}}).</p>
<p>Contact: {{.PrimaryContactName}} &lt;{{.PrimaryContactEmail}}&gt;</p>
<p>Ticket: {{.TicketType}}, total {{money .TotalCost}}, payment {{.PaymentStatus}}.</p>
<p>Registration ID: {{.RegistrationID}}</p>
{{end}}

{{define "admin_payment_alert"}}
<h2>Payment completed</h2>
<p><strong>{{.CompanyName}}</strong> completed payment of {{money .TotalCost}} for <strong>{{.EventTitle}}</strong>.</p>
<p>Registration ID: {{.RegistrationID}}</p>
{{end}}
`))

func render(name string, data interface{}) (string, error) {
	var buf strings.Builder
	if err := templates.ExecuteTemplate(&buf, name, data); err != nil {
		return "", fmt.Errorf("failed to render %s template: %w", name, err)
	}
	return buf.String(), nil
}
