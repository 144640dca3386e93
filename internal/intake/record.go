package intake

import (
	"strings"
	"time"
)

// CaseRecord is one legal-case intake entry as captured by the form.
// Every field is free text; catalog values are suggestions, not constraints.
type CaseRecord struct {
	CaseNumber      string   `json:"case_number"`
	Plaintiff       string   `json:"plaintiff"`
	Defendants      string   `json:"defendants"`
	Court           string   `json:"court"`
	CaseType        CaseType `json:"case_type"`
	Lawyer          Lawyer   `json:"lawyer"`
	AppointmentTime string   `json:"appointment_time"`
	TicketNumber    string   `json:"ticket_number"`
}

// Entry is a stored CaseRecord with its generated identity.
type Entry struct {
	ID      string     `json:"id"`
	Record  CaseRecord `json:"record"`
	AddedAt time.Time  `json:"added_at"`
}

// Rendered returns the display form of the entry's record.
func (e Entry) Rendered() string {
	return Render(e.Record)
}

// Render produces the fixed multi-line representation of a record.
// Field order and labels never change; empty fields are rendered as-is.
func Render(r CaseRecord) string {
	var b strings.Builder
	lines := [...]struct{ label, value string }{
		{"Case Number", r.CaseNumber},
		{"Plaintiff", r.Plaintiff},
		{"Defendants", r.Defendants},
		{"Court", r.Court},
		{"Case Type", string(r.CaseType)},
		{"Lawyer", string(r.Lawyer)},
		{"Time", r.AppointmentTime},
		{"Ticket Number", r.TicketNumber},
	}
	for i, l := range lines {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(l.label)
		b.WriteString(": ")
		b.WriteString(l.value)
	}
	return b.String()
}

// Summary is the single-line form used in list widgets.
func Summary(r CaseRecord) string {
	num := r.CaseNumber
	if num == "" {
		num = "(no number)"
	}
	parts := []string{num}
	if r.Plaintiff != "" || r.Defendants != "" {
		parts = append(parts, r.Plaintiff+" v. "+r.Defendants)
	}
	if r.AppointmentTime != "" {
		parts = append(parts, "@ "+r.AppointmentTime)
	}
	return strings.Join(parts, "  ")
}
