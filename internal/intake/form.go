package intake

// Form is the pending-entry state behind the intake widgets.
// Empty CaseType, Lawyer and AppointmentTime mean "nothing selected".
type Form struct {
	CaseNumber      string
	Plaintiff       string
	Defendants      string
	Court           string
	CaseType        CaseType
	Lawyer          Lawyer
	AppointmentTime string
	TicketNumber    string
}

// Record builds a CaseRecord from the current input values.
func (f *Form) Record() CaseRecord {
	return CaseRecord{
		CaseNumber:      f.CaseNumber,
		Plaintiff:       f.Plaintiff,
		Defendants:      f.Defendants,
		Court:           f.Court,
		CaseType:        f.CaseType,
		Lawyer:          f.Lawyer,
		AppointmentTime: f.AppointmentTime,
		TicketNumber:    f.TicketNumber,
	}
}

// ClearInputState resets every input to empty/unselected.
func (f *Form) ClearInputState() {
	*f = Form{}
}

// AddCase appends the form's record to the store and clears the form.
func AddCase(s *Store, f *Form) Entry {
	e := s.Add(f.Record())
	f.ClearInputState()
	return e
}

// DeleteCase removes the selected entry. An empty selection is a no-op.
func DeleteCase(s *Store, selectedID string) (Entry, bool) {
	return s.RemoveByID(selectedID)
}

// ClearForm resets the inputs without touching the store.
func ClearForm(f *Form) {
	f.ClearInputState()
}

// Detail returns the rendered text of the selected entry, or "" when
// nothing is selected or the entry no longer exists.
func Detail(s *Store, selectedID string) string {
	e, ok := s.Get(selectedID)
	if !ok {
		return ""
	}
	return e.Rendered()
}
