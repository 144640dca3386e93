package intake

import (
	"fmt"
	"time"
)

// CaseType is a case category. Values outside the catalog are accepted.
type CaseType string

const (
	CaseTypeCriminal             CaseType = "Criminal Case"
	CaseTypeDivorce              CaseType = "Divorce Case"
	CaseTypeCompensation         CaseType = "Compensation Case"
	CaseTypeEmployment           CaseType = "Employment Case"
	CaseTypeRealEstate           CaseType = "Real Estate Case"
	CaseTypeInheritance          CaseType = "Inheritance Case"
	CaseTypeExecutionBankruptcy  CaseType = "Execution and Bankruptcy Case"
	CaseTypeIntellectualProperty CaseType = "Intellectual Property Case"
)

// Lawyer is a lawyer specialization. Values outside the catalog are accepted.
type Lawyer string

const (
	LawyerCriminalDefense      Lawyer = "Criminal Defense Lawyer"
	LawyerEmployment           Lawyer = "Employment Lawyer"
	LawyerRealEstate           Lawyer = "Real Estate Lawyer"
	LawyerCommercial           Lawyer = "Commercial Lawyer"
	LawyerExecutionBankruptcy  Lawyer = "Execution and Bankruptcy Lawyer"
	LawyerIntellectualProperty Lawyer = "Intellectual Property Lawyer"
	LawyerFamily               Lawyer = "Family Lawyer"
	LawyerAdministrative       Lawyer = "Administrative Lawyer"
)

var caseTypes = []CaseType{
	CaseTypeCriminal,
	CaseTypeDivorce,
	CaseTypeCompensation,
	CaseTypeEmployment,
	CaseTypeRealEstate,
	CaseTypeInheritance,
	CaseTypeExecutionBankruptcy,
	CaseTypeIntellectualProperty,
}

var lawyers = []Lawyer{
	LawyerCriminalDefense,
	LawyerEmployment,
	LawyerRealEstate,
	LawyerCommercial,
	LawyerExecutionBankruptcy,
	LawyerIntellectualProperty,
	LawyerFamily,
	LawyerAdministrative,
}

// CaseTypes returns the case type options in display order.
func CaseTypes() []CaseType {
	out := make([]CaseType, len(caseTypes))
	copy(out, caseTypes)
	return out
}

// Lawyers returns the lawyer options in display order.
func Lawyers() []Lawyer {
	out := make([]Lawyer, len(lawyers))
	copy(out, lawyers)
	return out
}

// Known reports whether t is one of the catalog case types.
func (t CaseType) Known() bool {
	for _, c := range caseTypes {
		if c == t {
			return true
		}
	}
	return false
}

// Known reports whether l is one of the catalog specializations.
func (l Lawyer) Known() bool {
	for _, c := range lawyers {
		if c == l {
			return true
		}
	}
	return false
}

// SlotLayout is the clock format of appointment slots.
const SlotLayout = "15:04"

// Default slot schedule: ten half-hour slots from 09:00.
const (
	DefaultSlotStart = "09:00"
	DefaultSlotCount = 10
	DefaultSlotStep  = 30 * time.Minute
)

// TimeSlots generates count slots beginning at start ("HH:MM") spaced by step.
// Slots wrap past midnight like a wall clock.
func TimeSlots(start string, count int, step time.Duration) ([]string, error) {
	t, err := time.Parse(SlotLayout, start)
	if err != nil {
		return nil, fmt.Errorf("invalid slot start %q: %w", start, err)
	}
	if count < 0 {
		return nil, fmt.Errorf("invalid slot count %d", count)
	}
	if step <= 0 {
		return nil, fmt.Errorf("invalid slot step %s", step)
	}

	slots := make([]string, 0, count)
	for i := 0; i < count; i++ {
		slots = append(slots, t.Format(SlotLayout))
		t = t.Add(step)
	}
	return slots, nil
}

// DefaultTimeSlots returns 09:00 through 13:30.
func DefaultTimeSlots() []string {
	slots, _ := TimeSlots(DefaultSlotStart, DefaultSlotCount, DefaultSlotStep)
	return slots
}
