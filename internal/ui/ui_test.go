package ui

import (
	"context"
	"errors"
	"log"
	"os"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/Ashfaaq98/case-intake/internal/bus"
	"github.com/Ashfaaq98/case-intake/internal/intake"
	"github.com/rivo/tview"
)

// recordingBus captures published notifications.
type recordingBus struct {
	mu   sync.Mutex
	msgs []bus.IntakeMessage
	got  chan struct{}
}

func newRecordingBus() *recordingBus {
	return &recordingBus{got: make(chan struct{}, 16)}
}

func (r *recordingBus) PublishIntake(ctx context.Context, msg bus.IntakeMessage) error {
	r.mu.Lock()
	r.msgs = append(r.msgs, msg)
	r.mu.Unlock()
	r.got <- struct{}{}
	return nil
}

func (r *recordingBus) GetStats(ctx context.Context) (map[string]interface{}, error) {
	return map[string]interface{}{"type": "recording"}, nil
}

func (r *recordingBus) HealthCheck(ctx context.Context) error { return nil }
func (r *recordingBus) Close() error                          { return nil }

func (r *recordingBus) wait(t *testing.T, n int) []bus.IntakeMessage {
	t.Helper()
	for i := 0; i < n; i++ {
		select {
		case <-r.got:
		case <-time.After(2 * time.Second):
			t.Fatalf("timed out waiting for notification %d", i+1)
		}
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]bus.IntakeMessage(nil), r.msgs...)
}

func newTestUI(t *testing.T, b bus.Bus) (*UI, *intake.Store) {
	t.Helper()
	store := intake.NewStore()
	logger := log.New(os.Stdout, "[TEST] ", log.LstdFlags)
	ui := NewUI(context.Background(), store, b, Options{}, logger)
	t.Cleanup(ui.cancel)
	return ui, store
}

func setInput(t *testing.T, ui *UI, label, text string) {
	t.Helper()
	f, ok := ui.form.GetFormItemByLabel(label).(*tview.InputField)
	if !ok {
		t.Fatalf("no input field %q", label)
	}
	f.SetText(text)
}

func setDropDown(t *testing.T, ui *UI, label string, index int) {
	t.Helper()
	dd, ok := ui.form.GetFormItemByLabel(label).(*tview.DropDown)
	if !ok {
		t.Fatalf("no drop-down %q", label)
	}
	dd.SetCurrentOption(index)
}

func fillSample(t *testing.T, ui *UI) {
	setInput(t, ui, labelCaseNumber, "C-1")
	setInput(t, ui, labelPlaintiff, "Alice")
	setInput(t, ui, labelDefendants, "Bob")
	setInput(t, ui, labelCourt, "District Court")
	setDropDown(t, ui, labelCaseType, 1)
	setDropDown(t, ui, labelLawyer, 6)
	setDropDown(t, ui, labelTime, 0)
	setInput(t, ui, labelTicketNumber, "T-100")
}

const sampleRendered = "Case Number: C-1\nPlaintiff: Alice\nDefendants: Bob\nCourt: District Court\n" +
	"Case Type: Divorce Case\nLawyer: Family Lawyer\nTime: 09:00\nTicket Number: T-100"

func TestNewUI(t *testing.T) {
	ui, _ := newTestUI(t, nil)

	if ui.form.GetFormItemCount() != 8 {
		t.Fatalf("expected 8 form items, got %d", ui.form.GetFormItemCount())
	}
	if len(ui.slots) != 10 {
		t.Errorf("expected 10 default slots, got %d", len(ui.slots))
	}
	if ui.themeName != "dark" {
		t.Errorf("expected dark theme, got %q", ui.themeName)
	}
	stats := ui.GetStats()
	if stats["cases"] != 0 {
		t.Errorf("cases should be 0 initially, got %v", stats["cases"])
	}
	if stats["selected_id"] != "" {
		t.Errorf("nothing should be selected initially")
	}
}

func TestFormUpdatesInputState(t *testing.T) {
	ui, _ := newTestUI(t, nil)
	fillSample(t, ui)

	if got := intake.Render(ui.input.Record()); got != sampleRendered {
		t.Fatalf("unexpected pending record:\n%s", got)
	}
}

func TestAddCaseAppendsAndClears(t *testing.T) {
	rb := newRecordingBus()
	ui, store := newTestUI(t, rb)
	fillSample(t, ui)

	ui.addCase()

	if store.Len() != 1 {
		t.Fatalf("expected 1 case, got %d", store.Len())
	}
	if ui.caseList.GetItemCount() != 1 {
		t.Fatalf("expected 1 list row, got %d", ui.caseList.GetItemCount())
	}
	if ui.input != (intake.Form{}) {
		t.Errorf("input state should be cleared, got %+v", ui.input)
	}
	if f := ui.form.GetFormItemByLabel(labelCaseNumber).(*tview.InputField); f.GetText() != "" {
		t.Errorf("case number field should be empty, got %q", f.GetText())
	}
	if idx, _ := ui.form.GetFormItemByLabel(labelCaseType).(*tview.DropDown).GetCurrentOption(); idx != -1 {
		t.Errorf("case type should be unselected, got %d", idx)
	}
	if ui.selectedID != "" || ui.details.GetText(false) != "" {
		t.Errorf("adding must not select the new entry")
	}

	msgs := rb.wait(t, 1)
	if msgs[0].Action != bus.ActionCaseAdded || msgs[0].Rendered != sampleRendered {
		t.Errorf("unexpected notification %+v", msgs[0])
	}
}

func TestAddEmptyCase(t *testing.T) {
	ui, store := newTestUI(t, nil)
	ui.addCase()
	ui.selectIndex(0)

	if store.Len() != 1 {
		t.Fatalf("empty form should still add a case, got %d", store.Len())
	}
	if got := ui.details.GetText(false); got != intake.Render(intake.CaseRecord{}) {
		t.Errorf("unexpected details %q", got)
	}
}

func TestDeleteSelected(t *testing.T) {
	rb := newRecordingBus()
	ui, store := newTestUI(t, rb)

	for _, n := range []string{"C-1", "C-2", "C-3"} {
		setInput(t, ui, labelCaseNumber, n)
		ui.addCase()
	}
	rb.wait(t, 3)

	ui.selectIndex(1)
	second := ui.selectedID
	ui.deleteSelected()

	if store.Len() != 2 {
		t.Fatalf("expected 2 cases, got %d", store.Len())
	}
	if _, ok := store.Get(second); ok {
		t.Errorf("selected entry should be gone")
	}
	if ui.caseList.GetItemCount() != 2 {
		t.Errorf("expected 2 list rows, got %d", ui.caseList.GetItemCount())
	}
	// Selection moves to the entry that took the deleted row.
	if e, _ := store.Get(ui.selectedID); e.Record.CaseNumber != "C-3" {
		t.Errorf("expected C-3 selected, got %q", e.Record.CaseNumber)
	}

	msgs := rb.wait(t, 1)
	last := msgs[len(msgs)-1]
	if last.Action != bus.ActionCaseRemoved || last.EntryID != second {
		t.Errorf("unexpected notification %+v", last)
	}
}

func TestDeleteWithoutSelectionIsNoop(t *testing.T) {
	ui, store := newTestUI(t, nil)
	ui.deleteSelected()
	if store.Len() != 0 {
		t.Fatalf("store should stay empty")
	}

	ui.addCase()
	ui.selectIndex(-1)
	ui.deleteSelected()
	if store.Len() != 1 {
		t.Fatalf("delete without selection should not remove, got %d", store.Len())
	}
}

func TestDeleteDuplicateRemovesOnlySelected(t *testing.T) {
	ui, store := newTestUI(t, nil)
	fillSample(t, ui)
	ui.addCase()
	fillSample(t, ui)
	ui.addCase()

	ui.selectIndex(1)
	keep := ui.entries[0].ID
	ui.deleteSelected()

	if store.Len() != 1 {
		t.Fatalf("expected 1 case, got %d", store.Len())
	}
	if store.Entries()[0].ID != keep {
		t.Errorf("the unselected duplicate should remain")
	}
	if got := ui.details.GetText(false); got != sampleRendered {
		t.Errorf("details should show remaining duplicate, got:\n%s", got)
	}
}

func TestDeleteLastEntryClearsDetails(t *testing.T) {
	ui, _ := newTestUI(t, nil)
	ui.addCase()
	ui.selectIndex(0)
	ui.deleteSelected()

	if ui.selectedID != "" {
		t.Errorf("selection should be cleared")
	}
	if ui.details.GetText(false) != "" {
		t.Errorf("details should be empty")
	}
}

func TestDeleteRightAfterAddIsNoop(t *testing.T) {
	ui, store := newTestUI(t, nil)
	fillSample(t, ui)
	ui.addCase()

	ui.deleteSelected()
	if store.Len() != 1 {
		t.Fatalf("delete without a picked row must not remove, got %d", store.Len())
	}
}

func TestListFocusAdoptsCursor(t *testing.T) {
	ui, store := newTestUI(t, nil)
	fillSample(t, ui)
	ui.addCase()
	setInput(t, ui, labelCaseNumber, "C-2")
	ui.addCase()

	ui.onListFocus()
	first := store.Entries()[0]
	if ui.selectedID != first.ID {
		t.Fatalf("focusing the list should select the cursor row")
	}
	if got := ui.details.GetText(false); got != sampleRendered {
		t.Errorf("details should show the cursor row, got:\n%s", got)
	}

	// An existing selection survives refocusing.
	ui.selectIndex(1)
	ui.onListFocus()
	if ui.selectedID != store.Entries()[1].ID {
		t.Errorf("refocusing must keep the picked row")
	}

	ui.deleteSelected()
	if store.Len() != 1 || store.Entries()[0].ID != first.ID {
		t.Errorf("expected only the picked row to be removed")
	}
}

func TestClearFieldsKeepsStore(t *testing.T) {
	ui, store := newTestUI(t, nil)
	ui.addCase()
	fillSample(t, ui)

	ui.clearFields()

	if store.Len() != 1 {
		t.Fatalf("clear must not touch the store, got %d", store.Len())
	}
	if ui.input != (intake.Form{}) {
		t.Errorf("input state should be cleared, got %+v", ui.input)
	}
	if f := ui.form.GetFormItemByLabel(labelTicketNumber).(*tview.InputField); f.GetText() != "" {
		t.Errorf("ticket field should be empty")
	}
}

func TestSelectionShowsDetails(t *testing.T) {
	ui, store := newTestUI(t, nil)
	setInput(t, ui, labelCaseNumber, "C-1")
	ui.addCase()
	setInput(t, ui, labelCaseNumber, "C-2")
	ui.addCase()

	ui.selectIndex(1)
	want := intake.Render(store.Entries()[1].Record)
	if got := ui.details.GetText(false); got != want {
		t.Errorf("details mismatch:\n%s\nwant:\n%s", got, want)
	}
	if ui.caseList.GetCurrentItem() != 1 {
		t.Errorf("list cursor should follow selection")
	}
}

func TestCycleTheme(t *testing.T) {
	ui, _ := newTestUI(t, nil)
	seen := []string{ui.themeName}
	for i := 0; i < len(themeOrder); i++ {
		ui.cycleTheme()
		seen = append(seen, ui.themeName)
	}
	want := []string{"dark", "light", "high-contrast", "dark"}
	for i := range want {
		if seen[i] != want[i] {
			t.Fatalf("theme cycle = %v, want %v", seen, want)
		}
	}
}

func TestCustomSlotsAndTheme(t *testing.T) {
	store := intake.NewStore()
	ui := NewUI(context.Background(), store, nil, Options{TimeSlots: []string{"14:00", "15:00"}, Theme: "light"}, nil)
	defer ui.cancel()

	if ui.themeName != "light" {
		t.Errorf("expected light theme, got %q", ui.themeName)
	}
	setDropDown(t, ui, labelTime, 1)
	if ui.input.AppointmentTime != "15:00" {
		t.Errorf("expected 15:00, got %q", ui.input.AppointmentTime)
	}
}

// failingBus rejects every notification.
type failingBus struct {
	calls chan struct{}
}

func (f *failingBus) PublishIntake(ctx context.Context, msg bus.IntakeMessage) error {
	defer func() { f.calls <- struct{}{} }()
	return errors.New("redis: connection refused")
}

func (f *failingBus) GetStats(ctx context.Context) (map[string]interface{}, error) {
	return map[string]interface{}{"type": "failing"}, nil
}

func (f *failingBus) HealthCheck(ctx context.Context) error { return nil }
func (f *failingBus) Close() error                          { return nil }

// syncBuffer is a goroutine-safe log sink.
type syncBuffer struct {
	mu  sync.Mutex
	buf strings.Builder
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func TestPublishFailureWhileStopping(t *testing.T) {
	fb := &failingBus{calls: make(chan struct{}, 4)}
	var logs syncBuffer
	store := intake.NewStore()
	ui := NewUI(context.Background(), store, fb, Options{}, log.New(&logs, "", 0))

	ui.running.Store(true)
	ui.addCase()
	ui.running.Store(false)
	ui.cancel()

	select {
	case <-fb.calls:
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for publish attempt")
	}

	deadline := time.Now().Add(2 * time.Second)
	for !strings.Contains(logs.String(), "Failed to publish case_added") {
		if time.Now().After(deadline) {
			t.Fatalf("publish failure was not logged; logs:\n%s", logs.String())
		}
		time.Sleep(10 * time.Millisecond)
	}
	if store.Len() != 1 {
		t.Errorf("a failed notification must not undo the add")
	}
	if ui.GetStats()["running"] != false {
		t.Errorf("running should be false after stopping")
	}
}

func TestSelectedOption(t *testing.T) {
	if selectedOption("x", -1) != "" {
		t.Error("index -1 means no selection")
	}
	if selectedOption("x", 0) != "x" {
		t.Error("expected option text")
	}
}
