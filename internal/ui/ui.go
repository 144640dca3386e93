package ui

import (
	"context"
	"fmt"
	"io"
	"log"
	"sync/atomic"
	"time"

	"github.com/Ashfaaq98/case-intake/internal/bus"
	"github.com/Ashfaaq98/case-intake/internal/intake"
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
)

// Form field labels.
const (
	labelCaseNumber   = "Case Number:"
	labelPlaintiff    = "Plaintiff:"
	labelDefendants   = "Defendants:"
	labelCourt        = "Court:"
	labelCaseType     = "Case Type:"
	labelLawyer       = "Lawyer:"
	labelTime         = "Time:"
	labelTicketNumber = "Ticket Number:"
)

const publishTimeout = 3 * time.Second

// Options configures the intake screen.
type Options struct {
	TimeSlots []string
	Theme     string
}

// UI represents the terminal user interface
type UI struct {
	app    *tview.Application
	store  *intake.Store
	bus    bus.Bus
	logger *log.Logger

	// Layout components
	layout    *tview.Flex
	appTitle  *tview.TextView
	form      *tview.Form
	caseList  *tview.List
	details   *tview.TextView
	statusBar *tview.TextView

	// State
	input      intake.Form
	slots      []string
	entries    []intake.Entry // mirrors caseList rows
	selectedID string
	refreshing bool

	// Theme state
	theme        Theme
	themeName    string
	hasTrueColor bool

	running    atomic.Bool
	helpActive bool

	// Context for cancellation
	ctx    context.Context
	cancel context.CancelFunc
}

// NewUI creates the intake screen over store. Notifications for committed
// changes go to b; a nil bus disables them.
func NewUI(ctx context.Context, store *intake.Store, b bus.Bus, opts Options, logger *log.Logger) *UI {
	if logger == nil {
		logger = log.New(io.Discard, "[UI] ", log.LstdFlags)
	}
	if b == nil {
		b = bus.NewNullBus(logger)
	}
	slots := opts.TimeSlots
	if len(slots) == 0 {
		slots = intake.DefaultTimeSlots()
	}

	uiCtx, cancel := context.WithCancel(ctx)

	ui := &UI{
		app:          tview.NewApplication(),
		store:        store,
		bus:          b,
		logger:       logger,
		slots:        slots,
		ctx:          uiCtx,
		cancel:       cancel,
		hasTrueColor: detectTrueColor(),
	}
	ui.theme, ui.themeName = themeByName(opts.Theme)

	ui.setupLayout()
	ui.setupKeybindings()
	ui.applyTheme()
	ui.refreshList()

	return ui
}

// Start runs the TUI until the user quits or ctx is cancelled.
func (ui *UI) Start(ctx context.Context) error {
	ui.logger.Println("Starting TUI application")

	go func() {
		select {
		case <-ctx.Done():
			ui.logger.Println("External context cancelled, stopping TUI")
		case <-ui.ctx.Done():
		}
		ui.app.Stop()
	}()

	ui.app.SetFocus(ui.form)
	ui.running.Store(true)
	err := ui.app.Run()
	ui.running.Store(false)
	ui.cancel()
	ui.logger.Printf("app.Run() returned with error: %v", err)
	return err
}

// Stop stops the TUI application
func (ui *UI) Stop() {
	ui.logger.Println("Stopping TUI application")
	ui.running.Store(false)
	ui.cancel()
	ui.app.Stop()
}

func (ui *UI) setupLayout() {
	ui.appTitle = tview.NewTextView().
		SetDynamicColors(true).
		SetTextAlign(tview.AlignCenter).
		SetText("[::b]Case Management[::-]")

	ui.form = tview.NewForm()
	ui.form.SetBorder(true).SetTitle(" New Case ")
	ui.form.AddInputField(labelCaseNumber, "", 30, nil, func(text string) { ui.input.CaseNumber = text })
	ui.form.AddInputField(labelPlaintiff, "", 30, nil, func(text string) { ui.input.Plaintiff = text })
	ui.form.AddInputField(labelDefendants, "", 30, nil, func(text string) { ui.input.Defendants = text })
	ui.form.AddInputField(labelCourt, "", 30, nil, func(text string) { ui.input.Court = text })
	ui.form.AddDropDown(labelCaseType, caseTypeOptions(), -1, func(option string, index int) {
		ui.input.CaseType = intake.CaseType(selectedOption(option, index))
	})
	ui.form.AddDropDown(labelLawyer, lawyerOptions(), -1, func(option string, index int) {
		ui.input.Lawyer = intake.Lawyer(selectedOption(option, index))
	})
	ui.form.AddDropDown(labelTime, ui.slots, -1, func(option string, index int) {
		ui.input.AppointmentTime = selectedOption(option, index)
	})
	ui.form.AddInputField(labelTicketNumber, "", 30, nil, func(text string) { ui.input.TicketNumber = text })
	ui.form.AddButton("Add", ui.addCase)
	ui.form.AddButton("Delete", ui.deleteSelected)
	ui.form.AddButton("Clear", ui.clearFields)

	ui.caseList = tview.NewList().ShowSecondaryText(false).SetSelectedFocusOnly(true)
	ui.caseList.SetBorder(true).SetTitle(" Cases ")
	ui.caseList.SetFocusFunc(ui.onListFocus)
	ui.caseList.SetChangedFunc(func(index int, mainText, secondaryText string, shortcut rune) {
		if ui.refreshing {
			return
		}
		ui.selectIndex(index)
	})

	ui.details = tview.NewTextView().SetDynamicColors(false).SetWrap(true)
	ui.details.SetBorder(true).SetTitle(" Details ")

	ui.statusBar = tview.NewTextView().SetDynamicColors(true)

	right := tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(ui.caseList, 0, 2, false).
		AddItem(ui.details, 10, 0, false)

	body := tview.NewFlex().
		AddItem(ui.form, 0, 1, true).
		AddItem(right, 0, 1, false)

	ui.layout = tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(ui.appTitle, 1, 0, false).
		AddItem(body, 0, 1, true).
		AddItem(ui.statusBar, 1, 0, false)

	ui.app.SetRoot(ui.layout, true)
	ui.setStatus("Ctrl+L cases  Ctrl+F form  Del delete  Ctrl+T theme  ? help  Ctrl+C quit")
}

func (ui *UI) setupKeybindings() {
	ui.caseList.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		switch event.Key() {
		case tcell.KeyDelete, tcell.KeyBackspace2:
			ui.deleteSelected()
			return nil
		}
		return event
	})

	ui.app.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		if ui.helpActive {
			return event
		}
		switch event.Key() {
		case tcell.KeyCtrlL:
			ui.app.SetFocus(ui.caseList)
			ui.highlightFocus(ui.caseList)
			return nil
		case tcell.KeyCtrlF:
			ui.app.SetFocus(ui.form)
			ui.highlightFocus(ui.form)
			return nil
		case tcell.KeyCtrlT:
			ui.cycleTheme()
			return nil
		case tcell.KeyRune:
			// Runes belong to input fields while the form has focus.
			if event.Rune() == '?' && !ui.form.HasFocus() {
				ui.showHelp()
				return nil
			}
		}
		return event
	})
}

// addCase appends the pending entry and clears the inputs.
func (ui *UI) addCase() {
	e := intake.AddCase(ui.store, &ui.input)
	ui.logger.Printf("Added case entry %s (case number %q)", e.ID, e.Record.CaseNumber)
	ui.resetInputs()
	ui.refreshList()
	ui.publish(bus.ActionCaseAdded, e)
	ui.setStatus("[%s]Added case %s[-]", ui.theme.TagSuccess, displayNumber(e.Record))
}

// deleteSelected removes the selected entry. Nothing selected is a no-op.
func (ui *UI) deleteSelected() {
	idx := ui.indexOf(ui.selectedID)
	e, ok := intake.DeleteCase(ui.store, ui.selectedID)
	if !ok {
		return
	}
	ui.logger.Printf("Removed case entry %s", e.ID)

	ui.selectedID = ""
	remaining := ui.store.Entries()
	if len(remaining) > 0 {
		if idx >= len(remaining) {
			idx = len(remaining) - 1
		}
		if idx < 0 {
			idx = 0
		}
		ui.selectedID = remaining[idx].ID
	}
	ui.refreshList()
	ui.publish(bus.ActionCaseRemoved, e)
	ui.setStatus("[%s]Deleted case %s[-]", ui.theme.TagWarning, displayNumber(e.Record))
}

// clearFields resets the inputs only.
func (ui *UI) clearFields() {
	intake.ClearForm(&ui.input)
	ui.resetInputs()
	ui.setStatus("[%s]Form cleared[-]", ui.theme.TagMuted)
}

// resetInputs blanks every form widget and the pending input state.
func (ui *UI) resetInputs() {
	for _, label := range []string{labelCaseNumber, labelPlaintiff, labelDefendants, labelCourt, labelTicketNumber} {
		if f, ok := ui.form.GetFormItemByLabel(label).(*tview.InputField); ok {
			f.SetText("")
		}
	}
	for _, label := range []string{labelCaseType, labelLawyer, labelTime} {
		if dd, ok := ui.form.GetFormItemByLabel(label).(*tview.DropDown); ok {
			dd.SetCurrentOption(-1)
		}
	}
	ui.input.ClearInputState()
}

// refreshList rebuilds the case list from the store and restores the selection.
func (ui *UI) refreshList() {
	ui.entries = ui.store.Entries()

	ui.refreshing = true
	ui.caseList.Clear()
	for _, e := range ui.entries {
		ui.caseList.AddItem(intake.Summary(e.Record), "", 0, nil)
	}
	ui.refreshing = false

	ui.caseList.SetTitle(fmt.Sprintf(" Cases (%d) ", len(ui.entries)))

	ui.selectIndex(ui.indexOf(ui.selectedID))
}

// onListFocus adopts the list cursor as the selection when the user moves
// into the list without having picked a row yet.
func (ui *UI) onListFocus() {
	if ui.selectedID == "" {
		ui.selectIndex(ui.caseList.GetCurrentItem())
	}
}

// selectIndex makes the row at index the selection and shows its details.
func (ui *UI) selectIndex(index int) {
	if index < 0 || index >= len(ui.entries) {
		ui.selectedID = ""
		ui.details.SetText("")
		return
	}
	ui.selectedID = ui.entries[index].ID
	if ui.caseList.GetCurrentItem() != index {
		ui.refreshing = true
		ui.caseList.SetCurrentItem(index)
		ui.refreshing = false
	}
	ui.details.SetText(intake.Detail(ui.store, ui.selectedID))
	ui.details.ScrollToBeginning()
}

func (ui *UI) indexOf(id string) int {
	if id == "" {
		return -1
	}
	for i, e := range ui.entries {
		if e.ID == id {
			return i
		}
	}
	return -1
}

// publish sends a notification off the event loop; failures only reach the log
// and the status bar.
func (ui *UI) publish(action string, e intake.Entry) {
	msg := bus.NewIntakeMessage(action, e)
	go func() {
		ctx, cancel := context.WithTimeout(ui.ctx, publishTimeout)
		defer cancel()
		if err := ui.bus.PublishIntake(ctx, msg); err != nil {
			ui.logger.Printf("Failed to publish %s for %s: %v", action, e.ID, err)
			// Nothing drains the update queue once Run has returned.
			if ui.running.Load() && ui.ctx.Err() == nil {
				ui.app.QueueUpdateDraw(func() {
					ui.setStatus("[%s]Notification failed: %v[-]", ui.theme.TagError, err)
				})
			}
		}
	}()
}

func (ui *UI) showHelp() {
	modal := tview.NewModal().
		SetText("Tab/Shift+Tab move between fields\n" +
			"Enter on Add/Delete/Clear runs the action\n" +
			"Ctrl+L focus case list, Ctrl+F focus form\n" +
			"Del in the case list deletes the selection\n" +
			"Ctrl+T cycle theme, Ctrl+C quit").
		AddButtons([]string{"Close"}).
		SetDoneFunc(func(buttonIndex int, buttonLabel string) {
			ui.helpActive = false
			ui.app.SetRoot(ui.layout, true)
			ui.app.SetFocus(ui.caseList)
		})
	ui.helpActive = true
	ui.app.SetRoot(modal, true)
}

func (ui *UI) highlightFocus(focused tview.Primitive) {
	for _, box := range []interface {
		SetBorderColor(tcell.Color) *tview.Box
	}{ui.form, ui.caseList, ui.details} {
		box.SetBorderColor(ui.theme.Border)
	}
	switch focused {
	case ui.form:
		ui.form.SetBorderColor(ui.theme.FocusBorder)
	case ui.caseList:
		ui.caseList.SetBorderColor(ui.theme.FocusBorder)
	}
}

func (ui *UI) setStatus(format string, args ...interface{}) {
	ui.statusBar.SetText(fmt.Sprintf(format, args...))
}

func (ui *UI) applyTheme() {
	t := ui.theme
	bg := t.Bg
	if !ui.hasTrueColor {
		bg = tcell.ColorDefault
	}

	ui.appTitle.SetBackgroundColor(bg)
	ui.appTitle.SetTextColor(t.Header)
	ui.statusBar.SetBackgroundColor(bg)
	ui.statusBar.SetTextColor(t.TextMuted)

	ui.form.SetBackgroundColor(t.Surface)
	ui.form.SetFieldBackgroundColor(t.Bg)
	ui.form.SetFieldTextColor(t.TextPrimary)
	ui.form.SetLabelColor(t.TextPrimary)
	ui.form.SetButtonBackgroundColor(t.SelectionBg)
	ui.form.SetButtonTextColor(t.SelectionFg)
	ui.form.SetTitleColor(t.Header)

	ui.caseList.SetBackgroundColor(t.Surface)
	ui.caseList.SetMainTextColor(t.TextPrimary)
	ui.caseList.SetSelectedBackgroundColor(t.SelectionBg)
	ui.caseList.SetSelectedTextColor(t.SelectionFg)
	ui.caseList.SetTitleColor(t.Header)

	ui.details.SetBackgroundColor(t.Surface)
	ui.details.SetTextColor(t.TextPrimary)
	ui.details.SetTitleColor(t.Header)

	ui.highlightFocus(ui.form)
}

func (ui *UI) cycleTheme() {
	next := themeOrder[0]
	for i, name := range themeOrder {
		if name == ui.themeName {
			next = themeOrder[(i+1)%len(themeOrder)]
			break
		}
	}
	ui.theme, ui.themeName = themeByName(next)
	ui.applyTheme()
	ui.setStatus("[%s]Theme: %s[-]", ui.theme.TagAccent, ui.themeName)
}

// GetStats returns a snapshot of the screen state.
func (ui *UI) GetStats() map[string]interface{} {
	return map[string]interface{}{
		"cases":       ui.store.Len(),
		"selected_id": ui.selectedID,
		"theme":       ui.themeName,
		"running":     ui.running.Load(),
	}
}

func caseTypeOptions() []string {
	types := intake.CaseTypes()
	out := make([]string, len(types))
	for i, t := range types {
		out[i] = string(t)
	}
	return out
}

func lawyerOptions() []string {
	lawyers := intake.Lawyers()
	out := make([]string, len(lawyers))
	for i, l := range lawyers {
		out[i] = string(l)
	}
	return out
}

// selectedOption maps a drop-down callback to a value; index -1 is "none".
func selectedOption(option string, index int) string {
	if index < 0 {
		return ""
	}
	return option
}

func displayNumber(r intake.CaseRecord) string {
	if r.CaseNumber == "" {
		return "(no number)"
	}
	return r.CaseNumber
}
