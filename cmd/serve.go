package cmd

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/Ashfaaq98/case-intake/internal/bus"
	"github.com/Ashfaaq98/case-intake/internal/intake"
	"github.com/Ashfaaq98/case-intake/internal/ui"
	"github.com/gdamore/tcell/v2"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	forceTUI bool
	theme    string
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Open the case intake form",
	Long: `Open the terminal intake form.

The form records cases into an in-memory list for this session only:
- Add appends the entered case and clears the inputs
- Delete removes the case selected in the list
- Clear resets the inputs without touching the list

Selecting a case shows its full details below the list.

Examples:
  # Start the form
  case-intake serve

  # Publish intake notifications to Redis
  case-intake serve --redis redis://localhost:6379

  # Use the light palette
  case-intake serve --theme light`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().BoolVar(&forceTUI, "force-tui", false, "Skip the terminal capability check")
	serveCmd.Flags().StringVar(&theme, "theme", "dark", "Color theme (dark, light, high-contrast)")
	viper.BindPFlag("ui.theme", serveCmd.Flags().Lookup("theme"))
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	config := GetConfig()

	slots, err := config.Intake.TimeSlots()
	if err != nil {
		return fmt.Errorf("invalid slot configuration: %w", err)
	}

	if !forceTUI && !canInitializeTUI() {
		return errors.New("terminal cannot host the intake form (try --force-tui, or `case-intake render` for one-off output)")
	}

	// Logs go to file while the TUI is active; errors still reach the terminal
	var logger *log.Logger
	if f := setupFileLogger(config.Log.File); f != nil {
		defer f.Close()
		logger = log.New(io.MultiWriter(levelWriter(f, config.Log.Level), &errorFilterWriter{os.Stderr}), "[serve] ", log.LstdFlags)
	} else {
		logger = newLogger("[serve] ", config.Log.Level)
	}

	logger.Println("Starting Case-Intake")
	if isDebug(config.Log.Level) {
		logger.Printf("Terminal info: %s", getTerminalInfo())
		logger.Printf("Time slots: %s", strings.Join(slots, ", "))
	}

	busLogger := log.New(logger.Writer(), "[bus] ", log.LstdFlags)
	eventBus := bus.NewBus(config.Bus.RedisURL, busLogger)
	defer eventBus.Close()

	if stats, err := eventBus.GetStats(ctx); err == nil {
		logger.Printf("Notification bus: %v", stats["type"])
	}

	store := intake.NewStore()
	uiLogger := log.New(logger.Writer(), "[UI] ", log.LstdFlags)
	screen := ui.NewUI(ctx, store, eventBus, ui.Options{
		TimeSlots: slots,
		Theme:     config.UI.Theme,
	}, uiLogger)

	if err := screen.Start(ctx); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}

	logger.Printf("Case-Intake stopped; %d case(s) discarded", store.Len())
	return nil
}

// canInitializeTUI tests if tcell can actually be initialized
func canInitializeTUI() bool {
	screen, err := tcell.NewScreen()
	if err != nil {
		return false
	}

	if err := screen.Init(); err != nil {
		return false
	}

	screen.Fini()
	return true
}

// getTerminalInfo returns detailed terminal information
func getTerminalInfo() string {
	var info []string

	term := os.Getenv("TERM")
	if term == "" {
		info = append(info, "TERM=<not set>")
	} else {
		info = append(info, fmt.Sprintf("TERM=%s", term))
	}

	if w, h := getTerminalSize(); w > 0 && h > 0 {
		info = append(info, fmt.Sprintf("Size=%dx%d", w, h))
	} else {
		info = append(info, "Size=unknown")
	}

	if isTerminal() {
		info = append(info, "TTY=yes")
	} else {
		info = append(info, "TTY=no")
	}

	return strings.Join(info, ", ")
}

// isTerminal checks if stdout is a terminal
func isTerminal() bool {
	if fileInfo, err := os.Stdout.Stat(); err == nil {
		return (fileInfo.Mode() & os.ModeCharDevice) != 0
	}
	return false
}
