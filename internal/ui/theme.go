package ui

import (
	"os"
	"strings"

	"github.com/gdamore/tcell/v2"
)

// Theme defines UI color tokens used across widgets and text tags.
type Theme struct {
	// Widget colors
	Bg          tcell.Color
	Surface     tcell.Color
	Border      tcell.Color
	FocusBorder tcell.Color
	SelectionBg tcell.Color
	SelectionFg tcell.Color
	TextPrimary tcell.Color
	TextMuted   tcell.Color
	Header      tcell.Color

	// Text tag colors (for tview dynamic color markup)
	TagMuted   string
	TagAccent  string
	TagSuccess string
	TagWarning string
	TagError   string
}

// helpers
func hex(s string) tcell.Color { return tcell.GetColor(s) }

func themeDark() Theme {
	return Theme{
		Bg:          hex("#0e1116"),
		Surface:     hex("#12161e"),
		Border:      hex("#2b3240"),
		FocusBorder: hex("#4aa8ff"),
		SelectionBg: hex("#2b3240"),
		SelectionFg: hex("#cfd8e3"),
		TextPrimary: hex("#e6edf3"),
		TextMuted:   hex("#8a939f"),
		Header:      hex("#eab308"),

		TagMuted:   "#8a939f",
		TagAccent:  "#2dd4bf",
		TagSuccess: "#22c55e",
		TagWarning: "#f59e0b",
		TagError:   "#ef4444",
	}
}

func themeLight() Theme {
	return Theme{
		Bg:          hex("#f6f8fa"),
		Surface:     hex("#ffffff"),
		Border:      hex("#d0d7de"),
		FocusBorder: hex("#1f6feb"),
		SelectionBg: hex("#e2e8f0"),
		SelectionFg: hex("#111827"),
		TextPrimary: hex("#111827"),
		TextMuted:   hex("#6b7280"),
		Header:      hex("#1f2937"),

		TagMuted:   "#6b7280",
		TagAccent:  "#2563eb",
		TagSuccess: "#15803d",
		TagWarning: "#b45309",
		TagError:   "#b91c1c",
	}
}

func themeHighContrast() Theme {
	return Theme{
		Bg:          hex("#000000"),
		Surface:     hex("#000000"),
		Border:      hex("#ffffff"),
		FocusBorder: hex("#ffff00"),
		SelectionBg: hex("#ffffff"),
		SelectionFg: hex("#000000"),
		TextPrimary: hex("#ffffff"),
		TextMuted:   hex("#cccccc"),
		Header:      hex("#ffffff"),

		TagMuted:   "#cccccc",
		TagAccent:  "#00ffff",
		TagSuccess: "#00ff00",
		TagWarning: "#ffff00",
		TagError:   "#ff0000",
	}
}

// themeOrder is the cycle order for the theme toggle key.
var themeOrder = []string{"dark", "light", "high-contrast"}

// themeByName returns the named palette, falling back to dark.
func themeByName(name string) (Theme, string) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "light":
		return themeLight(), "light"
	case "high-contrast", "hc":
		return themeHighContrast(), "high-contrast"
	default:
		return themeDark(), "dark"
	}
}

func detectTrueColor() bool {
	// Best-effort detection without initializing screen
	ct := strings.ToLower(os.Getenv("COLORTERM"))
	if strings.Contains(ct, "truecolor") || strings.Contains(ct, "24bit") {
		return true
	}
	term := strings.ToLower(os.Getenv("TERM"))
	return strings.Contains(term, "truecolor") || strings.Contains(term, "24bit") || strings.Contains(term, "256color")
}
