package cmd

import (
	"fmt"

	"github.com/Ashfaaq98/case-intake/internal/intake"
	"github.com/spf13/cobra"
)

// optionsCmd lists the selection values offered by the form.
var optionsCmd = &cobra.Command{
	Use:   "options [case-types|lawyers|slots]",
	Short: "List the form's selection values",
	Long: `List the values offered by the form's drop-downs. With no argument all
three lists are printed. Slots follow the intake.slots.* configuration.`,
	Args:      cobra.MaximumNArgs(1),
	ValidArgs: []string{"case-types", "lawyers", "slots"},
	RunE:      runOptions,
}

func init() {
	rootCmd.AddCommand(optionsCmd)
}

func runOptions(cmd *cobra.Command, args []string) error {
	which := ""
	if len(args) > 0 {
		which = args[0]
	}
	out := cmd.OutOrStdout()

	switch which {
	case "", "case-types", "lawyers", "slots":
	default:
		return fmt.Errorf("unknown option list %q (want case-types, lawyers or slots)", which)
	}

	if which == "" || which == "case-types" {
		fmt.Fprintln(out, "Case types:")
		for _, t := range intake.CaseTypes() {
			fmt.Fprintf(out, "  %s\n", t)
		}
	}
	if which == "" || which == "lawyers" {
		fmt.Fprintln(out, "Lawyers:")
		for _, l := range intake.Lawyers() {
			fmt.Fprintf(out, "  %s\n", l)
		}
	}
	if which == "" || which == "slots" {
		slots, err := GetConfig().Intake.TimeSlots()
		if err != nil {
			return fmt.Errorf("invalid slot configuration: %w", err)
		}
		fmt.Fprintln(out, "Time slots:")
		for _, s := range slots {
			fmt.Fprintf(out, "  %s\n", s)
		}
	}
	return nil
}
