package cmd

import (
	"fmt"

	"github.com/Ashfaaq98/case-intake/internal/intake"
	"github.com/spf13/cobra"
)

var renderInput intake.Form

// renderCmd prints the detail form of a single case without opening the TUI.
var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Print the detail text for a case",
	Long: `Render a case the way the detail pane shows it. Every field is optional
and free text; catalog values are suggested by "case-intake options".

Examples:
  case-intake render --case-number C-1 --plaintiff Alice --defendants Bob \
    --court "District Court" --case-type "Divorce Case" --lawyer "Family Lawyer" \
    --time 09:00 --ticket T-100`,
	Args: cobra.NoArgs,
	RunE: runRender,
}

func init() {
	rootCmd.AddCommand(renderCmd)

	f := renderCmd.Flags()
	f.StringVar(&renderInput.CaseNumber, "case-number", "", "Case number")
	f.StringVar(&renderInput.Plaintiff, "plaintiff", "", "Plaintiff")
	f.StringVar(&renderInput.Defendants, "defendants", "", "Defendants")
	f.StringVar(&renderInput.Court, "court", "", "Court")
	f.StringVar((*string)(&renderInput.CaseType), "case-type", "", "Case type")
	f.StringVar((*string)(&renderInput.Lawyer), "lawyer", "", "Lawyer specialization")
	f.StringVar(&renderInput.AppointmentTime, "time", "", "Appointment time (HH:MM)")
	f.StringVar(&renderInput.TicketNumber, "ticket", "", "Ticket number")
}

func runRender(cmd *cobra.Command, args []string) error {
	logger := newLogger("[render] ", GetConfig().Log.Level)
	record := renderInput.Record()

	if record.CaseType != "" && !record.CaseType.Known() {
		logger.Printf("Note: case type %q is not in the catalog", record.CaseType)
	}
	if record.Lawyer != "" && !record.Lawyer.Known() {
		logger.Printf("Note: lawyer %q is not in the catalog", record.Lawyer)
	}

	fmt.Fprintln(cmd.OutOrStdout(), intake.Render(record))
	return nil
}
