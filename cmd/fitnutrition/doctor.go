package fitnutrition

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/madDev-12/fitnutrition/internal/store"
)

var (
	doctorFix     bool
	doctorOffline bool
)

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check local state and backend reachability",
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		var report store.DoctorReport
		err := withStore(func(s *store.Store) error {
			var err error
			report, err = s.Doctor(doctorFix)
			return err
		})
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "Integrity errors: %d\n", len(report.IntegrityErrors))
		for _, line := range report.IntegrityErrors {
			fmt.Fprintf(out, "  %s\n", line)
		}
		fmt.Fprintf(out, "Invalid state values: %d\n", len(report.InvalidValues))
		for _, key := range report.InvalidValues {
			fmt.Fprintf(out, "  %s\n", key)
		}
		if len(report.UnknownKeys) > 0 {
			fmt.Fprintf(out, "Unknown state keys: %v\n", report.UnknownKeys)
		}
		if doctorFix {
			fmt.Fprintf(out, "Fixed values: %d\n", report.FixedValues)
			report.InvalidValues = report.InvalidValues[report.FixedValues:]
		}

		backendErr := error(nil)
		if !doctorOffline {
			_, backendErr = newClient().ListMealPlans(commandContext(cmd))
			if backendErr != nil {
				fmt.Fprintf(out, "Backend %s: unreachable (%s)\n", settings.API.BaseURL, backendErr)
			} else {
				fmt.Fprintf(out, "Backend %s: ok\n", settings.API.BaseURL)
			}
		}

		if !report.OK() || backendErr != nil {
			return fmt.Errorf("doctor found issues")
		}
		return nil
	},
}

func init() {
	doctorCmd.Flags().BoolVar(&doctorFix, "fix", false, "Remove state values that cannot be decoded")
	doctorCmd.Flags().BoolVar(&doctorOffline, "offline", false, "Skip the backend check")
	rootCmd.AddCommand(doctorCmd)
}
