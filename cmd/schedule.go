package cmd

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/bnema/checkin-cli/internal/adapters/monitor"
	"github.com/bnema/checkin-cli/internal/application"
)

func newScheduleCmd(app *app) *cobra.Command {
	var timezone string

	cmd := &cobra.Command{
		Use:   "schedule <start-minute> <end-minute> <monitor-id>",
		Short: "Randomize tomorrow's run time and push it to the uptime monitor",
		Long:  "schedule picks a uniformly random instant inside tomorrow's [start-minute, end-minute) window after midnight and rewrites the monitor's polling interval so its next probe fires the batch at that instant.",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			startMinute, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("parse start minute: %w", err)
			}
			endMinute, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("parse end minute: %w", err)
			}
			monitorID, err := strconv.Atoi(args[2])
			if err != nil {
				return fmt.Errorf("parse monitor id: %w", err)
			}

			if app.kuma.BaseURL == "" || app.kuma.APIKey == "" {
				return errors.New("monitor is not configured: set KUMA_URL and KUMA_API_KEY")
			}

			location, err := time.LoadLocation(timezone)
			if err != nil {
				return fmt.Errorf("load timezone %q: %w", timezone, err)
			}

			service := application.NewScheduleService(
				monitor.NewKumaClient(app.kuma, app.log), app.clock, location, app.log)

			decision, err := service.Reschedule(cmd.Context(), startMinute, endMinute, monitorID)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "next run %s (interval %ds)\n",
				decision.NextRun.Format(time.RFC3339), decision.IntervalSeconds)
			return nil
		},
	}

	cmd.Flags().StringVar(&timezone, "timezone", "Asia/Shanghai", "IANA timezone the window minutes are anchored in")

	return cmd
}
