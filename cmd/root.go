package cmd

import "github.com/spf13/cobra"

func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "checkin",
		Short:         "Automate daily forum check-ins",
		Long:          "checkin logs into Discourse-style forums through a real browser, bridges the session into a plain HTTP client, performs the daily check-in for every configured account, and reports the aggregate outcome.",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	app, err := wireApp()
	if err != nil {
		rootCmd.RunE = func(_ *cobra.Command, _ []string) error {
			return err
		}
		return rootCmd
	}

	rootCmd.AddCommand(
		newVersionCmd(),
		newRunCmd(app),
		newScheduleCmd(app),
		newSiteCmd(app),
	)

	return rootCmd
}
