package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bnema/checkin-cli/internal/domain"
)

func newSiteCmd(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "site",
		Short: "Manage stored site profiles",
	}

	cmd.AddCommand(
		newSiteListCmd(app),
		newSiteSetCmd(app),
	)

	return cmd
}

func newSiteListCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List stored site profiles",
		RunE: func(cmd *cobra.Command, _ []string) error {
			sites, err := app.sites.List(cmd.Context())
			if err != nil {
				return err
			}
			if len(sites) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "no sites configured")
				return nil
			}

			for _, site := range sites {
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s\n", site.Name, site.BaseURL, site.CheckinPath)
			}
			return nil
		},
	}
}

func newSiteSetCmd(app *app) *cobra.Command {
	var (
		name        string
		baseURL     string
		loginPath   string
		checkinPath string
		statusPath  string
	)

	cmd := &cobra.Command{
		Use:   "set",
		Short: "Create or update a site profile",
		RunE: func(cmd *cobra.Command, _ []string) error {
			site := domain.Site{
				Name:        name,
				BaseURL:     baseURL,
				LoginPath:   loginPath,
				CheckinPath: checkinPath,
				StatusPath:  statusPath,
			}.WithDefaults()

			if err := app.sites.Save(cmd.Context(), site); err != nil {
				return fmt.Errorf("save site profile: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "saved site %s (%s)\n", site.Name, site.BaseURL)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "default", "Profile name")
	cmd.Flags().StringVar(&baseURL, "base-url", "", "Forum base URL")
	cmd.Flags().StringVar(&loginPath, "login-path", "", "Login page path (default /login)")
	cmd.Flags().StringVar(&checkinPath, "checkin-path", "", "Check-in endpoint path (default /checkin)")
	cmd.Flags().StringVar(&statusPath, "status-path", "", "Status endpoint path (default /checkin.json)")
	_ = cmd.MarkFlagRequired("base-url")

	return cmd
}
