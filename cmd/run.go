package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/bnema/checkin-cli/internal/adapters/browser"
	"github.com/bnema/checkin-cli/internal/adapters/forum"
	"github.com/bnema/checkin-cli/internal/adapters/notify"
	"github.com/bnema/checkin-cli/internal/application"
	"github.com/bnema/checkin-cli/internal/domain"
	"github.com/bnema/checkin-cli/internal/ports"
)

func newRunCmd(app *app) *cobra.Command {
	var (
		siteName    string
		baseURL     string
		accountsRaw string
		headless    bool
	)

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Check in every configured account on a site",
		RunE: func(cmd *cobra.Command, _ []string) error {
			accounts, err := resolveAccounts(accountsRaw)
			if err != nil {
				return err
			}

			site, err := resolveSite(cmd.Context(), app, siteName, baseURL)
			if err != nil {
				return err
			}

			driver := browser.NewDriver(browser.Config{
				RemoteURL: app.webdriverURL,
				Headless:  headless,
				UserAgent: app.userAgent,
			}, app.log)
			runner := application.NewRunner(driver, forum.NewClient(0, app.log), app.log)

			var notifier ports.Notifier
			if app.telegram.BotToken != "" && app.telegram.ChatID != "" {
				notifier = notify.NewTelegram(app.telegram, app.log)
			}

			batch := application.NewBatchService(runner, notifier, app.clock, app.log)

			report, runErr := batch.RunAll(cmd.Context(), accounts, site)
			if runErr != nil && len(report.Results) == 0 {
				return runErr
			}

			fmt.Fprintln(cmd.OutOrStdout(), report.Render(site.Name))
			batch.Publish(cmd.Context(), report, site)

			if runErr != nil {
				return runErr
			}
			if report.Succeeded < report.Total {
				return fmt.Errorf("%d of %d accounts failed", report.Total-report.Succeeded, report.Total)
			}

			return nil
		},
	}

	cmd.Flags().StringVar(&siteName, "site", "default", "Stored site profile to run against")
	cmd.Flags().StringVar(&baseURL, "base-url", "", "Forum base URL (bypasses the stored profile)")
	cmd.Flags().StringVar(&accountsRaw, "accounts", "", "Accounts as user:pass[,user:pass...] (defaults to CHECKIN_ACCOUNTS)")
	cmd.Flags().BoolVar(&headless, "headless", true, "Run the browser headless")

	return cmd
}

// resolveAccounts picks credentials from the flag, then CHECKIN_ACCOUNTS,
// then the single-account CHECKIN_USERNAME/CHECKIN_PASSWORD pair.
func resolveAccounts(raw string) ([]domain.Account, error) {
	if raw == "" {
		raw = os.Getenv("CHECKIN_ACCOUNTS")
	}
	if raw != "" {
		accounts := domain.ParseAccounts(raw)
		if len(accounts) == 0 {
			return nil, errors.New("no valid account entries; expected user:pass[,user:pass...]")
		}
		return accounts, nil
	}

	username := os.Getenv("CHECKIN_USERNAME")
	secret := os.Getenv("CHECKIN_PASSWORD")
	if username != "" && secret != "" {
		return []domain.Account{{Identifier: username, Secret: secret}}, nil
	}

	return nil, errors.New("no accounts configured: pass --accounts or set CHECKIN_ACCOUNTS or CHECKIN_USERNAME/CHECKIN_PASSWORD")
}

func resolveSite(ctx context.Context, app *app, name, baseURL string) (domain.Site, error) {
	if baseURL != "" {
		return domain.NewSite(name, baseURL), nil
	}

	site, err := app.sites.GetByName(ctx, name)
	if errors.Is(err, domain.ErrSiteNotFound) {
		return domain.Site{}, fmt.Errorf("site %q is not configured: run 'checkin site set' or pass --base-url", name)
	}
	if err != nil {
		return domain.Site{}, fmt.Errorf("load site profile: %w", err)
	}

	return site, nil
}
