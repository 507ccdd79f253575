package application

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/bnema/checkin-cli/internal/domain"
	"github.com/bnema/checkin-cli/internal/ports"
)

const (
	defaultLoginTimeout   = 20 * time.Second
	fieldLocateTimeout    = 10 * time.Second
	buttonLocateTimeout   = 5 * time.Second
	csrfTokenMetaName     = "csrf-token"
	authFailedOutcomeText = "authentication failed"
)

// Runner executes the full check-in flow for one account. Every failure
// mode is converted into a failed AccountResult; nothing escapes the
// RunAccount boundary.
type Runner struct {
	browser      ports.Browser
	client       ports.CheckinClient
	log          logrus.FieldLogger
	loginTimeout time.Duration
}

func NewRunner(browser ports.Browser, client ports.CheckinClient, log logrus.FieldLogger) *Runner {
	return &Runner{
		browser:      browser,
		client:       client,
		log:          log,
		loginTimeout: defaultLoginTimeout,
	}
}

func (r *Runner) RunAccount(ctx context.Context, account domain.Account, site domain.Site) domain.AccountResult {
	masked := domain.MaskIdentifier(account.Identifier)
	log := r.log.WithFields(logrus.Fields{"site": site.Name, "account": masked})

	failed := func(message string) domain.AccountResult {
		log.Error(message)
		return domain.AccountResult{MaskedIdentifier: masked, Succeeded: false, OutcomeText: message}
	}

	log.Info("starting account run")

	session, err := r.browser.NewSession(ctx)
	if err != nil {
		return failed(fmt.Sprintf("browser session setup failed: %v", err))
	}
	defer func() {
		if err := session.Quit(); err != nil {
			log.WithError(err).Warn("close browser session")
		}
	}()

	if err := r.login(ctx, session, account, site); err != nil {
		return failed(fmt.Sprintf("%s: %v", authFailedOutcomeText, err))
	}
	log.Info("login completed")

	bridged, err := r.bridgeSession(ctx, session, site)
	if err != nil {
		return failed(fmt.Sprintf("%s: %v", authFailedOutcomeText, err))
	}

	resp, err := r.client.PerformCheckin(ctx, site, bridged)
	if err != nil {
		return failed(fmt.Sprintf("check-in request failed: %v", err))
	}

	outcome := domain.Classify(resp.StatusCode, resp.Body, site.Patterns)
	log.WithFields(logrus.Fields{"status": resp.StatusCode, "outcome": outcome.Kind}).Info("check-in classified")

	result := domain.AccountResult{
		MaskedIdentifier: masked,
		Succeeded:        outcome.Succeeded(),
		OutcomeText:      outcome.Message,
	}

	if outcome.Succeeded() {
		// Best effort: a failed status fetch never demotes the result.
		status, err := r.client.FetchStatus(ctx, site, bridged)
		if err != nil {
			log.WithError(err).Warn("fetch supplementary status")
		} else {
			result.Supplementary = status.Summary()
		}
	}

	return result
}

// login fills the site's login form and waits until the browser leaves
// the login page.
func (r *Runner) login(ctx context.Context, session ports.BrowserSession, account domain.Account, site domain.Site) error {
	if err := session.Navigate(ctx, site.LoginURL()); err != nil {
		return err
	}

	username, err := session.WaitLocated(ctx, site.UsernameField, fieldLocateTimeout)
	if err != nil {
		return fmt.Errorf("locate username field: %w", err)
	}
	if err := fillField(username, account.Identifier); err != nil {
		return fmt.Errorf("fill username field: %w", err)
	}

	password, err := session.WaitLocated(ctx, site.PasswordField, fieldLocateTimeout)
	if err != nil {
		return fmt.Errorf("locate password field: %w", err)
	}
	if err := fillField(password, account.Secret); err != nil {
		return fmt.Errorf("fill password field: %w", err)
	}

	button, ok := r.findLoginButton(ctx, session, site)
	if !ok {
		return fmt.Errorf("%w: no login button matched any strategy", domain.ErrAuthenticationFailed)
	}
	if err := button.Click(); err != nil {
		return fmt.Errorf("click login button: %w", err)
	}

	offLoginPage := func(url string) bool {
		return !strings.Contains(url, site.LoginPath)
	}
	if err := session.WaitURL(ctx, offLoginPage, r.loginTimeout); err != nil {
		return fmt.Errorf("%w: still on login page", domain.ErrAuthenticationFailed)
	}

	return nil
}

// findLoginButton tries the site's discovery strategies in order; the
// first located element wins. Not finding one is a plain outcome here,
// not an error.
func (r *Runner) findLoginButton(ctx context.Context, session ports.BrowserSession, site domain.Site) (ports.Element, bool) {
	for _, selector := range site.LoginButtons {
		button, err := session.WaitLocated(ctx, selector, buttonLocateTimeout)
		if err != nil {
			r.log.WithField("selector", selector.Value).Debug("login button strategy missed")
			continue
		}
		return button, true
	}
	return nil, false
}

// bridgeSession transfers the browser session's cookies and anti-forgery
// token into a standalone session usable by the HTTP client. A missing
// token fails loudly; requests without it cannot succeed.
func (r *Runner) bridgeSession(ctx context.Context, session ports.BrowserSession, site domain.Site) (domain.AuthenticatedSession, error) {
	// The token meta tag lives on regular pages, not the login page.
	if err := session.Navigate(ctx, site.HomeURL()); err != nil {
		return domain.AuthenticatedSession{}, err
	}

	token, err := session.MetaContent(csrfTokenMetaName)
	token = strings.TrimSpace(token)
	if err != nil || token == "" {
		return domain.AuthenticatedSession{}, domain.ErrTokenUnavailable
	}

	cookies, err := session.Cookies()
	if err != nil {
		return domain.AuthenticatedSession{}, fmt.Errorf("bridge session cookies: %w", err)
	}

	return domain.AuthenticatedSession{Cookies: cookies, CSRFToken: token}, nil
}

func fillField(field ports.Element, value string) error {
	if err := field.Clear(); err != nil {
		return err
	}
	return field.SendKeys(value)
}
