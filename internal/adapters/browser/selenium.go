// Package browser drives a Chrome instance through a Selenium WebDriver
// remote, with the usual knobs to look less like an automated client.
package browser

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/tebeka/selenium"
	"github.com/tebeka/selenium/chrome"

	"github.com/bnema/checkin-cli/internal/domain"
	"github.com/bnema/checkin-cli/internal/ports"
)

const (
	defaultRemoteURL = "http://localhost:4444/wd/hub"
	pollInterval     = 500 * time.Millisecond

	// Discourse sets navigator.webdriver when driven; masking it keeps
	// the login form from switching into bot-challenge mode.
	maskWebdriverScript = "Object.defineProperty(navigator, 'webdriver', {get: () => undefined})"
)

type Config struct {
	RemoteURL string
	Headless  bool
	UserAgent string
}

// Driver opens selenium-backed browser sessions.
type Driver struct {
	cfg Config
	log logrus.FieldLogger
}

var _ ports.Browser = (*Driver)(nil)

func NewDriver(cfg Config, log logrus.FieldLogger) *Driver {
	if cfg.RemoteURL == "" {
		cfg.RemoteURL = defaultRemoteURL
	}

	return &Driver{cfg: cfg, log: log}
}

func (d *Driver) NewSession(ctx context.Context) (ports.BrowserSession, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	caps := selenium.Capabilities{"browserName": "chrome"}

	args := []string{"--disable-blink-features=AutomationControlled"}
	if d.cfg.Headless {
		args = append(args,
			"--headless=new",
			"--no-sandbox",
			"--disable-dev-shm-usage",
			"--disable-gpu",
			"--window-size=1920,1080",
		)
	}
	if d.cfg.UserAgent != "" {
		args = append(args, "user-agent="+d.cfg.UserAgent)
	}

	caps.AddChrome(chrome.Capabilities{
		Args:            args,
		ExcludeSwitches: []string{"enable-automation"},
	})

	wd, err := selenium.NewRemote(caps, d.cfg.RemoteURL)
	if err != nil {
		return nil, fmt.Errorf("connect to webdriver remote: %w", err)
	}

	if _, err := wd.ExecuteScript(maskWebdriverScript, nil); err != nil {
		d.log.WithError(err).Debug("mask webdriver flag")
	}

	return &session{wd: wd, log: d.log}, nil
}

type session struct {
	wd  selenium.WebDriver
	log logrus.FieldLogger
}

var _ ports.BrowserSession = (*session)(nil)

func (s *session) Navigate(ctx context.Context, url string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if err := s.wd.Get(url); err != nil {
		return fmt.Errorf("navigate to %s: %w", url, err)
	}
	return nil
}

func (s *session) CurrentURL() (string, error) {
	return s.wd.CurrentURL()
}

func (s *session) Find(selector domain.Selector) (ports.Element, error) {
	by, err := seleniumBy(selector.Kind)
	if err != nil {
		return nil, err
	}

	found, err := s.wd.FindElement(by, selector.Value)
	if err != nil {
		return nil, fmt.Errorf("find element %s=%s: %w", selector.Kind, selector.Value, err)
	}
	return element{found}, nil
}

func (s *session) WaitLocated(ctx context.Context, selector domain.Selector, timeout time.Duration) (ports.Element, error) {
	by, err := seleniumBy(selector.Kind)
	if err != nil {
		return nil, err
	}

	condition := func(wd selenium.WebDriver) (bool, error) {
		if err := ctx.Err(); err != nil {
			return false, err
		}
		if _, err := wd.FindElement(by, selector.Value); err != nil {
			return false, nil
		}
		return true, nil
	}

	if err := s.wd.WaitWithTimeoutAndInterval(condition, timeout, pollInterval); err != nil {
		return nil, fmt.Errorf("wait for element %s=%s: %w", selector.Kind, selector.Value, err)
	}
	return s.Find(selector)
}

func (s *session) WaitURL(ctx context.Context, accept func(url string) bool, timeout time.Duration) error {
	condition := func(wd selenium.WebDriver) (bool, error) {
		if err := ctx.Err(); err != nil {
			return false, err
		}
		current, err := wd.CurrentURL()
		if err != nil {
			return false, nil
		}
		return accept(current), nil
	}

	if err := s.wd.WaitWithTimeoutAndInterval(condition, timeout, pollInterval); err != nil {
		return fmt.Errorf("wait for url change: %w", err)
	}
	return nil
}

func (s *session) Cookies() ([]domain.Cookie, error) {
	raw, err := s.wd.GetCookies()
	if err != nil {
		return nil, fmt.Errorf("read session cookies: %w", err)
	}

	cookies := make([]domain.Cookie, 0, len(raw))
	for _, cookie := range raw {
		if cookie.Name == "" {
			s.log.Debug("skipping unreadable cookie")
			continue
		}
		cookies = append(cookies, domain.Cookie{Name: cookie.Name, Value: cookie.Value})
	}
	return cookies, nil
}

func (s *session) MetaContent(name string) (string, error) {
	selector := domain.Selector{Kind: domain.ByCSS, Value: fmt.Sprintf("meta[name='%s']", name)}

	meta, err := s.Find(selector)
	if err != nil {
		return "", err
	}

	content, err := meta.Attribute("content")
	if err != nil {
		return "", fmt.Errorf("read meta %s content: %w", name, err)
	}
	return strings.TrimSpace(content), nil
}

func (s *session) Quit() error {
	return s.wd.Quit()
}

type element struct {
	el selenium.WebElement
}

func (e element) Clear() error {
	return e.el.Clear()
}

func (e element) SendKeys(text string) error {
	return e.el.SendKeys(text)
}

func (e element) Click() error {
	return e.el.Click()
}

func (e element) Attribute(name string) (string, error) {
	return e.el.GetAttribute(name)
}

func seleniumBy(kind domain.SelectorKind) (string, error) {
	switch kind {
	case domain.ByID:
		return selenium.ByID, nil
	case domain.ByCSS:
		return selenium.ByCSSSelector, nil
	case domain.ByXPath:
		return selenium.ByXPATH, nil
	}
	return "", fmt.Errorf("unsupported selector kind %q", kind)
}
