package application

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/checkin-cli/internal/domain"
	"github.com/bnema/checkin-cli/internal/ports"
)

func testLogger() logrus.FieldLogger {
	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)
	return log
}

type fakeElement struct {
	cleared  bool
	typed    string
	clicked  bool
	attrs    map[string]string
	clickErr error
}

func (e *fakeElement) Clear() error {
	e.cleared = true
	return nil
}

func (e *fakeElement) SendKeys(text string) error {
	e.typed += text
	return nil
}

func (e *fakeElement) Click() error {
	e.clicked = true
	return e.clickErr
}

func (e *fakeElement) Attribute(name string) (string, error) {
	value, ok := e.attrs[name]
	if !ok {
		return "", errors.New("no such attribute")
	}
	return value, nil
}

// fakeSession scripts a browser session keyed by selector value.
type fakeSession struct {
	elements   map[string]*fakeElement
	meta       map[string]string
	cookies    []domain.Cookie
	cookiesErr error
	loginOK    bool
	currentURL string
	navigated  []string
	quitCalled bool
}

func (s *fakeSession) Navigate(_ context.Context, url string) error {
	s.navigated = append(s.navigated, url)
	s.currentURL = url
	return nil
}

func (s *fakeSession) CurrentURL() (string, error) {
	return s.currentURL, nil
}

func (s *fakeSession) Find(selector domain.Selector) (ports.Element, error) {
	return s.WaitLocated(context.Background(), selector, 0)
}

func (s *fakeSession) WaitLocated(_ context.Context, selector domain.Selector, _ time.Duration) (ports.Element, error) {
	element, ok := s.elements[selector.Value]
	if !ok {
		return nil, fmt.Errorf("element %s not found", selector.Value)
	}
	return element, nil
}

func (s *fakeSession) WaitURL(_ context.Context, accept func(string) bool, _ time.Duration) error {
	if !s.loginOK {
		return errors.New("timed out")
	}
	s.currentURL = "https://forum.example.com/"
	if !accept(s.currentURL) {
		return errors.New("url not accepted")
	}
	return nil
}

func (s *fakeSession) Cookies() ([]domain.Cookie, error) {
	return s.cookies, s.cookiesErr
}

func (s *fakeSession) MetaContent(name string) (string, error) {
	value, ok := s.meta[name]
	if !ok {
		return "", errors.New("meta tag not found")
	}
	return value, nil
}

func (s *fakeSession) Quit() error {
	s.quitCalled = true
	return nil
}

type fakeBrowser struct {
	session *fakeSession
	err     error
}

func (b *fakeBrowser) NewSession(context.Context) (ports.BrowserSession, error) {
	if b.err != nil {
		return nil, b.err
	}
	return b.session, nil
}

type fakeCheckinClient struct {
	resp      ports.CheckinResponse
	respErr   error
	status    domain.CheckinStatus
	statusErr error

	checkinSession domain.AuthenticatedSession
	statusCalled   bool
}

func (c *fakeCheckinClient) PerformCheckin(_ context.Context, _ domain.Site, session domain.AuthenticatedSession) (ports.CheckinResponse, error) {
	c.checkinSession = session
	return c.resp, c.respErr
}

func (c *fakeCheckinClient) FetchStatus(_ context.Context, _ domain.Site, _ domain.AuthenticatedSession) (domain.CheckinStatus, error) {
	c.statusCalled = true
	return c.status, c.statusErr
}

func loginReadySession() *fakeSession {
	return &fakeSession{
		elements: map[string]*fakeElement{
			"login-account-name":     {},
			"login-account-password": {},
			"#login-button":          {},
		},
		meta:    map[string]string{"csrf-token": "token-abc"},
		cookies: []domain.Cookie{{Name: "_t", Value: "cookie-1"}},
		loginOK: true,
	}
}

func testAccount() domain.Account {
	return domain.Account{Identifier: "alice@mail.com", Secret: "secret"}
}

func testSite() domain.Site {
	return domain.NewSite("forum", "https://forum.example.com")
}

func TestRunAccountHappyPath(t *testing.T) {
	session := loginReadySession()
	client := &fakeCheckinClient{
		resp:   ports.CheckinResponse{StatusCode: 200, Body: `{"success": true, "message": "done"}`},
		status: domain.CheckinStatus{Points: 10, ConsecutiveDays: 2, TotalDays: 5},
	}
	runner := NewRunner(&fakeBrowser{session: session}, client, testLogger())

	result := runner.RunAccount(context.Background(), testAccount(), testSite())

	assert.True(t, result.Succeeded)
	assert.Equal(t, "al***", result.MaskedIdentifier)
	assert.Equal(t, "done", result.OutcomeText)
	assert.Contains(t, result.Supplementary, "points: 10")

	// Credentials were typed into the right fields.
	assert.Equal(t, "alice@mail.com", session.elements["login-account-name"].typed)
	assert.Equal(t, "secret", session.elements["login-account-password"].typed)
	assert.True(t, session.elements["#login-button"].clicked)

	// The bridged session carried the cookies and token.
	assert.Equal(t, "token-abc", client.checkinSession.CSRFToken)
	require.Len(t, client.checkinSession.Cookies, 1)

	assert.True(t, session.quitCalled)
}

func TestRunAccountBrowserSetupFailure(t *testing.T) {
	runner := NewRunner(&fakeBrowser{err: errors.New("webdriver unreachable")}, &fakeCheckinClient{}, testLogger())

	result := runner.RunAccount(context.Background(), testAccount(), testSite())

	assert.False(t, result.Succeeded)
	assert.Contains(t, result.OutcomeText, "browser session setup failed")
}

func TestRunAccountLoginTimeoutFails(t *testing.T) {
	session := loginReadySession()
	session.loginOK = false
	runner := NewRunner(&fakeBrowser{session: session}, &fakeCheckinClient{}, testLogger())

	result := runner.RunAccount(context.Background(), testAccount(), testSite())

	assert.False(t, result.Succeeded)
	assert.Contains(t, result.OutcomeText, "authentication failed")
	assert.True(t, session.quitCalled, "session must be released on the failure path")
}

func TestRunAccountFallsBackThroughButtonStrategies(t *testing.T) {
	session := loginReadySession()
	delete(session.elements, "#login-button")
	session.elements["button.btn-primary"] = &fakeElement{}
	client := &fakeCheckinClient{resp: ports.CheckinResponse{StatusCode: 200, Body: "ok"}}
	runner := NewRunner(&fakeBrowser{session: session}, client, testLogger())

	result := runner.RunAccount(context.Background(), testAccount(), testSite())

	assert.True(t, result.Succeeded)
	assert.True(t, session.elements["button.btn-primary"].clicked)
}

func TestRunAccountNoLoginButtonFails(t *testing.T) {
	session := loginReadySession()
	delete(session.elements, "#login-button")
	runner := NewRunner(&fakeBrowser{session: session}, &fakeCheckinClient{}, testLogger())

	result := runner.RunAccount(context.Background(), testAccount(), testSite())

	assert.False(t, result.Succeeded)
	assert.Contains(t, result.OutcomeText, "no login button matched")
	assert.True(t, session.quitCalled)
}

func TestRunAccountMissingTokenFailsLoudly(t *testing.T) {
	session := loginReadySession()
	session.meta = map[string]string{}
	runner := NewRunner(&fakeBrowser{session: session}, &fakeCheckinClient{}, testLogger())

	result := runner.RunAccount(context.Background(), testAccount(), testSite())

	assert.False(t, result.Succeeded)
	assert.Contains(t, result.OutcomeText, domain.ErrTokenUnavailable.Error())
	assert.True(t, session.quitCalled)
}

func TestRunAccountEmptyTokenFailsLoudly(t *testing.T) {
	session := loginReadySession()
	session.meta["csrf-token"] = "   "
	runner := NewRunner(&fakeBrowser{session: session}, &fakeCheckinClient{}, testLogger())

	result := runner.RunAccount(context.Background(), testAccount(), testSite())

	assert.False(t, result.Succeeded)
}

func TestRunAccountTransportErrorFails(t *testing.T) {
	session := loginReadySession()
	client := &fakeCheckinClient{respErr: errors.New("connection reset")}
	runner := NewRunner(&fakeBrowser{session: session}, client, testLogger())

	result := runner.RunAccount(context.Background(), testAccount(), testSite())

	assert.False(t, result.Succeeded)
	assert.Contains(t, result.OutcomeText, "check-in request failed")
	assert.True(t, session.quitCalled)
}

func TestRunAccountAuthFailureClassification(t *testing.T) {
	session := loginReadySession()
	client := &fakeCheckinClient{resp: ports.CheckinResponse{StatusCode: 403, Body: ""}}
	runner := NewRunner(&fakeBrowser{session: session}, client, testLogger())

	result := runner.RunAccount(context.Background(), testAccount(), testSite())

	assert.False(t, result.Succeeded)
	assert.Contains(t, result.OutcomeText, "not logged in")
	assert.False(t, client.statusCalled, "supplementary fetch must be skipped on failure")
}

func TestRunAccountDuplicateCountsAsSuccess(t *testing.T) {
	session := loginReadySession()
	client := &fakeCheckinClient{
		resp:      ports.CheckinResponse{StatusCode: 422, Body: "already checked in"},
		statusErr: errors.New("status endpoint down"),
	}
	runner := NewRunner(&fakeBrowser{session: session}, client, testLogger())

	result := runner.RunAccount(context.Background(), testAccount(), testSite())

	assert.True(t, result.Succeeded)
	assert.Equal(t, "already checked in today", result.OutcomeText)
	// Supplementary fetch failed, but the result stays successful.
	assert.Empty(t, result.Supplementary)
	assert.True(t, client.statusCalled)
}
