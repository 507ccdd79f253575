// Package forum issues the direct HTTP calls against a forum's check-in
// endpoints, authenticated with cookies bridged from a browser session.
package forum

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/bnema/checkin-cli/internal/domain"
	"github.com/bnema/checkin-cli/internal/ports"
)

const (
	defaultTimeout   = 15 * time.Second
	maxResponseBytes = 1 << 20
)

type Client struct {
	timeout time.Duration
	log     logrus.FieldLogger
}

var _ ports.CheckinClient = (*Client)(nil)

func NewClient(timeout time.Duration, log logrus.FieldLogger) *Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	return &Client{timeout: timeout, log: log}
}

// PerformCheckin POSTs to the check-in endpoint. It returns the raw
// status and body; classification is the caller's concern. Transport
// failures are returned as errors.
func (c *Client) PerformCheckin(ctx context.Context, site domain.Site, session domain.AuthenticatedSession) (ports.CheckinResponse, error) {
	httpClient, err := c.sessionClient(site, session)
	if err != nil {
		return ports.CheckinResponse{}, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, site.CheckinURL(), nil)
	if err != nil {
		return ports.CheckinResponse{}, fmt.Errorf("create check-in request: %w", err)
	}
	setSessionHeaders(req, session)

	c.log.WithField("url", site.CheckinURL()).Debug("sending check-in request")

	resp, err := httpClient.Do(req)
	if err != nil {
		return ports.CheckinResponse{}, fmt.Errorf("send check-in request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return ports.CheckinResponse{}, fmt.Errorf("read check-in response: %w", err)
	}

	return ports.CheckinResponse{StatusCode: resp.StatusCode, Body: string(body)}, nil
}

// statusPayload mirrors the supplementary status endpoint's shape.
type statusPayload struct {
	TotalDays       int  `json:"total_days"`
	ConsecutiveDays int  `json:"consecutive_days"`
	CheckedInToday  bool `json:"checked_in_today"`
	Points          int  `json:"points"`
	History         []struct {
		Date         string `json:"date"`
		PointsEarned int    `json:"points_earned"`
	} `json:"history"`
}

// FetchStatus GETs the supplementary status endpoint.
func (c *Client) FetchStatus(ctx context.Context, site domain.Site, session domain.AuthenticatedSession) (domain.CheckinStatus, error) {
	httpClient, err := c.sessionClient(site, session)
	if err != nil {
		return domain.CheckinStatus{}, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, site.StatusURL(), nil)
	if err != nil {
		return domain.CheckinStatus{}, fmt.Errorf("create status request: %w", err)
	}
	setSessionHeaders(req, session)

	resp, err := httpClient.Do(req)
	if err != nil {
		return domain.CheckinStatus{}, fmt.Errorf("send status request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return domain.CheckinStatus{}, fmt.Errorf("status endpoint returned %d", resp.StatusCode)
	}

	var payload statusPayload
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxResponseBytes)).Decode(&payload); err != nil {
		return domain.CheckinStatus{}, fmt.Errorf("decode status response: %w", err)
	}

	status := domain.CheckinStatus{
		TotalDays:       payload.TotalDays,
		ConsecutiveDays: payload.ConsecutiveDays,
		CheckedInToday:  payload.CheckedInToday,
		Points:          payload.Points,
	}
	for _, entry := range payload.History {
		status.History = append(status.History, domain.CheckinRecord{Date: entry.Date, Points: entry.PointsEarned})
	}

	return status, nil
}

// sessionClient builds an HTTP client whose jar holds the bridged
// browser cookies for the site's host.
func (c *Client) sessionClient(site domain.Site, session domain.AuthenticatedSession) (*http.Client, error) {
	base, err := url.Parse(site.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse site base url: %w", err)
	}

	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("create cookie jar: %w", err)
	}

	cookies := make([]*http.Cookie, 0, len(session.Cookies))
	for _, cookie := range session.Cookies {
		cookies = append(cookies, &http.Cookie{Name: cookie.Name, Value: cookie.Value, Path: "/"})
	}
	jar.SetCookies(base, cookies)

	return &http.Client{Jar: jar, Timeout: c.timeout}, nil
}

func setSessionHeaders(req *http.Request, session domain.AuthenticatedSession) {
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-CSRF-Token", session.CSRFToken)
	req.Header.Set("X-Requested-With", "XMLHttpRequest")
}
