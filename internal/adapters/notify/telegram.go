// Package notify pushes batch reports to a Telegram chat.
package notify

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/bnema/checkin-cli/internal/ports"
)

const (
	defaultAPIBaseURL = "https://api.telegram.org"
	defaultTimeout    = 10 * time.Second
	maxErrorBodyBytes = 4 << 10
)

type TelegramConfig struct {
	BotToken string
	ChatID   string
	// APIBaseURL overrides the Telegram API host, used in tests.
	APIBaseURL string
}

type Telegram struct {
	cfg        TelegramConfig
	httpClient *http.Client
	log        logrus.FieldLogger
}

var _ ports.Notifier = (*Telegram)(nil)

func NewTelegram(cfg TelegramConfig, log logrus.FieldLogger) *Telegram {
	if cfg.APIBaseURL == "" {
		cfg.APIBaseURL = defaultAPIBaseURL
	}

	return &Telegram{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: defaultTimeout},
		log:        log,
	}
}

func (t *Telegram) Send(ctx context.Context, text string) error {
	endpoint := fmt.Sprintf("%s/bot%s/sendMessage", strings.TrimRight(t.cfg.APIBaseURL, "/"), t.cfg.BotToken)

	form := url.Values{}
	form.Set("chat_id", t.cfg.ChatID)
	form.Set("text", text)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("create telegram request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := t.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("send telegram message: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodyBytes))
		return fmt.Errorf("telegram api returned %d: %s", resp.StatusCode, string(body))
	}

	t.log.Debug("telegram notification delivered")
	return nil
}
