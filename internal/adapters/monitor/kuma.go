// Package monitor updates an Uptime-Kuma monitor's polling interval.
// The monitor is what triggers the next batch run, so pushing a new
// interval is how the run time gets its daily jitter.
package monitor

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/bnema/checkin-cli/internal/ports"
)

const (
	defaultTimeout    = 30 * time.Second
	maxErrorBodyBytes = 4 << 10
)

type KumaConfig struct {
	BaseURL string
	APIKey  string
}

type KumaClient struct {
	cfg        KumaConfig
	httpClient *http.Client
	log        logrus.FieldLogger
}

var _ ports.MonitorClient = (*KumaClient)(nil)

func NewKumaClient(cfg KumaConfig, log logrus.FieldLogger) *KumaClient {
	return &KumaClient{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: defaultTimeout},
		log:        log,
	}
}

func (k *KumaClient) SetInterval(ctx context.Context, monitorID int, seconds int) error {
	endpoint := strings.TrimRight(k.cfg.BaseURL, "/") + "/api/monitor/edit"

	payload, err := json.Marshal(map[string]int{
		"id":       monitorID,
		"interval": seconds,
	})
	if err != nil {
		return fmt.Errorf("encode monitor payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("create monitor request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+k.cfg.APIKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := k.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("update monitor %d: %w", monitorID, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodyBytes))
		return fmt.Errorf("monitor api returned %d: %s", resp.StatusCode, string(body))
	}

	k.log.WithFields(logrus.Fields{
		"monitor_id": monitorID,
		"interval":   seconds,
	}).Info("monitor interval updated")

	return nil
}
