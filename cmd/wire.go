package cmd

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"

	"github.com/bnema/checkin-cli/internal/adapters/monitor"
	"github.com/bnema/checkin-cli/internal/adapters/notify"
	tomlrepo "github.com/bnema/checkin-cli/internal/adapters/repo/toml"
	"github.com/bnema/checkin-cli/internal/ports"
)

type app struct {
	log          logrus.FieldLogger
	sites        ports.SiteRepository
	clock        ports.Clock
	webdriverURL string
	userAgent    string
	telegram     notify.TelegramConfig
	kuma         monitor.KumaConfig
}

func wireApp() (*app, error) {
	sites, err := tomlrepo.NewRepository(viper.New())
	if err != nil {
		return nil, fmt.Errorf("wire site repository: %w", err)
	}

	return &app{
		log:          newLogger(),
		sites:        sites,
		clock:        ports.SystemClock{},
		webdriverURL: envOrDefault("CHECKIN_WEBDRIVER_URL", "http://localhost:4444/wd/hub"),
		userAgent:    os.Getenv("CHECKIN_USER_AGENT"),
		telegram: notify.TelegramConfig{
			BotToken:   os.Getenv("TELEGRAM_BOT_TOKEN"),
			ChatID:     os.Getenv("TELEGRAM_CHAT_ID"),
			APIBaseURL: os.Getenv("TELEGRAM_API_URL"),
		},
		kuma: monitor.KumaConfig{
			BaseURL: os.Getenv("KUMA_URL"),
			APIKey:  os.Getenv("KUMA_API_KEY"),
		},
	}, nil
}

func newLogger() logrus.FieldLogger {
	log := logrus.New()

	level, err := logrus.ParseLevel(envOrDefault("CHECKIN_LOG_LEVEL", "info"))
	if err != nil {
		level = logrus.InfoLevel
	}
	log.SetLevel(level)

	return log
}

func envOrDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
