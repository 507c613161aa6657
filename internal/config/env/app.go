package env

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/paymint/paymint-bot/internal/config"
)

const (
	appPortEnvName        = "PORT"
	appTimezoneEnvName    = "APP_TIMEZONE"
	appSummaryHourEnvName = "DAILY_SUMMARY_HOUR"
)

type appConfig struct {
	port        string
	location    *time.Location
	summaryHour int
}

func NewAppConfig() (config.AppConfig, error) {
	port := os.Getenv(appPortEnvName)
	if port == "" {
		port = "8080"
	}

	// Calendar-day and calendar-month boundaries for summaries are computed
	// in this one reference timezone, wherever the server runs.
	tz := os.Getenv(appTimezoneEnvName)
	if tz == "" {
		tz = "Africa/Lagos"
	}
	location, err := time.LoadLocation(tz)
	if err != nil {
		return nil, fmt.Errorf("invalid APP_TIMEZONE %q: %w", tz, err)
	}

	summaryHour := 20
	if raw := os.Getenv(appSummaryHourEnvName); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 || parsed > 23 {
			return nil, fmt.Errorf("DAILY_SUMMARY_HOUR must be 0-23, got %q", raw)
		}
		summaryHour = parsed
	}

	return &appConfig{
		port:        port,
		location:    location,
		summaryHour: summaryHour,
	}, nil
}

func (cfg *appConfig) Port() string {
	return cfg.port
}

func (cfg *appConfig) Location() *time.Location {
	return cfg.location
}

func (cfg *appConfig) SummaryHour() int {
	return cfg.summaryHour
}
