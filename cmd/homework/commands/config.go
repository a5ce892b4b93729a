package commands

import (
	"homework-assist/internal/cache"
	"homework-assist/internal/components/telemetry"
	"homework-assist/internal/homework"
	"homework-assist/internal/scrapers/lms"
	"time"
)

type Config struct {
	BaseUrl       string       `json:"base_url"`
	TimetablePath string       `json:"timetable_path"`
	Cookies       []lms.Cookie `json:"cookies"`

	// the bypass is on unless explicitly disabled
	DisableCloudflareBypass bool `json:"disable_cloudflare_bypass"`

	Cache cache.Config `json:"cache"`

	RefreshCooldownSeconds int     `json:"refresh_cooldown_seconds"`
	RequestDelayMs         int     `json:"request_delay_ms"`
	LectureThreshold       float64 `json:"lecture_threshold"`

	Otlp telemetry.OtlpConfig `json:"otlp"`
}

var defaultConfig = Config{
	BaseUrl:       lms.DefaultBaseUrl,
	TimetablePath: lms.DefaultTimetablePath,
	Cache: cache.Config{
		File: ".cache/homework.db",
	},
	RefreshCooldownSeconds: int(homework.DefaultCooldown / time.Second),
	RequestDelayMs:         int(lms.DefaultRequestDelay / time.Millisecond),
	LectureThreshold:       homework.DefaultLectureThreshold,
}

func (c Config) cooldown() time.Duration {
	return time.Duration(c.RefreshCooldownSeconds) * time.Second
}

func (c Config) requestDelay() time.Duration {
	return time.Duration(c.RequestDelayMs) * time.Millisecond
}
