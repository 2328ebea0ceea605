package config

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

type Config struct {
	ListenAddr      string        `validate:"required,hostname_port"`
	StaticDir       string        `validate:"required"`
	CLIAgentToken   string        `validate:"required"`
	CPUSampleWindow time.Duration `validate:"gte=0,lte=5s,ltfield=RequestTimeout"`
	RequestTimeout  time.Duration `validate:"gt=0"`
	LogLevel        string        `validate:"oneof=debug info warn error"`
	LogFormat       string        `validate:"oneof=text json"`
	AllowedSubnets  []string      `validate:"dive,cidr"`
}

// LoadFromEnv reads a .env file from the working directory when present, then
// the process environment. Unparseable values fall back to defaults.
func LoadFromEnv() Config {
	_ = godotenv.Load()

	return Config{
		ListenAddr:      env("LISTEN_ADDR", "127.0.0.1:8080"),
		StaticDir:       env("STATIC_DIR", "web/static"),
		CLIAgentToken:   env("CLI_AGENT_TOKEN", "curl"),
		CPUSampleWindow: envDuration("CPU_SAMPLE_WINDOW", 200*time.Millisecond),
		RequestTimeout:  envDuration("REQUEST_TIMEOUT", 3*time.Second),
		LogLevel:        strings.ToLower(env("LOG_LEVEL", "info")),
		LogFormat:       strings.ToLower(env("LOG_FORMAT", "text")),
		AllowedSubnets:  splitCSV(env("ALLOWED_SUBNETS", "")),
	}
}

var validate = validator.New()

func (c Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("config: %w", err)
	}

	msgs := make([]string, 0, len(verrs))
	for _, e := range verrs {
		msgs = append(msgs, fmt.Sprintf("%s: failed %q (value %v)", e.Namespace(), e.Tag(), e.Value()))
	}
	return fmt.Errorf("config: %s", strings.Join(msgs, "; "))
}

func (c Config) NewLogger(w io.Writer) *slog.Logger {
	var level slog.Level
	switch c.LogLevel {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}
	if c.LogFormat == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

func env(key, def string) string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	return v
}

func envDuration(key string, def time.Duration) time.Duration {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return def
	}
	return d
}

func splitCSV(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
