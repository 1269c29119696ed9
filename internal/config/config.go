package config

import (
	"os"
	"strings"
)

// Placeholder value shipped in .env.example; a key equal to this is
// treated the same as no key at all.
const geminiKeyPlaceholder = "VOTRE_GEMINI_API_KEY"

// Config holds every environment-sourced setting. It is built once at
// startup and read-only afterwards.
type Config struct {
	AccessToken  string // WA_ACCESS_TOKEN - Cloud API bearer token
	PhoneID      string // WA_PHONE_ID - sending phone number identifier
	VerifyToken  string // WA_VERIFY_TOKEN - webhook handshake secret
	GeminiAPIKey string // GEMINI_API_KEY
	Prefix       string // BOT_PREFIX, default "."
	Port         string // PORT, default "3000"
	DatabaseURL  string // DATABASE_URL, optional; probed at startup only
	Admins       []string
}

// Load reads the process environment into a Config. Missing values are
// left empty except where a default applies; validation happens at the
// point of use so a half-configured bot still starts and reports what
// it cannot do.
func Load() *Config {
	cfg := &Config{
		AccessToken:  os.Getenv("WA_ACCESS_TOKEN"),
		PhoneID:      os.Getenv("WA_PHONE_ID"),
		VerifyToken:  os.Getenv("WA_VERIFY_TOKEN"),
		GeminiAPIKey: os.Getenv("GEMINI_API_KEY"),
		Prefix:       os.Getenv("BOT_PREFIX"),
		Port:         os.Getenv("PORT"),
		DatabaseURL:  os.Getenv("DATABASE_URL"),
		Admins:       splitList(os.Getenv("BOT_ADMINS")),
	}
	if cfg.Prefix == "" {
		cfg.Prefix = "."
	}
	if cfg.Port == "" {
		cfg.Port = "3000"
	}
	return cfg
}

// AIConfigured reports whether a usable Gemini key is present.
func (c *Config) AIConfigured() bool {
	return c.GeminiAPIKey != "" && c.GeminiAPIKey != geminiKeyPlaceholder
}

// IsAdmin reports whether sender is on the restart allow-list. An empty
// list means nobody is.
func (c *Config) IsAdmin(sender string) bool {
	for _, a := range c.Admins {
		if a == sender {
			return true
		}
	}
	return false
}

func splitList(s string) []string {
	if s == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
