package config

import (
	"errors"
	"fmt"
	"image/color"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

const (
	WindowWidth  = 1024
	WindowHeight = 640

	// Button dimensions
	ButtonWidth  = 120
	ButtonHeight = 32
	ButtonX      = 20
	ButtonY      = 44

	// Dashboard layout
	RowHeight   = 22
	ListTop     = 130
	ListLeft    = 20
	VisibleRows = 18

	// Celebration parameters
	CelebrationParticles = 200
	CelebrationDuration  = 3500 * time.Millisecond
	CelebrationGravity   = 0.12

	// Chime
	ChimeSampleRate = 44100

	// Invoices issued from accepted quotes
	InvoiceTerms = 30 * 24 * time.Hour
)

// Palette is the fixed set of confetti colors.
var Palette = []color.RGBA{
	{R: 0xf4, G: 0x43, B: 0x36, A: 0xff},
	{R: 0xe9, G: 0x1e, B: 0x63, A: 0xff},
	{R: 0x9c, G: 0x27, B: 0xb0, A: 0xff},
	{R: 0x3f, G: 0x51, B: 0xb5, A: 0xff},
	{R: 0x21, G: 0x96, B: 0xf3, A: 0xff},
	{R: 0x00, G: 0xbc, B: 0xd4, A: 0xff},
	{R: 0x4c, G: 0xaf, B: 0x50, A: 0xff},
	{R: 0xff, G: 0xeb, B: 0x3b, A: 0xff},
	{R: 0xff, G: 0x98, B: 0x00, A: 0xff},
}

// Config holds the runtime settings read from the environment.
type Config struct {
	// Empty means the in-memory store.
	DBPath   string
	User     string
	Sound    bool
	LogLevel string
	SeedDemo bool
}

func Load() *Config {
	return &Config{
		DBPath:   getEnv("BIZPANEL_DB_PATH", ""),
		User:     getEnv("BIZPANEL_USER", "owner"),
		Sound:    getEnvBool("BIZPANEL_SOUND", true),
		LogLevel: getEnv("BIZPANEL_LOG_LEVEL", "info"),
		SeedDemo: getEnvBool("BIZPANEL_SEED_DEMO", true),
	}
}

// Validate reports every problem found in the configuration at once.
func (c *Config) Validate() error {
	var problems []string

	if strings.TrimSpace(c.User) == "" {
		problems = append(problems, "user cannot be empty")
	}
	if _, err := logrus.ParseLevel(c.LogLevel); err != nil {
		problems = append(problems, fmt.Sprintf("invalid log level '%s'", c.LogLevel))
	}
	if c.DBPath != "" && strings.HasSuffix(c.DBPath, string(os.PathSeparator)) {
		problems = append(problems, fmt.Sprintf("database path '%s' is a directory", c.DBPath))
	}

	if len(problems) > 0 {
		return errors.New("configuration errors: " + strings.Join(problems, "; "))
	}
	return nil
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok {
		return strings.TrimSpace(v)
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	v, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	b, err := strconv.ParseBool(strings.TrimSpace(v))
	if err != nil {
		return fallback
	}
	return b
}
