package config

import (
	"errors"
	"fmt"
	"net/url"
	"time"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateVenue(); err != nil {
		return err
	}
	if err := c.validateTMDB(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateVenue() error {
	parsed, err := url.Parse(c.Venue.BaseURL)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return fmt.Errorf("venue.base_url must be an absolute URL, got %q", c.Venue.BaseURL)
	}
	if _, err := time.LoadLocation(c.Venue.Timezone); err != nil {
		return fmt.Errorf("venue.timezone: %w", err)
	}
	return nil
}

func (c *Config) validateTMDB() error {
	// Enrichment is best-effort, so a missing API key disables it rather than
	// failing startup. The URLs still need to be well formed when set.
	for _, pair := range []struct {
		key   string
		value string
	}{
		{"tmdb.base_url", c.TMDB.BaseURL},
		{"tmdb.image_base_url", c.TMDB.ImageBaseURL},
	} {
		parsed, err := url.Parse(pair.value)
		if err != nil || parsed.Scheme == "" || parsed.Host == "" {
			return fmt.Errorf("%s must be an absolute URL, got %q", pair.key, pair.value)
		}
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format must be \"console\" or \"json\", got %q", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
		return nil
	default:
		return errors.New("logging.level must be one of debug, info, warn, error")
	}
}
