package config

import (
	"fmt"
	"os"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	if err := c.normalizeVenue(); err != nil {
		return err
	}
	c.normalizeTMDB()
	c.normalizeCache()
	c.normalizeNotifications()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if strings.TrimSpace(c.Paths.CacheDir) == "" {
		c.Paths.CacheDir = defaultCacheDir
	}
	if c.Paths.CacheDir, err = expandPath(c.Paths.CacheDir); err != nil {
		return fmt.Errorf("paths.cache_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.LogDir) == "" {
		c.Paths.LogDir = defaultLogDir
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.LockFile) == "" {
		c.Paths.LockFile = defaultLockFile
	}
	if c.Paths.LockFile, err = expandPath(c.Paths.LockFile); err != nil {
		return fmt.Errorf("paths.lock_file: %w", err)
	}
	c.Paths.Bind = strings.TrimSpace(c.Paths.Bind)
	if c.Paths.Bind == "" {
		c.Paths.Bind = defaultBind
	}
	return nil
}

func (c *Config) normalizeVenue() error {
	c.Venue.BaseURL = strings.TrimSpace(c.Venue.BaseURL)
	if c.Venue.BaseURL == "" {
		c.Venue.BaseURL = defaultVenueBaseURL
	}
	c.Venue.BaseURL = strings.TrimRight(c.Venue.BaseURL, "/")
	c.Venue.CalendarPath = strings.TrimSpace(c.Venue.CalendarPath)
	if c.Venue.CalendarPath == "" {
		c.Venue.CalendarPath = defaultVenueCalendarPath
	}
	if !strings.HasPrefix(c.Venue.CalendarPath, "/") {
		c.Venue.CalendarPath = "/" + c.Venue.CalendarPath
	}
	c.Venue.Name = strings.TrimSpace(c.Venue.Name)
	if c.Venue.Name == "" {
		c.Venue.Name = defaultVenueName
	}
	c.Venue.Timezone = strings.TrimSpace(c.Venue.Timezone)
	if c.Venue.Timezone == "" {
		c.Venue.Timezone = defaultVenueTimezone
	}
	if strings.TrimSpace(c.Venue.UserAgent) == "" {
		c.Venue.UserAgent = defaultVenueUserAgent
	}
	return nil
}

func (c *Config) normalizeTMDB() {
	if c.TMDB.APIKey == "" {
		if value, ok := os.LookupEnv("TMDB_API_KEY"); ok {
			c.TMDB.APIKey = strings.TrimSpace(value)
		}
	}
	c.TMDB.BaseURL = strings.TrimSpace(c.TMDB.BaseURL)
	if c.TMDB.BaseURL == "" {
		c.TMDB.BaseURL = defaultTMDBBaseURL
	}
	c.TMDB.ImageBaseURL = strings.TrimSpace(c.TMDB.ImageBaseURL)
	if c.TMDB.ImageBaseURL == "" {
		c.TMDB.ImageBaseURL = defaultTMDBImageBaseURL
	}
	if strings.TrimSpace(c.TMDB.Language) == "" {
		c.TMDB.Language = defaultTMDBLanguage
	}
}

func (c *Config) normalizeCache() {
	if c.Cache.ScheduleTTLSeconds <= 0 {
		c.Cache.ScheduleTTLSeconds = defaultScheduleTTLSeconds
	}
}

func (c *Config) normalizeNotifications() {
	c.Notifications.NtfyTopic = strings.TrimSpace(c.Notifications.NtfyTopic)
	if c.Notifications.RequestTimeout <= 0 {
		c.Notifications.RequestTimeout = defaultNtfyRequestTimeout
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
