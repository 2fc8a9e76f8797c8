package config

const (
	defaultCacheDir           = "~/.cache/marquee"
	defaultLogDir             = "~/.local/share/marquee/logs"
	defaultBind               = "127.0.0.1:8592"
	defaultLockFile           = "~/.local/share/marquee/marquee.lock"
	defaultVenueBaseURL       = "https://metrograph.com"
	defaultVenueCalendarPath  = "/calendar/"
	defaultVenueName          = "Metrograph"
	defaultVenueLocation      = "Metrograph Theater"
	defaultVenueTimezone      = "America/New_York"
	defaultVenueUserAgent     = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"
	defaultTMDBBaseURL        = "https://api.themoviedb.org/3"
	defaultTMDBImageBaseURL   = "https://image.tmdb.org/t/p/w500"
	defaultTMDBLanguage       = "en-US"
	defaultScheduleTTLSeconds = 300
	defaultNtfyRequestTimeout = 10
	defaultLogFormat          = "console"
	defaultLogLevel           = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			CacheDir: defaultCacheDir,
			LogDir:   defaultLogDir,
			Bind:     defaultBind,
			LockFile: defaultLockFile,
		},
		Venue: Venue{
			BaseURL:      defaultVenueBaseURL,
			CalendarPath: defaultVenueCalendarPath,
			Name:         defaultVenueName,
			Location:     defaultVenueLocation,
			Timezone:     defaultVenueTimezone,
			UserAgent:    defaultVenueUserAgent,
		},
		TMDB: TMDB{
			BaseURL:      defaultTMDBBaseURL,
			ImageBaseURL: defaultTMDBImageBaseURL,
			Language:     defaultTMDBLanguage,
		},
		Cache: Cache{
			ScheduleTTLSeconds: defaultScheduleTTLSeconds,
		},
		Notifications: Notifications{
			RequestTimeout: defaultNtfyRequestTimeout,
			Refresh:        false,
			Errors:         true,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
