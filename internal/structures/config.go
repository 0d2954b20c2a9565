package structures

import "time"

const (
	DefaultAutoCheckoutMinutes     = 360
	DefaultReminderIntervalMinutes = 180
	DefaultQuarantineWindowMinutes = 14 * 24 * 60
)

const (
	StorageBackendFile   = "file"
	StorageBackendSqlite = "sqlite"
)

type Server struct {
	Host string `yaml:"host" validate:"required"`
	Port int    `yaml:"port" validate:"required|uint|min:1"`
}

type StorageConfig struct {
	Backend    string `yaml:"backend" validate:"required|in:file,sqlite"`
	FilePath   string `yaml:"filePath"`
	SqlitePath string `yaml:"sqlitePath"`
}

type LoggerConfig struct {
	Level string `yaml:"level" validate:"required|in:trace,debug,info,warn,error,fatal,panic"`
	Mode  uint32 `yaml:"mode" validate:"required|uint"`
	Dir   string `yaml:"dir" validate:"required"`
}

type SchedulerConfig struct {
	Interval time.Duration `yaml:"interval" validate:"required|min:1"`
}

// VenueConfig holds the local fallbacks for the venue policy values.
// Remote settings take precedence when they are present.
type VenueConfig struct {
	AutoCheckoutMinutes     int `yaml:"autoCheckoutMinutes" validate:"min:1"`
	ReminderIntervalMinutes int `yaml:"reminderIntervalMinutes" validate:"min:1"`
	QuarantineWindowMinutes int `yaml:"quarantineWindowMinutes" validate:"min:1"`
}

type FeedConfig struct {
	BaseUrl string        `yaml:"baseUrl" validate:"required|fullUrl"`
	Timeout time.Duration `yaml:"timeout"`
}

type RemoteConfigConfig struct {
	Url string `yaml:"url"`
}

type AnalyticsConfig struct {
	Enabled bool   `yaml:"enabled"`
	Url     string `yaml:"url"`
}

type FakeRequestConfig struct {
	Url         string  `yaml:"url"`
	Probability float64 `yaml:"probability"`
}

type NotifierConfig struct {
	WebhookUrl string `yaml:"webhookUrl"`
}

type CacheConfig struct {
	Enabled bool `yaml:"enabled"`
	Size    int  `yaml:"size"`
}

type MetricsConfig struct {
	Enabled bool `yaml:"enabled"`
}

type Config struct {
	AppName      string
	Debug        bool
	Path         string
	WebServer    Server             `yaml:"webServer"`
	Storage      StorageConfig      `yaml:"storage"`
	Logger       LoggerConfig       `yaml:"logger"`
	Scheduler    SchedulerConfig    `yaml:"scheduler"`
	Venue        VenueConfig        `yaml:"venue"`
	Feed         FeedConfig         `yaml:"feed"`
	RemoteConfig RemoteConfigConfig `yaml:"remoteConfig"`
	Analytics    AnalyticsConfig    `yaml:"analytics"`
	FakeRequest  FakeRequestConfig  `yaml:"fakeRequest"`
	Notifier     NotifierConfig     `yaml:"notifier"`
	Cache        CacheConfig        `yaml:"cache"`
	Metrics      MetricsConfig      `yaml:"metrics"`
}
