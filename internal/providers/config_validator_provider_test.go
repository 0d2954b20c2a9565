package providers

import (
	"testing"
	"time"
	"venued/internal/structures"

	"github.com/stretchr/testify/assert"
)

func validConfig() *structures.Config {
	return &structures.Config{
		WebServer: structures.Server{
			Host: "0.0.0.0",
			Port: 8080,
		},
		Storage: structures.StorageConfig{
			Backend:  structures.StorageBackendFile,
			FilePath: "/tmp/venued/state.zst",
		},
		Logger: structures.LoggerConfig{
			Level: "info",
			Mode:  0644,
			Dir:   "/tmp/logs",
		},
		Scheduler: structures.SchedulerConfig{
			Interval: 15 * time.Minute,
		},
		Venue: structures.VenueConfig{
			AutoCheckoutMinutes:     structures.DefaultAutoCheckoutMinutes,
			ReminderIntervalMinutes: structures.DefaultReminderIntervalMinutes,
			QuarantineWindowMinutes: structures.DefaultQuarantineWindowMinutes,
		},
		Feed: structures.FeedConfig{
			BaseUrl: "https://feed.example.org",
		},
	}
}

func TestConfigValidator_ValidConfig(t *testing.T) {
	v := NewCnfValidator(validConfig())
	assert.NoError(t, v.Validate())
}

func TestConfigValidator_EmptyHost(t *testing.T) {
	c := validConfig()
	c.WebServer.Host = ""
	assert.Error(t, NewCnfValidator(c).Validate())
}

func TestConfigValidator_ZeroPort(t *testing.T) {
	c := validConfig()
	c.WebServer.Port = 0
	assert.Error(t, NewCnfValidator(c).Validate())
}

func TestConfigValidator_InvalidLogLevel(t *testing.T) {
	c := validConfig()
	c.Logger.Level = "verbose"
	assert.Error(t, NewCnfValidator(c).Validate())
}

func TestConfigValidator_UnknownBackend(t *testing.T) {
	c := validConfig()
	c.Storage.Backend = "postgres"
	assert.Error(t, NewCnfValidator(c).Validate())
}

func TestConfigValidator_BackendPathRequired(t *testing.T) {
	c := validConfig()
	c.Storage.FilePath = ""
	assert.Error(t, NewCnfValidator(c).Validate())

	c = validConfig()
	c.Storage.Backend = structures.StorageBackendSqlite
	assert.Error(t, NewCnfValidator(c).Validate())

	c.Storage.SqlitePath = "/tmp/venued/state.db"
	assert.NoError(t, NewCnfValidator(c).Validate())
}

func TestConfigValidator_MissingFeedUrl(t *testing.T) {
	c := validConfig()
	c.Feed.BaseUrl = ""
	assert.Error(t, NewCnfValidator(c).Validate())
}

func TestConfigValidator_ProbabilityRange(t *testing.T) {
	c := validConfig()
	c.FakeRequest.Probability = 1.5
	assert.Error(t, NewCnfValidator(c).Validate())

	c.FakeRequest.Probability = 0.2
	assert.NoError(t, NewCnfValidator(c).Validate())
}

func TestConfigValidator_RelativePaths(t *testing.T) {
	c := validConfig()
	c.Storage.FilePath = "./data/venued.dat"
	c.Storage.SqlitePath = "./data/venued.db"
	c.Logger.Dir = "./logs"
	assert.NoError(t, NewCnfValidator(c).Validate())
}
