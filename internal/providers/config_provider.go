package providers

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"
	"venued/internal/structures"

	"github.com/spf13/viper"
)

func setConfigDefaults(v *viper.Viper) {
	v.SetDefault("webServer.host", "127.0.0.1")
	v.SetDefault("webServer.port", 8090)
	v.SetDefault("storage.backend", structures.StorageBackendFile)
	v.SetDefault("storage.filePath", "./data/venued.dat")
	v.SetDefault("storage.sqlitePath", "./data/venued.db")
	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.mode", 0644)
	v.SetDefault("logger.dir", "./logs")
	v.SetDefault("scheduler.interval", 15*time.Minute)
	v.SetDefault("venue.autoCheckoutMinutes", structures.DefaultAutoCheckoutMinutes)
	v.SetDefault("venue.reminderIntervalMinutes", structures.DefaultReminderIntervalMinutes)
	v.SetDefault("venue.quarantineWindowMinutes", structures.DefaultQuarantineWindowMinutes)
	v.SetDefault("feed.timeout", 30*time.Second)
	v.SetDefault("fakeRequest.probability", 0.2)
	v.SetDefault("cache.enabled", true)
	v.SetDefault("cache.size", 8)
}

func NewConfigProvider(flags *structures.CliFlags) (*structures.Config, error) {
	var conf structures.Config
	v := viper.New()

	filename := filepath.Base(flags.ConfigPath)
	v.AddConfigPath(filepath.Dir(flags.ConfigPath))
	v.SetConfigName(strings.TrimSuffix(filename, filepath.Ext(filename)))
	v.SetConfigType("yaml")

	setConfigDefaults(v)

	v.BindEnv("logger.level", "VENUED_LOG_LEVEL")
	v.BindEnv("storage.backend", "VENUED_STORAGE_BACKEND")
	v.BindEnv("scheduler.interval", "VENUED_SCHEDULER_INTERVAL")
	v.BindEnv("feed.baseUrl", "VENUED_FEED_URL")
	v.BindEnv("remoteConfig.url", "VENUED_REMOTE_CONFIG_URL")
	v.BindEnv("cache.enabled", "VENUED_CACHE_ENABLED")
	v.BindEnv("metrics.enabled", "VENUED_METRICS_ENABLED")

	err := v.ReadInConfig()
	if err != nil {
		return nil, err
	}

	err = v.Unmarshal(&conf)
	if err != nil {
		return nil, fmt.Errorf("unable to decode into config struct: %w", err)
	}

	cnfValidator := NewCnfValidator(&conf)
	err = cnfValidator.Validate()
	if err != nil {
		return nil, err
	}

	conf.AppName = "VenueExposureDaemon"
	conf.Path = flags.ConfigPath
	conf.Debug = flags.DebugMode

	return &conf, nil
}
