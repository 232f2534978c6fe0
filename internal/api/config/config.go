package config

import (
	"errors"
	"fmt"

	"github.com/spf13/viper"
)

// Cfg 全局可访问的配置实例
var Cfg *Config

// LoadConfig 从文件加载配置并填充到 Cfg
func LoadConfig() error {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./configs")

	if err := viper.ReadInConfig(); err != nil {
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if errors.As(err, &configFileNotFoundError) {
			return fmt.Errorf("config file not found: %w", err)
		}
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return fmt.Errorf("failed to unmarshal config: %w", err)
	}

	cfg.applyDefaults()
	Cfg = &cfg

	return nil
}

func (c *Config) applyDefaults() {
	if c.Push.BatchSize <= 0 {
		c.Push.BatchSize = 100
	}
	if c.Push.URL == "" {
		c.Push.URL = "https://exp.host/--/api/v2/push/send"
	}
	if c.Nudge.CooldownHours <= 0 {
		c.Nudge.CooldownHours = 24
	}
	if c.Notification.RetentionDays <= 0 {
		c.Notification.RetentionDays = 180
	}
	if c.Scheduler.Timezone == "" {
		c.Scheduler.Timezone = "America/New_York"
	}
}
