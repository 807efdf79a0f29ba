package config

import (
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

type Config struct {
	Mode          string        `mapstructure:"mode"`
	Port          int           `mapstructure:"port"`
	StaticPath    string        `mapstructure:"static_path"`
	ReadLimit     int64         `mapstructure:"read_limit"`
	SendBuffer    int           `mapstructure:"send_buffer"`
	Secret        string        `mapstructure:"secret"`
	SessionMaxAge time.Duration `mapstructure:"session_max_age"`
	SessionSweep  time.Duration `mapstructure:"session_sweep"`
	ServiceName   string        `mapstructure:"service_name"`
	MDNS          bool          `mapstructure:"mdns"`
	STUNServers   []string      `mapstructure:"stun_servers"`
}

func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigType("yaml")

	env := os.Getenv("CONFIG_ENV")
	if env == "" {
		env = "dev"
	}
	fileName := fmt.Sprintf("config/config.%s.yaml", env)

	v.SetConfigFile(fileName)
	v.AddConfigPath(".")
	v.AddConfigPath("./config")

	v.SetDefault("mode", "release")
	v.SetDefault("port", 3000)
	v.SetDefault("static_path", "./web")
	v.SetDefault("read_limit", 65536)
	v.SetDefault("send_buffer", 32)
	v.SetDefault("secret", "aircast-dev-secret")
	v.SetDefault("session_max_age", "1h")
	v.SetDefault("session_sweep", "1m")
	v.SetDefault("service_name", "Aircast")
	v.SetDefault("mdns", true)
	v.SetDefault("stun_servers", []string{"stun:stun.l.google.com:19302"})

	// The one knob everyone sets in practice.
	_ = v.BindEnv("port", "PORT")

	if err := v.ReadInConfig(); err != nil {
		// Missing config file is fine, defaults + env cover it.
		log.Debug().Str("file", fileName).Msg("config file not found, using defaults")
	} else {
		log.Info().Str("file", fileName).Msg("loaded config")
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return &cfg, nil
}
