package config

import (
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

type Config struct {
	TelegramToken    string        `mapstructure:"telegram_token"`
	WebhookURL       string        `mapstructure:"webhook_url"`
	ListenAddress    string        `mapstructure:"listen_address"`
	BotHandleTimeout time.Duration `mapstructure:"bot_handle_timeout"`

	PostgresDSN string `mapstructure:"postgres_dsn"`
}

func New() *Config {
	cfg := &Config{}
	if err := viper.Unmarshal(cfg); err != nil {
		logrus.Fatalf("unmarshalling config: %v", err)
	}
	return cfg
}

func SetupCommon() {
	viper.SetDefault("listen_address", ":8080")
	viper.SetEnvPrefix("PINGPONG")

	viper.MustBindEnv("telegram_token")
	viper.MustBindEnv("postgres_dsn")
	viper.BindEnv("webhook_url")
	viper.AutomaticEnv()
}
