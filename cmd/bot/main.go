package main

import (
	"context"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
	"github.com/thekirsila/telegram-pingpong-ranking/internal/commands"
	"github.com/thekirsila/telegram-pingpong-ranking/internal/config"
	"github.com/thekirsila/telegram-pingpong-ranking/internal/logging"
	"github.com/thekirsila/telegram-pingpong-ranking/internal/storage"
	"github.com/thekirsila/telegram-pingpong-ranking/internal/telegram"
	"github.com/thekirsila/telegram-pingpong-ranking/internal/webhook"
	"gopkg.in/telebot.v4"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	setupConfig()
	logging.Init()

	cfg := config.New()
	logrus.Debugf("config: %+v", cfg)

	db, err := gorm.Open(postgres.Open(cfg.PostgresDSN), &gorm.Config{})
	if err != nil {
		logrus.Fatalf("Failed to connect to database: %v", err)
	}

	store := storage.New(db)

	migrateCtx, migrateCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer migrateCancel()

	if err := store.Migrate(migrateCtx); err != nil {
		logrus.Fatalf("Failed to migrate database: %v", err)
	}

	bot, err := telebot.NewBot(telebot.Settings{Token: cfg.TelegramToken})
	if err != nil {
		logrus.Fatalf("Failed to create bot: %v", err)
	}

	if cfg.WebhookURL != "" {
		if err := telegram.RegisterWebhook(cfg); err != nil {
			logrus.Fatalf("Failed to register webhook: %v", err)
		}
		logrus.Infof("webhook registered at %s", cfg.WebhookURL)
	}

	handler := commands.NewHandler(cfg, store, telegram.NewNotifier(bot))
	service := webhook.NewService(cfg, handler)

	e := echo.New()
	e.POST("/webhook", service.HandleUpdate())

	if err := e.Start(cfg.ListenAddress); err != nil {
		logrus.Fatalf("Server stopped: %v", err)
	}
}

func setupConfig() {
	viper.SetDefault("bot_handle_timeout", "10s")
	config.SetupCommon()
}
