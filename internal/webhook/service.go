// Package webhook is the HTTP entry point receiving Telegram updates.
package webhook

import (
	"context"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
	"github.com/thekirsila/telegram-pingpong-ranking/internal/commands"
	"github.com/thekirsila/telegram-pingpong-ranking/internal/config"
	"gopkg.in/telebot.v4"
)

type UpdateHandler interface {
	Handle(ctx context.Context, env commands.Envelope)
}

type Service struct {
	config  *config.Config
	handler UpdateHandler
}

func NewService(cfg *config.Config, handler UpdateHandler) *Service {
	return &Service{
		config:  cfg,
		handler: handler,
	}
}

// HandleUpdate resolves the raw update into an Envelope once, runs the
// interpreter, and acknowledges with a fixed-shape body. Only a
// structurally unusable payload produces a non-success status; command
// outcomes never do.
func (s *Service) HandleUpdate() echo.HandlerFunc {
	return func(c echo.Context) error {
		var update telebot.Update
		if err := c.Bind(&update); err != nil {
			logrus.Errorf("decoding update: %v", err)
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "malformed update"})
		}

		msg := update.Message
		if msg == nil || msg.Chat == nil {
			logrus.Error("update without a usable message")
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "message expected"})
		}

		env := commands.Envelope{
			ChatID: msg.Chat.ID,
			Kind:   chatKind(msg.Chat.Type),
			Text:   msg.Text,
		}
		if msg.Sender != nil {
			env.Sender = strings.ToLower(msg.Sender.Username)
		}

		ctx, cancel := context.WithTimeout(c.Request().Context(), s.config.BotHandleTimeout)
		defer cancel()

		s.handler.Handle(ctx, env)

		return c.JSON(http.StatusOK, echo.Map{"ok": true})
	}
}

func chatKind(t telebot.ChatType) commands.ChatKind {
	if t == telebot.ChatPrivate {
		return commands.ChatPrivate
	}
	return commands.ChatGroup
}
