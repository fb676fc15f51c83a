// Package telegram wraps the outbound side of the bot: best-effort message
// delivery and webhook registration with the Bot API.
package telegram

import (
	"github.com/sirupsen/logrus"
	"gopkg.in/telebot.v4"
)

// Notifier sends fire-and-forget. Delivery failures are logged and dropped
// so a dead chat never aborts command handling.
type Notifier struct {
	bot telebot.API
}

func NewNotifier(bot telebot.API) *Notifier {
	return &Notifier{bot: bot}
}

func (n *Notifier) SendMessage(chatID int64, text string) {
	if _, err := n.bot.Send(telebot.ChatID(chatID), text); err != nil {
		logrus.WithField("chat_id", chatID).Warnf("sending message: %v", err)
	}
}

func (n *Notifier) SendTyping(chatID int64) {
	if err := n.bot.Notify(telebot.ChatID(chatID), telebot.Typing); err != nil {
		logrus.WithField("chat_id", chatID).Debugf("sending typing action: %v", err)
	}
}
