package commands

import (
	"context"

	"github.com/sirupsen/logrus"
)

type MessageContext struct {
	context.Context
	env Envelope
	log *logrus.Entry
}

func NewMessageContext(ctx context.Context, env Envelope) *MessageContext {
	fields := logrus.Fields{
		"chat_id":   env.ChatID,
		"chat_kind": env.Kind,
	}
	if env.Sender != "" {
		fields["sender"] = env.Sender
	}

	return &MessageContext{
		Context: ctx,
		env:     env,
		log:     logrus.WithFields(fields),
	}
}

func (mc *MessageContext) L() *logrus.Entry {
	return mc.log
}

func (mc *MessageContext) Env() Envelope {
	return mc.env
}
