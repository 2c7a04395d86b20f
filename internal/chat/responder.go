package chat

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"rag-console/internal/apiclient"
)

const (
	genericErrorText     = "An error occurred."
	connectFailurePrefix = "Failed to connect to the server: "
)

type ChatAPI interface {
	Chat(ctx context.Context, prompt string) (string, error)
}

// Responder turns one prompt into the text shown as the AI entry, whatever
// the outcome of the call.
type Responder struct {
	api    ChatAPI
	logger zerolog.Logger
}

func NewResponder(api ChatAPI, logger zerolog.Logger) *Responder {
	return &Responder{api: api, logger: logger}
}

func (r *Responder) Reply(ctx context.Context, prompt string) string {
	reply, err := r.api.Chat(ctx, prompt)
	if err == nil {
		return reply
	}
	r.logger.Warn().Err(err).Msg("chat request failed")
	return ErrorText(err)
}

// ErrorText maps a chat failure to what the user sees.
func ErrorText(err error) string {
	if errors.Is(err, apiclient.ErrTransport) {
		return connectFailurePrefix + err.Error()
	}
	return apiclient.DetailOr(err, genericErrorText)
}
