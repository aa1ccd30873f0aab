package chat

import (
	"context"
	"errors"
	"strings"

	"github.com/rs/zerolog"

	"github.com/wellness/wellness/internal/domain/health"
)

const persona = "You are an Ayurvedic health assistant."

// SnapshotSource supplies the most recent health reading for prompt context.
type SnapshotSource interface {
	LatestReading(ctx context.Context) (*health.HealthReading, error)
}

type Service struct {
	completer Completer
	snapshots SnapshotSource
	logger    zerolog.Logger
}

// NewService builds the chat service. snapshots may be nil, in which case
// prompts are sent without health context.
func NewService(completer Completer, snapshots SnapshotSource, logger zerolog.Logger) *Service {
	return &Service{completer: completer, snapshots: snapshots, logger: logger}
}

// Ask sends the prompt upstream behind the assistant persona and, when one
// exists, a summary of the latest reading.
func (s *Service) Ask(ctx context.Context, prompt string) (string, error) {
	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		return "", ErrEmptyPrompt
	}
	return s.completer.Complete(ctx, s.messages(ctx, prompt))
}

func (s *Service) messages(ctx context.Context, prompt string) []Message {
	msgs := []Message{{Role: RoleSystem, Content: persona}}
	if s.snapshots != nil {
		r, err := s.snapshots.LatestReading(ctx)
		switch {
		case err == nil:
			msgs = append(msgs, Message{
				Role:    RoleSystem,
				Content: "The user's most recent health reading: " + r.Summary() + ".",
			})
		case errors.Is(err, health.ErrNotFound):
		default:
			s.logger.Warn().Err(err).Msg("skip health context for chat")
		}
	}
	return append(msgs, Message{Role: RoleUser, Content: prompt})
}
