package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/qadi-labs/qadi-cli/internal/core/domain"
	"github.com/qadi-labs/qadi-cli/internal/core/ports/driven"
	"github.com/qadi-labs/qadi-cli/internal/core/ports/driving"
	"github.com/qadi-labs/qadi-cli/internal/logger"
)

// Ensure VoiceService implements the interface.
var _ driving.VoiceService = (*VoiceService)(nil)

// VoiceService wraps the ask pipeline with stateless speech
// conversion: speech-to-text before, text-to-speech after. Neither
// conversion touches retrieval or composition state.
type VoiceService struct {
	transcriber driven.Transcriber
	synthesiser driven.Synthesiser
	ask         driving.AskService
}

// NewVoiceService creates a new voice service. The synthesiser is
// optional; when nil, answers are returned as text only.
func NewVoiceService(
	transcriber driven.Transcriber,
	synthesiser driven.Synthesiser,
	ask driving.AskService,
) *VoiceService {
	return &VoiceService{
		transcriber: transcriber,
		synthesiser: synthesiser,
		ask:         ask,
	}
}

// AskVoice transcribes the audio, runs the normal pipeline and
// synthesises the answer.
func (s *VoiceService) AskVoice(ctx context.Context, audioPath string) (*domain.Answer, string, error) {
	logger.Section("Voice Interaction")

	if s.transcriber == nil {
		return nil, "", fmt.Errorf("%w: no transcriber configured", domain.ErrInvalidInput)
	}

	text, err := s.transcriber.Transcribe(ctx, audioPath)
	if err != nil {
		return nil, "", fmt.Errorf("transcribe: %w", err)
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, "", fmt.Errorf("%w: no speech detected", domain.ErrInvalidInput)
	}
	logger.Debug("Transcribed query: %q", text)

	answer, err := s.ask.Ask(ctx, domain.Query{
		Text:     text,
		Language: domain.DetectLanguage(text),
	})
	if err != nil {
		return nil, "", err
	}

	if s.synthesiser == nil {
		return answer, "", nil
	}

	audioOut, err := s.synthesiser.Synthesise(ctx, answer.Text, domain.DetectLanguage(answer.Text))
	if err != nil {
		// Synthesis failure is not fatal: the text answer stands.
		logger.Error("Synthesis failed: %v", err)
		return answer, "", nil
	}
	return answer, audioOut, nil
}
