// Package command provides speech adapters that shell out to local
// tools: whisper.cpp for transcription and espeak-ng for synthesis.
// Keeping both behind subprocesses means voice support needs no CGO
// and degrades cleanly when the tools are absent.
package command

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/qadi-labs/qadi-cli/internal/core/domain"
	"github.com/qadi-labs/qadi-cli/internal/core/ports/driven"
)

// Ensure the adapters implement the interfaces.
var (
	_ driven.Transcriber = (*Transcriber)(nil)
	_ driven.Synthesiser = (*Synthesiser)(nil)
)

// Default binaries.
const (
	DefaultWhisperBinary = "whisper-cli"
	DefaultEspeakBinary  = "espeak-ng"
)

// execRunner runs commands via os/exec.
type execRunner struct{}

func (execRunner) Run(ctx context.Context, name string, args ...string) ([]byte, error) {
	return exec.CommandContext(ctx, name, args...).Output()
}

// Transcriber converts audio files to text using the whisper.cpp CLI.
type Transcriber struct {
	runner    driven.CommandRunner
	binary    string
	modelPath string
}

// NewTranscriber creates a transcriber for the given whisper model.
func NewTranscriber(modelPath string) (*Transcriber, error) {
	return NewTranscriberWithRunner(modelPath, execRunner{})
}

// NewTranscriberWithRunner creates a transcriber with a custom command
// runner.
func NewTranscriberWithRunner(modelPath string, runner driven.CommandRunner) (*Transcriber, error) {
	if modelPath == "" {
		return nil, fmt.Errorf("speech: whisper model path is required")
	}
	if _, err := os.Stat(modelPath); err != nil {
		return nil, fmt.Errorf("speech: whisper model not found: %w", err)
	}

	return &Transcriber{
		runner:    runner,
		binary:    DefaultWhisperBinary,
		modelPath: modelPath,
	}, nil
}

// Transcribe returns the recognised text for an audio file.
// Language is auto-detected, which matters for a bilingual corpus.
func (t *Transcriber) Transcribe(ctx context.Context, audioPath string) (string, error) {
	if _, err := os.Stat(audioPath); err != nil {
		return "", fmt.Errorf("%w: audio file not found: %s", domain.ErrInvalidInput, audioPath)
	}

	out, err := t.runner.Run(ctx, t.binary,
		"-m", t.modelPath,
		"-f", audioPath,
		"-l", "auto",
		"--no-timestamps",
	)
	if err != nil {
		return "", fmt.Errorf("speech: run %s: %w", t.binary, err)
	}

	return strings.TrimSpace(string(out)), nil
}

// Synthesiser speaks text aloud using espeak-ng and writes a wav file.
type Synthesiser struct {
	runner driven.CommandRunner
	binary string
	outDir string
	voice  string
}

// NewSynthesiser creates a synthesiser writing audio to outDir with the
// given espeak voice. If outDir is empty, the system temp directory is
// used; if voice is empty, it is derived from the answer language.
func NewSynthesiser(outDir, voice string) *Synthesiser {
	return NewSynthesiserWithRunner(outDir, voice, execRunner{})
}

// NewSynthesiserWithRunner creates a synthesiser with a custom command
// runner.
func NewSynthesiserWithRunner(outDir, voice string, runner driven.CommandRunner) *Synthesiser {
	if outDir == "" {
		outDir = os.TempDir()
	}
	return &Synthesiser{
		runner: runner,
		binary: DefaultEspeakBinary,
		outDir: outDir,
		voice:  voice,
	}
}

// Synthesise writes spoken audio for text and returns the output file
// path.
func (s *Synthesiser) Synthesise(ctx context.Context, text, language string) (string, error) {
	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("%w: nothing to synthesise", domain.ErrInvalidInput)
	}

	voice := s.voice
	if voice == "" {
		voice = "en"
		if language == domain.LanguageArabic {
			voice = "ar"
		}
	}

	outPath := filepath.Join(s.outDir, "answer.wav")
	_, err := s.runner.Run(ctx, s.binary,
		"-v", voice,
		"-w", outPath,
		text,
	)
	if err != nil {
		return "", fmt.Errorf("speech: run %s: %w", s.binary, err)
	}

	return outPath, nil
}
