// Package prompt provides the interactive terminal helpers used by the
// commands.
package prompt

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/AlecAivazis/survey/v2"
	"github.com/AlecAivazis/survey/v2/terminal"
	"github.com/mattn/go-isatty"
)

// ErrAborted is returned when the user interrupts a prompt.
var ErrAborted = errors.New("prompt: aborted")

// ErrNoOptions is returned when Select is called without options.
var ErrNoOptions = errors.New("prompt: no options to choose from")

// SelectConfig describes a single-choice prompt.
type SelectConfig struct {
	Message  string
	Options  []string
	Help     string
	Default  string
	PageSize int
}

// Picker asks the user to choose one option.
type Picker interface {
	Select(ctx context.Context, cfg SelectConfig) (string, error)
}

// AskFunc matches survey.AskOne so tests can stub the terminal.
type AskFunc func(p survey.Prompt, response any, opts ...survey.AskOpt) error

type surveyPicker struct {
	ask AskFunc
}

// NewSurveyPicker returns a Picker backed by survey. A nil ask uses
// survey.AskOne.
func NewSurveyPicker(ask AskFunc) Picker {
	if ask == nil {
		ask = survey.AskOne
	}
	return &surveyPicker{ask: ask}
}

func (p *surveyPicker) Select(ctx context.Context, cfg SelectConfig) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if len(cfg.Options) == 0 {
		return "", ErrNoOptions
	}
	if len(cfg.Options) == 1 {
		return cfg.Options[0], nil
	}
	prompt := &survey.Select{
		Message: cfg.Message,
		Options: cfg.Options,
		Help:    cfg.Help,
	}
	if cfg.PageSize > 0 {
		prompt.PageSize = cfg.PageSize
	}
	if indexOf(cfg.Options, cfg.Default) >= 0 {
		prompt.Default = cfg.Default
	}
	var out string
	if err := p.ask(prompt, &out); err != nil {
		return "", translateSurveyErr(err)
	}
	if indexOf(cfg.Options, out) < 0 {
		return "", fmt.Errorf("prompt: unexpected answer %q", out)
	}
	return out, nil
}

// Interactive reports whether f is attached to a terminal.
func Interactive(f *os.File) bool {
	if f == nil {
		return false
	}
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

func translateSurveyErr(err error) error {
	if errors.Is(err, terminal.InterruptErr) {
		return ErrAborted
	}
	return err
}

func indexOf(options []string, value string) int {
	for i, option := range options {
		if option == value {
			return i
		}
	}
	return -1
}
