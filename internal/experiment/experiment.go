// Package experiment holds the example programs: each builds a model, solves
// it and writes its figures and text to an Env.
package experiment

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"

	"github.com/san-kum/tightbind/internal/config"
	"github.com/san-kum/tightbind/internal/logger"
	"github.com/san-kum/tightbind/internal/render"
)

var ErrUnknownExample = errors.New("experiment: unknown example")

// Env is where an example reads its parameters and writes its output.
type Env struct {
	OutputDir string
	Out       io.Writer
	Logger    *slog.Logger
	Config    *config.Config
}

func (env Env) log() *slog.Logger {
	if env.Logger == nil {
		return logger.Discard()
	}
	return env.Logger
}

func (env Env) out() io.Writer {
	if env.Out == nil {
		return io.Discard
	}
	return env.Out
}

func (env Env) config() *config.Config {
	if env.Config == nil {
		return config.DefaultConfig()
	}
	return env.Config
}

// Result is what an example produced.
type Result struct {
	Example string
	Figures []string
	Series  map[string][]float64
	Scalars map[string]float64
	Lines   []string
}

func newResult(example string) *Result {
	return &Result{
		Example: example,
		Series:  make(map[string][]float64),
		Scalars: make(map[string]float64),
	}
}

// printf writes one line of user output and keeps it in the result.
func (r *Result) printf(env Env, format string, args ...any) {
	line := fmt.Sprintf(format, args...)
	r.Lines = append(r.Lines, line)
	fmt.Fprintln(env.out(), line)
}

// saveFigure writes p to name inside the output directory.
func (r *Result) saveFigure(env Env, p *render.Plotter, name string) error {
	path := filepath.Join(env.OutputDir, name)
	if err := p.Save(path); err != nil {
		return err
	}
	r.Figures = append(r.Figures, path)
	env.log().Info("figure.saved", "example", r.Example, "path", path)
	return nil
}

type Example interface {
	Name() string
	Description() string
	Run(ctx context.Context, env Env) (*Result, error)
}

// ExampleError wraps an error with the pipeline stage it came from.
type ExampleError struct {
	Example string
	Stage   string
	Err     error
}

func (e *ExampleError) Error() string {
	return fmt.Sprintf("%s: %s: %v", e.Example, e.Stage, e.Err)
}

func (e *ExampleError) Unwrap() error {
	return e.Err
}

func stageError(example, stage string, err error) error {
	if err == nil {
		return nil
	}
	return &ExampleError{Example: example, Stage: stage, Err: err}
}
