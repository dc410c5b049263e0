package cli

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/san-kum/tightbind/internal/config"
	"github.com/san-kum/tightbind/internal/experiment"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCommand()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func runID(t *testing.T, out string) string {
	t.Helper()
	for _, line := range strings.Split(out, "\n") {
		if id, ok := strings.CutPrefix(line, "run id: "); ok {
			return id
		}
	}
	t.Fatalf("no run id in output:\n%s", out)
	return ""
}

func TestExamplesCommand(t *testing.T) {
	out, err := execute(t, "examples")
	require.NoError(t, err)
	for _, name := range experiment.NewRegistry().List() {
		assert.Contains(t, out, name)
	}
	assert.Contains(t, out, "DESCRIPTION")
}

func TestPresetsCommand(t *testing.T) {
	out, err := execute(t, "presets", "dos")
	require.NoError(t, err)
	assert.Contains(t, out, "presets for dos:")
	assert.Contains(t, out, "  quick\n")

	out, err = execute(t, "presets", "lasers")
	require.NoError(t, err)
	assert.Contains(t, out, "no presets for example: lasers")
}

func TestRunSaveShowExport(t *testing.T) {
	data, figures := t.TempDir(), t.TempDir()

	out, err := execute(t, "run", "hamiltonian", "--save", "--data", data, "--out", figures)
	require.NoError(t, err)
	assert.Contains(t, out, "4\t-1\t0\t-1\t")
	id := runID(t, out)
	assert.True(t, strings.HasPrefix(id, "hamiltonian_"))

	out, err = execute(t, "runs", "--data", data)
	require.NoError(t, err)
	assert.Contains(t, out, id)

	out, err = execute(t, "show", id, "--data", data)
	require.NoError(t, err)
	assert.Contains(t, out, "example: hamiltonian")
	assert.Contains(t, out, "basis_size: 12")

	out, err = execute(t, "export-json", id, "--data", data)
	require.NoError(t, err)
	assert.Contains(t, out, `"example": "hamiltonian"`)

	path := filepath.Join(t.TempDir(), "run.json")
	_, err = execute(t, "export-json", id, "--data", data, "-o", path)
	require.NoError(t, err)
	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(raw), id)
}

func TestRunPresetWithSeries(t *testing.T) {
	data, figures := t.TempDir(), t.TempDir()

	out, err := execute(t, "run", "density", "--preset", "small", "--save", "--ascii", "--data", data, "--out", figures)
	require.NoError(t, err)
	assert.Contains(t, out, "The energy of state 0 is ")
	assert.Contains(t, out, "figure: "+filepath.Join(figures, "ProbabilityDensity.png"))
	_, err = os.Stat(filepath.Join(figures, "ProbabilityDensity.png"))
	require.NoError(t, err)

	out, err = execute(t, "export-csv", runID(t, out), "--data", data)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	assert.Equal(t, "eigenvalues", lines[0])
	assert.Len(t, lines, 1+64)
}

func TestRunConfigFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "density.yaml")
	require.NoError(t, os.WriteFile(path, []byte("density:\n  size_x: 3\n  size_y: 3\n"), 0644))

	out, err := execute(t, "run", "density", "--config", path, "--out", dir)
	require.NoError(t, err)
	// open 3×3 lattice: -4 cos(π/4)
	assert.Contains(t, out, "The energy of state 0 is -2.828")

	bad := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("density:\n  size_x: 0\n"), 0644))
	_, err = execute(t, "run", "density", "--config", bad, "--out", dir)
	assert.True(t, errors.Is(err, config.ErrInvalid))
}

func TestConfigCommand(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tightbind.yaml")
	out, err := execute(t, "config", path)
	require.NoError(t, err)
	assert.Contains(t, out, "wrote "+path)

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, config.DefaultConfig(), cfg)
}

func TestRunErrors(t *testing.T) {
	_, err := execute(t, "run", "lasers")
	assert.True(t, errors.Is(err, experiment.ErrUnknownExample))

	_, err = execute(t, "run", "density", "--preset", "huge")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown preset: huge")

	_, err = execute(t, "show", "missing", "--data", t.TempDir())
	assert.Error(t, err)

	_, err = execute(t, "--log-level", "loud", "examples")
	assert.Error(t, err)

	_, err = execute(t, "run")
	assert.Error(t, err)
}

func TestRunStandalone(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, runStandalone(context.Background(), "hamiltonian", &out))
	assert.Equal(t, 12, strings.Count(out.String(), "\n"))

	err := runStandalone(context.Background(), "lasers", &out)
	assert.True(t, errors.Is(err, experiment.ErrUnknownExample))
}
