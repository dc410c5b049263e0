package viz

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/tightbind/internal/array"
)

// Source is a set of solved eigenstates.
type Source interface {
	Title() string
	NumStates() int
	EigenValue(n int) (float64, error)
	Density(n int) (*array.Array[float64], error)
}

const spectrumSpan = 40

// Browser steps through the eigenstates of a Source, showing the density of
// the current state and the nearby part of the spectrum.
type Browser struct {
	src           Source
	state         int
	width, height int

	density *array.Array[float64]
	energy  float64
	err     error
}

func NewBrowser(src Source) Browser {
	b := Browser{src: src, width: 80, height: 24}
	b.load()
	return b
}

// State is the index of the state on screen.
func (b Browser) State() int { return b.state }

func (b Browser) Err() error { return b.err }

func (b *Browser) load() {
	b.density, b.err = b.src.Density(b.state)
	if b.err != nil {
		return
	}
	b.energy, b.err = b.src.EigenValue(b.state)
}

func (b *Browser) move(to int) {
	last := b.src.NumStates() - 1
	if to > last {
		to = last
	}
	if to < 0 {
		to = 0
	}
	if to == b.state && b.density != nil {
		return
	}
	b.state = to
	b.load()
}

func (b Browser) Init() tea.Cmd { return nil }

func (b Browser) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return b, tea.Quit
		case "up", "k":
			b.move(b.state - 1)
		case "down", "j":
			b.move(b.state + 1)
		case "pgup":
			b.move(b.state - 10)
		case "pgdown":
			b.move(b.state + 10)
		case "g", "home":
			b.move(0)
		case "G", "end":
			b.move(b.src.NumStates() - 1)
		}
	case tea.WindowSizeMsg:
		b.width, b.height = msg.Width, msg.Height
	}
	return b, nil
}

func (b Browser) View() string {
	var sb strings.Builder
	sb.WriteString("\n  " + TitleStyle.Render(b.src.Title()) + "\n  " + Separator(b.width-4) + "\n\n")
	sb.WriteString(fmt.Sprintf("  %s %s   %s %s\n\n",
		MetricLabel.Render("state"),
		MetricValue.Render(fmt.Sprintf("%d/%d", b.state, b.src.NumStates()-1)),
		MetricLabel.Render("E ="),
		MetricValue.Render(fmt.Sprintf("%.6g", b.energy)),
	))

	if b.err != nil {
		sb.WriteString("  " + ErrorStyle.Render(b.err.Error()) + "\n")
	} else {
		sb.WriteString(Panel.Render(b.densityView()) + "\n")
		sb.WriteString(b.spectrumView() + "\n")
	}

	sb.WriteString("\n  " + Hints("j/k", "state", "g/G", "first/last", "q", "quit") + "\n")
	return sb.String()
}

func (b Browser) plotSize() (int, int) {
	w := b.width - 16
	if w < 20 {
		w = 20
	}
	h := (b.height - 22) / 2
	if h < 6 {
		h = 6
	}
	return w, h
}

func (b Browser) densityView() string {
	w, h := b.plotSize()
	switch b.density.Rank() {
	case 1:
		_, peak := array.MinMax(b.density)
		c := NewCanvas(w, h)
		c.Curve(b.density.Data(), 0, peak)
		return c.String() + Subtle.Render(fmt.Sprintf("|ψ(x)|², peak %.3g", peak))
	case 2:
		c := NewCanvas(w, h)
		c.Shade(b.density)
		return strings.TrimSuffix(c.String(), "\n")
	}
	return Subtle.Render(fmt.Sprintf("cannot draw shape %v", b.density.Shape()))
}

// spectrumView plots up to spectrumSpan levels starting at the current state.
func (b Browser) spectrumView() string {
	levels := make([]float64, 0, spectrumSpan)
	for n := b.state; n < b.src.NumStates() && len(levels) < spectrumSpan; n++ {
		e, err := b.src.EigenValue(n)
		if err != nil {
			break
		}
		levels = append(levels, e)
	}
	if len(levels) < 2 {
		return ""
	}
	w, _ := b.plotSize()
	return asciigraph.Plot(levels,
		asciigraph.Height(6),
		asciigraph.Width(w),
		asciigraph.Caption(fmt.Sprintf("E_n for n = %d..%d", b.state, b.state+len(levels)-1)),
	)
}

// Run opens the browser full-screen until the user quits.
func Run(src Source) error {
	_, err := tea.NewProgram(NewBrowser(src), tea.WithAltScreen()).Run()
	return err
}
