// Package tui shows benchmark sweeps as they run.
package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/san-kum/coulomb/internal/bench"
)

var (
	title = lipgloss.NewStyle().Foreground(lipgloss.Color("#00cccc")).Bold(true)
	dim   = lipgloss.NewStyle().Foreground(lipgloss.Color("242"))
	green = lipgloss.NewStyle().Foreground(lipgloss.Color("82"))
	red   = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
)

const barWidth = 40

type sampleMsg struct{ sample bench.Sample }
type errMsg struct{ err error }

type BenchModel struct {
	ctx     context.Context
	sweep   *bench.Sweep
	cases   []bench.Case
	next    int
	samples []bench.Sample
	err     error
	aborted bool
	started time.Time
}

func NewBenchModel(ctx context.Context, sweep *bench.Sweep) BenchModel {
	return BenchModel{
		ctx:     ctx,
		sweep:   sweep,
		cases:   sweep.Cases(),
		started: time.Now(),
	}
}

func (m BenchModel) Samples() []bench.Sample { return m.samples }
func (m BenchModel) Err() error              { return m.err }
func (m BenchModel) Done() bool              { return m.next >= len(m.cases) }

func (m BenchModel) Init() tea.Cmd { return m.runNext() }

func (m BenchModel) runNext() tea.Cmd {
	if m.Done() {
		return nil
	}
	c := m.cases[m.next]
	ctx, sweep := m.ctx, m.sweep
	return func() tea.Msg {
		s, err := sweep.RunCase(ctx, c)
		if err != nil {
			return errMsg{err}
		}
		return sampleMsg{s}
	}
}

func (m BenchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			m.aborted = true
			return m, tea.Quit
		}
	case sampleMsg:
		m.samples = append(m.samples, msg.sample)
		m.next++
		if m.Done() {
			return m, tea.Quit
		}
		return m, m.runNext()
	case errMsg:
		m.err = msg.err
		return m, tea.Quit
	}
	return m, nil
}

func (m BenchModel) View() string {
	var b strings.Builder
	b.WriteString("\n  " + title.Render("coulomb bench") + "  " + dim.Render(time.Since(m.started).Round(time.Millisecond).String()) + "\n\n")

	total := len(m.cases)
	filled := 0
	if total > 0 {
		filled = barWidth * len(m.samples) / total
	}
	b.WriteString("  [" + green.Render(strings.Repeat("█", filled)) + dim.Render(strings.Repeat("░", barWidth-filled)) + "]")
	b.WriteString(fmt.Sprintf(" %d/%d\n\n", len(m.samples), total))

	for _, s := range m.samples {
		b.WriteString(fmt.Sprintf("  %-16s %12v %10.2f Mpairs/s\n", s.Case, s.Best, s.PairsPerSec/1e6))
	}
	switch {
	case m.err != nil:
		b.WriteString("\n  " + red.Render("error: "+m.err.Error()) + "\n")
	case !m.Done() && !m.aborted:
		b.WriteString(dim.Render(fmt.Sprintf("  running %s ...", m.cases[m.next])) + "\n")
	}
	b.WriteString("\n  " + dim.Render("q to quit") + "\n")
	return b.String()
}

// RunBench drives the sweep through a bubbletea program and returns the
// samples collected before it finished or was aborted.
func RunBench(ctx context.Context, sweep *bench.Sweep) ([]bench.Sample, error) {
	final, err := tea.NewProgram(NewBenchModel(ctx, sweep)).Run()
	if err != nil {
		return nil, err
	}
	m := final.(BenchModel)
	return m.Samples(), m.Err()
}
