package main

import (
	"errors"
	"log/slog"
	"os"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"go.jacobcolvin.com/scopeprof/profiler"
	"go.jacobcolvin.com/scopeprof/report"
)

var errNotATerminal = errors.New("watch requires an interactive terminal")

func newWatchCmd() *cobra.Command {
	var (
		workloadPath string
		fps          int
	)

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Run the frame loop continuously with a live report view",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			if !term.IsTerminal(int(os.Stdout.Fd())) {
				return errNotATerminal
			}

			workload := defaultWorkload()

			if workloadPath != "" {
				var err error

				workload, err = loadWorkload(workloadPath)
				if err != nil {
					return err
				}
			}

			final, err := tea.NewProgram(newWatchModel(workload, fps)).Run()
			if err != nil {
				return err
			}

			if m, ok := final.(*watchModel); ok && m.err != nil {
				return m.err
			}

			return nil
		},
	}

	cmd.Flags().StringVarP(&workloadPath, "workload", "w", "",
		"YAML workload file (default: built-in game loop)")
	cmd.Flags().IntVar(&fps, "fps", 30, "frames simulated per second")

	return cmd
}

// frameMsg signals that it is time to simulate the next frame.
type frameMsg struct{}

// watchModel is the bubbletea model for the live report view. Each tick
// simulates one workload frame on its own profiler and re-renders the
// accumulated report.
type watchModel struct {
	workload Workload
	profiler *profiler.Profiler
	buf      strings.Builder
	fps      int
	frame    int
	err      error

	titleStyle lipgloss.Style
	helpStyle  lipgloss.Style
}

func newWatchModel(workload Workload, fps int) *watchModel {
	if fps < 1 {
		fps = 1
	}

	return &watchModel{
		workload: workload,
		// The TUI owns the screen, so anomaly logs are dropped instead
		// of being painted over it.
		profiler:   profiler.New(profiler.WithLogger(slog.New(slog.DiscardHandler))),
		fps:        fps,
		titleStyle: lipgloss.NewStyle().Bold(true),
		helpStyle:  lipgloss.NewStyle().Faint(true),
	}
}

func (m *watchModel) tick() tea.Cmd {
	return tea.Tick(time.Second/time.Duration(m.fps), func(time.Time) tea.Msg {
		return frameMsg{}
	})
}

// Init schedules the first frame.
func (m *watchModel) Init() tea.Cmd {
	return m.tick()
}

// Update handles frame ticks and key presses.
func (m *watchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyPressMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit

		case "r":
			m.profiler.Reset()
			m.frame = 0
		}

	case frameMsg:
		err := m.workload.runFrame(m.profiler, m.frame)
		if err != nil {
			m.err = err

			return m, tea.Quit
		}

		m.frame++

		return m, m.tick()
	}

	return m, nil
}

// View renders the report over the full profiling window so far.
func (m *watchModel) View() tea.View {
	m.buf.Reset()
	m.buf.WriteString(m.titleStyle.Render("scopeprof live"))
	m.buf.WriteString("\n\n")

	writeErr := report.Write(&m.buf, m.profiler.Snapshot())
	if writeErr != nil {
		m.buf.WriteString(writeErr.Error())
	}

	m.buf.WriteString("\n")
	m.buf.WriteString(m.helpStyle.Render("q quit · r reset"))

	v := tea.NewView(m.buf.String())
	v.AltScreen = true

	return v
}
