// Package tui previews the scene in a terminal. Each cell stands for
// CellWidth x CellHeight viewport pixels and shows two rows of colour.
package tui

import (
	"fmt"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/san-kum/ambient/internal/cursor"
	"github.com/san-kum/ambient/internal/frame"
	"github.com/san-kum/ambient/internal/raster"
	"github.com/san-kum/ambient/internal/scene"
	"github.com/san-kum/ambient/internal/stripfield"
)

const (
	CellWidth  = 8
	CellHeight = 16
)

var (
	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888899")).
			Background(lipgloss.Color("#111122"))
	pausedStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#ffaa00")).
			Background(lipgloss.Color("#111122"))
)

type tickMsg time.Time

type Options struct {
	FPS         int
	SnapshotDir string
	Logger      *zap.Logger
}

type model struct {
	scene *scene.Scene
	host  *raster.Host
	pump  *frame.Pump
	log   *zap.Logger

	interval    time.Duration
	snapshotDir string

	cols, rows int
	started    bool
	paused     bool
	status     string
	err        error
}

// Host returns a raster host with the scene's containers at one image pixel
// per half cell.
func Host() *raster.Host {
	h := raster.NewHost(stripfield.Container, cursor.Container)
	h.SetScale(1.0 / CellWidth)
	return h
}

// NewModel wraps a scene built on host, which should come from Host.
func NewModel(sc *scene.Scene, host *raster.Host, opts Options) tea.Model {
	fps := opts.FPS
	if fps <= 0 {
		fps = frame.DefaultFPS
	}
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	return model{
		scene:       sc,
		host:        host,
		pump:        frame.NewPump(),
		log:         log,
		interval:    time.Second / time.Duration(fps),
		snapshotDir: opts.SnapshotDir,
	}
}

func (m model) Init() tea.Cmd { return nil }

func (m model) tick() tea.Cmd {
	return tea.Tick(m.interval, func(t time.Time) tea.Msg { return tickMsg(t) })
}

// viewport is the pixel size covered by the drawing rows; the last row is
// the status line.
func (m model) viewport() (int, int) {
	return m.cols * CellWidth, max(m.rows-1, 1) * CellHeight
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.cols, m.rows = msg.Width, msg.Height
		w, h := m.viewport()
		if !m.started {
			if err := m.scene.Start(m.pump, w, h); err != nil {
				m.err = err
				return m, tea.Quit
			}
			m.started = true
			m.pump.Tick()
			return m, m.tick()
		}
		m.scene.Resize(w, h)
		return m, nil

	case tea.MouseMsg:
		m.scene.PointerMove(
			float64(msg.X*CellWidth+CellWidth/2),
			float64(msg.Y*CellHeight+CellHeight/2),
		)
		return m, nil

	case tickMsg:
		if !m.started {
			return m, nil
		}
		if !m.paused {
			m.pump.Tick()
		}
		return m, m.tick()
	}
	return m, nil
}

func (m model) handleKey(msg tea.KeyMsg) (model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c", "esc":
		m.scene.Stop()
		return m, tea.Quit
	case " ", "p":
		m.paused = !m.paused
	case ".":
		if m.paused {
			m.pump.Tick()
		}
	case "s":
		m.status = m.snapshot()
	}
	return m, nil
}

func (m model) snapshot() string {
	name := fmt.Sprintf("ambient_%06d.png", m.scene.Frames())
	path := filepath.Join(m.snapshotDir, name)
	if err := raster.WritePNG(path, m.host.Composite()); err != nil {
		m.log.Warn("snapshot failed", zap.String("path", path), zap.Error(err))
		return "snapshot failed: " + err.Error()
	}
	m.log.Info("snapshot written", zap.String("path", path))
	return "saved " + path
}

func (m model) View() string {
	if m.err != nil {
		return "error: " + m.err.Error() + "\n"
	}
	if !m.started {
		return "starting..."
	}

	body := Cells(m.host.Composite(), m.cols, max(m.rows-1, 1))

	w, h := m.viewport()
	status := fmt.Sprintf(" %dx%d  frame %d  cursor:%v  p pause  . step  s snapshot  q quit",
		w, h, m.scene.Frames(), m.scene.Follower().Active())
	if m.status != "" {
		status += "  " + m.status
	}
	style := statusStyle
	if m.paused {
		style = pausedStyle
		status = " PAUSED" + status
	}
	return body + "\n" + style.Width(m.cols).MaxWidth(m.cols).Render(status)
}

// Run starts the preview in the alternate screen with mouse motion reporting.
func Run(sc *scene.Scene, host *raster.Host, opts Options) error {
	p := tea.NewProgram(NewModel(sc, host, opts), tea.WithAltScreen(), tea.WithMouseAllMotion())
	final, err := p.Run()
	if err != nil {
		return err
	}
	if fm, ok := final.(model); ok && fm.err != nil {
		return fm.err
	}
	return nil
}
