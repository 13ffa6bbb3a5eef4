package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/dinox/internal/core"
	"github.com/vovakirdan/dinox/internal/runner"
)

// RunRecorder stores finished runs in the history.
type RunRecorder interface {
	SaveRun(player string, score, coins int) (int64, error)
}

// Options configures a Model.
type Options struct {
	Controller *runner.Controller
	Runs       RunRecorder // nil disables run history
	Player     string      // Name the runs are recorded under
	Runtime    core.RuntimeConfig
	Logger     *log.Logger
}

// Model is the Bubble Tea model for one player's session. It schedules
// ticks, forwards commands to the controller and draws its snapshots.
type Model struct {
	ctrl     *runner.Controller
	runs     RunRecorder
	player   string
	screen   *core.Screen
	renderer *Renderer
	shop     ShopModel
	keys     *KeyMapper
	config   core.RuntimeConfig
	logger   *log.Logger
	quitting bool
}

// NewModel creates a new Bubble Tea model around the controller.
func NewModel(opts Options) Model {
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}
	cfg := opts.Runtime

	return Model{
		ctrl:     opts.Controller,
		runs:     opts.Runs,
		player:   opts.Player,
		screen:   core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		renderer: NewRenderer(opts.Controller.Economy().Catalog()),
		shop:     NewShopModel(opts.Controller, cfg.ScreenW, cfg.ScreenH),
		keys:     NewKeyMapper(),
		config:   cfg,
		logger:   opts.Logger,
	}
}

// Init starts the tick loop. The controller waits in Idle for the first jump.
func (m Model) Init() tea.Cmd {
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.ctrl.ShopOpen() {
			return m.handleShopKey(msg)
		}
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick(time.Time(msg))
	}

	return m, nil
}

// handleKey processes keyboard input during play.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		m.saveScreenshot()
		return m, nil
	}

	action, isQuit := m.keys.MapKey(msg)
	if isQuit {
		return m.quit()
	}

	switch action {
	case core.ActionJump:
		if m.ctrl.State() == runner.StateIdle {
			m.ctrl.StartNewRun()
		} else {
			m.ctrl.Jump()
		}
	case core.ActionPause:
		m.ctrl.TogglePause()
	case core.ActionOpenShop:
		m.ctrl.OpenShop()
		m.shop.Refresh()
	case core.ActionRestart:
		if s := m.ctrl.State(); s == runner.StateEnded || s == runner.StateIdle {
			m.ctrl.StartNewRun()
		}
	}
	return m, nil
}

// handleShopKey processes keyboard input while the shop is open.
func (m Model) handleShopKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	action, isQuit := m.keys.MapShopKey(msg)
	if isQuit {
		return m.quit()
	}

	switch action {
	case core.ActionCloseShop:
		m.ctrl.CloseShop()
		return m, nil
	case core.ActionConfirm:
		m.shop.Confirm()
		return m, nil
	case core.ActionUp, core.ActionDown:
		var cmd tea.Cmd
		m.shop, cmd = m.shop.Update(msg)
		return m, cmd
	}
	return m, nil
}

// handleResize processes window resize events. The world is scaled to the
// screen, so the run continues unchanged.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, msg.Height)

	var cmd tea.Cmd
	m.shop, cmd = m.shop.Update(msg)
	return m, cmd
}

// handleTick advances the simulation and records finished runs.
func (m Model) handleTick(now time.Time) (tea.Model, tea.Cmd) {
	res := m.ctrl.Tick(now)

	if res.Ended && m.runs != nil {
		snap := m.ctrl.Snapshot()
		if _, err := m.runs.SaveRun(m.player, res.Score, snap.Run.CoinsCollected); err != nil {
			m.logger.Warn("could not record run", "player", m.player, "error", err)
		}
	}

	return m, tickCmd(m.config.TickRate)
}

// quit flushes unsaved economy changes and exits.
func (m Model) quit() (tea.Model, tea.Cmd) {
	m.quitting = true
	if err := m.ctrl.Close(); err != nil {
		m.logger.Error("final save failed", "player", m.player, "error", err)
	}
	return m, tea.Quit
}

// saveScreenshot saves the current screen to a file.
func (m *Model) saveScreenshot() {
	m.renderer.Draw(m.screen, m.ctrl.Snapshot())

	home, err := os.UserHomeDir()
	if err != nil {
		return
	}
	dir := filepath.Join(home, ".dinox", "screenshots")
	//nolint:errcheck // Best-effort directory creation
	os.MkdirAll(dir, 0o755)

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("dinox_%s.txt", timestamp))

	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.logger.Warn("screenshot failed", "path", path, "error", err)
		return
	}
	m.logger.Info("screenshot saved", "path", path)
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if m.ctrl.ShopOpen() {
		return m.shop.View()
	}

	m.renderer.Draw(m.screen, m.ctrl.Snapshot())
	return RenderScreen(m.screen)
}

// Run starts the Bubble Tea program for a local session.
func Run(opts Options) error {
	model := NewModel(opts)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(), // Use alternate screen buffer
	)

	_, err := p.Run()
	return err
}
