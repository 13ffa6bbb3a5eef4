package tui

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/dinox/internal/core"
	"github.com/vovakirdan/dinox/internal/economy"
	"github.com/vovakirdan/dinox/internal/runner"
)

// Visual characters for rendering
const (
	BodyChar     = '█'
	EyeChar      = '◆'
	ObstacleChar = '▓'
	CoinChar     = 'o'
	GroundChar   = '═'
	DirtChar     = '░'
	AuraLeft     = '('
	AuraRight    = ')'
)

// colorStyles maps core.Color to lipgloss styles.
var colorStyles = map[core.Color]lipgloss.Style{
	core.ColorDefault:       lipgloss.NewStyle(),
	core.ColorRed:           lipgloss.NewStyle().Foreground(lipgloss.Color("1")),
	core.ColorGreen:         lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
	core.ColorYellow:        lipgloss.NewStyle().Foreground(lipgloss.Color("3")),
	core.ColorBlue:          lipgloss.NewStyle().Foreground(lipgloss.Color("4")),
	core.ColorMagenta:       lipgloss.NewStyle().Foreground(lipgloss.Color("5")),
	core.ColorCyan:          lipgloss.NewStyle().Foreground(lipgloss.Color("6")),
	core.ColorWhite:         lipgloss.NewStyle().Foreground(lipgloss.Color("7")),
	core.ColorBrightRed:     lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
	core.ColorBrightGreen:   lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
	core.ColorBrightYellow:  lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
	core.ColorBrightBlue:    lipgloss.NewStyle().Foreground(lipgloss.Color("12")),
	core.ColorBrightMagenta: lipgloss.NewStyle().Foreground(lipgloss.Color("13")),
	core.ColorBrightCyan:    lipgloss.NewStyle().Foreground(lipgloss.Color("14")),
	core.ColorBrightWhite:   lipgloss.NewStyle().Foreground(lipgloss.Color("15")),
	core.ColorOrange:        lipgloss.NewStyle().Foreground(lipgloss.Color("208")),
	core.ColorGray:          lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
	core.ColorBrown:         lipgloss.NewStyle().Foreground(lipgloss.Color("94")),
}

// RenderScreen converts a Screen buffer to a styled string for display.
// Groups adjacent cells with the same color to minimize ANSI escape sequences.
func RenderScreen(s *core.Screen) string {
	var sb strings.Builder
	// Pre-allocate with extra space for ANSI codes
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	for y := range s.Height() {
		if y > 0 {
			sb.WriteRune('\n')
		}

		// Group consecutive cells with the same color for efficiency
		x := 0
		for x < s.Width() {
			startColor := s.GetCell(x, y).Color

			var run strings.Builder
			for x < s.Width() {
				cell := s.GetCell(x, y)
				if cell.Color != startColor {
					break
				}
				run.WriteRune(cell.Rune)
				x++
			}

			style, ok := colorStyles[startColor]
			if !ok {
				style = colorStyles[core.ColorDefault]
			}
			sb.WriteString(style.Render(run.String()))
		}
	}
	return sb.String()
}

// Renderer draws a runner snapshot into a screen buffer. The top row holds
// the HUD; the world is scaled into the rows below it.
type Renderer struct {
	catalog economy.Catalog
}

// NewRenderer creates a renderer that colors the player by skin.
func NewRenderer(catalog economy.Catalog) *Renderer {
	return &Renderer{catalog: catalog}
}

// viewport maps world units to screen cells.
type viewport struct {
	sx, sy float64
	top    int // First row of the play area
}

func (v viewport) col(x float64) int {
	return int(math.Floor(x * v.sx))
}

func (v viewport) row(y float64) int {
	return v.top + int(math.Floor(y*v.sy))
}

// span converts a world rect to a cell rect that is at least one cell big.
func (v viewport) span(r core.Rect) (x, y, w, h int) {
	x, y = v.col(r.X), v.row(r.Y)
	w = max(v.col(r.Right())-x, 1)
	h = max(v.row(r.Bottom())-y, 1)
	return x, y, w, h
}

// Draw renders the snapshot. It never touches the simulation.
func (r *Renderer) Draw(dst *core.Screen, snap runner.Snapshot) {
	dst.Clear()
	if dst.Width() < 10 || dst.Height() < 6 {
		dst.DrawTextCentered(dst.Height()/2, "too small")
		return
	}

	vp := viewport{
		sx:  float64(dst.Width()) / snap.Field.Width,
		sy:  float64(dst.Height()-1) / snap.Field.Height,
		top: 1,
	}

	r.drawGround(dst, vp, snap)
	for _, o := range snap.Obstacles {
		r.drawObstacle(dst, vp, o)
	}
	for _, c := range snap.Coins {
		dst.SetColored(vp.col(c.X), vp.row(c.Y), CoinChar, core.ColorBrightYellow)
	}
	r.drawPlayer(dst, vp, snap)
	r.drawHUD(dst, snap)

	switch snap.State {
	case runner.StateIdle:
		drawCenteredMessage(dst, "DINOX", "Space to run  |  S for shop  |  Q to quit")
	case runner.StatePaused:
		drawCenteredMessage(dst, "PAUSED", "Press P to resume")
	case runner.StateEnded:
		drawCenteredMessage(dst, "GAME OVER", fmt.Sprintf("Score: %d  |  R to retry  |  S for shop", snap.Run.Score))
	}
}

func (r *Renderer) drawGround(dst *core.Screen, vp viewport, snap runner.Snapshot) {
	groundRow := vp.row(snap.Field.GroundY())
	dst.DrawHLine(0, groundRow, dst.Width(), GroundChar, core.ColorBrown)
	for y := groundRow + 1; y < dst.Height(); y++ {
		dst.DrawHLine(0, y, dst.Width(), DirtChar, core.ColorBrown)
	}
}

func (r *Renderer) drawObstacle(dst *core.Screen, vp viewport, o runner.Obstacle) {
	color := core.ColorGreen
	if o.Absorbed {
		color = core.ColorGray
	}
	x, y, w, h := vp.span(o.Rect())
	dst.DrawRect(x, y, w, h, ObstacleChar, color)
}

func (r *Renderer) drawPlayer(dst *core.Screen, vp viewport, snap runner.Snapshot) {
	p := snap.Player
	skin := r.catalog.SkinOrDefault(snap.ActiveSkin)
	body := skin.Color
	if !p.Alive {
		body = core.ColorGray
	}

	x, y, w, h := vp.span(p.Rect())
	dst.DrawRect(x, y, w, h, BodyChar, body)
	dst.SetColored(x+w-1, y, EyeChar, skin.Accent)

	if p.ShieldActive {
		for row := y; row < y+h; row++ {
			dst.SetColored(x-1, row, AuraLeft, core.ColorBrightCyan)
			dst.SetColored(x+w, row, AuraRight, core.ColorBrightCyan)
		}
	}
}

func (r *Renderer) drawHUD(dst *core.Screen, snap runner.Snapshot) {
	left := fmt.Sprintf(" Score: %d  Best: %d  Coins: %d ", snap.Run.Score, snap.BestScore, snap.Wallet)
	dst.DrawTextColored(0, 0, left, core.ColorBrightWhite)

	right := fmt.Sprintf(" %s Spd: %.1f  Lv: %d%% ", perkBadges(snap.Perks, snap.Player.ShieldActive), snap.Run.Speed, int(snap.Level*100))
	dst.DrawTextColored(dst.Width()-len([]rune(right)), 0, right, core.ColorGray)
}

// perkBadges returns a compact marker per owned perk.
func perkBadges(p economy.PerkSet, shieldUp bool) string {
	var b strings.Builder
	if p.DoubleJump {
		b.WriteString("2J ")
	}
	if p.Shield {
		if shieldUp {
			b.WriteString("SH ")
		} else {
			b.WriteString("sh ")
		}
	}
	if p.Magnet {
		b.WriteString("MG ")
	}
	if p.Speed {
		b.WriteString("SP ")
	}
	return b.String()
}

// drawCenteredMessage draws a message box in the center of the screen.
func drawCenteredMessage(dst *core.Screen, title, subtitle string) {
	w := dst.Width()
	h := dst.Height()

	boxW := min(max(len([]rune(title)), len([]rune(subtitle)))+4, w)
	boxH := 5
	boxX := (w - boxW) / 2
	boxY := (h - boxH) / 2

	dst.DrawRect(boxX, boxY, boxW, boxH, ' ', core.ColorDefault)
	dst.DrawBox(boxX, boxY, boxW, boxH)

	titleX := boxX + (boxW-len([]rune(title)))/2
	dst.DrawTextColored(titleX, boxY+1, title, core.ColorBrightWhite)

	subtitleX := boxX + (boxW-len([]rune(subtitle)))/2
	dst.DrawText(subtitleX, boxY+3, subtitle)
}
