// Package blockfall adapts the falling-block engine to the arcade
// platform: fixed-tick input handling, difficulty-scaled gravity and
// terminal rendering on top of the pure engine package.
package blockfall

import (
	"fmt"
	"math/rand"

	"github.com/vovakirdan/blockfall/internal/config"
	"github.com/vovakirdan/blockfall/internal/core"
	"github.com/vovakirdan/blockfall/internal/games/blockfall/engine"
	"github.com/vovakirdan/blockfall/internal/registry"
)

const hudHeight = 2

// Game implements the Blockfall game on top of the engine package.
type Game struct {
	cfg  config.BlockfallConfig
	diff *config.DifficultyManager
	eng  *engine.Game
	rng  *rand.Rand

	tick     uint64
	tickRate int
	lines    int

	gravityTicks  int // Ticks between forced drops at current difficulty
	gravityTicker int

	// Screen layout
	screenW int
	screenH int
	boardX  int // Left edge of the playfield in screen cells
	boardY  int

	paused   bool
	tooSmall bool
}

// Package-level variables injected by the CLI before Reset.
var (
	configPath       string
	difficultyPreset string
	overrideRows     int
	overrideCols     int
)

// SetConfigPath sets the config file path used on the next Reset.
func SetConfigPath(path string) {
	configPath = path
}

// SetDifficultyPreset sets the difficulty preset used on the next Reset.
func SetDifficultyPreset(preset string) {
	difficultyPreset = preset
}

// SetBoardSize overrides the configured board dimensions on the next
// Reset. A zero dimension leaves the configured value in place.
func SetBoardSize(rows, cols int) {
	overrideRows = rows
	overrideCols = cols
}

// New creates a new Blockfall game.
func New() *Game {
	return &Game{}
}

func init() {
	registry.Register("blockfall", func() registry.Game {
		return New()
	})
}

// ID returns the game identifier.
func (g *Game) ID() string {
	return "blockfall"
}

// Title returns the display name.
func (g *Game) Title() string {
	return "Blockfall"
}

// Reset initializes/restarts the game.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	gameCfg, err := config.LoadBlockfall(configPath)
	if err != nil {
		gameCfg = config.DefaultBlockfallConfig()
	}
	if difficultyPreset != "" {
		config.ApplyBlockfallPreset(&gameCfg, config.DifficultyPreset(difficultyPreset))
	}
	if overrideRows > 0 {
		gameCfg.Board.Rows = overrideRows
	}
	if overrideCols > 0 {
		gameCfg.Board.Cols = overrideCols
	}
	g.cfg = gameCfg
	g.diff = config.NewDifficultyManager(gameCfg.Difficulty)

	g.rng = rand.New(rand.NewSource(cfg.Seed))
	g.tick = 0
	g.lines = 0
	g.paused = false
	g.gravityTicker = 0

	g.tickRate = cfg.TickRate
	if g.tickRate <= 0 {
		g.tickRate = 60
	}
	g.screenW = cfg.ScreenW
	g.screenH = cfg.ScreenH

	rows, cols := gameCfg.Board.Rows, gameCfg.Board.Cols
	eng, err := engine.NewGame(rows, cols, cfg.Seed)
	if err != nil {
		rows, cols = engine.DefaultRows, engine.DefaultCols
		eng, _ = engine.NewGame(rows, cols, cfg.Seed)
	}
	eng.SetPointsPerLine(gameCfg.Scoring.PointsPerLine)
	g.eng = eng

	g.updateGravity()
	g.layoutBoard(rows, cols)
}

// layoutBoard centers the playfield on screen. Each board cell is
// two characters wide so the grid looks roughly square in a terminal.
func (g *Game) layoutBoard(rows, cols int) {
	requiredW := cols*2 + 2
	requiredH := rows + hudHeight + 2
	if g.screenW < requiredW || g.screenH < requiredH {
		g.tooSmall = true
		return
	}
	g.tooSmall = false

	g.boardX = (g.screenW - cols*2) / 2
	g.boardY = hudHeight + (g.screenH-hudHeight-rows)/2
}

// updateGravity recomputes the forced-drop tick interval from the
// current score and elapsed ticks.
func (g *Game) updateGravity() {
	intervalMs := g.diff.GravityInterval(g.cfg.Gravity.IntervalMs, g.eng.Score(), int(g.tick))
	ticks := intervalMs * g.tickRate / 1000
	if ticks < 1 {
		ticks = 1
	}
	g.gravityTicks = ticks
}

// Step advances the game by one tick.
func (g *Game) Step(input core.InputFrame) core.StepResult {
	g.tick++

	if input.Has(core.ActionRestart) && g.eng.Over() {
		g.Reset(core.RuntimeConfig{
			Seed:     g.rng.Int63(),
			ScreenW:  g.screenW,
			ScreenH:  g.screenH,
			TickRate: g.tickRate,
		})
		return core.StepResult{State: g.State()}
	}

	if input.Has(core.ActionPause) && !g.eng.Over() {
		g.paused = !g.paused
	}

	if g.eng.Over() || g.paused || g.tooSmall {
		return core.StepResult{State: g.State()}
	}

	switch {
	case input.Has(core.ActionLeft):
		g.eng.MoveLeft()
	case input.Has(core.ActionRight):
		g.eng.MoveRight()
	case input.Has(core.ActionRotate):
		g.eng.Rotate()
	case input.Has(core.ActionDown):
		g.softDrop()
		// Manual drop restarts the gravity countdown
		g.gravityTicker = 0
	}

	g.gravityTicker++
	if g.gravityTicker >= g.gravityTicks {
		g.gravityTicker = 0
		g.softDrop()
	}

	return core.StepResult{State: g.State()}
}

// softDrop advances the piece one row, accounting for cleared lines.
func (g *Game) softDrop() {
	locked, cleared := g.eng.SoftDrop()
	if locked {
		g.lines += cleared
		g.updateGravity()
	}
}

// Render draws the game to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	g.renderHUD(dst)

	if g.tooSmall {
		g.renderOverlay(dst, "Window too small", "Resize to continue")
		return
	}

	g.renderBoard(dst)

	switch {
	case g.eng.Over():
		g.renderOverlay(dst, "Game Over", "Press R to restart")
	case g.paused:
		g.renderOverlay(dst, "Paused", "Press P to continue")
	}
}

// renderHUD draws the top status bar.
func (g *Game) renderHUD(dst *core.Screen) {
	hud := fmt.Sprintf(" Blockfall — Score: %d  Lines: %d", g.eng.Score(), g.lines)
	if g.diff.IsEnabled() {
		hud += fmt.Sprintf("  Level: %.0f%%", g.diff.Level(g.eng.Score(), int(g.tick))*100)
	}
	dst.DrawText(0, 0, hud)
	dst.DrawHLine(0, 1, dst.Width(), '─')
}

// renderBoard draws the playfield frame, settled cells and the
// falling piece composited on top.
func (g *Game) renderBoard(dst *core.Screen) {
	snap := g.eng.Snapshot()

	dst.DrawBox(core.NewRect(g.boardX-1, g.boardY-1, snap.Cols*2+2, snap.Rows+2))

	for row := 0; row < snap.Rows; row++ {
		for col := 0; col < snap.Cols; col++ {
			v := snap.CompositeCell(row, col)
			if v == engine.CellEmpty {
				continue
			}
			x := g.boardX + col*2
			y := g.boardY + row
			c := colorForCell(v)
			dst.SetCell(x, y, '█', c)
			dst.SetCell(x+1, y, '█', c)
		}
	}
}

// colorForCell maps a piece type id to a terminal color.
func colorForCell(v int) core.Color {
	switch v {
	case 1:
		return core.ColorCyan
	case 2:
		return core.ColorYellow
	case 3:
		return core.ColorMagenta
	case 4:
		return core.ColorGreen
	case 5:
		return core.ColorRed
	case 6:
		return core.ColorOrange
	case 7:
		return core.ColorBlue
	default:
		return core.ColorWhite
	}
}

// renderOverlay draws a centered two-line message in a box.
func (g *Game) renderOverlay(dst *core.Screen, line1, line2 string) {
	maxLen := len(line1)
	if len(line2) > maxLen {
		maxLen = len(line2)
	}
	boxW := maxLen + 4
	boxH := 5
	boxX := (dst.Width() - boxW) / 2
	boxY := (dst.Height() - boxH) / 2

	dst.DrawRect(core.NewRect(boxX, boxY, boxW, boxH), ' ')
	dst.DrawBox(core.NewRect(boxX, boxY, boxW, boxH))
	dst.DrawTextCentered(boxY+1, line1)
	dst.DrawTextCentered(boxY+3, line2)
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:    g.eng.Score(),
		Lines:    g.lines,
		GameOver: g.eng.Over(),
		Paused:   g.paused,
	}
}
