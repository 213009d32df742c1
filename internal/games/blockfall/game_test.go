package blockfall

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/vovakirdan/blockfall/internal/core"
)

func testConfig() core.RuntimeConfig {
	return core.RuntimeConfig{
		Seed:     12345,
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
	}
}

func TestDeterminism(t *testing.T) {
	// Two games with the same seed should produce identical snapshots
	cfg := testConfig()

	g1 := New()
	g1.Reset(cfg)

	g2 := New()
	g2.Reset(cfg)

	input := core.NewInputFrame()
	for i := 0; i < 500; i++ {
		input.Clear()
		switch {
		case i%7 == 0:
			input.Set(core.ActionLeft)
		case i%11 == 0:
			input.Set(core.ActionRotate)
		case i%13 == 0:
			input.Set(core.ActionDown)
		}

		g1.Step(input)
		g2.Step(input)
	}

	snap1 := g1.Snapshot()
	snap2 := g2.Snapshot()

	if snap1 != snap2 {
		t.Errorf("Snapshot mismatch: %+v vs %+v", snap1, snap2)
	}
}

func TestGravityForcesDrop(t *testing.T) {
	g := New()
	g.Reset(testConfig())

	startY := g.Snapshot().PieceY

	// Step without input until a full gravity interval has passed
	input := core.NewInputFrame()
	for i := 0; i < g.gravityTicks; i++ {
		g.Step(input)
	}

	if got := g.Snapshot().PieceY; got != startY+1 {
		t.Errorf("Expected piece at row %d after gravity interval, got %d", startY+1, got)
	}
}

func TestSoftDropAdvancesAndResetsGravity(t *testing.T) {
	g := New()
	g.Reset(testConfig())

	// Burn half a gravity interval first
	input := core.NewInputFrame()
	for i := 0; i < g.gravityTicks/2; i++ {
		g.Step(input)
	}

	startY := g.Snapshot().PieceY

	input.Set(core.ActionDown)
	g.Step(input)

	if got := g.Snapshot().PieceY; got != startY+1 {
		t.Errorf("Expected soft drop to row %d, got %d", startY+1, got)
	}
	if g.gravityTicker != 1 {
		t.Errorf("Soft drop should restart the gravity countdown, ticker is %d", g.gravityTicker)
	}
}

func TestPauseStopsSimulation(t *testing.T) {
	g := New()
	g.Reset(testConfig())

	input := core.NewInputFrame()
	input.Set(core.ActionPause)
	g.Step(input)

	if !g.State().Paused {
		t.Fatal("Game should be paused")
	}

	before := g.Snapshot()
	input.Clear()
	for i := 0; i < g.gravityTicks*3; i++ {
		g.Step(input)
	}
	after := g.Snapshot()

	if before.PieceY != after.PieceY || before.Score != after.Score {
		t.Error("Paused game must not advance the simulation")
	}

	// Unpause and verify gravity works again
	input.Set(core.ActionPause)
	g.Step(input)
	if g.State().Paused {
		t.Error("Game should resume after second pause press")
	}
}

func TestMovementIgnoredWhileGameOver(t *testing.T) {
	g := New()
	g.Reset(testConfig())

	driveToGameOver(t, g)

	before := g.Snapshot()
	input := core.NewInputFrame()
	input.Set(core.ActionLeft)
	g.Step(input)
	after := g.Snapshot()

	if before.Score != after.Score || before.Lines != after.Lines ||
		before.PieceX != after.PieceX || before.PieceY != after.PieceY {
		t.Error("Input after game over must not change the game")
	}
}

func TestRestartAfterGameOver(t *testing.T) {
	g := New()
	g.Reset(testConfig())

	driveToGameOver(t, g)

	input := core.NewInputFrame()
	input.Set(core.ActionRestart)
	g.Step(input)

	state := g.State()
	if state.GameOver {
		t.Error("Game should be playing again after restart")
	}
	if state.Score != 0 || state.Lines != 0 {
		t.Errorf("Restart should reset score/lines, got %d/%d", state.Score, state.Lines)
	}
}

// driveToGameOver soft-drops continuously until the stack tops out.
func driveToGameOver(t *testing.T, g *Game) {
	t.Helper()
	input := core.NewInputFrame()
	input.Set(core.ActionDown)
	for i := 0; i < 50000; i++ {
		g.Step(input)
		if g.State().GameOver {
			return
		}
	}
	t.Fatal("Game never ended under continuous soft drop")
}

func TestResetAppliesConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "blockfall.yaml")
	yaml := "board:\n  rows: 16\n  cols: 8\ngravity:\n  interval_ms: 500\nscoring:\n  points_per_line: 25\n"
	if err := os.WriteFile(path, []byte(yaml), 0o644); err != nil {
		t.Fatal(err)
	}
	SetConfigPath(path)
	t.Cleanup(func() { SetConfigPath("") })

	g := New()
	g.Reset(testConfig())

	if g.cfg.Board.Rows != 16 || g.cfg.Board.Cols != 8 {
		t.Errorf("board = %dx%d, expected 16x8", g.cfg.Board.Rows, g.cfg.Board.Cols)
	}
	if got := g.eng.PointsPerLine(); got != 25 {
		t.Errorf("points per line = %d, expected 25 from the config file", got)
	}
}

func TestSetBoardSizeOverridesConfig(t *testing.T) {
	SetBoardSize(12, 9)
	t.Cleanup(func() { SetBoardSize(0, 0) })

	g := New()
	g.Reset(testConfig())

	b := g.eng.Board()
	if b.Rows() != 12 || b.Cols() != 9 {
		t.Errorf("board = %dx%d, expected the 12x9 override", b.Rows(), b.Cols())
	}

	// Zero dimensions fall back to the configured size.
	SetBoardSize(0, 0)
	g.Reset(testConfig())
	b = g.eng.Board()
	if b.Rows() != 20 || b.Cols() != 10 {
		t.Errorf("board = %dx%d, expected the configured 20x10", b.Rows(), b.Cols())
	}
}

func TestWindowTooSmall(t *testing.T) {
	g := New()
	g.Reset(core.RuntimeConfig{
		Seed:     333,
		ScreenW:  10, // Too small
		ScreenH:  5,  // Too small
		TickRate: 60,
	})

	if !g.tooSmall {
		t.Error("Game should detect window is too small")
	}

	snap := g.Snapshot()
	if snap.State != StatePausedSmall {
		t.Errorf("State should be paused_small_window, got %s", snap.State)
	}
}

func TestRender(t *testing.T) {
	cfg := testConfig()
	g := New()
	g.Reset(cfg)

	screen := core.NewScreen(cfg.ScreenW, cfg.ScreenH)
	g.Render(screen)

	content := screen.String()
	if !strings.Contains(content, "Blockfall") {
		t.Error("HUD should contain 'Blockfall'")
	}

	// The falling piece should show up as block characters
	if !strings.Contains(content, "█") {
		t.Error("Rendered screen should contain the falling piece")
	}
}

func TestIDAndTitle(t *testing.T) {
	g := New()
	if g.ID() != "blockfall" {
		t.Errorf("ID should be 'blockfall', got %s", g.ID())
	}
	if g.Title() != "Blockfall" {
		t.Errorf("Title should be 'Blockfall', got %s", g.Title())
	}
}
