package blockfall

// GameStateType represents the current game state.
type GameStateType string

const (
	StatePlaying     GameStateType = "playing"
	StateGameOver    GameStateType = "game_over"
	StatePaused      GameStateType = "paused"
	StatePausedSmall GameStateType = "paused_small_window"
)

// Snapshot captures the adapter-level state for determinism testing.
type Snapshot struct {
	Tick         uint64
	Score        int
	Lines        int
	GravityTicks int
	PieceType    int // 0 when no piece is falling
	PieceX       int
	PieceY       int
	State        GameStateType
}

// Snapshot returns the current game snapshot for determinism verification.
func (g *Game) Snapshot() Snapshot {
	state := StatePlaying
	switch {
	case g.tooSmall:
		state = StatePausedSmall
	case g.eng.Over():
		state = StateGameOver
	case g.paused:
		state = StatePaused
	}

	snap := Snapshot{
		Tick:         g.tick,
		Score:        g.eng.Score(),
		Lines:        g.lines,
		GravityTicks: g.gravityTicks,
		State:        state,
	}

	if p := g.eng.ActivePiece(); p != nil {
		snap.PieceType = p.Type()
		snap.PieceX = p.X
		snap.PieceY = p.Y
	}

	return snap
}
