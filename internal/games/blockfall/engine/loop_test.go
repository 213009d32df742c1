package engine

import (
	"sync"
	"testing"
	"time"
)

// snapshotRecorder collects render callbacks for inspection.
type snapshotRecorder struct {
	mu    sync.Mutex
	snaps []Snapshot
}

func (r *snapshotRecorder) record(s Snapshot) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.snaps = append(r.snaps, s)
}

func (r *snapshotRecorder) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.snaps)
}

func (r *snapshotRecorder) last() (Snapshot, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.snaps) == 0 {
		return Snapshot{}, false
	}
	return r.snaps[len(r.snaps)-1], true
}

func TestLoopStopIsIdempotent(t *testing.T) {
	g := newTestGame(t)
	rec := &snapshotRecorder{}
	l := NewLoop(g, rec.record).Start()

	l.Stop()
	l.Stop() // second stop must leave the same stopped state

	select {
	case <-l.Done():
	default:
		t.Fatal("Done should be closed after Stop")
	}
}

func TestLoopNoRenderAfterStop(t *testing.T) {
	g := newTestGame(t)
	rec := &snapshotRecorder{}
	l := NewLoop(g, rec.record, WithFrameInterval(time.Millisecond)).Start()

	time.Sleep(20 * time.Millisecond)
	l.Stop()

	n := rec.count()
	if n == 0 {
		t.Fatal("loop should have rendered while running")
	}

	// Posted-but-unprocessed commands and stale timers must not surface.
	l.MoveLeft()
	l.SoftDrop()
	time.Sleep(20 * time.Millisecond)

	if rec.count() != n {
		t.Errorf("renders after Stop: %d -> %d", n, rec.count())
	}
}

func TestLoopStopBeforeStart(t *testing.T) {
	g := newTestGame(t)
	rec := &snapshotRecorder{}
	l := NewLoop(g, rec.record, WithFrameInterval(time.Millisecond))

	// Stop on a never-started loop finishes it outright.
	l.Stop()

	select {
	case <-l.Done():
	default:
		t.Fatal("Done should be closed after Stop on a never-started loop")
	}

	// A later Start must not revive the loop: no goroutine, no render.
	l.Start()
	time.Sleep(20 * time.Millisecond)

	if n := rec.count(); n != 0 {
		t.Errorf("renders after Stop-then-Start: %d, expected 0", n)
	}
}

func TestLoopGravityForcesDescent(t *testing.T) {
	g := newTestGame(t)
	startY := g.ActivePiece().Y

	rec := &snapshotRecorder{}
	l := NewLoop(g, rec.record,
		WithGravityInterval(5*time.Millisecond),
		WithFrameInterval(time.Millisecond),
	).Start()
	defer l.Stop()

	deadline := time.After(2 * time.Second)
	for {
		if snap, ok := rec.last(); ok && snap.Piece != nil && snap.Piece.Y > startY {
			return
		}
		select {
		case <-deadline:
			t.Fatal("gravity never advanced the piece")
		case <-time.After(time.Millisecond):
		}
	}
}

func TestLoopAppliesCommands(t *testing.T) {
	g := newTestGame(t)
	startX := g.ActivePiece().X

	rec := &snapshotRecorder{}
	// Long gravity so only the command can change the piece.
	l := NewLoop(g, rec.record,
		WithGravityInterval(time.Hour),
		WithFrameInterval(time.Millisecond),
	).Start()
	defer l.Stop()

	l.MoveLeft()

	deadline := time.After(2 * time.Second)
	for {
		if snap, ok := rec.last(); ok && snap.Piece != nil && snap.Piece.X == startX-1 {
			return
		}
		select {
		case <-deadline:
			t.Fatal("MoveLeft command never took effect")
		case <-time.After(time.Millisecond):
		}
	}
}

func TestLoopSoftDropResetsGravity(t *testing.T) {
	g := newTestGame(t)
	rec := &snapshotRecorder{}
	l := NewLoop(g, rec.record,
		WithGravityInterval(time.Hour),
		WithFrameInterval(time.Millisecond),
	).Start()
	defer l.Stop()

	l.SoftDrop()

	deadline := time.After(2 * time.Second)
	for {
		if snap, ok := rec.last(); ok && snap.Piece != nil && snap.Piece.Y >= 1 {
			return
		}
		select {
		case <-deadline:
			t.Fatal("SoftDrop command never took effect")
		case <-time.After(time.Millisecond):
		}
	}
}

func TestLoopFinishesOnGameOver(t *testing.T) {
	// A 2x2 board tops out within a few drops.
	g, err := NewGame(2, 2, 7)
	if err != nil {
		t.Fatal(err)
	}

	rec := &snapshotRecorder{}
	l := NewLoop(g, rec.record,
		WithGravityInterval(time.Millisecond),
		WithFrameInterval(time.Millisecond),
	).Start()

	select {
	case <-l.Done():
	case <-time.After(5 * time.Second):
		t.Fatal("loop did not stop after game over")
	}

	snap, ok := rec.last()
	if !ok || !snap.Over {
		t.Error("final render must show the terminal state")
	}

	// Stopping an already-finished loop is still fine.
	l.Stop()
}
