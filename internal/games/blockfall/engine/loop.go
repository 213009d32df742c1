package engine

import (
	"sync"
	"sync/atomic"
	"time"
)

// Default loop timing.
const (
	DefaultGravityInterval = time.Second      // forced descent cadence
	DefaultFrameInterval   = time.Second / 60 // render cadence
)

// RenderFunc receives the full game state once per loop iteration. The host
// owns the drawing surface; the loop never renders anything itself.
type RenderFunc func(Snapshot)

type command int

const (
	cmdMoveLeft command = iota
	cmdMoveRight
	cmdSoftDrop
	cmdRotate
)

// Loop drives a Game in real time: it accumulates wall-clock time and
// applies one forced descent whenever the gravity interval elapses, applies
// input commands as they arrive, and invokes the render callback after
// every iteration. All state lives on the loop's own goroutine; the
// exported methods only post messages, so game state is never touched
// concurrently and never mutated after Stop.
type Loop struct {
	game     *Game
	interval time.Duration
	frame    time.Duration
	onRender RenderFunc

	cmds     chan command
	stop     chan struct{}
	done     chan struct{}
	started  atomic.Bool
	stopOnce sync.Once
}

// LoopOption configures a Loop.
type LoopOption func(*Loop)

// WithGravityInterval sets the forced-descent cadence.
func WithGravityInterval(d time.Duration) LoopOption {
	return func(l *Loop) {
		if d > 0 {
			l.interval = d
		}
	}
}

// WithFrameInterval sets the render cadence.
func WithFrameInterval(d time.Duration) LoopOption {
	return func(l *Loop) {
		if d > 0 {
			l.frame = d
		}
	}
}

// NewLoop creates a loop for the given game. The loop takes ownership of
// the game: once Start is called the game must not be used directly.
func NewLoop(game *Game, onRender RenderFunc, opts ...LoopOption) *Loop {
	l := &Loop{
		game:     game,
		interval: DefaultGravityInterval,
		frame:    DefaultFrameInterval,
		onRender: onRender,
		cmds:     make(chan command, 16),
		stop:     make(chan struct{}),
		done:     make(chan struct{}),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Start launches the loop goroutine and returns the loop as the control
// handle. An initial render is issued before the first tick. Start after
// Stop is a no-op.
func (l *Loop) Start() *Loop {
	if l.started.CompareAndSwap(false, true) {
		go l.run()
	}
	return l
}

// Stop halts the loop and waits for the loop goroutine to exit. It is
// idempotent: the second and later calls leave the system in the same
// stopped state as the first. Once Stop returns no further state mutation
// or render occurs, even for commands that were already posted. Must not
// be called from inside the render callback.
func (l *Loop) Stop() {
	l.stopOnce.Do(func() {
		close(l.stop)
	})
	// Claim the started flag so a concurrent or later Start cannot launch
	// the goroutine; a never-started loop is then finished outright.
	if l.started.CompareAndSwap(false, true) {
		close(l.done)
		return
	}
	<-l.done
}

// Done returns a channel closed when the loop has finished, either by Stop
// or by the game reaching its terminal state.
func (l *Loop) Done() <-chan struct{} {
	return l.done
}

// MoveLeft posts a left shift. No-op after the loop stops.
func (l *Loop) MoveLeft() { l.post(cmdMoveLeft) }

// MoveRight posts a right shift. No-op after the loop stops.
func (l *Loop) MoveRight() { l.post(cmdMoveRight) }

// SoftDrop posts a manual descent step. Resets the gravity timer exactly
// like a forced drop. No-op after the loop stops.
func (l *Loop) SoftDrop() { l.post(cmdSoftDrop) }

// Rotate posts a clockwise rotation. No-op after the loop stops.
func (l *Loop) Rotate() { l.post(cmdRotate) }

func (l *Loop) post(c command) {
	select {
	case l.cmds <- c:
	case <-l.stop:
	case <-l.done:
	}
}

func (l *Loop) run() {
	defer close(l.done)

	ticker := time.NewTicker(l.frame)
	defer ticker.Stop()

	last := time.Now()
	var elapsed time.Duration

	// Stop may have raced ahead of the goroutine launch; the post-stop
	// guarantee covers the initial render too.
	select {
	case <-l.stop:
		return
	default:
	}

	l.render()
	if l.finishIfOver() {
		return
	}

	for {
		select {
		case <-l.stop:
			return

		case c := <-l.cmds:
			switch c {
			case cmdMoveLeft:
				l.game.MoveLeft()
			case cmdMoveRight:
				l.game.MoveRight()
			case cmdRotate:
				l.game.Rotate()
			case cmdSoftDrop:
				l.game.SoftDrop()
				elapsed = 0
			}
			l.render()
			if l.finishIfOver() {
				return
			}

		case now := <-ticker.C:
			elapsed += now.Sub(last)
			last = now
			// At most one forced drop per iteration; a long stall does
			// not fast-forward the piece.
			if elapsed > l.interval {
				l.game.SoftDrop()
				elapsed = 0
			}
			l.render()
			if l.finishIfOver() {
				return
			}
		}
	}
}

// finishIfOver stops the loop after the game ends. The render of the
// terminal board has already happened in the iteration that ended it.
func (l *Loop) finishIfOver() bool {
	if !l.game.Over() {
		return false
	}
	l.stopOnce.Do(func() {
		close(l.stop)
	})
	return true
}

func (l *Loop) render() {
	if l.onRender != nil {
		l.onRender(l.game.Snapshot())
	}
}
