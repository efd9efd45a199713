package engine

import (
	"context"
	"time"

	"github.com/gdamore/tcell/v2"
	"go.uber.org/zap"

	"github.com/yR-DEV/space-invaders/core"
	"github.com/yR-DEV/space-invaders/input"
	"github.com/yR-DEV/space-invaders/render"
)

// eventBuffer absorbs autorepeat bursts between frames
const eventBuffer = 256

// Loop drives a game from terminal events and a frame ticker
type Loop struct {
	Screen    tcell.Screen
	Stack     *render.Stack
	Game      *Game
	Scheduler *FrameScheduler
	Keys      *input.KeyTable
	Clock     TimeProvider
	Log       *zap.Logger
}

// Run blocks until quit is requested or ctx is done
// The screen must be initialized; PollEvent runs on its own goroutine and exits when the screen is finalized
func (l *Loop) Run(ctx context.Context) error {
	if l.Clock == nil {
		l.Clock = NewMonotonicTimeProvider()
	}
	if l.Log == nil {
		l.Log = zap.NewNop()
	}

	events := make(chan tcell.Event, eventBuffer)
	done := make(chan struct{})
	defer close(done)

	core.Go(func() {
		for {
			ev := l.Screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-done:
				return
			}
		}
	})

	ticker := time.NewTicker(l.Scheduler.Interval())
	defer ticker.Stop()

	l.Game.Start(l.Scheduler)
	l.Stack.Present()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case ev := <-events:
			if !l.handleEvent(ev) {
				l.Log.Info("quit requested", zap.Int("score", l.Game.Score()))
				return nil
			}

		case <-ticker.C:
			if l.Scheduler.Tick() {
				l.Stack.Present()
			}
		}
	}
}

// handleEvent returns false when the loop must stop
func (l *Loop) handleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		cmd := l.Game.Input().HandleKey(l.Keys, ev, l.Clock.Now())
		if cmd == input.CommandQuit {
			return false
		}
		if cmd != input.CommandNone {
			l.Game.HandleCommand(cmd)
			l.Stack.Present()
		}

	case *tcell.EventResize:
		w, h := ev.Size()
		l.Stack.Resize(w, h)
		l.Stack.Present()
		l.Log.Debug("screen resized", zap.Int("width", w), zap.Int("height", h))
	}
	return true
}
