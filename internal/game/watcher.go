package game

import (
	"time"
)

// StartWatcher spawns the deadline watcher for a room. The spawn is
// idempotent: a room never carries more than one watcher.
func (s *Service) StartWatcher(code string) {
	ctx := s.sessions.get(code)
	if !ctx.tryAcquireWatcher() {
		return
	}
	go s.watch(code, ctx)
}

func (s *Service) watch(code string, ctx *sessionContext) {
	// Cleanup runs on every exit path: normal finish, room deletion,
	// persistence failure.
	defer func() {
		s.bridge.SetChronoColor(code, "off")
		ctx.releaseWatcher()
	}()

	lastColor := ""
	for {
		emitted, done := s.watchTick(code, ctx, lastColor)
		if emitted != "" {
			lastColor = emitted
		}
		if done {
			return
		}
		time.Sleep(s.watchInterval)
	}
}

// watchTick runs one poll of the deadline watcher: reload the room, emit the
// chrono color when it changed, and force a zero-point advancement once the
// countdown hits zero. It returns the color emitted ("" when suppressed) and
// whether the loop should stop.
func (s *Service) watchTick(code string, ctx *sessionContext, lastColor string) (string, bool) {
	r, err := s.store.GetRoom(code)
	if err != nil {
		// Room deleted or store unreachable; either way this watcher is done.
		return "", true
	}

	rem := s.Remaining(r)
	color := chronoColor(rem, r.StageDurationSec, r.IsFinished)
	if r.StartedAt == nil {
		// A host reset puts the room back to NOT_STARTED; no countdown runs.
		color = "off"
	}
	emitted := ""
	if color != lastColor {
		s.bridge.SetChronoColor(code, color)
		emitted = color
	}

	if !r.IsFinished && rem <= 0 {
		ctx.opMu.Lock()
		// Re-check under the operation lock: a submission may have advanced
		// the stage while this tick was observing the old deadline.
		fresh, err := s.store.GetRoom(code)
		if err != nil {
			ctx.opMu.Unlock()
			return emitted, true
		}
		if !fresh.IsFinished && s.Remaining(fresh) <= 0 {
			fresh.MissedCount++
			if err := s.advanceStage(fresh, ctx, 0); err != nil {
				ctx.opMu.Unlock()
				return emitted, true
			}
			s.broadcastChat(code, true, "⏰ Time is up for this puzzle. Moving to the next one.")
			s.broadcastState(fresh)
			if fresh.IsFinished {
				s.broadcastSummary(code)
				ctx.opMu.Unlock()
				return emitted, true
			}
		}
		r = fresh
		ctx.opMu.Unlock()
	}

	if r.IsFinished {
		return emitted, true
	}
	return emitted, false
}

// chronoColor derives the traffic-light color from the remaining/total ratio.
func chronoColor(remaining, duration int, finished bool) string {
	if finished {
		return "off"
	}
	if duration < 1 {
		duration = 1
	}
	ratio := float64(remaining) / float64(duration)
	switch {
	case ratio >= 0.6:
		return "green"
	case ratio >= 0.3:
		return "yellow"
	default:
		return "red"
	}
}
