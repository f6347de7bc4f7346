package game

import "sync"

// SummaryItem is one debrief entry of the end-of-mission recap.
type SummaryItem struct {
	Stage   int    `json:"stage"`
	Title   string `json:"title"`
	Debrief string `json:"debrief"`
}

// sessionContext holds the process-local, non-persisted trackers for one
// room: hint usage, fail count, the per-stage score breakdown and the debrief
// log. Hint and fail counters are keyed to a stage index and self-heal: any
// read against a different stage resets them first, so a stale context after
// a restart or an external stage transition can never leak counts across
// stages.
type sessionContext struct {
	// opMu serializes state transitions for the room (submission handler
	// vs. watcher tick). Snapshot reads only take mu.
	opMu sync.Mutex

	mu        sync.Mutex
	hintStage int
	hintsUsed int
	failStage int
	failCount int
	byStage   []int
	total     int
	summary   []SummaryItem
	watcherOn bool
}

// Sessions owns one sessionContext per room code.
type Sessions struct {
	mu     sync.Mutex
	byRoom map[string]*sessionContext
}

func NewSessions() *Sessions {
	return &Sessions{byRoom: make(map[string]*sessionContext)}
}

func (s *Sessions) get(code string) *sessionContext {
	s.mu.Lock()
	defer s.mu.Unlock()

	ctx, ok := s.byRoom[code]
	if !ok {
		ctx = &sessionContext{}
		s.byRoom[code] = ctx
	}
	return ctx
}

func (s *Sessions) drop(code string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.byRoom, code)
}

func (c *sessionContext) repairHintsLocked(stage int) {
	if c.hintStage != stage {
		c.hintStage = stage
		c.hintsUsed = 0
	}
}

func (c *sessionContext) repairFailsLocked(stage int) {
	if c.failStage != stage {
		c.failStage = stage
		c.failCount = 0
	}
}

func (c *sessionContext) hints(stage int) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.repairHintsLocked(stage)
	return c.hintsUsed
}

func (c *sessionContext) useHint(stage int) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.repairHintsLocked(stage)
	c.hintsUsed++
	return c.hintsUsed
}

func (c *sessionContext) recordFail(stage int) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.repairFailsLocked(stage)
	c.failCount++
	return c.failCount
}

func (c *sessionContext) failsLeft(stage int) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.repairFailsLocked(stage)
	if left := MaxFailsPerStage - c.failCount; left > 0 {
		return left
	}
	return 0
}

// addPoints records points for a stage exactly once. The breakdown's length
// is the guard: earlier stages are padded with zeros, and a stage that
// already has an entry is never recorded again.
func (c *sessionContext) addPoints(stage, points int) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for len(c.byStage) < stage {
		c.byStage = append(c.byStage, 0)
	}
	if len(c.byStage) == stage {
		c.byStage = append(c.byStage, points)
		c.total += points
	}
}

func (c *sessionContext) score() (int, []int) {
	c.mu.Lock()
	defer c.mu.Unlock()

	byStage := make([]int, len(c.byStage))
	copy(byStage, c.byStage)
	return c.total, byStage
}

func (c *sessionContext) appendSummary(item SummaryItem) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.summary = append(c.summary, item)
}

func (c *sessionContext) summaryItems() []SummaryItem {
	c.mu.Lock()
	defer c.mu.Unlock()

	items := make([]SummaryItem, len(c.summary))
	copy(items, c.summary)
	return items
}

// resetStage re-keys the stage-scoped counters on a stage transition.
func (c *sessionContext) resetStage(stage int) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.hintStage = stage
	c.hintsUsed = 0
	c.failStage = stage
	c.failCount = 0
}

// resetAll clears every tracker for a fresh playthrough.
func (c *sessionContext) resetAll(stage int) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.hintStage = stage
	c.hintsUsed = 0
	c.failStage = stage
	c.failCount = 0
	c.byStage = nil
	c.total = 0
	c.summary = nil
}

// tryAcquireWatcher flips the watcher marker; false means one already runs.
func (c *sessionContext) tryAcquireWatcher() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.watcherOn {
		return false
	}
	c.watcherOn = true
	return true
}

func (c *sessionContext) releaseWatcher() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.watcherOn = false
}
