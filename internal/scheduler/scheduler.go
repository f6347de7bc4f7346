package scheduler

import (
	"log"
	"time"

	"escape-game-backend/internal/storage"

	"github.com/robfig/cron/v3"
)

// retainFinished is how long finished rooms stay around before the nightly
// prune removes them.
const retainFinished = 30 * 24 * time.Hour

// Scheduler runs the periodic maintenance jobs.
type Scheduler struct {
	cron  *cron.Cron
	store storage.Store
}

func New(store storage.Store) *Scheduler {
	return &Scheduler{cron: cron.New(), store: store}
}

func (s *Scheduler) Start() {
	_, err := s.cron.AddFunc("0 4 * * *", func() {
		removed, err := s.store.PruneFinished(time.Now().UTC().Add(-retainFinished))
		if err != nil {
			log.Printf("scheduler: prune failed: %v", err)
			return
		}
		if removed > 0 {
			log.Printf("scheduler: pruned %d finished rooms", removed)
		}
	})
	if err != nil {
		log.Fatalf("scheduler: failed to register jobs: %v", err)
	}

	s.cron.Start()
	log.Println("scheduler started")
}

func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	log.Println("scheduler stopped")
}
