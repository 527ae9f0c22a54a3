package service

import (
	"context"
	"fmt"
	"time"

	"github.com/go-co-op/gocron"
)

// RolloverScheduler resets the today counters at local midnight so the
// dashboard reads zero before the first review of a new day.
type RolloverScheduler struct {
	scheduler *gocron.Scheduler
	study     *StudyService
}

// NewRolloverScheduler creates a scheduler running in loc.
func NewRolloverScheduler(study *StudyService, loc *time.Location) *RolloverScheduler {
	return &RolloverScheduler{
		scheduler: gocron.NewScheduler(loc),
		study:     study,
	}
}

// Start schedules the daily job and runs one rollover immediately to catch
// up with days that passed while the server was down.
func (r *RolloverScheduler) Start() error {
	r.study.Rollover(context.Background())

	if _, err := r.scheduler.Every(1).Day().At("00:00").Do(r.run); err != nil {
		return fmt.Errorf("schedule rollover: %w", err)
	}
	r.scheduler.StartAsync()
	return nil
}

// Stop terminates the scheduler.
func (r *RolloverScheduler) Stop() {
	r.scheduler.Stop()
}

func (r *RolloverScheduler) run() {
	r.study.Rollover(context.Background())
}
