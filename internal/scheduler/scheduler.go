package scheduler

import (
	"fmt"
	"log"
	"time"

	"github.com/go-co-op/gocron"
)

// Broadcaster forwards the latest channel post to all subscribers
type Broadcaster interface {
	BroadcastLatest() error
}

// Scheduler runs the daily digest broadcast
type Scheduler struct {
	scheduler   *gocron.Scheduler
	broadcaster Broadcaster
	hour        int
}

// New creates a scheduler that fires the digest at the given hour of day
func New(broadcaster Broadcaster, hour int) *Scheduler {
	return &Scheduler{
		scheduler:   gocron.NewScheduler(time.UTC),
		broadcaster: broadcaster,
		hour:        hour,
	}
}

// Start begins running all scheduled tasks
func (s *Scheduler) Start() {
	at := fmt.Sprintf("%02d:00", s.hour)
	if _, err := s.scheduler.Every(1).Day().At(at).Do(s.sendDigest); err != nil {
		log.Printf("Error scheduling daily digest: %v", err)
		return
	}
	s.scheduler.StartAsync()
	log.Printf("Daily digest scheduled at %s UTC", at)
}

// Stop terminates all scheduled tasks
func (s *Scheduler) Stop() {
	s.scheduler.Stop()
}

// sendDigest forwards the latest channel post to the subscriber list
func (s *Scheduler) sendDigest() {
	if err := s.broadcaster.BroadcastLatest(); err != nil {
		log.Printf("Error sending daily digest: %v", err)
	}
}
