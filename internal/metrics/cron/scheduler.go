package cronjob

import (
	"context"
	"log"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/admetrics-hub/admetrics-backend/internal/metrics/service"
)

type Scheduler struct {
	metricsService *service.MetricsService
	cron           *cron.Cron
}

func NewScheduler(metricsService *service.MetricsService) *Scheduler {
	return &Scheduler{metricsService: metricsService}
}

// Start initializes cron tasks
func (s *Scheduler) Start() {
	c := cron.New(cron.WithSeconds())

	// (12:00 AM)
	_, err := c.AddFunc("0 0 0 * * *", func() {
		s.runNightlySweep()
	})

	if err != nil {
		log.Printf("Failed to create cron job: %v", err)
		return
	}

	log.Println("Cron scheduler started (running nightly at 12:00AM)")
	c.Start()
	s.cron = c
}

// Stop waits for a running sweep to finish before returning.
func (s *Scheduler) Stop() {
	if s.cron == nil {
		return
	}
	<-s.cron.Stop().Done()
}

func (s *Scheduler) runNightlySweep() {
	log.Println("Nightly metrics integrity sweep started...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	repaired, err := s.metricsService.RecomputeAll(ctx)
	if err != nil {
		log.Printf("Metrics sweep failed: %v", err)
		return
	}

	log.Printf("Nightly sweep completed, repaired %d rows at: %s", repaired, time.Now().Format(time.RFC1123))
}
