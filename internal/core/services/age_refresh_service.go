package services

import (
	"context"
	"log"
	"time"

	"github.com/darickquinto0629/ulevha/internal/adapters/persistence/models"
	"github.com/darickquinto0629/ulevha/internal/adapters/persistence/repositories"

	"github.com/robfig/cron/v3"
)

// AgeRefreshService keeps the stored age column consistent with
// date_of_birth. Ages are recomputed at write time, but a resident whose
// birthday passes between writes would otherwise go stale; the nightly
// run bounds that drift to at most one day.
type AgeRefreshService struct {
	residentRepo repositories.ResidentRepository
	scheduler    *cron.Cron
}

// NewAgeRefreshService creates a new age refresh service
func NewAgeRefreshService(residentRepo repositories.ResidentRepository) *AgeRefreshService {
	return &AgeRefreshService{
		residentRepo: residentRepo,
		scheduler:    cron.New(),
	}
}

// Start schedules the nightly refresh (00:15, after birthdays roll over)
func (s *AgeRefreshService) Start() {
	if _, err := s.scheduler.AddFunc("15 0 * * *", s.RefreshAges); err != nil {
		log.Printf("⚠️ Failed to schedule age refresh: %v", err)
		return
	}
	s.scheduler.Start()
	log.Println("🚀 AgeRefreshService started (daily at 00:15)")
}

// Stop stops the scheduler
func (s *AgeRefreshService) Stop() {
	s.scheduler.Stop()
	log.Println("🛑 AgeRefreshService stopped")
}

// RefreshAges recomputes the stored age for every active resident whose
// value has drifted
func (s *AgeRefreshService) RefreshAges() {
	ctx := context.Background()

	residents, err := s.residentRepo.ListAllActive(ctx)
	if err != nil {
		log.Printf("⚠️ Age refresh: failed to list residents: %v", err)
		return
	}

	now := time.Now()
	updated := 0
	for _, resident := range residents {
		age := models.CalculateAge(resident.DateOfBirth, now)
		if age < 0 || age == resident.Age {
			continue
		}
		if err := s.residentRepo.UpdateAge(ctx, resident.ID, age); err != nil {
			log.Printf("⚠️ Age refresh: failed to update resident %d: %v", resident.ID, err)
			continue
		}
		updated++
	}

	if updated > 0 {
		log.Printf("✅ Age refresh: updated %d resident(s)", updated)
	}
}
