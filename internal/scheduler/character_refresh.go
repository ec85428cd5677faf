// Package scheduler runs the periodic character refresh: previously
// imported characters are re-imported from the provider on a cron schedule.
package scheduler

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"beyondbridge/internal/database/actors"
	"beyondbridge/internal/entities"
	"beyondbridge/internal/importer"
	"beyondbridge/internal/settingsstore"
)

// CharacterRefreshScheduler re-imports stored characters through the import
// processor. Refresh runs go through the same single-run guard as
// interactive imports: if an import is active when the schedule fires, the
// refresh is skipped.
type CharacterRefreshScheduler struct {
	actors        *actors.Repository
	settingsStore *settingsstore.SettingsStore
	processor     *importer.Processor

	cron       *cron.Cron
	entryID    cron.EntryID
	mu         sync.RWMutex
	isRunning  bool
	parentCtx  context.Context
	cancelCtx  context.Context
	cancelFunc context.CancelFunc
}

// NewCharacterRefreshScheduler creates a new scheduler instance.
func NewCharacterRefreshScheduler(actorRepo *actors.Repository, settingsStore *settingsstore.SettingsStore, processor *importer.Processor) *CharacterRefreshScheduler {
	return &CharacterRefreshScheduler{
		actors:        actorRepo,
		settingsStore: settingsStore,
		processor:     processor,
		cron:          cron.New(cron.WithParser(cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow))),
	}
}

// Start begins the scheduler if the refresh is enabled.
func (s *CharacterRefreshScheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return nil
	}

	if !s.settingsStore.GetCharacterRefreshEnabled() {
		log.Printf("Character refresh scheduler: disabled")
		return nil
	}

	schedule := s.settingsStore.GetCharacterRefreshSchedule()
	if err := settingsstore.ValidateCronSchedule(schedule); err != nil {
		return fmt.Errorf("invalid cron schedule '%s': %w", schedule, err)
	}

	entryID, err := s.cron.AddFunc(schedule, func() {
		s.runRefresh()
	})
	if err != nil {
		return fmt.Errorf("failed to schedule refresh job: %w", err)
	}
	s.entryID = entryID

	if ctx == nil {
		ctx = context.Background()
	}
	s.parentCtx = ctx

	cancelCtx, cancel := context.WithCancel(ctx)
	s.cancelCtx = cancelCtx
	s.cancelFunc = cancel

	s.cron.Start()
	s.isRunning = true

	nextRun, _ := settingsstore.GetNextRunTime(schedule)
	log.Printf("Character refresh scheduler: started with schedule '%s'. Next run: %v", schedule, nextRun)

	go func() {
		<-cancelCtx.Done()
		// Stop only the run this goroutine belongs to; a Reschedule may
		// have replaced it already.
		s.mu.RLock()
		current := s.cancelCtx == cancelCtx
		s.mu.RUnlock()
		if current {
			s.Stop()
		}
	}()

	return nil
}

// Stop gracefully stops the scheduler.
func (s *CharacterRefreshScheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.isRunning {
		return
	}

	ctx := s.cron.Stop()
	<-ctx.Done()

	s.isRunning = false
	if s.cancelFunc != nil {
		s.cancelFunc()
		s.cancelFunc = nil
		s.cancelCtx = nil
	}

	log.Printf("Character refresh scheduler: stopped")
}

// Reschedule restarts the scheduler so settings changes take effect.
func (s *CharacterRefreshScheduler) Reschedule() error {
	s.mu.Lock()
	wasRunning := s.isRunning
	parent := s.parentCtx
	s.mu.Unlock()

	if wasRunning {
		s.Stop()
	}
	if parent == nil {
		parent = context.Background()
	}
	return s.Start(parent)
}

// RunNow triggers an immediate refresh.
func (s *CharacterRefreshScheduler) RunNow() error {
	go s.runRefresh()
	return nil
}

// IsRunning returns whether the scheduler is active.
func (s *CharacterRefreshScheduler) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.isRunning
}

// GetNextRunTime returns when the next refresh will occur.
func (s *CharacterRefreshScheduler) GetNextRunTime() *time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.isRunning {
		return nil
	}

	for _, entry := range s.cron.Entries() {
		if entry.ID == s.entryID {
			t := entry.Next
			return &t
		}
	}
	return nil
}

// runRefresh re-imports every stored character with overwrite enabled.
func (s *CharacterRefreshScheduler) runRefresh() {
	if !s.settingsStore.GetCharacterRefreshEnabled() {
		log.Printf("Character refresh: skipped (disabled)")
		return
	}

	if !s.settingsStore.HasCobaltCookie() {
		log.Printf("Character refresh: skipped (Cobalt cookie not configured)")
		return
	}

	stored, err := s.actors.All()
	if err != nil {
		log.Printf("Character refresh: failed to list actors: %v", err)
		return
	}
	if len(stored) == 0 {
		log.Printf("Character refresh: no imported characters")
		return
	}

	selections := make([]importer.Selection, 0, len(stored))
	for _, actor := range stored {
		selections = append(selections, importer.Selection{
			ID:   actor.ProviderID,
			Kind: entities.ContentKindCharacter,
		})
	}

	queue, err := s.processor.Enqueue(selections, true)
	if err != nil {
		log.Printf("Character refresh: %v", err)
		return
	}

	log.Printf("Character refresh: re-importing %d characters", len(selections))
	startTime := time.Now()

	result, err := s.processor.Start(context.Background(), queue)
	if err != nil {
		log.Printf("Character refresh: skipped (%v)", err)
		return
	}

	duration := time.Since(startTime)
	log.Printf("Character refresh: refreshed %d characters (%d failed) in %v",
		result.Completed, result.Failed, duration.Round(time.Millisecond))
}
