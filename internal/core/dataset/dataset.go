package dataset

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"github.com/retaildash/sales-backend-go/internal/core/orders"
	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// Notifier is told when a reload produced a new snapshot.
type Notifier interface {
	DatasetReloaded(version int64, records int)
}

// Service owns the in-memory order collection. The snapshot is
// immutable once published: readers get the current slice and reloads
// swap in a fresh one, so aggregation never sees a half-updated set.
type Service struct {
	path   string
	logger *logrus.Logger

	mu      sync.RWMutex
	records []orders.OrderRecord
	version int64
	loadErr error

	notifiers []Notifier
	scheduler *cron.Cron
}

// NewService creates a dataset service for the given JSON file.
func NewService(path string, logger *logrus.Logger) *Service {
	return &Service{
		path:   path,
		logger: logger,
	}
}

// Load reads and normalizes the dataset file. On failure the previous
// snapshot (if any) stays in place and the error is retained for the
// data endpoint to surface.
func (s *Service) Load() error {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		return s.fail(fmt.Errorf("failed to read dataset file: %w", err))
	}

	var records []orders.OrderRecord
	if err := json.Unmarshal(raw, &records); err != nil {
		return s.fail(fmt.Errorf("failed to parse dataset file: %w", err))
	}

	s.mu.Lock()
	s.records = records
	s.version++
	s.loadErr = nil
	version := s.version
	s.mu.Unlock()

	s.logger.WithFields(logrus.Fields{
		"path":    s.path,
		"records": len(records),
		"version": version,
	}).Info("Dataset loaded")

	for _, n := range s.notifiers {
		n.DatasetReloaded(version, len(records))
	}

	return nil
}

func (s *Service) fail(err error) error {
	s.mu.Lock()
	s.loadErr = err
	s.mu.Unlock()
	s.logger.WithError(err).Error("Dataset load failed")
	return err
}

// Reload re-reads the dataset file.
func (s *Service) Reload() error {
	return s.Load()
}

// Records returns the current snapshot. Callers must not mutate it.
func (s *Service) Records() []orders.OrderRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.records
}

// Version returns the snapshot version, bumped on each successful load.
func (s *Service) Version() int64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.version
}

// Loaded reports whether at least one load has succeeded.
func (s *Service) Loaded() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.version > 0
}

// Err returns the most recent load error, nil after a successful load.
func (s *Service) Err() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loadErr
}

// Subscribe registers a reload notifier. Not safe to call after
// StartSchedule.
func (s *Service) Subscribe(n Notifier) {
	s.notifiers = append(s.notifiers, n)
}

// StartSchedule begins periodic reloads using a cron expression.
func (s *Service) StartSchedule(spec string) error {
	if spec == "" {
		return nil
	}

	s.scheduler = cron.New()
	_, err := s.scheduler.AddFunc(spec, func() {
		if err := s.Reload(); err != nil {
			s.logger.WithError(err).Warn("Scheduled dataset reload failed")
		}
	})
	if err != nil {
		return fmt.Errorf("invalid reload schedule %q: %w", spec, err)
	}

	s.scheduler.Start()
	s.logger.WithField("schedule", spec).Info("Dataset reload schedule started")
	return nil
}

// Stop halts the reload scheduler if one is running.
func (s *Service) Stop() {
	if s.scheduler != nil {
		s.scheduler.Stop()
	}
}
