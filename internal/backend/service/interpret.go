package service

import (
	"context"
	"fmt"
	"hash/fnv"
	"log/slog"
	"strings"
	"time"

	"github.com/soloday/soloday/internal/backend/store"
)

const interpretBatchSize = 20

// InterpreterService is the background worker that turns recorded dreams
// into interpretations. It scans for unprocessed dreams on an interval and
// writes back an interpretation and a uniqueness score.
type InterpreterService struct {
	Store    store.Store
	Logger   *slog.Logger
	Interval time.Duration

	// Internal channels for lifecycle management
	stopCh chan struct{}
	doneCh chan struct{}
}

// NewInterpreterService creates the worker. If interval is 0 or negative,
// defaults to 2 seconds so clients polling for results resolve promptly.
func NewInterpreterService(store store.Store, logger *slog.Logger, interval time.Duration) *InterpreterService {
	if interval <= 0 {
		interval = 2 * time.Second
	}

	return &InterpreterService{
		Store:    store,
		Logger:   logger,
		Interval: interval,
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}
}

// Start begins the background worker. Non-blocking; call Stop to shut down.
func (s *InterpreterService) Start() {
	go s.run()
	s.Logger.Info("interpreter service started", "interval", s.Interval)
}

// Stop gracefully shuts down the background worker. Blocks until any
// in-progress batch has finished.
func (s *InterpreterService) Stop() {
	close(s.stopCh)
	<-s.doneCh
	s.Logger.Info("interpreter service stopped")
}

func (s *InterpreterService) run() {
	defer close(s.doneCh)

	ticker := time.NewTicker(s.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.processBatch()
		case <-s.stopCh:
			return
		}
	}
}

func (s *InterpreterService) processBatch() {
	ctx := context.Background()

	dreams, err := s.Store.Dreams().ListUninterpretedDreams(ctx, interpretBatchSize)
	if err != nil {
		s.Logger.Error("failed to list uninterpreted dreams", "error", err)
		return
	}

	for _, d := range dreams {
		interpretation, score := interpretContent(d.Content)
		if err := s.Store.Dreams().SetDreamInterpretation(ctx, d.ID, interpretation, score); err != nil {
			s.Logger.Error("failed to store interpretation", "dream_id", d.ID, "error", err)
			continue
		}
		s.Logger.Debug("dream interpreted", "dream_id", d.ID, "score", score)
	}
}

var dreamThemes = []string{
	"a longing for change",
	"unresolved tension seeking release",
	"a quiet confidence taking shape",
	"curiosity about an unfamiliar path",
	"a need to reconnect with someone distant",
	"ambition pressing against old habits",
	"a search for stillness in a busy season",
	"an instinct to protect what matters most",
}

// interpretContent produces a deterministic interpretation and uniqueness
// score from the dream text. Deterministic so reprocessing after a crash
// yields the same result.
func interpretContent(content string) (string, int) {
	h := fnv.New64a()
	h.Write([]byte(content))
	sum := h.Sum64()

	theme := dreamThemes[sum%uint64(len(dreamThemes))]
	score := int(sum%100) + 1

	words := len(strings.Fields(content))
	return fmt.Sprintf(
		"This dream reflects %s. The %d-word account suggests it has been on your mind for a while, and only %d in 100 people dream along these lines.",
		theme, words, score,
	), score
}
