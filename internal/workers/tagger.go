package workers

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"sms-tagger/internal/classifier"
	"sms-tagger/internal/config"
	"sms-tagger/internal/database"
	"sms-tagger/internal/rules"
	"sms-tagger/internal/sms"
)

// Tagger labels imported messages in the background: each message gets a
// category from the classifier and whatever tags the user rules extract.
type Tagger struct {
	ctx      context.Context
	cancel   context.CancelFunc
	config   *config.Config
	messages *database.MessageStore
	rules    *database.RuleStore
	paused   atomic.Bool
	logger   *slog.Logger
}

// NewTagger creates a new background tagger
func NewTagger(cfg *config.Config, messages *database.MessageStore, ruleStore *database.RuleStore, logger *slog.Logger) *Tagger {
	ctx, cancel := context.WithCancel(context.Background())
	return &Tagger{
		ctx:      ctx,
		cancel:   cancel,
		config:   cfg,
		messages: messages,
		rules:    ruleStore,
		logger:   logger,
	}
}

// Start begins the background tagging loop
func (t *Tagger) Start() {
	if !t.config.WorkerEnabled {
		t.logger.Info("Background tagging is disabled, skipping")
		return
	}

	t.logger.Info("Starting background tagger",
		"interval", t.config.WorkerInterval,
		"batch_size", t.config.WorkerBatchSize,
		"workers", t.config.WorkerCount)

	go t.tagLoop()
}

// Stop gracefully stops the background tagging loop
func (t *Tagger) Stop() {
	t.logger.Info("Stopping background tagger")
	t.cancel()
}

// Pause temporarily pauses tagging cycles
func (t *Tagger) Pause() {
	t.paused.Store(true)
	t.logger.Info("Background tagger paused")
}

// Resume resumes tagging cycles
func (t *Tagger) Resume() {
	t.paused.Store(false)
	t.logger.Info("Background tagger resumed")
}

// tagLoop is the main background loop that performs periodic tagging
func (t *Tagger) tagLoop() {
	ticker := time.NewTicker(t.config.WorkerInterval)
	defer ticker.Stop()

	// Perform an initial pass shortly after startup
	initialDelay := time.NewTimer(5 * time.Second)
	defer initialDelay.Stop()

	for {
		select {
		case <-t.ctx.Done():
			t.logger.Info("Background tagger stopped")
			return

		case <-initialDelay.C:
			t.ProcessBatch()

		case <-ticker.C:
			t.ProcessBatch()
		}
	}
}

// ProcessBatch labels one batch of unclassified messages. It is exported so
// tagging can also be triggered synchronously.
func (t *Tagger) ProcessBatch() {
	if t.paused.Load() {
		t.logger.Debug("Tagging paused, skipping cycle")
		return
	}

	messages, err := t.messages.GetUnlabeled(t.config.WorkerBatchSize)
	if err != nil {
		t.logger.Error("Failed to load unlabeled messages", "error", err)
		return
	}
	if len(messages) == 0 {
		return
	}

	ruleList, err := t.rules.Rules()
	if err != nil {
		t.logger.Error("Failed to load rules", "error", err)
		return
	}

	startTime := time.Now()
	jobs := make(chan sms.Message)
	var labeled atomic.Int64

	var wg sync.WaitGroup
	for i := 0; i < t.config.WorkerCount; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for msg := range jobs {
				if t.labelMessage(msg, ruleList) {
					labeled.Add(1)
				}
			}
		}()
	}

	for _, msg := range messages {
		select {
		case <-t.ctx.Done():
			close(jobs)
			wg.Wait()
			return
		case jobs <- msg:
		}
	}
	close(jobs)
	wg.Wait()

	t.logger.Info("Completed tagging cycle",
		"messages", len(messages),
		"labeled", labeled.Load(),
		"duration", time.Since(startTime))
}

// labelMessage classifies one message and stores its rule tags
func (t *Tagger) labelMessage(msg sms.Message, ruleList []sms.Rule) bool {
	category := classifier.Classify(msg.Content)

	var tags string
	results := rules.ExecuteRules(msg.Sender, msg.Content, ruleList)
	if len(results) > 0 {
		encoded, err := json.Marshal(results)
		if err != nil {
			t.logger.Error("Failed to encode tags", "message_id", msg.ID, "error", err)
			return false
		}
		tags = string(encoded)
	}

	if err := t.messages.SetLabels(msg.ID, category, tags); err != nil {
		t.logger.Error("Failed to store labels", "message_id", msg.ID, "error", err)
		return false
	}

	return true
}
