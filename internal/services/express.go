package services

import (
	"fmt"
	"log"
	"sort"

	"sms-tagger/internal/cache"
	"sms-tagger/internal/parser"
	"sms-tagger/internal/sms"
)

// MessageRepo is the slice of the message store the express service needs:
// the full message list plus the freshness fingerprint for cache checks.
type MessageRepo interface {
	Messages() ([]sms.Message, error)
	LatestFingerprint() (string, int64, error)
}

// ExpressService produces pickup records from the message archive, serving
// a cached snapshot while it is fresh and re-extracting when it is not.
type ExpressService struct {
	messages MessageRepo
	status   sms.StatusStore
	cache    *cache.Freshness
}

// NewExpressService creates a new express service. A nil cache disables
// snapshot reuse and every call re-extracts.
func NewExpressService(messages MessageRepo, status sms.StatusStore, freshness *cache.Freshness) *ExpressService {
	return &ExpressService{
		messages: messages,
		status:   status,
		cache:    freshness,
	}
}

// Records returns the current pickup records. The cached snapshot is reused
// when the store fingerprint matches and the TTL has not elapsed; the picked
// overlay is always applied fresh so marks show up immediately.
func (s *ExpressService) Records() ([]sms.ExpressRecord, error) {
	latestTimestamp, latestID, err := s.messages.LatestFingerprint()
	if err != nil {
		return nil, fmt.Errorf("failed to get message fingerprint: %w", err)
	}

	var records []sms.ExpressRecord
	if s.cache != nil {
		if cached, ok := s.cache.GetIfFresh(latestTimestamp, latestID); ok {
			records = cached
		}
	}

	if records == nil {
		messages, err := s.messages.Messages()
		if err != nil {
			return nil, fmt.Errorf("failed to load messages: %w", err)
		}

		records = parser.ExtractAll(messages)
		log.Printf("INFO: Extracted %d pickup records from %d messages", len(records), len(messages))

		if s.cache != nil {
			s.cache.Update(records, latestTimestamp, latestID)
		}
	}

	return s.applyPickedOverlay(records), nil
}

// GroupedByDate returns the current records bucketed by display date,
// newest date first. Records inside a group keep extraction order.
func (s *ExpressService) GroupedByDate() ([]sms.DateGroup, error) {
	records, err := s.Records()
	if err != nil {
		return nil, err
	}

	byDate := make(map[string][]sms.ExpressRecord)
	for _, r := range records {
		byDate[r.Date] = append(byDate[r.Date], r)
	}

	dates := make([]string, 0, len(byDate))
	for date := range byDate {
		dates = append(dates, date)
	}
	sort.Sort(sort.Reverse(sort.StringSlice(dates)))

	groups := make([]sms.DateGroup, 0, len(dates))
	for _, date := range dates {
		groups = append(groups, sms.DateGroup{
			Date:    date,
			Count:   len(byDate[date]),
			Records: byDate[date],
		})
	}

	return groups, nil
}

// MarkPicked records a pickup code as collected
func (s *ExpressService) MarkPicked(pickupCode string) error {
	if err := s.status.MarkPicked(pickupCode); err != nil {
		return fmt.Errorf("failed to mark %q picked: %w", pickupCode, err)
	}
	return nil
}

// UnmarkPicked clears a pickup code's collected mark
func (s *ExpressService) UnmarkPicked(pickupCode string) error {
	if err := s.status.UnmarkPicked(pickupCode); err != nil {
		return fmt.Errorf("failed to unmark %q: %w", pickupCode, err)
	}
	return nil
}

// Refresh drops the cached snapshot so the next read re-extracts
func (s *ExpressService) Refresh() {
	if s.cache != nil {
		s.cache.Clear()
	}
}

// applyPickedOverlay upgrades records whose code the user marked collected.
// The overlay never downgrades a status the text already states.
func (s *ExpressService) applyPickedOverlay(records []sms.ExpressRecord) []sms.ExpressRecord {
	if s.status == nil {
		return records
	}

	out := make([]sms.ExpressRecord, len(records))
	copy(out, records)
	for i := range out {
		if out[i].Status != sms.StatusPending || out[i].PickupCode == "" {
			continue
		}
		picked, err := s.status.IsPicked(out[i].PickupCode)
		if err != nil {
			log.Printf("WARN: Failed to check pickup status for %s: %v", out[i].PickupCode, err)
			continue
		}
		if picked {
			out[i].Status = sms.StatusPicked
		}
	}

	return out
}
