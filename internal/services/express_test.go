package services

import (
	"errors"
	"testing"
	"time"

	"sms-tagger/internal/cache"
	"sms-tagger/internal/sms"
)

type fakeRepo struct {
	messages        []sms.Message
	latestTimestamp string
	latestID        int64
	messagesCalls   int
	err             error
}

func (f *fakeRepo) Messages() ([]sms.Message, error) {
	f.messagesCalls++
	if f.err != nil {
		return nil, f.err
	}
	return f.messages, nil
}

func (f *fakeRepo) LatestFingerprint() (string, int64, error) {
	if f.err != nil {
		return "", 0, f.err
	}
	return f.latestTimestamp, f.latestID, nil
}

type fakeStatus struct {
	picked map[string]bool
	err    error
}

func newFakeStatus() *fakeStatus {
	return &fakeStatus{picked: make(map[string]bool)}
}

func (f *fakeStatus) IsPicked(code string) (bool, error) {
	if f.err != nil {
		return false, f.err
	}
	return f.picked[code], nil
}

func (f *fakeStatus) MarkPicked(code string) error {
	if f.err != nil {
		return f.err
	}
	f.picked[code] = true
	return nil
}

func (f *fakeStatus) UnmarkPicked(code string) error {
	if f.err != nil {
		return f.err
	}
	delete(f.picked, code)
	return nil
}

func pickupMessage() sms.Message {
	return sms.Message{
		ID:         1,
		Sender:     "95311",
		Content:    "【中通快递】您的包裹已到幸福小区菜鸟驿站，取件码：1234，请及时领取。",
		ReceivedAt: "2024-01-15 10:30:00",
	}
}

func TestRecordsExtractsFromMessages(t *testing.T) {
	repo := &fakeRepo{
		messages:        []sms.Message{pickupMessage()},
		latestTimestamp: "2024-01-15 10:30:00",
		latestID:        1,
	}
	svc := NewExpressService(repo, newFakeStatus(), nil)

	records, err := svc.Records()
	if err != nil {
		t.Fatalf("Records failed: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("got %d records, want 1", len(records))
	}
	if records[0].PickupCode != "1234" {
		t.Errorf("PickupCode = %q, want 1234", records[0].PickupCode)
	}
	if records[0].Status != sms.StatusPending {
		t.Errorf("Status = %q, want pending", records[0].Status)
	}
}

func TestRecordsReusesCachedSnapshot(t *testing.T) {
	repo := &fakeRepo{
		messages:        []sms.Message{pickupMessage()},
		latestTimestamp: "2024-01-15 10:30:00",
		latestID:        1,
	}
	svc := NewExpressService(repo, newFakeStatus(), cache.New(time.Minute))

	for i := 0; i < 3; i++ {
		if _, err := svc.Records(); err != nil {
			t.Fatalf("Records call %d failed: %v", i, err)
		}
	}
	if repo.messagesCalls != 1 {
		t.Errorf("messages loaded %d times, want 1 (cached)", repo.messagesCalls)
	}
}

func TestRecordsReExtractsOnFingerprintChange(t *testing.T) {
	repo := &fakeRepo{
		messages:        []sms.Message{pickupMessage()},
		latestTimestamp: "2024-01-15 10:30:00",
		latestID:        1,
	}
	svc := NewExpressService(repo, newFakeStatus(), cache.New(time.Minute))

	if _, err := svc.Records(); err != nil {
		t.Fatalf("Records failed: %v", err)
	}

	repo.latestTimestamp = "2024-01-15 11:00:00"
	repo.latestID = 2
	if _, err := svc.Records(); err != nil {
		t.Fatalf("Records failed: %v", err)
	}
	if repo.messagesCalls != 2 {
		t.Errorf("messages loaded %d times, want 2 after new message arrived", repo.messagesCalls)
	}
}

func TestRecordsWithoutCacheAlwaysExtracts(t *testing.T) {
	repo := &fakeRepo{messages: []sms.Message{pickupMessage()}}
	svc := NewExpressService(repo, newFakeStatus(), nil)

	for i := 0; i < 2; i++ {
		if _, err := svc.Records(); err != nil {
			t.Fatalf("Records call %d failed: %v", i, err)
		}
	}
	if repo.messagesCalls != 2 {
		t.Errorf("messages loaded %d times, want 2 (no cache)", repo.messagesCalls)
	}
}

func TestPickedOverlay(t *testing.T) {
	repo := &fakeRepo{
		messages:        []sms.Message{pickupMessage()},
		latestTimestamp: "2024-01-15 10:30:00",
		latestID:        1,
	}
	status := newFakeStatus()
	svc := NewExpressService(repo, status, cache.New(time.Minute))

	if err := svc.MarkPicked("1234"); err != nil {
		t.Fatalf("MarkPicked failed: %v", err)
	}
	records, err := svc.Records()
	if err != nil {
		t.Fatalf("Records failed: %v", err)
	}
	if records[0].Status != sms.StatusPicked {
		t.Errorf("Status = %q, want picked", records[0].Status)
	}

	// Unmarking shows up on the next read without invalidating the snapshot.
	if err := svc.UnmarkPicked("1234"); err != nil {
		t.Fatalf("UnmarkPicked failed: %v", err)
	}
	records, err = svc.Records()
	if err != nil {
		t.Fatalf("Records failed: %v", err)
	}
	if records[0].Status != sms.StatusPending {
		t.Errorf("Status after unmark = %q, want pending", records[0].Status)
	}
	if repo.messagesCalls != 1 {
		t.Errorf("overlay forced %d extractions, want 1", repo.messagesCalls)
	}
}

func TestOverlayStatusErrorKeepsTextStatus(t *testing.T) {
	repo := &fakeRepo{messages: []sms.Message{pickupMessage()}}
	status := newFakeStatus()
	status.err = errors.New("status store offline")
	svc := NewExpressService(repo, status, nil)

	records, err := svc.Records()
	if err != nil {
		t.Fatalf("Records failed: %v", err)
	}
	if records[0].Status != sms.StatusPending {
		t.Errorf("Status = %q, want pending when the status check fails", records[0].Status)
	}
}

func TestRefreshDropsSnapshot(t *testing.T) {
	repo := &fakeRepo{
		messages:        []sms.Message{pickupMessage()},
		latestTimestamp: "2024-01-15 10:30:00",
		latestID:        1,
	}
	svc := NewExpressService(repo, newFakeStatus(), cache.New(time.Minute))

	if _, err := svc.Records(); err != nil {
		t.Fatalf("Records failed: %v", err)
	}
	svc.Refresh()
	if _, err := svc.Records(); err != nil {
		t.Fatalf("Records failed: %v", err)
	}
	if repo.messagesCalls != 2 {
		t.Errorf("messages loaded %d times, want 2 after Refresh", repo.messagesCalls)
	}
}

func TestGroupedByDate(t *testing.T) {
	freshness := cache.New(time.Minute)
	freshness.Update([]sms.ExpressRecord{
		{PickupCode: "a1", Date: "2024-01-14", Status: sms.StatusPending},
		{PickupCode: "b1", Date: "2024-01-15", Status: sms.StatusPending},
		{PickupCode: "b2", Date: "2024-01-15", Status: sms.StatusPending},
	}, "2024-01-15 10:30:00", 3)

	repo := &fakeRepo{latestTimestamp: "2024-01-15 10:30:00", latestID: 3}
	svc := NewExpressService(repo, newFakeStatus(), freshness)

	groups, err := svc.GroupedByDate()
	if err != nil {
		t.Fatalf("GroupedByDate failed: %v", err)
	}
	if len(groups) != 2 {
		t.Fatalf("got %d groups, want 2", len(groups))
	}
	if groups[0].Date != "2024-01-15" || groups[0].Count != 2 {
		t.Errorf("groups[0] = %s/%d, want 2024-01-15/2", groups[0].Date, groups[0].Count)
	}
	if groups[1].Date != "2024-01-14" || groups[1].Count != 1 {
		t.Errorf("groups[1] = %s/%d, want 2024-01-14/1", groups[1].Date, groups[1].Count)
	}
	if groups[0].Records[0].PickupCode != "b1" || groups[0].Records[1].PickupCode != "b2" {
		t.Errorf("extraction order not preserved inside group: %+v", groups[0].Records)
	}
}

func TestRecordsRepoError(t *testing.T) {
	repo := &fakeRepo{err: errors.New("db closed")}
	svc := NewExpressService(repo, newFakeStatus(), nil)

	if _, err := svc.Records(); err == nil {
		t.Fatal("expected error from failing repo")
	}
}
