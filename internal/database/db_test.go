package database

import (
	"database/sql"
	"testing"

	"sms-tagger/internal/sms"
)

func testDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(":memory:")
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func TestMessageStoreRoundTrip(t *testing.T) {
	db := testDB(t)

	msg := sms.Message{
		Sender:     "95311",
		Content:    "【中通快递】取件码：1234",
		ReceivedAt: "2024-01-15 10:30:00",
	}
	if err := db.Messages.Create(&msg); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if msg.ID == 0 {
		t.Fatal("Create did not assign an ID")
	}

	got, err := db.Messages.GetByID(msg.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if got.Sender != msg.Sender || got.Content != msg.Content || got.ReceivedAt != msg.ReceivedAt {
		t.Errorf("GetByID = %+v, want %+v", got.Message, msg)
	}
	if got.Category != "" || got.Tags != "" {
		t.Errorf("new message must start unlabeled, got category %q tags %q", got.Category, got.Tags)
	}
}

func TestMessageStoreCreateBatch(t *testing.T) {
	db := testDB(t)

	messages := []sms.Message{
		{Sender: "95311", Content: "a", ReceivedAt: "2024-01-15 10:00:00"},
		{Sender: "95338", Content: "b", ReceivedAt: "2024-01-15 11:00:00"},
		{Sender: "10684", Content: "c", ReceivedAt: "2024-01-15 12:00:00"},
	}

	n, err := db.Messages.CreateBatch(messages)
	if err != nil {
		t.Fatalf("CreateBatch failed: %v", err)
	}
	if n != 3 {
		t.Errorf("imported %d, want 3", n)
	}
	for i, m := range messages {
		if m.ID == 0 {
			t.Errorf("messages[%d] has no ID", i)
		}
	}

	count, err := db.Messages.Count()
	if err != nil {
		t.Fatalf("Count failed: %v", err)
	}
	if count != 3 {
		t.Errorf("Count = %d, want 3", count)
	}
}

func TestMessagesOrderedOldestFirst(t *testing.T) {
	db := testDB(t)

	_, err := db.Messages.CreateBatch([]sms.Message{
		{Sender: "a", Content: "newest", ReceivedAt: "2024-01-15 12:00:00"},
		{Sender: "b", Content: "oldest", ReceivedAt: "2024-01-15 10:00:00"},
	})
	if err != nil {
		t.Fatalf("CreateBatch failed: %v", err)
	}

	messages, err := db.Messages.Messages()
	if err != nil {
		t.Fatalf("Messages failed: %v", err)
	}
	if len(messages) != 2 {
		t.Fatalf("got %d messages, want 2", len(messages))
	}
	if messages[0].Content != "oldest" || messages[1].Content != "newest" {
		t.Errorf("order = [%s %s], want [oldest newest]", messages[0].Content, messages[1].Content)
	}
}

func TestMessageLabels(t *testing.T) {
	db := testDB(t)

	msg := sms.Message{Sender: "95311", Content: "包裹", ReceivedAt: "2024-01-15 10:00:00"}
	if err := db.Messages.Create(&msg); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	unlabeled, err := db.Messages.GetUnlabeled(10)
	if err != nil {
		t.Fatalf("GetUnlabeled failed: %v", err)
	}
	if len(unlabeled) != 1 {
		t.Fatalf("got %d unlabeled, want 1", len(unlabeled))
	}

	if err := db.Messages.SetLabels(msg.ID, sms.CategoryExpress, `[{"tag_name":"t"}]`); err != nil {
		t.Fatalf("SetLabels failed: %v", err)
	}

	unlabeled, err = db.Messages.GetUnlabeled(10)
	if err != nil {
		t.Fatalf("GetUnlabeled failed: %v", err)
	}
	if len(unlabeled) != 0 {
		t.Errorf("got %d unlabeled after labeling, want 0", len(unlabeled))
	}

	express, err := db.Messages.GetAll("express")
	if err != nil {
		t.Fatalf("GetAll failed: %v", err)
	}
	if len(express) != 1 || express[0].Tags != `[{"tag_name":"t"}]` {
		t.Errorf("GetAll(express) = %+v", express)
	}

	if err := db.Messages.SetLabels(99999, sms.CategoryExpress, ""); err != sql.ErrNoRows {
		t.Errorf("SetLabels on missing row = %v, want sql.ErrNoRows", err)
	}
}

func TestLatestFingerprint(t *testing.T) {
	db := testDB(t)

	ts, id, err := db.Messages.LatestFingerprint()
	if err != nil {
		t.Fatalf("LatestFingerprint failed: %v", err)
	}
	if ts != "" || id != 0 {
		t.Errorf("empty table fingerprint = (%q, %d), want zero values", ts, id)
	}

	messages := []sms.Message{
		{Sender: "a", Content: "x", ReceivedAt: "2024-01-15 10:00:00"},
		{Sender: "b", Content: "y", ReceivedAt: "2024-01-15 12:00:00"},
	}
	if _, err := db.Messages.CreateBatch(messages); err != nil {
		t.Fatalf("CreateBatch failed: %v", err)
	}

	ts, id, err = db.Messages.LatestFingerprint()
	if err != nil {
		t.Fatalf("LatestFingerprint failed: %v", err)
	}
	if ts != "2024-01-15 12:00:00" {
		t.Errorf("latest timestamp = %q, want newest", ts)
	}
	if id != messages[1].ID {
		t.Errorf("latest ID = %d, want %d", id, messages[1].ID)
	}
}

func TestRuleStoreCRUD(t *testing.T) {
	db := testDB(t)

	rule := sms.Rule{
		Name:          "unit-code",
		TagName:       "unit",
		Type:          sms.RuleTypeContent,
		Condition:     "单位码",
		ExtractAnchor: "单位码",
		ExtractLength: 4,
		Enabled:       true,
		Priority:      5,
	}
	if err := db.Rules.Create(&rule); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if rule.ID == 0 {
		t.Fatal("Create did not assign an ID")
	}

	got, err := db.Rules.GetByID(rule.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if *got != rule {
		t.Errorf("GetByID = %+v, want %+v", got, rule)
	}

	rule.Priority = 9
	if err := db.Rules.Update(rule.ID, &rule); err != nil {
		t.Fatalf("Update failed: %v", err)
	}

	if err := db.Rules.SetEnabled(rule.ID, false); err != nil {
		t.Fatalf("SetEnabled failed: %v", err)
	}
	got, err = db.Rules.GetByID(rule.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if got.Enabled || got.Priority != 9 {
		t.Errorf("after update: %+v", got)
	}

	if err := db.Rules.Delete(rule.ID); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if err := db.Rules.Delete(rule.ID); err != sql.ErrNoRows {
		t.Errorf("second Delete = %v, want sql.ErrNoRows", err)
	}
}

func TestRulesOrderedByPriority(t *testing.T) {
	db := testDB(t)

	for i, p := range []int{1, 10, 5} {
		rule := sms.Rule{
			Name:          "r",
			TagName:       "t",
			Type:          sms.RuleTypeContent,
			Condition:     "c",
			ExtractAnchor: "a",
			ExtractLength: 1 + i,
			Priority:      p,
			Enabled:       true,
		}
		if err := db.Rules.Create(&rule); err != nil {
			t.Fatalf("Create failed: %v", err)
		}
	}

	rules, err := db.Rules.Rules()
	if err != nil {
		t.Fatalf("Rules failed: %v", err)
	}
	if len(rules) != 3 {
		t.Fatalf("got %d rules, want 3", len(rules))
	}
	if rules[0].Priority != 10 || rules[1].Priority != 5 || rules[2].Priority != 1 {
		t.Errorf("priorities = [%d %d %d], want [10 5 1]",
			rules[0].Priority, rules[1].Priority, rules[2].Priority)
	}
}

func TestStatusStore(t *testing.T) {
	db := testDB(t)

	picked, err := db.Status.IsPicked("1234")
	if err != nil {
		t.Fatalf("IsPicked failed: %v", err)
	}
	if picked {
		t.Error("unknown code must not be picked")
	}

	if err := db.Status.MarkPicked("1234"); err != nil {
		t.Fatalf("MarkPicked failed: %v", err)
	}
	// Marking twice is a no-op, not an error.
	if err := db.Status.MarkPicked("1234"); err != nil {
		t.Fatalf("second MarkPicked failed: %v", err)
	}

	picked, err = db.Status.IsPicked("1234")
	if err != nil {
		t.Fatalf("IsPicked failed: %v", err)
	}
	if !picked {
		t.Error("marked code must be picked")
	}

	codes, err := db.Status.PickedCodes()
	if err != nil {
		t.Fatalf("PickedCodes failed: %v", err)
	}
	if len(codes) != 1 || codes[0] != "1234" {
		t.Errorf("PickedCodes = %v, want [1234]", codes)
	}

	if err := db.Status.UnmarkPicked("1234"); err != nil {
		t.Fatalf("UnmarkPicked failed: %v", err)
	}
	picked, err = db.Status.IsPicked("1234")
	if err != nil {
		t.Fatalf("IsPicked failed: %v", err)
	}
	if picked {
		t.Error("unmarked code must not be picked")
	}
}
