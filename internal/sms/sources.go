package sms

// MessageSource yields raw messages for the engine to process. The engine
// never mutates or re-fetches; ordering is whatever the source decides.
type MessageSource interface {
	Messages() ([]Message, error)
}

// RuleStore yields the current operator rules as a read-only snapshot.
type RuleStore interface {
	Rules() ([]Rule, error)
}

// StatusStore tracks caller-side pickup state keyed by pickup code. The
// engine itself never reads or writes persisted status; ExpressRecord.Status
// stays a text-only inference.
type StatusStore interface {
	IsPicked(pickupCode string) (bool, error)
	MarkPicked(pickupCode string) error
	UnmarkPicked(pickupCode string) error
}
