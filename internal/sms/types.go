package sms

// Message represents a raw SMS as delivered by a message source.
// Messages are read-only inputs; classification and extraction are pure
// functions of them.
type Message struct {
	ID          int64  `json:"id,omitempty"`
	Sender      string `json:"sender"`
	Content     string `json:"content"`
	ReceivedAt  string `json:"received_at"` // ISO-like timestamp, e.g. 2025-11-05T12:42:25
	PhoneNumber string `json:"phone_number,omitempty"`
}

// Category is the single label assigned to a message.
type Category string

const (
	CategoryVerificationCode Category = "verification_code"
	CategoryExpress          Category = "express"
	CategoryBank             Category = "bank"
	CategoryMarketing        Category = "marketing"
	CategoryNotification     Category = "notification"
	CategoryUnknown          Category = "unknown"
)

// PickupStatus is a point-in-time inference from message text, not a live
// status. Callers track actual pickup state against the pickup code.
type PickupStatus string

const (
	StatusPending PickupStatus = "pending"
	StatusPicked  PickupStatus = "picked"
	StatusExpired PickupStatus = "expired"
)

// ExpressRecord is one extracted pickup entry. A single message may yield
// several records (one per pickup code); sibling records share every field
// except PickupCode.
type ExpressRecord struct {
	Company     string       `json:"company"`
	ExpressType string       `json:"express_type"`
	PickupCode  string       `json:"pickup_code"`
	Location    string       `json:"location,omitempty"`
	Sender      string       `json:"sender"`
	ReceivedAt  string       `json:"received_at"`
	FullContent string       `json:"full_content"`
	Status      PickupStatus `json:"status"`
	Date        string       `json:"date"`
}

// RuleType selects which part of a message a rule is matched against.
type RuleType string

const (
	RuleTypeSender  RuleType = "sender"
	RuleTypeContent RuleType = "content"
)

// Rule is an operator-authored tagging rule. The engine never creates or
// mutates rules; it only evaluates them.
//
// For sender rules Condition is encoded as "conditionType|keyword" where
// conditionType is one of contains, startsWith, endsWith. For content rules
// Condition is a plain substring.
type Rule struct {
	ID            int64    `json:"id"`
	Name          string   `json:"name"`
	TagName       string   `json:"tag_name"`
	Type          RuleType `json:"type"`
	Condition     string   `json:"condition"`
	ExtractAnchor string   `json:"extract_anchor"`
	ExtractLength int      `json:"extract_length"`
	Enabled       bool     `json:"enabled"`
	Priority      int      `json:"priority"`
}

// RuleResult is the outcome of one matched rule. Rules that did not match
// produce no result at all.
type RuleResult struct {
	Matched        bool   `json:"matched"`
	ExtractedValue string `json:"extracted_value"`
	TagName        string `json:"tag_name"`
}

// DateGroup is a date-bucketed view over extracted records, newest date
// first, used by list surfaces.
type DateGroup struct {
	Date    string          `json:"date"`
	Count   int             `json:"count"`
	Records []ExpressRecord `json:"records"`
}
