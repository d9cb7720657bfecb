// Package rules evaluates operator-defined tagging rules against messages.
package rules

import (
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"sms-tagger/internal/sms"
)

// ExecuteRules runs every enabled, valid rule against a message and returns
// the results of the rules that matched, in descending priority order (ties
// keep input order). Non-matching rules produce no result.
func ExecuteRules(sender, content string, ruleList []sms.Rule) []sms.RuleResult {
	active := make([]sms.Rule, 0, len(ruleList))
	for _, rule := range ruleList {
		if rule.Enabled && ValidateRule(rule) {
			active = append(active, rule)
		}
	}

	sort.SliceStable(active, func(i, j int) bool {
		return active[i].Priority > active[j].Priority
	})

	results := make([]sms.RuleResult, 0, len(active))
	for _, rule := range active {
		var result *sms.RuleResult
		switch rule.Type {
		case sms.RuleTypeSender:
			result = executeSenderRule(sender, rule)
		case sms.RuleTypeContent:
			result = executeContentRule(content, rule)
		}
		if result != nil {
			results = append(results, *result)
		}
	}

	return results
}

// ValidateRule reports whether a rule is well-formed. Invalid rules are
// silently skipped by ExecuteRules; surfacing that is the caller's concern.
func ValidateRule(rule sms.Rule) bool {
	return strings.TrimSpace(rule.Name) != "" &&
		strings.TrimSpace(rule.TagName) != "" &&
		strings.TrimSpace(rule.Condition) != "" &&
		strings.TrimSpace(rule.ExtractAnchor) != "" &&
		rule.ExtractLength > 0
}

// executeSenderRule evaluates a "conditionType|keyword" condition against
// the sender. A condition without the separator never matches.
func executeSenderRule(sender string, rule sms.Rule) *sms.RuleResult {
	conditionType, keyword, ok := strings.Cut(rule.Condition, "|")
	if !ok {
		return nil
	}

	lowerSender := strings.ToLower(sender)
	lowerKeyword := strings.ToLower(keyword)

	var matched bool
	switch strings.ToLower(conditionType) {
	case "contains":
		matched = strings.Contains(lowerSender, lowerKeyword)
	case "startswith":
		matched = strings.HasPrefix(lowerSender, lowerKeyword)
	case "endswith":
		matched = strings.HasSuffix(lowerSender, lowerKeyword)
	}
	if !matched {
		return nil
	}

	return &sms.RuleResult{
		Matched:        true,
		ExtractedValue: extractValue(sender, rule.ExtractAnchor, rule.ExtractLength),
		TagName:        rule.TagName,
	}
}

func executeContentRule(content string, rule sms.Rule) *sms.RuleResult {
	if !containsFold(content, rule.Condition) {
		return nil
	}

	return &sms.RuleResult{
		Matched:        true,
		ExtractedValue: extractValue(content, rule.ExtractAnchor, rule.ExtractLength),
		TagName:        rule.TagName,
	}
}

// extractValue takes length characters after the first case-insensitive
// occurrence of the anchor, clamped to the end of the text and trimmed.
// Label separators directly after the anchor (为/是/colons/space) are
// skipped so an anchor like 单位码 extracts the value, not the connective.
// Empty when the anchor is absent; the rule still counts as matched.
func extractValue(text, anchor string, length int) string {
	if anchor == "" || length <= 0 {
		return ""
	}

	_, end := indexFold(text, anchor)
	if end == -1 || end >= len(text) {
		return ""
	}

	// Clamp by characters, not bytes, so multi-byte text extracts the
	// expected amount.
	tail := []rune(text[end:])
	for len(tail) > 0 && isLabelSeparator(tail[0]) {
		tail = tail[1:]
	}
	if length < len(tail) {
		tail = tail[:length]
	}

	return strings.TrimSpace(string(tail))
}

func isLabelSeparator(r rune) bool {
	switch r {
	case ':', '：', '为', '是', ' ', '\t':
		return true
	}
	return false
}

func containsFold(text, substr string) bool {
	start, _ := indexFold(text, substr)
	return start != -1
}

// indexFold locates the first case-insensitive occurrence of substr in text
// and returns its byte offsets in the original string. Comparing rune by
// rune keeps the offsets valid when lowercasing changes byte length
// (e.g. U+0130). Returns (-1, -1) when absent.
func indexFold(text, substr string) (start, end int) {
	if substr == "" {
		return 0, 0
	}

	for i := range text {
		j := i
		matched := true
		for _, sr := range substr {
			tr, size := utf8.DecodeRuneInString(text[j:])
			if size == 0 || unicode.ToLower(tr) != unicode.ToLower(sr) {
				matched = false
				break
			}
			j += size
		}
		if matched {
			return i, j
		}
	}

	return -1, -1
}
