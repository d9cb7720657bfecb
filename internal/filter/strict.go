// Package filter implements the strict delivery-notification filter: a
// multi-signal scoring model that decides whether a message really is a
// pickup notification before extraction output is trusted.
package filter

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"sms-tagger/internal/sms"
)

const (
	scoreBrand        = 40
	scoreEnterprise   = 20
	scoreActionWord   = 30
	scoreLocationWord = 20
	scoreCodeNearby   = 40
	scoreCodeFormat   = 20
	penaltyDigitRuns  = -30

	// Messages scoring below this are rejected regardless of how they
	// were classified.
	expressThreshold = 80

	// Radius, in characters, of the window checked for an action word
	// around a pickup-code candidate.
	proximityRadius = 15

	// More than this many standalone 4-6 digit runs signals a marketing
	// or banking blast rather than a single delivery code.
	maxDigitRuns = 2
)

var (
	carrierBrands = []string{
		"顺丰", "中通", "圆通", "韵达", "申通", "极兔", "菜鸟", "京东", "邮政", "ems",
	}

	actionWords = []string{
		"取件", "取件码", "凭码", "领取", "提货", "取货", "领取码",
	}

	locationWords = []string{
		"快递柜", "驿站", "菜鸟", "丰巢", "代收点", "柜机", "站点",
	}

	hyphenCode = regexp.MustCompile(`[0-9]+-[0-9]+-[0-9]{1,8}(?:-[0-9]+)?`)
	digitRun   = regexp.MustCompile(`[0-9]{4,6}`)
	dateShape  = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

	// Ordinary 11-digit mobile numbers never count as enterprise senders.
	mobileNumber = regexp.MustCompile(`^1[3-9]\d{9}$`)

	enterprisePatterns = []*regexp.Regexp{
		regexp.MustCompile(`^10\d{4}$`),   // 10xxxx
		regexp.MustCompile(`^1069\d{6}$`), // 1069xxxxxx
		regexp.MustCompile(`^95\d{3}$`),   // 95xxx
	}
)

// Score runs the four-signal model over a message and reports whether it is
// a trustworthy delivery notification together with the total score. The
// sender and semantic signals are mandatory: if either is absent the result
// is (false, 0) no matter what the rest of the content looks like.
func Score(msg sms.Message) (bool, int) {
	senderScore := senderSignal(msg.Sender, msg.Content)
	if senderScore == 0 {
		return false, 0
	}

	semanticScore := semanticSignal(msg.Content)
	if semanticScore == 0 {
		return false, 0
	}

	total := senderScore + semanticScore
	total += codeFormatSignal(msg.Content)
	total += digitGroupPenalty(msg.Content)

	return total >= expressThreshold, total
}

// senderSignal scores the origin of the message: +40 for a known carrier
// brand in sender or content, +20 for an enterprise short-code sender.
// Zero means neither held and the message is rejected outright.
func senderSignal(sender, content string) int {
	score := 0

	lowerSender := strings.ToLower(sender)
	lowerContent := strings.ToLower(content)
	for _, b := range carrierBrands {
		if strings.Contains(lowerSender, b) || strings.Contains(lowerContent, b) {
			score += scoreBrand
			break
		}
	}

	if isEnterpriseSender(sender) {
		score += scoreEnterprise
	}

	return score
}

func isEnterpriseSender(sender string) bool {
	if mobileNumber.MatchString(sender) {
		return false
	}

	for _, p := range enterprisePatterns {
		if p.MatchString(sender) {
			return true
		}
	}

	// Any other 106-prefixed port, and LB-prefixed virtual operators.
	if strings.HasPrefix(sender, "106") {
		return true
	}
	upper := strings.ToUpper(sender)
	return strings.HasPrefix(upper, "LB")
}

// semanticSignal requires both an action word (+30) and a scene/location
// word (+20). Missing either one zeroes the whole signal.
func semanticSignal(content string) int {
	lower := strings.ToLower(content)

	if !containsAny(lower, actionWords) {
		return 0
	}
	if !containsAny(lower, locationWords) {
		return 0
	}

	return scoreActionWord + scoreLocationWord
}

// codeFormatSignal looks for something shaped like a pickup code with an
// action word within proximityRadius characters. Hyphenated codes are
// preferred; bare 4-6 digit runs are the fallback. The first satisfying
// candidate contributes +60; further candidates add nothing.
func codeFormatSignal(content string) int {
	for _, loc := range hyphenCode.FindAllStringIndex(content, -1) {
		code := content[loc[0]:loc[1]]
		if dateShape.MatchString(code) {
			continue
		}
		if actionWordNearby(content, loc[0], loc[1]) {
			return scoreCodeNearby + scoreCodeFormat
		}
	}

	for _, loc := range digitRun.FindAllStringIndex(content, -1) {
		if actionWordNearby(content, loc[0], loc[1]) {
			return scoreCodeNearby + scoreCodeFormat
		}
	}

	return 0
}

// digitGroupPenalty counts standalone 4-6 digit runs, skipping runs inside
// hyphenated pickup codes and calendar dates. More than maxDigitRuns runs
// costs 30 points.
func digitGroupPenalty(content string) int {
	var excluded [][2]int
	for _, loc := range hyphenCode.FindAllStringIndex(content, -1) {
		// Date spans are excluded from the penalty too; their digits
		// are not candidate pickup codes.
		excluded = append(excluded, [2]int{loc[0], loc[1]})
	}

	count := 0
	for _, loc := range digitRun.FindAllStringIndex(content, -1) {
		if insideAny(loc[0], loc[1], excluded) {
			continue
		}
		count++
		if count > maxDigitRuns {
			return penaltyDigitRuns
		}
	}

	return 0
}

func insideAny(start, end int, ranges [][2]int) bool {
	for _, r := range ranges {
		if start >= r[0] && end <= r[1] {
			return true
		}
	}
	return false
}

// actionWordNearby checks a ±proximityRadius character window around the
// byte span [start,end) for an action word. The window is measured in
// runes so multi-byte text gets the same reach as ASCII.
func actionWordNearby(content string, start, end int) bool {
	windowStart := start
	for i := 0; i < proximityRadius && windowStart > 0; i++ {
		_, size := utf8.DecodeLastRuneInString(content[:windowStart])
		windowStart -= size
	}

	windowEnd := end
	for i := 0; i < proximityRadius && windowEnd < len(content); i++ {
		_, size := utf8.DecodeRuneInString(content[windowEnd:])
		windowEnd += size
	}

	window := strings.ToLower(content[windowStart:windowEnd])
	return containsAny(window, actionWords)
}

func containsAny(text string, words []string) bool {
	for _, w := range words {
		if strings.Contains(text, w) {
			return true
		}
	}
	return false
}
