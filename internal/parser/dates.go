package parser

import (
	"fmt"
	"regexp"
	"time"
)

var (
	fullDatePattern = regexp.MustCompile(`(\d{4})[-年](\d{1,2})[-月](\d{1,2})`)

	// 凭6-4-1006: the first two numbers of a station code double as a
	// month-day hint in some templates; the year is the current one.
	stationDatePattern = regexp.MustCompile(`凭\s*([0-9]+)-([0-9]+)-[0-9]+`)

	// 货2-4-2029: legacy shelf codes encode month-day-year.
	legacyDatePattern = regexp.MustCompile(`货(\d+)-(\d+)-(\d+)`)

	shortDatePatterns = []*regexp.Regexp{
		regexp.MustCompile(`(\d{1,2})[-月](\d{1,2})`),
		regexp.MustCompile(`(\d{1,2})日`),
		regexp.MustCompile(`(今天|明天|后天)`),
	}
)

// dateFromReceivedTime truncates an ISO-like timestamp to its date part.
func dateFromReceivedTime(receivedAt string) string {
	if len(receivedAt) >= 10 {
		return receivedAt[:10]
	}
	return receivedAt
}

// ExtractDisplayDate pulls a human-facing date out of content. Precedence:
// full date, station 凭-code month-day (current year), legacy 货-code
// month-day-year, then short and relative forms. Empty string when nothing
// matches.
func ExtractDisplayDate(content string) string {
	if m := fullDatePattern.FindStringSubmatch(content); m != nil {
		return fmt.Sprintf("%s-%s-%s", m[1], m[2], m[3])
	}

	if m := stationDatePattern.FindStringSubmatch(content); m != nil {
		return fmt.Sprintf("%d-%s-%s", time.Now().Year(), m[1], m[2])
	}

	if m := legacyDatePattern.FindStringSubmatch(content); m != nil {
		return fmt.Sprintf("%s-%s-%s", m[3], m[1], m[2])
	}

	for _, pattern := range shortDatePatterns {
		if m := pattern.FindString(content); m != "" {
			return m
		}
	}

	return ""
}
