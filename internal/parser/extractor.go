// Package parser turns messages that survived the strict filter into
// structured pickup records: brand, pickup codes, location, date and
// status.
package parser

import (
	"strings"

	"sms-tagger/internal/brand"
	"sms-tagger/internal/filter"
	"sms-tagger/internal/sms"
)

const (
	stationMarker     = "菜鸟驿站"
	stationAnchor     = "凭"
	stationLabeledCue = "取件码为"
	lockerBrandMarker = "兔喜生活"
)

// ExtractAll walks a message list and produces every pickup record found.
// A message with N pickup codes yields N records that differ only in
// PickupCode. Messages rejected by the strict filter, without a brand
// match, or without any extractable code yield nothing.
func ExtractAll(messages []sms.Message) []sms.ExpressRecord {
	var records []sms.ExpressRecord
	for _, msg := range messages {
		records = append(records, Extract(msg)...)
	}
	return records
}

// Extract produces the records for a single message.
func Extract(msg sms.Message) []sms.ExpressRecord {
	if ok, _ := filter.Score(msg); !ok {
		return nil
	}

	detection := brand.Detect(msg.Sender, msg.Content)
	if detection == nil {
		return nil
	}

	codes := extractAllPickupCodes(msg.Content)
	if len(codes) == 0 {
		return nil
	}

	location := extractLocation(msg.Content)
	date := dateFromReceivedTime(msg.ReceivedAt)
	status := detectPickupStatus(msg.Content)

	records := make([]sms.ExpressRecord, 0, len(codes))
	for _, code := range codes {
		records = append(records, sms.ExpressRecord{
			Company:     detection.DisplayName,
			ExpressType: detection.Type,
			PickupCode:  code,
			Location:    location,
			Sender:      msg.Sender,
			ReceivedAt:  msg.ReceivedAt,
			FullContent: msg.Content,
			Status:      status,
			Date:        date,
		})
	}

	return records
}

// extractAllPickupCodes collects every pickup code in the content. Station
// and locker brand special cases run first; the ordered general pattern
// list is the fallback.
func extractAllPickupCodes(content string) []string {
	if strings.Contains(content, "【"+stationMarker+"】") || strings.Contains(content, "["+stationMarker+"]") {
		if codes := extractStationCodes(content); len(codes) > 0 {
			return codes
		}
	}

	if strings.Contains(content, lockerBrandMarker) {
		if codes := extractLockerCodes(content); len(codes) > 0 {
			return codes
		}
	}

	return extractGeneralCodes(content)
}

// extractStationCodes handles the station format: everything after the
// first "凭" (preferred) or "取件码为" cue is scanned for hyphenated codes,
// comma-separated values all collected. When no hyphen code is present in
// the tail, bare 4-8 digit runs are collected instead.
func extractStationCodes(content string) []string {
	var tail string
	if idx := strings.Index(content, stationAnchor); idx != -1 {
		tail = content[idx+len(stationAnchor):]
	} else if idx := strings.Index(content, stationLabeledCue); idx != -1 {
		tail = content[idx+len(stationLabeledCue):]
	} else {
		return nil
	}

	var codes []string
	for _, m := range hyphenCodePattern.FindAllStringSubmatch(tail, -1) {
		code := strings.TrimSpace(m[1])
		if code == "" || dateShapePattern.MatchString(code) {
			continue
		}
		codes = append(codes, code)
	}

	if len(codes) > 0 {
		return dedupe(codes)
	}

	var digits []string
	for _, m := range bareDigitsPattern.FindAllStringSubmatch(tail, -1) {
		digits = append(digits, strings.TrimSpace(m[1]))
	}
	return dedupe(digits)
}

// extractLockerCodes handles locker brands whose codes themselves contain
// hyphens (e.g. 00-7956): labeled form first, then the 凭 anchor, then a
// bare alphanumeric hyphen fallback.
func extractLockerCodes(content string) []string {
	var codes []string
	for _, m := range lockerLabeledPattern.FindAllStringSubmatch(content, -1) {
		if code := strings.TrimSpace(m[1]); code != "" {
			codes = append(codes, code)
		}
	}

	if len(codes) == 0 {
		for _, m := range lockerAnchoredPattern.FindAllStringSubmatch(content, -1) {
			if code := strings.TrimSpace(m[1]); code != "" {
				codes = append(codes, code)
			}
		}
	}

	if len(codes) == 0 {
		for _, m := range lockerFallbackPattern.FindAllStringSubmatch(content, -1) {
			code := strings.TrimSpace(m[1])
			if code == "" || dateShapePattern.MatchString(code) {
				continue
			}
			codes = append(codes, code)
		}
	}

	return dedupe(codes)
}

// detectPickupStatus infers the status snapshot from content keywords.
func detectPickupStatus(content string) sms.PickupStatus {
	switch {
	case strings.Contains(content, "已取") ||
		strings.Contains(content, "已领取") ||
		strings.Contains(content, "已取件"):
		return sms.StatusPicked
	case strings.Contains(content, "已过期") ||
		strings.Contains(content, "已失效") ||
		strings.Contains(content, "已超期"):
		return sms.StatusExpired
	default:
		return sms.StatusPending
	}
}

func dedupe(codes []string) []string {
	seen := make(map[string]bool, len(codes))
	out := codes[:0]
	for _, c := range codes {
		if c == "" || seen[c] {
			continue
		}
		seen[c] = true
		out = append(out, c)
	}
	return out
}
