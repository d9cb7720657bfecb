package parser

import (
	"regexp"
	"strings"
)

// locationPatterns is tried in order; the first match wins. The 到/在 forms
// anchor on a direction word followed by a unit, store or locker keyword;
// the rest are bare fragments.
var locationPatterns = []*regexp.Regexp{
	regexp.MustCompile(`到([^，。,]*?(?:小区|楼|店|驿站|超市|便利店|快递柜)[^，。,]*)`),
	regexp.MustCompile(`在([^，。,]*?(?:小区|楼|店|驿站|超市|便利店|快递柜)[^，。,]*)`),
	regexp.MustCompile(`(菜鸟驿站[^，。,\s]{0,30})`),
	// At least one rune after 丰巢 so the 【丰巢】 brand marker is skipped.
	regexp.MustCompile(`(丰巢[^，。,\s】]{1,30})`),
	regexp.MustCompile(`(.*?超市)`),
	regexp.MustCompile(`(.*?便利店)`),
	regexp.MustCompile(`(.*?驿站)`),
	regexp.MustCompile(`(.*?快递柜)`),
}

var claimPrefixPattern = regexp.MustCompile(`您有.*?在`)

// extractLocation pulls the pickup location out of content, stripping brand
// markers and the "您有…在" claim prefix. Empty string when nothing matches.
func extractLocation(content string) string {
	for _, pattern := range locationPatterns {
		m := pattern.FindStringSubmatch(content)
		if m == nil {
			continue
		}

		location := strings.TrimSpace(m[1])
		location = strings.ReplaceAll(location, "【菜鸟驿站】", "")
		location = strings.ReplaceAll(location, "[菜鸟驿站]", "")
		location = strings.ReplaceAll(location, "菜鸟驿站", "")
		location = claimPrefixPattern.ReplaceAllString(location, "")
		return strings.TrimSpace(location)
	}

	return ""
}
