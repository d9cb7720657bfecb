package parser

import "regexp"

// PatternEntry pairs a compiled pickup-code pattern with metadata. The
// pickup code is always capture group 1.
type PatternEntry struct {
	Regex       *regexp.Regexp
	Format      string
	Description string
}

// pickupCodePatterns is the ordered general-case pattern list. Earlier,
// more specific patterns take precedence: extraction stops at the first
// entry that yields at least one match, so the bare digit fallback only
// fires when nothing labeled was found.
var pickupCodePatterns = []*PatternEntry{
	{
		Regex:       regexp.MustCompile(`货([0-9]+-[0-9]+-[0-9]+)`),
		Format:      "station_legacy",
		Description: "Legacy station shelf code, e.g. 货2-4-2029",
	},
	{
		Regex:       regexp.MustCompile(`取件码[:：为是]?\s*([A-Za-z0-9]{4,8})`),
		Format:      "labeled_pickup",
		Description: "Labeled pickup code",
	},
	{
		Regex:       regexp.MustCompile(`提货码[:：为是]?\s*([A-Za-z0-9]{4,8})`),
		Format:      "labeled_collect",
		Description: "Labeled collection code",
	},
	{
		Regex:       regexp.MustCompile(`验证码[:：为是]?\s*([A-Za-z0-9]{4,8})`),
		Format:      "labeled_verify",
		Description: "Verification-style code used by some lockers",
	},
	{
		Regex:       regexp.MustCompile(`取货码[:：为是]?\s*([A-Za-z0-9]{4,8})`),
		Format:      "labeled_goods",
		Description: "Labeled goods code",
	},
	{
		Regex:       regexp.MustCompile(`取件\s*[码号][:：为是]?\s*([A-Za-z0-9]{4,8})`),
		Format:      "labeled_spaced",
		Description: "Pickup code with spacing between label characters",
	},
	{
		Regex:       regexp.MustCompile(`\[([A-Za-z0-9]{4,8})\]`),
		Format:      "bracketed",
		Description: "Code in ASCII brackets",
	},
	{
		Regex:       regexp.MustCompile(`【([A-Za-z0-9]{4,8})】`),
		Format:      "bracketed_cjk",
		Description: "Code in CJK brackets",
	},
	{
		Regex:       regexp.MustCompile(`([0-9]{4,8})`),
		Format:      "bare_digits",
		Description: "Bare 4-8 digit fallback, high recall low precision",
	},
}

var (
	// Hyphenated station codes like 6-5-3002 or 6-5-3-002. Calendar
	// dates share the shape and are filtered wherever this is applied.
	hyphenCodePattern = regexp.MustCompile(`([0-9]+-[0-9]+-[0-9]{1,8}(?:-[0-9]+)?)`)
	dateShapePattern  = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	bareDigitsPattern = regexp.MustCompile(`([0-9]{4,8})`)

	// Alphanumeric hyphen codes used by locker brands, e.g. 00-7956.
	lockerLabeledPattern  = regexp.MustCompile(`取件码[为:：]\s*([0-9A-Za-z]+-[0-9A-Za-z]+(?:-[0-9A-Za-z]+)*)`)
	lockerAnchoredPattern = regexp.MustCompile(`凭\s*([0-9A-Za-z]+-[0-9A-Za-z]+(?:-[0-9A-Za-z]+)*)`)
	lockerFallbackPattern = regexp.MustCompile(`([0-9A-Za-z]{2,}-[0-9A-Za-z]{2,}(?:-[0-9A-Za-z]{2,})*)`)
)

// extractGeneralCodes applies the ordered pattern list to the whole content
// and returns every capture of the first pattern that matches.
func extractGeneralCodes(content string) []string {
	for _, entry := range pickupCodePatterns {
		matches := entry.Regex.FindAllStringSubmatch(content, -1)
		if len(matches) == 0 {
			continue
		}

		codes := make([]string, 0, len(matches))
		for _, m := range matches {
			if code := m[1]; code != "" {
				codes = append(codes, code)
			}
		}
		if len(codes) > 0 {
			return codes
		}
	}

	return nil
}
