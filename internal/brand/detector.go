package brand

import "strings"

// Detection identifies the carrier a message belongs to. Type is a stable
// key (used for icons and grouping downstream), DisplayName is what users
// see.
type Detection struct {
	DisplayName string `json:"display_name"`
	Type        string `json:"type"`
}

var displayNameByType = map[string]string{
	"sf":       "顺丰速运",
	"jd":       "京东物流",
	"zto":      "中通快递",
	"yto":      "圆通速递",
	"sto":      "申通快递",
	"cainiao":  "菜鸟驿站",
	"fengchao": "丰巢柜",
	"ems":      "中国邮政",
	"default":  "包裹",
}

// senderRules maps a brand type to sender tokens. Tokens are upper case;
// the incoming sender is uppercased before substring matching. Order
// matters: the first entry with any matching token wins.
var senderRules = []struct {
	brandType string
	tokens    []string
}{
	{"sf", []string{"SF", "95338"}},
	{"jd", []string{"JD", "950618", "106550618"}},
	{"zto", []string{"ZTO", "95311"}},
	{"yto", []string{"YTO", "95554"}},
	{"sto", []string{"STO", "95543"}},
	{"cainiao", []string{"CAINIAO", "95188", "10684"}},
	{"ems", []string{"EMS", "11185"}},
}

// keywordRules maps a brand type to content keywords, matched on the
// lower-cased content when the sender gives no hint.
var keywordRules = []struct {
	brandType string
	keywords  []string
}{
	{"sf", []string{"顺丰", "sf", "已投柜", "派送员"}},
	{"jd", []string{"京东", "jd", "京东快递"}},
	{"zto", []string{"中通", "zto"}},
	{"yto", []string{"圆通", "yto"}},
	{"sto", []string{"申通", "sto"}},
	{"cainiao", []string{"菜鸟", "菜鸟驿站"}},
	{"fengchao", []string{"丰巢"}},
	{"ems", []string{"邮政", "ems", "中国邮政"}},
}

var generalKeywords = []string{
	"取件码", "取货码", "提货码", "快递", "包裹", "驿站", "自提柜",
}

// Detect maps a sender and/or content to a carrier brand. Sender tokens are
// tried first, then content keywords, then a generic keyword list that
// yields the "default" parcel brand. Returns nil when nothing matches.
func Detect(sender, content string) *Detection {
	brandType := detectType(sender, content)
	if brandType == "" {
		return nil
	}

	displayName, ok := displayNameByType[brandType]
	if !ok {
		displayName = displayNameByType["default"]
	}

	return &Detection{DisplayName: displayName, Type: brandType}
}

func detectType(sender, content string) string {
	normalizedSender := strings.ToUpper(sender)
	if normalizedSender != "" {
		for _, rule := range senderRules {
			for _, token := range rule.tokens {
				if strings.Contains(normalizedSender, token) {
					return rule.brandType
				}
			}
		}
	}

	normalizedContent := strings.ToLower(content)
	for _, rule := range keywordRules {
		for _, keyword := range rule.keywords {
			if strings.Contains(normalizedContent, keyword) {
				return rule.brandType
			}
		}
	}

	for _, keyword := range generalKeywords {
		if strings.Contains(normalizedContent, keyword) {
			return "default"
		}
	}

	return ""
}
