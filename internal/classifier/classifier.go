package classifier

import (
	"regexp"
	"strings"

	"sms-tagger/internal/sms"
)

// Keyword tables are fixed, process-wide data. Matching is done on a
// lower-cased copy of the content, so every entry here is lower case.
var (
	verificationKeywords = []string{
		"验证码", "code", "otp", "verification", "动态码", "确认码",
	}

	// Includes pickup-notice phrasing so messages like "取件通知" land on
	// express instead of the generic notification bucket.
	expressKeywords = []string{
		"快递", "包裹", "物流", "签收", "派送", "ems", "sf express",
		"jd logistics", "取件码", "运单", "菜鸟", "驿站", "取件通知", "待取件",
	}

	bankKeywords = []string{
		"银行", "余额", "交易", "转账", "信用卡", "debit", "credit",
		"alipay", "wechat pay", "微信支付", "支付宝", "消费", "入账", "出账",
	}

	marketingKeywords = []string{
		"优惠", "促销", "折扣", "特价", "活动", "coupon", "sale", "广告", "推广",
	}

	notificationKeywords = []string{
		"通知", "提醒", "预约", "更新", "会议", "alert", "notice", "reminder",
		"中国移动", "中国联通", "中国电信", "停车", "积分", "流量", "话费",
	}

	digitRun = regexp.MustCompile(`\d{4,6}`)
)

// Classify assigns exactly one category to a message. Evaluation order is
// the tie-break policy: verification code, express, bank, marketing,
// notification, unknown. First match wins; no match yields Unknown.
func Classify(content string) sms.Category {
	lower := strings.ToLower(strings.TrimSpace(content))

	if isVerificationCode(lower) {
		return sms.CategoryVerificationCode
	}

	// Express must run before notification so pickup notices are not
	// swallowed by the notification keyword set.
	if isExpress(lower) {
		return sms.CategoryExpress
	}

	if containsAny(lower, bankKeywords) {
		return sms.CategoryBank
	}

	if containsAny(lower, marketingKeywords) {
		return sms.CategoryMarketing
	}

	// Re-check express here to guard against keyword overlap between the
	// notification set and express phrasing.
	if containsAny(lower, notificationKeywords) && !isExpress(lower) {
		return sms.CategoryNotification
	}

	return sms.CategoryUnknown
}

// ClassifyBatch groups messages by category without reordering within a
// group.
func ClassifyBatch(messages []sms.Message) map[sms.Category][]sms.Message {
	groups := make(map[sms.Category][]sms.Message)
	for _, msg := range messages {
		category := Classify(msg.Content)
		groups[category] = append(groups[category], msg)
	}
	return groups
}

// isVerificationCode requires both a keyword and a 4-6 digit run. Either
// alone is insufficient.
func isVerificationCode(lower string) bool {
	return containsAny(lower, verificationKeywords) && digitRun.MatchString(lower)
}

func isExpress(lower string) bool {
	return containsAny(lower, expressKeywords)
}

func containsAny(text string, keywords []string) bool {
	for _, keyword := range keywords {
		if strings.Contains(text, keyword) {
			return true
		}
	}
	return false
}
