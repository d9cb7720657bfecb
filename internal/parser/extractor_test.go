package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"sms-tagger/internal/sms"
)

func TestExtractLabeledCode(t *testing.T) {
	msg := sms.Message{
		ID:         1,
		Sender:     "95311",
		Content:    "【中通快递】您的包裹已到XX驿站，取件码：1234，请尽快取件",
		ReceivedAt: "2024-01-15 10:30:00",
	}

	records := Extract(msg)

	assert.Len(t, records, 1)
	r := records[0]
	assert.Equal(t, "1234", r.PickupCode)
	assert.Equal(t, "中通快递", r.Company)
	assert.Equal(t, "zto", r.ExpressType)
	assert.Equal(t, "XX驿站", r.Location)
	assert.Equal(t, sms.StatusPending, r.Status)
	assert.Equal(t, "2024-01-15", r.Date)
	assert.Equal(t, msg.Content, r.FullContent)
	assert.Equal(t, msg.Sender, r.Sender)
}

func TestExtractStationMultiCode(t *testing.T) {
	msg := sms.Message{
		ID:         2,
		Sender:     "1068412345",
		Content:    "【菜鸟驿站】您有2个包裹在XX店，凭6-5-3002, 6-2-3006取件",
		ReceivedAt: "2024-03-02 09:00:00",
	}

	records := Extract(msg)

	assert.Len(t, records, 2)
	assert.Equal(t, "6-5-3002", records[0].PickupCode)
	assert.Equal(t, "6-2-3006", records[1].PickupCode)
	for _, r := range records {
		assert.Equal(t, "菜鸟驿站", r.Company)
		assert.Equal(t, "cainiao", r.ExpressType)
		assert.Equal(t, "XX店", r.Location)
		assert.Equal(t, "2024-03-02", r.Date)
		assert.Equal(t, msg.Content, r.FullContent)
	}
}

func TestExtractRejectedByFilter(t *testing.T) {
	// Marketing content never yields records regardless of code shapes.
	msg := sms.Message{
		Sender:     "10690000",
		Content:    "双十一特惠，满300减50，优惠码5566，回复TD退订",
		ReceivedAt: "2024-11-11 00:00:00",
	}

	assert.Empty(t, Extract(msg))
}

func TestExtractNoBrandNoRecord(t *testing.T) {
	// Passes the filter (enterprise sender, 凭码/领取 + 代收点, nearby code)
	// but matches neither carrier tables nor the generic keyword list.
	msg := sms.Message{
		Sender:     "1069112233",
		Content:    "您的邮件已放至代收点，凭码8876领取",
		ReceivedAt: "2024-01-15 10:30:00",
	}

	assert.Empty(t, Extract(msg))
}

func TestExtractStatus(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    sms.PickupStatus
	}{
		{"pending", "您的包裹已到驿站，取件码1234", sms.StatusPending},
		{"picked", "您的包裹已取件，感谢使用", sms.StatusPicked},
		{"picked alt", "包裹已领取", sms.StatusPicked},
		{"expired", "您的取件码已过期，请联系驿站", sms.StatusExpired},
		{"expired alt", "取件码已失效", sms.StatusExpired},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, detectPickupStatus(tt.content))
		})
	}
}

func TestExtractAllPickupCodes(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    []string
	}{
		{
			name:    "labeled beats bare digits",
			content: "订单771234已到，取件码：5566",
			want:    []string{"5566"},
		},
		{
			name:    "legacy shelf code",
			content: "您的包裹货2-4-2029已到驿站",
			want:    []string{"2-4-2029"},
		},
		{
			name:    "alphanumeric labeled code",
			content: "提货码为A8K2，请至前台领取",
			want:    []string{"A8K2"},
		},
		{
			name:    "cjk bracketed code",
			content: "凭【88321】至驿站取件",
			want:    []string{"88321"},
		},
		{
			name:    "bare digit fallback",
			content: "您的包裹已到，号码8876",
			want:    []string{"8876"},
		},
		{
			name:    "multiple labeled codes",
			content: "取件码：1234，取件码：5678",
			want:    []string{"1234", "5678"},
		},
		{
			name:    "station duplicate codes collapse",
			content: "【菜鸟驿站】凭6-5-3002, 6-5-3002取件",
			want:    []string{"6-5-3002"},
		},
		{
			name:    "no code at all",
			content: "您的包裹已到驿站",
			want:    nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, extractAllPickupCodes(tt.content))
		})
	}
}

func TestExtractLockerCodes(t *testing.T) {
	content := "【兔喜生活】您的快递已到，取件码为00-7956，请及时领取"
	codes := extractAllPickupCodes(content)
	assert.Equal(t, []string{"00-7956"}, codes)
}

func TestExtractStationFallbackToLabeledCue(t *testing.T) {
	// No 凭 anchor: the 取件码为 cue takes over, bare digits collected.
	content := "【菜鸟驿站】您的包裹已到，取件码为88321，请尽快领取"
	codes := extractAllPickupCodes(content)
	assert.Equal(t, []string{"88321"}, codes)
}

func TestExtractAllPreservesOrder(t *testing.T) {
	messages := []sms.Message{
		{
			ID:         1,
			Sender:     "95311",
			Content:    "【中通快递】包裹到XX驿站，取件码：1111，请取件",
			ReceivedAt: "2024-01-15 10:00:00",
		},
		{
			ID:         2,
			Sender:     "95338",
			Content:    "顺丰快递到YY驿站，取件码：2222，请取件",
			ReceivedAt: "2024-01-15 11:00:00",
		},
	}

	records := ExtractAll(messages)

	assert.Len(t, records, 2)
	assert.Equal(t, "1111", records[0].PickupCode)
	assert.Equal(t, "2222", records[1].PickupCode)
}
