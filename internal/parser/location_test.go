package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractLocation(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{
			name:    "direction word with station",
			content: "您的包裹已到幸福小区菜鸟驿站，请取件",
			want:    "幸福小区",
		},
		{
			name:    "direction word with store",
			content: "您有2个包裹在XX店，凭码取件",
			want:    "XX店",
		},
		{
			name:    "locker keyword",
			content: "包裹已投放到3号楼快递柜",
			want:    "3号楼快递柜",
		},
		{
			name:    "station fragment without direction word",
			content: "菜鸟驿站幸福店提醒您取件",
			want:    "幸福店提醒您取件",
		},
		{
			name:    "locker fragment",
			content: "【丰巢】您的快递已存入丰巢智能柜16号格口，凭取件码1234领取",
			want:    "丰巢智能柜16号格口",
		},
		{
			name:    "locker fragment stops at punctuation",
			content: "快递已放入丰巢柜A区12号，请尽快取出",
			want:    "丰巢柜A区12号",
		},
		{
			name:    "claim prefix stripped",
			content: "提示到您有3个包裹在朝阳超市待取",
			want:    "朝阳超市待取",
		},
		{
			name:    "no location",
			content: "您的验证码是1234",
			want:    "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, extractLocation(tt.content))
		})
	}
}

func TestExtractDisplayDate(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{"iso date", "包裹于2024-01-15到达", "2024-01-15"},
		{"cjk date", "包裹于2024年1月15日到达", "2024-1-15"},
		{"short month day", "1月15日到达", "1月15"},
		{"relative day", "您的包裹今天到达", "今天"},
		{"no date", "您的包裹已到驿站", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractDisplayDate(tt.content))
		})
	}
}

func TestDateFromReceivedTime(t *testing.T) {
	assert.Equal(t, "2024-01-15", dateFromReceivedTime("2024-01-15 10:30:00"))
	assert.Equal(t, "2024-01-15", dateFromReceivedTime("2024-01-15"))
	assert.Equal(t, "bogus", dateFromReceivedTime("bogus"))
}
