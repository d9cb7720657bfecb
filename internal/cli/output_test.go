package cli

import (
	"testing"

	"sms-tagger/internal/sms"
)

func TestDisplayDate(t *testing.T) {
	tests := []struct {
		name   string
		record sms.ExpressRecord
		want   string
	}{
		{
			name: "date stated in the text wins",
			record: sms.ExpressRecord{
				FullContent: "您的包裹于2024年1月15日到达驿站，取件码：1234",
				Date:        "2024-01-16",
			},
			want: "2024-1-15",
		},
		{
			name: "falls back to received-time date",
			record: sms.ExpressRecord{
				FullContent: "您的包裹已到驿站，取件码：1234",
				Date:        "2024-01-16",
			},
			want: "2024-01-16",
		},
		{
			name: "relative day from the text",
			record: sms.ExpressRecord{
				FullContent: "您的包裹今天到达，取件码：1234",
				Date:        "2024-01-16",
			},
			want: "今天",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := displayDate(tt.record); got != tt.want {
				t.Errorf("displayDate = %q, want %q", got, tt.want)
			}
		})
	}
}
