package brand

import "testing"

func TestDetectBySender(t *testing.T) {
	tests := []struct {
		name        string
		sender      string
		content     string
		wantType    string
		wantDisplay string
	}{
		{"sf short code", "95338", "您的包裹已到", "sf", "顺丰速运"},
		{"sf prefix lowercase", "sf-express", "", "sf", "顺丰速运"},
		{"jd long port", "106550618", "", "jd", "京东物流"},
		{"zto short code", "95311", "", "zto", "中通快递"},
		{"yto short code", "95554", "", "yto", "圆通速递"},
		{"sto short code", "95543", "", "sto", "申通快递"},
		{"cainiao short code", "95188", "", "cainiao", "菜鸟驿站"},
		{"cainiao 10684 port", "1068412345", "", "cainiao", "菜鸟驿站"},
		{"ems short code", "11185", "", "ems", "中国邮政"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Detect(tt.sender, tt.content)
			if got == nil {
				t.Fatalf("Detect(%q, %q) = nil", tt.sender, tt.content)
			}
			if got.Type != tt.wantType || got.DisplayName != tt.wantDisplay {
				t.Errorf("Detect(%q, %q) = {%s %s}, want {%s %s}",
					tt.sender, tt.content, got.DisplayName, got.Type, tt.wantDisplay, tt.wantType)
			}
		})
	}
}

func TestDetectByContent(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		wantType string
	}{
		{"sf keyword", "顺丰快递已投柜", "sf"},
		{"jd keyword", "京东快递已发货", "jd"},
		{"zto keyword", "【中通快递】您的包裹已到", "zto"},
		{"cainiao keyword", "您的包裹在菜鸟驿站", "cainiao"},
		{"fengchao keyword", "丰巢快递柜提醒您", "fengchao"},
		{"ems keyword", "中国邮政包裹已到", "ems"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Detect("unknown-sender", tt.content)
			if got == nil {
				t.Fatalf("Detect(%q) = nil", tt.content)
			}
			if got.Type != tt.wantType {
				t.Errorf("Detect(%q).Type = %s, want %s", tt.content, got.Type, tt.wantType)
			}
		})
	}
}

func TestDetectGenericFallback(t *testing.T) {
	got := Detect("12345", "您的包裹已到，取件码8876")
	if got == nil {
		t.Fatal("expected generic detection, got nil")
	}
	if got.Type != "default" || got.DisplayName != "包裹" {
		t.Errorf("Detect = {%s %s}, want {包裹 default}", got.DisplayName, got.Type)
	}
}

func TestDetectNoMatch(t *testing.T) {
	if got := Detect("10086", "您本月话费为50元"); got != nil {
		t.Errorf("Detect = %+v, want nil", got)
	}
}

func TestDetectSenderBeatsContent(t *testing.T) {
	// Sender token wins even when content names another carrier.
	got := Detect("95338", "中通快递提醒您")
	if got == nil || got.Type != "sf" {
		t.Errorf("Detect = %+v, want sf", got)
	}
}
