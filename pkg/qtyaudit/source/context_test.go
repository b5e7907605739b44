package source

import "testing"

func TestDetectFloor(t *testing.T) {
	dict := testDict(t)
	tests := []struct {
		file     string
		text     string
		expected string
	}{
		{"L-101 지상 1 층 식재평면도.pdf", "", "지상1층"},
		{"L-102 옥상층.pdf", "지하2층", "옥상층"},
		{"L-103.pdf", "지하 2층 식재", "지하2층"},
		{"L-104.pdf", "B1층 조경", "B1층"},
		{"L-105.pdf", "3 층 평면", "3층"},
		{"L-106.pdf", "지상층 포장", "지상층"},
		{"L-107.pdf", "배치도", "미지정"},
	}

	for _, tt := range tests {
		if got := DetectFloor(dict, tt.file, tt.text); got != tt.expected {
			t.Errorf("DetectFloor(%q, %q) = %q, expected %q", tt.file, tt.text, got, tt.expected)
		}
	}
}

func TestDetectTrade(t *testing.T) {
	dict := testDict(t)
	tests := []struct {
		chunks   []string
		expected string
	}{
		{[]string{"식재지반 수량표"}, "식재지반"},
		{[]string{"L-201 식재평면도"}, "식재"},
		{[]string{"L-301", "시설물 수량 산출표"}, "시설물"},
		{[]string{"포장 상세"}, "포장"},
		{[]string{"조명기기 배치"}, "조명"},
		{[]string{"표지"}, "기타"},
	}

	for _, tt := range tests {
		if got := DetectTrade(dict, tt.chunks...); got != tt.expected {
			t.Errorf("DetectTrade(%q) = %q, expected %q", tt.chunks, got, tt.expected)
		}
	}
}

func TestDetectTitle(t *testing.T) {
	dict := testDict(t)
	tests := []struct {
		input    string
		expected string
	}{
		{"도면명\n식재  수량 산출표\n비고", "식재 수량 산출표"},
		{"시설물 수량표", "시설물 수량표"},
		{"평면도", ""},
	}

	for _, tt := range tests {
		if got := DetectTitle(tt.input, dict); got != tt.expected {
			t.Errorf("DetectTitle(%q) = %q, expected %q", tt.input, got, tt.expected)
		}
	}
}

func TestDetectDrawingNo(t *testing.T) {
	dict := testDict(t)
	tests := []struct {
		path     string
		text     string
		expected string
	}{
		{"/in/L-101 식재평면도.pdf", "", "L-101"},
		{"/in/LP203-1.pdf", "", "LP203-1"},
		{"/in/식재평면도.pdf", "도면번호: L-501", "L-501"},
		{"/in/식재평면도.pdf", "", ""},
	}

	for _, tt := range tests {
		if got := DetectDrawingNo(tt.path, tt.text, dict); got != tt.expected {
			t.Errorf("DetectDrawingNo(%q, %q) = %q, expected %q", tt.path, tt.text, got, tt.expected)
		}
	}
}
