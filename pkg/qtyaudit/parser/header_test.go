package parser

import (
	"testing"

	"github.com/ukaji3/qtyaudit-go/pkg/qtyaudit/config"
	"github.com/ukaji3/qtyaudit-go/pkg/qtyaudit/models"
)

func testDict(t *testing.T) *config.Dictionary {
	t.Helper()
	d, err := config.Default()
	if err != nil {
		t.Fatalf("config.Default() failed: %v", err)
	}
	return d
}

func TestLocateSingleLineHeader(t *testing.T) {
	dict := testDict(t)
	g := Grid{
		{"수량 산출표", "", "", "", ""},
		{"품명", "규격", "단위", "수량", "비고"},
		{"소나무", "H3.0", "주", "10", ""},
	}

	// The title row merged with the header maps the same roles at an earlier
	// row, so only the data start is pinned here.
	h := Locate(g, dict)
	if !h.Found() {
		t.Fatal("Locate() found no header")
	}
	expected := models.HeaderMapping{
		models.RoleName:     0,
		models.RoleSpec:     1,
		models.RoleUnit:     2,
		models.RoleQuantity: 3,
		models.RoleRemark:   4,
	}
	for role, idx := range expected {
		if got, ok := h.Mapping[role]; !ok || got != idx {
			t.Errorf("Mapping[%s] = %d (present %v), expected %d", role, got, ok, idx)
		}
	}
	if h.Score != 9 {
		t.Errorf("Score = %d, expected 9", h.Score)
	}
	if h.DataStart() != 2 {
		t.Errorf("DataStart() = %d, expected 2", h.DataStart())
	}
}

func TestLocateTwoLineHeader(t *testing.T) {
	dict := testDict(t)
	g := Grid{
		{"품명", "규격", "단위", "실제", ""},
		{"", "", "", "수량", "비고"},
		{"소나무", "H3.0", "주", "10", ""},
	}

	h := Locate(g, dict)
	if h.Row != 0 || h.Span != 2 {
		t.Fatalf("Locate() = row %d span %d, expected row 0 span 2", h.Row, h.Span)
	}
	if h.Mapping[models.RoleQuantity] != 3 {
		t.Errorf("quantity column = %d, expected 3", h.Mapping[models.RoleQuantity])
	}
	if h.Mapping[models.RoleRemark] != 4 {
		t.Errorf("remark column = %d, expected 4", h.Mapping[models.RoleRemark])
	}
	if h.DataStart() != 2 {
		t.Errorf("DataStart() = %d, expected 2", h.DataStart())
	}
}

func TestLocateQuantityPriority(t *testing.T) {
	dict := testDict(t)
	tests := []struct {
		name     string
		header   []string
		expected int
	}{
		{"total beats quantity", []string{"품명", "수량", "합계"}, 2},
		{"actual beats quantity", []string{"공종", "수량", "실제수량"}, 2},
		{"recognized is not quantity", []string{"품명", "인정수량", "수량"}, 2},
		{"spaced keyword", []string{"품 명", "수 량"}, 1},
	}

	for _, tt := range tests {
		h := Locate(Grid{tt.header}, dict)
		if !h.Found() {
			t.Errorf("%s: Locate(%q) found no header", tt.name, tt.header)
			continue
		}
		if got := h.Mapping[models.RoleQuantity]; got != tt.expected {
			t.Errorf("%s: Locate(%q) quantity = %d, expected %d", tt.name, tt.header, got, tt.expected)
		}
	}
}

func TestLocateRecognizedColumn(t *testing.T) {
	dict := testDict(t)
	h := Locate(Grid{{"수목명", "규격", "단위", "인정수량", "실제수량", "비고"}}, dict)
	if h.Mapping[models.RoleRecognized] != 3 {
		t.Errorf("recognized column = %d, expected 3", h.Mapping[models.RoleRecognized])
	}
	if h.Mapping[models.RoleQuantity] != 4 {
		t.Errorf("quantity column = %d, expected 4", h.Mapping[models.RoleQuantity])
	}
}

func TestLocateTieKeepsEarliest(t *testing.T) {
	dict := testDict(t)
	g := Grid{
		{"품명", "수량"},
		{"품명", "수량"},
		{"소나무", "3"},
	}

	h := Locate(g, dict)
	if h.Row != 0 || h.Span != 1 {
		t.Errorf("Locate() = row %d span %d, expected row 0 span 1", h.Row, h.Span)
	}
}

func TestLocateScanLimit(t *testing.T) {
	dict := testDict(t)
	g := make(Grid, 0, 12)
	for i := 0; i < 11; i++ {
		g = append(g, []string{"x", "y"})
	}
	g = append(g, []string{"품명", "수량"})

	if h := Locate(g, dict); h.Found() {
		t.Errorf("Locate() found header at row %d beyond the scan window", h.Row)
	}
}

func TestLocateNeverReturnsPartialMapping(t *testing.T) {
	dict := testDict(t)
	grids := []Grid{
		nil,
		{{}},
		{{"a", "b"}, {"1", "2"}},
		{{"품명", "규격", "단위"}},
		{{"수량", "비고"}},
		{{"품명"}, {"수량"}},
		{{"규격", "수량"}, {"소나무", "3"}},
		{{"품명", "수량"}},
	}

	for i, g := range grids {
		h := Locate(g, dict)
		if !h.Found() {
			if len(h.Mapping) != 0 {
				t.Errorf("grid %d: no header but mapping %v", i, h.Mapping)
			}
			continue
		}
		if !h.Mapping.Has(models.RoleName) || !h.Mapping.Has(models.RoleQuantity) {
			t.Errorf("grid %d: mapping %v lacks name or quantity", i, h.Mapping)
		}
	}
}

func TestBetter(t *testing.T) {
	a := models.Header{Row: 2, Span: 1, Score: 6}
	b := models.Header{Row: 0, Span: 2, Score: 6}
	c := models.Header{Row: 0, Span: 1, Score: 6}
	d := models.Header{Row: 4, Span: 1, Score: 8}

	tests := []struct {
		x, y     models.Header
		expected bool
	}{
		{d, a, true},
		{a, d, false},
		{b, a, true},
		{c, b, true},
		{b, c, false},
		{a, models.NoHeader(), true},
		{models.NoHeader(), a, false},
	}

	for i, tt := range tests {
		if got := better(tt.x, tt.y); got != tt.expected {
			t.Errorf("case %d: better(%+v, %+v) = %v, expected %v", i, tt.x, tt.y, got, tt.expected)
		}
	}
}
