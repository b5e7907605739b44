package parser

import (
	"errors"
	"testing"

	"github.com/ukaji3/qtyaudit-go/pkg/qtyaudit/config"
)

type fakePage struct {
	grids map[string][][][]string
	fail  map[string]error
	calls int
}

func (p *fakePage) Tables(s config.Strategy) ([][][]string, error) {
	p.calls++
	if err := p.fail[s.Name]; err != nil {
		return nil, err
	}
	return p.grids[s.Name], nil
}

func testHarvester() *Harvester {
	return &Harvester{
		Strategies: []config.Strategy{
			{Name: "lines", Vertical: config.StrategyLines, Horizontal: config.StrategyLines},
			{Name: "text", Vertical: config.StrategyText, Horizontal: config.StrategyText},
			{Name: "mixed", Vertical: config.StrategyLines, Horizontal: config.StrategyText},
		},
		MinNonemptyCells: 3,
	}
}

func TestHarvesterDeduplicates(t *testing.T) {
	table := [][]string{{"품명", "수량"}, {"소나무", "3"}}
	respaced := [][]string{{" 품명 ", "수량\n"}, {"", ""}, {"소나무", " 3"}}
	other := [][]string{{"품명", "수량"}, {"느티나무", "2"}}
	page := &fakePage{grids: map[string][][][]string{
		"lines": {table},
		"text":  {respaced, other},
		"mixed": {table},
	}}

	var got []Grid
	for g := range testHarvester().Grids(page) {
		got = append(got, g)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 distinct grids, got %d: %q", len(got), got)
	}
	if got[0][1][0] != "소나무" || got[1][1][0] != "느티나무" {
		t.Errorf("grids out of strategy order: %q", got)
	}
}

func TestHarvesterSkipsFailedStrategy(t *testing.T) {
	table := [][]string{{"품명", "수량"}, {"소나무", "3"}}
	page := &fakePage{
		grids: map[string][][][]string{"text": {table}},
		fail:  map[string]error{"lines": errors.New("broken stream")},
	}

	count := 0
	for range testHarvester().Grids(page) {
		count++
	}
	if count != 1 {
		t.Errorf("expected 1 grid, got %d", count)
	}
}

func TestHarvesterDropsSparseGrids(t *testing.T) {
	page := &fakePage{grids: map[string][][][]string{
		"lines": {{{"a", ""}, {"", "b"}}, {}},
	}}

	for g := range testHarvester().Grids(page) {
		t.Errorf("unexpected grid %q", g)
	}
}

func TestHarvesterIsRestartable(t *testing.T) {
	table := [][]string{{"품명", "수량"}, {"소나무", "3"}}
	page := &fakePage{grids: map[string][][][]string{"lines": {table}}}
	seq := testHarvester().Grids(page)

	for pass := 0; pass < 2; pass++ {
		count := 0
		for range seq {
			count++
		}
		if count != 1 {
			t.Errorf("pass %d: expected 1 grid, got %d", pass, count)
		}
	}
	if page.calls != 6 {
		t.Errorf("expected 6 extraction calls over two passes, got %d", page.calls)
	}
}

func TestHarvesterStopsEarly(t *testing.T) {
	a := [][]string{{"품명", "수량"}, {"소나무", "3"}}
	b := [][]string{{"품명", "수량"}, {"느티나무", "2"}}
	page := &fakePage{grids: map[string][][][]string{"lines": {a}, "text": {b}}}

	for range testHarvester().Grids(page) {
		break
	}
	if page.calls != 1 {
		t.Errorf("expected 1 extraction call after early stop, got %d", page.calls)
	}
}
