// Package config loads the keyword dictionaries that drive header detection,
// context tagging, exclusion and rule parsing.
package config

import (
	_ "embed"
	"os"
	"regexp"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/shopspring/decimal"
	"github.com/ukaji3/qtyaudit-go/pkg/qtyaudit/models"
	"golang.org/x/text/unicode/norm"
	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// File mirrors the YAML layout of a dictionary file.
type File struct {
	Header struct {
		ScanRows         int        `yaml:"scan_rows"`
		Roles            []RoleFile `yaml:"roles"`
		QuantityPriority []string   `yaml:"quantity_priority"`
	} `yaml:"header"`
	Exclusion struct {
		Denylist      []string `yaml:"denylist"`
		NoiseExact    []string `yaml:"noise_exact"`
		NoiseContains []string `yaml:"noise_contains"`
		GroupSuffix   []string `yaml:"group_suffix"`
	} `yaml:"exclusion"`
	Context struct {
		Floors        []string    `yaml:"floors"`
		DefaultFloor  string      `yaml:"default_floor"`
		Trades        []TradeFile `yaml:"trades"`
		DefaultTrade  string      `yaml:"default_trade"`
		TableTitle    string      `yaml:"table_title"`
		DrawingNoFile string      `yaml:"drawing_no_file"`
		DrawingNoText string      `yaml:"drawing_no_text"`
	} `yaml:"context"`
	Master struct {
		FilePatterns []string `yaml:"file_patterns"`
		TextKeywords []string `yaml:"text_keywords"`
		PageMarkers  []string `yaml:"page_markers"`
		ProbePages   int      `yaml:"probe_pages"`
	} `yaml:"master"`
	Groups struct {
		Vocabulary     []string `yaml:"vocabulary"`
		AreaMarkers    []string `yaml:"area_markers"`
		CategoryTokens []string `yaml:"category_tokens"`
		ShortMaxRunes  int      `yaml:"short_max_runes"`
	} `yaml:"groups"`
	Recognized struct {
		TreeStrong  []string `yaml:"tree_strong"`
		TreeCaliper string   `yaml:"tree_caliper"`
		TreeWeak    []string `yaml:"tree_weak"`
		Exclude     string   `yaml:"exclude"`
		Factor      string   `yaml:"factor"`
	} `yaml:"recognized"`
	Extraction struct {
		MinNonemptyCells int        `yaml:"min_nonempty_cells"`
		Strategies       []Strategy `yaml:"strategies"`
	} `yaml:"extraction"`
	Tolerance string `yaml:"tolerance"`
}

// RoleFile lists the header keywords of one column role.
type RoleFile struct {
	Role     models.Role `yaml:"role"`
	Keywords []string    `yaml:"keywords"`
}

// TradeFile maps a keyword to a trade category.
type TradeFile struct {
	Keyword  string `yaml:"keyword"`
	Category string `yaml:"category"`
}

// Strategy is one table detection configuration applied to every page.
type Strategy struct {
	Name string `yaml:"name"`
	// Vertical and Horizontal are "lines" (use ruled lines on that axis) or "text" (alignment only).
	Vertical   string  `yaml:"vertical"`
	Horizontal string  `yaml:"horizontal"`
	Tolerance  float64 `yaml:"tolerance"`
}

const (
	StrategyLines = "lines"
	StrategyText  = "text"
)

// Dictionary is the compiled, read-only form of File.
// A Dictionary is built once per process and passed to every component.
type Dictionary struct {
	ScanRows         int
	Roles            []RoleFile
	QuantityPriority []string

	Denylist      []string
	NoiseExact    map[string]struct{}
	NoiseContains []string
	GroupSuffix   []*regexp.Regexp

	Floors        []*regexp.Regexp
	DefaultFloor  string
	Trades        []TradeFile
	DefaultTrade  string
	TableTitle    *regexp.Regexp
	DrawingNoFile *regexp.Regexp
	DrawingNoText *regexp.Regexp

	MasterFilePatterns []*regexp.Regexp
	MasterKeywords     []string
	MasterPageMarkers  []string
	MasterProbePages   int

	GroupVocabulary    map[string]struct{}
	AreaMarkers        []string
	CategoryTokens     []string
	GroupShortMaxRunes int

	TreeStrong  []string
	TreeCaliper *regexp.Regexp
	TreeWeak    []string
	RuleExclude *regexp.Regexp
	RuleFactor  *regexp.Regexp

	MinNonemptyCells int
	Strategies       []Strategy

	Tolerance decimal.Decimal

	source File
}

// Default returns the built-in dictionary.
func Default() (*Dictionary, error) {
	return Load("")
}

// Load reads the built-in dictionary and overlays the file at path, if any.
func Load(path string) (*Dictionary, error) {
	var f File
	if err := yaml.Unmarshal(defaultsYAML, &f); err != nil {
		return nil, eris.Wrap(err, "failed to parse built-in dictionary")
	}
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, eris.Wrapf(err, "failed to read dictionary %s", path)
		}
		if err := yaml.Unmarshal(data, &f); err != nil {
			return nil, eris.Wrapf(err, "failed to parse dictionary %s", path)
		}
	}
	return Compile(f)
}

// Compile validates f and compiles its patterns.
func Compile(f File) (*Dictionary, error) {
	d := &Dictionary{
		ScanRows:           f.Header.ScanRows,
		Roles:              append([]RoleFile(nil), f.Header.Roles...),
		QuantityPriority:   compactAll(f.Header.QuantityPriority),
		Denylist:           compactAll(f.Exclusion.Denylist),
		NoiseExact:         setOf(f.Exclusion.NoiseExact),
		NoiseContains:      compactAll(f.Exclusion.NoiseContains),
		DefaultFloor:       f.Context.DefaultFloor,
		Trades:             make([]TradeFile, 0, len(f.Context.Trades)),
		DefaultTrade:       f.Context.DefaultTrade,
		MasterKeywords:     compactAll(f.Master.TextKeywords),
		MasterPageMarkers:  compactAll(f.Master.PageMarkers),
		MasterProbePages:   f.Master.ProbePages,
		GroupVocabulary:    setOf(f.Groups.Vocabulary),
		AreaMarkers:        compactAll(f.Groups.AreaMarkers),
		CategoryTokens:     compactAll(f.Groups.CategoryTokens),
		GroupShortMaxRunes: f.Groups.ShortMaxRunes,
		TreeStrong:         compactAll(f.Recognized.TreeStrong),
		TreeWeak:           compactAll(f.Recognized.TreeWeak),
		MinNonemptyCells:   f.Extraction.MinNonemptyCells,
		Strategies:         f.Extraction.Strategies,
		source:             f,
	}

	if d.ScanRows <= 0 {
		return nil, eris.Errorf("header.scan_rows must be positive, got %d", d.ScanRows)
	}
	if d.MasterProbePages <= 0 {
		return nil, eris.Errorf("master.probe_pages must be positive, got %d", d.MasterProbePages)
	}
	if len(d.QuantityPriority) == 0 {
		return nil, eris.New("header.quantity_priority must not be empty")
	}
	for i, r := range d.Roles {
		if r.Role == models.RoleQuantity {
			return nil, eris.New("quantity keywords belong in header.quantity_priority")
		}
		d.Roles[i].Keywords = compactAll(r.Keywords)
	}
	for _, t := range f.Context.Trades {
		d.Trades = append(d.Trades, TradeFile{Keyword: Compact(t.Keyword), Category: t.Category})
	}
	if !hasRole(d.Roles, models.RoleName) {
		return nil, eris.New("header.roles must define the name role")
	}
	for _, s := range d.Strategies {
		if !validAxis(s.Vertical) || !validAxis(s.Horizontal) {
			return nil, eris.Errorf("strategy %q: axes must be %q or %q", s.Name, StrategyLines, StrategyText)
		}
	}

	tol, err := decimal.NewFromString(f.Tolerance)
	if err != nil {
		return nil, eris.Wrapf(err, "invalid tolerance %q", f.Tolerance)
	}
	d.Tolerance = tol

	if d.GroupSuffix, err = compileAll("exclusion.group_suffix", f.Exclusion.GroupSuffix); err != nil {
		return nil, err
	}
	if d.Floors, err = compileAll("context.floors", f.Context.Floors); err != nil {
		return nil, err
	}
	if d.MasterFilePatterns, err = compileAll("master.file_patterns", f.Master.FilePatterns); err != nil {
		return nil, err
	}

	singles := []struct {
		name    string
		pattern string
		dst     **regexp.Regexp
	}{
		{"context.table_title", f.Context.TableTitle, &d.TableTitle},
		{"context.drawing_no_file", f.Context.DrawingNoFile, &d.DrawingNoFile},
		{"context.drawing_no_text", f.Context.DrawingNoText, &d.DrawingNoText},
		{"recognized.tree_caliper", f.Recognized.TreeCaliper, &d.TreeCaliper},
		{"recognized.exclude", f.Recognized.Exclude, &d.RuleExclude},
		{"recognized.factor", f.Recognized.Factor, &d.RuleFactor},
	}
	for _, s := range singles {
		re, err := regexp.Compile(s.pattern)
		if err != nil {
			return nil, eris.Wrapf(err, "invalid pattern in %s", s.name)
		}
		*s.dst = re
	}
	if d.RuleFactor.NumSubexp() < 1 {
		return nil, eris.New("recognized.factor must capture the factor in group 1")
	}

	return d, nil
}

// YAML renders the dictionary source as YAML.
func (d *Dictionary) YAML() ([]byte, error) {
	out, err := yaml.Marshal(d.source)
	if err != nil {
		return nil, eris.Wrap(err, "failed to render dictionary")
	}
	return out, nil
}

func compileAll(name string, patterns []string) ([]*regexp.Regexp, error) {
	out := make([]*regexp.Regexp, 0, len(patterns))
	for _, p := range patterns {
		re, err := regexp.Compile(p)
		if err != nil {
			return nil, eris.Wrapf(err, "invalid pattern in %s", name)
		}
		out = append(out, re)
	}
	return out, nil
}

func hasRole(roles []RoleFile, role models.Role) bool {
	for _, r := range roles {
		if r.Role == role {
			return true
		}
	}
	return false
}

func validAxis(s string) bool {
	return s == StrategyLines || s == StrategyText
}

// Compact folds text for keyword comparison: NFKC, no whitespace, lower case.
// Keywords in a Dictionary are stored in this form.
func Compact(s string) string {
	s = norm.NFKC.String(s)
	return strings.ToLower(strings.Join(strings.Fields(s), ""))
}

func compactAll(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if c := Compact(s); c != "" {
			out = append(out, c)
		}
	}
	return out
}

func setOf(in []string) map[string]struct{} {
	out := make(map[string]struct{}, len(in))
	for _, s := range in {
		out[Compact(s)] = struct{}{}
	}
	return out
}
