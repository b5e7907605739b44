package models

import "github.com/shopspring/decimal"

// PresenceStatus is the outcome of presence-only matching.
type PresenceStatus string

const (
	StatusFound     PresenceStatus = "FOUND"
	StatusWeakFound PresenceStatus = "WEAK_FOUND"
	StatusNotFound  PresenceStatus = "NOT_FOUND"
	StatusExcluded  PresenceStatus = "EXCLUDED"
)

// MatchLevel names the key level at which a master match was found.
type MatchLevel string

const (
	LevelExact    MatchLevel = "EXACT"
	LevelNoUnit   MatchLevel = "NO_UNIT"
	LevelNoSpec   MatchLevel = "NO_SPEC"
	LevelNameOnly MatchLevel = "NAME_ONLY"
	LevelNone     MatchLevel = "NONE"
)

// PresenceResult is one plan record checked against the master.
type PresenceResult struct {
	Record LineItem       `json:"record"`
	Status PresenceStatus `json:"status"`
	Level  MatchLevel     `json:"match_level"`
	// MasterHit is the key text of the first matching master row.
	MasterHit string `json:"master_hit,omitempty"`
	// MasterPages are the sorted master pages holding rows at the matched level.
	MasterPages []int `json:"master_pages,omitempty"`
}

// TotalsStatus is the outcome of quantity-sum reconciliation.
type TotalsStatus string

const (
	StatusOK           TotalsStatus = "OK"
	StatusMismatch     TotalsStatus = "MISMATCH"
	StatusOnlyInPlans  TotalsStatus = "ONLY_IN_PLANS"
	StatusOnlyInMaster TotalsStatus = "ONLY_IN_MASTER"
)

// TotalsResult compares the summed plan quantity of a key with the master total.
type TotalsResult struct {
	Key         Key             `json:"key"`
	PlanTotal   decimal.Decimal `json:"plan_total_qty"`
	MasterTotal decimal.Decimal `json:"master_total_qty"`
	Diff        decimal.Decimal `json:"diff"`
	Status      TotalsStatus    `json:"status"`
	// Sources are the sorted plan files contributing to the plan total.
	Sources []string `json:"sources,omitempty"`
	// Pages are the sorted plan pages contributing to the plan total.
	Pages       []int `json:"pages,omitempty"`
	MasterPages []int `json:"master_pages,omitempty"`
	// Synthesized is set for aggregate group rows whose plan total includes member sums.
	Synthesized bool `json:"synthesized,omitempty"`
	Members     int  `json:"members,omitempty"`
}

// TreeClass is the tree classification of a master row.
type TreeClass string

const (
	ClassTree          TreeClass = "TREE"
	ClassTreeCandidate TreeClass = "TREE_CANDIDATE"
	ClassNonTree       TreeClass = "NON_TREE"
)

// RuleStatus is the outcome of recognized quantity checking.
type RuleStatus string

const (
	RuleOK            RuleStatus = "OK"
	RuleMismatch      RuleStatus = "MISMATCH"
	RuleExcluded      RuleStatus = "EXCLUDED"
	RuleNotFound      RuleStatus = "RULE_NOT_FOUND"
	RuleTreeCandidate RuleStatus = "TREE_CANDIDATE"
)

// RecognizedResult is one tree-related master row checked against its counting rule.
type RecognizedResult struct {
	Key   Key       `json:"key"`
	Class TreeClass `json:"class"`
	// ActualQty is the quantity the factor is applied to.
	ActualQty decimal.Decimal `json:"actual_qty"`
	// ActualSource is "prior", "master" or "none".
	ActualSource string              `json:"actual_source"`
	Factor       decimal.NullDecimal `json:"factor"`
	Expected     decimal.NullDecimal `json:"expected_recognized_qty"`
	Declared     decimal.NullDecimal `json:"recognized_qty_in_master"`
	Diff         decimal.NullDecimal `json:"diff"`
	Status       RuleStatus          `json:"status"`
	RuleNote     string              `json:"rule_note,omitempty"`
	Remark       string              `json:"remark,omitempty"`
	Sources      []string            `json:"sources,omitempty"`
	Pages        []int               `json:"pages,omitempty"`
}

// ExtractLog records one page or table extraction attempt.
type ExtractLog struct {
	File   string `json:"file"`
	Page   int    `json:"page"`
	Title  string `json:"table_title,omitempty"`
	Rows   int    `json:"row_count"`
	Reason string `json:"fail_reason,omitempty"`
}
