package models

import (
	"cmp"
	"strings"

	"github.com/shopspring/decimal"
)

// Exclusion tells why a row is not an individual line item.
type Exclusion string

const (
	// ExclusionNone marks a regular line item.
	ExclusionNone Exclusion = ""
	// ExclusionDenylist marks subtotal and total markers.
	ExclusionDenylist Exclusion = "denylist"
	// ExclusionNoise marks repeated header labels and notes.
	ExclusionNoise Exclusion = "noise"
	// ExclusionGroupSuffix marks names ending in a group or subtotal suffix.
	ExclusionGroupSuffix Exclusion = "group_suffix"
)

// LineItem is one materialized table row.
type LineItem struct {
	// SourceFile is the base name of the PDF the row came from.
	SourceFile string `json:"source_file"`
	// Page is the 1-based page number.
	Page int `json:"page"`
	// DrawingNo is the drawing number detected from the file name or page text.
	DrawingNo string `json:"drawing_no,omitempty"`
	// Title is the detected quantity table title.
	Title string `json:"table_title,omitempty"`
	// Floor is the floor label (plan side only).
	Floor string `json:"floor,omitempty"`
	// Trade is the trade category (plan side only).
	Trade string `json:"trade,omitempty"`

	Category string `json:"category,omitempty"`
	Symbol   string `json:"symbol,omitempty"`
	SubGroup string `json:"sub_group,omitempty"`

	Name string `json:"work_name"`
	Spec string `json:"spec"`
	Unit string `json:"unit"`

	// QtyText is the raw quantity cell.
	QtyText string `json:"qty_raw"`
	// Qty is the parsed quantity; invalid when the cell holds no number.
	Qty decimal.NullDecimal `json:"qty"`
	// RecognizedText is the raw recognized quantity cell.
	RecognizedText string `json:"recognized_raw,omitempty"`
	// Recognized is the parsed recognized quantity.
	Recognized decimal.NullDecimal `json:"recognized_qty"`

	Remark string `json:"remark,omitempty"`

	Exclusion Exclusion `json:"exclusion,omitempty"`
}

// Excluded reports whether the row is a subtotal, noise label or group row.
func (r LineItem) Excluded() bool {
	return r.Exclusion != ExclusionNone
}

// Key returns the reconciliation key of the record.
func (r LineItem) Key() Key {
	return Key{Name: r.Name, Spec: r.Spec, Unit: r.Unit}
}

// Key is the (name, spec, unit) reconciliation key.
type Key struct {
	Name string `json:"work_name"`
	Spec string `json:"spec"`
	Unit string `json:"unit"`
}

func (k Key) String() string {
	return strings.Join([]string{k.Name, k.Spec, k.Unit}, " | ")
}

// Compare orders keys by name, then spec, then unit.
func (k Key) Compare(o Key) int {
	if c := cmp.Compare(k.Name, o.Name); c != 0 {
		return c
	}
	if c := cmp.Compare(k.Spec, o.Spec); c != 0 {
		return c
	}
	return cmp.Compare(k.Unit, o.Unit)
}
