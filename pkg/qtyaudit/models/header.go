// Package models defines data structures shared by extraction and reconciliation.
package models

// Role is a logical column of a quantity table.
type Role string

const (
	RoleName       Role = "name"
	RoleSpec       Role = "spec"
	RoleUnit       Role = "unit"
	RoleQuantity   Role = "quantity"
	RoleRecognized Role = "recognized"
	RoleRemark     Role = "remark"
	RoleCategory   Role = "category"
	RoleSymbol     Role = "symbol"
	RoleSubGroup   Role = "sub_group"
)

// HeaderMapping maps a column role to its index within a grid row.
type HeaderMapping map[Role]int

// Has reports whether role resolved to a column.
func (m HeaderMapping) Has(role Role) bool {
	_, ok := m[role]
	return ok
}

// Header is the result of header location for one grid.
type Header struct {
	// Row is the index of the first header line, or -1 when the grid has no table.
	Row int `json:"row"`
	// Span is the number of physical lines the header occupies (1 or 2).
	Span int `json:"span"`
	// Mapping holds the resolved column roles.
	Mapping HeaderMapping `json:"mapping"`
	// Score is the weighted count of resolved roles.
	Score int `json:"score"`
}

// Found reports whether a header was located.
func (h Header) Found() bool {
	return h.Row >= 0
}

// DataStart returns the index of the first data row below the header.
func (h Header) DataStart() int {
	return h.Row + h.Span
}

// NoHeader is returned when no candidate view qualifies.
func NoHeader() Header {
	return Header{Row: -1, Mapping: HeaderMapping{}}
}
