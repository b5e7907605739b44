package models

// WorkbookData is a named set of sheets written as one audit workbook.
type WorkbookData struct {
	// BookName is the workbook file name (no path).
	BookName string `json:"book_name"`
	// Sheets holds the sheets in output order.
	Sheets []SheetData `json:"sheets"`
}

// SheetData is a header row plus data rows of display strings.
type SheetData struct {
	// Name is the sheet title.
	Name string `json:"name"`
	// Header holds the column names.
	Header []string `json:"header"`
	// Rows holds the data rows; widths may differ from the header.
	Rows [][]string `json:"rows,omitempty"`
}
