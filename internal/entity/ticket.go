// Package entity holds the records exchanged between the pipeline stages
// and the workbook adapters.
package entity

// FileHandle identifies a remote PDF returned by a listing call. It is
// consumed immediately by the download step and never persisted.
type FileHandle struct {
	ID   string
	Name string
}

// TicketRecord is one row of the final report: a single extracted PDF and
// the codes found in it. Absent codes are empty strings, never omitted.
type TicketRecord struct {
	SourceFolder string
	SourceFile   string
	Invoices     string
	Receipts     string
}
