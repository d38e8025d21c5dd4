package workbook

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/christiancanari/advance-ticket-service/constants"
	"github.com/christiancanari/advance-ticket-service/internal/entity"
)

// RecordWriter renders the aggregated records as workbook bytes.
type RecordWriter interface {
	Export(records []entity.TicketRecord) ([]byte, error)
}

// XLSXRecordWriter writes the RESULTADO sheet: one header row plus one row
// per record in aggregation order. An empty record list yields a workbook
// containing only the header row.
type XLSXRecordWriter struct{}

func NewRecordWriter() *XLSXRecordWriter {
	return &XLSXRecordWriter{}
}

func (*XLSXRecordWriter) Export(records []entity.TicketRecord) ([]byte, error) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName(f.GetSheetName(0), constants.SheetResult); err != nil {
		return nil, fmt.Errorf("name result sheet: %w", err)
	}

	for col, h := range constants.ResultHeader {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		if err := f.SetCellValue(constants.SheetResult, cell, h); err != nil {
			return nil, fmt.Errorf("write header: %w", err)
		}
	}

	for i, rec := range records {
		row := i + 2
		values := []string{rec.SourceFile, rec.SourceFolder, rec.Invoices, rec.Receipts}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row)
			if err := f.SetCellValue(constants.SheetResult, cell, v); err != nil {
				return nil, fmt.Errorf("write row %d: %w", row, err)
			}
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx write: %w", err)
	}
	return buf.Bytes(), nil
}
