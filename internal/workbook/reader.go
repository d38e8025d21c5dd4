// Package workbook adapts the XLSX input and output files.
package workbook

import (
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"
)

// FolderReader reads folder names from an input workbook.
type FolderReader interface {
	ReadFolderNames(r io.Reader) ([]string, error)
}

// XLSXFolderReader reads the first sheet of the uploaded workbook: the
// first row is the header, folder names come from the first column, and
// blank cells are dropped.
type XLSXFolderReader struct{}

func NewFolderReader() *XLSXFolderReader {
	return &XLSXFolderReader{}
}

func (*XLSXFolderReader) ReadFolderNames(r io.Reader) ([]string, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer func() { _ = f.Close() }()

	sheet := f.GetSheetName(0)
	if sheet == "" {
		return nil, fmt.Errorf("workbook has no sheets")
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("read sheet %s: %w", sheet, err)
	}

	var folders []string
	for i, row := range rows {
		if i == 0 || len(row) == 0 {
			continue
		}
		name := strings.TrimSpace(row[0])
		if name == "" {
			continue
		}
		folders = append(folders, name)
	}
	return folders, nil
}
