package constants

import "strings"

// SheetResult is the name of the sheet written to the result workbook.
const SheetResult = "RESULTADO"

// ResultHeader holds the result column headers, in column order.
var ResultHeader = []string{"file", "filePR", "facturas", "comprobantes"}

// XLSXContentType is the MIME type for .xlsx workbooks.
const XLSXContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// PDFMimeType is the MIME type for PDF files.
const PDFMimeType = "application/pdf"

// DriveFolderMimeType is the Google Drive MIME type for folders.
const DriveFolderMimeType = "application/vnd.google-apps.folder"

// NormalizeExt lowercases and trims the dot from a file extension.
func NormalizeExt(ext string) string {
	return strings.ToLower(strings.TrimPrefix(ext, "."))
}
