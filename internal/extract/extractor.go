// Package extract turns downloaded PDF streams into ticket records.
package extract

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/christiancanari/advance-ticket-service/internal/classifier"
	"github.com/christiancanari/advance-ticket-service/internal/common"
	"github.com/christiancanari/advance-ticket-service/internal/entity"
)

// Extractor converts a single PDF content stream to text and classifies it.
type Extractor struct {
	text       TextExtractor
	classifier *classifier.Classifier
	logger     *slog.Logger
}

func NewExtractor(text TextExtractor, cls *classifier.Classifier, logger *slog.Logger) *Extractor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Extractor{text: text, classifier: cls, logger: logger}
}

// Extract converts content to plain text, classifies it and builds the
// record. Conversion faults surface as a PDF processing failure naming the
// file; they are not recovered here.
func (e *Extractor) Extract(folderName, fileName string, content io.Reader) (entity.TicketRecord, error) {
	data, err := io.ReadAll(content)
	if err != nil {
		return entity.TicketRecord{}, common.NewTechnicalError(common.CodePDFProcessing,
			fmt.Sprintf("processing PDF file: %s", fileName), err)
	}
	text, err := e.text.ExtractText(data)
	if err != nil {
		e.logger.Error("extract.pdf.failed", "file", fileName, "err", err)
		return entity.TicketRecord{}, common.NewTechnicalError(common.CodePDFProcessing,
			fmt.Sprintf("processing PDF file: %s", fileName), err)
	}

	values := e.classifier.Classify(text)
	e.logger.Debug("extract.pdf.ok",
		"file", fileName,
		"invoices", values.Invoices,
		"receipts", values.Receipts,
	)

	return entity.TicketRecord{
		SourceFolder: folderName,
		SourceFile:   fileName,
		Invoices:     values.Invoices,
		Receipts:     values.Receipts,
	}, nil
}
