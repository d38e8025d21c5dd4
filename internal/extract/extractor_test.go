package extract

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/christiancanari/advance-ticket-service/internal/classifier"
	"github.com/christiancanari/advance-ticket-service/internal/common"
)

// fakeText returns canned text, or an error, regardless of input.
type fakeText struct {
	text string
	err  error
}

func (f fakeText) ExtractText([]byte) (string, error) {
	return f.text, f.err
}

func newTestClassifier(t *testing.T) *classifier.Classifier {
	t.Helper()
	c, err := classifier.New(`F\d{3}-\d{8}`, `B\d{3}-\d{8}`)
	require.NoError(t, err)
	return c
}

func TestExtract_BuildsRecord(t *testing.T) {
	ex := NewExtractor(fakeText{text: "factura F123-12345678 boleta B001-00000009"}, newTestClassifier(t), nil)

	rec, err := ex.Extract("Carpeta A", "ticket-01.pdf", strings.NewReader("%PDF"))
	require.NoError(t, err)

	assert.Equal(t, "Carpeta A", rec.SourceFolder)
	assert.Equal(t, "ticket-01.pdf", rec.SourceFile)
	assert.Equal(t, "F123-12345678", rec.Invoices)
	assert.Equal(t, "B001-00000009", rec.Receipts)
}

func TestExtract_NoMatchesYieldsEmptyFields(t *testing.T) {
	ex := NewExtractor(fakeText{text: "sin codigos"}, newTestClassifier(t), nil)

	rec, err := ex.Extract("Carpeta A", "ticket-02.pdf", strings.NewReader("%PDF"))
	require.NoError(t, err)
	assert.Equal(t, "", rec.Invoices)
	assert.Equal(t, "", rec.Receipts)
}

func TestExtract_ConversionFailure(t *testing.T) {
	cause := errors.New("broken xref table")
	ex := NewExtractor(fakeText{err: cause}, newTestClassifier(t), nil)

	_, err := ex.Extract("Carpeta A", "roto.pdf", strings.NewReader("not a pdf"))
	require.Error(t, err)

	ce, ok := common.AsCore(err)
	require.True(t, ok)
	assert.Equal(t, common.Technical, ce.Category)
	assert.Equal(t, common.CodePDFProcessing, ce.Code)
	assert.Contains(t, ce.Message, "roto.pdf")
	assert.ErrorIs(t, err, cause)
}

type errReader struct{}

func (errReader) Read([]byte) (int, error) {
	return 0, errors.New("stream reset")
}

func TestExtract_StreamReadFailure(t *testing.T) {
	ex := NewExtractor(fakeText{text: "ignored"}, newTestClassifier(t), nil)

	_, err := ex.Extract("Carpeta A", "cortado.pdf", errReader{})
	require.Error(t, err)

	ce, ok := common.AsCore(err)
	require.True(t, ok)
	assert.Equal(t, common.CodePDFProcessing, ce.Code)
	assert.Contains(t, ce.Message, "cortado.pdf")
}
