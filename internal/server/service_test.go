package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/christiancanari/advance-ticket-service/constants"
	"github.com/christiancanari/advance-ticket-service/internal/common"
)

type fakeProcessor struct {
	gotInput []byte
	out      []byte
	err      error
}

func (p *fakeProcessor) Process(_ context.Context, input io.Reader) ([]byte, error) {
	data, err := io.ReadAll(input)
	if err != nil {
		return nil, err
	}
	p.gotInput = data
	if p.err != nil {
		return nil, p.err
	}
	return p.out, nil
}

// multipartUpload builds a multipart body carrying "content" under the
// given form field name.
func multipartUpload(t *testing.T, field, content string) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile(field, "carpetas.xlsx")
	require.NoError(t, err)
	_, err = fw.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, mw.Close())
	return &buf, mw.FormDataContentType()
}

func decodeError(t *testing.T, body io.Reader) errorResponse {
	t.Helper()
	var resp errorResponse
	require.NoError(t, json.NewDecoder(body).Decode(&resp))
	return resp
}

func TestProcessTicket_Success(t *testing.T) {
	proc := &fakeProcessor{out: []byte("resulting workbook")}
	srv := httptest.NewServer(NewService(proc, nil).Router())
	defer srv.Close()

	body, contentType := multipartUpload(t, "file", "folders workbook bytes")
	resp, err := http.Post(srv.URL+"/advances/process-ticket", contentType, body)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, constants.XLSXContentType, resp.Header.Get("Content-Type"))

	disposition := resp.Header.Get("Content-Disposition")
	assert.True(t, strings.HasPrefix(disposition, `attachment; filename="resultado_`), disposition)
	assert.True(t, strings.HasSuffix(disposition, `.xlsx"`), disposition)

	out, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, []byte("resulting workbook"), out)
	assert.Equal(t, []byte("folders workbook bytes"), proc.gotInput)
}

func TestProcessTicket_MethodNotAllowed(t *testing.T) {
	srv := httptest.NewServer(NewService(&fakeProcessor{}, nil).Router())
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/advances/process-ticket")
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
}

func TestProcessTicket_MissingUpload(t *testing.T) {
	srv := httptest.NewServer(NewService(&fakeProcessor{}, nil).Router())
	defer srv.Close()

	body, contentType := multipartUpload(t, "wrong-field", "irrelevant")
	resp, err := http.Post(srv.URL+"/advances/process-ticket", contentType, body)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))

	errBody := decodeError(t, resp.Body)
	assert.Equal(t, http.StatusBadRequest, errBody.Status)
	assert.Equal(t, common.CodeExcelInvalid, errBody.Type)
	assert.NotEmpty(t, errBody.Timestamp)
}

func TestProcessTicket_BusinessFailure(t *testing.T) {
	proc := &fakeProcessor{err: common.NewBusinessError(common.CodeNoFoldersFound, "no folders to process")}
	srv := httptest.NewServer(NewService(proc, nil).Router())
	defer srv.Close()

	body, contentType := multipartUpload(t, "file", "empty workbook")
	resp, err := http.Post(srv.URL+"/advances/process-ticket", contentType, body)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	errBody := decodeError(t, resp.Body)
	assert.Equal(t, common.CodeNoFoldersFound, errBody.Type)
	assert.Equal(t, "no folders to process", errBody.Message)
}

func TestProcessTicket_StorageFailureIsUnavailable(t *testing.T) {
	proc := &fakeProcessor{err: common.NewTechnicalError(common.CodeStorageAccess, "processing folder: Carpeta A", errors.New("timeout"))}
	srv := httptest.NewServer(NewService(proc, nil).Router())
	defer srv.Close()

	body, contentType := multipartUpload(t, "file", "workbook")
	resp, err := http.Post(srv.URL+"/advances/process-ticket", contentType, body)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)

	errBody := decodeError(t, resp.Body)
	assert.Equal(t, common.CodeStorageAccess, errBody.Type)
	assert.Equal(t, http.StatusServiceUnavailable, errBody.Status)
}

func TestProcessTicket_UncategorizedFailureIsInternal(t *testing.T) {
	proc := &fakeProcessor{err: errors.New("boom")}
	srv := httptest.NewServer(NewService(proc, nil).Router())
	defer srv.Close()

	body, contentType := multipartUpload(t, "file", "workbook")
	resp, err := http.Post(srv.URL+"/advances/process-ticket", contentType, body)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)

	errBody := decodeError(t, resp.Body)
	assert.Equal(t, common.CodeUnexpected, errBody.Type)
}

func TestHealthz(t *testing.T) {
	srv := httptest.NewServer(NewService(&fakeProcessor{}, nil).Router())
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/healthz")
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestResultFilename(t *testing.T) {
	at := time.Date(2024, 5, 17, 9, 4, 5, 0, time.UTC)
	assert.Equal(t, "resultado_20240517_090405.xlsx", resultFilename(at))
}
