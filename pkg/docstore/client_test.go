package docstore

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "solar-crm/pkg/errors"
)

func newTestClient(handler http.HandlerFunc) (*Client, *httptest.Server) {
	server := httptest.NewServer(handler)
	return NewClient(server.URL, 5*time.Second), server
}

func TestListDocuments(t *testing.T) {
	client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/documents/42", r.URL.Path)
		json.NewEncoder(w).Encode(listResponse{
			Status: "success",
			Documents: []Document{
				{ID: "doc-1", Name: "Договір.pdf", MimeType: "application/pdf", WebViewLink: "https://drive/view/doc-1"},
			},
		})
	})
	defer server.Close()

	docs, err := client.ListDocuments(context.Background(), 42)
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, "doc-1", docs[0].ID)
	assert.Equal(t, "Договір.pdf", docs[0].Name)
}

// Пустая папка объекта - success без массива; клиент отдаёт пустой
// срез, а не nil.
func TestListDocuments_EmptyFolder(t *testing.T) {
	client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{"status": "success"})
	})
	defer server.Close()

	docs, err := client.ListDocuments(context.Background(), 42)
	require.NoError(t, err)
	assert.NotNil(t, docs)
	assert.Empty(t, docs)
}

func TestListDocuments_ServerError(t *testing.T) {
	client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})
	defer server.Close()

	_, err := client.ListDocuments(context.Background(), 42)
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrDocStoreUnavailable)
}

// Недоступность сервиса (сетевая ошибка до HTTP-ответа) тоже заворачивается
// в ErrDocStoreUnavailable.
func TestListDocuments_Unreachable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	client := NewClient(server.URL, time.Second)
	server.Close()

	_, err := client.ListDocuments(context.Background(), 42)
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrDocStoreUnavailable)
}

func TestWorkflowUpload(t *testing.T) {
	client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/workflow/upload", r.URL.Path)

		require.NoError(t, r.ParseMultipartForm(1<<20))
		assert.Equal(t, "42", r.FormValue("object_number"))
		assert.Equal(t, "workflow", r.FormValue("doc_type"))
		assert.Equal(t, "installation", r.FormValue("stage_key"))
		require.Len(t, r.MultipartForm.File["files"], 2)
		assert.Equal(t, "photo1.jpg", r.MultipartForm.File["files"][0].Filename)

		json.NewEncoder(w).Encode(workflowUploadResponse{
			Status: "success",
			Files: []UploadedFile{
				{WebViewLink: "https://drive/view/1", FileID: "file-1"},
				{WebViewLink: "https://drive/view/2", FileID: "file-2"},
			},
		})
	})
	defer server.Close()

	files := []FilePart{
		{Name: "photo1.jpg", Reader: strings.NewReader("jpeg-1")},
		{Name: "photo2.jpg", Reader: strings.NewReader("jpeg-2")},
	}
	uploaded, err := client.WorkflowUpload(context.Background(), files, 42, "workflow", "installation")
	require.NoError(t, err)
	require.Len(t, uploaded, 2)
	assert.Equal(t, "file-1", uploaded[0].FileID)
	assert.Equal(t, "https://drive/view/2", uploaded[1].WebViewLink)
}

func TestWorkflowUpload_Rejected(t *testing.T) {
	client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(workflowUploadResponse{Status: "error", Message: "квота вичерпана"})
	})
	defer server.Close()

	_, err := client.WorkflowUpload(context.Background(), []FilePart{{Name: "a.jpg", Reader: strings.NewReader("x")}}, 42, "workflow", "contract")
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrUploadFailed)
	assert.Contains(t, err.Error(), "квота вичерпана")
}

func TestUpload(t *testing.T) {
	client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/upload/", r.URL.Path)
		require.NoError(t, r.ParseMultipartForm(1<<20))
		assert.Equal(t, "contracts", r.FormValue("doc_type"))
		json.NewEncoder(w).Encode(UploadResult{Status: "success", Count: 1, Folder: "42"})
	})
	defer server.Close()

	result, err := client.Upload(context.Background(), []FilePart{{Name: "d.pdf", Reader: strings.NewReader("pdf")}}, 42, "contracts")
	require.NoError(t, err)
	assert.Equal(t, 1, result.Count)
	assert.Equal(t, "42", result.Folder)
}

func TestDelete(t *testing.T) {
	client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/delete", r.URL.Path)
		var payload map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		assert.Equal(t, "file-1", payload["file_id"])
		json.NewEncoder(w).Encode(deleteResponse{Status: "success"})
	})
	defer server.Close()

	require.NoError(t, client.Delete(context.Background(), "file-1"))
}

func TestDelete_Failure(t *testing.T) {
	client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(deleteResponse{Status: "error", Message: "файл не знайдено"})
	})
	defer server.Close()

	err := client.Delete(context.Background(), "missing")
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrDocStoreUnavailable)
}

func TestThumb(t *testing.T) {
	client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/thumb/file-1", r.URL.Path)
		w.Header().Set("Content-Type", "image/jpeg")
		w.Write([]byte("jpeg-bytes"))
	})
	defer server.Close()

	body, contentType, err := client.Thumb(context.Background(), "file-1")
	require.NoError(t, err)
	defer body.Close()

	assert.Equal(t, "image/jpeg", contentType)
	data, err := io.ReadAll(body)
	require.NoError(t, err)
	assert.Equal(t, "jpeg-bytes", string(data))
}

func TestThumb_NotFound(t *testing.T) {
	client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})
	defer server.Close()

	_, _, err := client.Thumb(context.Background(), "missing")
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrDocStoreUnavailable)
}
