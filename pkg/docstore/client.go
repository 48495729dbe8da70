// Клиент внешнего сервиса хранения документов (прокси над Google Drive).
// Сервис владеет байтами файлов; CRM хранит только возвращённые
// идентификаторы и ссылки.
package docstore

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"
	"time"

	apperrors "solar-crm/pkg/errors"
)

type Client struct {
	baseURL    string
	httpClient *http.Client
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// Document - метаданные файла во внешнем хранилище.
type Document struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	MimeType       string `json:"mimeType"`
	CreatedTime    string `json:"createdTime"`
	WebViewLink    string `json:"webViewLink"`
	WebContentLink string `json:"webContentLink"`
}

type listResponse struct {
	Status    string     `json:"status"`
	Documents []Document `json:"documents"`
	Message   string     `json:"message,omitempty"`
}

// UploadResult - ответ на обычную загрузку документов объекта.
type UploadResult struct {
	Status  string `json:"status"`
	Count   int    `json:"count"`
	Folder  string `json:"folder,omitempty"`
	Message string `json:"message,omitempty"`
}

// UploadedFile - один файл, загруженный через /workflow/upload.
type UploadedFile struct {
	WebViewLink string `json:"webViewLink"`
	FileID      string `json:"fileId"`
}

type workflowUploadResponse struct {
	Status  string         `json:"status"`
	Files   []UploadedFile `json:"files"`
	Message string         `json:"message,omitempty"`
}

type deleteResponse struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

// FilePart - файл для multipart-загрузки.
type FilePart struct {
	Name   string
	Reader io.Reader
}

// ListDocuments возвращает список документов объекта.
// GET {base}/documents/{objectNumber}
func (c *Client) ListDocuments(ctx context.Context, objectNumber uint64) ([]Document, error) {
	url := fmt.Sprintf("%s/documents/%d", c.baseURL, objectNumber)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrDocStoreUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: статус %d", apperrors.ErrDocStoreUnavailable, resp.StatusCode)
	}

	var parsed listResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrDocStoreUnavailable, err)
	}
	if parsed.Status != "success" {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrDocStoreUnavailable, parsed.Message)
	}
	if parsed.Documents == nil {
		return []Document{}, nil
	}
	return parsed.Documents, nil
}

// Upload загружает документы объекта.
// POST {base}/upload/ multipart(files[], object_number, doc_type)
func (c *Client) Upload(ctx context.Context, files []FilePart, objectNumber uint64, docType string) (*UploadResult, error) {
	fields := map[string]string{
		"object_number": strconv.FormatUint(objectNumber, 10),
		"doc_type":      docType,
	}
	body, contentType, err := buildMultipart(files, fields)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/upload/", body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", contentType)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrUploadFailed, err)
	}
	defer resp.Body.Close()

	var parsed UploadResult
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrUploadFailed, err)
	}
	if parsed.Status != "success" {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrUploadFailed, parsed.Message)
	}
	return &parsed, nil
}

// WorkflowUpload загружает файлы quick-update, помечая их объектом и этапом.
// POST {base}/workflow/upload multipart(files[], object_number, doc_type, stage_key)
func (c *Client) WorkflowUpload(ctx context.Context, files []FilePart, objectNumber uint64, docType, stageKey string) ([]UploadedFile, error) {
	fields := map[string]string{
		"object_number": strconv.FormatUint(objectNumber, 10),
		"doc_type":      docType,
		"stage_key":     stageKey,
	}
	body, contentType, err := buildMultipart(files, fields)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/workflow/upload", body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", contentType)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrUploadFailed, err)
	}
	defer resp.Body.Close()

	var parsed workflowUploadResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrUploadFailed, err)
	}
	if parsed.Status != "success" {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrUploadFailed, parsed.Message)
	}
	return parsed.Files, nil
}

// Delete удаляет файл из хранилища.
// POST {base}/delete JSON {file_id}
func (c *Client) Delete(ctx context.Context, fileID string) error {
	payload, err := json.Marshal(map[string]string{"file_id": fileID})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/delete", bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", apperrors.ErrDocStoreUnavailable, err)
	}
	defer resp.Body.Close()

	var parsed deleteResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return fmt.Errorf("%w: %v", apperrors.ErrDocStoreUnavailable, err)
	}
	if parsed.Status != "success" {
		return fmt.Errorf("%w: %s", apperrors.ErrDocStoreUnavailable, parsed.Message)
	}
	return nil
}

// Thumb отдаёт байты превью для проксирования клиенту.
// GET {base}/thumb/{fileId}
// Закрыть тело ответа обязан вызывающий.
func (c *Client) Thumb(ctx context.Context, fileID string) (io.ReadCloser, string, error) {
	url := fmt.Sprintf("%s/thumb/%s", c.baseURL, fileID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, "", err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, "", fmt.Errorf("%w: %v", apperrors.ErrDocStoreUnavailable, err)
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, "", fmt.Errorf("%w: статус %d", apperrors.ErrDocStoreUnavailable, resp.StatusCode)
	}
	return resp.Body, resp.Header.Get("Content-Type"), nil
}

func buildMultipart(files []FilePart, fields map[string]string) (*bytes.Buffer, string, error) {
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	for _, f := range files {
		part, err := writer.CreateFormFile("files", f.Name)
		if err != nil {
			return nil, "", err
		}
		if _, err := io.Copy(part, f.Reader); err != nil {
			return nil, "", err
		}
	}
	for key, value := range fields {
		if err := writer.WriteField(key, value); err != nil {
			return nil, "", err
		}
	}

	if err := writer.Close(); err != nil {
		return nil, "", err
	}
	return body, writer.FormDataContentType(), nil
}
