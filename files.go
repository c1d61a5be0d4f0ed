package geminikit

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/mixaill76/geminikit/internal/dialect"
	"github.com/mixaill76/geminikit/internal/monitoring"
)

const (
	uploadChunkSize    = 8 * 1024 * 1024
	uploadMaxRetries   = 3
	uploadInitialDelay = 1000 * time.Millisecond
)

// Files manages uploaded file resources. The file API exists only on the
// Gemini Developer API; every method rejects Vertex AI clients.
type Files struct {
	api *apiClient
}

// UploadConfig holds optional upload metadata.
type UploadConfig struct {
	DisplayName string
	MIMEType    string
}

func (f *Files) requireGemini() error {
	if f.api.dialect == dialect.VertexAI {
		return fmt.Errorf("geminikit: the Files API is not supported on the Vertex backend")
	}
	return nil
}

// uploadBaseURL is the resumable-upload start endpoint. Uploads ride a
// separate /upload/ path prefix outside the regular API surface.
func (f *Files) uploadBaseURL() string {
	base := f.api.baseURL
	if base == "" {
		base = geminiBaseURL
	}
	return strings.TrimSuffix(base, "/") + "/upload/" + geminiAPIVersion + "/files"
}

// Upload pushes size bytes from r through the chunked resumable-upload
// protocol and returns the created file resource once the backend reports
// the upload final.
func (f *Files) Upload(ctx context.Context, r io.Reader, size int64, config *UploadConfig) (*File, error) {
	if err := f.requireGemini(); err != nil {
		return nil, err
	}

	displayName := ""
	mimeType := "application/octet-stream"
	if config != nil {
		displayName = config.DisplayName
		if config.MIMEType != "" {
			mimeType = config.MIMEType
		}
	}
	if displayName == "" {
		displayName = "upload-" + uuid.NewString()
	}

	sessionURL, err := f.startUpload(ctx, size, mimeType, displayName)
	if err != nil {
		return nil, err
	}

	return f.uploadChunks(ctx, r, size, sessionURL)
}

// startUpload performs the protocol's start call and returns the session URL
// from the x-goog-upload-url response header.
func (f *Files) startUpload(ctx context.Context, size int64, mimeType, displayName string) (string, error) {
	body := map[string]any{
		"file": map[string]any{"displayName": displayName},
	}

	req, err := f.api.newRequest(ctx, http.MethodPost, f.uploadBaseURL(), body)
	if err != nil {
		return "", err
	}
	req.Header.Set("X-Goog-Upload-Protocol", "resumable")
	req.Header.Set("X-Goog-Upload-Command", "start")
	req.Header.Set("X-Goog-Upload-Header-Content-Length", strconv.FormatInt(size, 10))
	req.Header.Set("X-Goog-Upload-Header-Content-Type", mimeType)

	resp, err := f.api.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("upload start failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= 400 {
		respBody, readErr := io.ReadAll(resp.Body)
		if readErr != nil {
			return "", fmt.Errorf("failed to read error response: %w", readErr)
		}
		return "", apiErrorFrom(resp.StatusCode, respBody)
	}

	sessionURL := resp.Header.Get("x-goog-upload-url")
	if sessionURL == "" {
		return "", fmt.Errorf("upload start response carried no x-goog-upload-url header")
	}
	return sessionURL, nil
}

// uploadChunks sends fixed-size chunks to the session URL, retrying each
// chunk with doubling backoff. A chunk attempt counts as answered as soon as
// the response carries any x-goog-upload-status header; the terminal status
// must read "final" once all bytes are sent.
func (f *Files) uploadChunks(ctx context.Context, r io.Reader, size int64, sessionURL string) (*File, error) {
	var offset int64
	uploadStatus := "active"
	var finalBody []byte

	buf := make([]byte, uploadChunkSize)
	for offset < size && uploadStatus == "active" {
		chunkLen, err := io.ReadFull(r, buf)
		last := offset+int64(chunkLen) >= size
		if err == io.ErrUnexpectedEOF || err == io.EOF {
			last = true
		} else if err != nil {
			return nil, fmt.Errorf("failed to read upload chunk at offset %d: %w", offset, err)
		}
		if chunkLen == 0 {
			break
		}

		command := "upload"
		if last {
			command = "upload, finalize"
		}

		delay := uploadInitialDelay
		answered := false
		for attempt := 0; attempt <= uploadMaxRetries; attempt++ {
			if attempt > 0 {
				monitoring.UploadChunkRetriesTotal.Inc()
				select {
				case <-ctx.Done():
					return nil, ctx.Err()
				case <-time.After(delay):
				}
				delay *= 2
			}

			req, err := http.NewRequestWithContext(ctx, http.MethodPost, sessionURL, bytes.NewReader(buf[:chunkLen]))
			if err != nil {
				return nil, fmt.Errorf("failed to create chunk request: %w", err)
			}
			req.Header.Set("X-Goog-Upload-Command", command)
			req.Header.Set("X-Goog-Upload-Offset", strconv.FormatInt(offset, 10))
			req.Header.Set("Content-Length", strconv.Itoa(chunkLen))
			if err := f.api.provider.Apply(ctx, req.Header); err != nil {
				return nil, fmt.Errorf("failed to apply credentials: %w", err)
			}

			resp, err := f.api.httpClient.Do(req)
			if err != nil {
				f.api.logger.Debug("Upload chunk attempt failed", "offset", offset, "attempt", attempt, "error", err)
				continue
			}

			respBody, readErr := io.ReadAll(resp.Body)
			_ = resp.Body.Close()
			if readErr != nil {
				f.api.logger.Debug("Upload chunk read failed", "offset", offset, "attempt", attempt, "error", readErr)
				continue
			}

			if status := resp.Header.Get("x-goog-upload-status"); status != "" {
				uploadStatus = status
				finalBody = respBody
				answered = true
				break
			}
		}
		if !answered {
			return nil, fmt.Errorf("upload chunk at offset %d got no upload status after %d retries", offset, uploadMaxRetries)
		}

		offset += int64(chunkLen)
	}

	if uploadStatus != "final" {
		return nil, fmt.Errorf("all content uploaded but upload status is %q, not final", uploadStatus)
	}

	var envelope struct {
		File *File `json:"file"`
	}
	if err := json.Unmarshal(finalBody, &envelope); err != nil {
		return nil, fmt.Errorf("failed to decode upload response: %w", err)
	}
	if envelope.File == nil {
		return nil, fmt.Errorf("upload response carried no file resource")
	}
	return envelope.File, nil
}

// Get fetches one file resource, accepting any of the id spellings
// (files/<id>, bare id, download URL, file or video record).
func (f *Files) Get(ctx context.Context, name any) (*File, error) {
	if err := f.requireGemini(); err != nil {
		return nil, err
	}

	id, err := dialect.FileID(name)
	if err != nil {
		return nil, err
	}

	resp, err := f.api.request(ctx, http.MethodGet, "files/"+id, nil)
	if err != nil {
		return nil, err
	}
	return fromRecord[File](resp)
}

// Delete removes a file resource.
func (f *Files) Delete(ctx context.Context, name any) error {
	if err := f.requireGemini(); err != nil {
		return err
	}

	id, err := dialect.FileID(name)
	if err != nil {
		return err
	}

	_, err = f.api.request(ctx, http.MethodDelete, "files/"+id, nil)
	return err
}

func (f *Files) listPage(ctx context.Context, params map[string]any) (map[string]any, error) {
	path := "files"
	if token, ok := params["pageToken"].(string); ok && token != "" {
		path += "?pageToken=" + url.QueryEscape(token)
	}
	return f.api.request(ctx, http.MethodGet, path, nil)
}

// List pages through uploaded files.
func (f *Files) List(ctx context.Context) (*Pager[File], error) {
	if err := f.requireGemini(); err != nil {
		return nil, err
	}

	resp, err := f.listPage(ctx, map[string]any{})
	if err != nil {
		return nil, err
	}
	return newPager[File]("files", f.listPage, resp, map[string]any{})
}
