package docuware

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/dmitrymomot/docuware/core/logger"
	"github.com/dmitrymomot/docuware/core/storage"
)

func documentsPath(fileCabinetID string) string {
	return "/FileCabinets/" + fileCabinetID + "/Documents"
}

func documentPath(fileCabinetID string, documentID int) string {
	return documentsPath(fileCabinetID) + "/" + strconv.Itoa(documentID)
}

// DownloadFilename is the name DownloadDocument stores a document under.
func DownloadFilename(documentID int, at time.Time) string {
	return strconv.Itoa(documentID) + "-" + at.Format("20060102") + ".pdf"
}

// DocumentsList returns every document in a file cabinet. A body that is
// empty or not valid JSON yields a nil list and no error. Valid JSON is
// always returned, with members of an unexpected type left at zero and
// the full body kept in Raw.
func (c *Client) DocumentsList(ctx context.Context, fileCabinetID string) (*DocumentList, error) {
	return c.listDocuments(ctx, fileCabinetID, documentsPath(fileCabinetID))
}

// DocumentsListWithFilter returns the documents matching query. The query is
// appended as q= without encoding; the caller must encode it.
func (c *Client) DocumentsListWithFilter(ctx context.Context, fileCabinetID, query string) (*DocumentList, error) {
	return c.listDocuments(ctx, fileCabinetID, documentsPath(fileCabinetID)+"?q="+query)
}

func (c *Client) listDocuments(ctx context.Context, fileCabinetID, path string) (*DocumentList, error) {
	if err := c.EnsureSession(ctx); err != nil {
		return nil, err
	}

	resp, err := c.do(ctx, request{
		method: http.MethodGet,
		path:   path,
		header: http.Header{"Accept": {"application/json"}},
	})
	if err != nil {
		return nil, err
	}
	defer drain(resp)

	if err := c.checkResponse(ctx, resp); err != nil {
		return nil, err
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: read documents: %w", ErrTransport, err)
	}

	body = bytes.TrimSpace(body)
	if len(body) == 0 || !json.Valid(body) || bytes.Equal(body, []byte("null")) {
		c.log.WarnContext(ctx, "documents response is not valid JSON",
			logger.FileCabinet(fileCabinetID),
			logger.Count("body_bytes", len(body)),
		)
		return nil, nil
	}

	list := &DocumentList{Raw: json.RawMessage(body)}
	if err := json.Unmarshal(body, list); err != nil {
		c.log.WarnContext(ctx, "documents response only partly decoded",
			logger.FileCabinet(fileCabinetID),
			logger.Error(err),
		)
	}
	return list, nil
}

// DownloadDocument streams a document into storage as
// "{documentID}-{YYYYMMDD}.pdf" and returns that name. The date is today's
// per the client clock. Existing files are overwritten and a failed transfer
// can leave a partial file.
func (c *Client) DownloadDocument(ctx context.Context, fileCabinetID string, documentID int, opts ...DownloadOption) (string, error) {
	o := &downloadOptions{dir: c.cfg.StoragePath}
	for _, opt := range opts {
		opt(o)
	}

	filename := DownloadFilename(documentID, c.now())
	target := storage.Join(o.dir, filename)
	if v, ok := c.storage.(storage.PathValidator); ok {
		if err := v.ValidatePath(target); err != nil {
			return "", fmt.Errorf("store document %d: %w", documentID, err)
		}
	}

	if err := c.EnsureSession(ctx); err != nil {
		return "", err
	}

	resp, err := c.do(ctx, request{
		method: http.MethodGet,
		path:   documentPath(fileCabinetID, documentID) + "/FileDownload?targetFileType=Auto&keepAnnotations=false",
	})
	if err != nil {
		return "", err
	}
	defer drain(resp)

	if err := c.checkResponse(ctx, resp); err != nil {
		return "", err
	}

	n, err := c.storage.Put(ctx, target, resp.Body)
	if err != nil {
		c.log.ErrorContext(ctx, "document download failed",
			logger.FileCabinet(fileCabinetID),
			logger.DocumentID(documentID),
			logger.BytesOut(n),
			logger.Error(err),
		)
		return "", fmt.Errorf("store document %d: %w", documentID, err)
	}

	c.log.InfoContext(ctx, "document downloaded",
		logger.FileCabinet(fileCabinetID),
		logger.DocumentID(documentID),
		logger.Filename(filename),
		logger.BytesOut(n),
	)
	return filename, nil
}

// UpdateIndexValues writes fields to a document and reports whether the
// service accepted them.
func (c *Client) UpdateIndexValues(ctx context.Context, fileCabinetID string, documentID int, fields []Field) (bool, error) {
	payload, err := json.Marshal(newFieldsPayload(fields))
	if err != nil {
		return false, fmt.Errorf("encode fields: %w", err)
	}

	if err := c.EnsureSession(ctx); err != nil {
		return false, err
	}

	resp, err := c.do(ctx, request{
		method: http.MethodPut,
		path:   documentPath(fileCabinetID, documentID) + "/Fields",
		body:   bytes.NewReader(payload),
		header: http.Header{
			"Accept":       {"application/json"},
			"Content-Type": {"application/json"},
		},
	})
	if err != nil {
		return false, err
	}
	defer drain(resp)

	if err := c.checkResponse(ctx, resp); err != nil {
		return false, err
	}

	c.log.InfoContext(ctx, "index values updated",
		logger.FileCabinet(fileCabinetID),
		logger.DocumentID(documentID),
		logger.Count("fields", len(fields)),
	)
	return successful(resp), nil
}
