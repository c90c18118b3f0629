package api

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"strings"

	"civicsync-client/models"
)

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

// UploadFile sends f to the file store as multipart field "file" and
// returns the web path of the stored copy (e.g. "/media/<id>.jpg").
func (c *Client) UploadFile(ctx context.Context, f *models.AttachedFile) (string, error) {
	if f == nil {
		return "", transportError(OpUpload, errors.New("no file to upload"))
	}

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	name := f.Name
	if name == "" {
		name = "upload"
	}
	contentType := f.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename="%s"`, quoteEscaper.Replace(name)))
	header.Set("Content-Type", contentType)
	part, err := w.CreatePart(header)
	if err != nil {
		return "", transportError(OpUpload, fmt.Errorf("create form part: %w", err))
	}
	if _, err := part.Write(f.Data); err != nil {
		return "", transportError(OpUpload, fmt.Errorf("write form part: %w", err))
	}
	if err := w.Close(); err != nil {
		return "", transportError(OpUpload, fmt.Errorf("close form: %w", err))
	}

	var result models.UploadResult
	if err := c.do(ctx, OpUpload, http.MethodPost, "/files/upload", &buf, w.FormDataContentType(), &result); err != nil {
		return "", err
	}
	if result.URL == "" {
		return "", transportError(OpUpload, errors.New("upload response carried no url"))
	}
	return result.URL, nil
}
