package fleet

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// API path for software package uploads.
const uploadPath = "/api/v1/fleet/software/package"

// Uploads installer packages to a Fleet server.
type Client struct {
	BaseURL    string       // Fleet base URL (e.g., "https://fleet.example.com").
	Token      string       // API token sent as a bearer Authorization header.
	HTTPClient *http.Client // HTTP client override. Nil uses [http.DefaultClient], which applies no timeout; uploads of large packages block until the server responds or the context is cancelled.
}

// Uploads a package file and attaches it to a team.
//
// The request is a multipart form with team_id and self_service fields and
// the package as a binary "software" part. A response status outside 2xx is
// returned as [ErrUpload] with the server's body attached; the body of a
// successful response is parsed as JSON.
func (c *Client) UploadPackage(ctx context.Context, pkgPath string, teamID int, selfService bool) (*Package, error) {
	f, err := os.Open(pkgPath)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpload, err)
	}
	defer f.Close()

	body, contentType := uploadBody(f, filepath.Base(pkgPath), teamID, selfService)

	url := strings.TrimRight(c.BaseURL, "/") + uploadPath
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpload, err)
	}
	req.Header.Set("Authorization", "Bearer "+c.Token)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("kbn-xsrf", "true")

	slog.Debug("uploading package",
		"url", url,
		"package", pkgPath,
		"team_id", teamID,
		"self_service", selfService,
	)

	client := c.HTTPClient
	if client == nil {
		client = http.DefaultClient
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpload, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: reading response: %v", ErrUpload, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: %s: %s", ErrUpload, resp.Status, bodySnippet(raw))
	}

	return parsePackage(raw)
}

// Builds the multipart request body as a stream.
//
// The form is written through a pipe so the package file is never buffered
// in memory. A write failure surfaces as a read error on the returned
// reader, which the HTTP client reports as a request error.
func uploadBody(pkg io.Reader, filename string, teamID int, selfService bool) (io.Reader, string) {
	pr, pw := io.Pipe()
	mw := multipart.NewWriter(pw)

	go func() {
		pw.CloseWithError(writeForm(mw, pkg, filename, teamID, selfService))
	}()

	return pr, mw.FormDataContentType()
}

// Writes the form fields and package part, then closes the writer.
func writeForm(mw *multipart.Writer, pkg io.Reader, filename string, teamID int, selfService bool) error {
	if err := mw.WriteField("team_id", strconv.Itoa(teamID)); err != nil {
		return err
	}
	if err := mw.WriteField("self_service", strconv.FormatBool(selfService)); err != nil {
		return err
	}

	// CreateFormFile declares application/octet-stream for the part.
	part, err := mw.CreateFormFile("software", filename)
	if err != nil {
		return err
	}
	if _, err := io.Copy(part, pkg); err != nil {
		return err
	}

	return mw.Close()
}

// Returns a single-line snippet of a response body for error messages.
func bodySnippet(raw []byte) string {
	const maxLen = 200

	s := strings.Join(strings.Fields(string(raw)), " ")
	if len(s) > maxLen {
		s = s[:maxLen] + "..."
	}
	if s == "" {
		s = "(empty body)"
	}
	return s
}
