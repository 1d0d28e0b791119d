// Package fetch opens the resume and job-description sources handed to the CLI:
// standard input, local files and http(s) URLs. It also classifies each source
// by document kind so the extractor knows how to turn it into text.
package fetch

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// Size limits to prevent memory overload. Resumes and postings are small; the
// limits only stop accidental huge inputs.
const (
	MaxFileSizeBytes = 20 * 1024 * 1024 // 20MB limit for files and stdin
	MaxHTTPSizeBytes = 20 * 1024 * 1024 // 20MB limit for HTTP content (may not have Content-Length)
)

// HTTPRequestTimeout bounds a whole job-posting download.
const HTTPRequestTimeout = 30 * time.Second

// specific timeout thresholds (based on HTTPRequestTimeout)
var (
	HTTPDialTimeout           = HTTPRequestTimeout / 6
	HTTPTLSTimeout            = HTTPRequestTimeout / 6
	HTTPResponseHeaderTimeout = HTTPRequestTimeout / 2
)

// sniffLen is how much content http.DetectContentType looks at.
const sniffLen = 512

// Kind identifies the document format of a source.
type Kind int

const (
	// PlainText is used as-is
	PlainText Kind = iota
	// HTML pages, typically job postings
	HTML
	// PDF documents, typically resumes
	PDF
	// DOCX word-processing documents
	DOCX
)

// String returns the string representation of the kind.
func (k Kind) String() string {
	switch k {
	case PlainText:
		return "text"
	case HTML:
		return "html"
	case PDF:
		return "pdf"
	case DOCX:
		return "docx"
	default:
		return "unknown"
	}
}

// Document is an open source together with its detected kind.
// Callers must Close it.
type Document struct {
	io.Reader
	Kind   Kind
	Source string
	closer io.Closer
}

// Close releases the underlying file or response body.
func (d *Document) Close() error {
	if d.closer == nil {
		return nil
	}
	return d.closer.Close()
}

// limitedReadCloser wraps an io.ReadCloser to enforce size limits
type limitedReadCloser struct {
	io.ReadCloser
	N      int64  // max bytes remaining
	source string // for error messages
}

func (l *limitedReadCloser) Read(p []byte) (n int, err error) {
	if l.N <= 0 {
		return 0, fmt.Errorf("content from %q exceeds size limit", l.source)
	}
	if int64(len(p)) > l.N {
		p = p[0:l.N]
	}
	n, err = l.ReadCloser.Read(p)
	l.N -= int64(n)
	return
}

// httpClient is a shared HTTP client with timeouts to prevent indefinite hangs.
var httpClient = &http.Client{
	Timeout: HTTPRequestTimeout,
	Transport: &http.Transport{
		DialContext: (&net.Dialer{
			Timeout: HTTPDialTimeout,
		}).DialContext,
		TLSHandshakeTimeout:   HTTPTLSTimeout,
		ResponseHeaderTimeout: HTTPResponseHeaderTimeout,
		DisableKeepAlives:     true,
	},
}

// Open retrieves a source and detects its kind. It supports three types of sources:
//   - "-" reads from standard input
//   - URLs starting with "http://" or "https://" are fetched via HTTP
//   - everything else is treated as a local file path
//
// The kind comes from the file extension or the Content-Type header and falls
// back to sniffing the first bytes of content.
func Open(ctx context.Context, source string) (*Document, error) {
	rc, contentType, err := getContent(ctx, source)
	if err != nil {
		return nil, err
	}

	br := bufio.NewReaderSize(rc, sniffLen)
	kind, known := kindFromName(source)
	if !known {
		kind, known = kindFromContentType(contentType)
	}
	if !known {
		head, _ := br.Peek(sniffLen) // short reads are fine for sniffing
		kind, _ = kindFromContentType(http.DetectContentType(head))
	}

	slog.Debug("Source opened", "source", source, "kind", kind.String(), "contentType", contentType)
	return &Document{Reader: br, Kind: kind, Source: source, closer: rc}, nil
}

// DetectKind classifies a source by name and optional content type without opening it.
// Unknown sources are PlainText.
func DetectKind(source, contentType string) Kind {
	if kind, ok := kindFromName(source); ok {
		return kind
	}
	if kind, ok := kindFromContentType(contentType); ok {
		return kind
	}
	return PlainText
}

func kindFromName(source string) (Kind, bool) {
	if source == "-" {
		return PlainText, false
	}
	name := source
	if isURL(source) {
		// ignore query strings and fragments
		if i := strings.IndexAny(name, "?#"); i >= 0 {
			name = name[:i]
		}
	}
	switch strings.ToLower(filepath.Ext(name)) {
	case ".pdf":
		return PDF, true
	case ".docx":
		return DOCX, true
	case ".html", ".htm":
		return HTML, true
	case ".txt", ".md", ".text":
		return PlainText, true
	default:
		return PlainText, false
	}
}

func kindFromContentType(contentType string) (Kind, bool) {
	ct := strings.ToLower(contentType)
	switch {
	case ct == "":
		return PlainText, false
	case strings.Contains(ct, "application/pdf"):
		return PDF, true
	case strings.Contains(ct, "wordprocessingml"), strings.Contains(ct, "application/zip"):
		return DOCX, true
	case strings.Contains(ct, "text/html"), strings.Contains(ct, "application/xhtml"):
		return HTML, true
	case strings.HasPrefix(ct, "text/"):
		return PlainText, true
	default:
		return PlainText, false
	}
}

func isURL(source string) bool {
	return strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://")
}

// getContent returns a size-limited reader for the source and, for URLs, the
// response Content-Type.
func getContent(ctx context.Context, source string) (io.ReadCloser, string, error) {
	switch {
	case source == "":
		return nil, "", fmt.Errorf("empty source")
	case source == "-":
		return &limitedReadCloser{
			ReadCloser: os.Stdin,
			N:          MaxFileSizeBytes,
			source:     "stdin",
		}, "", nil
	case isURL(source):
		return fetchURL(ctx, source)
	default:
		rc, err := fetchFile(ctx, source)
		return rc, "", err
	}
}

// fetchURL retrieves content from an HTTP or HTTPS URL using a client with timeout configuration
func fetchURL(ctx context.Context, url string) (io.ReadCloser, string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, "", fmt.Errorf("failed to create request for URL %q: %w", url, err)
	}
	req.Header.Set("User-Agent", "resumatch/0.1")

	resp, err := httpClient.Do(req)
	if err != nil {
		return nil, "", fmt.Errorf("failed to fetch URL %q: %w", url, err)
	}

	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, "", fmt.Errorf("HTTP request failed for URL %q: status %d %s", url, resp.StatusCode, resp.Status)
	}

	// reject declared oversize bodies before reading anything
	if contentLength := resp.Header.Get("Content-Length"); contentLength != "" {
		if size, err := strconv.ParseInt(contentLength, 10, 64); err == nil {
			if size > MaxHTTPSizeBytes {
				resp.Body.Close()
				return nil, "", fmt.Errorf("HTTP content too large (%d bytes > %d bytes limit)",
					size, MaxHTTPSizeBytes)
			}
		}
	}

	return &limitedReadCloser{
		ReadCloser: resp.Body,
		N:          MaxHTTPSizeBytes,
		source:     url,
	}, resp.Header.Get("Content-Type"), nil
}

// fetchFile opens a local file for reading with better error messages
// ctx is accepted for API consistency but not actually used for local file operations
func fetchFile(ctx context.Context, path string) (io.ReadCloser, error) {
	fileInfo, err := os.Stat(path)
	if os.IsNotExist(err) {
		return nil, fmt.Errorf("file %q does not exist", path)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to access file %q: %w", path, err)
	}
	if fileInfo.IsDir() {
		return nil, fmt.Errorf("%q is a directory", path)
	}

	if fileInfo.Size() > MaxFileSizeBytes {
		return nil, fmt.Errorf("file %q is too large (%d bytes > %d bytes limit)",
			path, fileInfo.Size(), MaxFileSizeBytes)
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file %q: %w", path, err)
	}

	return file, nil
}
