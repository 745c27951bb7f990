package downloadmgr

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"errors"
	"fmt"
	"hash"
	"io"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/natefinch/atomic"
)

var defaultClient = http.Client{
	Transport: &http.Transport{
		Dial: (&net.Dialer{
			Timeout:   30 * time.Second,
			KeepAlive: 30 * time.Second,
		}).Dial,
		TLSHandshakeTimeout:   20 * time.Second,
		ResponseHeaderTimeout: 60 * time.Second,
		ExpectContinueTimeout: 1 * time.Second,
	},
}

// ErrEmptyBody is returned when the server answered with an empty body
var ErrEmptyBody = errors.New("empty response body")

// StatusError is returned when the server answered with a non 2xx status code
type StatusError struct {
	URL        string
	StatusCode int
	Status     string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("invalid status code: %s from %s", e.Status, e.URL)
}

// ErrInvalidSha is returned when the downloaded file's sha1 sum does not match the expected one
type ErrInvalidSha struct {
	FileName    string
	ExpectedSha string
	ActualSha   string
}

func (e *ErrInvalidSha) Error() string {
	return fmt.Sprintf(
		"File corrupted: %s sha1 is invalid.\n\texpected to be \"%s\"\n\tbut actually is \"%s\"\n",
		e.FileName,
		e.ExpectedSha,
		e.ActualSha,
	)
}

// HTTPItem is a URL, target pair with optional properties that will be downloaded
// using http(s)
type HTTPItem struct {
	Client *http.Client
	URL    string
	Target string
	// Sha1 is checked before the file is moved to Target if set
	Sha1 string

	written int64
}

// NewHTTPItem creates a Item to be queued that will download the file using HTTP(S)
func NewHTTPItem(URL string, Target string) *HTTPItem {
	if URL == "" {
		panic("Download URL can not be empty")
	}
	if Target == "" {
		panic("Target can not be empty")
	}
	return &HTTPItem{Client: &defaultClient, URL: URL, Target: Target}
}

// Written returns the number of bytes written by the last successful download
func (i *HTTPItem) Written() int64 {
	return i.written
}

// Download downloads the item to the defined target using http.
// The body is written to a temporary file next to the target that replaces the
// target only after the download (and sha1 check) succeeded
func (i *HTTPItem) Download(ctx context.Context) error {
	err := os.MkdirAll(filepath.Dir(i.Target), os.ModePerm)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, "GET", i.URL, nil)
	if err != nil {
		return err
	}

	client := i.Client
	if client == nil {
		client = &defaultClient
	}

	fileRes, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("Error while fetching %s: %w", i.URL, err)
	}
	defer fileRes.Body.Close()

	if fileRes.StatusCode < 200 || fileRes.StatusCode >= 300 {
		return &StatusError{URL: i.URL, StatusCode: fileRes.StatusCode, Status: fileRes.Status}
	}

	body := &verifyingReader{
		r:        fileRes.Body,
		hasher:   sha1.New(),
		expected: i.Sha1,
		name:     i.Target,
	}
	if err := atomic.WriteFile(i.Target, body); err != nil {
		// atomic flattens errors into strings, so we return ours directly
		if body.err != nil {
			return body.err
		}
		return err
	}
	if err := os.Chmod(i.Target, 0644); err != nil {
		return err
	}

	i.written = body.n
	return nil
}

// verifyingReader counts and hashes everything read. At EOF it turns an empty
// body or a sha1 mismatch into an error, which aborts the atomic write
type verifyingReader struct {
	r        io.Reader
	hasher   hash.Hash
	expected string
	name     string

	n   int64
	err error
}

func (v *verifyingReader) Read(p []byte) (int, error) {
	n, err := v.r.Read(p)
	v.n += int64(n)
	v.hasher.Write(p[:n])

	if err != io.EOF {
		return n, err
	}

	if v.n == 0 {
		v.err = ErrEmptyBody
		return n, v.err
	}
	if v.expected != "" {
		actual := hex.EncodeToString(v.hasher.Sum(nil))
		if actual != v.expected {
			v.err = &ErrInvalidSha{v.name, v.expected, actual}
			return n, v.err
		}
	}
	return n, io.EOF
}
