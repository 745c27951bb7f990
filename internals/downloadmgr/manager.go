package downloadmgr

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"
)

// DefaultConcurrency is the number of parallel downloads if not configured otherwise
const DefaultConcurrency = 16

// DownloadManager includes a queue to download
type DownloadManager struct {
	queue []Downloader
	// Concurrency limits the number of parallel downloads (defaults to DefaultConcurrency)
	Concurrency int
	OnProgress  func(p int)
}

// Downloader allows downloadmgr to download the file
type Downloader interface {
	Download(ctx context.Context) error
}

// Failure is a queued item that could not be downloaded
type Failure struct {
	Item Downloader
	Err  error
}

// BatchError is returned by Start if one or more items failed.
// The other items are downloaded regardless
type BatchError struct {
	Failures []Failure
}

func (e *BatchError) Error() string {
	msgs := make([]string, 0, len(e.Failures))
	for _, f := range e.Failures {
		msgs = append(msgs, f.Err.Error())
	}
	return fmt.Sprintf("%d downloads failed: %s", len(e.Failures), strings.Join(msgs, "; "))
}

func (e *BatchError) Unwrap() []error {
	errs := make([]error, 0, len(e.Failures))
	for _, f := range e.Failures {
		errs = append(errs, f.Err)
	}
	return errs
}

// New creates a new downloadmgr
func New() *DownloadManager {
	return &DownloadManager{Concurrency: DefaultConcurrency}
}

// Add adds a new item to the queue
func (d *DownloadManager) Add(i Downloader) {
	d.queue = append(d.queue, i)
}

// Len returns the number of queued items
func (d *DownloadManager) Len() int {
	return len(d.queue)
}

// Start downloads every queued item. A failing item does not stop the others,
// all failures are returned together as a *BatchError
func (d *DownloadManager) Start(ctx context.Context) error {
	if len(d.queue) == 0 {
		return nil
	}

	limit := d.Concurrency
	if limit <= 0 {
		limit = DefaultConcurrency
	}

	var (
		mu       sync.Mutex
		done     int
		failures []Failure
	)

	g := errgroup.Group{}
	g.SetLimit(limit)

	for _, item := range d.queue {
		item := item
		g.Go(func() error {
			err := item.Download(ctx)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				failures = append(failures, Failure{Item: item, Err: err})
			}
			done++
			if d.OnProgress != nil {
				d.OnProgress(done * 100 / len(d.queue))
			}
			return nil
		})
	}
	g.Wait()

	if len(failures) != 0 {
		return &BatchError{Failures: failures}
	}
	return nil
}
