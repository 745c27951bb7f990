// Package loginrelay hands queued authentication URLs to a running Lunar client.
// The client asks for them over a local procbridge connection.
package loginrelay

import (
	"bufio"
	"io"
	"strings"
	"sync"
)

// AuthQueue is a FIFO of pending authentication URLs. It is safe for concurrent use
type AuthQueue struct {
	mu   sync.Mutex
	urls []string
}

// NewAuthQueue returns an empty queue
func NewAuthQueue() *AuthQueue {
	return &AuthQueue{}
}

// Enqueue appends url to the tail of the queue
func (q *AuthQueue) Enqueue(url string) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.urls = append(q.urls, url)
}

// Take removes and returns the head of the queue.
// The bool is false if the queue is empty
func (q *AuthQueue) Take() (string, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.urls) == 0 {
		return "", false
	}
	url := q.urls[0]
	q.urls[0] = ""
	q.urls = q.urls[1:]
	return url, true
}

// Len returns the number of queued URLs
func (q *AuthQueue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.urls)
}

// EnqueueLines enqueues every non blank line of r until it is exhausted
func (q *AuthQueue) EnqueueLines(r io.Reader) error {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		if url := strings.TrimSpace(scanner.Text()); url != "" {
			q.Enqueue(url)
		}
	}
	return scanner.Err()
}
