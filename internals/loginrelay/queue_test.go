package loginrelay

import (
	"fmt"
	"strings"
	"sync"
	"testing"
)

func TestAuthQueueOrder(t *testing.T) {
	q := NewAuthQueue()
	q.Enqueue("u1")
	q.Enqueue("u2")

	for _, want := range []string{"u1", "u2"} {
		got, ok := q.Take()
		if !ok || got != want {
			t.Fatalf("expected %s, got %s (ok: %v)", want, got, ok)
		}
	}
	if _, ok := q.Take(); ok {
		t.Fatal("expected empty queue")
	}
}

func TestAuthQueueConcurrent(t *testing.T) {
	q := NewAuthQueue()
	const producers, perProducer = 8, 50

	var wg sync.WaitGroup
	for p := 0; p < producers; p++ {
		wg.Add(1)
		go func(p int) {
			defer wg.Done()
			for i := 0; i < perProducer; i++ {
				q.Enqueue(fmt.Sprintf("https://login/%d/%d", p, i))
			}
		}(p)
	}
	wg.Wait()

	var mu sync.Mutex
	seen := make(map[string]int)
	for c := 0; c < producers; c++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				url, ok := q.Take()
				if !ok {
					return
				}
				mu.Lock()
				seen[url]++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	if len(seen) != producers*perProducer {
		t.Fatalf("expected %d unique urls, got %d", producers*perProducer, len(seen))
	}
	for url, n := range seen {
		if n != 1 {
			t.Fatalf("%s was taken %d times", url, n)
		}
	}
}

func TestAuthQueueEnqueueLines(t *testing.T) {
	q := NewAuthQueue()
	q.Enqueue("u0")

	input := "u1\n\n  u2  \r\nu3"
	if err := q.EnqueueLines(strings.NewReader(input)); err != nil {
		t.Fatal(err)
	}

	for _, want := range []string{"u0", "u1", "u2", "u3"} {
		got, ok := q.Take()
		if !ok || got != want {
			t.Fatalf("expected %s, got %s (ok: %v)", want, got, ok)
		}
	}
	if q.Len() != 0 {
		t.Fatalf("expected empty queue, got %d", q.Len())
	}
}
