package loginrelay

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net"
	"sync"
	"time"
)

// DefaultAddr is where the Lunar client expects the launcher
const DefaultAddr = "127.0.0.1:28189"

// MethodOpenWindow is sent by the client when it wants to show a login window
const MethodOpenWindow = "open-window"

const (
	// StatusMatched means an URL was taken from the queue
	StatusMatched = "MATCHED_TARGET_URL"
	// StatusNoURL means the queue was empty
	StatusNoURL = "CLOSED_WITH_NO_URL"
)

// OpenWindowResult is the payload returned for MethodOpenWindow
type OpenWindowResult struct {
	Status string `json:"status"`
	URL    string `json:"url,omitempty"`
}

// ioTimeout limits how long a single connection may take
var ioTimeout = 10 * time.Second

// Server answers procbridge requests of the Lunar client
type Server struct {
	Addr  string
	Queue *AuthQueue

	wg sync.WaitGroup
}

// NewServer returns a server for DefaultAddr serving from queue
func NewServer(queue *AuthQueue) *Server {
	return &Server{Addr: DefaultAddr, Queue: queue}
}

// ListenAndServe listens on s.Addr and serves until ctx is done
func (s *Server) ListenAndServe(ctx context.Context) error {
	addr := s.Addr
	if addr == "" {
		addr = DefaultAddr
	}
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	return s.Serve(ctx, listener)
}

// Serve accepts connections on listener until ctx is done. The listener is closed
// when Serve returns. Returns nil if stopped by ctx
func (s *Server) Serve(ctx context.Context, listener net.Listener) error {
	stop := make(chan struct{})
	defer close(stop)
	go func() {
		select {
		case <-ctx.Done():
		case <-stop:
		}
		listener.Close()
	}()

	log.Printf("[INFO] login relay listening on %s", listener.Addr())

	for {
		conn, err := listener.Accept()
		if err != nil {
			s.wg.Wait()
			if ctx.Err() != nil || errors.Is(err, net.ErrClosed) {
				return nil
			}
			return err
		}

		s.wg.Add(1)
		go func() {
			defer s.wg.Done()
			s.handleConn(conn)
		}()
	}
}

func (s *Server) handleConn(conn net.Conn) {
	defer conn.Close()
	conn.SetDeadline(time.Now().Add(ioTimeout))

	status, body, err := readFrame(conn)
	if err != nil {
		log.Printf("[WARN] login relay: could not read request: %s", err)
		return
	}
	if status != StatusRequest {
		writeFrame(conn, StatusBadResponse, badResponse{Message: "expected a request"})
		return
	}

	req := request{}
	if err := json.Unmarshal(body, &req); err != nil {
		writeFrame(conn, StatusBadResponse, badResponse{Message: "invalid request: " + err.Error()})
		return
	}

	payload, err := s.handle(req.Method)
	if err != nil {
		writeFrame(conn, StatusBadResponse, badResponse{Message: err.Error()})
		return
	}

	raw, err := json.Marshal(payload)
	if err != nil {
		writeFrame(conn, StatusBadResponse, badResponse{Message: err.Error()})
		return
	}
	if err := writeFrame(conn, StatusGoodResponse, goodResponse{Payload: raw}); err != nil {
		log.Printf("[WARN] login relay: could not write response: %s", err)
	}
}

func (s *Server) handle(method string) (interface{}, error) {
	switch method {
	case MethodOpenWindow:
		return s.openWindow(), nil
	default:
		return nil, errors.New("unknown method " + method)
	}
}

func (s *Server) openWindow() *OpenWindowResult {
	url, ok := s.Queue.Take()
	if !ok {
		log.Println("[INFO] login relay: client asked for a login URL, none queued")
		return &OpenWindowResult{Status: StatusNoURL}
	}
	log.Println("[INFO] login relay: handed out a login URL")
	return &OpenWindowResult{Status: StatusMatched, URL: url}
}
