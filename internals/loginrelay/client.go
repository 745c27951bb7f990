package loginrelay

import (
	"context"
	"encoding/json"
	"net"
	"time"
)

// Client talks to a procbridge server, usually a running relay
type Client struct {
	Addr    string
	Timeout time.Duration
}

// NewClient returns a client for addr
func NewClient(addr string) *Client {
	return &Client{Addr: addr, Timeout: ioTimeout}
}

// Request sends method with payload (may be nil) and decodes the response payload into out
func (c *Client) Request(ctx context.Context, method string, payload interface{}, out interface{}) error {
	dialer := net.Dialer{Timeout: c.Timeout}
	conn, err := dialer.DialContext(ctx, "tcp", c.Addr)
	if err != nil {
		return err
	}
	defer conn.Close()

	if deadline, ok := ctx.Deadline(); ok {
		conn.SetDeadline(deadline)
	} else if c.Timeout != 0 {
		conn.SetDeadline(time.Now().Add(c.Timeout))
	}

	req := request{Method: method}
	if payload != nil {
		req.Payload, err = json.Marshal(payload)
		if err != nil {
			return err
		}
	}
	if err := writeFrame(conn, StatusRequest, req); err != nil {
		return err
	}

	status, body, err := readFrame(conn)
	if err != nil {
		return err
	}

	if status != StatusGoodResponse {
		res := badResponse{}
		json.Unmarshal(body, &res)
		return &RemoteError{Message: res.Message}
	}

	res := goodResponse{}
	if err := json.Unmarshal(body, &res); err != nil {
		return err
	}
	if out == nil || len(res.Payload) == 0 {
		return nil
	}
	return json.Unmarshal(res.Payload, out)
}

// OpenWindow asks the relay for the next login URL the same way the Lunar client does
func (c *Client) OpenWindow(ctx context.Context) (*OpenWindowResult, error) {
	res := &OpenWindowResult{}
	if err := c.Request(ctx, MethodOpenWindow, nil, res); err != nil {
		return nil, err
	}
	return res, nil
}
