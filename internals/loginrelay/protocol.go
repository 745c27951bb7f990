package loginrelay

import (
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

// Every frame looks like this (procbridge 1.1):
//
// +-----------+--------------+-------------+----------------+--------------+------------+
// | "pb" (2b) | Version (2b) | Status (1b) | Reserved (2b)  | Length (4b)  | JSON (...) |
// +-----------+--------------+-------------+----------------+--------------+------------+
//
// Length is little endian. One request and one response per connection.

// StatusCode is the status byte of a frame
type StatusCode byte

const (
	StatusRequest      StatusCode = 0
	StatusGoodResponse StatusCode = 1
	StatusBadResponse  StatusCode = 2
)

// maxBodySize limits what we are willing to read from a peer
const maxBodySize = 1 << 20

var (
	frameFlag    = [2]byte{'p', 'b'}
	frameVersion = [2]byte{1, 1}
)

var (
	// ErrUnrecognizedProtocol is returned if a frame does not start with "pb"
	ErrUnrecognizedProtocol = errors.New("unrecognized protocol")
	// ErrIncompatibleVersion is returned for frames of another procbridge version
	ErrIncompatibleVersion = errors.New("incompatible procbridge version")
	// ErrBodyTooLarge is returned if the announced body exceeds maxBodySize
	ErrBodyTooLarge = errors.New("frame body too large")
)

type request struct {
	Method  string          `json:"method"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

type goodResponse struct {
	Payload json.RawMessage `json:"payload"`
}

type badResponse struct {
	Message string `json:"message"`
}

// RemoteError is a bad response sent by the other side
type RemoteError struct {
	Message string
}

func (e *RemoteError) Error() string {
	return "procbridge: " + e.Message
}

func writeFrame(w io.Writer, status StatusCode, body interface{}) error {
	raw, err := json.Marshal(body)
	if err != nil {
		return err
	}

	header := make([]byte, 11)
	copy(header[0:2], frameFlag[:])
	copy(header[2:4], frameVersion[:])
	header[4] = byte(status)
	// header[5:7] is reserved
	binary.LittleEndian.PutUint32(header[7:11], uint32(len(raw)))

	if _, err := w.Write(append(header, raw...)); err != nil {
		return err
	}
	return nil
}

func readFrame(r io.Reader) (StatusCode, []byte, error) {
	header := make([]byte, 11)
	if _, err := io.ReadFull(r, header); err != nil {
		return 0, nil, err
	}

	if header[0] != frameFlag[0] || header[1] != frameFlag[1] {
		return 0, nil, ErrUnrecognizedProtocol
	}
	if header[2] != frameVersion[0] || header[3] != frameVersion[1] {
		return 0, nil, ErrIncompatibleVersion
	}

	status := StatusCode(header[4])
	if status > StatusBadResponse {
		return 0, nil, fmt.Errorf("invalid status code %d", status)
	}

	length := binary.LittleEndian.Uint32(header[7:11])
	if length > maxBodySize {
		return 0, nil, ErrBodyTooLarge
	}

	body := make([]byte, length)
	if _, err := io.ReadFull(r, body); err != nil {
		return 0, nil, err
	}
	return status, body, nil
}
