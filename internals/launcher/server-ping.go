package launcher

import (
	"net"
	"time"

	"github.com/Tnze/go-mc/bot"
	"github.com/tidwall/gjson"
)

// defaultServerPort is used if the address has no port
const defaultServerPort = "25565"

var pingTimeout = 5 * time.Second

// ServerStatus is what a server answers to a server list ping
type ServerStatus struct {
	Version     string
	Online      int
	Max         int
	Description string
	Latency     time.Duration
}

// PingServer does a server list ping to check if the server to join is reachable
func PingServer(address string) (*ServerStatus, error) {
	if _, _, err := net.SplitHostPort(address); err != nil {
		address = net.JoinHostPort(address, defaultServerPort)
	}

	resp, latency, err := bot.PingAndListTimeout(address, pingTimeout)
	if err != nil {
		return nil, err
	}
	return parseServerStatus(resp, latency), nil
}

func parseServerStatus(resp []byte, latency time.Duration) *ServerStatus {
	status := gjson.ParseBytes(resp)

	// the description is either a plain string or a chat component
	description := status.Get("description")
	text := description.String()
	if description.IsObject() {
		text = description.Get("text").String()
		for _, extra := range description.Get("extra").Array() {
			if extra.IsObject() {
				text += extra.Get("text").String()
			} else {
				text += extra.String()
			}
		}
	}

	return &ServerStatus{
		Version:     status.Get("version.name").String(),
		Online:      int(status.Get("players.online").Int()),
		Max:         int(status.Get("players.max").Int()),
		Description: text,
		Latency:     latency,
	}
}
