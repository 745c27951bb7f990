package ownhttp

import (
	"net/http"
	"runtime"

	"golang.org/x/time/rate"
)

// UserAgent is sent with every request made by clients of this package
var UserAgent = "lunarpkg/dev (" + runtime.GOOS + "; " + runtime.GOARCH + ")"

// AddHeaderTransport sets the User-Agent header on every request
type AddHeaderTransport struct {
	T http.RoundTripper
}

func (adt *AddHeaderTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	// RoundTrippers must not modify the passed request
	req = req.Clone(req.Context())
	req.Header.Set("User-Agent", UserAgent)
	return adt.T.RoundTrip(req)
}

// NewAddHeaderTransport wraps T (or http.DefaultTransport if nil)
func NewAddHeaderTransport(T http.RoundTripper) *AddHeaderTransport {
	if T == nil {
		T = http.DefaultTransport
	}
	return &AddHeaderTransport{T}
}

// New returns a new http.Client with the AddHeaderTransport (setting the User-Agent header)
func New() *http.Client {
	return &http.Client{Transport: NewAddHeaderTransport(nil)}
}

// NewThrottled returns a client like New that makes at most perSecond requests per second.
// A perSecond of 0 or less disables the limit
func NewThrottled(perSecond float64) *http.Client {
	if perSecond <= 0 {
		return New()
	}
	limiter := rate.NewLimiter(rate.Limit(perSecond), 1)
	return &http.Client{
		Transport: NewAddHeaderTransport(NewThrottleTransport(nil, limiter)),
	}
}
