package main

import (
	"net/http"

	"github.com/minepkg/lunarpkg/cmd"
	"github.com/minepkg/lunarpkg/internals/globals"
	"github.com/minepkg/lunarpkg/internals/ownhttp"
)

// set by goreleaser
var (
	version string
)

func main() {

	// replace default http client
	http.DefaultClient = ownhttp.New()

	if version != "" {
		globals.Version = version
	}
	cmd.Execute()
}
