package globals

import (
	"github.com/minepkg/lunarpkg/internals/cmdlog"
	"github.com/minepkg/lunarpkg/internals/ownhttp"
)

var (
	// ConfigDir is where the config.toml lives (set by the root command)
	ConfigDir  string
	HTTPClient = ownhttp.New()
	Logger     = cmdlog.New()
	// Version is the lunarpkg version, set at build time
	Version = "0.0.0-dev"
)
