package cmd

import (
	"context"
	"fmt"
	"log"

	"github.com/minepkg/lunarpkg/internals/artifacts"
	"github.com/minepkg/lunarpkg/internals/commands"
	"github.com/minepkg/lunarpkg/internals/globals"
	"github.com/minepkg/lunarpkg/internals/lunar"
	"github.com/minepkg/lunarpkg/internals/ownhttp"
	"github.com/minepkg/lunarpkg/internals/utils"
	"github.com/spf13/viper"
	"golang.org/x/exp/slices"
)

func newCatalog() *lunar.Client {
	return lunar.New(globals.HTTPClient)
}

// newSynchronizer returns a synchronizer respecting the download config
func newSynchronizer() *artifacts.Synchronizer {
	client := globals.HTTPClient
	if rate := viper.GetFloat64("downloadRateLimit"); rate > 0 {
		client = ownhttp.NewThrottled(rate)
	}
	syncer := artifacts.New(client)
	if n := viper.GetInt("downloadConcurrency"); n > 0 {
		syncer.Concurrency = n
	}
	return syncer
}

func nonInteractive() bool {
	return viper.GetBool("nonInteractive") || !utils.IsInteractive()
}

// resolveVersion returns the version from args or lets the user pick one
func resolveVersion(ctx context.Context, catalog *lunar.Client, args []string) (string, error) {
	if len(args) != 0 {
		return args[0], nil
	}
	if nonInteractive() {
		return "", &commands.CliError{
			Text:        "no version given",
			Suggestions: []string{"Pass a version, like: lunarpkg launch 1.8.9", "List versions with: lunarpkg versions"},
		}
	}

	meta, err := catalog.FetchMetadata(ctx)
	if err != nil {
		return "", err
	}
	versions := lunar.SortVersions(meta.SupportedVersions())
	// newest first
	for i, j := 0, len(versions)-1; i < j; i, j = i+1, j-1 {
		versions[i], versions[j] = versions[j], versions[i]
	}
	return utils.SelectString("Version", versions), nil
}

// resolveModule lets the user pick another module if module is not available for version.
// The metadata is only a hint, module is returned unchanged if anything goes wrong
func resolveModule(ctx context.Context, catalog *lunar.Client, version string, module string) string {
	if nonInteractive() {
		return module
	}
	meta, err := catalog.FetchMetadata(ctx)
	if err != nil {
		log.Printf("[WARN] could not fetch metadata: %s", err)
		return module
	}
	modules, err := meta.SupportedModules(version)
	if err != nil || len(modules) == 0 || slices.Contains(modules, module) {
		return module
	}
	fmt.Printf("Module %q is not available for %s\n", module, version)
	return utils.SelectString("Module", modules)
}
