// Package artifacts keeps a local installation directory in sync with the
// artifacts declared by a launch manifest.
package artifacts

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/minepkg/lunarpkg/internals/checksum"
	"github.com/minepkg/lunarpkg/internals/downloadmgr"
	"github.com/minepkg/lunarpkg/pkg/lunarmanifest"
	"github.com/pkg/errors"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// Synchronizer downloads missing or stale artifacts into an installation directory
type Synchronizer struct {
	// Client is used for all downloads. http.DefaultClient if nil
	Client *http.Client
	// Concurrency limits parallel downloads (downloadmgr.DefaultConcurrency if 0)
	Concurrency int
	// OnProgress receives the download progress in percent
	OnProgress func(p int)
}

// New returns a Synchronizer downloading with the given client
func New(client *http.Client) *Synchronizer {
	return &Synchronizer{Client: client, Concurrency: downloadmgr.DefaultConcurrency}
}

// Result describes the outcome of a sync pass
type Result struct {
	// Downloaded are the names that were (re)downloaded, sorted
	Downloaded []string
	// Skipped are the names that were already present (and valid), sorted
	Skipped []string
	// Failed maps names to the reason they could not be synced
	Failed map[string]error
	// Bytes is the total size of all downloaded files
	Bytes int64
}

// OK returns true if nothing failed
func (r *Result) OK() bool {
	return len(r.Failed) == 0
}

// FailedNames returns the names of all failed artifacts, sorted
func (r *Result) FailedNames() []string {
	names := maps.Keys(r.Failed)
	slices.Sort(names)
	return names
}

// MissingClassPath returns the failed artifacts the game can not start without:
// everything on the classpath and the natives archive
func (r *Result) MissingClassPath(table lunarmanifest.ArtifactTable) []string {
	missing := []string{}
	for _, name := range r.FailedNames() {
		switch table[name].Kind {
		case lunarmanifest.KindClassPath, lunarmanifest.KindNatives:
			missing = append(missing, name)
		}
	}
	return missing
}

// Sync makes sure every artifact in table exists under installDir.
// Missing files are always downloaded. Existing files are only checked against their
// sha1 (and replaced on mismatch) if updateIfPresent is true.
// Per artifact failures end up in Result.Failed, the returned error is only set if
// the sync could not run at all
func (s *Synchronizer) Sync(ctx context.Context, installDir string, table lunarmanifest.ArtifactTable, updateIfPresent bool) (*Result, error) {
	if err := os.MkdirAll(installDir, os.ModePerm); err != nil {
		return nil, errors.Wrap(err, "could not create install directory")
	}

	result := &Result{
		Downloaded: []string{},
		Skipped:    []string{},
		Failed:     make(map[string]error),
	}

	client := s.Client
	if client == nil {
		client = http.DefaultClient
	}

	mgr := downloadmgr.New()
	if s.Concurrency > 0 {
		mgr.Concurrency = s.Concurrency
	}
	mgr.OnProgress = s.OnProgress
	queued := make(map[*downloadmgr.HTTPItem]string)

	for _, name := range table.Names() {
		info := table[name]

		target, err := Path(installDir, name)
		if err != nil {
			result.Failed[name] = err
			continue
		}

		needed, err := needsDownload(target, info.Sha1, updateIfPresent)
		if err != nil {
			result.Failed[name] = err
			continue
		}
		if !needed {
			result.Skipped = append(result.Skipped, name)
			continue
		}

		item := &downloadmgr.HTTPItem{
			Client: client,
			URL:    info.URL,
			Target: target,
			Sha1:   info.Sha1,
		}
		queued[item] = name
		mgr.Add(item)
	}

	log.Printf("[INFO] sync %s: %d queued, %d skipped", installDir, mgr.Len(), len(result.Skipped))

	if err := mgr.Start(ctx); err != nil {
		batchErr, ok := err.(*downloadmgr.BatchError)
		if !ok {
			return nil, err
		}
		for _, failure := range batchErr.Failures {
			item := failure.Item.(*downloadmgr.HTTPItem)
			result.Failed[queued[item]] = failure.Err
			delete(queued, item)
		}
	}

	for item, name := range queued {
		result.Downloaded = append(result.Downloaded, name)
		result.Bytes += item.Written()
	}
	slices.Sort(result.Downloaded)

	for name, err := range result.Failed {
		log.Printf("[WARN] could not sync %s: %s", name, err)
	}

	return result, nil
}

// needsDownload decides whether target has to be fetched
func needsDownload(target string, sha1 string, updateIfPresent bool) (bool, error) {
	stat, err := os.Stat(target)
	switch {
	case os.IsNotExist(err):
		return true, nil
	case err != nil:
		return false, err
	case stat.IsDir():
		return false, fmt.Errorf("%s is a directory", target)
	case !updateIfPresent:
		return false, nil
	}

	localSha, err := checksum.Sha1File(target)
	if checksum.IsNotFound(err) {
		return true, nil
	}
	if err != nil {
		return false, err
	}
	if localSha == sha1 {
		return false, nil
	}
	log.Printf("[INFO] %s is outdated (sha1 %s, want %s)", target, localSha, sha1)
	return true, nil
}

// HasFullInstall returns true if every artifact of table exists as a file in installDir.
// Contents are not checked
func HasFullInstall(installDir string, table lunarmanifest.ArtifactTable) bool {
	for name := range table {
		target, err := Path(installDir, name)
		if err != nil {
			return false
		}
		stat, err := os.Stat(target)
		if err != nil || stat.IsDir() {
			return false
		}
	}
	return true
}

// Path resolves an artifact name inside installDir.
// Names may contain sub directories but may not point outside of installDir
func Path(installDir string, name string) (string, error) {
	target := filepath.Join(installDir, filepath.FromSlash(name))
	rel, err := filepath.Rel(installDir, target)
	if err != nil || rel == "." || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("artifact name %q is outside of the install directory", name)
	}
	return target, nil
}
