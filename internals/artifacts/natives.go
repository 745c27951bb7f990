package artifacts

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/zip"
	archiver "github.com/mholt/archiver/v3"
)

// NativesDir is the directory inside the install directory natives get extracted to
const NativesDir = "natives"

// ArchiveError is returned when the natives archive is corrupt or contains invalid entries
type ArchiveError struct {
	Archive string
	Err     error
}

func (e *ArchiveError) Error() string {
	return fmt.Sprintf("invalid archive %s: %s", e.Archive, e.Err)
}

func (e *ArchiveError) Unwrap() error { return e.Err }

// ExtractNatives extracts every entry of the zip archive at archivePath into outputDir.
// Nothing is cleaned up if this fails, a retry should re-download the archive first
func ExtractNatives(archivePath string, outputDir string) error {
	if err := os.MkdirAll(outputDir, os.ModePerm); err != nil {
		return err
	}

	err := archiver.NewZip().Walk(archivePath, func(f archiver.File) error {
		header, ok := f.Header.(zip.FileHeader)
		if !ok {
			return fmt.Errorf("unexpected header for %s", f.Name())
		}

		target := filepath.Join(outputDir, filepath.FromSlash(header.Name))
		if !strings.HasPrefix(target, filepath.Clean(outputDir)+string(filepath.Separator)) {
			return fmt.Errorf("entry %q escapes the output directory", header.Name)
		}

		if f.IsDir() {
			return os.MkdirAll(target, os.ModePerm)
		}
		if err := os.MkdirAll(filepath.Dir(target), os.ModePerm); err != nil {
			return err
		}

		out, err := os.OpenFile(target, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0755)
		if err != nil {
			return err
		}
		defer out.Close()

		if _, err := io.Copy(out, f); err != nil {
			return err
		}
		return out.Close()
	})
	if err != nil {
		return &ArchiveError{Archive: archivePath, Err: err}
	}
	return nil
}
