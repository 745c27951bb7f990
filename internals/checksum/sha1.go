// Package checksum computes content digests of local files so they can be
// compared against the hashes declared by the launch manifest.
package checksum

import (
	"crypto/sha1"
	"encoding/hex"
	"io"
	"os"

	"github.com/pkg/errors"
)

// Sha1Length is the length of a hex encoded sha1 digest
const Sha1Length = sha1.Size * 2

// NotFoundError is returned when the file to hash does not exist
type NotFoundError struct {
	Path string
}

func (e *NotFoundError) Error() string {
	return "file not found: " + e.Path
}

// IsNotFound reports whether err (or anything it wraps) is a NotFoundError
func IsNotFound(err error) bool {
	var notFound *NotFoundError
	return errors.As(err, &notFound)
}

// Sha1File returns the lower-case hex sha1 of the file at path.
// The result is always Sha1Length characters long, leading zero bytes included.
func Sha1File(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", &NotFoundError{Path: path}
		}
		return "", err
	}
	defer f.Close()

	return Sha1Reader(f)
}

// Sha1Reader hashes everything read from r
func Sha1Reader(r io.Reader) (string, error) {
	hasher := sha1.New()
	if _, err := io.Copy(hasher, r); err != nil {
		return "", errors.Wrap(err, "hashing failed")
	}
	return hex.EncodeToString(hasher.Sum(nil)), nil
}

// Sha1Bytes returns the lower-case hex sha1 of buf
func Sha1Bytes(buf []byte) string {
	sum := sha1.Sum(buf)
	return hex.EncodeToString(sum[:])
}
