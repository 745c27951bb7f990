package utils

import (
	"github.com/dustin/go-humanize"
	"golang.org/x/exp/constraints"
)

// HumanBytes returns a size in a human readable format (like "12 MB")
func HumanBytes[N constraints.Integer](size N) string {
	if size < 0 {
		return "0 B"
	}
	return humanize.Bytes(uint64(size))
}

// HumanInteger returns the number with thousands separators
func HumanInteger[N constraints.Integer](input N) string {
	return humanize.Comma(int64(input))
}
