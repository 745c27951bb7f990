package launcher

import (
	"fmt"
	"math"
	"strings"

	"github.com/pbnjay/memory"
)

// baseRamMiB is what Lunar Client needs at least
const baseRamMiB = 2048

// MaxRamMiB returns the heap size in MiB. requested is used as is if set,
// otherwise a quarter of the system memory (at least baseRamMiB but never
// more than 85% of the system memory)
func MaxRamMiB(requested int) int {
	if requested != 0 {
		return requested
	}
	sysMemMiB := float64(memory.TotalMemory()) / 1024 / 1024
	if sysMemMiB == 0 {
		return baseRamMiB
	}

	maxRamMiB := math.Max(baseRamMiB, sysMemMiB/4)
	maxRamMiB = math.Min(maxRamMiB, sysMemMiB*0.85)
	return int(maxRamMiB)
}

// HasHeapFlag returns true if args already set the max heap size
func HasHeapFlag(args []string) bool {
	for _, arg := range args {
		if strings.HasPrefix(arg, "-Xmx") {
			return true
		}
	}
	return false
}

// withHeapFlag returns args with a single -Xmx flag. A requested size replaces
// any -Xmx in args, otherwise the args are only changed if they set no heap size
func withHeapFlag(args []string, requested int) []string {
	if requested == 0 && HasHeapFlag(args) {
		return args
	}
	result := []string{fmt.Sprintf("-Xmx%dM", MaxRamMiB(requested))}
	for _, arg := range args {
		if !strings.HasPrefix(arg, "-Xmx") {
			result = append(result, arg)
		}
	}
	return result
}
