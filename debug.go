package streetmix

import (
	"fmt"
	"os"
)

// globalDebug gates stderr diagnostics for the whole package. The pipeline
// is single-threaded; no synchronization.
var globalDebug bool

// SetDebug enables or disables stderr diagnostics: scatter stats lines and
// missing-region warnings.
func SetDebug(enabled bool) {
	globalDebug = enabled
}

// debugLogScatter prints one stats line per Scatter call when debug is on.
func debugLogScatter(seed uint32, cmds []DrawCommand, startLeft float64) {
	if !globalDebug {
		return
	}
	if len(cmds) == 0 {
		return
	}
	first := cmds[0]
	last := cmds[len(cmds)-1]
	_, _ = fmt.Fprintf(os.Stderr,
		"[streetmix] scatter: seed %d | sprites: %d | startLeft: %.2fft | x: %.1f..%.1fpx\n",
		seed, len(cmds), startLeft, first.X, last.X)
}
