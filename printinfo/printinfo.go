// Package printinfo reports date, time, and version information of the
// running binary and its dependencies, for reproducibility notes in
// survey reports and filter files.
package printinfo

import (
	"fmt"
	"runtime"
	"runtime/debug"
	"strings"
	"text/tabwriter"
	"time"
)

// Versions returns a plain-text table with the platform, the Go
// toolchain, the module and its dependency versions, and a timestamp.
func Versions() string {
	var b strings.Builder

	w := tabwriter.NewWriter(&b, 0, 0, 2, ' ', 0)

	fmt.Fprintf(w, "OS\t: %s/%s\n", runtime.GOOS, runtime.GOARCH)
	fmt.Fprintf(w, "CPUs\t: %d\n", runtime.NumCPU())
	fmt.Fprintf(w, "Go\t: %s\n", runtime.Version())

	if info, ok := debug.ReadBuildInfo(); ok {
		fmt.Fprintf(w, "Module\t: %s %s\n", info.Main.Path, orDevel(info.Main.Version))

		for _, dep := range info.Deps {
			fmt.Fprintf(w, "  %s\t: %s\n", dep.Path, dep.Version)
		}
	}

	fmt.Fprintf(w, "Date\t: %s\n", time.Now().Format("Mon Jan 02 15:04:05 2006 MST"))
	w.Flush()

	return b.String()
}

func orDevel(v string) string {
	if v == "" || v == "(devel)" {
		return "devel"
	}

	return v
}
