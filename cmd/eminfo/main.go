// Command eminfo prints version information about the runtime
// environment and the module's dependencies.
//
// Usage:
//
//	eminfo
package main

import (
	"fmt"

	"github.com/cwbudde/algo-em/printinfo"
)

func main() {
	fmt.Print(printinfo.Versions())
}
