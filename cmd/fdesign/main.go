// Command fdesign designs digital linear filters for Hankel and
// Fourier transforms from named transform pairs.
//
// Usage:
//
//	fdesign [flags] pair-name [pair-name ...]
//
// Pair names refer to the built-in Ghosh catalogue (use -list to see
// them). The analytic pairs take a single parameter -a; the frequency-
// domain pairs (j0_4, j0_5, j1_4, j1_5) take -f, -rho and -z instead.
//
// Examples:
//
//	fdesign -n 201 -spacing 0.0641 -shift -1.2847 j0_1 j1_1
//	fdesign -n 201 -spacing 0.04:0.1:10 -shift -3:0:10 -finish j0_1 j1_1
//	fdesign -n 81 -spacing 0.01:0.2:20 -shift -2:1:20 -cvar r sin_2 cos_2
//	fdesign -n 201 -spacing 0.0641 -shift -1.2847 -save hankel.yaml j0_1 j1_1
//	fdesign -list
package main

import (
	"flag"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/cwbudde/algo-em/fdesign"
)

type pairEntry struct {
	name     string
	freqPair bool
	byAlpha  func(a float64) fdesign.Ghosh
	byFreq   func(f, rho, z float64) fdesign.Ghosh
}

var registry = []pairEntry{
	{name: "j0_1", byAlpha: fdesign.J01},
	{name: "j0_2", byAlpha: fdesign.J02},
	{name: "j0_3", byAlpha: fdesign.J03},
	{name: "j0_4", freqPair: true, byFreq: fdesign.J04},
	{name: "j0_5", freqPair: true, byFreq: fdesign.J05},
	{name: "j1_1", byAlpha: fdesign.J11},
	{name: "j1_2", byAlpha: fdesign.J12},
	{name: "j1_3", byAlpha: fdesign.J13},
	{name: "j1_4", freqPair: true, byFreq: fdesign.J14},
	{name: "j1_5", freqPair: true, byFreq: fdesign.J15},
	{name: "sin_1", byAlpha: fdesign.Sin1},
	{name: "sin_2", byAlpha: fdesign.Sin2},
	{name: "sin_3", byAlpha: fdesign.Sin3},
	{name: "cos_1", byAlpha: fdesign.Cos1},
	{name: "cos_2", byAlpha: fdesign.Cos2},
	{name: "cos_3", byAlpha: fdesign.Cos3},
}

func main() {
	n := flag.Int("n", 201, "number of filter points")
	spacingFlag := flag.String("spacing", "0.0641", "log-spacing of filter nodes, a value or start:stop:num")
	shiftFlag := flag.String("shift", "-1.2847", "base shift, a value or start:stop:num")
	alpha := flag.Float64("a", 1, "parameter a of the analytic pairs")
	freq := flag.Float64("f", 1, "frequency in Hz for the frequency-domain pairs")
	rho := flag.Float64("rho", 1, "resistivity in Ohm.m for the frequency-domain pairs")
	depth := flag.Float64("z", 50, "vertical offset in m for the frequency-domain pairs")
	errBound := flag.Float64("error", 0.01, "maximum admissible relative error")
	cvar := flag.String("cvar", "amp", "minimized quantity: amp or r")
	finish := flag.Bool("finish", false, "refine the best grid point with a Powell search")
	name := flag.String("name", "", "filter name (defaults to a generated one)")
	save := flag.String("save", "", "write the designed filter to this YAML file")
	list := flag.Bool("list", false, "list available pair names")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: fdesign [flags] pair-name [pair-name ...]\n\n")
		fmt.Fprintf(os.Stderr, "Designs digital linear filters from named transform pairs.\n")
		fmt.Fprintf(os.Stderr, "All named pairs are used for the inversion; the first one also\n")
		fmt.Fprintf(os.Stderr, "serves as the control pair for the goodness measure.\n\n")
		fmt.Fprintf(os.Stderr, "Flags:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  fdesign -n 201 -spacing 0.0641 -shift -1.2847 j0_1 j1_1\n")
		fmt.Fprintf(os.Stderr, "  fdesign -n 201 -spacing 0.04:0.1:10 -shift -3:0:10 -finish j0_1 j1_1\n")
		fmt.Fprintf(os.Stderr, "  fdesign -n 81 -spacing 0.01:0.2:20 -shift -2:1:20 -cvar r sin_2 cos_2\n")
		fmt.Fprintf(os.Stderr, "  fdesign -list\n")
	}
	flag.Parse()

	if *list {
		printList()
		return
	}

	names := flag.Args()
	if len(names) == 0 {
		fmt.Fprintf(os.Stderr, "error: no transform pairs given (use -list to see available)\n")
		os.Exit(1)
	}

	pairs, err := resolvePairs(names, *alpha, *freq, *rho, *depth)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	spacing, err := parseRange(*spacingFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: invalid -spacing: %v\n", err)
		os.Exit(1)
	}

	shift, err := parseRange(*shiftFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: invalid -shift: %v\n", err)
		os.Exit(1)
	}

	opts := []fdesign.Option{
		fdesign.WithError(*errBound),
		fdesign.WithProgress(os.Stdout),
	}

	switch *cvar {
	case "amp":
		opts = append(opts, fdesign.WithCriterion(fdesign.MinimizeAmplitude))
	case "r":
		opts = append(opts, fdesign.WithCriterion(fdesign.MaximizeR))
	default:
		fmt.Fprintf(os.Stderr, "error: unknown -cvar %q (want amp or r)\n", *cvar)
		os.Exit(1)
	}

	if *finish {
		opts = append(opts, fdesign.WithFinish())
	}

	if *name != "" {
		opts = append(opts, fdesign.WithName(*name))
	}

	filt, res, err := fdesign.Design(*n, spacing, shift, pairs, opts...)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	fdesign.PrintResult(os.Stdout, filt, res)

	if *save != "" {
		if err := filt.Save(*save); err != nil {
			fmt.Fprintf(os.Stderr, "error: failed to save filter: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Saved filter to %s\n", *save)
	}
}

func printList() {
	names := make([]string, len(registry))
	for i, e := range registry {
		names[i] = e.name
	}
	sort.Strings(names)
	for _, n := range names {
		fmt.Println(n)
	}
}

func resolvePairs(names []string, alpha, freq, rho, depth float64) ([]fdesign.Ghosh, error) {
	byName := make(map[string]pairEntry, len(registry))
	for _, e := range registry {
		byName[e.name] = e
	}

	pairs := make([]fdesign.Ghosh, 0, len(names))
	for _, name := range names {
		name = strings.ToLower(strings.TrimSpace(name))
		e, ok := byName[name]
		if !ok {
			return nil, fmt.Errorf("unknown pair %q (use -list to see available)", name)
		}
		if e.freqPair {
			pairs = append(pairs, e.byFreq(freq, rho, depth))
		} else {
			pairs = append(pairs, e.byAlpha(alpha))
		}
	}
	return pairs, nil
}

// parseRange accepts either a single value ("0.0641") or a
// start:stop:num triple ("0.04:0.1:10").
func parseRange(s string) (fdesign.Range, error) {
	parts := strings.Split(s, ":")
	switch len(parts) {
	case 1:
		v, err := strconv.ParseFloat(parts[0], 64)
		if err != nil {
			return fdesign.Range{}, err
		}
		return fdesign.Fixed(v), nil
	case 3:
		start, err := strconv.ParseFloat(parts[0], 64)
		if err != nil {
			return fdesign.Range{}, err
		}
		stop, err := strconv.ParseFloat(parts[1], 64)
		if err != nil {
			return fdesign.Range{}, err
		}
		num, err := strconv.Atoi(parts[2])
		if err != nil {
			return fdesign.Range{}, err
		}
		if num < 1 {
			return fdesign.Range{}, fmt.Errorf("num must be at least 1, got %d", num)
		}
		return fdesign.Range{Start: start, Stop: stop, Num: num}, nil
	default:
		return fdesign.Range{}, fmt.Errorf("want a value or start:stop:num, got %q", s)
	}
}
