// Command toycc is the toy compiler's driver: parse source, lower to IR,
// run the optimizer, and (optionally) dump the result. Modeled on the
// teacher's cmd package (a small flag parser feeding a linear pipeline of
// phases), collapsed into a single command since this toolchain has no
// import graph, linker, or codegen stage to coordinate.
package main

import (
	"bufio"
	"fmt"
	"os"

	"github.com/comedicchimera/toyc/internal/ast"
	"github.com/comedicchimera/toyc/internal/config"
	"github.com/comedicchimera/toyc/internal/lower"
	"github.com/comedicchimera/toyc/internal/optimize"
	"github.com/comedicchimera/toyc/internal/report"
	"github.com/comedicchimera/toyc/internal/syntax"
)

const manifestPath = "toyc.toml"

func main() {
	args := parseArgs(os.Args[1:])
	manifest := loadManifest()

	unrollFactor := manifest.UnrollFactor
	if args.unrollSet {
		unrollFactor = args.unrollFactor
	}

	report.Banner(args.sourcePath, unrollFactor)

	defer report.CatchAndExit()

	f, err := os.Open(args.sourcePath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "[Error] unable to open %s: %s\n[Line] 0\n", args.sourcePath, err)
		os.Exit(1)
	}
	defer f.Close()

	parser := syntax.New(bufio.NewReader(f))
	prog := parser.Parse()

	if args.dumpAST {
		fmt.Print(ast.Dump(prog))
	}

	mod := lower.Program(prog)

	var stats optimize.Stats
	if manifest.Optimize {
		stats = optimize.Run(mod, unrollFactor)
		report.OptimizerSummary(stats.LoopsUnrolled, stats.LoadsEliminated, stats.BinOpsEliminated)
	}

	if args.dumpIR {
		fmt.Print(mod.Repr())
	}
}

// loadManifest reads toyc.toml from the working directory if present,
// otherwise falls back to config.Default — a toyc.toml is convenience, not
// a requirement, since the CLI's positional source path is sufficient on
// its own.
func loadManifest() *config.Manifest {
	if _, err := os.Stat(manifestPath); err != nil {
		return config.Default()
	}

	m, err := config.Load(manifestPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "[Error] %s\n[Line] 0\n", err)
		os.Exit(1)
	}
	return m
}
