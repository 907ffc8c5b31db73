package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

const usage = `Usage: toycc [flags] <path to source file>

Flags:
------
-h, --help          Displays usage information (ie. this text).
-v, --version       Displays the compiler version.
-u, --unroll <n>    Sets the loop-unroll factor (overrides toyc.toml).
-o, --dump-ir       Dumps the lowered and optimized IR to stdout instead of
                    running the compiler silently.
-a, --dump-ast      Dumps the parsed AST to stdout before lowering.
`

const version = "toyc 0.1.0"

// cliArgs is the result of parsing os.Args: everything args.go knows how to
// recognize, with zero values meaning "not specified, fall back to
// toyc.toml" (internal/config.Default supplies the rest).
type cliArgs struct {
	sourcePath   string
	unrollFactor int
	unrollSet    bool
	dumpIR       bool
	dumpAST      bool
}

// options is the set of flag names that take a following value, mirroring
// the teacher's args.go options set.
var options = map[string]struct{}{
	"u": {}, "-unroll": {},
}

func printUsage(code int) {
	fmt.Print(usage)
	os.Exit(code)
}

func argumentError(format string, args ...interface{}) {
	fmt.Fprint(os.Stderr, "argument error: ", fmt.Sprintf(format, args...), "\n\n")
	printUsage(1)
}

// argParser walks os.Args the same way the teacher's argParser does: one
// call to nextArg per flag/option/positional, left to right.
type argParser struct {
	args []string
	ndx  int
}

func (ap *argParser) nextArg() (name, value string, ok bool) {
	if ap.ndx >= len(ap.args) {
		return "", "", false
	}

	arg := ap.args[ap.ndx]
	ap.ndx++

	if !strings.HasPrefix(arg, "-") {
		return "", arg, true
	}

	name = strings.TrimPrefix(arg, "-")
	if _, isOption := options[name]; isOption {
		if ap.ndx < len(ap.args) && !strings.HasPrefix(ap.args[ap.ndx], "-") {
			value = ap.args[ap.ndx]
			ap.ndx++
			return name, value, true
		}
		argumentError("option -%s requires an argument", name)
	}

	return name, "", true
}

func parseArgs(raw []string) *cliArgs {
	args := &cliArgs{}
	ap := &argParser{args: raw}

	for {
		name, value, ok := ap.nextArg()
		if !ok {
			break
		}

		switch name {
		case "h", "-help":
			printUsage(0)
		case "v", "-version":
			fmt.Println(version)
			os.Exit(0)
		case "u", "-unroll":
			n, err := strconv.Atoi(value)
			if err != nil || n < 0 {
				argumentError("invalid unroll factor: %s", value)
			}
			args.unrollFactor = n
			args.unrollSet = true
		case "o", "-dump-ir":
			args.dumpIR = true
		case "a", "-dump-ast":
			args.dumpAST = true
		case "":
			if args.sourcePath != "" {
				argumentError("source path specified multiple times")
			}
			args.sourcePath = value
		default:
			argumentError("unknown flag: -%s", name)
		}
	}

	if args.sourcePath == "" {
		argumentError("a source path must be specified")
	}

	return args
}
