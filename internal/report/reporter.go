// Package report handles all diagnostic output for the compiler: fatal
// parse-time errors in the wire format the driver contract expects, and the
// ambient colored status messages the CLI prints around a compilation run.
package report

import (
	"fmt"
	"os"
	"sync"
)

// reporter is the package-level, mutex-guarded error reporter. There is
// exactly one reporter per process; parsing is single-threaded (spec §5) but
// the mutex costs nothing and matches the teacher's Reporter shape.
type reporter struct {
	m          sync.Mutex
	errorCount int
}

var rep = &reporter{}

// CompileError is a fatal error encountered while parsing source text: an
// unexpected token, a redefinition, a type mismatch, or any other condition
// spec.md §4.1.8 classifies as fatal.
type CompileError struct {
	Message string
	Line    int
}

func (ce *CompileError) Error() string {
	return ce.Message
}

// Raise constructs a CompileError to be thrown with panic and caught by
// CatchAndExit. Recursive-descent parsers unwind many stack frames on the
// first fatal error; panicking out of the whole parse tree is simpler and
// less error-prone than threading a bool return through every parseX method.
func Raise(line int, format string, args ...interface{}) *CompileError {
	rep.m.Lock()
	rep.errorCount++
	rep.m.Unlock()
	return &CompileError{Message: fmt.Sprintf(format, args...), Line: line}
}

// CatchAndExit recovers a panic'd *CompileError from deep within the parser
// and reports it before exiting. Any other panic value is re-raised: it is
// not a diagnosable compile error and indicates a genuine bug. Must always
// be deferred, mirroring report.CatchErrors in the teacher.
func CatchAndExit() {
	if x := recover(); x != nil {
		if cerr, ok := x.(*CompileError); ok {
			fmt.Fprintf(os.Stderr, "[Error] %s\n[Line] %d\n", cerr.Message, cerr.Line)
			os.Exit(1)
		}
		panic(x)
	}
}

// ReportLexError raises a fatal lexical error (e.g. an unrecognized
// character). It panics with a *CompileError to be caught by CatchAndExit,
// same as parser-level diagnostics.
func ReportLexError(line int, format string, args ...interface{}) {
	panic(Raise(line, format, args...))
}

// ErrorCount returns the number of fatal errors reported so far.
func ErrorCount() int {
	rep.m.Lock()
	defer rep.m.Unlock()
	return rep.errorCount
}
