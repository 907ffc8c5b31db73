package report

import "github.com/pterm/pterm"

// Styles mirror the teacher's src/logging/display.go palette: a solid
// background tag followed by colored message text.
var (
	successStyleBG = pterm.NewStyle(pterm.BgLightGreen, pterm.FgBlack)
	warnStyleBG    = pterm.NewStyle(pterm.BgYellow, pterm.FgBlack)
	infoColorFG    = pterm.FgLightGreen
	warnColorFG    = pterm.FgYellow
)

// Banner prints the startup banner shown before a compilation run begins.
func Banner(source string, unrollFactor int) {
	pterm.DefaultBigText.WithLetters(pterm.NewLettersFromStringWithStyle("toyc", pterm.NewStyle(pterm.FgLightGreen))).Render()
	successStyleBG.Print(" Compiling ")
	infoColorFG.Printfln(" %s (unroll=%d)", source, unrollFactor)
}

// OptimizerSummary prints the per-pass optimizer statistics gathered while
// running the unroller and peephole passes.
func OptimizerSummary(loopsUnrolled, loadsEliminated, binopsEliminated int) {
	successStyleBG.Print(" Optimized ")
	infoColorFG.Printfln(
		" loops unrolled=%d  redundant loads removed=%d  redundant binops removed=%d",
		loopsUnrolled, loadsEliminated, binopsEliminated,
	)
}

// StructuralWarning reports a non-fatal optimizer diagnostic: missing loop
// structure that causes a pass to skip a loop (spec §4.2.5, §7). These never
// abort compilation.
func StructuralWarning(function, format string, args ...interface{}) {
	warnStyleBG.Print(" Optimizer ")
	warnColorFG.Printfln(" %s: "+format, append([]interface{}{function}, args...)...)
}
