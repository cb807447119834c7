// Package display renders assessments for the terminal: judgement reports,
// aligned tables, warnings and batch progress.
//
// Every function takes an io.Writer. Colour is decided per writer: it is on
// only when the writer is a terminal and NO_COLOR is unset.
//
//	display.PrintJudgement(os.Stdout, fw)
//
//	warning := display.WarnSkippedFiles(problems)
//	warning.Display(os.Stderr)
//
// Tables measure cells by display width (go-runewidth), so study names with
// wide characters keep the symbol columns aligned.
package display
