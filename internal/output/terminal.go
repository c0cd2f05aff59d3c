// Package output renders scan progress and results for a terminal.
package output

import (
	"fmt"
	"io"
	"strings"
	"time"
	"unicode"

	"github.com/fatih/color"
	"github.com/rodaine/table"

	"github.com/dmagro/checkcoinbase/internal/config"
	"github.com/dmagro/checkcoinbase/internal/scan"
)

// Colors for status indicators
var (
	green  = color.New(color.FgGreen).SprintFunc()
	yellow = color.New(color.FgYellow).SprintFunc()
	red    = color.New(color.FgRed).SprintFunc()
	cyan   = color.New(color.FgCyan).SprintFunc()
	bold   = color.New(color.Bold).SprintFunc()
	dim    = color.New(color.Faint).SprintFunc()
)

// UsageLine is printed after argument errors.
const UsageLine = "Usage: checkcoinbase <start_block> [<end_block>]"

// Terminal writes human-readable scan output. Progress, decoded text and
// not-found notices go to Out; errors and warnings go to Err.
type Terminal struct {
	Out io.Writer
	Err io.Writer
}

func NewTerminal(out, errOut io.Writer) *Terminal {
	return &Terminal{Out: out, Err: errOut}
}

// Start announces a block.
func (t *Terminal) Start(number uint64) {
	fmt.Fprintf(t.Out, "%s\n", cyan(fmt.Sprintf("Checking block #%d", number)))
}

// Done prints the outcome of a block.
func (t *Terminal) Done(o scan.Outcome) {
	switch o.Status() {
	case scan.StatusError:
		fmt.Fprintf(t.Err, "%s %v\n", red(fmt.Sprintf("Error in block #%d:", o.Number)), o.Err.Err)
	case scan.StatusNotFound:
		fmt.Fprintf(t.Out, "%s\n", yellow(fmt.Sprintf("No coinbase transaction found in block #%d", o.Number)))
	case scan.StatusFound:
		fmt.Fprintf(t.Out, "%s %s\n", bold(fmt.Sprintf("Coinbase (readable text of block #%d):", o.Number)), o.Text)
		t.renderPushes(o)
	}
}

func (t *Terminal) renderPushes(o scan.Outcome) {
	if o.ScriptErr != nil {
		fmt.Fprintf(t.Err, "%s block #%d: %v\n", yellow("Warning:"), o.Number, o.ScriptErr)
		return
	}
	for i, p := range o.Pushes {
		fmt.Fprintf(t.Out, "  %s %s %s\n", dim(fmt.Sprintf("push %d:", i)), p.Hex, green(printable(p.Text, 0)))
	}
}

// Warn prints a non-fatal notice to Err.
func (t *Terminal) Warn(msg string) {
	fmt.Fprintf(t.Err, "%s %s\n", yellow("Warning:"), msg)
}

// Usage reports an argument error followed by the usage line.
func (t *Terminal) Usage(err error) {
	fmt.Fprintf(t.Err, "%s %v\n", red("Error:"), err)
	fmt.Fprintln(t.Err, UsageLine)
}

// Summary prints the end-of-scan report to Out.
//
// Layout:
//   - Header naming the range
//   - Block/Status/Coinbase table and p50/p95/max block time, only when
//     the scan kept its outcomes
//   - Totals line: scanned, found, not found, errors
func (t *Terminal) Summary(sum *scan.Summary) {
	fmt.Fprintln(t.Out)
	fmt.Fprintln(t.Out, bold(fmt.Sprintf("Summary for blocks %s", sum.Range)))

	if len(sum.Outcomes) > 0 {
		headerFmt := color.New(color.FgCyan, color.Underline).SprintfFunc()
		tbl := table.New("Block", "Status", "Coinbase")
		tbl.WithHeaderFormatter(headerFmt)
		tbl.WithWriter(t.Out)

		for _, o := range sum.Outcomes {
			detail := printable(o.Text, 48)
			if o.Err != nil {
				detail = printable(o.Err.Err.Error(), 48)
			}
			tbl.AddRow(o.Number, formatStatus(o.Status()), detail)
		}
		tbl.Print()

		timing := sum.Timing()
		fmt.Fprintf(t.Out, "  Block time: p50 %s  p95 %s  max %s\n",
			formatDuration(timing.P50),
			formatDuration(timing.P95),
			formatDuration(timing.Max))
	}

	fmt.Fprintf(t.Out, "  Scanned: %d  Found: %s  Not found: %s  Errors: %s\n",
		sum.Scanned,
		green(fmt.Sprintf("%d", sum.Found)),
		yellow(fmt.Sprintf("%d", sum.NotFound)),
		formatErrorCount(sum.Failed))
}

func formatStatus(s scan.Status) string {
	switch s {
	case scan.StatusFound:
		return green("✓ found")
	case scan.StatusNotFound:
		return yellow("– not found")
	case scan.StatusError:
		return red("✗ error")
	default:
		return "?"
	}
}

func formatDuration(d time.Duration) string {
	if d == 0 {
		return "—"
	}
	if d < time.Millisecond {
		return fmt.Sprintf("%dµs", d.Microseconds())
	}
	if d < time.Second {
		return fmt.Sprintf("%dms", d.Milliseconds())
	}
	return fmt.Sprintf("%.1fs", d.Seconds())
}

func formatErrorCount(count int) string {
	if count == 0 {
		return green("0")
	}
	return red(fmt.Sprintf("%d", count))
}

// printable replaces control and replacement characters with '.', and
// truncates to limit runes when limit > 0.
func printable(s string, limit int) string {
	var sb strings.Builder
	n := 0
	for _, r := range s {
		if limit > 0 && n == limit {
			sb.WriteString("...")
			break
		}
		if unicode.IsControl(r) || r == unicode.ReplacementChar {
			r = '.'
		}
		sb.WriteRune(r)
		n++
	}
	return sb.String()
}

// SetColorMode applies a config color mode. "auto" leaves fatih/color's
// own terminal detection in place.
func SetColorMode(mode string) {
	switch mode {
	case config.ColorAlways:
		color.NoColor = false
	case config.ColorNever:
		color.NoColor = true
	}
}

// DisableColors turns off color output
func DisableColors() {
	color.NoColor = true
}

