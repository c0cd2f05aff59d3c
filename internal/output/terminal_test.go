package output

import (
	"bytes"
	"errors"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dmagro/checkcoinbase/internal/coinbase"
	"github.com/dmagro/checkcoinbase/internal/scan"
)

func TestMain(m *testing.M) {
	DisableColors()
	os.Exit(m.Run())
}

func newTestTerminal() (*Terminal, *bytes.Buffer, *bytes.Buffer) {
	var out, errOut bytes.Buffer
	return NewTerminal(&out, &errOut), &out, &errOut
}

func TestStart(t *testing.T) {
	term, out, _ := newTestTerminal()
	term.Start(840000)
	assert.Equal(t, "Checking block #840000\n", out.String())
}

func TestDoneFound(t *testing.T) {
	term, out, errOut := newTestTerminal()
	term.Done(scan.Outcome{Number: 1, Found: true, Payload: "48656c6c6f", Text: "Hello"})

	assert.Equal(t, "Coinbase (readable text of block #1): Hello\n", out.String())
	assert.Empty(t, errOut.String())
}

func TestDoneNotFound(t *testing.T) {
	term, out, _ := newTestTerminal()
	term.Done(scan.Outcome{Number: 2})
	assert.Equal(t, "No coinbase transaction found in block #2\n", out.String())
}

func TestDoneErrorGoesToStderr(t *testing.T) {
	term, out, errOut := newTestTerminal()
	term.Done(scan.Outcome{
		Number: 101,
		Err:    &scan.BlockError{Number: 101, Err: errors.New("getblock failed: Block not found")},
	})

	assert.Empty(t, out.String())
	assert.Equal(t, "Error in block #101: getblock failed: Block not found\n", errOut.String())
}

func TestDonePushes(t *testing.T) {
	term, out, _ := newTestTerminal()
	term.Done(scan.Outcome{
		Number: 3,
		Found:  true,
		Text:   "x",
		Pushes: []coinbase.Push{{Hex: "034e0d", Text: "\x03N\r"}, {Hex: "2f736c7573682f", Text: "/slush/"}},
	})

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	assert.Equal(t, []string{
		"Coinbase (readable text of block #3): x",
		"  push 0: 034e0d .N.",
		"  push 1: 2f736c7573682f /slush/",
	}, lines)
}

func TestDoneScriptWarning(t *testing.T) {
	term, _, errOut := newTestTerminal()
	term.Done(scan.Outcome{Number: 4, Found: true, ScriptErr: errors.New("bad script")})
	assert.Equal(t, "Warning: block #4: bad script\n", errOut.String())
}

func TestWarn(t *testing.T) {
	term, out, errOut := newTestTerminal()
	term.Warn("node.verbosity 1 does not include decoded transactions")
	assert.Empty(t, out.String())
	assert.Equal(t, "Warning: node.verbosity 1 does not include decoded transactions\n", errOut.String())
}

func TestUsage(t *testing.T) {
	term, out, errOut := newTestTerminal()
	term.Usage(&scan.UsageError{Msg: "expected 1 or 2 block numbers, got 0 argument(s)"})

	assert.Empty(t, out.String())
	assert.Equal(t, "Error: expected 1 or 2 block numbers, got 0 argument(s)\n"+UsageLine+"\n", errOut.String())
}

func TestSummary(t *testing.T) {
	term, out, _ := newTestTerminal()
	term.Summary(&scan.Summary{
		Range:    scan.Range{Start: 100, End: 102},
		Scanned:  3,
		Found:    1,
		NotFound: 1,
		Failed:   1,
		Outcomes: []scan.Outcome{
			{Number: 100, Found: true, Text: "Hello"},
			{Number: 101, Err: &scan.BlockError{Number: 101, Err: errors.New("boom")}},
			{Number: 102},
		},
	})

	s := out.String()
	assert.Contains(t, s, "Summary for blocks #100..#102")
	assert.Contains(t, s, "Block")
	assert.Contains(t, s, "✓ found")
	assert.Contains(t, s, "Hello")
	assert.Contains(t, s, "✗ error")
	assert.Contains(t, s, "boom")
	assert.Contains(t, s, "Scanned: 3  Found: 1  Not found: 1  Errors: 1")
}

func TestPrintable(t *testing.T) {
	assert.Equal(t, "a.b", printable("a\x00b", 0))
	assert.Equal(t, ".ok", printable("�ok", 0))
	assert.Equal(t, "abc...", printable("abcdef", 3))
	assert.Equal(t, "abc", printable("abc", 3))
}
