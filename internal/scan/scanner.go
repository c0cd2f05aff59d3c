// Package scan drives the block-by-block coinbase inspection.
//
// Blocks are processed strictly in order, one at a time. Failures reported
// by the node CLI, malformed output and bad hex are recorded against the
// block and the scan moves on; a node CLI that cannot be launched, or a
// cancelled context, stops the scan.
package scan

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dmagro/checkcoinbase/internal/coinbase"
	"github.com/dmagro/checkcoinbase/internal/node"
	"github.com/dmagro/checkcoinbase/internal/stats"
)

// Node is the subset of the node CLI client the scanner needs.
type Node interface {
	BlockHash(ctx context.Context, number uint64) (string, error)
	Block(ctx context.Context, hash string) (any, error)
}

// Reporter receives progress as the scan runs.
type Reporter interface {
	Start(number uint64)
	Done(o Outcome)
}

// Status classifies the result of one block.
type Status string

const (
	StatusFound    Status = "found"
	StatusNotFound Status = "not found"
	StatusError    Status = "error"
)

// Outcome is everything learned about one block.
type Outcome struct {
	Number    uint64
	Hash      string
	Payload   string          // Coinbase hex, empty when not found
	Found     bool            // A coinbase field was present
	Text      string          // Lossy text of the payload
	Pushes    []coinbase.Push // Script pushes, only when requested
	ScriptErr error           // Payload did not parse as a script
	Err       *BlockError     // Per-block failure
	Elapsed   time.Duration   // Wall time spent on the block
}

// Status reports how the block ended.
func (o Outcome) Status() Status {
	switch {
	case o.Err != nil:
		return StatusError
	case o.Found:
		return StatusFound
	default:
		return StatusNotFound
	}
}

// BlockError ties a recoverable failure to the block it happened on.
type BlockError struct {
	Number uint64
	Err    error
}

func (e *BlockError) Error() string {
	return fmt.Sprintf("block #%d: %v", e.Number, e.Err)
}

func (e *BlockError) Unwrap() error { return e.Err }

// Options tune what the scanner computes per block.
type Options struct {
	Script       bool // Parse the coinbase as a script and collect pushes
	KeepOutcomes bool // Retain every Outcome in the Summary
}

// Summary aggregates a finished (or aborted) scan.
type Summary struct {
	Range    Range
	Scanned  int
	Found    int
	NotFound int
	Failed   int
	Outcomes []Outcome
}

func (s *Summary) add(o Outcome, keep bool) {
	s.Scanned++
	switch o.Status() {
	case StatusFound:
		s.Found++
	case StatusNotFound:
		s.NotFound++
	case StatusError:
		s.Failed++
	}
	if keep {
		s.Outcomes = append(s.Outcomes, o)
	}
}

// Timing returns percentiles of per-block wall time over kept outcomes.
func (s *Summary) Timing() stats.TailLatency {
	samples := make([]time.Duration, 0, len(s.Outcomes))
	for _, o := range s.Outcomes {
		samples = append(samples, o.Elapsed)
	}
	return stats.CalculateTailLatency(samples)
}

type Scanner struct {
	node     Node
	reporter Reporter
	opts     Options
}

func NewScanner(n Node, r Reporter, opts Options) *Scanner {
	return &Scanner{node: n, reporter: r, opts: opts}
}

// Run scans every block in r in ascending order, one at a time.
//
// Parameters:
//   - ctx: Checked before each block and passed to every node CLI call
//   - r: Inclusive block range; r.End may be math.MaxUint64
//
// Returns:
//   - *Summary: Counts for every completed block (never nil)
//   - error: Non-nil only for fatal conditions (see IsFatal)
//
// Behavior:
//   - Reporter.Start is called before a block, Reporter.Done after it
//   - Per-block failures land in Outcome.Err and the scan continues
//   - On a fatal error the block in progress gets no Done and the Summary
//     covers only the blocks completed before it
func (s *Scanner) Run(ctx context.Context, r Range) (*Summary, error) {
	sum := &Summary{Range: r}

	for n := r.Start; ; n++ {
		if err := ctx.Err(); err != nil {
			return sum, err
		}

		s.reporter.Start(n)
		start := time.Now()
		o, err := s.Inspect(ctx, n)
		if err != nil {
			return sum, err
		}
		o.Elapsed = time.Since(start)
		s.reporter.Done(o)
		sum.add(o, s.opts.KeepOutcomes)

		if n == r.End {
			break
		}
	}

	return sum, nil
}

// Inspect resolves, fetches, extracts and decodes a single block. Only
// fatal errors are returned; everything else lands in Outcome.Err.
func (s *Scanner) Inspect(ctx context.Context, number uint64) (Outcome, error) {
	o := Outcome{Number: number}

	hash, err := s.node.BlockHash(ctx, number)
	if err != nil {
		return fail(o, err)
	}
	o.Hash = hash

	block, err := s.node.Block(ctx, hash)
	if err != nil {
		return fail(o, err)
	}

	payload, found := coinbase.Extract(block)
	if !found {
		return o, nil
	}
	o.Found = true
	o.Payload = payload

	raw, err := coinbase.DecodeBytes(payload)
	if err != nil {
		return fail(o, err)
	}
	o.Text = coinbase.Text(raw)

	if s.opts.Script {
		o.Pushes, o.ScriptErr = coinbase.Pushes(raw)
	}

	return o, nil
}

func fail(o Outcome, err error) (Outcome, error) {
	if IsFatal(err) {
		return o, err
	}
	o.Err = &BlockError{Number: o.Number, Err: err}
	return o, nil
}

// IsFatal reports whether err must stop the whole scan.
func IsFatal(err error) bool {
	var launchErr *node.LaunchError
	return errors.As(err, &launchErr) ||
		errors.Is(err, context.Canceled) ||
		errors.Is(err, context.DeadlineExceeded)
}
