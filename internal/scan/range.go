package scan

import (
	"fmt"
	"strconv"
	"strings"
)

// Range is an inclusive span of block numbers. Start <= End always holds
// for values returned by ParseRange.
type Range struct {
	Start uint64
	End   uint64
}

// Len returns the number of blocks in the range. A range covering every
// uint64 saturates at math.MaxUint64.
func (r Range) Len() uint64 {
	n := r.End - r.Start
	if n == ^uint64(0) {
		return n
	}
	return n + 1
}

func (r Range) String() string {
	if r.Start == r.End {
		return fmt.Sprintf("#%d", r.Start)
	}
	return fmt.Sprintf("#%d..#%d", r.Start, r.End)
}

// UsageError reports command-line arguments that do not describe a range.
type UsageError struct {
	Msg string
}

func (e *UsageError) Error() string { return e.Msg }

// ParseRange turns positional arguments into a Range: one number N gives
// N..N, two numbers A B give A..B and require A <= B.
func ParseRange(args []string) (Range, error) {
	switch len(args) {
	case 1:
		n, err := parseBlockNumber(args[0])
		if err != nil {
			return Range{}, err
		}
		return Range{Start: n, End: n}, nil
	case 2:
		start, err := parseBlockNumber(args[0])
		if err != nil {
			return Range{}, err
		}
		end, err := parseBlockNumber(args[1])
		if err != nil {
			return Range{}, err
		}
		if start > end {
			return Range{}, &UsageError{
				Msg: fmt.Sprintf("start block (%d) must be less than or equal to end block (%d)", start, end),
			}
		}
		return Range{Start: start, End: end}, nil
	default:
		return Range{}, &UsageError{
			Msg: fmt.Sprintf("expected 1 or 2 block numbers, got %d argument(s)", len(args)),
		}
	}
}

func parseBlockNumber(arg string) (uint64, error) {
	n, err := strconv.ParseUint(strings.TrimSpace(arg), 10, 64)
	if err != nil {
		return 0, &UsageError{Msg: fmt.Sprintf("block number must be a non-negative integer: %q", arg)}
	}
	return n, nil
}
