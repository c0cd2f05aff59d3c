package node

import (
	"fmt"
	"strings"
)

// Op names the node CLI operation that failed.
type Op string

const (
	OpResolve Op = "resolve" // hash lookup by block number
	OpFetch   Op = "fetch"   // block fetch by identifier
)

// LaunchError means the node CLI could not be started at all (missing
// executable, permission denied). It is fatal for the whole scan.
type LaunchError struct {
	Command string
	Err     error
}

func (e *LaunchError) Error() string {
	return fmt.Sprintf("failed to run %s: %v", e.Command, e.Err)
}

func (e *LaunchError) Unwrap() error { return e.Err }

// ToolError means the node CLI ran but exited with a non-zero status.
// Stderr holds the tool's own diagnostic.
type ToolError struct {
	Op       Op
	Method   string
	ExitCode int
	Stderr   string
}

func (e *ToolError) Error() string {
	msg := strings.TrimSpace(e.Stderr)
	if msg == "" {
		msg = fmt.Sprintf("exit status %d", e.ExitCode)
	}
	return fmt.Sprintf("%s failed: %s", e.Method, msg)
}

// ParseError means the block-fetch output was not valid JSON.
type ParseError struct {
	Method string
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("failed to parse %s output: %v", e.Method, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }
