// Package node wraps the external node CLI (bitcoin-cli or anything with
// the same contract) used to resolve block hashes and fetch blocks.
package node

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"os/exec"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/dmagro/checkcoinbase/internal/logger"
)

var errTrailingData = errors.New("unexpected data after JSON value")

// ClientConfig describes how to invoke the node CLI.
type ClientConfig struct {
	Command     string   // Executable name (looked up on PATH) or path
	Args        []string // Extra args placed before the method
	HashMethod  string   // e.g. "getblockhash"
	BlockMethod string   // e.g. "getblock"
	Verbosity   int      // Block-fetch verbosity
}

// Client runs node CLI subcommands. Calls are blocking and carry no
// timeout; a hung node CLI hangs the caller.
type Client struct {
	cfg ClientConfig
}

func NewClient(cfg ClientConfig) *Client {
	return &Client{cfg: cfg}
}

func (c *Client) Command() string { return c.cfg.Command }

// Call runs one node CLI method and returns its stdout.
//
// Parameters:
//   - ctx: Kills the subprocess when cancelled
//   - op: Which step the call belongs to, recorded in *ToolError
//   - method: Subcommand, placed after ClientConfig.Args
//   - params: Positional arguments following the method
//
// Returns:
//   - []byte: Raw stdout (only on success)
//   - time.Duration: Wall time of the subprocess, also on failure
//   - error: *ToolError on non-zero exit, *LaunchError when the process
//     could not be started, ctx.Err() when the context ended first
func (c *Client) Call(ctx context.Context, op Op, method string, params ...string) ([]byte, time.Duration, error) {
	args := make([]string, 0, len(c.cfg.Args)+1+len(params))
	args = append(args, c.cfg.Args...)
	args = append(args, method)
	args = append(args, params...)

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, c.cfg.Command, args...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	start := time.Now()
	err := cmd.Run()
	latency := time.Since(start)

	log := logger.Log.With(
		zap.String("command", c.cfg.Command),
		zap.Strings("args", args),
		zap.Duration("latency", latency),
	)

	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, latency, ctxErr
		}
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			log.Debug("node call failed", zap.Int("exit_code", exitErr.ExitCode()))
			return nil, latency, &ToolError{
				Op:       op,
				Method:   method,
				ExitCode: exitErr.ExitCode(),
				Stderr:   stderr.String(),
			}
		}
		log.Debug("node call could not start", zap.Error(err))
		return nil, latency, &LaunchError{Command: c.cfg.Command, Err: err}
	}

	log.Debug("node call", zap.Int("stdout_bytes", stdout.Len()))
	return stdout.Bytes(), latency, nil
}

// BlockHash resolves a block number to its identifier.
func (c *Client) BlockHash(ctx context.Context, number uint64) (string, error) {
	out, _, err := c.Call(ctx, OpResolve, c.cfg.HashMethod, strconv.FormatUint(number, 10))
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(out)), nil
}

// Block fetches the block with the given identifier and decodes it into a
// generic JSON value (maps, slices, strings, json.Number, bools, nil).
func (c *Client) Block(ctx context.Context, hash string) (any, error) {
	out, _, err := c.Call(ctx, OpFetch, c.cfg.BlockMethod, hash, strconv.Itoa(c.cfg.Verbosity))
	if err != nil {
		return nil, err
	}

	dec := json.NewDecoder(bytes.NewReader(out))
	dec.UseNumber()

	var record any
	if err := dec.Decode(&record); err != nil {
		return nil, &ParseError{Method: c.cfg.BlockMethod, Err: err}
	}
	// The output must be exactly one JSON value; only whitespace may follow.
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		if err == nil {
			err = errTrailingData
		}
		return nil, &ParseError{Method: c.cfg.BlockMethod, Err: err}
	}
	return record, nil
}
