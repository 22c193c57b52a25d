// SPDX-License-Identifier: BSD-2-Clause

// Package machineq talks to the hardware machine queue through its mq.sh
// command-line client. The queue exposes a system inventory and named pools
// of systems as tab-separated reports, and runs images on a chosen system.
// The tool is optional: hosts without it can still configure and build, they
// just cannot run on hardware.
package machineq

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"sort"
	"strings"

	"s4-cli/internal/config"

	"github.com/charmbracelet/log"
)

// ErrNotAvailable is returned when mq.sh is not installed.
var ErrNotAvailable = errors.New("no mq.sh available")

// ErrNoMatch is the sentinel for a platform with no matching systems.
var ErrNoMatch = errors.New("no matching system found")

// ExecCommandFunc is the function signature for creating exec.Cmd. It
// allows injection of mock implementations for testing.
type ExecCommandFunc func(ctx context.Context, name string, arg ...string) *exec.Cmd

// System is one entry of the machine-queue system inventory.
type System struct {
	Platform  config.PlatformId
	Variation config.VariationId
}

// Queue is a located machine-queue client.
type Queue struct {
	binary      string
	execCommand ExecCommandFunc
}

// Option configures a Queue.
type Option func(*Queue)

// WithExecCommand injects a command constructor, for tests.
func WithExecCommand(f ExecCommandFunc) Option {
	return func(q *Queue) { q.execCommand = f }
}

// WithBinary sets the mq.sh path explicitly, skipping PATH lookup.
func WithBinary(path string) Option {
	return func(q *Queue) { q.binary = path }
}

// New locates mq.sh on PATH. Returns ErrNotAvailable when it is missing.
func New(opts ...Option) (*Queue, error) {
	q := &Queue{execCommand: exec.CommandContext}
	for _, opt := range opts {
		opt(q)
	}
	if q.binary == "" {
		binary, err := exec.LookPath("mq.sh")
		if err != nil {
			return nil, ErrNotAvailable
		}
		q.binary = binary
	}
	return q, nil
}

// Systems fetches the system inventory. The report is tab-separated with a
// header row; fields are looked up by header name so column order does not
// matter. The platform field may carry a variation as "platform:variation".
func (q *Queue) Systems(ctx context.Context) (map[string]System, error) {
	out, err := q.output(ctx, "system-tsv")
	if err != nil {
		return nil, err
	}

	lines := strings.Split(out, "\n")
	headings := strings.Split(lines[0], "\t")

	systems := make(map[string]System)
	for _, line := range lines[1:] {
		fields := make(map[string]string, len(headings))
		for i, value := range strings.Split(line, "\t") {
			if i < len(headings) {
				fields[headings[i]] = value
			}
		}
		name, ok := fields["name"]
		if !ok {
			continue
		}
		plat, ok := fields["sel4_plat"]
		if !ok {
			continue
		}

		system := System{Platform: config.PlatformId(plat)}
		if index := strings.IndexByte(plat, ':'); index >= 0 {
			system.Platform = config.PlatformId(plat[:index])
			system.Variation = config.VariationId(plat[index+1:])
		}
		systems[name] = system
	}
	return systems, nil
}

// Pools fetches the pool inventory: each row is a pool name followed by its
// member system names, tab-separated.
func (q *Queue) Pools(ctx context.Context) (map[string][]string, error) {
	out, err := q.output(ctx, "pool-tsv")
	if err != nil {
		return nil, err
	}

	pools := make(map[string][]string)
	for _, line := range strings.Split(strings.TrimSpace(out), "\n") {
		fields := strings.Split(strings.TrimSpace(line), "\t")
		if len(fields) == 0 || fields[0] == "" {
			continue
		}
		pools[fields[0]] = fields[1:]
	}
	return pools, nil
}

// MatchSystem returns candidate targets for the platform, most preferred
// first: pools whose full membership matches come before the individually
// matching systems, each group in name order. An empty variation matches any
// system on the platform; a non-empty one must match exactly.
func (q *Queue) MatchSystem(ctx context.Context, platform config.PlatformId, variation config.VariationId) ([]string, error) {
	systems, err := q.Systems(ctx)
	if err != nil {
		return nil, err
	}
	pools, err := q.Pools(ctx)
	if err != nil {
		return nil, err
	}

	matching := make(map[string]bool)
	for name, system := range systems {
		if system.Platform == platform &&
			(variation == "" || system.Variation == variation) {
			matching[name] = true
		}
	}

	var candidates []string
	for name, members := range pools {
		qualified := len(members) > 0
		for _, member := range members {
			if !matching[member] {
				qualified = false
				break
			}
		}
		if qualified {
			candidates = append(candidates, name)
		}
	}
	sort.Strings(candidates)

	names := make([]string, 0, len(matching))
	for name := range matching {
		names = append(names, name)
	}
	sort.Strings(names)
	candidates = append(candidates, names...)

	if len(candidates) == 0 {
		target := string(platform)
		if variation != "" {
			target += ":" + string(variation)
		}
		return nil, fmt.Errorf("%w for %s", ErrNoMatch, target)
	}
	return candidates, nil
}

// RunOptions describe one run attempt on a queue target.
type RunOptions struct {
	// ExitPhrase is the output line marking successful completion.
	ExitPhrase string
	// System is the target system or pool name.
	System string
	// Files are the images loaded onto the target.
	Files []string
	// Dir is the working directory for the invocation.
	Dir string
}

// Run executes images on a single queue target with inherited stdio. A
// non-zero exit reports an ExternalError; callers fall back to the next
// candidate on failure.
func (q *Queue) Run(ctx context.Context, opts RunOptions) error {
	args := []string{"run", "-c", opts.ExitPhrase, "-s", opts.System}
	for _, file := range opts.Files {
		args = append(args, "-f", file)
	}

	cmd := q.execCommand(ctx, q.binary, args...)
	cmd.Dir = opts.Dir
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	log.Debug("running on machine queue", "system", opts.System, "files", opts.Files)
	if err := cmd.Run(); err != nil {
		return &externalRunError{system: opts.System, err: err}
	}
	return nil
}

type externalRunError struct {
	system string
	err    error
}

func (e *externalRunError) Error() string {
	return fmt.Sprintf("run on %s: %v", e.system, e.err)
}

func (e *externalRunError) Unwrap() error { return e.err }

// output runs a report subcommand with stdout captured and stdin closed.
func (q *Queue) output(ctx context.Context, subcommand string) (string, error) {
	cmd := q.execCommand(ctx, q.binary, subcommand)
	cmd.Stderr = os.Stderr
	out, err := cmd.Output()
	if err != nil {
		return "", fmt.Errorf("invalid output from mq.sh %s: %w", subcommand, err)
	}
	return string(out), nil
}
