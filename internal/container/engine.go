// SPDX-License-Identifier: BSD-2-Clause

// Package container wraps the container engine the build tools run in. The
// engine binary is always invoked as "docker"; whether it is real Docker or
// podman-docker is detected from its --version output, since the two need
// different user-namespace flags for files created inside the container to
// be owned by the invoking user.
package container

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/charmbracelet/log"
)

// ErrNotAvailable is returned when no container engine binary is installed.
var ErrNotAvailable = errors.New("docker or podman-docker must be installed")

// Variant identifies which engine implementation is behind the docker
// binary.
type Variant string

// The two supported engine variants.
const (
	VariantDocker Variant = "docker"
	VariantPodman Variant = "podman"
)

// ExecCommandFunc is the function signature for creating exec.Cmd. It
// allows injection of mock implementations for testing.
type ExecCommandFunc func(ctx context.Context, name string, arg ...string) *exec.Cmd

// Engine is a detected container engine bound to the configured build-tools
// image.
type Engine struct {
	binary      string
	variant     Variant
	image       string
	execCommand ExecCommandFunc
	uid         int
	gid         int
}

// Option configures an Engine.
type Option func(*Engine)

// WithExecCommand injects a command constructor, for tests.
func WithExecCommand(f ExecCommandFunc) Option {
	return func(e *Engine) { e.execCommand = f }
}

// WithBinary sets the engine binary path explicitly, skipping PATH lookup.
func WithBinary(path string) Option {
	return func(e *Engine) { e.binary = path }
}

// New locates the docker binary and detects its variant. The image is the
// container image every invocation runs.
func New(ctx context.Context, image string, opts ...Option) (*Engine, error) {
	e := &Engine{
		image:       image,
		execCommand: exec.CommandContext,
		uid:         os.Getuid(),
		gid:         os.Getgid(),
	}
	for _, opt := range opts {
		opt(e)
	}

	if e.binary == "" {
		path, err := exec.LookPath("docker")
		if err != nil {
			return nil, ErrNotAvailable
		}
		e.binary = path
	}

	version, err := e.execCommand(ctx, e.binary, "--version").Output()
	if err != nil {
		return nil, fmt.Errorf("query container engine version: %w", err)
	}
	if strings.Contains(string(version), "podman") {
		e.variant = VariantPodman
	} else {
		e.variant = VariantDocker
	}
	log.Debug("detected container engine", "binary", e.binary, "variant", e.variant)

	return e, nil
}

// Variant returns the detected engine variant.
func (e *Engine) Variant() Variant { return e.variant }

// Image returns the configured build-tools image.
func (e *Engine) Image() string { return e.image }

// Pull updates the build-tools image.
func (e *Engine) Pull(ctx context.Context) error {
	cmd := e.command(ctx, "pull", e.image)
	log.Debug("pulling image", "image", e.image)
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to update image %s: %w", e.image, err)
	}
	return nil
}

// command creates an engine invocation with inherited stdio: every external
// action is a blocking foreground call.
func (e *Engine) command(ctx context.Context, args ...string) *exec.Cmd {
	cmd := e.execCommand(ctx, e.binary, args...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd
}
