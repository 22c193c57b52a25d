// SPDX-License-Identifier: BSD-2-Clause

package tools

import (
	"context"
	"os"
	"os/exec"

	"github.com/charmbracelet/log"
)

// ExecCommandFunc is the function signature for creating exec.Cmd. It
// allows injection of mock implementations for testing.
type ExecCommandFunc func(ctx context.Context, name string, arg ...string) *exec.Cmd

// Repo wraps the git-repo manifest tool.
type Repo struct {
	binary      string
	execCommand ExecCommandFunc
}

// RepoOption configures a Repo.
type RepoOption func(*Repo)

// WithRepoExecCommand injects a command constructor, for tests.
func WithRepoExecCommand(f ExecCommandFunc) RepoOption {
	return func(r *Repo) { r.execCommand = f }
}

// WithRepoBinary sets the repo executable path explicitly, skipping the
// PATH/download lookup.
func WithRepoBinary(path string) RepoOption {
	return func(r *Repo) { r.binary = path }
}

// NewRepo locates the repo tool, downloading the launcher script from
// scriptURL when it is not already installed.
func NewRepo(scriptURL string, opts ...RepoOption) (*Repo, error) {
	r := &Repo{execCommand: exec.CommandContext}
	for _, opt := range opts {
		opt(r)
	}
	if r.binary == "" {
		binary, err := FindOrDownload("repo", scriptURL)
		if err != nil {
			return nil, err
		}
		r.binary = binary
	}
	return r, nil
}

// InitOptions carry the manifest selection for Init. Branch and Manifest are
// optional and omitted from the invocation when empty.
type InitOptions struct {
	ManifestURL string
	Branch      string
	Manifest    string
}

// Init initialises a manifest checkout in dir.
func (r *Repo) Init(ctx context.Context, dir string, opts InitOptions) error {
	args := []string{"init", "--manifest-url", opts.ManifestURL}
	if opts.Branch != "" {
		args = append(args, "--manifest-branch", opts.Branch)
	}
	if opts.Manifest != "" {
		args = append(args, "--manifest-name", opts.Manifest)
	}
	log.Debug("initialising manifest checkout", "dir", dir, "url", opts.ManifestURL)
	return r.run(ctx, dir, args...)
}

// Sync updates the manifest checkout in dir.
func (r *Repo) Sync(ctx context.Context, dir string) error {
	log.Debug("syncing manifest checkout", "dir", dir)
	return r.run(ctx, dir, "sync")
}

func (r *Repo) run(ctx context.Context, dir string, args ...string) error {
	cmd := r.execCommand(ctx, r.binary, args...)
	cmd.Dir = dir
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return &ExternalError{Tool: "repo", Reason: args[0], Err: err}
	}
	return nil
}
