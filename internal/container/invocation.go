// SPDX-License-Identifier: BSD-2-Clause

package container

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path"
	"path/filepath"
	"sort"
)

// Well-known mount points inside the container.
const (
	// HostDir is where the invoking directory is mounted by default.
	HostDir = "/host"
	// WorkspaceDir is where the workspace root is mounted.
	WorkspaceDir = "/workspace"
	// BuildDir is where the build directory is mounted.
	BuildDir = "/build"
)

// containerHostname is the hostname set inside every container.
const containerHostname = "s4"

// Invocation accumulates the mounts and working directory for one container
// run. Methods return the invocation for chaining; Command finalizes it.
type Invocation struct {
	engine  *Engine
	mounts  map[string]string // container path -> canonical host path
	workDir string
}

// Invocation starts a new container invocation with the current directory
// mounted at HostDir, which is also the initial working directory.
func (e *Engine) Invocation() (*Invocation, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return nil, err
	}
	inv := &Invocation{
		engine:  e,
		mounts:  make(map[string]string),
		workDir: HostDir,
	}
	return inv.Mount(HostDir, cwd)
}

// Mount binds a host directory to a container path. The host path is
// resolved to a canonical absolute path first.
func (inv *Invocation) Mount(containerPath, hostPath string) (*Invocation, error) {
	abs, err := filepath.Abs(hostPath)
	if err != nil {
		return nil, err
	}
	if resolved, err := filepath.EvalSymlinks(abs); err == nil {
		abs = resolved
	}
	inv.mounts[containerPath] = abs
	return inv, nil
}

// WorkDir sets the working directory for the command. Absolute paths are
// used as-is; relative paths are taken under HostDir.
func (inv *Invocation) WorkDir(dir string) *Invocation {
	if !path.IsAbs(dir) {
		dir = path.Join(HostDir, dir)
	}
	inv.workDir = dir
	return inv
}

// Args assembles the full engine argument list for running a program in the
// image. Mounts are emitted in container-path order so invocations are
// reproducible.
func (inv *Invocation) Args(program string, args ...string) []string {
	out := []string{
		"run", "-it", "--rm",
		"--hostname", containerHostname,
		"--volume", "/etc/localtime:/etc/localtime:ro",
	}

	// Rootless podman keeps the invoking user's id inside the container;
	// docker needs the uid:gid spelled out.
	switch inv.engine.variant {
	case VariantPodman:
		out = append(out, "--userns=keep-id")
	default:
		out = append(out, "--user", fmt.Sprintf("%d:%d", inv.engine.uid, inv.engine.gid))
	}

	containerPaths := make([]string, 0, len(inv.mounts))
	for containerPath := range inv.mounts {
		containerPaths = append(containerPaths, containerPath)
	}
	sort.Strings(containerPaths)
	for _, containerPath := range containerPaths {
		out = append(out, "--volume",
			fmt.Sprintf("%s:%s:z", inv.mounts[containerPath], containerPath))
	}

	out = append(out, "--workdir", inv.workDir, inv.engine.image, program)
	return append(out, args...)
}

// Command finalizes the invocation into a runnable command with inherited
// stdio.
func (inv *Invocation) Command(ctx context.Context, program string, args ...string) *exec.Cmd {
	return inv.engine.command(ctx, inv.Args(program, args...)...)
}
