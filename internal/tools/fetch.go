// SPDX-License-Identifier: BSD-2-Clause

// Package tools locates the external collaborator executables: the repo
// manifest tool and anything else the workspace commands shell out to.
// Executables found on PATH are used as-is; the repo script can additionally
// be downloaded once into a per-user temporary location and reused on later
// invocations.
package tools

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"os/exec"
	"os/user"
	"path/filepath"

	"github.com/charmbracelet/log"
)

// FindOrDownload returns the path of the named executable, preferring a PATH
// hit, then a previously downloaded copy, and finally fetching the script
// from url. Downloads are written executable and kept for reuse.
func FindOrDownload(name, url string) (string, error) {
	return findOrDownload(name, url, http.DefaultClient)
}

func findOrDownload(name, url string, client *http.Client) (string, error) {
	if path, err := exec.LookPath(name); err == nil {
		return path, nil
	}

	path := tmpAppPath(name)
	if fileExists(path) {
		log.Debug("reusing downloaded tool", "tool", name, "path", path)
		return path, nil
	}

	log.Debug("downloading tool", "tool", name, "url", url)
	resp, err := client.Get(url)
	if err != nil {
		return "", &ExternalError{Tool: name, Reason: "download from " + url, Err: err}
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", &ExternalError{
			Tool:   name,
			Reason: fmt.Sprintf("download from %s: %s", url, resp.Status),
		}
	}

	dest, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o755)
	if err != nil {
		return "", err
	}
	if _, err := io.Copy(dest, resp.Body); err != nil {
		dest.Close()
		os.Remove(path)
		return "", err
	}
	if err := dest.Close(); err != nil {
		return "", err
	}
	return path, nil
}

// tmpAppPath is where a downloaded copy of an executable lives. The filename
// carries the invoking username (or uid as a fallback) so multi-user hosts
// do not collide on a shared temp directory.
func tmpAppPath(name string) string {
	dir := os.Getenv("TMPDIR")
	if dir == "" {
		dir = "/tmp"
	}
	owner := fmt.Sprintf("%d", os.Getuid())
	if u, err := user.Current(); err == nil && u.Username != "" {
		owner = u.Username
	}
	return filepath.Join(dir, fmt.Sprintf("%s-s4-%s", owner, name))
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
