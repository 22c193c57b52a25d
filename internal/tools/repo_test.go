// SPDX-License-Identifier: BSD-2-Clause

package tools

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"slices"
	"testing"
)

type repoRecorder struct {
	invocations [][]string
	exitCode    int
}

func (m *repoRecorder) commandFunc(t *testing.T) ExecCommandFunc {
	t.Helper()
	return func(_ context.Context, name string, args ...string) *exec.Cmd {
		m.invocations = append(m.invocations, slices.Clone(args))
		cs := append([]string{"-test.run=TestHelperProcess", "--", name}, args...)
		cmd := exec.Command(os.Args[0], cs...)
		cmd.Env = []string{
			"GO_WANT_HELPER_PROCESS=1",
			fmt.Sprintf("GO_HELPER_EXIT_CODE=%d", m.exitCode),
		}
		return cmd
	}
}

func TestHelperProcess(t *testing.T) {
	if os.Getenv("GO_WANT_HELPER_PROCESS") != "1" {
		return
	}
	exitCode := 0
	if code := os.Getenv("GO_HELPER_EXIT_CODE"); code != "" {
		fmt.Sscanf(code, "%d", &exitCode)
	}
	os.Exit(exitCode)
}

func testRepo(t *testing.T, mock *repoRecorder) *Repo {
	t.Helper()
	repo, err := NewRepo("http://unreachable.invalid/repo",
		WithRepoBinary("/usr/bin/repo"),
		WithRepoExecCommand(mock.commandFunc(t)))
	if err != nil {
		t.Fatalf("NewRepo failed: %v", err)
	}
	return repo
}

func TestRepoInitArgs(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		opts InitOptions
		want []string
	}{
		{
			name: "url only",
			opts: InitOptions{ManifestURL: "https://github.com/seL4/sel4test-manifest.git"},
			want: []string{"init", "--manifest-url", "https://github.com/seL4/sel4test-manifest.git"},
		},
		{
			name: "branch and manifest",
			opts: InitOptions{
				ManifestURL: "https://github.com/seL4/camkes-manifest.git",
				Branch:      "master",
				Manifest:    "devel.xml",
			},
			want: []string{
				"init", "--manifest-url", "https://github.com/seL4/camkes-manifest.git",
				"--manifest-branch", "master",
				"--manifest-name", "devel.xml",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			mock := &repoRecorder{}
			repo := testRepo(t, mock)
			if err := repo.Init(context.Background(), t.TempDir(), tt.opts); err != nil {
				t.Fatalf("Init failed: %v", err)
			}
			got := mock.invocations[len(mock.invocations)-1]
			if !slices.Equal(got, tt.want) {
				t.Errorf("init args = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRepoSync(t *testing.T) {
	t.Parallel()

	mock := &repoRecorder{}
	repo := testRepo(t, mock)
	if err := repo.Sync(context.Background(), t.TempDir()); err != nil {
		t.Fatalf("Sync failed: %v", err)
	}
	got := mock.invocations[len(mock.invocations)-1]
	if !slices.Equal(got, []string{"sync"}) {
		t.Errorf("sync args = %v", got)
	}
}

func TestRepoFailureSurfaces(t *testing.T) {
	t.Parallel()

	mock := &repoRecorder{exitCode: 1}
	repo := testRepo(t, mock)
	err := repo.Sync(context.Background(), t.TempDir())
	if err == nil {
		t.Fatal("Sync succeeded despite non-zero exit")
	}
}
