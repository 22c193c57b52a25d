// SPDX-License-Identifier: BSD-2-Clause

package config

import (
	"errors"
	"testing"

	"s4-cli/internal/setting"
)

func TestParseRepository(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input   string
		want    Repository
		wantErr bool
	}{
		{input: "seL4/sel4test-manifest", want: Repository{Organisation: "seL4", Name: "sel4test-manifest"}},
		{input: "org/name", want: Repository{Organisation: "org", Name: "name"}},
		{input: "org/name.git", wantErr: true},
		{input: "org", wantErr: true},
		{input: "a/b/c", wantErr: true},
		{input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()
			got, err := ParseRepository(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("ParseRepository(%q) succeeded, want error", tt.input)
				}
				if !errors.Is(err, ErrParse) {
					t.Errorf("error = %v, want ErrParse", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseRepository(%q) failed: %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("ParseRepository(%q) = %v, want %v", tt.input, got, tt.want)
			}
			if got.String() != tt.input {
				t.Errorf("String() = %q, want %q", got.String(), tt.input)
			}
		})
	}
}

func TestGitRepoURL(t *testing.T) {
	t.Parallel()

	d := Defaults{GitServer: "https://github.com"}
	repo := Repository{Organisation: "seL4", Name: "camkes-manifest"}
	want := "https://github.com/seL4/camkes-manifest.git"
	if got := d.GitRepoURL(repo); got != want {
		t.Errorf("GitRepoURL = %q, want %q", got, want)
	}
}

func TestProjectMerge(t *testing.T) {
	t.Parallel()

	base := Project{
		Repository:      Repository{Organisation: "seL4", Name: "sel4test-manifest"},
		SourceDirectory: "projects/sel4test",
		CommandLine:     []setting.FlagId{"debug", "mcs"},
	}
	base.Setting.SetBool("debug", true)

	var override Project
	override.RootServer = "sel4test-driver"
	override.CommandLine = []setting.FlagId{"mcs", "smp"}
	override.Setting.SetBool("debug", false)

	merged := base.Merge(override)
	if merged.Repository != base.Repository {
		t.Errorf("empty repository override replaced %v", merged.Repository)
	}
	if merged.SourceDirectory != "projects/sel4test" {
		t.Errorf("SourceDirectory = %q", merged.SourceDirectory)
	}
	if merged.RootServer != "sel4test-driver" {
		t.Errorf("RootServer = %q", merged.RootServer)
	}
	wantCmdline := []setting.FlagId{"debug", "mcs", "smp"}
	if len(merged.CommandLine) != len(wantCmdline) {
		t.Fatalf("CommandLine = %v, want %v", merged.CommandLine, wantCmdline)
	}
	for i, id := range wantCmdline {
		if merged.CommandLine[i] != id {
			t.Errorf("CommandLine[%d] = %v, want %v", i, merged.CommandLine[i], id)
		}
	}
	if got := merged.Setting.Flag("debug"); got != setting.Boolean(false) {
		t.Errorf("merged setting debug = %v, want false", got)
	}
}
