// SPDX-License-Identifier: BSD-2-Clause

package config

import (
	"errors"
	"testing"

	"s4-cli/internal/setting"
)

// gatedFlag requires (x == true) OR (y == "a").
func gatedFlag() Flag {
	return Flag{
		Requires: []RequireSet{
			{"x": Single(setting.Boolean(true))},
			{"y": Single(setting.Text("a"))},
		},
	}
}

func TestFlagValidate(t *testing.T) {
	t.Parallel()

	withFlags := func(pairs map[setting.FlagId]setting.Value) setting.Setting {
		s := setting.New()
		for id, v := range pairs {
			s.Set(id, v)
		}
		return s
	}

	tests := []struct {
		name    string
		current map[setting.FlagId]setting.Value
		value   setting.Value
		wantErr error
	}{
		{
			name:    "first conjunction satisfied",
			current: map[setting.FlagId]setting.Value{"x": setting.Boolean(true)},
			value:   setting.Boolean(true),
		},
		{
			name:    "second conjunction satisfied",
			current: map[setting.FlagId]setting.Value{"y": setting.Text("a")},
			value:   setting.Boolean(true),
		},
		{
			name:    "no conjunction satisfied",
			current: map[setting.FlagId]setting.Value{"y": setting.Text("b")},
			value:   setting.Boolean(true),
			wantErr: ErrUnsatisfied,
		},
		{
			name:    "absent dependencies read false",
			current: nil,
			value:   setting.Boolean(true),
			wantErr: ErrUnsatisfied,
		},
		{
			name:    "disabling always succeeds",
			current: nil,
			value:   setting.Boolean(false),
		},
		{
			name:    "text on gated flag rejected",
			current: map[setting.FlagId]setting.Value{"x": setting.Boolean(true)},
			value:   setting.Text("text"),
			wantErr: ErrInvalidFlagValue,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := gatedFlag().Validate("f", withFlags(tt.current), tt.value)
			if tt.wantErr == nil {
				if err != nil {
					t.Fatalf("Validate failed: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestFlagWithoutRequirementsAcceptsAnything(t *testing.T) {
	t.Parallel()

	flag := Flag{Description: "free"}
	for _, value := range []setting.Value{
		setting.Boolean(true), setting.Boolean(false), setting.Text("anything"),
	} {
		if err := flag.Validate("f", setting.New(), value); err != nil {
			t.Errorf("Validate(%v) failed: %v", value, err)
		}
	}
}

func TestRequirementAnyOf(t *testing.T) {
	t.Parallel()

	req := AnyOf(setting.Text("aarch64"), setting.Text("aarch32"), setting.Text("aarch64"))
	if !req.Check(setting.Text("aarch32")) || !req.Check(setting.Text("aarch64")) {
		t.Error("AnyOf rejected a member value")
	}
	if req.Check(setting.Text("riscv64")) {
		t.Error("AnyOf accepted a non-member value")
	}
	if req.Check(setting.Boolean(true)) {
		t.Error("AnyOf accepted a boolean against text members")
	}
}

func TestFlagMergeDeduplicatesRequires(t *testing.T) {
	t.Parallel()

	a := gatedFlag()
	b := gatedFlag()
	b.Requires = append(b.Requires, RequireSet{"z": Single(setting.Boolean(true))})

	merged := a.Merge(b)
	if len(merged.Requires) != 3 {
		t.Errorf("merged Requires length = %d, want 3", len(merged.Requires))
	}
}

func TestFlagMergeScalars(t *testing.T) {
	t.Parallel()

	a := Flag{Description: "original", Variable: "VAR"}
	merged := a.Merge(Flag{Description: "updated"})
	if merged.Description != "updated" {
		t.Errorf("Description = %q, want %q", merged.Description, "updated")
	}
	if merged.Variable != "VAR" {
		t.Errorf("Variable = %q, want %q (empty override must not clear)", merged.Variable, "VAR")
	}
}

func TestCMakeArg(t *testing.T) {
	t.Parallel()

	flag := Flag{Variable: "KernelIsMCS"}
	if got := flag.CMakeArg(setting.Boolean(true)); got != "-DKernelIsMCS=ON" {
		t.Errorf("CMakeArg = %q", got)
	}
	if got := flag.CMakeArg(setting.Boolean(false)); got != "-DKernelIsMCS=OFF" {
		t.Errorf("CMakeArg = %q", got)
	}
	if got := flag.CMakeArg(setting.Text("sabre")); got != "-DKernelIsMCS=sabre" {
		t.Errorf("CMakeArg = %q", got)
	}
	if got := (Flag{}).CMakeArg(setting.Boolean(true)); got != "" {
		t.Errorf("internal flag rendered an argument: %q", got)
	}
}
