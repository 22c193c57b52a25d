// SPDX-License-Identifier: BSD-2-Clause

package config

import (
	"errors"
	"testing"
)

func TestParseChoice(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input   string
		want    Choice
		wantErr bool
	}{
		{input: "tx2", want: Choice{Platform: "tx2"}},
		{input: "tx2:single", want: Choice{Platform: "tx2", Variation: "single"}},
		{input: "a:b:c", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()
			got, err := ParseChoice(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("ParseChoice(%q) succeeded, want error", tt.input)
				}
				if !errors.Is(err, ErrParse) {
					t.Errorf("error = %v, want ErrParse", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseChoice(%q) failed: %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("ParseChoice(%q) = %v, want %v", tt.input, got, tt.want)
			}
			if got.String() != tt.input {
				t.Errorf("String() = %q, want %q", got.String(), tt.input)
			}
		})
	}
}

func TestPlatformSupports(t *testing.T) {
	t.Parallel()

	p := Platform{Architectures: []Architecture{Ia32, X86_64}}
	if !p.Supports(X86_64) {
		t.Error("Supports(x86_64) = false")
	}
	if p.Supports(Aarch64) {
		t.Error("Supports(aarch64) = true")
	}
}

func TestPlatformMerge(t *testing.T) {
	t.Parallel()

	base := Platform{Architectures: []Architecture{Aarch64}}
	base.Setting.SetBool("smp", true)

	override := Platform{
		Architectures: []Architecture{Aarch32, Aarch64},
		Variations: map[VariationId]Variation{
			"single": {},
		},
	}
	override.Setting.SetBool("smp", false)

	merged := base.Merge(override)
	if len(merged.Architectures) != 2 {
		t.Errorf("Architectures = %v, want union of 2", merged.Architectures)
	}
	if _, ok := merged.Variations["single"]; !ok {
		t.Error("variation from override missing after merge")
	}
	if got := merged.Setting.Flag("smp"); got.Bool() {
		t.Errorf("smp = %v, want overridden to false", got)
	}
}
