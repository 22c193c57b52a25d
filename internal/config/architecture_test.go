// SPDX-License-Identifier: BSD-2-Clause

package config

import (
	"errors"
	"testing"
)

func TestParseArchitecture(t *testing.T) {
	t.Parallel()

	tests := []struct {
		token   string
		want    Architecture
		wantErr bool
	}{
		{token: "aarch32", want: Aarch32},
		{token: "aarch64", want: Aarch64},
		{token: "riscv32", want: RiscV32},
		{token: "riscv64", want: RiscV64},
		{token: "ia32", want: Ia32},
		{token: "x86_64", want: X86_64},
		// Aliases.
		{token: "arm_hyp", want: Aarch32},
		{token: "amd64", want: X86_64},
		{token: "X64", want: X86_64},
		// Rejected.
		{token: "sparc", wantErr: true},
		{token: "", wantErr: true},
		{token: "AARCH64", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.token, func(t *testing.T) {
			t.Parallel()
			got, err := ParseArchitecture(tt.token)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("ParseArchitecture(%q) succeeded, want error", tt.token)
				}
				if !errors.Is(err, ErrParse) {
					t.Errorf("error = %v, want ErrParse", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseArchitecture(%q) failed: %v", tt.token, err)
			}
			if got != tt.want {
				t.Errorf("ParseArchitecture(%q) = %v, want %v", tt.token, got, tt.want)
			}
		})
	}
}

func TestArchitectureFamily(t *testing.T) {
	t.Parallel()

	tests := []struct {
		arch Architecture
		want Family
	}{
		{Aarch32, FamilyArm},
		{Aarch64, FamilyArm},
		{RiscV32, FamilyRiscV},
		{RiscV64, FamilyRiscV},
		{Ia32, FamilyX86},
		{X86_64, FamilyX86},
	}

	for _, tt := range tests {
		if got := tt.arch.Family(); got != tt.want {
			t.Errorf("%v.Family() = %v, want %v", tt.arch, got, tt.want)
		}
	}
}
