// SPDX-License-Identifier: BSD-2-Clause

package config

// Family is the coarse processor family of an architecture.
type Family string

// The three supported processor families.
const (
	FamilyArm   Family = "arm"
	FamilyRiscV Family = "riscv"
	FamilyX86   Family = "x86"
)

// String returns the family token.
func (f Family) String() string { return string(f) }

// Architecture is one of the fixed set of kernel architecture tokens.
type Architecture string

// The supported kernel architectures.
const (
	Aarch32 Architecture = "aarch32"
	Aarch64 Architecture = "aarch64"
	RiscV32 Architecture = "riscv32"
	RiscV64 Architecture = "riscv64"
	Ia32    Architecture = "ia32"
	X86_64  Architecture = "x86_64"
)

// String returns the architecture token.
func (a Architecture) String() string { return string(a) }

// Family returns the processor family the architecture belongs to.
func (a Architecture) Family() Family {
	switch a {
	case Aarch32, Aarch64:
		return FamilyArm
	case RiscV32, RiscV64:
		return FamilyRiscV
	default:
		return FamilyX86
	}
}

// ParseArchitecture converts an architecture token into an Architecture,
// accepting the aliases arm_hyp (aarch32) and amd64/X64 (x86_64).
func ParseArchitecture(token string) (Architecture, error) {
	switch token {
	case "aarch32", "arm_hyp":
		return Aarch32, nil
	case "aarch64":
		return Aarch64, nil
	case "riscv32":
		return RiscV32, nil
	case "riscv64":
		return RiscV64, nil
	case "ia32":
		return Ia32, nil
	case "x86_64", "amd64", "X64":
		return X86_64, nil
	default:
		return "", &ParseError{Kind: "architecture", Input: token}
	}
}
