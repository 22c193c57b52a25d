// SPDX-License-Identifier: BSD-2-Clause

package machineq

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"slices"
	"strings"
	"testing"

	"s4-cli/internal/config"
)

// mockQueue simulates mq.sh: report subcommands answer from canned TSV,
// everything else succeeds or fails per exitCode. Invocations are recorded
// for argument assertions.
type mockQueue struct {
	systemTSV   string
	poolTSV     string
	exitCode    int
	invocations [][]string
}

func (m *mockQueue) commandFunc(t *testing.T) ExecCommandFunc {
	t.Helper()
	return func(_ context.Context, name string, args ...string) *exec.Cmd {
		m.invocations = append(m.invocations, slices.Clone(args))
		stdout := ""
		if len(args) > 0 {
			switch args[0] {
			case "system-tsv":
				stdout = m.systemTSV
			case "pool-tsv":
				stdout = m.poolTSV
			}
		}
		cs := append([]string{"-test.run=TestHelperProcess", "--", name}, args...)
		cmd := exec.Command(os.Args[0], cs...)
		cmd.Env = []string{
			"GO_WANT_HELPER_PROCESS=1",
			"GO_HELPER_STDOUT=" + stdout,
			fmt.Sprintf("GO_HELPER_EXIT_CODE=%d", m.exitCode),
		}
		return cmd
	}
}

func TestHelperProcess(t *testing.T) {
	if os.Getenv("GO_WANT_HELPER_PROCESS") != "1" {
		return
	}
	if stdout := os.Getenv("GO_HELPER_STDOUT"); stdout != "" {
		fmt.Fprint(os.Stdout, stdout)
	}
	exitCode := 0
	if code := os.Getenv("GO_HELPER_EXIT_CODE"); code != "" {
		fmt.Sscanf(code, "%d", &exitCode)
	}
	os.Exit(exitCode)
}

func testQueue(t *testing.T, mock *mockQueue) *Queue {
	t.Helper()
	queue, err := New(WithBinary("/usr/bin/mq.sh"), WithExecCommand(mock.commandFunc(t)))
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	return queue
}

// Inventory used across the matching tests: systems a and b are plat1 (with
// variations), c is plat2, and poolA covers exactly {a, b}.
func inventoryMock() *mockQueue {
	return &mockQueue{
		systemTSV: "name\tsel4_plat\towner\n" +
			"a\tplat1:var1\talice\n" +
			"b\tplat1:var2\tbob\n" +
			"c\tplat2\tcarol\n",
		poolTSV: "poolA\ta\tb\npoolB\ta\tc\n",
	}
}

func TestSystems(t *testing.T) {
	t.Parallel()

	queue := testQueue(t, inventoryMock())
	systems, err := queue.Systems(context.Background())
	if err != nil {
		t.Fatalf("Systems failed: %v", err)
	}
	if len(systems) != 3 {
		t.Fatalf("Systems = %v, want 3 entries", systems)
	}
	if got := systems["a"]; got.Platform != "plat1" || got.Variation != "var1" {
		t.Errorf("system a = %+v", got)
	}
	if got := systems["c"]; got.Platform != "plat2" || got.Variation != "" {
		t.Errorf("system c = %+v", got)
	}
}

func TestSystemsHeaderOrderIndependent(t *testing.T) {
	t.Parallel()

	mock := &mockQueue{
		systemTSV: "owner\tsel4_plat\tname\nalice\tplat1\ta\n",
		poolTSV:   "\n",
	}
	queue := testQueue(t, mock)
	systems, err := queue.Systems(context.Background())
	if err != nil {
		t.Fatalf("Systems failed: %v", err)
	}
	if got := systems["a"]; got.Platform != "plat1" {
		t.Errorf("system a = %+v, want plat1 via header lookup", got)
	}
}

func TestPools(t *testing.T) {
	t.Parallel()

	queue := testQueue(t, inventoryMock())
	pools, err := queue.Pools(context.Background())
	if err != nil {
		t.Fatalf("Pools failed: %v", err)
	}
	if !slices.Equal(pools["poolA"], []string{"a", "b"}) {
		t.Errorf("poolA = %v", pools["poolA"])
	}
	if !slices.Equal(pools["poolB"], []string{"a", "c"}) {
		t.Errorf("poolB = %v", pools["poolB"])
	}
}

func TestMatchSystem(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		platform  string
		variation string
		want      []string
		wantErr   string
	}{
		{
			// poolA qualifies because {a, b} is a subset of the matches;
			// poolB does not because c is not a match.
			name:     "pool before systems",
			platform: "plat1",
			want:     []string{"poolA", "a", "b"},
		},
		{
			name:      "variation narrows the match",
			platform:  "plat1",
			variation: "var1",
			want:      []string{"a"},
		},
		{
			name:     "single system",
			platform: "plat2",
			want:     []string{"c"},
		},
		{
			name:     "no match names the platform",
			platform: "plat3",
			wantErr:  "plat3",
		},
		{
			name:      "no match names the variation",
			platform:  "plat1",
			variation: "var9",
			wantErr:   "plat1:var9",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			queue := testQueue(t, inventoryMock())
			got, err := queue.MatchSystem(context.Background(),
				config.PlatformId(tt.platform), config.VariationId(tt.variation))
			if tt.wantErr != "" {
				if err == nil {
					t.Fatalf("MatchSystem succeeded with %v, want error", got)
				}
				if !errors.Is(err, ErrNoMatch) {
					t.Errorf("error = %v, want ErrNoMatch", err)
				}
				if !strings.Contains(err.Error(), tt.wantErr) {
					t.Errorf("error %q does not name %q", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("MatchSystem failed: %v", err)
			}
			if !slices.Equal(got, tt.want) {
				t.Errorf("MatchSystem = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRunArgs(t *testing.T) {
	t.Parallel()

	mock := inventoryMock()
	queue := testQueue(t, mock)
	err := queue.Run(context.Background(), RunOptions{
		ExitPhrase: "All is well in the universe",
		System:     "poolA",
		Files:      []string{"images/kernel-arm-tx2", "images/sel4test-driver-image-arm-tx2"},
		Dir:        t.TempDir(),
	})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	want := []string{
		"run", "-c", "All is well in the universe", "-s", "poolA",
		"-f", "images/kernel-arm-tx2",
		"-f", "images/sel4test-driver-image-arm-tx2",
	}
	got := mock.invocations[len(mock.invocations)-1]
	if !slices.Equal(got, want) {
		t.Errorf("run args = %v, want %v", got, want)
	}
}

func TestRunFailureSurfaces(t *testing.T) {
	t.Parallel()

	mock := inventoryMock()
	mock.exitCode = 1
	queue := testQueue(t, mock)
	err := queue.Run(context.Background(), RunOptions{ExitPhrase: "done", System: "a"})
	if err == nil {
		t.Fatal("Run succeeded despite non-zero exit")
	}
	if !strings.Contains(err.Error(), "a") {
		t.Errorf("error %q does not name the system", err)
	}
}
