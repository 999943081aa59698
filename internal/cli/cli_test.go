package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testPlant = `
lines:
  - { id: L1, name: Line One }
  - { id: L2, name: Line Two, status: maintenance }
skus:
  - id: S1
    family: A
    production: { standardRate: 3000 }
    attributes: { color: red }
    compatibility: { allowedLines: [L1] }
  - id: S2
    family: A
    production: { standardRate: 3000 }
    attributes: { color: blue }
    compatibility: { allowedLines: [L1] }
  - id: S3
    family: B
    production: { standardRate: 3000 }
    attributes: { color: clear }
    compatibility: { allowedLines: [L9] }
orders:
  - { id: O1, skuId: S1, quantity: 3000, dueInHours: 4 }
  - { id: O2, skuId: S2, quantity: 3000, dueInHours: 8 }
  - { id: O3, skuId: S3, quantity: 100, dueInHours: 8 }
`

func writeFixture(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "plant.yaml")
	require.NoError(t, os.WriteFile(path, []byte(testPlant), 0o600))
	return path
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestMatrixCommand(t *testing.T) {
	fixture := writeFixture(t)

	out, err := run(t, "matrix", "--fixture", fixture)
	require.NoError(t, err)

	assert.Contains(t, out, "Changeover matrix (3 SKUs, version cli)")
	assert.Contains(t, out, "S1")
	assert.Contains(t, out, "28")
	assert.Contains(t, out, "MODERATE")

	out, err = run(t, "matrix", "--fixture", fixture, "--seed", "42")
	require.NoError(t, err)
	assert.Contains(t, out, "version cli-seed-42")
}

func TestChangeoverCommand(t *testing.T) {
	fixture := writeFixture(t)

	tests := []struct {
		name    string
		args    []string
		want    []string
		wantErr string
	}{
		{
			name: "single pair",
			args: []string{"S1", "S2"},
			want: []string{"S1 -> S2", "28 min MODERATE", "drain 5, clean 10, setup 5, flush 8"},
		},
		{
			name: "sequence",
			args: []string{"S1", "S2", "S1"},
			want: []string{"S2 -> S1", "sequence cost: 56 min"},
		},
		{
			name:    "unknown sku",
			args:    []string{"S1", "S404"},
			wantErr: `unknown sku "S404"`,
		},
		{
			name:    "too few args",
			args:    []string{"S1"},
			wantErr: "requires at least 2 arg(s)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args := append([]string{"changeover", "--fixture", fixture}, tt.args...)
			out, err := run(t, args...)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			for _, want := range tt.want {
				assert.Contains(t, out, want)
			}
		})
	}
}

func TestScheduleCommand(t *testing.T) {
	fixture := writeFixture(t)

	out, err := run(t, "schedule", "--fixture", fixture, "--start", "2024-01-15T06:00:00Z", "--hours", "24")
	require.NoError(t, err)

	assert.Contains(t, out, "Schedule 2024-01-15T06:00:00Z - 2024-01-16T06:00:00Z")
	assert.Contains(t, out, "O1")
	assert.Contains(t, out, "O2")
	assert.Contains(t, out, "28 MODERATE")
	assert.Contains(t, out, "1 unscheduled:")
	assert.Contains(t, out, "O3 (S3) no_compatible_line")

	out, err = run(t, "schedule", "--fixture", fixture, "--start", "2024-01-15T06:00:00Z", "--exclude-line", "L1")
	require.NoError(t, err)
	assert.Contains(t, out, "3 unscheduled:")
}

func TestScheduleCommand_InvalidFlags(t *testing.T) {
	fixture := writeFixture(t)

	tests := []struct {
		name    string
		args    []string
		wantErr string
	}{
		{"bad start", []string{"--start", "yesterday"}, "invalid --start"},
		{"zero hours", []string{"--hours", "0"}, "--hours must be positive"},
		{"unknown sort", []string{"--sort", "random"}, `unknown --sort "random"`},
		{"bad at", []string{"--at", "noon"}, "invalid --at"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args := append([]string{"schedule", "--fixture", fixture}, tt.args...)
			_, err := run(t, args...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestMetricsCommand(t *testing.T) {
	fixture := writeFixture(t)

	out, err := run(t, "metrics", "--fixture", fixture,
		"--start", "2024-01-15T06:00:00Z",
		"--at", "2024-01-15T12:00:00Z",
	)
	require.NoError(t, err)

	assert.Contains(t, out, "Schedule KPIs")
	assert.Contains(t, out, "scheduled orders      2 (1 unscheduled)")
	assert.Contains(t, out, "completed orders      2")
	assert.Contains(t, out, "28 min")
	assert.Contains(t, out, "L1")
}

func TestMissingFixture(t *testing.T) {
	_, err := run(t, "matrix", "--fixture", filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read plant fixture")
}
