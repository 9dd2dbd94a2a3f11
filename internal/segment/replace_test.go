package segment

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReplaceBlock(t *testing.T) {
	r := Replacement{
		Name: "tenant-guard",
		Old: []string{
			"    const tenantId = req.user?.tenantId;",
			"    if (!tenantId) {",
		},
		New: []string{
			"    const tenantId = req.user?.tenantId;",
			"    const userRole = req.user?.role;",
			"    if (userRole !== 'superadmin' && !tenantId) {",
		},
	}

	tests := []struct {
		name        string
		input       []string
		want        []string
		wantApplied bool
		wantErr     error
	}{
		{
			name: "replaces_first_occurrence",
			input: []string{
				"  async get() {",
				"    const tenantId = req.user?.tenantId;",
				"    if (!tenantId) {",
				"      return;",
				"    const tenantId = req.user?.tenantId;",
				"    if (!tenantId) {",
			},
			want: []string{
				"  async get() {",
				"    const tenantId = req.user?.tenantId;",
				"    const userRole = req.user?.role;",
				"    if (userRole !== 'superadmin' && !tenantId) {",
				"      return;",
				"    const tenantId = req.user?.tenantId;",
				"    if (!tenantId) {",
			},
			wantApplied: true,
		},
		{
			name: "already_applied",
			input: []string{
				"  async get() {",
				"    const tenantId = req.user?.tenantId;",
				"    const userRole = req.user?.role;",
				"    if (userRole !== 'superadmin' && !tenantId) {",
			},
			want: []string{
				"  async get() {",
				"    const tenantId = req.user?.tenantId;",
				"    const userRole = req.user?.role;",
				"    if (userRole !== 'superadmin' && !tenantId) {",
			},
			wantApplied: false,
		},
		{
			name:    "neither_block_present",
			input:   []string{"  async get() {", "  }"},
			wantErr: ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, applied, err := ReplaceBlock(tt.input, r)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantApplied, applied)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestReplaceBlockOldInsideNew(t *testing.T) {
	// New wraps Old, so a second run must not wrap it again
	r := Replacement{
		Name: "wrap",
		Old:  []string{"call();"},
		New:  []string{"try {", "call();", "} catch {}"},
	}

	once, applied, err := ReplaceBlock([]string{"start", "call();", "end"}, r)
	require.NoError(t, err)
	assert.True(t, applied)
	assert.Equal(t, []string{"start", "try {", "call();", "} catch {}", "end"}, once)

	twice, applied, err := ReplaceBlock(once, r)
	require.NoError(t, err)
	assert.False(t, applied)
	assert.Equal(t, once, twice)
}

func TestReplaceBlockEmptyOld(t *testing.T) {
	_, _, err := ReplaceBlock([]string{"x"}, Replacement{Name: "empty"})
	assert.ErrorIs(t, err, ErrConfiguration)
}

func TestReorderAndFixAppliesReplacements(t *testing.T) {
	input := []string{"class A {", "  old();", "}"}
	plan := Plan{
		Name: "replace-only",
		Replacements: []Replacement{
			{Name: "swap", Old: []string{"  old();"}, New: []string{"  fresh();", "  more();"}},
		},
		Segments: []SegmentSpec{{Name: "all", From: Start(), To: End()}},
	}

	result, err := ReorderAndFix(input, plan)
	require.NoError(t, err)
	assert.Equal(t, []string{"class A {", "  fresh();", "  more();", "}"}, result.Lines)
	assert.Equal(t, []string{"swap"}, result.Replaced)

	again, err := ReorderAndFix(result.Lines, plan)
	require.NoError(t, err)
	assert.True(t, again.Unchanged)
	assert.Empty(t, again.Replaced)

	_, err = ReorderAndFix([]string{"class A {", "}"}, plan)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, err, ErrConfiguration)
}
