package domain

import (
	"net/netip"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMatchRole(t *testing.T) {
	tests := []struct {
		name   string
		raw    string
		want   RoleTag
		wantOK bool
	}{
		{name: "manager", raw: "Manager", want: RoleManager, wantOK: true},
		{name: "worker", raw: "Worker", want: RoleWorker, wantOK: true},
		{name: "surrounding_whitespace", raw: "  Manager\n", want: RoleManager, wantOK: true},
		{name: "lower_case_rejected", raw: "manager"},
		{name: "substring_rejected", raw: "NotManager"},
		{name: "suffix_rejected", raw: "Manager-2"},
		{name: "empty", raw: ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := MatchRole(tt.raw, DefaultRoles)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestMatchRole_ApplicationTags(t *testing.T) {
	known := append(append([]RoleTag{}, DefaultRoles...), "Storage")
	got, ok := MatchRole("Storage", known)
	assert.True(t, ok)
	assert.Equal(t, RoleTag("Storage"), got)
}

func TestRoleProbeResult_Is(t *testing.T) {
	manager := RoleManager
	r := RoleProbeResult{Address: netip.MustParseAddr("10.0.0.1"), Role: &manager}
	assert.True(t, r.Is(RoleManager))
	assert.False(t, r.Is(RoleWorker))
	assert.False(t, RoleProbeResult{Address: netip.MustParseAddr("10.0.0.2")}.Is(RoleManager))
}
