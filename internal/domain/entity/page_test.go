package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRoleQuery_MatchesName(t *testing.T) {
	tests := []struct {
		name  string
		query RoleQuery
		input string
		want  bool
	}{
		{"exact text", RoleQuery{Role: "button", Name: "test btn"}, "test btn", true},
		{"case insensitive", RoleQuery{Role: "button", Name: "test btn"}, "Test Btn", true},
		{"substring", RoleQuery{Role: "button", Name: "test btn"}, "run test btn now", true},
		{"collapsed whitespace", RoleQuery{Role: "button", Name: "test btn"}, "  test \n  btn ", true},
		{"different name", RoleQuery{Role: "button", Name: "test btn"}, "submit", false},
		{"exact rejects substring", RoleQuery{Role: "button", Name: "test btn", Exact: true}, "test btn 2", false},
		{"exact is case sensitive", RoleQuery{Role: "button", Name: "test btn", Exact: true}, "Test btn", false},
		{"exact normalizes whitespace", RoleQuery{Role: "button", Name: "test btn", Exact: true}, " test  btn", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.query.MatchesName(tt.input))
		})
	}
}

func TestRoleQuery_String(t *testing.T) {
	assert.Equal(t, `button[name~="test btn"]`, RoleQuery{Role: "button", Name: "test btn"}.String())
	assert.Equal(t, `button[name="ok"]`, RoleQuery{Role: "button", Name: "ok", Exact: true}.String())
}
