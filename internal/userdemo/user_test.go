package userdemo

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoleString(t *testing.T) {
	assert.Equal(t, "ADMIN", Admin.String())
	assert.Equal(t, "USER", Member.String())
	assert.Equal(t, "GUEST", Guest.String())
	assert.Equal(t, "Role(7)", Role(7).String())
	assert.Less(t, Admin, Member)
	assert.Less(t, Member, Guest)
}

func TestParseRole(t *testing.T) {
	r, err := ParseRole("guest")
	require.NoError(t, err)
	assert.Equal(t, Guest, r)

	_, err = ParseRole("root")
	assert.Error(t, err)
}

func TestUserString(t *testing.T) {
	assert.Equal(t, "User{id=1, name='Tema', role='USER'}", Directory()[0].String())
}

func TestScenarios(t *testing.T) {
	ctx := context.Background()
	seen := map[string]bool{}
	for _, s := range Scenarios() {
		assert.False(t, seen[s.Name], "duplicate scenario %s", s.Name)
		seen[s.Name] = true

		out, err := s.Run(ctx)
		require.NoError(t, err, s.Name)
		assert.NotEmpty(t, out, s.Name)
	}

	guests, ok := Lookup("guests")
	require.True(t, ok)
	out, err := guests.Run(ctx)
	require.NoError(t, err)
	assert.Equal(t, "[Super woman Super man Super cat]", out)

	sum, ok := Lookup("sum-ids")
	require.True(t, ok)
	out, err = sum.Run(ctx)
	require.NoError(t, err)
	assert.Equal(t, "365", out)

	_, ok = Lookup("missing")
	assert.False(t, ok)
}
