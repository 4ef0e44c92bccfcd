package role

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCanMutate(t *testing.T) {
	assert.True(t, CanMutate(Admin))
	assert.False(t, CanMutate(User))
	assert.False(t, CanMutate(Role("other")))
}

func TestParse(t *testing.T) {
	r, err := Parse("admin")
	require.NoError(t, err)
	assert.Equal(t, Admin, r)

	_, err = Parse("root")
	require.Error(t, err)
}

func TestStore_DefaultsToAdmin(t *testing.T) {
	assert.Equal(t, Admin, NewStore().Current())
}

func TestStore_Toggle(t *testing.T) {
	s := NewStore()

	assert.Equal(t, User, s.Toggle())
	assert.Equal(t, User, s.Current())
	assert.Equal(t, Admin, s.Toggle())
}

func TestStore_Set(t *testing.T) {
	s := NewStore()

	require.NoError(t, s.Set(User))
	assert.Equal(t, User, s.Current())

	require.Error(t, s.Set(Role("root")))
	assert.Equal(t, User, s.Current())
}

func TestStore_OnChange(t *testing.T) {
	s := NewStore()

	var seen []Role
	s.OnChange(func(r Role) { seen = append(seen, r) })

	s.Toggle()          // admin -> user
	_ = s.Set(User)     // no transition, no notification
	_ = s.Set(Admin)    // user -> admin
	assert.Equal(t, []Role{User, Admin}, seen)
}
