package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAtLeastBoundaries(t *testing.T) {
	assert.True(t, LevelUser.AtLeast(LevelUser))
	assert.False(t, LevelUser.AtLeast(LevelHospital))
	assert.True(t, LevelHospital.AtLeast(LevelHospital))
	assert.False(t, LevelHospital.AtLeast(LevelAdmin))
	assert.True(t, LevelAdmin.AtLeast(LevelAdmin))
	assert.True(t, LevelAdmin.AtLeast(LevelUser))
}

func TestLevelFromGroupsHighestWins(t *testing.T) {
	assert.Equal(t, LevelUser, LevelFromGroups(nil))
	assert.Equal(t, LevelUser, LevelFromGroups([]string{"something-else"}))
	assert.Equal(t, LevelHospital, LevelFromGroups([]string{GroupHospital}))
	assert.Equal(t, LevelAdmin, LevelFromGroups([]string{GroupHospital, GroupAdmin}))
	assert.Equal(t, LevelAdmin, LevelFromGroups([]string{GroupAdmin, GroupHospital}))
}

func TestGroupsForLevelInverse(t *testing.T) {
	for _, level := range []AccessLevel{LevelUser, LevelHospital, LevelAdmin} {
		assert.Equal(t, level, LevelFromGroups(GroupsForLevel(level)))
	}
}

func TestHasLevelExactMembership(t *testing.T) {
	p := &Principal{Level: LevelHospital}
	assert.True(t, p.HasLevel(LevelHospital, LevelAdmin))
	assert.False(t, p.HasLevel(LevelAdmin))
	assert.False(t, p.HasLevel())
}
