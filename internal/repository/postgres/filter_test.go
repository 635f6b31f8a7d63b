package postgres

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/medvault/records-api/pkg/errors"
)

var testAllowed = map[string]bool{
	"time_slot": true,
	"cancelled": true,
}

func TestBuildFilterClauseEquality(t *testing.T) {
	clause, args, err := buildFilterClause(map[string]string{"cancelled": "false"}, testAllowed, 2)
	require.NoError(t, err)
	assert.Equal(t, " AND cancelled = $2", clause)
	assert.Equal(t, []interface{}{"false"}, args)
}

func TestBuildFilterClauseRewritesOperatorTokens(t *testing.T) {
	cases := map[string]string{
		"gte": ">=",
		"gt":  ">",
		"lte": "<=",
		"lt":  "<",
		"ne":  "<>",
		"eq":  "=",
	}
	for token, op := range cases {
		clause, args, err := buildFilterClause(
			map[string]string{"time_slot": token + ":2026-09-01T00:00:00Z"}, testAllowed, 1)
		require.NoError(t, err, token)
		assert.Equal(t, " AND time_slot "+op+" $1", clause)
		assert.Equal(t, []interface{}{"2026-09-01T00:00:00Z"}, args)
	}
}

func TestBuildFilterClauseUnknownTokenIsEqualityLiteral(t *testing.T) {
	clause, args, err := buildFilterClause(map[string]string{"time_slot": "within:1h"}, testAllowed, 1)
	require.NoError(t, err)
	assert.Equal(t, " AND time_slot = $1", clause)
	assert.Equal(t, []interface{}{"within:1h"}, args)
}

func TestBuildFilterClauseRejectsUnknownField(t *testing.T) {
	_, _, err := buildFilterClause(map[string]string{"password_hash": "x"}, testAllowed, 1)
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.ErrValidation))
}

func TestBuildFilterClauseEmpty(t *testing.T) {
	clause, args, err := buildFilterClause(nil, testAllowed, 1)
	require.NoError(t, err)
	assert.Empty(t, clause)
	assert.Empty(t, args)
}

func TestBuildFilterClauseValueWithColonLiteral(t *testing.T) {
	// Timestamps contain colons; only a leading known token is treated as an
	// operator.
	clause, args, err := buildFilterClause(
		map[string]string{"time_slot": "2026-09-01T10:00:00Z"}, testAllowed, 1)
	require.NoError(t, err)
	assert.Equal(t, " AND time_slot = $1", clause)
	assert.Equal(t, []interface{}{"2026-09-01T10:00:00Z"}, args)
}
