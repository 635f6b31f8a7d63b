package postgres

import (
	"fmt"
	"strings"

	apperrors "github.com/medvault/records-api/pkg/errors"
)

// Comparison-operator tokens accepted in list filters. Callers pass values
// like "time_slot=gte:2026-01-02T00:00:00Z"; the token is rewritten to the
// native SQL operator before querying. A value without a token is an equality
// match.
var filterOps = map[string]string{
	"eq":  "=",
	"ne":  "<>",
	"gt":  ">",
	"gte": ">=",
	"lt":  "<",
	"lte": "<=",
}

// buildFilterClause turns raw query filters into a WHERE fragment. Only
// columns listed in allowed may be filtered on; anything else is a validation
// error. The fragment starts with " AND" so it can be appended to an existing
// WHERE clause, and placeholders begin at startArg.
func buildFilterClause(filters map[string]string, allowed map[string]bool, startArg int) (string, []interface{}, error) {
	if len(filters) == 0 {
		return "", nil, nil
	}

	var sb strings.Builder
	args := make([]interface{}, 0, len(filters))
	arg := startArg

	for field, raw := range filters {
		if !allowed[field] {
			return "", nil, apperrors.Validation(fmt.Sprintf("cannot filter on field %q", field))
		}

		// Values themselves may contain colons (timestamps), so only a
		// recognized leading token is an operator; anything else is an
		// equality literal.
		op := "="
		value := raw
		if idx := strings.Index(raw, ":"); idx > 0 {
			if sqlOp, ok := filterOps[raw[:idx]]; ok {
				op = sqlOp
				value = raw[idx+1:]
			}
		}

		fmt.Fprintf(&sb, " AND %s %s $%d", field, op, arg)
		args = append(args, value)
		arg++
	}

	return sb.String(), args, nil
}
