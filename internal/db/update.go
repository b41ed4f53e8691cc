package db

import (
	"strconv"
	"strings"

	"thriftlink-backend/internal/errs"
)

// BuildUpdate constructs a partial UPDATE statement for the given table.
// A column is included iff it has an entry in fields AND appears in allowed;
// allowed is the fixed per-resource whitelist, so caller-supplied keys can
// never name a column. Columns are emitted in allowed order to keep the
// statement deterministic. All values bind positionally; only the whitelisted
// column names themselves are interpolated.
//
// Returns errs.ErrNothingToUpdate when no whitelisted field is present.
func BuildUpdate(table, idColumn string, id any, fields map[string]any, allowed []string) (string, []any, error) {
	var b strings.Builder
	args := make([]any, 0, len(allowed)+1)

	b.WriteString("UPDATE ")
	b.WriteString(table)
	b.WriteString(" SET ")

	for _, col := range allowed {
		val, ok := fields[col]
		if !ok {
			continue
		}
		if len(args) > 0 {
			b.WriteString(", ")
		}
		args = append(args, val)
		b.WriteString(col)
		b.WriteString(" = $")
		b.WriteString(strconv.Itoa(len(args)))
	}

	if len(args) == 0 {
		return "", nil, errs.ErrNothingToUpdate
	}

	args = append(args, id)
	b.WriteString(" WHERE ")
	b.WriteString(idColumn)
	b.WriteString(" = $")
	b.WriteString(strconv.Itoa(len(args)))

	return b.String(), args, nil
}
