package sqlite

import (
	"database/sql/driver"
	"strings"

	msqlite "modernc.org/sqlite"
)

func init() {
	// SQLite's lower() only folds ASCII; keyword filters need Unicode folding
	// to match the Go-lowered keyword.
	_ = msqlite.RegisterDeterministicScalarFunction("fold_case", 1, foldCase)
}

// foldCase lowers text values with Go's Unicode case mapping.
func foldCase(_ *msqlite.FunctionContext, args []driver.Value) (driver.Value, error) {
	switch v := args[0].(type) {
	case string:
		return strings.ToLower(v), nil
	case []byte:
		return strings.ToLower(string(v)), nil
	default:
		return v, nil
	}
}
