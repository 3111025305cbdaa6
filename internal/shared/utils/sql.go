package utils

import (
	"fmt"
	"strings"
)

// WhereBuilder accumulates WHERE clauses with positional pgx args.
//
//	w := utils.NewWhereBuilder()
//	w.Add("category = ?", "kitchens")
//	w.Add("price >= ?", min)
//	sql := "SELECT ... FROM products" + w.SQL() // WHERE category = $1 AND price >= $2
type WhereBuilder struct {
	clauses []string
	args    []interface{}
}

func NewWhereBuilder() *WhereBuilder {
	return &WhereBuilder{}
}

// Add appends a clause; every "?" is replaced with the next $n placeholder
func (w *WhereBuilder) Add(clause string, args ...interface{}) {
	for _, arg := range args {
		w.args = append(w.args, arg)
		clause = strings.Replace(clause, "?", fmt.Sprintf("$%d", len(w.args)), 1)
	}
	w.clauses = append(w.clauses, clause)
}

// SQL returns " WHERE a AND b" or "" when empty
func (w *WhereBuilder) SQL() string {
	if len(w.clauses) == 0 {
		return ""
	}
	return " WHERE " + JoinWithAnd(w.clauses)
}

func (w *WhereBuilder) Args() []interface{} {
	return w.args
}

// Next returns the next placeholder index, for LIMIT/OFFSET
func (w *WhereBuilder) Next() int {
	return len(w.args) + 1
}

// JoinWithAnd joins a slice of strings with AND operator
func JoinWithAnd(clauses []string) string {
	return strings.Join(clauses, " AND ")
}
