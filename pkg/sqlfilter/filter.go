// Package sqlfilter builds parameterised WHERE clauses from typed predicates.
//
// Column names are taken from code, never from user input; every value is bound
// through a positional placeholder.
package sqlfilter

import (
	"fmt"
	"strings"
)

type op string

const (
	opEq    op = "="
	opGte   op = ">="
	opLte   op = "<="
	opHas   op = "HAS"
	opEmpty op = "EMPTY"
)

// Clause is a single typed predicate.
type Clause struct {
	Column string
	Op     op
	Value  interface{}
}

// Filter accumulates clauses joined with AND.
type Filter struct {
	clauses []Clause
	groups  [][]Clause
}

// New returns an empty filter.
func New() *Filter {
	return &Filter{}
}

func (f *Filter) add(column string, o op, value interface{}) *Filter {
	f.clauses = append(f.clauses, Clause{Column: column, Op: o, Value: value})
	return f
}

// Eq adds column = value.
func (f *Filter) Eq(column string, value interface{}) *Filter { return f.add(column, opEq, value) }

// Gte adds column >= value.
func (f *Filter) Gte(column string, value interface{}) *Filter { return f.add(column, opGte, value) }

// Lte adds column <= value.
func (f *Filter) Lte(column string, value interface{}) *Filter { return f.add(column, opLte, value) }

// When applies fn only if cond holds.
func (f *Filter) When(cond bool, fn func(*Filter)) *Filter {
	if cond {
		fn(f)
	}
	return f
}

// Or adds a parenthesised group whose clauses are joined with OR.
func (f *Filter) Or(clauses ...Clause) *Filter {
	if len(clauses) > 0 {
		f.groups = append(f.groups, clauses)
	}
	return f
}

// Merge appends the clauses of other.
func (f *Filter) Merge(other *Filter) *Filter {
	if other == nil {
		return f
	}
	f.clauses = append(f.clauses, other.clauses...)
	f.groups = append(f.groups, other.groups...)
	return f
}

// Empty reports whether the filter has no predicates.
func (f *Filter) Empty() bool {
	return len(f.clauses) == 0 && len(f.groups) == 0
}

// Build renders "WHERE ..." with placeholders starting at $start, plus the bound args.
// An empty filter renders an empty string.
func (f *Filter) Build(start int) (string, []interface{}) {
	if f.Empty() {
		return "", nil
	}
	if start < 1 {
		start = 1
	}
	var parts []string
	var args []interface{}
	next := func(c Clause) string {
		switch c.Op {
		case opHas:
			args = append(args, c.Value)
			return fmt.Sprintf("$%d = ANY(%s)", start+len(args)-1, c.Column)
		case opEmpty:
			return fmt.Sprintf("COALESCE(cardinality(%s), 0) = 0", c.Column)
		default:
			args = append(args, c.Value)
			return fmt.Sprintf("%s %s $%d", c.Column, c.Op, start+len(args)-1)
		}
	}
	for _, c := range f.clauses {
		parts = append(parts, next(c))
	}
	for _, group := range f.groups {
		alts := make([]string, 0, len(group))
		for _, c := range group {
			alts = append(alts, next(c))
		}
		parts = append(parts, "("+strings.Join(alts, " OR ")+")")
	}
	return "WHERE " + strings.Join(parts, " AND "), args
}

// ContainsClause matches rows whose array column contains value.
func ContainsClause(column string, value interface{}) Clause {
	return Clause{Column: column, Op: opHas, Value: value}
}

// EmptyArrayClause matches rows whose array column is NULL or empty.
func EmptyArrayClause(column string) Clause {
	return Clause{Column: column, Op: opEmpty}
}
