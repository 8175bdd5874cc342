package specification

import "strings"

// Specification is a composable query predicate. Leaves render to a SQL
// fragment with placeholder parameters; combinators fold fragments with
// AND/OR/NOT. Column names are always caller-supplied constants, never
// derived from user input.
type Specification interface {
	// ToSQL converts the specification to a SQL WHERE fragment and parameters
	ToSQL() (string, []interface{})
}

type leaf struct {
	sql  string
	args []interface{}
}

func (l leaf) ToSQL() (string, []interface{}) {
	return l.sql, l.args
}

// All is the always-true predicate every builder starts from.
func All() Specification {
	return leaf{sql: "1 = 1"}
}

// Eq matches rows where column equals value.
func Eq(column string, value interface{}) Specification {
	return leaf{sql: column + " = ?", args: []interface{}{value}}
}

// Contains matches rows where column contains value as a substring.
func Contains(column, value string) Specification {
	return leaf{sql: column + " LIKE ?", args: []interface{}{"%" + value + "%"}}
}

type composite struct {
	operator string
	specs    []Specification
}

func (c composite) ToSQL() (string, []interface{}) {
	if len(c.specs) == 0 {
		return All().ToSQL()
	}
	if len(c.specs) == 1 {
		return c.specs[0].ToSQL()
	}

	fragments := make([]string, 0, len(c.specs))
	var args []interface{}
	for _, spec := range c.specs {
		sql, specArgs := spec.ToSQL()
		fragments = append(fragments, sql)
		args = append(args, specArgs...)
	}
	return "(" + strings.Join(fragments, " "+c.operator+" ") + ")", args
}

// And folds specifications with logical AND.
func And(specs ...Specification) Specification {
	return composite{operator: "AND", specs: specs}
}

// Or folds specifications with logical OR.
func Or(specs ...Specification) Specification {
	return composite{operator: "OR", specs: specs}
}

// Not negates a specification.
func Not(spec Specification) Specification {
	sql, args := spec.ToSQL()
	return leaf{sql: "NOT (" + sql + ")", args: args}
}
