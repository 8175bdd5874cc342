package specification_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/estantedev/estante/internal/domain/specification"
)

func TestAll(t *testing.T) {
	sql, args := specification.All().ToSQL()
	assert.Equal(t, "1 = 1", sql)
	assert.Empty(t, args)
}

func TestEq(t *testing.T) {
	sql, args := specification.Eq("title", "Dom Casmurro").ToSQL()
	assert.Equal(t, "title = ?", sql)
	assert.Equal(t, []interface{}{"Dom Casmurro"}, args)
}

func TestContains(t *testing.T) {
	sql, args := specification.Contains("author", "Machado").ToSQL()
	assert.Equal(t, "author LIKE ?", sql)
	assert.Equal(t, []interface{}{"%Machado%"}, args)
}

func TestAndFoldsFragments(t *testing.T) {
	spec := specification.And(
		specification.Eq("is_deleted", false),
		specification.Contains("title", "Alienista"),
	)

	sql, args := spec.ToSQL()
	assert.Equal(t, "(is_deleted = ? AND title LIKE ?)", sql)
	assert.Equal(t, []interface{}{false, "%Alienista%"}, args)
}

func TestOrFoldsFragments(t *testing.T) {
	spec := specification.Or(
		specification.Contains("title", "x"),
		specification.Contains("author", "x"),
	)

	sql, args := spec.ToSQL()
	assert.Equal(t, "(title LIKE ? OR author LIKE ?)", sql)
	assert.Len(t, args, 2)
}

func TestSingleOperandCollapses(t *testing.T) {
	sql, args := specification.And(specification.Eq("id", 1)).ToSQL()
	assert.Equal(t, "id = ?", sql)
	assert.Equal(t, []interface{}{1}, args)
}

func TestEmptyCompositeMatchesAll(t *testing.T) {
	sql, _ := specification.And().ToSQL()
	assert.Equal(t, "1 = 1", sql)
}

func TestNot(t *testing.T) {
	sql, args := specification.Not(specification.Eq("is_deleted", true)).ToSQL()
	assert.Equal(t, "NOT (is_deleted = ?)", sql)
	assert.Equal(t, []interface{}{true}, args)
}

func TestNestedComposite(t *testing.T) {
	spec := specification.And(
		specification.Eq("is_deleted", false),
		specification.Or(
			specification.Contains("title", "a"),
			specification.Contains("author", "a"),
		),
	)

	sql, args := spec.ToSQL()
	assert.Equal(t, "(is_deleted = ? AND (title LIKE ? OR author LIKE ?))", sql)
	assert.Len(t, args, 3)
}
