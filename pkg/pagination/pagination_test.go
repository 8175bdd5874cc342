package pagination_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/estantedev/estante/pkg/errors"
	"github.com/estantedev/estante/pkg/pagination"
)

func TestPageCountRoundsUp(t *testing.T) {
	result := pagination.NewPagedResult([]int{1, 2, 3}, 1, 10, 21)
	assert.Equal(t, 3, result.PageCount)
	assert.Equal(t, int64(21), result.RowCount)
}

func TestPageCountExactDivision(t *testing.T) {
	result := pagination.NewPagedResult([]int{}, 1, 10, 20)
	assert.Equal(t, 2, result.PageCount)
}

func TestEmptySetHasZeroPages(t *testing.T) {
	result := pagination.NewPagedResult([]int{}, 1, 10, 0)
	assert.Equal(t, 0, result.PageCount)
	assert.NotNil(t, result.Data)
	assert.Empty(t, result.Data)
}

func TestNilDataBecomesEmptySlice(t *testing.T) {
	result := pagination.NewPagedResult[int](nil, 1, 10, 0)
	assert.NotNil(t, result.Data)
}

func TestValidate(t *testing.T) {
	assert.NoError(t, pagination.Validate(1, 10))

	err := pagination.Validate(0, 10)
	assert.True(t, errors.IsArgument(err))

	err = pagination.Validate(1, 0)
	assert.True(t, errors.IsArgument(err))

	err = pagination.Validate(-1, -5)
	assert.True(t, errors.IsArgument(err))
}

func TestOffset(t *testing.T) {
	assert.Equal(t, 0, pagination.Offset(1, 10))
	assert.Equal(t, 10, pagination.Offset(2, 10))
	assert.Equal(t, 45, pagination.Offset(10, 5))
}
