package filter_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/geoapi/geoconform/filter"
)

func TestOperatorType(t *testing.T) {
	tests := []struct {
		op       filter.OperatorType
		operands int
	}{
		{filter.OperatorInclude, 0},
		{filter.OperatorLike, 1},
		{filter.OperatorEqual, 2},
		{filter.OperatorBetween, 3},
		{filter.OperatorBBox, 2},
		{filter.OperatorAnd, -1},
		{filter.OperatorResourceID, -1},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.operands, tt.op.Operands(), tt.op.String())
	}
	assert.True(t, filter.OperatorLess.IsComparison())
	assert.True(t, filter.OperatorNot.IsLogical())
	assert.True(t, filter.OperatorWithin.IsSpatial())
	assert.False(t, filter.OperatorWithin.IsComparison())
}

func TestOperatorTypeOf(t *testing.T) {
	op, ok := filter.OperatorTypeOf("PropertyIsLike")
	assert.True(t, ok)
	assert.Equal(t, filter.OperatorLike, op)
	op, ok = filter.OperatorTypeOf("BBOX")
	assert.True(t, ok)
	assert.Equal(t, filter.OperatorBBox, op)
	_, ok = filter.OperatorTypeOf("")
	assert.False(t, ok)
}

func TestConstFilters(t *testing.T) {
	assert.True(t, filter.Include.Test(nil))
	assert.False(t, filter.Exclude.Test(42))
	assert.Equal(t, filter.OperatorExclude, filter.Exclude.OperatorType())
	assert.Len(t, filter.Expressions(filter.Include, filter.Exclude), 2)
}
