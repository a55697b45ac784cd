package valueop_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vennlane/graphrepo/pkg/valueop"
)

func TestScalarEquality(t *testing.T) {
	ok, err := valueop.Match("steve", "steve")
	require.NoError(t, err)
	require.True(t, ok)

	ok, _ = valueop.Match("steve", "bob")
	require.False(t, ok)
}

func TestListMembership(t *testing.T) {
	ok, err := valueop.Match(5, []any{1, 2, 5})
	require.NoError(t, err)
	require.True(t, ok)

	ok, _ = valueop.Match(6, []any{1, 2, 5})
	require.False(t, ok)
}

func TestComparisonOperators(t *testing.T) {
	cases := []struct {
		op    string
		arg   any
		value any
		want  bool
	}{
		{"lt", 5.0, 3.0, true},
		{"lt", 5.0, 7.0, false},
		{"lte", 5.0, 5.0, true},
		{"gt", 5.0, 7.0, true},
		{"gte", 5.0, 5.0, true},
	}
	for _, c := range cases {
		ok, err := valueop.Match(c.value, map[string]any{c.op: c.arg})
		require.NoError(t, err)
		require.Equalf(t, c.want, ok, "%s %v vs %v", c.op, c.value, c.arg)
	}
}

func TestComparisonOnNonNumberReturnsFalse(t *testing.T) {
	ok, err := valueop.Match("not-a-number", map[string]any{"gt": 5.0})
	require.NoError(t, err)
	require.False(t, ok)
}

func TestRegexOperator(t *testing.T) {
	ok, err := valueop.Match("hello world", map[string]any{"re": "^hello"})
	require.NoError(t, err)
	require.True(t, ok)

	ok, _ = valueop.Match("goodbye", map[string]any{"re": "^hello"})
	require.False(t, ok)
}

func TestEmptyOperatorConjoinsArgument(t *testing.T) {
	ok, err := valueop.Match([]any{}, map[string]any{"empty": true})
	require.NoError(t, err)
	require.True(t, ok)

	// Documented open question: empty:false against an empty
	// collection is false, not true.
	ok, err = valueop.Match([]any{}, map[string]any{"empty": false})
	require.NoError(t, err)
	require.False(t, ok)

	ok, _ = valueop.Match([]any{1}, map[string]any{"empty": true})
	require.False(t, ok)
}

func TestLengthOperatorRecurses(t *testing.T) {
	ok, err := valueop.Match([]any{1, 2, 3}, map[string]any{"length": 3})
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = valueop.Match([]any{1, 2, 3}, map[string]any{"length": map[string]any{"gt": 1}})
	require.NoError(t, err)
	require.True(t, ok)
}

func TestIncludesOperator(t *testing.T) {
	ok, err := valueop.Match([]any{"a", "b", "c"}, map[string]any{"includes": "b"})
	require.NoError(t, err)
	require.True(t, ok)

	ok, _ = valueop.Match([]any{"a", "b", "c"}, map[string]any{"includes": "z"})
	require.False(t, ok)
}

func TestUnknownOperatorIsNotImplemented(t *testing.T) {
	_, err := valueop.Match(5, map[string]any{"bogus": 1})
	require.ErrorIs(t, err, valueop.ErrNotImplemented)
}

func TestOperatorObjectMustHaveExactlyOneKey(t *testing.T) {
	_, err := valueop.Match(5, map[string]any{})
	require.ErrorIs(t, err, valueop.ErrInvalidOperator)

	_, err = valueop.Match(5, map[string]any{"eq": 5, "ne": 3})
	require.ErrorIs(t, err, valueop.ErrInvalidOperator)
}
