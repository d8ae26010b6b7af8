package main

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitAssertEqual(t *testing.T) {
	tests := []struct {
		args     string
		expected string
		actual   string
	}{
		{args: "f(x), y", expected: "f(x)", actual: "y"},
		{args: "Date.new(1, 2, 3), @issue.start_date", expected: "Date.new(1, 2, 3)", actual: "@issue.start_date"},
		{args: "[1,2,3], @list", expected: "[1,2,3]", actual: "@list"},
		{args: "[a, b, c], list.map(&:id)", expected: "[a, b, c]", actual: "list.map(&:id)"},
		{args: `"admin, jsmith", logins`, expected: `"admin, jsmith"`, actual: "logins"},
		{args: "3, @user.roles.size", expected: "3", actual: "@user.roles.size"},
		{args: "A, bar baz", expected: "A", actual: "(bar baz)"},
		{args: "count + 1, User.count", expected: "count + 1", actual: "User.count"},
		// The last heuristic ignores nesting.
		{args: "{:a => 1, :b => 2}, hash", expected: "{:a => 1", actual: "(:b => 2}, hash)"},
	}
	for _, tt := range tests {
		t.Run(tt.args, func(t *testing.T) {
			expected, actual, err := splitAssertEqual(tt.args)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, expected)
			assert.Equal(t, tt.actual, actual)
		})
	}
}

func TestSplitAssertEqualErrors(t *testing.T) {
	tests := []struct {
		args   string
		reason string
	}{
		{args: "foo, nil", reason: "actual operand shouldn't be nil"},
		{args: "1, nilable_count", reason: "actual operand shouldn't be nil"},
		{args: "foo, bar.nil?", reason: "actual operand shouldn't be nil"},
		{args: "foo,bar", reason: "expected or actual operand missing"},
		{args: "single", reason: "expected or actual operand missing"},
		{args: "", reason: "expected or actual operand missing"},
	}
	for _, tt := range tests {
		t.Run(tt.args, func(t *testing.T) {
			_, _, err := splitAssertEqual(tt.args)
			require.Error(t, err)
			var splitErr *SplitError
			require.True(t, errors.As(err, &splitErr))
			assert.Equal(t, tt.reason, splitErr.Reason)
			assert.Equal(t, tt.args, splitErr.Args)
		})
	}
}
