package main

import (
	"fmt"
	"regexp"
	"strings"
)

// SplitError is returned when the operands of an assert_equal call cannot be
// separated safely. The run stops on it: a wrong guess would silently change
// what the converted spec asserts.
type SplitError struct {
	Args   string // text following assert_equal
	Reason string
}

func (e *SplitError) Error() string {
	return fmt.Sprintf("not implemented: %s in %q", e.Reason, e.Args)
}

// Operand heuristics for assert_equal, most specific first. This is not a
// parser: the last one cuts at the first comma whatever the nesting.
var operandSplitters = []*regexp.Regexp{
	regexp.MustCompile(`^(\S+\(.*?\)),\s+(.+)$`), // assert_equal Date.new(1, 2, 3), blabla
	regexp.MustCompile(`^(\[.*?\]),\s+(.+)$`),    // assert_equal [a, b, c], blabla
	regexp.MustCompile(`^(".+?"),\s+(.+)$`),      // assert_equal "admin, jsmith", blabla
	regexp.MustCompile(`^(.+?),\s+(.+)$`),
}

var innerSpace = regexp.MustCompile(`\S\s+\S`)

// splitAssertEqual cuts the arguments of assert_equal into the expected and
// actual expressions. actual comes back parenthesized when it holds
// whitespace between tokens so that `.should` binds to the whole expression.
func splitAssertEqual(args string) (expected, actual string, err error) {
	for _, re := range operandSplitters {
		if m := re.FindStringSubmatch(args); m != nil {
			expected, actual = m[1], m[2]
			break
		}
	}
	if expected == "" || actual == "" {
		return "", "", &SplitError{Args: args, Reason: "expected or actual operand missing"}
	}
	if innerSpace.MatchString(actual) {
		actual = "(" + actual + ")"
	}
	// Any occurrence counts, `nilable` included.
	if strings.Contains(actual, "nil") {
		return "", "", &SplitError{Args: args, Reason: "actual operand shouldn't be nil"}
	}
	return expected, actual, nil
}
