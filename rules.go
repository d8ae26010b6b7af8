package main

import (
	"regexp"
	"strings"
)

// A rule rewrites one source line. match returns the submatches of the line
// or nil; apply returns the replacement lines, possibly none.
type rule struct {
	name  string
	match func(line string) []string
	apply func(st *fileState, ln sourceLine, m []string) ([]string, error)
}

func matchRegexp(re *regexp.Regexp) func(string) []string {
	return re.FindStringSubmatch
}

// helperNames describes the shared setup file on both sides of the migration.
type helperNames struct {
	Old      string `yaml:"old"`      // test_helper
	New      string `yaml:"new"`      // spec_helper
	BasePath string `yaml:"base_path"` // required by the new helper itself
}

var (
	reComment         = regexp.MustCompile(`^(\s*#.*)$`)
	reTestCaseClass   = regexp.MustCompile(`class\s+(.+?)Test < .+TestCase`)
	reAnyTestClass    = regexp.MustCompile(`class\s*(.*?)Test`)
	reControllerTitle = regexp.MustCompile(`^(.*Controller)`)
	reSetup           = regexp.MustCompile(`def setup|setup do`)
	reTestMethod      = regexp.MustCompile(`def test_(.+)$`)
	reShouldaBare     = regexp.MustCompile(`^\s*should\s+([^"'].*)`)
	reQuotedTest      = regexp.MustCompile(`(?:test|should) ['"](.+)['"](.*)`)
	reRespSuccess     = regexp.MustCompile(`assert_response :success`)
	reRespRedirect    = regexp.MustCompile(`assert_response :redirect`)
	reRedirectedTo    = regexp.MustCompile(`assert_redirected_to (.+)$`)
	reInclude         = regexp.MustCompile(`assert_include (.+?), (.+?)(,.*)?$`)
	reEqual           = regexp.MustCompile(`assert_equal\s+(.*)$`)
	reAssigns         = regexp.MustCompile(`assert assigns\(:([^\) ]*)\)$`)
)

// Lines with no counterpart in rspec. They are dropped when no rule claims them.
var obsoleteLines = []*regexp.Regexp{
	regexp.MustCompile(`(?i)^class.*?Controller.*?rescue_action.*?end$`),
	regexp.MustCompile(`(?i)require '.*?_controller'`),
	regexp.MustCompile(`^#`),
}

const (
	assertionsRequire = `require "active_support/testing/assertions"`
	assertionsInclude = "include ActiveSupport::Testing::Assertions"
)

// newRules builds the rewrite table. Order matters: the first rule whose
// pattern matches a line owns it.
func newRules(h helperNames) []rule {
	reRequireHelper := regexp.MustCompile(`require.*?` + regexp.QuoteMeta(h.Old))

	return []rule{
		{
			name:  "comment",
			match: matchRegexp(reComment),
			apply: func(_ *fileState, _ sourceLine, m []string) ([]string, error) {
				return []string{m[1]}, nil
			},
		},
		{
			name:  "require-helper",
			match: matchRegexp(reRequireHelper),
			apply: func(st *fileState, ln sourceLine, _ []string) ([]string, error) {
				if st.isHelper {
					return []string{"require File.expand_path(" + quote(h.BasePath) + ", __FILE__)"}, nil
				}
				var out []string
				if st.keepHelper {
					out = append(out, strings.ReplaceAll(ln.text, h.Old, h.New))
				} else {
					out = append(out, "require "+quote(h.New))
				}
				if st.usesDifference {
					out = append(out, assertionsRequire)
					st.pendingInclude = assertionsInclude
				}
				return out, nil
			},
		},
		{
			name:  "describe",
			match: matchTestClass,
			apply: func(st *fileState, ln sourceLine, m []string) ([]string, error) {
				title := quote(m[1])
				if c := reControllerTitle.FindStringSubmatch(m[1]); c != nil {
					title = c[1]
				}
				out := []string{ln.indent + "describe " + title + " do"}
				if st.renderViews {
					out = append(out, ln.indent+"  render_views")
				}
				if st.pendingInclude != "" {
					out = append(out, ln.indent+"  "+st.pendingInclude)
					st.pendingInclude = ""
				}
				return out, nil
			},
		},
		{
			name:  "before",
			match: matchRegexp(reSetup),
			apply: emit("before do"),
		},
		{
			name:  "test-method",
			match: matchRegexp(reTestMethod),
			apply: func(_ *fileState, ln sourceLine, m []string) ([]string, error) {
				desc := strings.ReplaceAll(m[1], "_", " ")
				return []string{ln.indent + "it " + quote(shouldPrefix(desc)) + " do"}, nil
			},
		},
		{
			name:  "shoulda-pending",
			match: matchRegexp(reShouldaBare),
			apply: func(_ *fileState, ln sourceLine, m []string) ([]string, error) {
				text := strings.ReplaceAll(m[1], `"`, `\"`)
				return []string{ln.indent + `xit "should be converted manually: ` + text + `"`}, nil
			},
		},
		{
			name:  "quoted-test",
			match: matchRegexp(reQuotedTest),
			apply: func(_ *fileState, ln sourceLine, m []string) ([]string, error) {
				return []string{ln.indent + "it " + quote(shouldPrefix(m[1])) + m[2]}, nil
			},
		},
		{
			name:  "response-success",
			match: matchRegexp(reRespSuccess),
			apply: emit("response.should be_success"),
		},
		{
			name:  "response-redirect",
			match: matchRegexp(reRespRedirect),
			apply: emit("response.should be_redirect"),
		},
		{
			name:  "redirected-to",
			match: matchRegexp(reRedirectedTo),
			apply: func(_ *fileState, ln sourceLine, m []string) ([]string, error) {
				return []string{ln.indent + "response.should redirect_to(" + m[1] + ")"}, nil
			},
		},
		{
			name:  "include",
			match: matchRegexp(reInclude),
			apply: func(_ *fileState, ln sourceLine, m []string) ([]string, error) {
				return []string{ln.indent + m[2] + ".should include(" + m[1] + ")"}, nil
			},
		},
		{
			name:  "equal",
			match: matchRegexp(reEqual),
			apply: func(_ *fileState, ln sourceLine, m []string) ([]string, error) {
				expected, actual, err := splitAssertEqual(m[1])
				if err != nil {
					return nil, err
				}
				return []string{ln.indent + actual + ".should == " + expected}, nil
			},
		},
		{
			name:  "assigns",
			match: matchRegexp(reAssigns),
			apply: func(_ *fileState, ln sourceLine, m []string) ([]string, error) {
				return []string{ln.indent + "assigns[:" + m[1] + "].should be_true"}, nil
			},
		},
	}
}

// matchTestClass recognizes test case declarations. Controller test cases
// only get through the looser second pattern.
func matchTestClass(line string) []string {
	if !strings.Contains(line, "Controller") {
		if m := reTestCaseClass.FindStringSubmatch(line); m != nil {
			return m
		}
	}
	return reAnyTestClass.FindStringSubmatch(line)
}

func emit(text string) func(*fileState, sourceLine, []string) ([]string, error) {
	return func(_ *fileState, ln sourceLine, _ []string) ([]string, error) {
		return []string{ln.indent + text}, nil
	}
}

// quote wraps s in double quotes as is.
func quote(s string) string {
	return `"` + s + `"`
}

func shouldPrefix(desc string) string {
	if strings.HasPrefix(desc, "should ") {
		return desc
	}
	return "should " + desc
}

func isObsolete(line string) bool {
	for _, re := range obsoleteLines {
		if re.MatchString(line) {
			return true
		}
	}
	return false
}
