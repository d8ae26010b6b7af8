package main

import (
	"bytes"
	"context"
	"path"
	"regexp"
	"strings"
	"unicode"

	"github.com/pkg/errors"
	"github.com/viant/afs"
	"github.com/viant/afs/file"
	"github.com/viant/afs/url"
	"go.uber.org/zap"
)

// sourceLine is one input line with trailing whitespace removed.
type sourceLine struct {
	text   string
	indent string // leading whitespace, reused for synthesized lines
}

var leadingSpace = regexp.MustCompile(`^\s*`)

func newSourceLine(raw string) sourceLine {
	text := strings.TrimRightFunc(raw, unicode.IsSpace)
	return sourceLine{text: text, indent: leadingSpace.FindString(text)}
}

var (
	reViewAssertion = regexp.MustCompile(`assert_tag|response.body|assert_select`)
	reIntegration   = regexp.MustCompile(`IntegrationTest`)
	reDifference    = regexp.MustCompile(`assert_(no_)?difference`)
)

// fileState is the state carried from line to line while one file is
// converted.
type fileState struct {
	isHelper       bool // the file is the shared spec helper itself
	keepHelper     bool // run-wide, see resolveHelper
	renderViews    bool
	usesDifference bool
	pendingInclude string // emitted under the next describe, then cleared
}

// newFileState scans the whole file once before any line is rewritten.
func newFileState(lines []sourceLine, isHelper, keepHelper bool) *fileState {
	st := &fileState{isHelper: isHelper, keepHelper: keepHelper}
	integration := false
	for _, ln := range lines {
		if reViewAssertion.MatchString(ln.text) {
			st.renderViews = true
		}
		if reIntegration.MatchString(ln.text) {
			integration = true
		}
		if reDifference.MatchString(ln.text) {
			st.usesDifference = true
		}
	}
	if integration {
		st.renderViews = false
	}
	return st
}

// syntaxChecker smoke tests a converted file.
type syntaxChecker interface {
	checkSyntax(ctx context.Context, filename string) error
}

type converter struct {
	fs      afs.Service
	rules   []rule
	helper  helperNames
	checker syntaxChecker // optional
	logger  *zap.Logger
}

func newConverter(fs afs.Service, helper helperNames, checker syntaxChecker, logger *zap.Logger) *converter {
	return &converter{
		fs:      fs,
		rules:   newRules(helper),
		helper:  helper,
		checker: checker,
		logger:  logger,
	}
}

// transduce rewrites the content of one test file. name is used to tell the
// shared helper apart from ordinary tests and to locate errors.
func (c *converter) transduce(name string, src []byte, keepHelper bool) ([]byte, error) {
	lines := splitLines(string(src))
	st := newFileState(lines, c.isHelper(name), keepHelper)

	var out bytes.Buffer
	for i, ln := range lines {
		emitted, err := c.convertLine(st, ln)
		if err != nil {
			return nil, errors.Wrapf(err, "%s:%d", name, i+1)
		}
		for _, e := range emitted {
			out.WriteString(e)
			out.WriteByte('\n')
		}
	}
	return out.Bytes(), nil
}

func (c *converter) convertLine(st *fileState, ln sourceLine) ([]string, error) {
	for _, r := range c.rules {
		m := r.match(ln.text)
		if m == nil {
			continue
		}
		return r.apply(st, ln, m)
	}
	if isObsolete(ln.text) {
		c.logger.Debug("dropping obsolete line", zap.String("line", ln.text))
		return nil, nil
	}
	return []string{ln.text}, nil
}

func (c *converter) isHelper(name string) bool {
	return strings.Contains(path.Base(name), c.helper.New)
}

// convertFile rewrites URL in place and runs the syntax checker on the
// result. A failing check is only reported.
func (c *converter) convertFile(ctx context.Context, URL string, keepHelper bool) error {
	c.logger.Info("convert", zap.String("file", URL))
	src, err := c.fs.DownloadWithURL(ctx, URL)
	if err != nil {
		return errors.Wrapf(err, "failed to read %v", URL)
	}
	out, err := c.transduce(URL, src, keepHelper)
	if err != nil {
		return err
	}
	if err = c.fs.Upload(ctx, URL, file.DefaultFileOsMode, bytes.NewReader(out)); err != nil {
		return errors.Wrapf(err, "failed to write %v", URL)
	}
	if c.checker == nil {
		return nil
	}
	if err := c.checker.checkSyntax(ctx, url.Path(URL)); err != nil {
		c.logger.Warn("syntax check failed", zap.String("file", URL), zap.Error(err))
	}
	return nil
}

func splitLines(s string) []sourceLine {
	if s == "" {
		return nil
	}
	raw := strings.Split(strings.TrimSuffix(s, "\n"), "\n")
	lines := make([]sourceLine, len(raw))
	for i, r := range raw {
		lines[i] = newSourceLine(r)
	}
	return lines
}
