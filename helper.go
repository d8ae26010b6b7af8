package main

import (
	"context"
	"regexp"
	"strings"

	"github.com/pkg/errors"
	"github.com/viant/afs"
	"go.uber.org/zap"
)

var reLeadingComment = regexp.MustCompile(`^#.*`)

// resolveHelper decides whether the copied spec helper is worth keeping.
// A helper consisting of a comment and a require of the old helper only
// forwards to it: it is deleted, and every converted file then requires the
// new helper directly. Any other helper, or none at all, is kept and test
// files merely have their require renamed.
func resolveHelper(ctx context.Context, fs afs.Service, helperURL string, oldName string, logger *zap.Logger) (keep bool, err error) {
	exists, err := fs.Exists(ctx, helperURL)
	if err != nil {
		return false, errors.Wrapf(err, "failed to check %v", helperURL)
	}
	if !exists {
		return true, nil
	}
	data, err := fs.DownloadWithURL(ctx, helperURL)
	if err != nil {
		return false, errors.Wrapf(err, "failed to read %v", helperURL)
	}
	if !isForwardingStub(string(data), oldName) {
		return true, nil
	}
	logger.Info("removing forwarding helper", zap.String("file", helperURL))
	if err := fs.Delete(ctx, helperURL); err != nil {
		return false, errors.Wrapf(err, "failed to delete %v", helperURL)
	}
	return false, nil
}

func isForwardingStub(content, oldName string) bool {
	lines := strings.SplitAfter(content, "\n")
	if n := len(lines); n > 0 && lines[n-1] == "" {
		lines = lines[:n-1]
	}
	return len(lines) == 2 &&
		reLeadingComment.MatchString(lines[0]) &&
		strings.Contains(lines[1], oldName)
}
