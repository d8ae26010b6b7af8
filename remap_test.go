package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/afs"
	"github.com/viant/afs/file"
	"github.com/viant/afs/url"
	"go.uber.org/zap/zaptest"
)

func TestApplyRenames(t *testing.T) {
	tests := []struct {
		name    string
		renames []rename
		want    string
	}{
		{name: "unit", renames: DefaultConfig.DirRenames, want: "models"},
		{name: "functional", renames: DefaultConfig.DirRenames, want: "controllers"},
		{name: "integration", renames: DefaultConfig.DirRenames, want: "integration"},
		{name: "test", renames: DefaultConfig.DirRenames, want: "spec"},
		{name: "issue_test.rb", renames: DefaultConfig.FileRenames, want: "issue_spec.rb"},
		{name: "test_helper.rb", renames: DefaultConfig.FileRenames, want: "spec_helper.rb"},
		{name: "fixtures.yml", renames: DefaultConfig.FileRenames, want: "fixtures.yml"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, applyRenames(tt.name, tt.renames))
		})
	}
}

func writeTree(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for name, content := range files {
		p := filepath.Join(root, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0755))
		require.NoError(t, os.WriteFile(p, []byte(content), 0644))
	}
}

func TestRemapTree(t *testing.T) {
	root := t.TempDir()
	writeTree(t, filepath.Join(root, "test"), map[string]string{
		"test_helper.rb":              "require 'rubygems'\n",
		"unit/issue_test.rb":          "class IssueTest\nend\n",
		"functional/issues_test.rb":   "class IssuesControllerTest\nend\n",
		"fixtures/issues.yml":         "one:\n  id: 1\n",
		"unit/helpers/format_test.rb": "class FormatTest\nend\n",
	})

	r := &remapper{
		fs:          afs.New(),
		dirRenames:  DefaultConfig.DirRenames,
		fileRenames: DefaultConfig.FileRenames,
		logger:      zaptest.NewLogger(t),
	}
	srcURL := url.Normalize(filepath.Join(root, "test"), file.Scheme)
	destURL := url.Normalize(filepath.Join(root, "spec"), file.Scheme)
	copied, err := r.remapTree(context.Background(), srcURL, destURL)
	require.NoError(t, err)
	assert.Len(t, copied, 5)

	for name, content := range map[string]string{
		"spec_helper.rb":                "require 'rubygems'\n",
		"models/issue_spec.rb":          "class IssueTest\nend\n",
		"controllers/issues_spec.rb":    "class IssuesControllerTest\nend\n",
		"fixtures/issues.yml":           "one:\n  id: 1\n",
		"models/helpers/format_spec.rb": "class FormatTest\nend\n",
	} {
		got, err := os.ReadFile(filepath.Join(root, "spec", filepath.FromSlash(name)))
		require.NoError(t, err, name)
		assert.Equal(t, content, string(got), name)
	}

	// The source tree is left alone.
	_, err = os.Stat(filepath.Join(root, "test", "unit", "issue_test.rb"))
	assert.NoError(t, err)
}

func TestRemapTreeMissingSource(t *testing.T) {
	root := t.TempDir()
	r := &remapper{fs: afs.New(), logger: zaptest.NewLogger(t)}
	_, err := r.remapTree(context.Background(),
		url.Normalize(filepath.Join(root, "missing"), file.Scheme),
		url.Normalize(filepath.Join(root, "spec"), file.Scheme))
	assert.Error(t, err)
}
