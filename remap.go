package main

import (
	"bytes"
	"context"
	"sort"
	"strings"

	"github.com/pkg/errors"
	"github.com/viant/afs"
	"github.com/viant/afs/file"
	"github.com/viant/afs/url"
	"go.uber.org/zap"
)

// rename is a plain substring substitution applied to a path component.
type rename struct {
	From string `yaml:"from"`
	To   string `yaml:"to"`
}

func applyRenames(name string, renames []rename) string {
	for _, r := range renames {
		name = strings.ReplaceAll(name, r.From, r.To)
	}
	return name
}

// remapper mirrors a test tree into the spec layout. File contents are copied
// untouched.
type remapper struct {
	fs          afs.Service
	dirRenames  []rename
	fileRenames []rename
	logger      *zap.Logger
}

// remapTree copies srcURL into destURL and returns the URLs of the copied
// files, sorted.
func (r *remapper) remapTree(ctx context.Context, srcURL, destURL string) ([]string, error) {
	var copied []string
	if err := r.mirror(ctx, srcURL, destURL, &copied); err != nil {
		return nil, err
	}
	sort.Strings(copied)
	return copied, nil
}

func (r *remapper) mirror(ctx context.Context, srcURL, destURL string, copied *[]string) error {
	r.logger.Info("dir", zap.String("from", srcURL), zap.String("to", destURL))
	if err := r.ensureDir(ctx, destURL); err != nil {
		return err
	}
	objects, err := r.fs.List(ctx, srcURL)
	if err != nil {
		return errors.Wrapf(err, "failed to list %v", srcURL)
	}
	for _, object := range objects {
		if url.Equals(object.URL(), srcURL) {
			continue
		}
		if object.IsDir() {
			target := url.Join(destURL, applyRenames(object.Name(), r.dirRenames))
			if err := r.mirror(ctx, object.URL(), target, copied); err != nil {
				return err
			}
			continue
		}
		target := url.Join(destURL, applyRenames(object.Name(), r.fileRenames))
		r.logger.Info("file", zap.String("from", object.URL()), zap.String("to", target))
		data, err := r.fs.DownloadWithURL(ctx, object.URL())
		if err != nil {
			return errors.Wrapf(err, "failed to read %v", object.URL())
		}
		if err := r.fs.Upload(ctx, target, file.DefaultFileOsMode, bytes.NewReader(data)); err != nil {
			return errors.Wrapf(err, "failed to write %v", target)
		}
		*copied = append(*copied, target)
	}
	return nil
}

func (r *remapper) ensureDir(ctx context.Context, URL string) error {
	exists, err := r.fs.Exists(ctx, URL)
	if err != nil {
		return errors.Wrapf(err, "failed to check %v", URL)
	}
	if exists {
		return nil
	}
	if err := r.fs.Create(ctx, URL, file.DefaultDirOsMode, true); err != nil {
		return errors.Wrapf(err, "failed to create %v", URL)
	}
	return nil
}
