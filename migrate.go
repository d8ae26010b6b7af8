package main

import (
	"context"
	"path/filepath"
	"sort"

	"github.com/pkg/errors"
	"github.com/viant/afs"
	"github.com/viant/afs/file"
	"github.com/viant/afs/url"
	"go.uber.org/zap"
)

type suiteRunner interface {
	runSuite(ctx context.Context, target string) error
}

// migrator runs a whole migration from the plugin directory workdir.
type migrator struct {
	cfg       *Config
	fs        afs.Service
	gate      *gate
	suite     suiteRunner
	converter *converter
	remapper  *remapper
	workdir   string
	logger    *zap.Logger
}

func newMigrator(cfg *Config, workdir string, g *gate, checker syntaxChecker, suite suiteRunner, logger *zap.Logger) *migrator {
	fs := afs.New()
	return &migrator{
		cfg:       cfg,
		fs:        fs,
		gate:      g,
		suite:     suite,
		converter: newConverter(fs, cfg.Helper, checker, logger),
		remapper: &remapper{
			fs:          fs,
			dirRenames:  cfg.DirRenames,
			fileRenames: cfg.FileRenames,
			logger:      logger,
		},
		workdir: workdir,
		logger:  logger,
	}
}

// run stops at the first failing file. Files already rewritten stay rewritten.
func (m *migrator) run(ctx context.Context) error {
	m.logger.Info("migrating tests", zap.String("dir", m.workdir))
	if err := m.confirm(m.cfg.ForceEnv); err != nil {
		return err
	}

	srcURL, destURL := m.location(m.cfg.Source), m.location(m.cfg.Dest)
	m.logger.Info("moving tests", zap.String("from", m.cfg.Source), zap.String("to", m.cfg.Dest))
	copied, err := m.remapper.remapTree(ctx, srcURL, destURL)
	if err != nil {
		return err
	}
	m.logger.Debug("copied", zap.Int("files", len(copied)))

	m.logger.Info("adjusting helper", zap.String("file", m.cfg.helperFile()))
	keepHelper, err := resolveHelper(ctx, m.fs, url.Join(destURL, m.cfg.helperFile()), m.cfg.Helper.Old, m.logger)
	if err != nil {
		return err
	}

	m.logger.Info("converting syntax", zap.Bool("keep_helper", keepHelper))
	targets, err := m.convertible(ctx, destURL)
	if err != nil {
		return err
	}
	for _, URL := range targets {
		if err := m.converter.convertFile(ctx, URL, keepHelper); err != nil {
			return err
		}
	}

	m.logger.Info("the spec suite may run now")
	if err := m.confirm(m.cfg.RunEnv); err != nil {
		return err
	}
	return m.suite.runSuite(ctx, m.workdir)
}

func (m *migrator) confirm(envName string) error {
	ok, err := m.gate.confirm(envName)
	if err != nil {
		return err
	}
	if !ok {
		return errDeclined
	}
	return nil
}

// convertible lists every file of the spec tree that gets rewritten,
// including specs that were there before the migration.
func (m *migrator) convertible(ctx context.Context, destURL string) ([]string, error) {
	var URLs []string
	if err := m.collect(ctx, destURL, &URLs); err != nil {
		return nil, err
	}
	sort.Strings(URLs)
	return URLs, nil
}

func (m *migrator) collect(ctx context.Context, URL string, URLs *[]string) error {
	objects, err := m.fs.List(ctx, URL)
	if err != nil {
		return errors.Wrapf(err, "failed to list %v", URL)
	}
	for _, object := range objects {
		if url.Equals(object.URL(), URL) {
			continue
		}
		if object.IsDir() {
			if err := m.collect(ctx, object.URL(), URLs); err != nil {
				return err
			}
			continue
		}
		if m.cfg.isConvertible(object.Name()) {
			*URLs = append(*URLs, object.URL())
		}
	}
	return nil
}

func (m *migrator) location(p string) string {
	if !filepath.IsAbs(p) {
		p = filepath.Join(m.workdir, p)
	}
	return url.Normalize(p, file.Scheme)
}
