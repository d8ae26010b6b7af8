package main

import (
	"bytes"
	"context"
	"io"
	"os/exec"
	"strings"

	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// command is an external program invocation. The subject (a file or a
// directory) is appended after Args.
type command struct {
	Command string   `yaml:"command"`
	Args    []string `yaml:"args"`
	Dir     string   `yaml:"dir,omitempty"`
}

func (c command) build(ctx context.Context, subject string) *exec.Cmd {
	args := append(append([]string{}, c.Args...), subject)
	cmd := exec.CommandContext(ctx, c.Command, args...)
	cmd.Dir = c.Dir
	return cmd
}

// commandRunner runs the ruby syntax check and the rspec suite.
type commandRunner struct {
	validator command
	suite     command
	stdout    io.Writer
	stderr    io.Writer
	logger    *zap.Logger
}

// checkSyntax runs the validator on filename. Its stdout is discarded; stderr
// is returned with the error.
func (r *commandRunner) checkSyntax(ctx context.Context, filename string) error {
	cmd := r.validator.build(ctx, filename)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return errors.Wrapf(err, "%v: %s", cmd, strings.TrimSpace(stderr.String()))
	}
	return nil
}

// runSuite runs the spec suite against target, streaming its output.
func (r *commandRunner) runSuite(ctx context.Context, target string) error {
	cmd := r.suite.build(ctx, target)
	cmd.Stdout = r.stdout
	cmd.Stderr = r.stderr
	r.logger.Info("cmd", zap.String("cmd", cmd.String()), zap.String("dir", cmd.Dir))
	if err := cmd.Run(); err != nil {
		return errors.Wrapf(err, "%v", cmd)
	}
	return nil
}
