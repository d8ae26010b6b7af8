package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"

	"github.com/pkg/errors"
	"golang.org/x/term"
)

var errDeclined = errors.New("not confirmed")

var reAccept = regexp.MustCompile(`(?i)^o$`)

// gate asks before the migration touches anything and again before the spec
// suite runs. Setting the gate's environment variable to "yes" answers it.
type gate struct {
	in     *bufio.Reader
	out    io.Writer
	getenv func(string) string
	preset map[string]bool // answered from the command line
	echo   bool            // input is not a terminal, so repeat answers on out
}

func newGate(in *os.File, out io.Writer) *gate {
	return &gate{
		in:     bufio.NewReader(in),
		out:    out,
		getenv: os.Getenv,
		echo:   !term.IsTerminal(int(in.Fd())),
	}
}

// confirm reports whether the user agreed. Only "o" (oui) is a yes; end of
// input counts as a no.
func (g *gate) confirm(envName string) (bool, error) {
	if g.preset[envName] || g.getenv(envName) == "yes" {
		return true, nil
	}
	fmt.Fprint(g.out, "Confirmed? [O/n] ")
	answer, err := g.in.ReadString('\n')
	if err != nil && err != io.EOF {
		return false, errors.Wrap(err, "failed to read answer")
	}
	answer = strings.TrimRight(answer, "\r\n")
	if g.echo {
		fmt.Fprintln(g.out, answer)
	}
	return reAccept.MatchString(answer), nil
}
