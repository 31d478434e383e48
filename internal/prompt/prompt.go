// Package prompt asks the user to confirm destructive actions.
package prompt

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
)

// Question is a yes/no prompt.
type Question struct {
	Title   string
	Text    string
	Confirm string
	Cancel  string
}

//go:generate go run go.uber.org/mock/mockgen -source=prompt.go -destination=../mocks/mock_confirmer.go -package=mocks

// Confirmer resolves a Question to yes or no.
type Confirmer interface {
	Confirm(ctx context.Context, q Question) (bool, error)
}

// Static answers every question the same way.
type Static bool

// Confirm implements Confirmer.
func (s Static) Confirm(context.Context, Question) (bool, error) {
	return bool(s), nil
}

// Terminal asks on out and reads the answer from in.
type Terminal struct {
	in  *bufio.Reader
	out io.Writer
}

// NewTerminal creates a terminal confirmer.
func NewTerminal(in io.Reader, out io.Writer) *Terminal {
	return &Terminal{in: bufio.NewReader(in), out: out}
}

// Confirm implements Confirmer. Anything but y or yes is a no.
func (t *Terminal) Confirm(ctx context.Context, q Question) (bool, error) {
	if _, err := fmt.Fprintf(t.out, "%s\n%s [y/N]: ", q.Title, q.Text); err != nil {
		return false, fmt.Errorf("writing prompt: %w", err)
	}

	type answer struct {
		line string
		err  error
	}
	ch := make(chan answer, 1)
	go func() {
		line, err := t.in.ReadString('\n')
		ch <- answer{line: line, err: err}
	}()

	select {
	case <-ctx.Done():
		return false, ctx.Err()
	case a := <-ch:
		if a.err != nil && a.err != io.EOF {
			return false, fmt.Errorf("reading answer: %w", a.err)
		}
		switch strings.ToLower(strings.TrimSpace(a.line)) {
		case "y", "yes":
			return true, nil
		}
		return false, nil
	}
}
