// Package prompt reads validated answers from an interactive console. Invalid
// input is reported and asked again until the user gets it right.
package prompt

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"
)

var (
	// ErrEmpty makes Ask re-prompt without printing anything.
	ErrEmpty = errors.New("empty input")
	// ErrInputClosed is returned once the input stream is exhausted.
	ErrInputClosed = errors.New("input closed")
)

// InvalidInput carries the message shown before re-prompting.
type InvalidInput struct {
	Message string
}

func (e *InvalidInput) Error() string {
	return e.Message
}

func Invalid(format string, args ...any) error {
	return &InvalidInput{Message: fmt.Sprintf(format, args...)}
}

type Prompter struct {
	in  *bufio.Reader
	out io.Writer
	now func() time.Time
}

func New(in io.Reader, out io.Writer, now func() time.Time) *Prompter {
	if now == nil {
		now = time.Now
	}
	return &Prompter{in: bufio.NewReader(in), out: out, now: now}
}

func (p *Prompter) Out() io.Writer {
	return p.out
}

// Line prints text and returns the next input line without its line ending.
func (p *Prompter) Line(text string) (string, error) {
	fmt.Fprint(p.out, text)
	line, err := p.in.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) {
			if line != "" {
				return strings.TrimRight(line, "\r\n"), nil
			}
			fmt.Fprintln(p.out)
			return "", ErrInputClosed
		}
		return "", fmt.Errorf("read input: %w", err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// Ask repeats the prompt until parse accepts the answer. Only errors other
// than ErrEmpty and *InvalidInput reach the caller.
func Ask[T any](p *Prompter, text string, parse func(string) (T, error)) (T, error) {
	for {
		line, err := p.Line(text)
		if err != nil {
			var zero T
			return zero, err
		}
		v, err := parse(line)
		if err == nil {
			return v, nil
		}
		if errors.Is(err, ErrEmpty) {
			continue
		}
		var invalid *InvalidInput
		if errors.As(err, &invalid) {
			fmt.Fprintln(p.out, invalid.Message)
			continue
		}
		var zero T
		return zero, err
	}
}
