package console

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// ErrNotANumber is returned when integer input cannot be parsed. It wraps the
// underlying *strconv.NumError.
var ErrNotANumber = errors.New("input is not a number")

// Prompter reads user input line by line and writes prompts to out
type Prompter struct {
	in  *bufio.Reader
	out io.Writer
}

// NewPrompter creates a prompter over in and out
func NewPrompter(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{
		in:  bufio.NewReader(in),
		out: out,
	}
}

// ReadLine prints prompt and returns the next line without its line ending.
// io.EOF is returned only when no input is left at all.
func (p *Prompter) ReadLine(prompt string) (string, error) {
	fmt.Fprint(p.out, prompt)

	line, err := p.in.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && line != "" {
			return strings.TrimRight(line, "\r"), nil
		}
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// ReadInt prints the ">> " prompt on a fresh line and parses an integer.
// Surrounding whitespace is ignored.
func (p *Prompter) ReadInt() (int, error) {
	line, err := p.ReadLine("\n>> ")
	if err != nil {
		return 0, err
	}

	n, err := strconv.Atoi(strings.TrimSpace(line))
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrNotANumber, err)
	}
	return n, nil
}

// ReadIntInRange reads integers until one falls in [lo, hi), calling onRetry
// after every out-of-range value
func (p *Prompter) ReadIntInRange(lo, hi int, onRetry func()) (int, error) {
	for {
		n, err := p.ReadInt()
		if err != nil {
			return 0, err
		}
		if n >= lo && n < hi {
			return n, nil
		}
		if onRetry != nil {
			onRetry()
		}
	}
}

// WaitForEnter prints prompt and blocks until a line is entered. Running out
// of input counts as Enter.
func (p *Prompter) WaitForEnter(prompt string) error {
	_, err := p.ReadLine(prompt)
	if errors.Is(err, io.EOF) {
		return nil
	}
	return err
}
