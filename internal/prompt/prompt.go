// Package prompt provides the yes/no confirmation used before deleting a
// directory that is in the way of a clone.
package prompt

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
)

// ErrNoAnswer is returned when input ends before a y/n answer was given
var ErrNoAnswer = errors.New("no answer given")

// Confirmer asks a yes/no question
type Confirmer interface {
	Confirm(question string) (bool, error)
}

// Terminal asks on Out and reads answers line by line from In. Anything not
// starting with y or n (case-insensitive) repeats the question.
type Terminal struct {
	In  io.Reader
	Out io.Writer

	reader *bufio.Reader
}

// NewTerminal creates a Terminal confirmer
func NewTerminal(in io.Reader, out io.Writer) *Terminal {
	return &Terminal{In: in, Out: out}
}

// Confirm implements Confirmer
func (t *Terminal) Confirm(question string) (bool, error) {
	if t.reader == nil {
		t.reader = bufio.NewReader(t.In)
	}
	for {
		fmt.Fprintf(t.Out, "%s (y/n): ", question)
		line, err := t.reader.ReadString('\n')
		reply := strings.ToLower(strings.TrimSpace(line))
		switch {
		case strings.HasPrefix(reply, "y"):
			return true, nil
		case strings.HasPrefix(reply, "n"):
			return false, nil
		}
		if err != nil {
			fmt.Fprintln(t.Out)
			if errors.Is(err, io.EOF) {
				return false, ErrNoAnswer
			}
			return false, fmt.Errorf("failed to read answer: %w", err)
		}
	}
}

// AssumeYes confirms every question without asking
type AssumeYes struct{}

// Confirm implements Confirmer
func (AssumeYes) Confirm(string) (bool, error) { return true, nil }

// Fixed replays scripted answers; once exhausted it answers no.
type Fixed struct {
	Answers   []bool
	Questions []string
}

// Confirm implements Confirmer
func (f *Fixed) Confirm(question string) (bool, error) {
	f.Questions = append(f.Questions, question)
	if len(f.Answers) == 0 {
		return false, nil
	}
	answer := f.Answers[0]
	f.Answers = f.Answers[1:]
	return answer, nil
}
