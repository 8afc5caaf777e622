// Package shell implements the numbered-menu console loops of the budget tracker and to-do list.
package shell

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"homekeeper/internal/model"
)

// Prompter reads one answer per line from in and writes prompts to out.
// Share a single Prompter per input stream, it buffers ahead.
type Prompter struct {
	scanner *bufio.Scanner
	out     io.Writer
}

func NewPrompter(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{scanner: bufio.NewScanner(in), out: out}
}

// Ask prints label and returns the trimmed answer. It returns io.EOF once input is exhausted.
func (p *Prompter) Ask(label string) (string, error) {
	fmt.Fprint(p.out, label)
	if !p.scanner.Scan() {
		if err := p.scanner.Err(); err != nil {
			return "", err
		}
		fmt.Fprintln(p.out)
		return "", io.EOF
	}
	return strings.TrimSpace(p.scanner.Text()), nil
}

// Say writes one line.
func (p *Prompter) Say(format string, args ...any) {
	fmt.Fprintf(p.out, format+"\n", args...)
}

// AskUint re-prompts until the answer is a non-negative integer.
func (p *Prompter) AskUint(label string) (uint, error) {
	for {
		text, err := p.Ask(label)
		if err != nil {
			return 0, err
		}
		n, err := strconv.ParseUint(text, 10, 0)
		if err == nil {
			return uint(n), nil
		}
		p.Say("Invalid number. Please try again.")
	}
}

// AskInt re-prompts until the answer is an integer.
func (p *Prompter) AskInt(label string) (int, error) {
	for {
		text, err := p.Ask(label)
		if err != nil {
			return 0, err
		}
		n, err := strconv.Atoi(text)
		if err == nil {
			return n, nil
		}
		p.Say("Invalid number. Please try again.")
	}
}

// AskAmount re-prompts until the answer parses as a decimal amount.
func (p *Prompter) AskAmount(label string) (decimal.Decimal, error) {
	for {
		text, err := p.Ask(label)
		if err != nil {
			return decimal.Zero, err
		}
		amount, err := decimal.NewFromString(text)
		if err == nil {
			return amount, nil
		}
		p.Say("Invalid amount. Please try again.")
	}
}

// AskDate re-prompts until the answer is a YYYY-MM-DD date.
func (p *Prompter) AskDate(label string) (model.Date, error) {
	for {
		text, err := p.Ask(label)
		if err != nil {
			return model.Date{}, err
		}
		date, err := model.ParseDate(text)
		if err == nil {
			return date, nil
		}
		p.Say("%v. Please try again.", err)
	}
}

// AskOptionalDate is AskDate where an empty answer yields nil.
func (p *Prompter) AskOptionalDate(label string) (*model.Date, error) {
	for {
		text, err := p.Ask(label)
		if err != nil {
			return nil, err
		}
		if text == "" {
			return nil, nil
		}
		date, err := model.ParseDate(text)
		if err == nil {
			return &date, nil
		}
		p.Say("%v. Please try again.", err)
	}
}

// AskYesNo returns true for y or yes, in any case.
func (p *Prompter) AskYesNo(label string) (bool, error) {
	text, err := p.Ask(label)
	if err != nil {
		return false, err
	}
	return isYes(text), nil
}

func isYes(text string) bool {
	value := strings.ToLower(strings.TrimSpace(text))
	return value == "y" || value == "yes"
}

func splitTags(text string) []string {
	var tags []string
	for _, tag := range strings.Split(text, model.TagSeparator) {
		if tag = strings.TrimSpace(tag); tag != "" {
			tags = append(tags, tag)
		}
	}
	return tags
}
