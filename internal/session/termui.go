package session

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/pixil98/go-gamebook/internal/prompt"
)

// TermUI implements the UI port over a line-based connection (telnet, ssh,
// or local stdio). Blocking reads are unblocked by the listener closing
// the connection when the session context is cancelled.
type TermUI struct {
	rw io.ReadWriter
}

func NewTermUI(rw io.ReadWriter) *TermUI {
	return &TermUI{rw: rw}
}

func (u *TermUI) ShowText(text string) error {
	_, err := fmt.Fprintf(u.rw, "\n%s\n", text)
	return err
}

func (u *TermUI) ShowMessage(text string, sev Severity, _ time.Duration) error {
	marker := "*"
	if sev == SeverityWarn {
		marker = "!"
	}
	_, err := fmt.Fprintf(u.rw, "%s %s\n", marker, text)
	return err
}

func (u *TermUI) PresentChoices(ctx context.Context, promptText string, options []string, allowBack bool) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	fmt.Fprintf(u.rw, "\n%s\n", promptText)
	for i, opt := range options {
		fmt.Fprintf(u.rw, "%2d. %s\n", i+1, opt)
	}
	if allowBack {
		fmt.Fprintf(u.rw, " 0. Back\n")
	}

	sel, err := prompt.Ask(u.rw, "> ", prompt.WithValidator(
		func(str string) (bool, string) {
			i, err := strconv.Atoi(strings.TrimSpace(str))
			if err != nil {
				return false, "Enter a number.\n"
			}
			if i == 0 && allowBack {
				return true, ""
			}
			if i < 1 || i > len(options) {
				return false, "Invalid selection.\n"
			}
			return true, ""
		},
	))
	if err != nil {
		return 0, err
	}

	i, err := strconv.Atoi(strings.TrimSpace(sel))
	if err != nil {
		return 0, err
	}
	if i == 0 {
		return 0, ErrBack
	}
	return i - 1, nil
}

func (u *TermUI) PresentList(ctx context.Context, options []string, opts ListOptions) ([]int, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	fmt.Fprintf(u.rw, "\n%s\n", opts.Prompt)
	for i, opt := range options {
		fmt.Fprintf(u.rw, "%2d. %s\n", i+1, opt)
	}
	fmt.Fprint(u.rw, u.listInstructions(opts))

	sel, err := prompt.Ask(u.rw, "> ", prompt.WithValidator(
		func(str string) (bool, string) {
			_, _, perr := parseSelection(str, len(options), opts)
			if perr != nil {
				return false, perr.Error() + "\n"
			}
			return true, ""
		},
	))
	if err != nil {
		return nil, err
	}

	picked, back, err := parseSelection(sel, len(options), opts)
	if err != nil {
		return nil, err
	}
	if back {
		return nil, ErrBack
	}
	return picked, nil
}

func (u *TermUI) Confirm(ctx context.Context, promptText string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	return prompt.AskYN(u.rw, promptText+" (y/n) ")
}

func (u *TermUI) listInstructions(opts ListOptions) string {
	var sb strings.Builder
	sb.WriteString("Enter numbers separated by spaces")
	if opts.Min == 0 {
		sb.WriteString(", or 'none'")
	}
	if opts.AllowBack {
		sb.WriteString(", or 'back'")
	}
	sb.WriteString(".\n")
	return sb.String()
}

// parseSelection turns "1 3 4" into zero-based indexes, enforcing the
// selection bounds.
func parseSelection(str string, n int, opts ListOptions) (picked []int, back bool, err error) {
	str = strings.TrimSpace(strings.ToLower(str))

	if str == "back" {
		if !opts.AllowBack {
			return nil, false, fmt.Errorf("you can't back out of this")
		}
		return nil, true, nil
	}

	if str != "" && str != "none" {
		seen := map[int]bool{}
		for _, field := range strings.FieldsFunc(str, func(r rune) bool { return r == ' ' || r == ',' }) {
			i, err := strconv.Atoi(field)
			if err != nil {
				return nil, false, fmt.Errorf("%q is not a number", field)
			}
			if i < 1 || i > n {
				return nil, false, fmt.Errorf("%d is not on the list", i)
			}
			if seen[i] {
				continue
			}
			seen[i] = true
			picked = append(picked, i-1)
		}
	}

	if len(picked) < opts.Min {
		return nil, false, fmt.Errorf("pick at least %d", opts.Min)
	}
	if opts.Max > 0 && len(picked) > opts.Max {
		return nil, false, fmt.Errorf("pick at most %d", opts.Max)
	}
	return picked, false, nil
}
