package prompt

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

type validator func(string) (bool, string)

type config struct {
	tries     int
	validator validator
}

type Option func(*config)

func WithValidator(v validator) Option {
	return func(cfg *config) {
		cfg.validator = v
	}
}

func WithMaxTries(i int) Option {
	return func(cfg *config) {
		cfg.tries = i
	}
}

// Ask writes the prompt and reads one line of input, re-prompting while
// the validator rejects it.
func Ask(rw io.ReadWriter, prompt string, opts ...Option) (string, error) {
	cfg := &config{}
	for _, opt := range opts {
		opt(cfg)
	}

	br := bufio.NewReader(rw)

	tries := 0
	var input []byte
	for {
		_, err := rw.Write([]byte(prompt))
		if err != nil {
			return "", err
		}

		input, _, err = br.ReadLine()
		if err != nil {
			return "", err
		}

		if cfg.validator != nil {
			ok, msg := cfg.validator(string(input))
			if !ok {
				rw.Write([]byte(msg))

				tries++
				if cfg.tries > 0 && cfg.tries == tries {
					rw.Write([]byte("too many tries\n"))
					return "", fmt.Errorf("too many tries")
				}

				continue
			}
		}

		return string(input), nil
	}
}

// AskYN asks a yes/no question.
func AskYN(rw io.ReadWriter, prompt string) (bool, error) {
	str, err := Ask(rw, prompt, WithValidator(
		func(str string) (bool, string) {
			switch strings.ToLower(str) {
			case "y", "yes", "n", "no":
				return true, ""
			default:
				return false, "enter 'yes' or 'no'\n"
			}
		},
	))
	if err != nil {
		return false, err
	}

	switch strings.ToLower(str) {
	case "y", "yes":
		return true, nil
	default:
		return false, nil
	}
}
