package display

import (
	"fmt"
	"strings"

	"github.com/pixil98/go-gamebook/internal/character"
)

const sheetBoxWidth = 40

// Sheet renders the character sheet as a bordered stat box.
func Sheet(s *character.State) string {
	sections := [][]string{
		{
			fmt.Sprintf("%s (%s)", s.Name, s.CharacterType),
		},
		{
			fmt.Sprintf("Life:  %d / %d", s.Life, s.LifeLimit),
			fmt.Sprintf("Money: %d", s.Money),
		},
		itemLines(s),
		skillLines(s),
	}
	if len(s.Codewords) > 0 {
		words := make([]string, len(s.Codewords))
		for i, w := range s.Codewords {
			words[i] = string(w)
		}
		sections = append(sections, []string{"Codewords: " + strings.Join(words, ", ")})
	}
	if s.IsBlessed {
		sections = append(sections, []string{"Carries a blessing"})
	}

	return renderBox(sections, sheetBoxWidth)
}

func itemLines(s *character.State) []string {
	lines := []string{fmt.Sprintf("Items (%d/%d)", len(s.Items), s.ItemLimit)}
	for _, it := range s.Items {
		lines = append(lines, "  "+it.Name())
	}
	return lines
}

func skillLines(s *character.State) []string {
	lines := []string{"Skills"}
	for _, sk := range s.Skills {
		lines = append(lines, "  "+sk.Name())
	}
	return lines
}

// --- Box rendering ---

func renderBox(sections [][]string, width int) string {
	var lines []string
	lines = append(lines, boxBorder(width))
	for i, section := range sections {
		if i > 0 {
			lines = append(lines, boxBorder(width))
		}
		for j, line := range section {
			if i == 0 && j == 0 {
				lines = append(lines, boxLineCenter(line, width))
			} else {
				lines = append(lines, boxLine(line, width))
			}
		}
	}
	lines = append(lines, boxBorder(width))
	return strings.Join(lines, "\n")
}

func boxBorder(width int) string {
	return "+" + strings.Repeat("-", width-2) + "+"
}

func boxLine(text string, width int) string {
	inner := width - 4
	if len(text) > inner {
		text = text[:inner]
	}
	return fmt.Sprintf("| %-*s |", inner, text)
}

func boxLineCenter(text string, width int) string {
	inner := width - 4
	if len(text) > inner {
		text = text[:inner]
	}
	pad := (inner - len(text)) / 2
	return fmt.Sprintf("| %*s%-*s |", pad+len(text), text, inner-pad-len(text), "")
}
