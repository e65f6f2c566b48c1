package session

import (
	"testing"

	"github.com/pixil98/go-testutil"
)

func TestParseSelection(t *testing.T) {
	tests := map[string]struct {
		input   string
		n       int
		opts    ListOptions
		expPick []int
		expBack bool
		expErr  string
	}{
		"single pick": {
			input:   "2",
			n:       3,
			expPick: []int{1},
		},
		"space separated": {
			input:   "1 3",
			n:       3,
			expPick: []int{0, 2},
		},
		"comma separated": {
			input:   "1,3",
			n:       3,
			expPick: []int{0, 2},
		},
		"duplicates collapse": {
			input:   "2 2 2",
			n:       3,
			expPick: []int{1},
		},
		"none when allowed": {
			input:   "none",
			n:       3,
			expPick: nil,
		},
		"empty input": {
			input:   "",
			n:       3,
			expPick: nil,
		},
		"back when allowed": {
			input:   "back",
			n:       3,
			opts:    ListOptions{AllowBack: true},
			expBack: true,
		},
		"back when forced": {
			input:  "back",
			n:      3,
			expErr: "can't back out",
		},
		"not a number": {
			input:  "two",
			n:      3,
			expErr: "not a number",
		},
		"out of range": {
			input:  "4",
			n:      3,
			expErr: "not on the list",
		},
		"below minimum": {
			input:  "1",
			n:      3,
			opts:   ListOptions{Min: 2},
			expErr: "at least 2",
		},
		"above maximum": {
			input:  "1 2 3",
			n:      3,
			opts:   ListOptions{Max: 2},
			expErr: "at most 2",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			picked, back, err := parseSelection(tt.input, tt.n, tt.opts)

			if tt.expErr != "" {
				testutil.AssertErrorContains(t, err, tt.expErr)
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			testutil.AssertEqual(t, "back", back, tt.expBack)
			testutil.AssertEqual(t, "pick count", len(picked), len(tt.expPick))
			for i := range tt.expPick {
				testutil.AssertEqual(t, "pick", picked[i], tt.expPick[i])
			}
		})
	}
}
