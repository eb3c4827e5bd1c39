package levels

import (
	"strings"
	"testing"

	"github.com/milk9111/chromagate/common"
)

func TestValidateEmbeddedLevels(t *testing.T) {
	known := List()
	for _, name := range known {
		t.Run(name, func(t *testing.T) {
			lvl, err := LoadLevel(name)
			if err != nil {
				t.Fatalf("load: %v", err)
			}
			issues := Validate(lvl, known)
			if HasErrors(issues) {
				t.Fatalf("expected no errors, got %v", issues)
			}
		})
	}
}

func TestValidate(t *testing.T) {
	player := Entity{Type: "player", Position: Position{X: 1, Y: 1}}
	tests := []struct {
		name       string
		lvl        Level
		wantErrors bool
		wantText   string
	}{
		{
			name: "minimal",
			lvl:  Level{Width: 4, Height: 4, Entities: []Entity{player}},
		},
		{
			name:       "no player",
			lvl:        Level{Width: 4, Height: 4},
			wantErrors: true,
			wantText:   "exactly one player",
		},
		{
			name:       "bad size",
			lvl:        Level{Entities: []Entity{player}},
			wantErrors: true,
			wantText:   "must be positive",
		},
		{
			name: "unknown type",
			lvl: Level{Width: 4, Height: 4, Entities: []Entity{
				player,
				{Type: "lava"},
			}},
			wantErrors: true,
			wantText:   `unknown type "lava"`,
		},
		{
			name: "outside",
			lvl: Level{Width: 4, Height: 4, Entities: []Entity{
				player,
				{Type: "crate", Position: Position{X: 4, Y: 0}},
			}},
			wantErrors: true,
			wantText:   "outside the level",
		},
		{
			name: "gate without crystal warns",
			lvl: Level{Width: 4, Height: 4, Entities: []Entity{
				player,
				{Type: "gate", ColorCode: common.ColorYellow},
			}},
			wantText: "yellow gates have no yellow crystal",
		},
		{
			name: "missing door target",
			lvl: Level{Width: 4, Height: 4, Entities: []Entity{
				player,
				{Type: "door", TargetLevel: "nowhere"},
			}},
			wantErrors: true,
			wantText:   `door target "nowhere"`,
		},
		{
			name: "invalid color",
			lvl: Level{Width: 4, Height: 4, Entities: []Entity{
				player,
				{Type: "crystal", ColorCode: common.ColorCode(99)},
			}},
			wantErrors: true,
			wantText:   "invalid color code",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			issues := Validate(&tc.lvl, []string{"level1.json"})
			if got := HasErrors(issues); got != tc.wantErrors {
				t.Fatalf("HasErrors = %v, want %v (%v)", got, tc.wantErrors, issues)
			}
			if tc.wantText == "" {
				if len(issues) != 0 {
					t.Fatalf("expected no issues, got %v", issues)
				}
				return
			}
			found := false
			for _, issue := range issues {
				if strings.Contains(issue.String(), tc.wantText) {
					found = true
				}
			}
			if !found {
				t.Fatalf("expected issue containing %q, got %v", tc.wantText, issues)
			}
		})
	}
}
