package levels

import (
	"fmt"
	"strings"

	"github.com/milk9111/chromagate/common"
)

// RecordTypes lists the entity types a level may contain.
var RecordTypes = []string{"wall", "player", "crate", "crystal", "gate", "door"}

type Severity int

const (
	SeverityWarning Severity = iota
	SeverityError
)

func (s Severity) String() string {
	if s == SeverityError {
		return "error"
	}
	return "warning"
}

// Issue is one problem found by Validate. Record is -1 for level-wide issues.
type Issue struct {
	Severity Severity
	Record   int
	Message  string
}

func (i Issue) String() string {
	if i.Record < 0 {
		return fmt.Sprintf("%s: %s", i.Severity, i.Message)
	}
	return fmt.Sprintf("%s: record %d: %s", i.Severity, i.Record, i.Message)
}

// Validate reports authoring mistakes. known lists the level names door
// targets may refer to; a nil known skips that check.
func Validate(lvl *Level, known []string) []Issue {
	var issues []Issue
	add := func(sev Severity, record int, format string, args ...any) {
		issues = append(issues, Issue{Severity: sev, Record: record, Message: fmt.Sprintf(format, args...)})
	}

	if lvl.Width <= 0 || lvl.Height <= 0 {
		add(SeverityError, -1, "size %dx%d must be positive", lvl.Width, lvl.Height)
	}

	knownSet := make(map[string]struct{}, len(known))
	for _, name := range known {
		knownSet[name] = struct{}{}
	}

	var sources, sinks [common.NumColorCodes]int
	players := 0
	for i, rec := range lvl.Entities {
		typ := strings.ToLower(rec.Type)
		if !isRecordType(typ) {
			add(SeverityError, i, "unknown type %q", rec.Type)
			continue
		}
		if !rec.ColorCode.Valid() {
			add(SeverityError, i, "invalid color code %d", rec.ColorCode)
			continue
		}
		if lvl.Width > 0 && lvl.Height > 0 {
			if rec.Position.X < 0 || rec.Position.Y < 0 || rec.Position.X >= float64(lvl.Width) || rec.Position.Y >= float64(lvl.Height) {
				add(SeverityError, i, "%s at (%g, %g) is outside the level", typ, rec.Position.X, rec.Position.Y)
			}
		}

		switch typ {
		case "player":
			players++
		case "crystal":
			sources[rec.ColorCode.Index()]++
		case "gate":
			sinks[rec.ColorCode.Index()]++
		case "door":
			if rec.Locked {
				sinks[rec.ColorCode.Index()]++
			}
			if rec.TargetLevel != "" && known != nil {
				if _, ok := knownSet[NormalizeName(rec.TargetLevel)]; !ok {
					add(SeverityError, i, "door target %q does not exist", rec.TargetLevel)
				}
			}
		}
	}

	if players != 1 {
		add(SeverityError, -1, "expected exactly one player, found %d", players)
	}
	for _, c := range common.AllColorCodes() {
		if sinks[c.Index()] > 0 && sources[c.Index()] == 0 {
			add(SeverityWarning, -1, "%s gates have no %s crystal and can never open", c, c)
		}
	}
	return issues
}

// HasErrors reports whether any issue is an error.
func HasErrors(issues []Issue) bool {
	for _, issue := range issues {
		if issue.Severity == SeverityError {
			return true
		}
	}
	return false
}

func isRecordType(typ string) bool {
	for _, t := range RecordTypes {
		if t == typ {
			return true
		}
	}
	return false
}
