package levels

import (
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/milk9111/chromagate/common"
)

//go:embed *.json
var LevelsFS embed.FS

// Dir is the namespace level identifiers live under, on disk and in requests.
const Dir = "levels"

// Level is the authored description of one puzzle room. Positions and sizes
// are in tiles.
type Level struct {
	Name     string   `json:"name"`
	Width    int      `json:"width"`
	Height   int      `json:"height"`
	Entities []Entity `json:"entities,omitempty"`
}

type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Entity is one authored placement record. Width and Height apply to walls;
// TargetLevel and Locked apply to doors.
type Entity struct {
	Type        string           `json:"type"`
	Position    Position         `json:"position"`
	ColorCode   common.ColorCode `json:"color_code"`
	Width       int              `json:"width,omitempty"`
	Height      int              `json:"height,omitempty"`
	TargetLevel string           `json:"target_level,omitempty"`
	Locked      bool             `json:"locked,omitempty"`
}

// UnmarshalJSON fills DefaultColorCode when color_code is absent. A missing
// position is the origin.
func (e *Entity) UnmarshalJSON(data []byte) error {
	type record Entity
	r := record{ColorCode: common.DefaultColorCode}
	if err := json.Unmarshal(data, &r); err != nil {
		return err
	}
	*e = Entity(r)
	return nil
}

// Path returns the request identifier for a level name.
func Path(name string) string {
	return Dir + "/" + cleanLevelPath(name)
}

// NormalizeName appends the .json extension when name has none.
func NormalizeName(name string) string {
	name = strings.TrimSpace(name)
	if name == "" || filepath.Ext(name) != "" {
		return name
	}
	return name + ".json"
}

func Decode(data []byte) (*Level, error) {
	var lvl Level
	if err := json.Unmarshal(data, &lvl); err != nil {
		return nil, fmt.Errorf("unmarshal level: %w", err)
	}
	return &lvl, nil
}

func Encode(lvl *Level) ([]byte, error) {
	return json.MarshalIndent(lvl, "", "  ")
}

// LoadLevelFromFS reads a level from the embedded set only.
func LoadLevelFromFS(name string) (*Level, error) {
	data, err := fs.ReadFile(LevelsFS, cleanLevelPath(name))
	if err != nil {
		return nil, fmt.Errorf("read level: %w", err)
	}
	return Decode(data)
}

// LoadLevel reads a level identifier such as "levels/level1.json", preferring
// the on-disk copy so editor saves are seen without a rebuild.
func LoadLevel(path string) (*Level, error) {
	clean := cleanLevelPath(path)
	if data, err := os.ReadFile(diskLevelPath(clean)); err == nil {
		lvl, err := Decode(data)
		if err != nil {
			return nil, fmt.Errorf("levels: %s: %w", clean, err)
		}
		return lvl, nil
	}
	lvl, err := LoadLevelFromFS(clean)
	if err != nil {
		return nil, fmt.Errorf("levels: %s: %w", clean, err)
	}
	return lvl, nil
}

// Save writes lvl under the levels directory in the authored record shape.
func Save(path string, lvl *Level) error {
	dst := diskLevelPath(cleanLevelPath(path))
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return fmt.Errorf("levels: mkdir: %w", err)
	}
	data, err := Encode(lvl)
	if err != nil {
		return fmt.Errorf("levels: encode %s: %w", path, err)
	}
	if err := os.WriteFile(dst, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("levels: write %s: %w", dst, err)
	}
	return nil
}

// Export writes the current content of a level, embedded or on disk, to the
// levels directory so it can be edited in place. It returns the written path.
func Export(name string) (string, error) {
	name = NormalizeName(name)
	lvl, err := LoadLevel(name)
	if err != nil {
		return "", err
	}
	if err := Save(name, lvl); err != nil {
		return "", err
	}
	return diskLevelPath(cleanLevelPath(name)), nil
}

// List returns level names from the embedded set and the disk directory.
func List() []string {
	seen := make(map[string]struct{})
	if entries, err := fs.ReadDir(LevelsFS, "."); err == nil {
		for _, e := range entries {
			if !e.IsDir() && filepath.Ext(e.Name()) == ".json" {
				seen[e.Name()] = struct{}{}
			}
		}
	}
	if entries, err := os.ReadDir(Dir); err == nil {
		for _, e := range entries {
			if !e.IsDir() && filepath.Ext(e.Name()) == ".json" {
				seen[e.Name()] = struct{}{}
			}
		}
	}
	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func cleanLevelPath(path string) string {
	s := filepath.ToSlash(path)
	if after, ok := strings.CutPrefix(s, Dir+"/"); ok {
		return after
	}
	return s
}

func diskLevelPath(clean string) string {
	return filepath.Join(Dir, filepath.FromSlash(clean))
}
