package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"unicode/utf8"

	"gopkg.in/yaml.v3"

	"github.com/mcoot/jumpbble/internal/model"
)

// LocalDir is the directory searched when no config directory is given
const LocalDir = "config"

const (
	lettersFile      = "letters"
	specialTilesFile = "special_tiles"
	gameFile         = "game"
)

// Extensions tried for each table, in order. JSON is valid YAML.
var extensions = []string{".yaml", ".yml", ".json"}

// Settings holds the scalar game options
type Settings struct {
	GridSize   int `yaml:"grid_size" json:"grid_size"`
	DecayTurns int `yaml:"decay_turns" json:"decay_turns"`
}

// DefaultSettings returns the settings used when game.yaml is absent
func DefaultSettings() Settings {
	return Settings{
		GridSize:   15,
		DecayTurns: model.DefaultDecayTurns,
	}
}

// Tables is everything the engine needs from configuration
type Tables struct {
	Letters      []model.LetterEntry
	Distribution model.EffectDistribution
	Settings     Settings
	Source       string // Directory the tables came from, or "embedded"
}

// LetterTable builds the ordered letter table for a board of the given size
func (t *Tables) LetterTable(size int) (*model.LetterTable, error) {
	return model.NewLetterTable(t.Letters, size)
}

// Load reads the game tables.
// Search order: dir -> ./config -> embedded defaults. An explicitly given dir
// must contain both tables; game.yaml is always optional.
func Load(dir string) (*Tables, error) {
	if dir != "" {
		return loadFrom(os.DirFS(dir), ".", dir)
	}

	if hasTable(os.DirFS(LocalDir), ".", lettersFile) {
		return loadFrom(os.DirFS(LocalDir), ".", LocalDir)
	}

	return loadFrom(defaultFS, defaultDir, "embedded")
}

// Defaults returns the embedded tables
func Defaults() (*Tables, error) {
	return loadFrom(defaultFS, defaultDir, "embedded")
}

func loadFrom(fsys fs.FS, root, source string) (*Tables, error) {
	lettersData, err := readTable(fsys, root, lettersFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read letters from %s: %w", source, err)
	}
	letters, err := ParseLetters(lettersData)
	if err != nil {
		return nil, fmt.Errorf("failed to parse letters from %s: %w", source, err)
	}

	specialData, err := readTable(fsys, root, specialTilesFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read special tiles from %s: %w", source, err)
	}
	distribution, err := ParseDistribution(specialData)
	if err != nil {
		return nil, fmt.Errorf("failed to parse special tiles from %s: %w", source, err)
	}

	settings := DefaultSettings()
	gameData, err := readTable(fsys, root, gameFile)
	switch {
	case errors.Is(err, fs.ErrNotExist):
	case err != nil:
		return nil, fmt.Errorf("failed to read game settings from %s: %w", source, err)
	default:
		if err := yaml.Unmarshal(gameData, &settings); err != nil {
			return nil, fmt.Errorf("failed to parse game settings from %s: %w", source, err)
		}
	}

	tables := &Tables{
		Letters:      letters,
		Distribution: distribution,
		Settings:     settings,
		Source:       source,
	}
	if err := tables.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", source, err)
	}
	return tables, nil
}

// Validate checks the tables can build a game with the configured settings
func (t *Tables) Validate() error {
	if t.Settings.GridSize <= 0 {
		return fmt.Errorf("%w: grid_size must be positive, got %d", model.ErrInvalidConfig, t.Settings.GridSize)
	}
	if t.Settings.DecayTurns < 0 {
		return fmt.Errorf("%w: decay_turns must not be negative, got %d", model.ErrInvalidConfig, t.Settings.DecayTurns)
	}
	if _, err := t.LetterTable(t.Settings.GridSize); err != nil {
		return err
	}
	return t.Distribution.Validate()
}

func readTable(fsys fs.FS, root, name string) ([]byte, error) {
	for _, ext := range extensions {
		data, err := fs.ReadFile(fsys, path.Join(root, name+ext))
		if err == nil {
			return data, nil
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
	}
	return nil, fmt.Errorf("%s: %w", name, fs.ErrNotExist)
}

func hasTable(fsys fs.FS, root, name string) bool {
	for _, ext := range extensions {
		if _, err := fs.Stat(fsys, path.Join(root, name+ext)); err == nil {
			return true
		}
	}
	return false
}

// letterDoc is the on-disk form of one letter
type letterDoc struct {
	Count int `yaml:"count"`
	Score int `yaml:"score"`
}

// ParseLetters reads a letter -> {count, score} mapping, keeping document order
func ParseLetters(data []byte) ([]model.LetterEntry, error) {
	mapping, err := topLevelMapping(data)
	if err != nil {
		return nil, err
	}

	entries := make([]model.LetterEntry, 0, len(mapping.Content)/2)
	for i := 0; i+1 < len(mapping.Content); i += 2 {
		key, value := mapping.Content[i], mapping.Content[i+1]
		if utf8.RuneCountInString(key.Value) != 1 {
			return nil, fmt.Errorf("%w: line %d: letter key %q must be a single character", model.ErrInvalidConfig, key.Line, key.Value)
		}
		letter, _ := utf8.DecodeRuneInString(key.Value)

		var doc letterDoc
		if err := value.Decode(&doc); err != nil {
			return nil, fmt.Errorf("%w: line %d: letter %q: %v", model.ErrInvalidConfig, value.Line, key.Value, err)
		}
		entries = append(entries, model.LetterEntry{
			Letter: letter,
			Def:    model.LetterDef{Count: doc.Count, Score: doc.Score},
		})
	}
	return entries, nil
}

// ParseDistribution reads an effect -> weight mapping, keeping document order.
// Effect names are checked here so a typo fails at load time.
func ParseDistribution(data []byte) (model.EffectDistribution, error) {
	mapping, err := topLevelMapping(data)
	if err != nil {
		return nil, err
	}

	dist := make(model.EffectDistribution, 0, len(mapping.Content)/2)
	seen := make(map[model.StatusEffect]bool)
	for i := 0; i+1 < len(mapping.Content); i += 2 {
		key, value := mapping.Content[i], mapping.Content[i+1]
		effect, err := model.ParseStatusEffect(key.Value)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", key.Line, err)
		}
		if seen[effect] {
			return nil, fmt.Errorf("%w: line %d: duplicate effect %q", model.ErrInvalidConfig, key.Line, key.Value)
		}
		seen[effect] = true

		var weight float64
		if err := value.Decode(&weight); err != nil {
			return nil, fmt.Errorf("%w: line %d: weight for %q: %v", model.ErrInvalidConfig, value.Line, key.Value, err)
		}
		dist = append(dist, model.EffectWeight{Effect: effect, Weight: weight})
	}
	return dist, nil
}

func topLevelMapping(data []byte) (*yaml.Node, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", model.ErrInvalidConfig, err)
	}
	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 {
		return nil, fmt.Errorf("%w: empty document", model.ErrInvalidConfig)
	}
	mapping := doc.Content[0]
	if mapping.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("%w: expected a mapping at line %d", model.ErrInvalidConfig, mapping.Line)
	}
	return mapping, nil
}
