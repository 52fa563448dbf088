package modelcatalog

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// UserCatalogPath returns the default location of the user's extra model
// catalog, or "" when the home directory cannot be determined.
func UserCatalogPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".clio-ai", "models.json")
}

// All returns the built-in catalog plus any user additions from path.
// A missing file is not an error; an unreadable or invalid one is.
func All(path string) ([]Model, error) {
	models := Builtin()
	if path == "" {
		return models, nil
	}
	extra, err := Load(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return models, nil
		}
		return nil, err
	}
	merged := append(models, extra...)
	if err := Validate(merged); err != nil {
		return nil, err
	}
	return merged, nil
}

func Load(path string) ([]Model, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read model catalog: %w", err)
	}
	var models []Model
	if err := json.Unmarshal(b, &models); err != nil {
		return nil, fmt.Errorf("parse model catalog JSON: %w", err)
	}
	if err := Validate(models); err != nil {
		return nil, err
	}
	return models, nil
}

func Validate(models []Model) error {
	seen := map[string]struct{}{}
	for i, m := range models {
		if strings.TrimSpace(m.ID) == "" {
			return fmt.Errorf("model[%d]: id is required", i)
		}
		if strings.TrimSpace(m.Name) == "" {
			return fmt.Errorf("model[%d]: name is required", i)
		}
		switch strings.ToLower(strings.TrimSpace(m.Provider)) {
		case "gemini", "groq", "ollama":
		default:
			return fmt.Errorf("model[%d] %q: invalid provider %q (must be gemini|groq|ollama)", i, m.ID, m.Provider)
		}
		if _, ok := seen[m.ID]; ok {
			return fmt.Errorf("duplicate model id: %s", m.ID)
		}
		seen[m.ID] = struct{}{}
	}
	return nil
}
