package knowledge

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// fileFormat is the on-disk layout of a user knowledge file:
//
//	entries:
//	  - trigger: what is a reit
//	    answer: A REIT is ...
type fileFormat struct {
	Entries []Entry `yaml:"entries"`
}

// LoadFile reads extra entries from a YAML file. A missing file is not an error.
func LoadFile(path string) ([]Entry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read knowledge file: %w", err)
	}

	var f fileFormat
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse knowledge file: %w", err)
	}

	for i, e := range f.Entries {
		if normalize(e.Trigger) == "" {
			return nil, fmt.Errorf("knowledge file entry %d has an empty trigger", i+1)
		}
		if e.Answer == "" {
			return nil, fmt.Errorf("knowledge file entry %q has an empty answer", e.Trigger)
		}
	}

	return f.Entries, nil
}

// Load returns the built-in table extended with the entries of path (if set).
// Built-in entries keep precedence; skipped duplicate triggers are returned.
func Load(path string) (*Base, []string, error) {
	base := Default()
	if path == "" {
		return base, nil, nil
	}

	extra, err := LoadFile(path)
	if err != nil {
		return base, nil, err
	}

	extended, skipped := base.Extend(extra)
	return extended, skipped, nil
}
