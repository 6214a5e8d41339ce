package content

import (
	"encoding/json"
	"fmt"
	"os"
)

// contentFile is the on-disk JSON shape of the word/sentence configuration.
type contentFile struct {
	Skills    []Skill       `json:"skills"`
	Templates []TemplateSet `json:"templates"`
}

// LoadFile reads a content configuration file and builds a Library.
func LoadFile(path string) (*Library, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: reading %s: %v", ErrNotConfigured, path, err)
	}

	var file contentFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("%w: parsing %s: %v", ErrNotConfigured, path, err)
	}

	return NewLibrary(file.Skills, file.Templates)
}
