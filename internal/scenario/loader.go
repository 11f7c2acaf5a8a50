package scenario

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/opdetect/opqa/internal/errors"
)

// LoadSuite reads a suite from a YAML or JSON file (chosen by extension),
// validates it, and assigns IDs to scenarios that have none.
func LoadSuite(path string) (*Suite, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.FileSystem(err, "read suite file")
	}

	var suite Suite
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		if err := json.Unmarshal(data, &suite); err != nil {
			return nil, errors.Wrap(err, errors.ErrorTypeValidation, "parse suite JSON")
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &suite); err != nil {
			return nil, errors.Wrap(err, errors.ErrorTypeValidation, "parse suite YAML")
		}
	default:
		return nil, errors.Newf(errors.ErrorTypeValidation,
			"unsupported suite file extension %q", filepath.Ext(path))
	}

	if suite.Name == "" {
		suite.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}

	for i := range suite.Scenarios {
		if suite.Scenarios[i].ID == "" {
			suite.Scenarios[i].ID = uuid.NewString()
		}
	}

	if err := suite.Validate(); err != nil {
		return nil, err
	}

	return &suite, nil
}
