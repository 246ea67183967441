package bicycle

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// LoadParams reads physical constants from a YAML file, overlaying the
// values found there onto DefaultParams, and returns them.
// It returns error if the file cannot be read, parsed or if the
// resulting constants fail validation.
func LoadParams(path string) (Params, error) {
	p := DefaultParams()

	data, err := os.ReadFile(path)
	if err != nil {
		return Params{}, err
	}

	if err := yaml.Unmarshal(data, &p); err != nil {
		return Params{}, fmt.Errorf("failed to parse %s: %v", path, err)
	}

	if err := p.Validate(); err != nil {
		return Params{}, fmt.Errorf("invalid parameters in %s: %v", path, err)
	}

	return p, nil
}
