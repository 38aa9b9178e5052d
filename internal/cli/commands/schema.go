package commands

import (
	"fmt"
	"os"

	"github.com/leapstack-labs/crossdb/pkg/schema"
	"gopkg.in/yaml.v3"
)

// loadDescription reads a shorthand schema description from a YAML file.
// The file holds the field mapping for a single table:
//
//	id: serial
//	name: [varchar, 64]
//	created:
//	  type: timestamp
//	  default: CURRENT_TIMESTAMP()
func loadDescription(path string) (*schema.Description, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read schema file: %w", err)
	}
	var desc schema.Description
	if err := yaml.Unmarshal(data, &desc); err != nil {
		return nil, fmt.Errorf("invalid schema file %s: %w", path, err)
	}
	if desc.Len() == 0 {
		return nil, fmt.Errorf("schema file %s defines no fields", path)
	}
	return &desc, nil
}
