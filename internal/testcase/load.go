package testcase

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
)

// LoadBatch reads a batch from path. The format is picked by extension
// (.json, .yaml, .yml); the special path "-" reads JSON from stdin. Test
// cases without an ID are assigned one; duplicate IDs are rejected.
func LoadBatch(path string) (*Batch, error) {
	if path == "-" {
		return ReadBatch(os.Stdin)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read batch file: %w", err)
	}

	var batch Batch
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		if err := json.Unmarshal(data, &batch); err != nil {
			return nil, fmt.Errorf("failed to parse batch file %s: %w", path, err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &batch); err != nil {
			return nil, fmt.Errorf("failed to parse batch file %s: %w", path, err)
		}
	default:
		return nil, fmt.Errorf("unsupported batch file extension %q (want .json, .yaml, or .yml)", filepath.Ext(path))
	}

	if err := normalize(&batch); err != nil {
		return nil, err
	}
	return &batch, nil
}

// ReadBatch decodes a JSON batch from r.
func ReadBatch(r io.Reader) (*Batch, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read batch: %w", err)
	}

	var batch Batch
	if err := json.Unmarshal(data, &batch); err != nil {
		return nil, fmt.Errorf("failed to parse batch: %w", err)
	}

	if err := normalize(&batch); err != nil {
		return nil, err
	}
	return &batch, nil
}

// normalize assigns IDs to test cases that lack one and rejects duplicates.
// A batch with no test cases is treated as empty.
func normalize(batch *Batch) error {
	seen := make(map[string]bool, len(batch.TestCases))
	for i := range batch.TestCases {
		tc := &batch.TestCases[i]
		if tc.ID == "" {
			tc.ID = uuid.NewString()
		}
		if seen[tc.ID] {
			return fmt.Errorf("duplicate test case id: %s", tc.ID)
		}
		seen[tc.ID] = true
	}
	return nil
}
