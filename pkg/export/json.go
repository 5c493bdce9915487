// Package export writes analysis results to JSON and CSV. The solver itself
// never touches the filesystem; everything file-shaped lives here.
package export

import (
	"encoding/json"
	"fmt"
	"os"

	"motorbench/pkg/analysis"
	"motorbench/pkg/params"
)

// Document is the results file: the parameter set that produced the run plus
// every result grid serialized as nested numeric lists.
type Document struct {
	Params  params.Parameters `json:"params"`
	Results *analysis.Result  `json:"results"`
}

// SaveJSON writes the {params, results} document.
func SaveJSON(path string, p params.Parameters, r *analysis.Result) error {
	doc := Document{Params: p, Results: r}
	data, err := json.MarshalIndent(&doc, "", "    ")
	if err != nil {
		return fmt.Errorf("encoding results: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

// LoadJSON reads a results document back.
func LoadJSON(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decoding %s: %w", path, err)
	}
	return &doc, nil
}
