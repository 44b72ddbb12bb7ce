package dataio

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/locusproject/locus/schema"
)

// nameEntry is one record of the name lookup file.
type nameEntry struct {
	Code   string `json:"code"`
	Name   string `json:"name"`
	Region string `json:"region"`
}

// LoadNames reads an entity name lookup from a JSON array of
// {code, name, region} objects. Entries without a code are dropped.
// Blank names and regions are kept as-is; display fallbacks live in
// schema.DisplayName and schema.RegionOf.
func LoadNames(path string) (map[string]schema.EntityName, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read name lookup: %w", err)
	}

	var entries []nameEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("parse name lookup: %w", err)
	}

	names := make(map[string]schema.EntityName, len(entries))
	for _, entry := range entries {
		code := strings.TrimSpace(entry.Code)
		if code == "" {
			continue
		}
		names[code] = schema.EntityName{
			Name:   strings.TrimSpace(entry.Name),
			Region: strings.TrimSpace(entry.Region),
		}
	}
	return names, nil
}
