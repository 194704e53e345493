// Package output serializes extracted diagram models.
package output

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/ukaji3/vsdxstruct-go/pkg/vsdxstruct/models"
)

// ToJSON serializes pages to the interchange format: a JSON array of page records.
func ToJSON(pages []models.PageRecord, pretty bool) ([]byte, error) {
	if pages == nil {
		pages = []models.PageRecord{}
	}
	if pretty {
		return json.MarshalIndent(pages, "", "  ")
	}
	return json.Marshal(pages)
}

// FromJSON parses the interchange format.
func FromJSON(data []byte) ([]models.PageRecord, error) {
	var pages []models.PageRecord
	if err := json.Unmarshal(data, &pages); err != nil {
		return nil, fmt.Errorf("decoding page records: %w", err)
	}
	return pages, nil
}

// WriteJSONFile writes pages to path.
func WriteJSONFile(path string, pages []models.PageRecord, pretty bool) error {
	data, err := ToJSON(pages, pretty)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// ReadJSONFile reads page records from path.
func ReadJSONFile(path string) ([]models.PageRecord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return FromJSON(data)
}
