package geolocation

import (
	_ "embed"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed cities.yaml
var defaultCitiesYAML string

// ReferenceTable maps a city code to its coordinate.
type ReferenceTable map[string]Coordinate

type tableFile struct {
	Cities []tableEntry `yaml:"cities"`
}

type tableEntry struct {
	ID         string `yaml:"id"`
	Name       string `yaml:"name"`
	Coordinate `yaml:",inline"`
}

// LoadReferenceTable parses a YAML city table.
func LoadReferenceTable(r io.Reader) (ReferenceTable, error) {
	var file tableFile
	if err := yaml.NewDecoder(r).Decode(&file); err != nil {
		return nil, fmt.Errorf("decode city table: %w", err)
	}

	table := make(ReferenceTable, len(file.Cities))
	for i, entry := range file.Cities {
		id := strings.TrimSpace(entry.ID)
		if id == "" {
			return nil, fmt.Errorf("city table entry %d has no id", i)
		}
		if !entry.Coordinate.Valid() {
			return nil, fmt.Errorf("city %s has an invalid coordinate", id)
		}
		if _, dup := table[id]; dup {
			return nil, fmt.Errorf("city %s listed twice", id)
		}
		table[id] = entry.Coordinate
	}
	return table, nil
}

// LoadReferenceTableFile reads the table at path.
func LoadReferenceTableFile(path string) (ReferenceTable, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open city table: %w", err)
	}
	defer f.Close()

	return LoadReferenceTable(f)
}

// DefaultReferenceTable returns the bundled table.
func DefaultReferenceTable() ReferenceTable {
	table, err := LoadReferenceTable(strings.NewReader(defaultCitiesYAML))
	if err != nil {
		panic(fmt.Sprintf("bundled city table: %v", err))
	}
	return table
}

// Codes returns the city codes in ascending order.
func (t ReferenceTable) Codes() []string {
	codes := make([]string, 0, len(t))
	for code := range t {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}
