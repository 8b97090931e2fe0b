package quota

import (
	"errors"
	"fmt"
	"io"
	"maps"
	"os"
	"slices"

	"gopkg.in/yaml.v3"
)

// Table maps a role to its daily cap. A Table is immutable once built.
type Table struct {
	caps map[string]int
}

// NewTable copies caps into a Table. Negative caps are rejected.
func NewTable(caps map[string]int) (Table, error) {
	if len(caps) == 0 {
		return Table{}, fmt.Errorf("%w: no roles", ErrInvalidTable)
	}
	for role, limit := range caps {
		if role == "" || limit < 0 {
			return Table{}, fmt.Errorf("%w: %q -> %d", ErrInvalidTable, role, limit)
		}
	}
	return Table{caps: maps.Clone(caps)}, nil
}

// DefaultTable is the stock trainer/staff table.
func DefaultTable() Table {
	return Table{caps: map[string]int{
		"trainer": 4,
		"staff":   16,
	}}
}

// Cap returns the daily cap of role or ErrUnknownRole.
func (t Table) Cap(role string) (int, error) {
	limit, ok := t.caps[role]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownRole, role)
	}
	return limit, nil
}

// Roles lists known roles in sorted order.
func (t Table) Roles() []string {
	return slices.Sorted(maps.Keys(t.caps))
}

type tableFile struct {
	DailyLimits map[string]int `yaml:"daily_limits"`
}

// LoadTable decodes a YAML document of the form
//
//	daily_limits:
//	  trainer: 4
//	  staff: 16
func LoadTable(r io.Reader) (Table, error) {
	var doc tableFile
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		return Table{}, errors.Join(ErrInvalidTable, err)
	}
	return NewTable(doc.DailyLimits)
}

func LoadTableFile(path string) (Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return Table{}, errors.Join(ErrInvalidTable, err)
	}
	defer f.Close()
	return LoadTable(f)
}
