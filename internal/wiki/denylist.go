package wiki

import (
	"fmt"
	"os"

	"github.com/lepinkainen/botd/internal/textnorm"
	"gopkg.in/yaml.v3"
)

// defaultDenylist holds normalized item texts that are known transcription
// notes on the wiki rather than burgers.
var defaultDenylist = []string{
	"same as wharf horse since both episodes take place on the same day",
	"there were no burgers of the day in this episode but in the hugo s hot dogs segment a hot dog of the day appeared which was the a view to a kielbasa dog which is a reference to the 1985 james bond movie a view to a kill",
}

// Denylist is a set of item texts compared in normalized form.
type Denylist struct {
	entries map[string]struct{}
}

// denylistFile is the YAML layout accepted by LoadDenylist.
type denylistFile struct {
	Excluded []string `yaml:"excluded"`
}

// NewDenylist builds a denylist from raw or normalized texts.
func NewDenylist(texts ...string) *Denylist {
	d := &Denylist{entries: make(map[string]struct{}, len(texts))}
	for _, text := range texts {
		if key := textnorm.Normalize(text); key != "" {
			d.entries[key] = struct{}{}
		}
	}
	return d
}

// DefaultDenylist returns the built-in denylist.
func DefaultDenylist() *Denylist {
	return NewDenylist(defaultDenylist...)
}

// LoadDenylist reads a YAML file of the form:
//
//	excluded:
//	  - "Same as Wharf Horse since both episodes take place on the same day"
//
// The file replaces the built-in list.
func LoadDenylist(path string) (*Denylist, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read denylist: %w", err)
	}

	var file denylistFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse denylist %s: %w", path, err)
	}
	return NewDenylist(file.Excluded...), nil
}

// Contains reports whether text normalizes to a denylisted entry.
func (d *Denylist) Contains(text string) bool {
	if d == nil || len(d.entries) == 0 {
		return false
	}
	_, ok := d.entries[textnorm.Normalize(text)]
	return ok
}

// Len returns the number of entries.
func (d *Denylist) Len() int {
	if d == nil {
		return 0
	}
	return len(d.entries)
}
