// Package catalog holds the static combo configuration of the plot dashboard.
// Combos are loaded once and handed out as copies, so they never change after load.
package catalog

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/simurg/simurg-desktop/internal/model"
)

//go:embed combos.json
var defaultCombos []byte

var (
	// ErrComboNotFound is returned by Get for unknown identifiers
	ErrComboNotFound = errors.New("combo not found")

	// ErrNoCombos is returned when a configuration holds no combos
	ErrNoCombos = errors.New("no combos configured")
)

type document struct {
	Combos []model.Combo `json:"combos"`
}

// Catalog is an immutable, ordered set of combos
type Catalog struct {
	combos []model.Combo
	index  map[string]int
}

// Default returns the catalog embedded in the binary
func Default() (*Catalog, error) {
	return Load(bytes.NewReader(defaultCombos))
}

// LoadFile reads a catalog from path; an empty path means the embedded one
func LoadFile(path string) (*Catalog, error) {
	if path == "" {
		return Default()
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open combos: %w", err)
	}
	defer f.Close()
	return Load(f)
}

// Load decodes a {"combos": [...]} document and checks identifiers
func Load(r io.Reader) (*Catalog, error) {
	var doc document
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode combos: %w", err)
	}
	if len(doc.Combos) == 0 {
		return nil, ErrNoCombos
	}

	c := &Catalog{
		combos: make([]model.Combo, 0, len(doc.Combos)),
		index:  make(map[string]int, len(doc.Combos)),
	}
	for i, combo := range doc.Combos {
		if combo.ID == "" {
			return nil, fmt.Errorf("combo %d: empty id", i)
		}
		if _, dup := c.index[combo.ID]; dup {
			return nil, fmt.Errorf("combo %q: duplicate id", combo.ID)
		}
		for j, plot := range combo.RequestSkeleton.PlotRequest.Plots {
			if !plot.PlotType.IsValid() {
				return nil, fmt.Errorf("combo %q plot %d: unknown plot type %q", combo.ID, j, plot.PlotType)
			}
		}
		c.index[combo.ID] = len(c.combos)
		c.combos = append(c.combos, combo)
	}
	return c, nil
}

// All returns copies of every combo in configuration order
func (c *Catalog) All() []model.Combo {
	out := make([]model.Combo, len(c.combos))
	for i, combo := range c.combos {
		out[i] = combo.Clone()
	}
	return out
}

// Get returns a copy of the combo with the given id
func (c *Catalog) Get(id string) (model.Combo, error) {
	i, ok := c.index[id]
	if !ok {
		return model.Combo{}, fmt.Errorf("%w: %s", ErrComboNotFound, id)
	}
	return c.combos[i].Clone(), nil
}

// Len returns the number of combos
func (c *Catalog) Len() int {
	return len(c.combos)
}
