package catalog

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

var (
	ErrInvalidCatalog = errors.New("invalid tile catalog")
	ErrTileNotFound   = errors.New("tile not found")
)

// TileID identifies a placeable tile kind.
type TileID string

// Empty is the base tile every map cell starts with.
const Empty TileID = "Empty"

// Layer selects which map layer a tile kind belongs to.
type Layer string

const (
	LayerBase    Layer = "Base"
	LayerOverlay Layer = "Overlay"
)

// Entry is one catalog record.
type Entry struct {
	ID    TileID `json:"id"`
	Layer Layer  `json:"layer"`
	Color Color  `json:"color"`
}

// Catalog is the immutable set of placeable tile kinds for a session.
type Catalog struct {
	entries []Entry
	byID    map[TileID]int
}

//go:embed catalog.schema.json
var schemaSource string

var (
	schemaOnce sync.Once
	schema     *jsonschema.Schema
	schemaErr  error
)

func compiledSchema() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		schema, schemaErr = jsonschema.CompileString("catalog.schema.json", schemaSource)
	})
	return schema, schemaErr
}

// New builds a catalog from entries, rejecting duplicates, unknown layers and
// out-of-range colors.
func New(entries []Entry) (*Catalog, error) {
	if len(entries) == 0 {
		return nil, fmt.Errorf("%w: no entries", ErrInvalidCatalog)
	}

	c := &Catalog{
		entries: make([]Entry, 0, len(entries)),
		byID:    make(map[TileID]int, len(entries)),
	}
	for i, e := range entries {
		if e.ID == "" {
			return nil, fmt.Errorf("%w: entry %d has no id", ErrInvalidCatalog, i)
		}
		if e.Layer != LayerBase && e.Layer != LayerOverlay {
			return nil, fmt.Errorf("%w: entry %q has unknown layer %q", ErrInvalidCatalog, e.ID, e.Layer)
		}
		if e.ID == Empty && e.Layer != LayerBase {
			return nil, fmt.Errorf("%w: %q must be a %s tile", ErrInvalidCatalog, Empty, LayerBase)
		}
		if !e.Color.Valid() {
			return nil, fmt.Errorf("%w: entry %q color %v out of range", ErrInvalidCatalog, e.ID, e.Color)
		}
		if _, dup := c.byID[e.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate id %q", ErrInvalidCatalog, e.ID)
		}
		c.byID[e.ID] = len(c.entries)
		c.entries = append(c.entries, e)
	}
	return c, nil
}

// Parse validates raw catalog JSON against the embedded schema and builds the
// catalog. Any malformed entry fails the whole load.
func Parse(data []byte) (*Catalog, error) {
	sch, err := compiledSchema()
	if err != nil {
		return nil, fmt.Errorf("failed to compile catalog schema: %w", err)
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var doc interface{}
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidCatalog, err)
	}
	if err := sch.Validate(doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidCatalog, err)
	}

	var entries []Entry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidCatalog, err)
	}
	return New(entries)
}

// Load reads and parses a catalog file
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog %s: %w", path, err)
	}
	c, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("catalog %s: %w", path, err)
	}
	return c, nil
}

// Default returns the built-in tileset.
func Default() *Catalog {
	c, err := New([]Entry{
		{ID: Empty, Layer: LayerBase, Color: Transparent},
		{ID: "Dirt", Layer: LayerBase, Color: RGB(0.55, 0.42, 0.35)},
		{ID: "Marker", Layer: LayerOverlay, Color: RGB(1.0, 1.0, 0.0)},
	})
	if err != nil {
		panic(err)
	}
	return c
}

// Def returns the entry for id
func (c *Catalog) Def(id TileID) (Entry, error) {
	i, ok := c.byID[id]
	if !ok {
		return Entry{}, fmt.Errorf("%w: %q", ErrTileNotFound, id)
	}
	return c.entries[i], nil
}

// Entries returns a copy of all entries in file order
func (c *Catalog) Entries() []Entry {
	out := make([]Entry, len(c.entries))
	copy(out, c.entries)
	return out
}

// Brushes returns the placeable ids of a layer in file order, skipping Empty.
func (c *Catalog) Brushes(layer Layer) []TileID {
	var ids []TileID
	for _, e := range c.entries {
		if e.Layer == layer && e.ID != Empty {
			ids = append(ids, e.ID)
		}
	}
	return ids
}

// Len returns the number of entries
func (c *Catalog) Len() int {
	return len(c.entries)
}
