package quiz

import (
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/zephyrtronium/safexpr"
)

// ErrEmptyCatalog is returned when a catalog has no functions.
var ErrEmptyCatalog = errors.New("quiz: catalog has no functions")

// Entry is a function that questions can be asked about.
type Entry struct {
	// Expr is the function of x, e.g. "x**2".
	Expr string `yaml:"expr"`
	// Name is a short human description, e.g. "parabola".
	Name string `yaml:"name"`
}

type item struct {
	Entry
	e *safexpr.Expr
}

// Catalog is an immutable list of functions with their parsed expressions.
type Catalog struct {
	items []item
}

// catalogFile is the YAML layout read by LoadCatalog.
type catalogFile struct {
	Functions []Entry `yaml:"functions"`
}

// NewCatalog parses every entry's expression and returns a catalog of them.
func NewCatalog(entries ...Entry) (*Catalog, error) {
	if len(entries) == 0 {
		return nil, ErrEmptyCatalog
	}
	c := Catalog{items: make([]item, 0, len(entries))}
	for i, ent := range entries {
		e, err := safexpr.Parse(ent.Expr)
		if err != nil {
			return nil, fmt.Errorf("quiz: catalog entry %d (%q): %w", i+1, ent.Expr, err)
		}
		if ent.Name == "" {
			ent.Name = e.Source()
		}
		c.items = append(c.items, item{Entry: ent, e: e})
	}
	return &c, nil
}

// LoadCatalog reads a catalog from YAML of the form
//
//	functions:
//	  - expr: x**2
//	    name: parabola
func LoadCatalog(r io.Reader) (*Catalog, error) {
	var f catalogFile
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, ErrEmptyCatalog
		}
		return nil, fmt.Errorf("quiz: decoding catalog: %w", err)
	}
	return NewCatalog(f.Functions...)
}

// defaultEntries are the functions of the derivative game.
var defaultEntries = []Entry{
	{Expr: "x", Name: "line"},
	{Expr: "2*x+1", Name: "sloped line"},
	{Expr: "x**2", Name: "parabola"},
	{Expr: "-0.5*x**2+4", Name: "inverted parabola"},
	{Expr: "x**3/8", Name: "soft cubic"},
	{Expr: "sin(x)", Name: "sine"},
	{Expr: "cos(x)", Name: "cosine"},
}

// DefaultCatalog returns the built-in catalog.
func DefaultCatalog() *Catalog {
	c, err := NewCatalog(defaultEntries...)
	if err != nil {
		panic(err)
	}
	return c
}

// Len returns the number of functions in the catalog.
func (c *Catalog) Len() int {
	return len(c.items)
}

// Entry returns the i-th function in the catalog.
func (c *Catalog) Entry(i int) Entry {
	return c.items[i].Entry
}

// Expr returns the parsed expression of the i-th function.
func (c *Catalog) Expr(i int) *safexpr.Expr {
	return c.items[i].e
}
