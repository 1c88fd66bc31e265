package screen

import (
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"
	"sync"

	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"

	"adminconsole/internal/core/listresource"
)

var (
	ErrUnknownScreen     = errors.New("unknown screen")
	ErrInvalidDefinition = errors.New("invalid screen definition")
)

// Definition describes one admin screen and the backend collection behind it.
type Definition struct {
	Name                  string                     `json:"name" yaml:"name"`
	Title                 string                     `json:"title" yaml:"title"`
	Path                  string                     `json:"path" yaml:"path"`
	Limit                 int                        `json:"limit,omitempty" yaml:"limit"`
	Messages              listresource.Messages      `json:"messages" yaml:"messages"`
	Modals                []listresource.CustomModal `json:"modals,omitempty" yaml:"modals"`
	FetchDetailBeforeEdit bool                       `json:"fetchDetailBeforeEdit" yaml:"fetchDetailBeforeEdit"`
	listresource.Shape    `yaml:",inline"`
}

// Validate checks the fields a controller cannot work without.
func (d Definition) Validate() error {
	if strings.TrimSpace(d.Name) == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidDefinition)
	}
	if strings.TrimSpace(d.Path) == "" {
		return fmt.Errorf("%w: %s: path is required", ErrInvalidDefinition, d.Name)
	}
	if d.Limit < 0 {
		return fmt.Errorf("%w: %s: limit must be positive", ErrInvalidDefinition, d.Name)
	}
	return nil
}

// Options builds controller options. limit overrides the screen default when > 0.
func (d Definition) Options(limit, fallbackLimit int) listresource.Options {
	if limit <= 0 {
		limit = d.Limit
	}
	if limit <= 0 {
		limit = fallbackLimit
	}
	return listresource.Options{
		Screen:                d.Name,
		Limit:                 limit,
		Messages:              d.Messages,
		CustomModals:          append([]listresource.CustomModal(nil), d.Modals...),
		FetchDetailBeforeEdit: d.FetchDetailBeforeEdit,
		Shape:                 d.Shape,
	}
}

// Catalog holds the screens that can be mounted.
type Catalog struct {
	defs map[string]Definition
	mu   sync.RWMutex
}

// NewCatalog creates an empty catalog
func NewCatalog() *Catalog {
	return &Catalog{defs: make(map[string]Definition)}
}

// DefaultCatalog returns a catalog holding the built-in screens.
func DefaultCatalog() *Catalog {
	c := NewCatalog()
	for _, d := range Builtins() {
		if err := c.Register(d); err != nil {
			panic(err)
		}
	}
	return c
}

// Register adds a definition, replacing any screen with the same name.
func (c *Catalog) Register(d Definition) error {
	if err := d.Validate(); err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	_, replaced := c.defs[d.Name]
	c.defs[d.Name] = d
	log.Debug().
		Str("screen", d.Name).
		Str("path", d.Path).
		Bool("replaced", replaced).
		Msg("registered screen")
	return nil
}

// Get returns a screen by name
func (c *Catalog) Get(name string) (Definition, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	d, ok := c.defs[name]
	if !ok {
		return Definition{}, fmt.Errorf("%w: %s", ErrUnknownScreen, name)
	}
	return d, nil
}

// List returns every screen sorted by name.
func (c *Catalog) List() []Definition {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]Definition, 0, len(c.defs))
	for _, d := range c.defs {
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

type screensFile struct {
	Screens []Definition `yaml:"screens"`
}

// LoadFile registers every screen in a YAML file. Nothing is registered when
// any definition is invalid.
func (c *Catalog) LoadFile(path string) (int, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("read screens file: %w", err)
	}
	return c.Load(raw)
}

// Load registers every screen in a YAML document.
func (c *Catalog) Load(raw []byte) (int, error) {
	var f screensFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return 0, fmt.Errorf("parse screens: %w", err)
	}
	for _, d := range f.Screens {
		if err := d.Validate(); err != nil {
			return 0, err
		}
	}
	for _, d := range f.Screens {
		if err := c.Register(d); err != nil {
			return 0, err
		}
	}
	return len(f.Screens), nil
}
