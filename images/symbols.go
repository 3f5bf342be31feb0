package images

import (
	"sort"

	"github.com/pkg/errors"

	"github.com/nvr-ai/go-imagekit/util"
)

// SymbolCatalog is a read-only set of named icon images.
type SymbolCatalog struct {
	symbols map[string]*Raster
}

// NewSymbolCatalog builds a catalog from already decoded rasters.
func NewSymbolCatalog(symbols map[string]*Raster) *SymbolCatalog {
	c := &SymbolCatalog{symbols: make(map[string]*Raster, len(symbols))}
	for name, r := range symbols {
		c.symbols[name] = r
	}
	return c
}

// LoadSymbolCatalog decodes every image file in dir. Each symbol is named
// after its file without the extension and tagged RenderingModeTemplate.
//
// Arguments:
//   - dir: The directory holding the icon files.
//   - scale: Pixels per logical unit of the icon files.
//
// Returns:
//   - The catalog.
//   - error if the directory cannot be read or a file cannot be decoded.
func LoadSymbolCatalog(dir string, scale float64) (*SymbolCatalog, error) {
	files, err := util.LoadDirectoryImageFiles(dir)
	if err != nil {
		return nil, errors.Wrap(err, "load symbols")
	}

	c := &SymbolCatalog{symbols: make(map[string]*Raster, len(files))}
	for _, f := range files {
		r, err := Decode(f.Data, scale)
		if err != nil {
			return nil, errors.Wrapf(err, "decode symbol %s", f.Path)
		}
		c.symbols[f.Name] = r.WithRenderingMode(RenderingModeTemplate)
	}
	return c, nil
}

// Names returns the symbol names in sorted order.
func (c *SymbolCatalog) Names() []string {
	if c == nil {
		return nil
	}
	names := make([]string, 0, len(c.symbols))
	for name := range c.symbols {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Lookup returns the symbol stored under name. A nil catalog holds nothing.
func (c *SymbolCatalog) Lookup(name string) (*Raster, bool) {
	if c == nil {
		return nil, false
	}
	r, ok := c.symbols[name]
	return r, ok
}

// Symbol returns the named symbol resized to pointSize logical units wide.
// A pointSize of zero returns the symbol at its stored size.
func (t *Toolkit) Symbol(c *SymbolCatalog, name string, pointSize float64) (*Raster, error) {
	r, ok := c.Lookup(name)
	if !ok {
		return nil, errors.Wrapf(ErrSymbolNotFound, "%q", name)
	}
	if pointSize == 0 {
		return r, nil
	}
	return t.Resize(r, pointSize)
}
