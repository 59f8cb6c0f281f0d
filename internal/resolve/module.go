package resolve

import (
	"fmt"
	"path/filepath"

	"github.com/fablang/fabc/internal/ast"
)

// ExportMap is the set of top-level names a module exposes, keyed by name.
// Every caller that resolves the same module path receives the identical
// *ExportMap pointer — the cache is pointer-stable so two import sites of
// the same module can cheaply compare provenance (spec.md §5 "module
// cache").
type ExportMap struct {
	Path    string
	Symbols map[string]ast.Statement
	Cyclic  bool // true when this map was synthesized to break an import cycle
}

// ModuleLoader abstracts reading a `.fab` source file; production code
// backs it with os.ReadFile, tests back it with an in-memory map.
type ModuleLoader func(absPath string) (string, error)

// ModuleCache resolves `.fab` imports relative to a base directory,
// caching parsed+resolved modules by absolute path and detecting import
// cycles via an in-progress set.
type ModuleCache struct {
	baseDir     string
	load        ModuleLoader
	cache       map[string]*ExportMap
	inProgress  map[string]bool
	parseFn     func(src string) (*ast.Program, error)
	cyclicPaths []string
}

func NewModuleCache(baseDir string, load ModuleLoader, parseFn func(string) (*ast.Program, error)) *ModuleCache {
	return &ModuleCache{
		baseDir:    baseDir,
		load:       load,
		cache:      make(map[string]*ExportMap),
		inProgress: make(map[string]bool),
		parseFn:    parseFn,
	}
}

// CyclicPaths lists every absolute module path where a cycle was broken
// during resolution, in detection order. TS/Python emission tolerates the
// resulting empty export map silently; cpp emission consults this list to
// promote the same condition to an Emission diagnostic (Open Question c).
func (mc *ModuleCache) CyclicPaths() []string { return mc.cyclicPaths }

// Resolve loads and parses the module at relPath (relative to fromDir),
// returning its ExportMap. A cycle — relPath transitively importing back to
// a module currently being resolved — yields an empty, Cyclic-tagged
// ExportMap rather than recursing forever or failing the whole build; it is
// up to the caller (or a stricter target's generator) to decide whether that
// deserves a diagnostic.
func (mc *ModuleCache) Resolve(fromDir, relPath string) (*ExportMap, error) {
	abs := filepath.Clean(filepath.Join(fromDir, relPath))
	if cached, ok := mc.cache[abs]; ok {
		return cached, nil
	}
	if mc.inProgress[abs] {
		mc.cyclicPaths = append(mc.cyclicPaths, abs)
		return &ExportMap{Path: abs, Symbols: map[string]ast.Statement{}, Cyclic: true}, nil
	}
	mc.inProgress[abs] = true
	defer delete(mc.inProgress, abs)

	src, err := mc.load(abs)
	if err != nil {
		return nil, fmt.Errorf("reading module %s: %w", abs, err)
	}
	prog, err := mc.parseFn(src)
	if err != nil {
		return nil, fmt.Errorf("parsing module %s: %w", abs, err)
	}

	exports := &ExportMap{Path: abs, Symbols: make(map[string]ast.Statement)}
	for _, stmt := range prog.Body {
		switch d := stmt.(type) {
		case *ast.FunctionDecl:
			exports.Symbols[d.Name] = d
		case *ast.StructDecl:
			exports.Symbols[d.Name] = d
		case *ast.InterfaceDecl:
			exports.Symbols[d.Name] = d
		case *ast.EnumDecl:
			exports.Symbols[d.Name] = d
		case *ast.DiscretioDecl:
			exports.Symbols[d.Name] = d
		case *ast.TypeAliasDecl:
			exports.Symbols[d.Name] = d
		case *ast.VarDecl:
			exports.Symbols[d.Name] = d
		case *ast.ImportDecl:
			if _, err := mc.Resolve(filepath.Dir(abs), d.Source); err != nil {
				return nil, err
			}
		}
	}

	mc.cache[abs] = exports
	return exports, nil
}
