// Package loader reads ledger files into declarations.
//
// A ledger is a YAML sequence of items. The first key of each item tells
// its kind:
//
//	- entry: 2021-Mar-01
//	  val: -500.00
//	  type: Home
//	  span: Month<Curr> 1
//	  tag: "Rent"
//
//	- template: rent
//	  params: [amount]
//	  defaults: {extra: 0.00}
//	  val: -(amount + extra)
//	  Home:
//	  Month:
//	  tag: "Rent {@Month}"
//
//	- instance: 2021-Apr-01
//	  use: rent
//	  args: [500.00]
//
//	- import: 2021/food.yaml
//
// Keys starting with an uppercase letter and without a value are bare
// keywords: a category or a default span.
package loader

import (
	"io/fs"
	"path"
	"time"

	"billig/internal/ast"
	"billig/internal/diag"
	"billig/internal/log"
)

// Loader reads ledger files and their imports from a file system.
type Loader struct {
	fsys    fs.FS
	sources *diag.Sources
	logger  *log.Logger
	loaded  map[string]bool
}

// New creates a loader. The text of every file read is kept in sources so
// that diagnostics can quote it.
func New(fsys fs.FS, sources *diag.Sources, logger *log.Logger) *Loader {
	if logger == nil {
		logger = log.Discard()
	}
	return &Loader{
		fsys:    fsys,
		sources: sources,
		logger:  logger.WithComponent(log.ComponentLoader),
		loaded:  make(map[string]bool),
	}
}

// Load reads name and everything it imports. Imported items are inlined
// right after the import that names them, so that templates are known
// before anything that follows. Each file is read at most once.
func (l *Loader) Load(rec *diag.Record, name string) []ast.Item {
	return l.load(rec, path.Clean(name), nil)
}

func (l *Loader) load(rec *diag.Record, name string, importer *ast.ImportDecl) []ast.Item {
	if l.loaded[name] {
		l.logger.Debug("File already loaded", log.FieldFile, name)
		return nil
	}
	l.loaded[name] = true

	start := time.Now()
	data, err := fs.ReadFile(l.fsys, name)
	if err != nil {
		e := diag.New("Import failed")
		if importer != nil {
			e.Span(importer.At, "imported here")
		}
		e.Text(err.Error()).
			Hint("check that the file exists and is readable").
			Register(rec)
		l.logger.Error("Failed to read ledger", log.FieldFile, name, log.FieldError, err)
		return nil
	}
	if l.sources != nil {
		l.sources.Add(name, data)
	}

	parsed := Parse(rec, name, data)
	var items []ast.Item
	for _, item := range parsed {
		items = append(items, item)
		if imp, ok := item.(*ast.ImportDecl); ok {
			target := path.Join(path.Dir(name), imp.Path)
			l.logger.Debug("Following import", log.FieldOperation, log.OpImport, log.FieldFile, target)
			items = append(items, l.load(rec, target, imp)...)
		}
	}
	l.logger.Info("Ledger file loaded",
		log.FieldFile, name,
		log.FieldItems, len(parsed),
		log.FieldDuration, time.Since(start).Milliseconds(),
	)
	return items
}

// Files is the number of files read so far.
func (l *Loader) Files() int { return len(l.loaded) }
