package localefile

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/jenian/keygrd/internal/analyzer"
	"github.com/jenian/keygrd/internal/config"
	"github.com/jenian/keygrd/internal/logging"
	"github.com/jenian/keygrd/internal/tree"
	"go.uber.org/zap"
)

var (
	// ErrNotFound is returned when a locale file does not exist
	ErrNotFound = errors.New("locale file not found")
	// ErrRootNotObject is returned when a locale document is not an object
	ErrRootNotObject = errors.New("locale root is not an object")
)

// ParseError reports a locale file that is not well-formed
type ParseError struct {
	Path string
	Line int // 0 when the decoder did not report a position
	Err  error
}

func (e *ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("failed to parse %s (line %d): %v", e.Path, e.Line, e.Err)
	}
	return fmt.Sprintf("failed to parse %s: %v", e.Path, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Load reads a whole locale file and parses it into a tree. The file is
// closed before Load returns.
func Load(path string) (*tree.Node, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s: %w", ErrNotFound, path, err)
		}
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	root, err := parse(data, detectFormat(path))
	if err != nil {
		perr := &ParseError{Path: path, Err: err}
		var syntaxErr *json.SyntaxError
		if errors.As(err, &syntaxErr) {
			perr.Line = lineOf(data, syntaxErr.Offset)
		}
		return nil, perr
	}
	if root.Kind() != tree.KindObject {
		return nil, fmt.Errorf("%w: %s holds %s", ErrRootNotObject, path, root.Kind())
	}
	return root, nil
}

// Loader loads the configured locale files relative to a root directory
type Loader struct {
	root    string
	locales []config.LocaleConfig
}

// NewLoader creates a loader for the given locale entries
func NewLoader(root string, locales []config.LocaleConfig) *Loader {
	return &Loader{root: root, locales: locales}
}

// resolvePath makes a configured path absolute against the loader root
func (l *Loader) resolvePath(path string) string {
	if filepath.IsAbs(path) || l.root == "" {
		return path
	}
	return filepath.Join(l.root, path)
}

// LoadAll loads every locale in configured order. The first failure aborts
// the whole load: a report needs every tree.
func (l *Loader) LoadAll() ([]analyzer.Locale, error) {
	locales := make([]analyzer.Locale, 0, len(l.locales))
	for _, lc := range l.locales {
		path := l.resolvePath(lc.Path)
		root, err := Load(path)
		if err != nil {
			return nil, err
		}
		logging.Debug("loaded locale",
			zap.String("tag", lc.Tag),
			zap.String("path", path),
			zap.Int("top_level_keys", root.Len()),
		)
		locales = append(locales, analyzer.Locale{
			Tag:   lc.Tag,
			Label: lc.Label(),
			Path:  lc.Path,
			Tree:  root,
		})
	}
	return locales, nil
}
