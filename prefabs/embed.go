package prefabs

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"
)

//go:embed *.yaml scripts/*.tengo
var embedded embed.FS

// Source resolves prefab and script names against an override directory and
// then an embedded tree. Files under Dir win, so hot-reloaded edits are seen
// by the next load.
type Source struct {
	Dir      string
	Embedded fs.FS
}

// Default reads ./prefabs over the copies compiled into the binary.
var Default = &Source{Dir: "prefabs", Embedded: embedded}

func (s *Source) Read(name string) ([]byte, error) {
	if s.Dir != "" {
		data, err := fs.ReadFile(os.DirFS(s.Dir), name)
		if err == nil {
			return data, nil
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("override %s: %w", name, err)
		}
	}
	if s.Embedded == nil {
		return nil, &fs.PathError{Op: "open", Path: name, Err: fs.ErrNotExist}
	}
	return fs.ReadFile(s.Embedded, name)
}

// Load reads a yaml prefab. Names may carry a leading "prefabs/".
func Load(name string) ([]byte, error) {
	return Default.Read(prefabPath(name))
}

// LoadScript reads a tengo script from scripts/, with or without the
// "prefabs/" and "scripts/" prefixes.
func LoadScript(name string) ([]byte, error) {
	return Default.Read(scriptPath(name))
}

func prefabPath(name string) string {
	p := path.Clean(filepath.ToSlash(name))
	return strings.TrimPrefix(p, "prefabs/")
}

func scriptPath(name string) string {
	return "scripts/" + strings.TrimPrefix(prefabPath(name), "scripts/")
}
