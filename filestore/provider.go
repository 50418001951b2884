// drive-like file store over a local directory tree //
// folder ids are opaque and map to directories below the configured root //
package filestore

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

type Provider struct {
	Root string
}

type Folder struct {
	id   string
	path string
	name string
}

type ExistingFile struct {
	Name string
	Size int64
}

// folder ids come from an external webhook, never trust them as paths
func validFolderID(id string) bool {
	if strings.TrimSpace(id) == "" {
		return false
	}
	if strings.ContainsAny(id, `/\`) {
		return false
	}
	if id == "." || id == ".." {
		return false
	}
	return true
}

func (p *Provider) FolderByID(id string) (*Folder, error) {
	if !validFolderID(id) {
		return nil, fmt.Errorf("invalid folder id '%s'", id)
	}
	path := filepath.Join(p.Root, id)
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return nil, errors.New("folder id refers to a file")
	}
	return &Folder{id: id, path: path, name: info.Name()}, nil
}

func (f *Folder) ID() string {
	return f.id
}

func (f *Folder) Name() string {
	return f.name
}

// FilesByName returns the files in the folder matching name exactly
func (f *Folder) FilesByName(name string) ([]ExistingFile, error) {
	entries, err := os.ReadDir(f.path)
	if err != nil {
		return nil, err
	}
	var files []ExistingFile
	for _, entry := range entries {
		if entry.IsDir() || entry.Name() != name {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			return nil, err
		}
		files = append(files, ExistingFile{Name: entry.Name(), Size: info.Size()})
	}
	return files, nil
}

func (f *Folder) CreateFile(name string, content []byte) error {
	return os.WriteFile(filepath.Join(f.path, name), content, 0644)
}
