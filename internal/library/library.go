// Package library stores named structures and saved movement logs as
// flat text files under a root directory:
//
//	<root>/structures/<name>.txt
//	<root>/movements/<id>.txt
package library

import (
	"bytes"
	"fmt"
	"io"
	"path/filepath"
	"sort"
	"strings"

	"github.com/ht-932/MeltSortGrow/internal/fsutil"
	"github.com/ht-932/MeltSortGrow/internal/lattice"
	"github.com/ht-932/MeltSortGrow/internal/movement"
	"github.com/ht-932/MeltSortGrow/internal/security"
	"github.com/ht-932/MeltSortGrow/internal/textfmt"
)

const (
	structuresDir = "structures"
	movementsDir  = "movements"
	ext           = ".txt"
)

// Library is a directory of saved structures and movement logs.
type Library struct {
	fs   fsutil.FileSystem
	root string
}

// New returns a library rooted at root on fsys.
func New(fsys fsutil.FileSystem, root string) *Library {
	return &Library{fs: fsys, root: root}
}

// Open returns a library on the real filesystem.
func Open(root string) *Library {
	return New(fsutil.OSFileSystem{}, root)
}

// SaveStructure writes l under name, replacing any previous version.
func (lib *Library) SaveStructure(name string, l *lattice.Lattice) error {
	return lib.write(structuresDir, name, func(w io.Writer) error {
		return textfmt.EncodeLattice(w, l)
	})
}

// LoadStructure reads the structure saved under name.
func (lib *Library) LoadStructure(name string) (*lattice.Lattice, error) {
	var out *lattice.Lattice
	err := lib.read(structuresDir, name, func(r io.Reader) error {
		var err error
		out, err = textfmt.DecodeLattice(r)
		return err
	})
	return out, err
}

// Structures lists saved structure names in order.
func (lib *Library) Structures() ([]string, error) {
	return lib.list(structuresDir)
}

// DeleteStructure removes the structure saved under name.
func (lib *Library) DeleteStructure(name string) error {
	return lib.remove(structuresDir, name)
}

// SaveMovements writes a movement log under id.
func (lib *Library) SaveMovements(id string, moves []movement.Movement) error {
	return lib.write(movementsDir, id, func(w io.Writer) error {
		return textfmt.EncodeMovements(w, moves)
	})
}

// LoadMovements reads the movement log saved under id.
func (lib *Library) LoadMovements(id string) ([]movement.Movement, error) {
	var out []movement.Movement
	err := lib.read(movementsDir, id, func(r io.Reader) error {
		var err error
		out, err = textfmt.DecodeMovements(r)
		return err
	})
	return out, err
}

// Plans lists saved movement log ids in order.
func (lib *Library) Plans() ([]string, error) {
	return lib.list(movementsDir)
}

func (lib *Library) path(dir, name string) (string, error) {
	if err := security.ValidateName(name); err != nil {
		return "", err
	}
	return filepath.Join(lib.root, dir, name+ext), nil
}

func (lib *Library) write(dir, name string, encode func(io.Writer) error) error {
	path, err := lib.path(dir, name)
	if err != nil {
		return err
	}
	var buf bytes.Buffer
	if err := encode(&buf); err != nil {
		return fmt.Errorf("encode %s: %w", name, err)
	}
	if err := lib.fs.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create %s: %w", filepath.Dir(path), err)
	}
	w, err := lib.fs.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if _, err := w.Write(buf.Bytes()); err != nil {
		w.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("close %s: %w", path, err)
	}
	return nil
}

func (lib *Library) read(dir, name string, decode func(io.Reader) error) error {
	path, err := lib.path(dir, name)
	if err != nil {
		return err
	}
	f, err := lib.fs.Open(path)
	if err != nil {
		return fmt.Errorf("open %s: %w", name, err)
	}
	defer f.Close()
	if err := decode(f); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	return nil
}

func (lib *Library) list(dir string) ([]string, error) {
	full := filepath.Join(lib.root, dir)
	if !lib.fs.Exists(full) {
		return nil, nil
	}
	files, err := lib.fs.ReadDir(full)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", full, err)
	}
	var names []string
	for _, f := range files {
		if name, ok := strings.CutSuffix(f, ext); ok && security.ValidateName(name) == nil {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names, nil
}

func (lib *Library) remove(dir, name string) error {
	path, err := lib.path(dir, name)
	if err != nil {
		return err
	}
	if err := lib.fs.Remove(path); err != nil {
		return fmt.Errorf("remove %s: %w", name, err)
	}
	return nil
}
