// Copyright 2026 The Scriggo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package arc

import (
	"errors"
	"io/fs"
	"os"
	"strings"
)

// Store is implemented by the template stores. The included templates, and
// the page templates of a site, are read from a store.
type Store interface {
	// Read returns the source of the named template. If the template does
	// not exist, it returns a *NotFoundError.
	Read(name string) (string, error)
}

// FSStore is a Store that reads the templates from a file system. Template
// names are slash-separated paths, a leading slash is ignored.
type FSStore struct {
	FS fs.FS
}

// DirStore returns a Store that reads the templates from the directory dir.
func DirStore(dir string) FSStore {
	return FSStore{FS: os.DirFS(dir)}
}

// Read reads the named template.
func (s FSStore) Read(name string) (string, error) {
	path := strings.TrimPrefix(name, "/")
	if !fs.ValidPath(path) {
		return "", &fs.PathError{Op: "read", Path: name, Err: fs.ErrInvalid}
	}
	data, err := fs.ReadFile(s.FS, path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", &NotFoundError{Name: name}
		}
		return "", err
	}
	return string(data), nil
}

// MapStore is a Store that reads the templates from a map.
type MapStore map[string]string

// Read reads the named template.
func (s MapStore) Read(name string) (string, error) {
	src, ok := s[name]
	if !ok {
		return "", &NotFoundError{Name: name}
	}
	return src, nil
}
