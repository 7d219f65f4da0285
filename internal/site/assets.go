// Copyright 2026 The Scriggo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package site

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/natefinch/atomic"
)

// copyAssets copies the assets directory to the output directory and
// returns the number of copied files.
func (b *Builder) copyAssets(ctx context.Context) (int, error) {
	src := filepath.Join(b.appDir, AssetsDir)
	dst := filepath.Join(b.outDir, AssetsDir)
	st, err := os.Stat(src)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return 0, nil
		}
		return 0, err
	}
	if !st.IsDir() {
		return 0, nil
	}
	n := 0
	err = filepath.WalkDir(src, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		rel, err := filepath.Rel(src, path)
		if err != nil {
			return err
		}
		target := filepath.Join(dst, rel)
		if d.IsDir() {
			return os.MkdirAll(target, 0755)
		}
		if !d.Type().IsRegular() {
			return nil
		}
		err = copyFile(target, path)
		if err == nil {
			n++
		}
		return err
	})
	if err != nil {
		return 0, err
	}
	b.log.Info("copied assets", "dir", dst, "files", n)
	return n, nil
}

// copyFile atomically copies the file src to dst.
func copyFile(dst, src string) error {
	fi, err := os.Open(src)
	if err != nil {
		return err
	}
	defer fi.Close()
	return atomic.WriteFile(dst, fi)
}
