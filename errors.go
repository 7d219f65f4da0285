// Copyright 2026 The Scriggo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package arc

import (
	"io/fs"
	"strconv"

	"github.com/pinealpha/arc/internal/compiler"
)

// NotFoundError is returned by the stores when a template does not exist.
// It satisfies errors.Is(err, fs.ErrNotExist).
type NotFoundError struct {
	Name string // name of the template.
}

// Error returns a string representation of the error.
func (err *NotFoundError) Error() string {
	return "template " + strconv.Quote(err.Name) + " does not exist"
}

// Is reports whether target is fs.ErrNotExist.
func (err *NotFoundError) Is(target error) bool {
	return target == fs.ErrNotExist
}

// IncludeError is returned when an included template can not be read. Its
// Err field is the error returned by the store, usually a *NotFoundError.
type IncludeError = compiler.IncludeError

// RecursionLimitError is returned when the include statements are nested
// deeper than Options.MaxIncludeDepth, as happens with a template that
// includes itself.
type RecursionLimitError = compiler.RecursionLimitError
