// find-motion - estimate block motion between grayscale video frames
//  Copyright (C) 2026, The Cacophony Project
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program. If not, see <http://www.gnu.org/licenses/>.

package main

import (
	"go/format"
	"io/ioutil"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSourcesAreFormatted(t *testing.T) {
	filenames, err := filepath.Glob("*.go")
	require.NoError(t, err)
	require.NotEmpty(t, filenames)

	for _, filename := range filenames {
		src, err := ioutil.ReadFile(filename)
		require.NoError(t, err)
		formatted, err := format.Source(src)
		require.NoError(t, err, filename)
		assert.Equal(t, string(formatted), string(src), "%s is not gofmt formatted", filename)
	}
}
