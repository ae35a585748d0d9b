/*
Copyright © 2024 the GETMprep authors.
This file is part of GETMprep.

GETMprep is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

GETMprep is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with GETMprep.  If not, see <http://www.gnu.org/licenses/>.
*/

package getmprep

import (
	"fmt"
	"math"

	"github.com/ctessum/sparse"
)

// Smooth returns a copy of data smoothed with a 2D running average of size
// (2*pmI+1) × (2*pmJ+1). The dimensions of data are considered to be (i, j).
//
// Cells in data that are NaN before the smoothing stay NaN and are
// ignored (masked) for the averaging. For example, to smooth the data by
// averaging every 3×3 square, use pmI = 1 and pmJ = 1, i.e. taking the
// mean over plus and minus (pm) one cell in each direction. Near the
// boundaries the mean is taken over the cells that are actually present.
//
// If pmI and pmJ are both zero, an unsmoothed copy of data is returned.
func Smooth(data *sparse.DenseArray, pmI, pmJ int) (*sparse.DenseArray, error) {
	if err := checkSmoothArgs(data, pmI, pmJ); err != nil {
		return nil, err
	}
	if pmI == 0 && pmJ == 0 {
		return data.Copy(), nil
	}
	out := sparse.ZerosDense(data.Shape...)
	smooth(data, out, pmI, pmJ)
	return out, nil
}

// SmoothInPlace is the same as Smooth except that the smoothed values
// replace the values in data instead of being returned in a new array.
func SmoothInPlace(data *sparse.DenseArray, pmI, pmJ int) error {
	if err := checkSmoothArgs(data, pmI, pmJ); err != nil {
		return err
	}
	if pmI == 0 && pmJ == 0 {
		return nil
	}
	smooth(data, data, pmI, pmJ)
	return nil
}

func checkSmoothArgs(data *sparse.DenseArray, pmI, pmJ int) error {
	if data == nil {
		return fmt.Errorf("getmprep: smooth: data is nil")
	}
	if n := len(data.Shape); n != 2 {
		return fmt.Errorf("getmprep: smooth: data must have 2 dimensions but has %d", n)
	}
	if data.Shape[0] < 1 || data.Shape[1] < 1 {
		return fmt.Errorf("getmprep: smooth: data has empty dimension (shape %v)", data.Shape)
	}
	if pmI < 0 {
		return fmt.Errorf("getmprep: smooth: negative half-window size pmI (%d)", pmI)
	}
	if pmJ < 0 {
		return fmt.Errorf("getmprep: smooth: negative half-window size pmJ (%d)", pmJ)
	}
	return nil
}

// smooth writes the running average of src into dst. src and dst may be
// the same array: all window sums are taken from an extended copy of src
// that is made before any cell of dst is written.
func smooth(src, dst *sparse.DenseArray, pmI, pmJ int) {
	ni, nj := src.Shape[0], src.Shape[1]

	// Make the array larger by putting NaNs around it, so that the
	// averaging also works near the boundaries.
	nje := nj + 2*pmJ
	ext := sparse.ZerosDense(ni+2*pmI, nje)
	for i := range ext.Elements {
		ext.Elements[i] = math.NaN()
	}
	for i := 0; i < ni; i++ {
		copy(ext.Elements[(i+pmI)*nje+pmJ:(i+pmI)*nje+pmJ+nj],
			src.Elements[i*nj:(i+1)*nj])
	}
	missing := make([]bool, len(ext.Elements))
	for i, v := range ext.Elements {
		missing[i] = math.IsNaN(v)
	}

	for i := 0; i < ni; i++ {
		for j := 0; j < nj; j++ {
			if missing[(i+pmI)*nje+(j+pmJ)] {
				dst.Elements[i*nj+j] = math.NaN()
				continue
			}
			dst.Elements[i*nj+j] = maskedMean(ext, missing,
				i, i+2*pmI, j, j+2*pmJ)
		}
	}
}

// maskedMean averages the unmasked values of ext in the window
// [i0, i1] × [j0, j1] (inclusive bounds). If every cell in the window is
// masked, the result is NaN.
func maskedMean(ext *sparse.DenseArray, missing []bool, i0, i1, j0, j1 int) float64 {
	nj := ext.Shape[1]
	var sum float64
	var n int
	for i := i0; i <= i1; i++ {
		for j := j0; j <= j1; j++ {
			if missing[i*nj+j] {
				continue
			}
			sum += ext.Elements[i*nj+j]
			n++
		}
	}
	if n == 0 {
		return math.NaN()
	}
	return sum / float64(n)
}
