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
	"log"
	"math"
	"os"

	"github.com/ctessum/cdf"
	"github.com/ctessum/sparse"
	"gonum.org/v1/gonum/floats"
)

// topoFillValue marks land cells in bathymetry files written by this
// package.
const topoFillValue = -9999.

// ReadTopo reads the 2D variable varName from the NetCDF file at path.
// Cells equal to the variable's _FillValue (or missing_value) attribute
// are set to NaN so that they are masked during smoothing.
func ReadTopo(path, varName string) (*sparse.DenseArray, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("getmprep: reading topography: %v", err)
	}
	defer f.Close()
	ff, err := cdf.Open(f)
	if err != nil {
		return nil, fmt.Errorf("getmprep: reading topography %s: %v", path, err)
	}
	dims := ff.Header.Lengths(varName)
	if len(dims) == 0 {
		return nil, fmt.Errorf("getmprep: reading topography: variable %v not in file %s", varName, path)
	}
	r := ff.Reader(varName, nil, nil)
	buf := r.Zero(-1)
	if _, err := r.Read(buf); err != nil {
		return nil, fmt.Errorf("getmprep: reading topography variable %s: %v", varName, err)
	}
	data := sparse.ZerosDense(dims...)
	switch b := buf.(type) {
	case []float64:
		copy(data.Elements, b)
	case []float32:
		for i, v := range b {
			data.Elements[i] = float64(v)
		}
	case []int32:
		for i, v := range b {
			data.Elements[i] = float64(v)
		}
	default:
		return nil, fmt.Errorf("getmprep: reading topography variable %s: unsupported data type %T", varName, buf)
	}
	if fill, ok := fillValue(ff.Header, varName); ok {
		for i, v := range data.Elements {
			if v == fill {
				data.Elements[i] = math.NaN()
			}
		}
	}
	return data, nil
}

// fillValue returns the missing-data marker of variable v, checking the
// _FillValue attribute first and the older missing_value convention
// second.
func fillValue(h *cdf.Header, v string) (float64, bool) {
	for _, att := range []string{"_FillValue", "missing_value"} {
		if f, ok := attrFloat(h.GetAttribute(v, att)); ok {
			return f, true
		}
	}
	return 0, false
}

func attrFloat(attr interface{}) (float64, bool) {
	switch a := attr.(type) {
	case []float64:
		if len(a) > 0 {
			return a[0], true
		}
	case []float32:
		if len(a) > 0 {
			return float64(a[0]), true
		}
	case []int32:
		if len(a) > 0 {
			return float64(a[0]), true
		}
	}
	return 0, false
}

// WriteTopo writes the 2D array data as variable varName to a new
// NetCDF file at path. NaN cells are stored as the _FillValue.
func WriteTopo(path, varName string, data *sparse.DenseArray) error {
	if n := len(data.Shape); n != 2 {
		return fmt.Errorf("getmprep: writing topography: data must have 2 dimensions but has %d", n)
	}
	h := cdf.NewHeader([]string{"y", "x"}, []int{data.Shape[0], data.Shape[1]})
	h.AddAttribute("", "comment", "Topography prepared for GETM")
	h.AddVariable(varName, []string{"y", "x"}, []float64{0})
	h.AddAttribute(varName, "units", "m")
	h.AddAttribute(varName, "_FillValue", []float64{topoFillValue})
	h.Define()

	buf := make([]float64, len(data.Elements))
	for i, v := range data.Elements {
		if math.IsNaN(v) {
			buf[i] = topoFillValue
		} else {
			buf[i] = v
		}
	}

	ff, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("getmprep: writing topography: %v", err)
	}
	f, err := cdf.Create(ff, h) // writes the header to ff
	if err != nil {
		ff.Close()
		return fmt.Errorf("getmprep: writing topography %s: %v", path, err)
	}
	end := f.Header.Lengths(varName)
	start := make([]int, len(end))
	w := f.Writer(varName, start, end)
	if _, err := w.Write(buf); err != nil {
		ff.Close()
		return fmt.Errorf("getmprep: writing topography variable %s: %v", varName, err)
	}
	if err := cdf.UpdateNumRecs(ff); err != nil {
		ff.Close()
		return fmt.Errorf("getmprep: writing topography %s: %v", path, err)
	}
	return ff.Close()
}

// SmoothTopo reads variable varName from the NetCDF file in, smooths it
// with half-window sizes pmI and pmJ while keeping land cells masked,
// and writes the result to the NetCDF file out.
func SmoothTopo(in, out, varName string, pmI, pmJ int) error {
	log.Println("Reading topography...")
	data, err := ReadTopo(in, varName)
	if err != nil {
		return err
	}
	valid := make([]float64, 0, len(data.Elements))
	for _, v := range data.Elements {
		if !math.IsNaN(v) {
			valid = append(valid, v)
		}
	}
	if len(valid) == 0 {
		return fmt.Errorf("getmprep: topography variable %s in %s has no valid cells", varName, in)
	}
	log.Printf("Smoothing %d of %d cells (depth range %g to %g m) with a %d×%d window.",
		len(valid), len(data.Elements), floats.Min(valid), floats.Max(valid),
		2*pmI+1, 2*pmJ+1)
	if err := SmoothInPlace(data, pmI, pmJ); err != nil {
		return err
	}
	log.Printf("Saving smoothed topography as %q.", out)
	return WriteTopo(out, varName, data)
}
