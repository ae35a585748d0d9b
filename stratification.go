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
	"bufio"
	"fmt"
	"log"
	"os"
	"sort"
	"strconv"
)

// Level is one layer of the initial stratification: salinity S [g/kg]
// and temperature T [°C] at depth z [m, negative below the surface].
type Level struct {
	Z, S, T float64
}

// Stratification is a list of stratification levels ordered from the
// surface downward (decreasing z). Between the levels, salinity and
// temperature are linearly interpolated.
type Stratification []Level

// ReadStratification extracts the stratification levels from the
// "fjord/stratification" element of the scenario configuration. Every
// child element must be named "level" and carry the float attributes
// "z", "S", and "T".
func ReadStratification(cfg *Config) (Stratification, error) {
	el, err := cfg.Element("fjord/stratification")
	if err != nil {
		return nil, err
	}
	s := make(Stratification, 0, len(el.Children))
	for k := range el.Children {
		child := &el.Children[k]
		if child.XMLName.Local != "level" {
			return nil, fmt.Errorf("getmprep: all elements in stratification must be named \"level\", not %q",
				child.XMLName.Local)
		}
		var lev Level
		for _, v := range []struct {
			name string
			dst  *float64
		}{{"z", &lev.Z}, {"S", &lev.S}, {"T", &lev.T}} {
			a, ok := child.Attr(v.name)
			if !ok {
				return nil, fmt.Errorf("getmprep: stratification level %d is missing attribute %q", k, v.name)
			}
			*v.dst, err = strconv.ParseFloat(a, 64)
			if err != nil {
				return nil, fmt.Errorf("getmprep: stratification level %d, attribute %q: %v", k, v.name, err)
			}
		}
		s = append(s, lev)
	}
	sort.Slice(s, func(a, b int) bool { return s[a].Z > s[b].Z })
	return s, nil
}

// Interp returns the salinity and temperature at depth z, linearly
// interpolated between the stratification levels and held constant
// above the first and below the last level.
func (s Stratification) Interp(z float64) (salinity, temperature float64) {
	if z >= s[0].Z {
		return s[0].S, s[0].T
	}
	for k := 0; k < len(s)-1; k++ {
		lo := s[k+1]
		if z >= lo.Z {
			hi := s[k]
			f := (z - lo.Z) / (hi.Z - lo.Z)
			return lo.S + f*(hi.S-lo.S), lo.T + f*(hi.T-lo.T)
		}
	}
	last := s[len(s)-1]
	return last.S, last.T
}

// WriteSalinityProfile writes the salinity profile to the text file at
// path in the format read by GETM: the number of levels on the first
// line, then one "<z> <S>" pair per level.
func (s Stratification) WriteSalinityProfile(path string) error {
	err := s.writeProfile(path, func(l Level) string {
		return fmt.Sprintf("%6v %3v\n", l.Z, l.S)
	})
	if err != nil {
		return err
	}
	log.Printf("Saved initial salinity stratification as %q.", path)
	return nil
}

// WriteTemperatureProfile writes the temperature profile to the text
// file at path in the same format as WriteSalinityProfile.
func (s Stratification) WriteTemperatureProfile(path string) error {
	err := s.writeProfile(path, func(l Level) string {
		return fmt.Sprintf("%6v %5v\n", l.Z, l.T)
	})
	if err != nil {
		return err
	}
	log.Printf("Saved initial temperature stratification as %q.", path)
	return nil
}

// WriteProfiles writes both initial profile files.
func (s Stratification) WriteProfiles(saltPath, tempPath string) error {
	if err := s.WriteSalinityProfile(saltPath); err != nil {
		return err
	}
	return s.WriteTemperatureProfile(tempPath)
}

func (s Stratification) writeProfile(path string, line func(Level) string) error {
	if len(s) == 0 {
		return fmt.Errorf("getmprep: stratification has no levels")
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("getmprep: writing profile: %v", err)
	}
	w := bufio.NewWriter(f)
	fmt.Fprintf(w, "%d\n", len(s))
	for _, l := range s {
		w.WriteString(line(l))
	}
	if err := w.Flush(); err != nil {
		f.Close()
		return fmt.Errorf("getmprep: writing profile %s: %v", path, err)
	}
	return f.Close()
}
