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

package getmpreputil

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/lnashier/viper"
	"github.com/spf13/cast"
)

// checkOutputFile makes sure that an output file is specified and that
// its directory exists.
func checkOutputFile(f string) (string, error) {
	if f == "" {
		return "", fmt.Errorf("getmprep: you need to specify an output file configuration variable")
	}
	outdir := filepath.Dir(f)
	if _, err := os.Stat(outdir); err != nil {
		return f, fmt.Errorf("getmprep: the output file directory doesn't exist: %v", err)
	}
	return f, nil
}

// GetInt returns an integer from a viper configuration, converting from
// a string version of the integer if necessary (this happens when the
// value is set by a command-line flag).
func GetInt(varName string, cfg *viper.Viper) (int, error) {
	i, err := cast.ToIntE(cfg.Get(varName))
	if err != nil {
		return 0, fmt.Errorf("getmprep: configuration variable %s: %v", varName, err)
	}
	return i, nil
}
