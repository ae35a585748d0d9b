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
	"io/ioutil"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ctessum/sparse"
	"github.com/fjordmod/getmprep"
)

func TestGetInt(t *testing.T) {
	Cfg.Set("testInt", "3")
	defer Cfg.Set("testInt", nil)
	i, err := GetInt("testInt", Cfg)
	if err != nil {
		t.Fatal(err)
	}
	if i != 3 {
		t.Errorf("have %d, want 3", i)
	}
	Cfg.Set("testInt", "three")
	if _, err := GetInt("testInt", Cfg); err == nil {
		t.Error("non-numeric value must return an error")
	}
}

func TestCheckOutputFile(t *testing.T) {
	if _, err := checkOutputFile(""); err == nil {
		t.Error("empty output file must return an error")
	}
	if _, err := checkOutputFile(filepath.Join("no", "such", "dir", "out.txt")); err == nil {
		t.Error("missing output directory must return an error")
	}
}

func TestStratificationCmd(t *testing.T) {
	dir, err := ioutil.TempDir("", "getmpreputil")
	if err != nil {
		t.Fatal(err)
	}
	defer os.RemoveAll(dir)

	scenario := filepath.Join(dir, "configuration.xml")
	err = ioutil.WriteFile(scenario, []byte(`<scenario>
		<fjord><stratification>
			<level z="0" S="5" T="-1.5"/>
			<level z="-600" S="34.5" T="0.5"/>
		</stratification></fjord>
	</scenario>`), 0644)
	if err != nil {
		t.Fatal(err)
	}
	saltPath := filepath.Join(dir, "salt_profile.txt")
	tempPath := filepath.Join(dir, "temp_profile.txt")

	Root.SetArgs([]string{"stratification",
		"--ScenarioFile", scenario,
		"--SaltProfileFile", saltPath,
		"--TempProfileFile", tempPath,
	})
	if err := Root.Execute(); err != nil {
		t.Fatal(err)
	}

	salt, err := ioutil.ReadFile(saltPath)
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(string(salt), "\n")
	if lines[0] != "2" {
		t.Errorf("have level count %q, want \"2\"", lines[0])
	}
	if _, err := os.Stat(tempPath); err != nil {
		t.Error(err)
	}
}

func TestSmoothtopoCmd(t *testing.T) {
	dir, err := ioutil.TempDir("", "getmpreputil")
	if err != nil {
		t.Fatal(err)
	}
	defer os.RemoveAll(dir)

	in := filepath.Join(dir, "topo.nc")
	out := filepath.Join(dir, "topo_smoothed.nc")
	data := sparse.ZerosDense(3, 3)
	for i := range data.Elements {
		data.Elements[i] = -float64(i + 1)
	}
	data.Set(math.NaN(), 0, 0)
	if err := getmprep.WriteTopo(in, "bathymetry", data); err != nil {
		t.Fatal(err)
	}

	Root.SetArgs([]string{"smoothtopo",
		"--Topo.InputFile", in,
		"--Topo.OutputFile", out,
		"--Topo.SmoothPmI", "1",
		"--Topo.SmoothPmJ", "1",
	})
	if err := Root.Execute(); err != nil {
		t.Fatal(err)
	}

	smoothed, err := getmprep.ReadTopo(out, "bathymetry")
	if err != nil {
		t.Fatal(err)
	}
	want, err := getmprep.Smooth(data, 1, 1)
	if err != nil {
		t.Fatal(err)
	}
	for i, v := range smoothed.Elements {
		w := want.Elements[i]
		if math.IsNaN(v) != math.IsNaN(w) {
			t.Errorf("element %d: have %g, want %g", i, v, w)
		} else if !math.IsNaN(v) && math.Abs(v-w) > 1.e-12 {
			t.Errorf("element %d: have %g, want %g", i, v, w)
		}
	}
}
