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
	"encoding/xml"
	"fmt"
	"io/ioutil"
	"log"
	"path/filepath"
	"strings"
)

// Config holds the scenario description read from a GETM configuration
// XML file. The root element of the file must be named "scenario".
type Config struct {
	// BaseDir is the directory holding the model subfolder that file
	// names from the configuration are resolved against. It defaults
	// to the current directory.
	BaseDir string

	root *Element
}

// Element is a single node of the scenario document.
type Element struct {
	XMLName  xml.Name
	Attrs    []xml.Attr `xml:",any,attr"`
	Chardata string     `xml:",chardata"`
	Children []Element  `xml:",any"`
}

// Attr returns the value of the named attribute and whether the
// attribute is present.
func (e *Element) Attr(name string) (string, bool) {
	for _, a := range e.Attrs {
		if a.Name.Local == name {
			return a.Value, true
		}
	}
	return "", false
}

// find walks the slash-separated element path below e, returning the
// first match at each step, or nil if any step is missing.
func (e *Element) find(path string) *Element {
	cur := e
	for _, part := range strings.Split(path, "/") {
		if part == "" {
			continue
		}
		var next *Element
		for k := range cur.Children {
			if cur.Children[k].XMLName.Local == part {
				next = &cur.Children[k]
				break
			}
		}
		if next == nil {
			return nil
		}
		cur = next
	}
	return cur
}

// LoadConfig reads the scenario configuration from the XML file at path.
func LoadConfig(path string) (*Config, error) {
	log.Printf("Loading settings from %q.", path)
	b, err := ioutil.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("getmprep: reading configuration file: %v", err)
	}
	root := new(Element)
	if err := xml.Unmarshal(b, root); err != nil {
		return nil, fmt.Errorf("getmprep: parsing configuration file %s: %v", path, err)
	}
	if root.XMLName.Local != "scenario" {
		return nil, fmt.Errorf("getmprep: root element of %s is %q, not \"scenario\"",
			path, root.XMLName.Local)
	}
	return &Config{BaseDir: ".", root: root}, nil
}

// Element returns the element at the slash-separated path below the
// scenario root, for example "fjord/stratification".
func (c *Config) Element(path string) (*Element, error) {
	e := c.root.find(path)
	if e == nil {
		return nil, fmt.Errorf("getmprep: no variable found at path %q", path)
	}
	return e, nil
}

// Text returns the text content of the element at path, with
// surrounding white space removed.
func (c *Config) Text(path string) (string, error) {
	e, err := c.Element(path)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(e.Chardata), nil
}

// FilePath returns the file name found at path, resolved against the
// model subfolder of BaseDir.
func (c *Config) FilePath(path string) (string, error) {
	name, err := c.Text(path)
	if err != nil {
		return "", err
	}
	return filepath.Join(c.BaseDir, "model", name), nil
}
