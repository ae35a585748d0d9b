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

// Package getmprep prepares input files for GETM fjord model scenarios.
// It reads a scenario description from an XML configuration file and
// produces stratification profile files and smoothed bathymetry grids.
package getmprep

// Version gives the version number of this version of GETMprep.
const Version = "1.1.0"
