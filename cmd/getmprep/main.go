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

// Command getmprep is a command-line interface for preparing the input
// files of a GETM fjord scenario.
package main

import (
	"log"
	"os"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/fjordmod/getmprep/getmpreputil"
)

var logger *logrus.Logger

func init() {
	logger = logrus.StandardLogger()
	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: time.RFC3339,
		DisableSorting:  true,
	})
	log.SetOutput(logger.Writer())
}

func main() {
	if err := getmpreputil.Root.Execute(); err != nil {
		logger.WithError(err).Error("command failed")
		os.Exit(1)
	}
}
