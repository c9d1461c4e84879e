//go:build !unix

package web

import "os"

var reloadSignals []os.Signal
