// Package internal holds helpers shared by the examples and commands.
package internal

import (
	"io"

	"github.com/golang/glog"
)

// HandleClose closes closer and logs a failure, for use in defer.
func HandleClose(closer io.Closer) {
	if closer == nil {
		return
	}

	var err = closer.Close()
	if err != nil {
		glog.Warningf("close %T: %v", closer, err)
	}
}
