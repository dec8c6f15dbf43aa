package logging

import (
	"io"
	"log"
	"os"
)

var (
	InfoLog = log.New(os.Stdout, "(info) ", log.Lshortfile)
	WarnLog = log.New(os.Stdout, "(warn) ", log.Lshortfile)
	ErrLog  = log.New(os.Stderr, "(err) ", log.Lshortfile)
)

// SetOutput redirects all loggers to w
func SetOutput(w io.Writer) {
	InfoLog.SetOutput(w)
	WarnLog.SetOutput(w)
	ErrLog.SetOutput(w)
}
