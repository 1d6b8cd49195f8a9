package logging

import (
	"io"

	"go.uber.org/multierr"
)

// CombinedWriter writes to every writer and keeps going past failures.
type CombinedWriter struct {
	Writers []io.Writer
}

func NewCombinedWriter(writers ...io.Writer) *CombinedWriter {
	cw := &CombinedWriter{}
	cw.Writers = append(cw.Writers, writers...)
	return cw
}

func (cw *CombinedWriter) Write(p []byte) (int, error) {
	var err error
	wrote := false
	for _, w := range cw.Writers {
		if _, werr := w.Write(p); werr != nil {
			err = multierr.Append(err, werr)
			continue
		}
		wrote = true
	}
	if !wrote && len(cw.Writers) > 0 {
		return 0, err
	}
	return len(p), err
}
