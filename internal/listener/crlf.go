package listener

import (
	"bytes"
	"io"
)

// lineEndings adapts a network connection to the session layer's plain-\n
// convention: reads are normalized to \n, writes are expanded to \r\n for
// clients that expect CRLF.
type lineEndings struct {
	rw io.ReadWriter
}

func newCRLFReadWriter(rw io.ReadWriter) io.ReadWriter {
	return &lineEndings{rw: rw}
}

func (c *lineEndings) Read(p []byte) (int, error) {
	n, err := c.rw.Read(p)
	if n > 0 {
		// Telnet clients send \r\n, ssh clients without a pty send bare \r.
		data := bytes.ReplaceAll(p[:n], []byte("\r\n"), []byte("\n"))
		data = bytes.ReplaceAll(data, []byte("\r"), []byte("\n"))
		n = copy(p, data)
	}
	return n, err
}

func (c *lineEndings) Write(p []byte) (int, error) {
	expanded := bytes.ReplaceAll(p, []byte("\n"), []byte("\r\n"))
	_, err := c.rw.Write(expanded)
	// Report the caller's length; the expansion is invisible to them.
	return len(p), err
}
