// Package fileutil reads robot log files from disk, transparently handling
// gzip-compressed captures and enforcing the configured size limit.
package fileutil

import (
	"bufio"
	"bytes"
	"io"
	"os"
	"path/filepath"

	"github.com/klauspost/compress/gzip"

	pkgerrors "github.com/ftcdoctor/logdoctor/pkg/errors"
)

// gzipMagic is the two-byte gzip header. Files are sniffed by content, not
// extension, so a renamed .log that is actually compressed still works.
var gzipMagic = []byte{0x1f, 0x8b}

// ReadLogFile reads a log file and returns its decoded text. maxBytes bounds
// the decompressed size; 0 means unlimited.
func ReadLogFile(path string, maxBytes int64) (string, error) {
	safePath := filepath.Clean(path)
	f, err := os.Open(safePath) // #nosec G304 // path is sanitized with filepath.Clean
	if err != nil {
		return "", pkgerrors.NewFileError(safePath, err)
	}
	defer f.Close()

	data, err := DecodeLog(f, maxBytes)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// DecodeLog reads raw or gzip-compressed log content from r, applying the
// size limit to the decompressed output.
func DecodeLog(r io.Reader, maxBytes int64) ([]byte, error) {
	br := bufio.NewReader(r)

	head, err := br.Peek(2)
	if err != nil && err != io.EOF {
		return nil, err
	}

	var src io.Reader = br
	if bytes.Equal(head, gzipMagic) {
		gz, err := gzip.NewReader(br)
		if err != nil {
			return nil, err
		}
		defer gz.Close()
		src = gz
	}

	if maxBytes > 0 {
		// Read one byte past the limit to distinguish "at limit" from "over".
		data, err := io.ReadAll(io.LimitReader(src, maxBytes+1))
		if err != nil {
			return nil, err
		}
		if int64(len(data)) > maxBytes {
			return nil, pkgerrors.NewFileSizeError("(stream)", int64(len(data)), maxBytes)
		}
		return data, nil
	}
	return io.ReadAll(src)
}
