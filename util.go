package main

import (
	"errors"
	"io"
	"io/fs"
	"os"
)

func IgnoreClose(closer io.Closer) {
	_ = closer.Close()
}

func exists(filePath string) bool {
	if _, err := os.Stat(filePath); errors.Is(err, fs.ErrNotExist) {
		return false
	}

	return true
}
