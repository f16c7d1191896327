package fileutil

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/rohmanhakim/html2md/pkg/failure"
)

// EnsureDir checks if a given directory plus the following path exist, then creates one if not
func EnsureDir(dir string, path ...string) failure.ClassifiedError {
	targetPath := []string{dir}
	targetPath = append(targetPath, path...)

	fullPath := filepath.Join(targetPath...)
	if err := os.MkdirAll(fullPath, 0755); err != nil {
		return &FileError{
			Message:   fmt.Sprintf("%v", err),
			Retryable: false,
			Cause:     ErrCausePathError,
		}
	}
	return nil
}

// WriteTemp writes content to a freshly created temporary file and returns its
// absolute path. The file is created in dir, or in the OS default temp
// directory when dir is empty. The caller owns the file afterwards; nothing
// here removes it.
func WriteTemp(dir string, pattern string, content []byte) (string, failure.ClassifiedError) {
	f, err := os.CreateTemp(dir, pattern)
	if err != nil {
		return "", &FileError{
			Message:   fmt.Sprintf("%v", err),
			Retryable: false,
			Cause:     ErrCausePathError,
		}
	}
	defer f.Close()

	if _, err := f.Write(content); err != nil {
		return "", &FileError{
			Message:   fmt.Sprintf("%v", err),
			Retryable: true,
			Cause:     ErrCauseWriteFailure,
		}
	}

	return f.Name(), nil
}
