package alarm

import (
	"os"
	"path/filepath"
	"strings"
)

var supportedExtensions = map[string]struct{}{
	".mp3":  {},
	".wav":  {},
	".ogg":  {},
	".flac": {},
}

// SupportedExtensions lists accepted custom sound extensions.
func SupportedExtensions() []string {
	return []string{".mp3", ".wav", ".ogg", ".flac"}
}

// ValidateSoundFile checks that path names a readable audio file with a
// supported extension.
func ValidateSoundFile(path string) error {
	if strings.TrimSpace(path) == "" {
		return &FileError{Path: path, Reason: "no file selected"}
	}
	ext := strings.ToLower(filepath.Ext(path))
	if _, ok := supportedExtensions[ext]; !ok {
		return &FileError{Path: path, Reason: "unsupported audio format " + quoteExt(ext)}
	}

	info, err := os.Stat(path)
	if err != nil {
		return &FileError{Path: path, Reason: "cannot access file", Err: err}
	}
	if info.IsDir() {
		return &FileError{Path: path, Reason: "is a directory"}
	}

	file, err := os.Open(path)
	if err != nil {
		return &FileError{Path: path, Reason: "cannot read file", Err: err}
	}
	_ = file.Close()
	return nil
}

func quoteExt(ext string) string {
	if ext == "" {
		return "(none)"
	}
	return ext
}
