// File: pkg/compile/binary.go
package compile

import (
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// binaryExtensions lists file extensions that are always treated as
// binary without sniffing the contents.
var binaryExtensions = map[string]bool{
	".7z": true, ".a": true, ".avi": true, ".bin": true, ".bmp": true,
	".bz2": true, ".class": true, ".dll": true, ".dylib": true, ".exe": true,
	".flac": true, ".gif": true, ".gz": true, ".ico": true, ".jar": true,
	".jpeg": true, ".jpg": true, ".m4a": true, ".mkv": true, ".mov": true,
	".mp3": true, ".mp4": true, ".o": true, ".ogg": true, ".pdf": true,
	".png": true, ".pyc": true, ".rar": true, ".so": true, ".tar": true,
	".tiff": true, ".ttf": true, ".wav": true, ".webm": true, ".webp": true,
	".woff": true, ".woff2": true, ".xz": true, ".zip": true,
}

// mediaExtensions are the binary extensions whose duration is worth
// probing for the placeholder line.
var mediaExtensions = map[string]bool{
	".avi": true, ".flac": true, ".m4a": true, ".mkv": true, ".mov": true,
	".mp3": true, ".mp4": true, ".ogg": true, ".wav": true, ".webm": true,
}

// isBinaryFile checks if a file is likely to be binary by reading its
// first 512 bytes and checking for null bytes or a high ratio of
// non-printable characters.
func isBinaryFile(filePath string) (bool, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return false, err
	}
	defer file.Close()

	buffer := make([]byte, 512)
	n, err := file.Read(buffer)
	if err != nil && !errors.Is(err, io.EOF) {
		return false, err
	}
	buffer = buffer[:n]

	// Null bytes are the strongest binary signal.
	if bytes.Contains(buffer, []byte{0}) {
		return true, nil
	}

	if len(buffer) == 0 {
		return false, nil // Empty files are text.
	}

	nonPrintable := 0
	for _, b := range buffer {
		if !isPrintable(b) {
			nonPrintable++
		}
	}
	return float64(nonPrintable)/float64(len(buffer)) > 0.3, nil
}

// isPrintable checks if a byte represents a printable ASCII character.
func isPrintable(b byte) bool {
	return (b >= 32 && b <= 126) || b == '\n' || b == '\r' || b == '\t'
}

// isCommonBinaryExtension checks if the file has a known binary extension.
func isCommonBinaryExtension(path string) bool {
	return binaryExtensions[strings.ToLower(filepath.Ext(path))]
}

// isMediaExtension checks if the file is audio or video.
func isMediaExtension(path string) bool {
	return mediaExtensions[strings.ToLower(filepath.Ext(path))]
}
