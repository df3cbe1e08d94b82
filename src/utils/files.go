package utils

import (
	"io"
	"os"
)

// ReadResponseFromFile reads a saved JSON response from a file and returns the content as a byte slice.
func ReadResponseFromFile(filePath string) ([]byte, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	return io.ReadAll(file)
}
