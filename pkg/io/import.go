package io

import (
	"fmt"
	"io"
	"os"

	"github.com/matzehuels/radialtext/pkg/errors"
)

// Stdin is the path that ImportText reads from standard input.
const Stdin = "-"

// ReadText reads all text lines from r and validates them.
// ReadText does not close r.
func ReadText(r io.Reader) (string, error) {
	data, err := io.ReadAll(io.LimitReader(r, errors.MaxTextLength+1))
	if err != nil {
		return "", fmt.Errorf("read: %w", err)
	}
	text := string(data)
	if err := errors.ValidateText(text); err != nil {
		return "", err
	}
	return text, nil
}

// ImportText reads the text file at path, or stdin for "-".
func ImportText(path string) (string, error) {
	if path == Stdin {
		return ReadText(os.Stdin)
	}
	if err := errors.ValidatePath(path); err != nil {
		return "", err
	}
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadText(f)
}
