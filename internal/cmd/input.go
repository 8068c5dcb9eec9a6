package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"
)

// readInputSource reads content from a file path or stdin when source is "-".
func readInputSource(source string, stdin io.Reader) (string, error) {
	trimmed := strings.TrimSpace(source)
	if trimmed == "" {
		return "", fmt.Errorf("empty input source")
	}

	var r io.Reader
	if trimmed == "-" {
		if stdin != nil {
			r = stdin
		} else {
			r = os.Stdin
		}
	} else {
		file, err := os.Open(trimmed)
		if err != nil {
			return "", fmt.Errorf("failed to read %s: %w", trimmed, err)
		}
		defer file.Close()
		r = file
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("failed to read input: %w", err)
	}

	return strings.TrimSpace(string(data)), nil
}

func inputHasData(r io.Reader) bool {
	if r == nil {
		r = os.Stdin
	}
	if file, ok := r.(*os.File); ok {
		stat, err := file.Stat()
		if err != nil {
			return false
		}
		return (stat.Mode() & os.ModeCharDevice) == 0
	}
	return true
}

const blocksRequiredMsg = "blocks input required (pass a file, -, or pipe JSON on stdin)"

// readBlocksInput reads the block document from the positional argument or
// piped stdin.
func readBlocksInput(args []string, stdin io.Reader) ([]byte, error) {
	source := "-"
	if len(args) > 0 {
		source = args[0]
	} else if !inputHasData(stdin) {
		return nil, usageError{msg: blocksRequiredMsg}
	}

	content, err := readInputSource(source, stdin)
	if err != nil {
		return nil, err
	}
	if content == "" {
		return nil, usageError{msg: blocksRequiredMsg}
	}
	return []byte(content), nil
}
