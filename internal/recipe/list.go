package recipe

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// Reads a recipe list file.
//
// Each non-blank line is one recipe identifier. Order is preserved and
// duplicates are kept; the caller processes the list exactly as written.
func ReadList(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrList, err)
	}
	defer f.Close()

	var recipes []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		recipes = append(recipes, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrList, err)
	}

	return recipes, nil
}
