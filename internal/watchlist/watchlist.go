package watchlist

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// Load reads ticker symbols from a newline-delimited file. Blank lines
// and surrounding whitespace are ignored.
func Load(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open watchlist: %w", err)
	}
	defer f.Close()

	var symbols []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		sym := strings.TrimSpace(scanner.Text())
		if sym == "" {
			continue
		}
		symbols = append(symbols, sym)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read watchlist: %w", err)
	}
	return symbols, nil
}
