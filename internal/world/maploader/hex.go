package maploader

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/krpors/titania/internal/world/tilegrid"
)

func loadHex(path string, opts Options) (*Map, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read map file %s: %w", path, err)
	}

	rows, err := ParseHex(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("invalid map data in %s: %w", path, err)
	}

	grid, err := tilegrid.FromRows(rows, opts.TileWidth, opts.TileHeight)
	if err != nil {
		return nil, fmt.Errorf("invalid map data in %s: %w", path, err)
	}

	name := opts.MainLayer
	if name == "" {
		name = opts.CollisionLayer
	}
	return &Map{
		Grid:   grid,
		Layers: []*Layer{collisionAsLayer(name, grid)},
	}, nil
}

// ParseHex reads rows of two-digit hexadecimal tile codes separated by
// single spaces. Every row must have the same number of codes. Trailing
// blank lines are ignored.
func ParseHex(r io.Reader) ([][]int, error) {
	var rows [][]int
	blank := 0

	scanner := bufio.NewScanner(r)
	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimRight(scanner.Text(), "\r")
		if strings.TrimSpace(text) == "" {
			blank++
			continue
		}
		if blank > 0 {
			return nil, fmt.Errorf("line %d: blank line inside the grid", line-1)
		}

		fields := strings.Split(text, " ")
		row := make([]int, len(fields))
		for i, f := range fields {
			if len(f) != 2 {
				return nil, fmt.Errorf("line %d: tile %d: expected two hex digits, got %q", line, i, f)
			}
			v, err := strconv.ParseUint(f, 16, 8)
			if err != nil {
				return nil, fmt.Errorf("line %d: tile %d: bad tile code %q", line, i, f)
			}
			row[i] = int(v)
		}

		if len(rows) > 0 && len(row) != len(rows[0]) {
			return nil, fmt.Errorf("row width mismatch at line %d: expected %d, got %d", line, len(rows[0]), len(row))
		}
		rows = append(rows, row)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to scan map: %w", err)
	}

	if len(rows) == 0 {
		return nil, fmt.Errorf("map has no rows")
	}
	return rows, nil
}

// FormatHex writes rows in the format ParseHex reads.
func FormatHex(w io.Writer, rows [][]int) error {
	bw := bufio.NewWriter(w)
	for _, row := range rows {
		for i, v := range row {
			if i > 0 {
				bw.WriteByte(' ')
			}
			fmt.Fprintf(bw, "%02x", v)
		}
		bw.WriteByte('\n')
	}
	return bw.Flush()
}
