// SPDX-License-Identifier: MIT

package matrixio

import (
	"bufio"
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/katalvlaran/lvparam/matrix"
)

// loadTXT reads a table of numbers: one matrix row per line, values
// separated by whitespace or commas, '#' starting a comment. Blank lines are
// skipped; all rows must have the same length. Values accept the usual
// float syntax plus nan / inf.
func loadTXT(src source) (*matrix.Dense, error) {
	if err := src.rejectKey("text"); err != nil {
		return nil, err
	}
	raw, err := src.read()
	if err != nil {
		return nil, err
	}

	sc := bufio.NewScanner(bytes.NewReader(raw))
	sc.Buffer(make([]byte, 64*1024), 16*1024*1024)
	var (
		data []float64
		rows int
		cols = -1
		line int
	)
	split := func(r rune) bool { return r == ',' || r == ' ' || r == '\t' || r == '\r' }
	for sc.Scan() {
		line++
		text := sc.Text()
		if i := strings.IndexByte(text, '#'); i >= 0 {
			text = text[:i]
		}
		fields := strings.FieldsFunc(text, split)
		if len(fields) == 0 {
			continue
		}
		if cols >= 0 && len(fields) != cols {
			return nil, formatErrorf("text line %d: %d values, previous rows have %d", line, len(fields), cols)
		}
		cols = len(fields)
		for _, f := range fields {
			v, err := strconv.ParseFloat(f, 64)
			if err != nil {
				return nil, formatErrorf("text line %d: value %q", line, f)
			}
			data = append(data, v)
		}
		rows++
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	if rows == 0 {
		return nil, fmt.Errorf("text file holds no values: %w", ErrNoMatrix)
	}

	return newDense([]int{rows, cols}, data)
}
