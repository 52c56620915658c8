package testbench

import (
	"bufio"
	"fmt"
	"io"
)

// A Mismatch is the first line where a run differs from its golden log.
type Mismatch struct {
	Line     int
	Expected string
	Actual   string
}

func (m *Mismatch) Error() string {
	return fmt.Sprintf("line %d: expected %q, got %q",
		m.Line, m.Expected, m.Actual)
}

// CompareGolden reads both logs line by line and returns a *Mismatch for the
// first differing line. A missing line reads as an empty string.
func CompareGolden(golden, actual io.Reader) error {
	expected := bufio.NewScanner(golden)
	got := bufio.NewScanner(actual)

	for line := 1; ; line++ {
		hasExpected := expected.Scan()
		hasActual := got.Scan()

		if !hasExpected && !hasActual {
			break
		}

		if expected.Text() != got.Text() || hasExpected != hasActual {
			return &Mismatch{
				Line:     line,
				Expected: expected.Text(),
				Actual:   got.Text(),
			}
		}
	}

	if err := expected.Err(); err != nil {
		return fmt.Errorf("reading golden log: %w", err)
	}

	if err := got.Err(); err != nil {
		return fmt.Errorf("reading run log: %w", err)
	}

	return nil
}
