package stonehenge

import (
	"fmt"
	"strings"
)

// String draws the board: claimed cells show their owner's digit, line
// markers show '@' until the line is captured.
func (s State) String() string {
	n := s.layout.side
	marker := func(id string) string {
		owner, _ := s.LineOwner(id)
		return string(owner.Mark())
	}
	row := func(cells []Move) string {
		parts := make([]string, len(cells))
		for i, cell := range cells {
			parts[i] = s.cellMark(cell)
		}
		return strings.Join(parts, " - ")
	}
	pad := func(width int) string {
		return strings.Repeat(" ", width)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s%s   %s\n", pad(2*n+4), marker("u1"), marker("u2"))
	fmt.Fprintf(&b, "%s/   /\n", pad(2*n+3))

	for r := 0; r < n; r++ {
		if r > 0 {
			fmt.Fprintf(&b, "%s%s/\n", pad(2*(n-r)+3), strings.Repeat("/ \\ ", r+1))
		}
		fmt.Fprintf(&b, "%s%s - %s", pad(2*(n-1-r)), marker(fmt.Sprintf("h%d", r+1)), row(s.layout.rows[r]))
		if r < n-1 {
			fmt.Fprintf(&b, "   %s", marker(fmt.Sprintf("u%d", r+3)))
		}
		b.WriteByte('\n')
	}

	fmt.Fprintf(&b, "%s%s\\\n", pad(5), strings.Repeat("\\ / ", n))
	fmt.Fprintf(&b, "  %s - %s   %s\n", marker(fmt.Sprintf("h%d", n+1)), row(s.layout.rows[n]), marker(fmt.Sprintf("d%d", n+1)))

	slashes := make([]string, n)
	bottom := make([]string, n)
	for i := 0; i < n; i++ {
		slashes[i] = "\\"
		bottom[i] = marker(fmt.Sprintf("d%d", i+1))
	}
	fmt.Fprintf(&b, "%s%s\n", pad(7), strings.Join(slashes, "   "))
	fmt.Fprintf(&b, "%s%s", pad(8), strings.Join(bottom, "   "))

	return b.String()
}

func (s State) cellMark(m Move) string {
	if owner := s.cells[m.index()]; owner != Unclaimed {
		return string(owner.Mark())
	}
	return m.String()
}
