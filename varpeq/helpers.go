package varpeq

import (
	"fmt"
	"strings"
)

// HaToEv converts Hartree to electronvolt. All energies cross this factor
// once, at the read boundary.
const HaToEv = 27.211386245988

// marqueeWidth is the line width of section headers in text reports.
const marqueeWidth = 78

// marquee centers title in a line of mark characters, the section-header
// style of the text reports.
func marquee(title string, mark byte) string {
	title = " " + strings.TrimSpace(title) + " "
	pad := marqueeWidth - len(title)
	if pad < 4 {
		pad = 4
	}
	left := pad / 2
	right := pad - left

	return strings.Repeat(string(mark), left) + title + strings.Repeat(string(mark), right)
}

// entryNames returns the five entry names in file order.
func entryNames() []string {
	names := make([]string, len(AllEntries))
	for i, e := range AllEntries {
		names[i] = e.Name
	}

	return names
}

// formatDivs renders mesh divisions as "[n1, n2, n3]".
func formatDivs(d [3]int) string {
	return fmt.Sprintf("[%d, %d, %d]", d[0], d[1], d[2])
}
