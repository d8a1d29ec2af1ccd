package output

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// graphChars are the lane characters git draws in front of a log line
const graphChars = "*|\\/_ "

// GraphColor styles text with the palette color for a graph column
func GraphColor(text string, column int) string {
	if len(GraphPalette) == 0 {
		return text
	}

	// git draws one lane every two columns
	color := GraphPalette[(column/2)%len(GraphPalette)]
	hexColor := lipgloss.Color(fmt.Sprintf("#%02x%02x%02x", color[0], color[1], color[2]))

	return lipgloss.NewStyle().Foreground(hexColor).Render(text)
}

// SplitGraphLine separates the graph prefix of a log line from the commit
// description. Lines that are pure graph return an empty description.
func SplitGraphLine(line string) (graph, rest string) {
	i := 0
	for i < len(line) && strings.IndexByte(graphChars, line[i]) >= 0 {
		i++
	}
	return line[:i], line[i:]
}

// FormatGraphLine colors the lane characters of a log line by column and
// highlights the abbreviated hash. The text itself is unchanged.
func FormatGraphLine(line string) string {
	graph, rest := SplitGraphLine(line)

	var b strings.Builder
	for i, ch := range graph {
		if ch == ' ' {
			b.WriteRune(ch)
			continue
		}
		b.WriteString(GraphColor(string(ch), i))
	}

	if rest == "" {
		return b.String()
	}
	hash, desc, found := strings.Cut(rest, " ")
	b.WriteString(ColorHash(hash))
	if found {
		b.WriteString(" " + desc)
	}
	return b.String()
}

// ColorBranchName colors a branch name based on whether it's current
func ColorBranchName(branchName string, isCurrent bool) string {
	if isCurrent {
		return lipgloss.NewStyle().
			Foreground(lipgloss.Color("6")).
			Render(branchName + " (current)")
	}
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color("12")).
		Render(branchName)
}

// ColorHash colors an abbreviated commit hash
func ColorHash(text string) string {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color("3")).
		Render(text)
}

// ColorError colors error lines
func ColorError(text string) string {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color("9")).
		Render(text)
}

// ColorCommand colors the "> command" echo line
func ColorCommand(text string) string {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color("5")).
		Render(text)
}

// ColorDim makes text dim/gray
func ColorDim(text string) string {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color("8")).
		Render(text)
}

// ColorOutputLine styles one rendered output log line by its prefix
func ColorOutputLine(line string) string {
	switch {
	case strings.HasPrefix(line, "> "):
		return ColorCommand(line)
	case strings.HasPrefix(line, "Error"):
		return ColorError(line)
	case strings.HasPrefix(line, "----"):
		return ColorDim(line)
	default:
		return line
	}
}
