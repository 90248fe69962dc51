package common

import "strings"

// MaxTextWidth is the number of characters that fit on one display line.
const MaxTextWidth = 30

// SentenceJoin joins items into a sentence: "A", "A and B", "A, B, and C".
func SentenceJoin(items []string) string {
	switch len(items) {
	case 0:
		return ""
	case 1:
		return items[0]
	case 2:
		return items[0] + " and " + items[1]
	default:
		return strings.Join(items[:len(items)-1], ", ") + ", and " + items[len(items)-1]
	}
}

// EnsureSuffix returns s with suffix appended unless it already ends with it.
func EnsureSuffix(s, suffix string) string {
	if strings.HasSuffix(s, suffix) {
		return s
	}
	return s + suffix
}

// WrapText slices text into chunks of maxWidth characters. It does not look for
// word boundaries; the display font is fixed width so line length is all that matters.
// Each chunk is trimmed of surrounding spaces.
func WrapText(text string, maxWidth int) []string {
	if maxWidth <= 0 || text == "" {
		return nil
	}

	runes := []rune(text)
	lines := make([]string, 0, (len(runes)+maxWidth-1)/maxWidth)
	for i := 0; i < len(runes); i += maxWidth {
		end := i + maxWidth
		if end > len(runes) {
			end = len(runes)
		}
		lines = append(lines, strings.TrimSpace(string(runes[i:end])))
	}
	return lines
}

// TruncateLines keeps at most maxLines lines. When lines are dropped, the last
// three characters of the final kept line are replaced with "...".
func TruncateLines(lines []string, maxLines int) []string {
	if len(lines) <= maxLines {
		return lines
	}
	if maxLines <= 0 {
		return nil
	}

	out := make([]string, maxLines)
	copy(out, lines[:maxLines])

	last := []rune(out[maxLines-1])
	if len(last) > 3 {
		last = last[:len(last)-3]
	} else {
		last = last[:0]
	}
	out[maxLines-1] = strings.TrimSpace(string(last)) + "..."
	return out
}
