package text

import "github.com/rivo/uniseg"

// DisplayWidth returns the number of terminal cells the string occupies,
// counting grapheme clusters rather than bytes or runes. Hosts use it to
// size gutters and widget slots around decorated text.
func DisplayWidth(s string) int {
	return uniseg.StringWidth(s)
}

// MaxLineWidth returns the display width of the widest line in s.
func MaxLineWidth(s string) int {
	max := 0
	start := 0
	for i := 0; i <= len(s); i++ {
		if i == len(s) || s[i] == '\n' {
			if w := uniseg.StringWidth(s[start:i]); w > max {
				max = w
			}
			start = i + 1
		}
	}
	return max
}
