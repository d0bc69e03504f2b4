package checktle

import (
	"fmt"
	"strings"
)

// tleLineLength is the fixed length of a TLE line, checksum included.
const tleLineLength = 69

// Validate checks a two-line element set against the structural TLE rules:
// fixed line length, correct line numbers, matching catalog numbers, and
// valid modulo-10 checksums. It returns one message per problem found.
func Validate(line1, line2 string) []string {
	var problems []string

	problems = append(problems, validateLine(1, line1)...)
	problems = append(problems, validateLine(2, line2)...)

	if len(line1) >= 7 && len(line2) >= 7 {
		cat1 := strings.TrimSpace(line1[2:7])
		cat2 := strings.TrimSpace(line2[2:7])
		if cat1 != cat2 {
			problems = append(problems, fmt.Sprintf("catalog numbers differ between lines: %q vs %q", cat1, cat2))
		}
	}
	return problems
}

func validateLine(num int, line string) []string {
	var problems []string

	if len(line) != tleLineLength {
		problems = append(problems, fmt.Sprintf("line %d has length %d, want %d", num, len(line), tleLineLength))
	}
	if len(line) == 0 {
		return problems
	}
	if line[0] != byte('0'+num) {
		problems = append(problems, fmt.Sprintf("line %d starts with %q, want %q", num, string(line[0]), fmt.Sprint(num)))
	}
	if len(line) == tleLineLength {
		want := Checksum(line[:tleLineLength-1])
		got := line[tleLineLength-1]
		if got < '0' || got > '9' {
			problems = append(problems, fmt.Sprintf("line %d checksum column is %q, want a digit", num, string(got)))
		} else if int(got-'0') != want {
			problems = append(problems, fmt.Sprintf("line %d checksum is %d, want %d", num, got-'0', want))
		}
	}
	return problems
}

// Checksum computes the TLE modulo-10 checksum over the given text: digits
// count their value, a minus sign counts one, everything else counts zero.
func Checksum(text string) int {
	sum := 0
	for _, r := range text {
		switch {
		case r >= '0' && r <= '9':
			sum += int(r - '0')
		case r == '-':
			sum++
		}
	}
	return sum % 10
}
