package problemgen

import (
	"fmt"
	"strconv"
	"strings"
)

// CheckAnswer compares the learner's input against the problem's answer.
//
// Normalization rules:
//   - Whitespace is trimmed and leading zeros are ignored ("007" matches "7")
//   - Division with a remainder expects "q R r" (also "q r r" or "qRr")
//   - Division without a remainder accepts the quotient alone or "q R 0"
func CheckAnswer(input string, p Problem) bool {
	input = strings.TrimSpace(input)
	if input == "" {
		return false
	}

	if p.Operation == OpDivision {
		q, r, err := parseQuotient(input)
		if err != nil {
			return false
		}
		return q == p.Answer && r == p.Remainder
	}

	n, err := parseInt(input)
	if err != nil {
		return false
	}
	return n == p.Answer
}

// ParseAnswer extracts the numeric value of an answer for diagnosis. For
// division inputs only the quotient is returned.
func ParseAnswer(input string) (int, error) {
	q, _, err := parseQuotient(strings.TrimSpace(input))
	return q, err
}

// FormatAnswer renders the canonical answer, e.g. "13" or "4 R 2".
func FormatAnswer(p Problem) string {
	if p.Operation == OpDivision && p.Remainder != 0 {
		return fmt.Sprintf("%d R %d", p.Answer, p.Remainder)
	}
	return strconv.Itoa(p.Answer)
}

// parseQuotient splits "q R r" into its parts. A bare integer has a zero
// remainder.
func parseQuotient(s string) (int, int, error) {
	upper := strings.ToUpper(s)
	idx := strings.Index(upper, "R")
	if idx < 0 {
		n, err := parseInt(s)
		return n, 0, err
	}
	q, err := parseInt(s[:idx])
	if err != nil {
		return 0, 0, fmt.Errorf("invalid quotient: %w", err)
	}
	r, err := parseInt(s[idx+1:])
	if err != nil {
		return 0, 0, fmt.Errorf("invalid remainder: %w", err)
	}
	return q, r, nil
}

func parseInt(s string) (int, error) {
	n, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid integer: %w", err)
	}
	return int(n), nil
}
