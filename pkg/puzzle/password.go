package puzzle

import (
	"fmt"
	"strconv"
	"strings"
)

// IsValidPassword reports whether pw never decreases from left to right and
// has two equal adjacent digits. In strict mode the pair must not be part
// of a longer run.
func IsValidPassword(pw string, strict bool) bool {
	for i := 0; i+1 < len(pw); i++ {
		if pw[i] > pw[i+1] {
			return false
		}
	}

	for i := 0; i+1 < len(pw); {
		j := i + 1
		for j < len(pw) && pw[j] == pw[i] {
			j++
		}
		run := j - i
		if run == 2 || (!strict && run > 2) {
			return true
		}
		i = j
	}
	return false
}

// ValidPasswords lists the valid passwords of the given length between lo
// and hi inclusive. Candidates below 11...1 cannot be non-decreasing unless
// they are all zeros, so only that one is checked.
func ValidPasswords(length int, lo, hi int64, strict bool) ([]string, error) {
	if length <= 0 || length > 18 {
		return nil, fmt.Errorf("%w: length %d", ErrBadInput, length)
	}
	if lo > hi {
		return nil, fmt.Errorf("%w: range %d-%d", ErrBadInput, lo, hi)
	}

	var valid []string
	if lo == 0 {
		if zeros := strings.Repeat("0", length); IsValidPassword(zeros, strict) {
			valid = append(valid, zeros)
		}
	}

	ones, _ := strconv.ParseInt(strings.Repeat("1", length), 10, 64)
	start := lo
	if start < ones {
		start = ones
	}
	for n := start; n <= hi; n++ {
		pw := strconv.FormatInt(n, 10)
		if len(pw) != length {
			break
		}
		if IsValidPassword(pw, strict) {
			valid = append(valid, pw)
		}
	}
	return valid, nil
}
