// Package selector parses user-supplied wallet selector strings into concrete
// lists of 1-based wallet positions.
//
// A selector is a comma-separated list of tokens, each either a single
// position ("3") or an inclusive range ("5-10"). The parsed result is sorted
// and duplicate-free. Positions are not bounds-checked against the store;
// callers filter out positions beyond the number of stored wallets.
package selector

import (
	"sort"
	"strconv"
	"strings"

	ferrors "github.com/lugondev/solfleet/internal/errors"
)

// Parse resolves a selector string into a sorted, duplicate-free list of
// 1-based positions. The empty string resolves to an empty list, which
// callers interpret as "no explicit selection". Malformed tokens, including
// inverted ranges like "3-1", are an error rather than being silently
// dropped.
func Parse(s string) ([]int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}

	seen := make(map[int]bool)
	for _, token := range strings.Split(s, ",") {
		token = strings.TrimSpace(token)
		if token == "" {
			return nil, ferrors.InvalidSelector(token)
		}

		low, high, err := parseToken(token)
		if err != nil {
			return nil, err
		}
		for i := low; i <= high; i++ {
			seen[i] = true
		}
	}

	out := make([]int, 0, len(seen))
	for i := range seen {
		out = append(out, i)
	}
	sort.Ints(out)
	return out, nil
}

// Filter returns the positions from sel that fall within a store of n
// wallets, preserving order. Positions beyond n are dropped silently; the
// selector never knows the store's size.
func Filter(sel []int, n int) []int {
	out := make([]int, 0, len(sel))
	for _, pos := range sel {
		if pos >= 1 && pos <= n {
			out = append(out, pos)
		}
	}
	return out
}

func parseToken(token string) (low, high int, err error) {
	if idx := strings.IndexByte(token, '-'); idx >= 0 {
		low, err = parsePosition(token[:idx])
		if err != nil {
			return 0, 0, ferrors.InvalidSelector(token)
		}
		high, err = parsePosition(token[idx+1:])
		if err != nil {
			return 0, 0, ferrors.InvalidSelector(token)
		}
		if low > high {
			return 0, 0, ferrors.InvalidSelector(token)
		}
		return low, high, nil
	}

	pos, err := parsePosition(token)
	if err != nil {
		return 0, 0, ferrors.InvalidSelector(token)
	}
	return pos, pos, nil
}

func parsePosition(s string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, err
	}
	if n < 0 {
		return 0, strconv.ErrRange
	}
	return n, nil
}
