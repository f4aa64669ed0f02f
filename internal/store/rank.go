package store

import (
	"errors"
	"fmt"
	"strings"
)

// Ranks are lowercase base36 strings ordered lexicographically. Sibling
// order is rank order, ties broken by client id.
const rankAlphabet = "0123456789abcdefghijklmnopqrstuvwxyz"

const rankBase = len(rankAlphabet)

var errNoRankSpace = errors.New("no space between ranks")

func rankDigit(c byte) (int, bool) {
	switch {
	case c >= '0' && c <= '9':
		return int(c - '0'), true
	case c >= 'a' && c <= 'z':
		return 10 + int(c-'a'), true
	}
	return 0, false
}

func normRank(r string) string {
	return strings.ToLower(strings.TrimSpace(r))
}

// RankBetween returns a rank strictly between lo and hi. Either bound may be
// empty, meaning unbounded. Generated ranks never end in '0', so there is
// always room after them.
func RankBetween(lo, hi string) (string, error) {
	lo, hi = normRank(lo), normRank(hi)
	if lo != "" && hi != "" && lo >= hi {
		return "", fmt.Errorf("rank %q is not below %q", lo, hi)
	}

	out := make([]byte, 0, len(lo)+1)
	bounded := hi != ""
	for i := 0; ; i++ {
		dl := 0
		if i < len(lo) {
			d, ok := rankDigit(lo[i])
			if !ok {
				return "", fmt.Errorf("invalid rank %q", lo)
			}
			dl = d
		}
		dh := rankBase
		if bounded {
			if i >= len(hi) {
				return "", errNoRankSpace
			}
			d, ok := rankDigit(hi[i])
			if !ok {
				return "", fmt.Errorf("invalid rank %q", hi)
			}
			dh = d
		}

		switch {
		case dh-dl > 1:
			out = append(out, rankAlphabet[dl+(dh-dl)/2])
			return string(out), nil
		case dh-dl == 1:
			// out is now below hi whatever follows.
			out = append(out, rankAlphabet[dl])
			bounded = false
		default:
			out = append(out, rankAlphabet[dl])
		}
	}
}

func RankAfter(lo string) (string, error)  { return RankBetween(lo, "") }
func RankBefore(hi string) (string, error) { return RankBetween("", hi) }
func RankInitial() (string, error)         { return RankBetween("", "") }

// RankBetweenUnique is RankBetween skipping ranks already in existing.
func RankBetweenUnique(existing map[string]bool, lo, hi string) (string, error) {
	cur := normRank(lo)
	hi = normRank(hi)
	for i := 0; i < 256; i++ {
		r, err := RankBetween(cur, hi)
		if err != nil {
			return "", err
		}
		if !existing[r] {
			return r, nil
		}
		cur = r
	}
	return "", errors.New("unable to find unique rank")
}

// SpreadRanks returns n increasing fixed-width ranks spaced evenly over the
// rank space, used when a whole sibling list is written at once.
func SpreadRanks(n int) []string {
	if n <= 0 {
		return nil
	}
	width, space := 1, rankBase
	for space <= 2*n {
		width++
		space *= rankBase
	}
	step := space / (n + 1)
	out := make([]string, n)
	buf := make([]byte, width)
	for i := range out {
		v := (i + 1) * step
		for j := width - 1; j >= 0; j-- {
			buf[j] = rankAlphabet[v%rankBase]
			v /= rankBase
		}
		out[i] = string(buf)
	}
	return out
}
