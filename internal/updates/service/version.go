package service

import (
	"strconv"
	"strings"
)

// compareVersions orders two dotted version strings. It returns a negative
// value when a is older than b, zero when equal, positive when newer. A
// leading "v" is ignored. A version with a pre-release suffix (e.g.
// "2.0.0-beta") sorts before the same version without one; two pre-releases
// compare lexically.
func compareVersions(a, b string) int {
	aCore, aPre := splitPreRelease(strings.TrimPrefix(a, "v"))
	bCore, bPre := splitPreRelease(strings.TrimPrefix(b, "v"))

	aParts := strings.Split(aCore, ".")
	bParts := strings.Split(bCore, ".")
	n := len(aParts)
	if len(bParts) > n {
		n = len(bParts)
	}
	for i := 0; i < n; i++ {
		av := numericPart(aParts, i)
		bv := numericPart(bParts, i)
		if av != bv {
			if av < bv {
				return -1
			}
			return 1
		}
	}

	switch {
	case aPre == bPre:
		return 0
	case aPre == "":
		return 1
	case bPre == "":
		return -1
	default:
		return strings.Compare(aPre, bPre)
	}
}

func splitPreRelease(v string) (core, pre string) {
	if idx := strings.IndexByte(v, '-'); idx >= 0 {
		return v[:idx], v[idx+1:]
	}
	return v, ""
}

func numericPart(parts []string, i int) int {
	if i >= len(parts) {
		return 0
	}
	n, err := strconv.Atoi(parts[i])
	if err != nil {
		return 0
	}
	return n
}
