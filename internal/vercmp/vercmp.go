package vercmp

import "strings"

// Compare orders two package versions of the form [epoch:]version[-release].
// It returns -1 when a is older than b, 1 when a is newer and 0 when both
// designate the same version.
func Compare(a, b string) int {
	if a == b {
		return 0
	}
	ea, va, ra := splitEVR(a)
	eb, vb, rb := splitEVR(b)
	ret := compareSegments(ea, eb)
	if ret == 0 {
		ret = compareSegments(va, vb)
		if ret == 0 && ra != "" && rb != "" {
			ret = compareSegments(ra, rb)
		}
	}
	return ret
}

// splitEVR breaks a version string into epoch, version and release.
// A missing epoch is "0", a missing release is empty.
func splitEVR(evr string) (epoch, version, release string) {
	i := 0
	for i < len(evr) && isDigit(evr[i]) {
		i++
	}
	epoch, version = "0", evr
	if i < len(evr) && evr[i] == ':' {
		if i > 0 {
			epoch = evr[:i]
		}
		version = evr[i+1:]
	}
	if j := strings.LastIndexByte(version, '-'); j >= 0 {
		version, release = version[:j], version[j+1:]
	}
	return epoch, version, release
}

// compareSegments walks both strings segment by segment. Segments are runs of
// digits or runs of letters; anything else is a separator.
func compareSegments(a, b string) int {
	if a == b {
		return 0
	}
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		si, sj := i, j
		for i < len(a) && !isAlnum(a[i]) {
			i++
		}
		for j < len(b) && !isAlnum(b[j]) {
			j++
		}
		if i >= len(a) || j >= len(b) {
			break
		}
		// different separator lengths decide on their own
		if i-si != j-sj {
			if i-si < j-sj {
				return -1
			}
			return 1
		}

		si, sj = i, j
		numeric := isDigit(a[i])
		if numeric {
			for i < len(a) && isDigit(a[i]) {
				i++
			}
			for j < len(b) && isDigit(b[j]) {
				j++
			}
		} else {
			for i < len(a) && isAlpha(a[i]) {
				i++
			}
			for j < len(b) && isAlpha(b[j]) {
				j++
			}
		}
		segA, segB := a[si:i], b[sj:j]
		if segB == "" {
			// numeric segments are newer than alpha ones
			if numeric {
				return 1
			}
			return -1
		}
		if numeric {
			segA = strings.TrimLeft(segA, "0")
			segB = strings.TrimLeft(segB, "0")
			if len(segA) != len(segB) {
				if len(segA) > len(segB) {
					return 1
				}
				return -1
			}
		}
		if c := strings.Compare(segA, segB); c != 0 {
			return c
		}
	}

	if i >= len(a) && j >= len(b) {
		return 0
	}
	// a remaining alpha segment never beats an empty one
	if (i >= len(a) && !isAlpha(b[j])) || (i < len(a) && isAlpha(a[i])) {
		return -1
	}
	return 1
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

func isAlpha(c byte) bool { return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') }

func isAlnum(c byte) bool { return isDigit(c) || isAlpha(c) }
