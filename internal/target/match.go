package target

import (
	"regexp"
	"strings"
)

// MatchAll reports whether every target matches name. Without regex mode a
// target matches as a case-insensitive substring. In regex mode a target
// matches as a case-insensitive extended regular expression or, failing
// that, as a plain substring; a target that does not compile matches
// nothing.
func MatchAll(targets []string, name string, useRegex bool) bool {
	if len(targets) == 0 || name == "" {
		return false
	}
	lname := strings.ToLower(name)
	for _, t := range targets {
		if t == "" {
			continue
		}
		if !useRegex {
			if !strings.Contains(lname, strings.ToLower(t)) {
				return false
			}
			continue
		}
		re, err := regexp.Compile("(?i)" + t)
		if err != nil {
			return false
		}
		if !re.MatchString(name) && !strings.Contains(name, t) {
			return false
		}
	}
	return true
}
