package tree

import (
	"fmt"
	"regexp"
)

var compoundRe = regexp.MustCompile(`^\[(.+) \+ (.+)\]$`)

// CompoundName creates a name of an anonymous node from the names of
// its two largest children.
func CompoundName(a, b string) string {
	return fmt.Sprintf("[%s + %s]", a, b)
}

// IsCompound returns true for names like '[A + B]'.
func IsCompound(name string) bool {
	return compoundRe.MatchString(name)
}

// SplitCompound returns the two sub-names of a compound name.
func SplitCompound(name string) (string, string, bool) {
	m := compoundRe.FindStringSubmatch(name)
	if m == nil {
		return "", "", false
	}
	return m[1], m[2], true
}
