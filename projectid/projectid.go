// Package projectid handles sample-sheet project identifiers.  A project
// identifier is a human readable name followed by an underscore and the
// numeric study id, e.g. "Baz_123".
//
// Names that themselves end in "_<digits>" (e.g. "Trial_2_42") cannot be told
// apart from a study id suffix; Strip always removes the last such group
// only.
package projectid

import (
	"regexp"
	"strings"
)

var suffixRE = regexp.MustCompile(`_[0-9]+$`)

// Strip removes a trailing "_<digits>" from id.  id is returned unchanged when
// it has no such suffix.
func Strip(id string) string {
	return suffixRE.ReplaceAllString(id, "")
}

// Suffix returns the study id of id given name, the result of Strip(id).  If
// id has no suffix (id == name) the empty string is returned.  If name+"_" is
// not a prefix of id, the whole id is returned.
func Suffix(id, name string) string {
	if id == name {
		return ""
	}
	prefix := name + "_"
	if !strings.HasPrefix(id, prefix) {
		return id
	}
	return id[len(prefix):]
}

// Split separates id into its name and study id.  ok is false when id does
// not carry a numeric suffix, in which case name is id and suffix is empty.
func Split(id string) (name, suffix string, ok bool) {
	name = Strip(id)
	suffix = Suffix(id, name)
	return name, suffix, suffix != ""
}

// Join reconstructs a project identifier from its parts.  An empty suffix
// yields name.
func Join(name, suffix string) string {
	if suffix == "" {
		return name
	}
	return name + "_" + suffix
}
