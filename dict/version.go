package dict

import (
	"strings"
)

// Version is a bitmask of the HTML versions a document can still claim
// to conform to.
type Version uint32

const (
	VersHTML20 Version = 1 << iota
	VersHTML32
	VersHTML40Strict
	VersHTML40Loose
	VersFrameset
	VersXML
	VersNetscape
	VersMicrosoft
	VersSun
)

const (
	VersUnknown     Version = 0
	VersHTML40              = VersHTML40Strict | VersHTML40Loose | VersFrameset
	VersLoose               = VersHTML32 | VersHTML40Loose | VersFrameset
	VersIFrame              = VersHTML40Loose | VersFrameset
	VersFrom32              = VersHTML32 | VersHTML40
	VersProprietary         = VersNetscape | VersMicrosoft | VersSun
	VersEvents              = VersHTML40
	VersAll                 = VersHTML20 | VersHTML32 | VersHTML40
	// VersAny is the mask a document starts with.
	VersAny = VersAll | VersProprietary
)

var versionNames = []struct {
	v    Version
	name string
}{
	{VersHTML20, "HTML 2.0"},
	{VersHTML32, "HTML 3.2"},
	{VersHTML40Strict, "HTML 4.01 Strict"},
	{VersHTML40Loose, "HTML 4.01 Transitional"},
	{VersFrameset, "HTML 4.01 Frameset"},
	{VersXML, "XML"},
	{VersNetscape, "Netscape"},
	{VersMicrosoft, "Microsoft"},
	{VersSun, "Sun"},
}

func (v *Version) Set(n Version) {
	*v |= n
}

// IsSet reports whether any bit of n is present in v.
func (v Version) IsSet(n Version) bool {
	return v&n != 0
}

// Constrain returns the mask that remains after something valid only in
// n has been seen. Proprietary bits are never removed this way, so an
// element or attribute can only narrow the standard versions.
func (v Version) Constrain(n Version) Version {
	return v & (n | VersProprietary)
}

func (v Version) String() string {
	if v == VersUnknown {
		return "unknown"
	}

	var parts []string
	for _, vn := range versionNames {
		if v.IsSet(vn.v) {
			parts = append(parts, vn.name)
		}
	}
	return strings.Join(parts, "|")
}

// Apparent names the most conservative standard version left in the
// mask. Masks with only proprietary bits are reported as "proprietary".
func (v Version) Apparent() string {
	for _, vn := range versionNames[:5] {
		if v.IsSet(vn.v) {
			return vn.name
		}
	}
	if v.IsSet(VersProprietary) {
		return "proprietary"
	}
	return "unknown"
}

// VersionFromFPI maps the formal public identifier of a DOCTYPE
// declaration to the version it declares.
func VersionFromFPI(s string) Version {
	fpi := strings.ToUpper(s)
	switch {
	case strings.Contains(fpi, "HTML 2.0"):
		return VersHTML20
	case strings.Contains(fpi, "HTML 3.2"):
		return VersHTML32
	case !strings.Contains(fpi, "HTML 4.0") && !strings.Contains(fpi, "XHTML 1.0"):
		return VersUnknown
	case strings.Contains(fpi, "FRAMESET"):
		return VersFrameset
	case strings.Contains(fpi, "TRANSITIONAL"):
		return VersHTML40Loose
	}
	return VersHTML40Strict
}
