// Package version holds the gateway API version advertised over mDNS and
// the build version of the binaries.
package version

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Current is the API version spoken by this module. Peers with the same
// major version interoperate.
const Current = "1.0"

// Build is the release of the binaries, set with
// -ldflags "-X github.com/gropc-project/gropc-go/pkg/version.Build=v1.2.3".
var Build = "dev"

// ErrInvalidVersion is returned by Parse.
var ErrInvalidVersion = errors.New("invalid API version")

// APIVersion is a "major.minor" API version.
type APIVersion struct {
	Major uint16
	Minor uint16
}

// Parse reads a "major.minor" version.
func Parse(s string) (APIVersion, error) {
	majorText, minorText, ok := strings.Cut(s, ".")
	if !ok {
		return APIVersion{}, fmt.Errorf("%w %q: want major.minor", ErrInvalidVersion, s)
	}
	major, err := strconv.ParseUint(majorText, 10, 16)
	if err != nil {
		return APIVersion{}, fmt.Errorf("%w %q: major: %v", ErrInvalidVersion, s, err)
	}
	minor, err := strconv.ParseUint(minorText, 10, 16)
	if err != nil {
		return APIVersion{}, fmt.Errorf("%w %q: minor: %v", ErrInvalidVersion, s, err)
	}
	return APIVersion{Major: uint16(major), Minor: uint16(minor)}, nil
}

func (v APIVersion) String() string {
	return strconv.Itoa(int(v.Major)) + "." + strconv.Itoa(int(v.Minor))
}

// Compatible reports whether v and other share a major version.
func (v APIVersion) Compatible(other APIVersion) bool {
	return v.Major == other.Major
}

// Compatible reports whether a peer advertising the given API version can
// talk to this module.
func Compatible(peer string) bool {
	pv, err := Parse(peer)
	if err != nil {
		return false
	}
	return current.Compatible(pv)
}

var current = mustParse(Current)

func mustParse(s string) APIVersion {
	v, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return v
}

// String returns the build and API version for -version output.
func String() string {
	return fmt.Sprintf("%s (api %s)", Build, Current)
}
