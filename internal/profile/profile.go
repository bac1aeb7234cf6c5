package profile

import (
	"fmt"

	"golang.org/x/exp/slices"
)

// Profile defines a target orientation for output clips.
type Profile interface {
	// GetName returns the profile name used on the command line
	GetName() string

	// GetTargetDimensions returns the output frame size
	GetTargetDimensions() (width, height int)

	// Reformats reports whether clips are re-encoded into the target
	// frame; when false the source frame passes through untouched
	Reformats() bool
}

var profiles = make(map[string]Profile)

// Register adds a profile to the registry
func Register(p Profile) {
	profiles[p.GetName()] = p
}

// Get returns a profile by name
func Get(name string) (Profile, error) {
	p, ok := profiles[name]
	if !ok {
		return nil, fmt.Errorf("unsupported aspect profile: %s (supported: %v)", name, Supported())
	}
	return p, nil
}

// Supported returns the registered profile names in stable order
func Supported() []string {
	names := make([]string, 0, len(profiles))
	for name := range profiles {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}
