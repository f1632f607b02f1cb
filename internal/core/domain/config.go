package domain

// Profile selects the optimization profile for a build.
type Profile string

const (
	// ProfileDebug builds with debug symbols and no optimization.
	ProfileDebug Profile = "debug"
	// ProfileRelease builds with optimization and without debug symbols.
	ProfileRelease Profile = "release"
)

// ProfileFlags returns the compiler flags implied by the profile.
func (p Profile) ProfileFlags() []string {
	if p == ProfileRelease {
		return []string{"-O2"}
	}
	return []string{"-g"}
}

// Config is the project toolchain configuration, loaded from forge.yaml
// when present and defaulted otherwise.
type Config struct {
	// CC is the C compiler binary.
	CC string
	// CXX is the C++ compiler binary.
	CXX string
	// Flags are extra flags passed to every compile and link invocation.
	Flags []string
	// Ignore lists directory names excluded from source enumeration.
	Ignore []string
}

// DefaultConfig returns the configuration used when no forge.yaml exists.
func DefaultConfig() *Config {
	return &Config{
		CC:  "gcc",
		CXX: "g++",
	}
}
