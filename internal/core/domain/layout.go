package domain

import "path/filepath"

const (
	// CacheFileName is the persisted build cache, a hidden dotfile in the
	// project root.
	CacheFileName = ".forge_cache.json"

	// ConfigFileName is the optional project configuration file.
	ConfigFileName = "forge.yaml"

	// TargetDirName is the build output directory under the project root.
	TargetDirName = "target"

	// ObjDirName is the object file directory under the profile directory.
	ObjDirName = "obj"

	// DirPerm is the default permission for directories (rwxr-x---).
	DirPerm = 0o750

	// FilePerm is the default permission for files (rw-r--r--).
	FilePerm = 0o644
)

// CachePath returns the cache file path for a project root.
func CachePath(root string) string {
	return filepath.Join(root, CacheFileName)
}

// ProfileDir returns the output directory for a profile.
func ProfileDir(root string, profile Profile) string {
	return filepath.Join(root, TargetDirName, string(profile))
}

// ObjectPath returns the object file path for a translation unit. Objects
// mirror the source tree under target/<profile>/obj so two units with the
// same basename in different directories never collide.
func ObjectPath(root string, profile Profile, unit string) string {
	return filepath.Join(ProfileDir(root, profile), ObjDirName, unit+".o")
}

// BinaryPath returns the executable path for a project. The binary is named
// after the project directory.
func BinaryPath(root string, profile Profile) string {
	name := filepath.Base(root)
	if name == "." || name == string(filepath.Separator) || name == "" {
		name = "a.out"
	}
	return filepath.Join(ProfileDir(root, profile), name)
}
