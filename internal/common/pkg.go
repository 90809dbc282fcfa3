package common

import "path"

// PkgAlias returns the last element of a package path, the name the
// package is referred to by in qualified type names.
// Returns empty string if pkgPath is empty.
func PkgAlias(pkgPath string) string {
	if pkgPath == "" {
		return ""
	}

	return path.Base(pkgPath)
}

// Qualify prefixes name with the package alias of pkgPath, e.g.
// ("example.com/x/fleet", "Car") gives "fleet.Car". Without a package the
// name is returned unchanged.
func Qualify(pkgPath, name string) string {
	alias := PkgAlias(pkgPath)
	if alias == "" {
		return name
	}

	return alias + "." + name
}
