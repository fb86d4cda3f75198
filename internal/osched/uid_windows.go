//go:build windows

package osched

// currentUID is unused on Windows; launchd only exists on darwin.
func currentUID() int {
	return -1
}
