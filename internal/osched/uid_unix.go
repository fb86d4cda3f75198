//go:build !windows

package osched

import "golang.org/x/sys/unix"

// currentUID names the launchd GUI domain of the calling user.
func currentUID() int {
	return unix.Getuid()
}
