// Package runtime detects OS and kernel version strings for report metadata.
package runtime

// DetectOSVersion returns a human-readable OS version string and kernel
// version string for the current platform.
func DetectOSVersion() (osVersion, kernel string) {
	return detectOSVersion()
}
