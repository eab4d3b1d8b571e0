package utils

import (
	"fmt"
	"os/exec"
	"runtime"
)

// ValidateExiftoolDependency checks that the metadata tool can be executed.
// tool is either a name looked up in PATH or a path to the binary.
func ValidateExiftoolDependency(tool string) error {
	if _, err := exec.LookPath(tool); err != nil {
		return fmt.Errorf("%s not found in PATH. %s", tool, getInstallationInstructions())
	}
	return nil
}

// getInstallationInstructions returns platform-specific installation instructions
func getInstallationInstructions() string {
	switch runtime.GOOS {
	case "darwin":
		return "Install with: brew install exiftool"
	case "linux":
		return "Install with: apt-get install libimage-exiftool-perl (Ubuntu/Debian) or dnf install perl-Image-ExifTool (Fedora/RHEL)"
	case "windows":
		return "Download from https://exiftool.org and add exiftool.exe to PATH"
	default:
		return "Download from https://exiftool.org"
	}
}
