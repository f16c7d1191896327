package browser

import (
	"os"
	"path/filepath"
	"runtime"
)

// chromeUserDataDir returns the default Chrome profile directory for the
// current platform. Only chromium supports persistent profile reuse; other
// engines keep their profiles in formats playwright cannot open directly.
func chromeUserDataDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}

	switch runtime.GOOS {
	case "darwin":
		return filepath.Join(home, "Library", "Application Support", "Google", "Chrome"), nil
	case "windows":
		return filepath.Join(home, "AppData", "Local", "Google", "Chrome", "User Data"), nil
	default:
		return filepath.Join(home, ".config", "google-chrome"), nil
	}
}
