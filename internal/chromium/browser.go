package chromium

import (
	"os"
	"path/filepath"
	"runtime"

	"github.com/xtruder/bookmarks-search/internal/bookmarks"
)

// DefaultProfiles is the profile lookup order. The first profile directory
// holding a bookmark store wins.
var DefaultProfiles = []string{"Default", "Profile 3", "Profile 2", "Profile 1"}

// Browser describes where a Chromium based browser keeps its data and how to start it
type Browser struct {
	ID bookmarks.BrowserID

	// DataDir overrides the platform data directory when set.
	DataDir string
	// Executable overrides the platform executable candidates when set.
	Executable string
	// Profiles overrides DefaultProfiles when set.
	Profiles []string
}

// Env abstracts the process environment so lookups can be tested.
type Env struct {
	GOOS   string
	Getenv func(string) string
	Home   string
}

// HostEnv returns the environment of the running process.
func HostEnv() Env {
	home, _ := os.UserHomeDir()
	return Env{GOOS: runtime.GOOS, Getenv: os.Getenv, Home: home}
}

// ResolveDataDir returns the browser's user data directory for the
// environment, or "" when the platform is not supported.
func (b Browser) ResolveDataDir(env Env) string {
	if b.DataDir != "" {
		return b.DataDir
	}

	switch env.GOOS {
	case "windows":
		local := env.Getenv("LOCALAPPDATA")
		if local == "" {
			return ""
		}
		switch b.ID {
		case bookmarks.Chrome:
			return filepath.Join(local, "Google", "Chrome", "User Data")
		case bookmarks.Edge:
			return filepath.Join(local, "Microsoft", "Edge", "User Data")
		}
	case "darwin":
		if env.Home == "" {
			return ""
		}
		appData := filepath.Join(env.Home, "Library", "Application Support")
		switch b.ID {
		case bookmarks.Chrome:
			return filepath.Join(appData, "Google", "Chrome")
		case bookmarks.Edge:
			return filepath.Join(appData, "Microsoft Edge")
		}
	case "linux":
		config := env.Getenv("XDG_CONFIG_HOME")
		if config == "" {
			if env.Home == "" {
				return ""
			}
			config = filepath.Join(env.Home, ".config")
		}
		switch b.ID {
		case bookmarks.Chrome:
			return filepath.Join(config, "google-chrome")
		case bookmarks.Edge:
			return filepath.Join(config, "microsoft-edge")
		}
	}

	return ""
}

// ExecutableCandidates lists executable paths to try, in order.
func (b Browser) ExecutableCandidates(env Env) []string {
	if b.Executable != "" {
		return []string{b.Executable}
	}

	switch env.GOOS {
	case "windows":
		switch b.ID {
		case bookmarks.Chrome:
			suffix := filepath.Join("Google", "Chrome", "Application", "chrome.exe")
			var paths []string
			for _, key := range []string{"PROGRAMFILES(X86)", "PROGRAMFILES", "LOCALAPPDATA"} {
				if prefix := env.Getenv(key); prefix != "" {
					paths = append(paths, filepath.Join(prefix, suffix))
				}
			}
			return paths
		case bookmarks.Edge:
			return []string{`C:\Program Files (x86)\Microsoft\Edge\Application\msedge.exe`}
		}
	case "darwin":
		switch b.ID {
		case bookmarks.Chrome:
			return []string{"/Applications/Google Chrome.app/Contents/MacOS/Google Chrome"}
		case bookmarks.Edge:
			return []string{"/Applications/Microsoft Edge.app/Contents/MacOS/Microsoft Edge"}
		}
	case "linux":
		switch b.ID {
		case bookmarks.Chrome:
			return []string{"/usr/bin/google-chrome"}
		case bookmarks.Edge:
			return []string{"/usr/bin/microsoft-edge"}
		}
	}

	return nil
}

// LocateProfile returns the first profile directory under dataDir that
// contains a bookmark store. The boolean is false when none does.
func (b Browser) LocateProfile(dataDir string) (string, bool) {
	profiles := b.Profiles
	if len(profiles) == 0 {
		profiles = DefaultProfiles
	}
	return LocateProfile(dataDir, profiles)
}

// LocateProfile checks candidates in order and returns the first profile
// directory holding a regular Bookmarks file.
func LocateProfile(dataDir string, candidates []string) (string, bool) {
	for _, name := range candidates {
		dir := filepath.Join(dataDir, name)
		info, err := os.Stat(filepath.Join(dir, BookmarksFile))
		if err == nil && info.Mode().IsRegular() {
			return dir, true
		}
	}
	return "", false
}
