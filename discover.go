package md2slides

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"

	"github.com/go-rod/rod/lib/launcher"
	"github.com/google/uuid"

	"github.com/alnah/go-md2slides/internal/fileutil"
)

// marpCommand is the Marp CLI executable name.
const marpCommand = "marp"

// localBinDir is where npm installs project-local executables.
var localBinDir = filepath.Join("node_modules", ".bin")

// FindMarp locates the Marp CLI.
// An explicit path or name is checked as given. Otherwise the project-local
// ./node_modules/.bin is searched before PATH.
func FindMarp(explicit string) (string, error) {
	if explicit != "" {
		if fileutil.IsFilePath(explicit) {
			if fileutil.IsExecutable(explicit) {
				return explicit, nil
			}
			return "", fmt.Errorf("%w: %s is not executable", ErrRendererNotFound, explicit)
		}
		path, err := exec.LookPath(explicit)
		if err != nil {
			return "", fmt.Errorf("%w: %v", ErrRendererNotFound, err)
		}
		return path, nil
	}

	for _, name := range localMarpNames() {
		local := filepath.Join(localBinDir, name)
		if fileutil.IsExecutable(local) {
			if abs, err := filepath.Abs(local); err == nil {
				return abs, nil
			}
			return local, nil
		}
	}

	path, err := exec.LookPath(marpCommand)
	if err != nil {
		return "", fmt.Errorf("%w: not in %s nor PATH", ErrRendererNotFound, localBinDir)
	}
	return path, nil
}

// localMarpNames lists the shims npm creates for the current platform.
func localMarpNames() []string {
	if runtime.GOOS == "windows" {
		return []string{marpCommand + ".cmd", marpCommand + ".exe"}
	}
	return []string{marpCommand}
}

// FindBrowser locates a Chrome executable: ROD_BROWSER_BIN first, then the
// usual install locations. It reports false when none is found.
func FindBrowser() (string, bool) {
	if bin := os.Getenv("ROD_BROWSER_BIN"); bin != "" {
		return bin, true
	}
	return launcher.LookPath()
}

// newRunID names one conversion.
func newRunID() string {
	return uuid.NewString()
}
