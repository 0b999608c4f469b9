// Package open launches URLs with the system's default handler.
package open

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
)

// Start opens url without waiting for the handler to exit.
func Start(url string) error {
	cmd, ok := command(runtime.GOOS, url)
	if !ok {
		return fmt.Errorf("unsupported OS: %s", runtime.GOOS)
	}
	return cmd.Start()
}

func command(goos, url string) (*exec.Cmd, bool) {
	switch goos {
	case "windows":
		rundll := filepath.Join(os.Getenv("SYSTEMROOT"), "System32", "rundll32.exe")
		return exec.Command(rundll, "url.dll,FileProtocolHandler", url), true
	case "darwin":
		return exec.Command("open", url), true
	case "linux", "freebsd", "openbsd", "netbsd":
		return exec.Command("xdg-open", url), true
	case "android":
		return exec.Command("termux-open", url), true
	default:
		return nil, false
	}
}
