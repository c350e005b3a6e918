// Package clipboard provides cross-platform clipboard support.
package clipboard

import (
	"os/exec"
	"runtime"
	"strings"
)

// linuxWriters are tried in order on Linux.
var linuxWriters = [][]string{
	{"wl-copy"},
	{"xclip", "-selection", "clipboard"},
	{"xsel", "--clipboard", "--input"},
}

// Write copies text to the system clipboard.
func Write(text string) error {
	var cmd *exec.Cmd

	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("pbcopy")
	case "windows":
		cmd = exec.Command("cmd", "/c", "clip")
	default:
		for _, writer := range linuxWriters {
			if _, err := exec.LookPath(writer[0]); err == nil {
				cmd = exec.Command(writer[0], writer[1:]...)
				break
			}
		}
		if cmd == nil {
			cmd = exec.Command("xclip", "-selection", "clipboard")
		}
	}

	cmd.Stdin = strings.NewReader(text)
	return cmd.Run()
}

// Available checks if clipboard functionality is available.
func Available() bool {
	switch runtime.GOOS {
	case "darwin":
		_, err := exec.LookPath("pbcopy")
		return err == nil
	case "windows":
		return true
	default:
		for _, writer := range linuxWriters {
			if _, err := exec.LookPath(writer[0]); err == nil {
				return true
			}
		}
		return false
	}
}
