// Package clipboard copies note text to the system clipboard.
// The native backend is used where it works without external tools,
// anything else goes through the platform clipboard commands
// (wl-copy, xclip, xsel, termux).
package clipboard

import (
	"errors"
	"os"
	"runtime"

	atotto "github.com/atotto/clipboard"
	"golang.design/x/clipboard"
)

var (
	useNative = false
	ready     = false
)

var ErrUnavailable = errors.New("no clipboard backend available")

func Init() error {
	switch runtime.GOOS {
	case "windows", "darwin":
		useNative = true

	case "linux":
		// the native backend only talks X11
		useNative = os.Getenv("DISPLAY") != "" && os.Getenv("WAYLAND_DISPLAY") == ""

	default:
		useNative = false
	}

	if useNative {
		if err := clipboard.Init(); err != nil {
			useNative = false
		}
	}

	if !useNative && atotto.Unsupported {
		return ErrUnavailable
	}

	ready = true
	return nil
}

func Write(text string) error {
	if !ready {
		return errors.New("clipboard not initialized")
	}

	if useNative {
		clipboard.Write(clipboard.FmtText, []byte(text))
		return nil
	}

	return atotto.WriteAll(text)
}
