package deso

import (
	"context"
	"os/exec"
	"runtime"
)

// Receiver is called for every message arriving from a custody surface,
// with the origin the transport observed.
type Receiver func(origin string, raw []byte)

// Surface is the hidden channel to the custody context.
type Surface interface {
	Open(ctx context.Context, origin string, receive Receiver) error
	Post(ctx context.Context, message any, targetOrigin string) error
	Close() error
}

// Popup is an interactive custody window.
type Popup interface {
	Close() error
}

type PopupOpener interface {
	OpenPopup(url string) (Popup, error)
}

type PopupOpenerFunc func(url string) (Popup, error)

func (f PopupOpenerFunc) OpenPopup(url string) (Popup, error) {
	return f(url)
}

type noopPopup struct{}

func (noopPopup) Close() error { return nil }

// BrowserPopupOpener logs the approval url and asks the OS to open it. The
// window belongs to the user's browser, so closing it is a no-op.
var BrowserPopupOpener = PopupOpenerFunc(func(url string) (Popup, error) {
	log.Info().Msgf("custody approval required, open: %s", url)

	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", url)
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", url)
	default:
		cmd = exec.Command("xdg-open", url)
	}
	if err := cmd.Start(); err != nil {
		log.Debug().Msgf("unable to launch browser: %v", err)
	}

	return noopPopup{}, nil
})
