package tui

import (
	"errors"
	"fmt"
	"net/url"
	"os/exec"
	"runtime"
	"strings"
)

// Opener hands a link to something that can display it.
type Opener func(url string) error

var (
	errNoLink     = errors.New("assessment has no link")
	errUnsafeLink = errors.New("assessment link is not an http(s) URL")
)

// checkLink accepts only absolute http and https URLs. Links come from the
// recommendation service and end up as arguments to an OS launcher.
func checkLink(raw string) error {
	if strings.TrimSpace(raw) == "" {
		return errNoLink
	}
	u, err := url.Parse(raw)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("%w: %q", errUnsafeLink, raw)
	}
	return nil
}

// OpenBrowser opens link in the system browser without waiting for it to exit.
func OpenBrowser(link string) error {
	if err := checkLink(link); err != nil {
		return err
	}

	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", link)
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", link)
	default:
		cmd = exec.Command("xdg-open", link)
	}

	if err := cmd.Start(); err != nil {
		return fmt.Errorf("open %s: %w", link, err)
	}
	go func() { _ = cmd.Wait() }()
	return nil
}
