package browser

import (
	"net/url"
	"os/exec"
	"runtime"
	"strings"

	"github.com/cockroachdb/errors"
)

// IsURL reports whether target is an absolute http(s) address that should be
// handed to the system browser.
func IsURL(target string) bool {
	u, err := url.Parse(target)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

// HostAllowed reports whether target's host appears in allowed. An entry of
// the form "*.example.com" matches example.com and all of its subdomains.
func HostAllowed(target string, allowed []string) bool {
	u, err := url.Parse(target)
	if err != nil {
		return false
	}
	host := strings.ToLower(u.Hostname())
	if host == "" {
		return false
	}
	for _, entry := range allowed {
		entry = strings.ToLower(strings.TrimSpace(entry))
		if domain, ok := strings.CutPrefix(entry, "*."); ok {
			if host == domain || strings.HasSuffix(host, "."+domain) {
				return true
			}
			continue
		}
		if entry != "" && host == entry {
			return true
		}
	}
	return false
}

func Open(target string) error {
	if !IsURL(target) {
		return errors.Newf("not a web address: %q", target)
	}

	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", target)
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", target)
	default:
		cmd = exec.Command("xdg-open", target)
	}

	if err := cmd.Start(); err != nil {
		return errors.Wrapf(err, "opening %s", target)
	}
	go func() { _ = cmd.Wait() }()
	return nil
}
