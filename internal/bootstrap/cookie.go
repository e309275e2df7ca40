package bootstrap

import (
	"fmt"
	"net"
	"net/url"
	"strings"

	"golang.org/x/net/publicsuffix"

	"github.com/Digmusic88/mundo-world-school/config"
)

// ResolveCookieDomain turns the configured cookie domain into the value set on
// the browser-id cookie. "auto" derives the registrable domain of baseURL;
// IP and single-label hosts (localhost) yield "" so the browser scopes the
// cookie to the request host.
func ResolveCookieDomain(domain, baseURL string) (string, error) {
	domain = strings.TrimSpace(domain)
	if !strings.EqualFold(domain, config.CookieDomainAuto) {
		return strings.TrimPrefix(domain, "."), nil
	}

	u, err := url.Parse(baseURL)
	if err != nil {
		return "", fmt.Errorf("parse base url: %w", err)
	}
	host := u.Hostname()
	if host == "" {
		return "", fmt.Errorf("base url %q has no host", baseURL)
	}
	if net.ParseIP(host) != nil || !strings.Contains(host, ".") {
		return "", nil
	}

	registrable, err := publicsuffix.EffectiveTLDPlusOne(host)
	if err != nil {
		return "", fmt.Errorf("derive cookie domain from %q: %w", host, err)
	}
	return registrable, nil
}
