package myhttp

import (
	"fmt"
	"net/http"
	"os"
)

// GuessHostnameWithScheme derives this service's public base URL without an
// inbound request at hand, for push-subscription registration at startup.
func GuessHostnameWithScheme() string {
	if base := os.Getenv("PUBLIC_BASE_URL"); base != "" {
		return base
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	return fmt.Sprintf("http://localhost:%s", port)
}

func HostnameWithScheme(r *http.Request) string {
	scheme := "https"
	if r.TLS == nil {
		scheme = "http"
	}

	return fmt.Sprintf("%s://%s", scheme, r.Host)
}
