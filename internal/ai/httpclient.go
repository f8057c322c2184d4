package ai

import (
	"net/http"
	"net/url"
)

// NewHTTPClient creates a new HTTP client, optionally configured with a proxy
// and a bearer token.
func NewHTTPClient(proxyAddr, token string) (*http.Client, error) {
	transport := &http.Transport{Proxy: http.ProxyFromEnvironment}

	if proxyAddr != "" {
		proxyURL, err := url.Parse(proxyAddr)
		if err != nil {
			return nil, err
		}
		transport.Proxy = http.ProxyURL(proxyURL)
	}

	client := &http.Client{
		Transport: transport,
	}

	if token != "" {
		// Add a wrapper to the transport to inject the auth header.
		client.Transport = &authTransport{
			token:     token,
			transport: transport,
		}
	}

	return client, nil
}

// authTransport is a wrapper to add the Authorization header to requests.
type authTransport struct {
	token     string
	transport http.RoundTripper
}

func (t *authTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	req = req.Clone(req.Context())
	req.Header.Set("Authorization", "Bearer "+t.token)
	return t.transport.RoundTrip(req)
}
