package client

import "sync"

// TokenSource resolves the access token for each outbound request.
type TokenSource interface {
	AccessToken() string
}

// TokenHolder is an in-memory TokenSource shared by the HTTP client and the
// auth service.
type TokenHolder struct {
	mu    sync.RWMutex
	token string
}

func (h *TokenHolder) AccessToken() string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.token
}

func (h *TokenHolder) SetAccessToken(token string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.token = token
}
