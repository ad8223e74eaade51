package server

import (
	"context"
	"fmt"
	"net/http"
	"sync"

	"github.com/SheCodesAus/vibelab/internal/shared"
	"github.com/SheCodesAus/vibelab/internal/tokens"
)

// Exchanger completes the authorization handshake from a callback URL.
// Implemented by auth.Flow, which owns the code verifier lifecycle.
type Exchanger interface {
	Complete(ctx context.Context, callbackURL string) (tokens.Credential, error)
}

// CallbackResult is the outcome of one authorization attempt.
type CallbackResult struct {
	Credential tokens.Credential
	err        error
}

func (r *CallbackResult) Error() error {
	return r.err
}

// CallbackHandler serves the authorization redirect exactly once.
// Implements [Handler] for registration with a [Router].
type CallbackHandler struct {
	flow        Exchanger
	state       string
	resultChan  chan CallbackResult
	once        sync.Once
	callbackHit bool
	mu          sync.Mutex
}

// NewCallbackHandler creates a handler that expects the given state
// token in the redirect. The state should be cryptographically random.
func NewCallbackHandler(flow Exchanger, state string) *CallbackHandler {
	return &CallbackHandler{
		flow:       flow,
		state:      state,
		resultChan: make(chan CallbackResult, 1),
	}
}

// Routes returns the HTTP routes this handler serves.
func (h *CallbackHandler) Routes() []string {
	return []string{"/callback"}
}

// ServeHTTP handles the authorization redirect.
//
// Validates the state parameter, hands the full callback URL to the
// [Exchanger], and sends the result through the result channel. Repeat
// hits are refused; the code and verifier are single-use.
func (h *CallbackHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	if h.callbackHit {
		h.mu.Unlock()
		http.Error(w, "Callback already processed", http.StatusBadRequest)
		return
	}
	h.callbackHit = true
	h.mu.Unlock()

	if state := r.URL.Query().Get("state"); state != h.state {
		h.Send(CallbackResult{err: shared.ErrInvalidState})
		http.Error(w, "Invalid state parameter", http.StatusBadRequest)
		return
	}

	cred, err := h.flow.Complete(r.Context(), r.URL.String())
	if err != nil {
		h.Send(CallbackResult{err: err})
		http.Error(w, "Authorization failed", http.StatusBadRequest)
		return
	}

	h.Send(CallbackResult{Credential: cred})

	w.Header().Set("Content-Type", "text/html")
	w.WriteHeader(http.StatusOK)
	fmt.Fprint(w, successPage)
}

// Send delivers the result through the channel (only once).
func (h *CallbackHandler) Send(result CallbackResult) {
	h.once.Do(func() {
		h.resultChan <- result
		close(h.resultChan)
	})
}

// Result returns the channel that receives the authorization outcome.
//
// The channel receives exactly one result and is then closed.
func (h *CallbackHandler) Result() <-chan CallbackResult {
	return h.resultChan
}

const successPage = `
<!DOCTYPE html>
<html>
<head>
    <title>Spotify Linked</title>
    <style>
        body { font-family: -apple-system, BlinkMacSystemFont, "Segoe UI", Roboto, sans-serif;
               display: flex; align-items: center; justify-content: center; height: 100vh;
               margin: 0; background: #f5f5f5; }
        .container { text-align: center; background: white; padding: 2rem;
                     border-radius: 8px; box-shadow: 0 2px 4px rgba(0,0,0,0.1); }
        h1 { color: #1DB954; margin: 0 0 1rem 0; }
        p { color: #666; margin: 0; }
    </style>
</head>
<body>
    <div class="container">
        <h1>&#10003; Spotify Linked</h1>
        <p>VibeLab can now search with your account. You can close this window.</p>
    </div>
</body>
</html>
`
