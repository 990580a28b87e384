package ports

import "net/http"

// HTTPClient executes outbound chat requests.
// *http.Client satisfies this interface; tests substitute failing transports.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}
