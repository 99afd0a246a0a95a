package httpclient

import "fmt"

// Kind classifies a request failure. Classification happens exactly once, at
// the point the underlying error is caught; every caller branches on this
// stable vocabulary instead of inspecting transport errors itself.
type Kind int

const (
	KindHTTPStatus Kind = iota + 1
	KindTimeout
	KindConnection
	KindRedirects
	KindDecode
	KindRequest
	KindUnexpected
)

func (k Kind) String() string {
	switch k {
	case KindHTTPStatus:
		return "http_status"
	case KindTimeout:
		return "timeout"
	case KindConnection:
		return "connection"
	case KindRedirects:
		return "redirects"
	case KindDecode:
		return "decode"
	case KindRequest:
		return "request"
	default:
		return "unexpected"
	}
}

// Fault is the structured failure value returned by the client. It never
// escapes as a panic; StatusCode is set only for KindHTTPStatus.
type Fault struct {
	Kind       Kind
	Message    string
	StatusCode int
}

func (f *Fault) Error() string { return f.Message }

func statusFault(code int) *Fault {
	return &Fault{
		Kind:       KindHTTPStatus,
		Message:    fmt.Sprintf("Erro no servidor (%d)", code),
		StatusCode: code,
	}
}
