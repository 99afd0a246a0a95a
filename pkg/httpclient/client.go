// Package httpclient is the shared request layer for every backend API.
// It issues JSON GET/POST calls with a per-call timeout, retries timeouts a
// bounded number of times with a fixed delay, and converts every failure
// into a typed Fault instead of letting transport errors leak to callers.
package httpclient

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"time"

	"github.com/sirupsen/logrus"

	config "github.com/richardcertto/n2-bot/configs"
)

var errTooManyRedirects = errors.New("stopped after 10 redirects")

type Client struct {
	http    *http.Client
	timeout time.Duration
	retries int
	delay   time.Duration
}

type callOptions struct {
	timeout time.Duration
}

type Option func(*callOptions)

// WithTimeout overrides the client default timeout for one call. Large box
// payloads use this.
func WithTimeout(d time.Duration) Option {
	return func(o *callOptions) { o.timeout = d }
}

func New(cfg config.HTTPConfig) *Client {
	// The backend fleet runs self-signed certificates on internal names;
	// verification stays off, matching what the upstreams require.
	tr := &http.Transport{
		TLSClientConfig: &tls.Config{InsecureSkipVerify: true},
	}

	return &Client{
		http: &http.Client{
			Transport: tr,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= 10 {
					return errTooManyRedirects
				}
				return nil
			},
		},
		timeout: time.Duration(cfg.TimeoutSeconds) * time.Second,
		retries: cfg.Retries,
		delay:   time.Duration(cfg.RetryDelaySeconds) * time.Second,
	}
}

// Get fetches url and decodes the JSON body into out. A non-nil Fault is
// the only failure signal; out is untouched on failure.
func (c *Client) Get(ctx context.Context, rawURL string, headers map[string]string, out interface{}, opts ...Option) *Fault {
	return c.do(ctx, http.MethodGet, rawURL, headers, nil, out, opts...)
}

// Post sends body as JSON and decodes the JSON response into out.
func (c *Client) Post(ctx context.Context, rawURL string, headers map[string]string, body, out interface{}, opts ...Option) *Fault {
	return c.do(ctx, http.MethodPost, rawURL, headers, body, out, opts...)
}

func (c *Client) do(ctx context.Context, method, rawURL string, headers map[string]string, body, out interface{}, opts ...Option) *Fault {
	call := callOptions{timeout: c.timeout}
	for _, opt := range opts {
		opt(&call)
	}

	var payload []byte
	if body != nil {
		var err error
		payload, err = json.Marshal(body)
		if err != nil {
			return &Fault{Kind: KindRequest, Message: fmt.Sprintf("failed to encode request body: %v", err)}
		}
	}

	for attempt := 1; attempt <= c.retries; attempt++ {
		fault, retry := c.attempt(ctx, method, rawURL, headers, payload, out, call.timeout)
		if fault == nil {
			observeRequest(method, outcomeSuccess)
			return nil
		}
		if !retry {
			observeRequest(method, fault.Kind.String())
			return fault
		}
		logrus.Warnf("Timeout on attempt %d/%d for %s, retrying in %s", attempt, c.retries, rawURL, c.delay)
		observeRetry(method)
		if attempt < c.retries {
			select {
			case <-time.After(c.delay):
			case <-ctx.Done():
				observeRequest(method, KindTimeout.String())
				return &Fault{Kind: KindTimeout, Message: "Erro: O tempo para resposta foi excedido."}
			}
		}
	}

	logrus.Errorf("Giving up on %s after %d attempts", rawURL, c.retries)
	observeRequest(method, KindTimeout.String())
	return &Fault{
		Kind:    KindTimeout,
		Message: fmt.Sprintf("A requisição excedeu o número máximo de %d tentativas devido a timeouts.", c.retries),
	}
}

// attempt performs a single request. The second return value reports whether
// the failure is a timeout eligible for another attempt.
func (c *Client) attempt(ctx context.Context, method, rawURL string, headers map[string]string, payload []byte, out interface{}, timeout time.Duration) (*Fault, bool) {
	reqCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	var reader io.Reader
	if payload != nil {
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(reqCtx, method, rawURL, reader)
	if err != nil {
		return &Fault{Kind: KindRequest, Message: fmt.Sprintf("Erro: Ocorreu um problema durante a requisição: %v", err)}, false
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		fault := classify(err, rawURL, time.Since(start))
		return fault, fault.Kind == KindTimeout
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		logrus.Errorf("HTTP status %d for %s", resp.StatusCode, rawURL)
		return statusFault(resp.StatusCode), false
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		fault := classify(err, rawURL, time.Since(start))
		return fault, fault.Kind == KindTimeout
	}

	if out != nil {
		if err := json.Unmarshal(raw, out); err != nil {
			logrus.Errorf("Response from %s is not valid JSON", rawURL)
			return &Fault{Kind: KindDecode, Message: "Erro: A resposta do servidor não pôde ser decodificada."}, false
		}
	}

	logrus.Infof("%s %s completed in %.2fs", method, rawURL, time.Since(start).Seconds())
	return nil, false
}

// classify converts an unstructured transport error into the stable fault
// vocabulary. This is the single place that inspects error types.
func classify(err error, rawURL string, elapsed time.Duration) *Fault {
	if errors.Is(err, errTooManyRedirects) {
		logrus.Errorf("Too many redirects for %s", rawURL)
		return &Fault{Kind: KindRedirects, Message: "Erro: A solicitação resultou em muitos redirecionamentos."}
	}

	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
		logrus.Warnf("Timeout after %.2fs for %s", elapsed.Seconds(), rawURL)
		return &Fault{Kind: KindTimeout, Message: "Erro: O tempo para resposta foi excedido."}
	}

	var opErr *net.OpError
	var dnsErr *net.DNSError
	if errors.As(err, &opErr) || errors.As(err, &dnsErr) {
		logrus.Errorf("Connection error for %s: %v", rawURL, err)
		return &Fault{Kind: KindConnection, Message: "Erro: Falha ao tentar conectar com o servidor."}
	}

	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		logrus.Errorf("Request error for %s: %v", rawURL, err)
		return &Fault{Kind: KindRequest, Message: "Erro: Ocorreu um problema durante a requisição."}
	}

	logrus.Errorf("Unexpected error during request to %s: %v", rawURL, err)
	return &Fault{Kind: KindUnexpected, Message: "Ocorreu um erro inesperado."}
}
