// client package provides a client context for invoking camdeck API endpoints.
package client

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"camdeck/v0/internal/config"
	"camdeck/v0/internal/utils"
	"github.com/go-resty/resty/v2"
)

const DEFAULT_TIMEOUT = 5 * time.Second

type ClientHttpContext struct {
	HttpClient     *resty.Client
	serverEndpoint string
	scheme         string
}

type ClientHttpOptions struct {
	// Constructed host:port server endpoint
	ServerEndpoint string
	Timeout        time.Duration
}

type ClientHttpTLSOptions struct {
	ClientHttpOptions
	TrustedCaPath string

	// Optional client key pair, presented when the server asks for one.
	ClientCertificatePath string
	ClientKeyPath         string
}

// StatusError is returned for any non-2xx response.
type StatusError struct {
	Method     string
	Endpoint   string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s %s resulted in a non-OK response code: %d", e.Method, e.Endpoint, e.StatusCode)
}

// createTlsConfig is a private helper function which builds the TLS configuration
// used to reach the server, given the credentials.
// This returns a TLS config instance along with an error reflecting the failure
// state.
func createTlsConfig(opt ClientHttpTLSOptions) (*tls.Config, error) {
	tlsConfig := &tls.Config{
		MinVersion: tls.VersionTLS12,
	}

	// Load the CA that authorized the server's certs.
	if opt.TrustedCaPath != "" {
		log.Printf("Using trusted CA Certificate: %s\n", opt.TrustedCaPath)
		caCrtContent, err := os.ReadFile(opt.TrustedCaPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read CA cert %s: %v", opt.TrustedCaPath, err)
		}

		caCrts, err := utils.ParseCertificatesFromPEMBytes(caCrtContent)
		if err != nil {
			return nil, fmt.Errorf("invalid CA cert %s: %v", opt.TrustedCaPath, err)
		}

		caCrtPool := x509.NewCertPool()
		for _, caCrt := range caCrts {
			if config.Verbose {
				log.Printf("Trusting CA '%s'\n", caCrt.Subject.CommonName)
			}
			caCrtPool.AddCert(caCrt)
		}
		tlsConfig.RootCAs = caCrtPool
	}

	if opt.ClientCertificatePath != "" && opt.ClientKeyPath != "" {
		cert, err := tls.LoadX509KeyPair(opt.ClientCertificatePath, opt.ClientKeyPath)
		if err != nil {
			return nil, fmt.Errorf("failed creating x509 keypair from client cert file %s and client key file %s: %v", opt.ClientCertificatePath, opt.ClientKeyPath, err)
		}
		tlsConfig.Certificates = []tls.Certificate{cert}
	}

	return tlsConfig, nil
}

func newRestyClient(opt ClientHttpOptions, scheme string) *resty.Client {
	timeout := opt.Timeout
	if timeout == 0 {
		timeout = DEFAULT_TIMEOUT
	}

	r := resty.New()
	r.SetBaseURL(fmt.Sprintf("%s://%s", scheme, opt.ServerEndpoint))
	r.SetTimeout(timeout)
	r.SetHeader("Accept", "application/json")
	return r
}

// NewClientContext creates a plain HTTP Client Context instance.
// This returns an http client instance along with an error reflecting the failure state.
func NewClientContext(opt ClientHttpOptions) (*ClientHttpContext, error) {
	if opt.ServerEndpoint == "" {
		return nil, fmt.Errorf("server endpoint cannot be empty")
	}

	return &ClientHttpContext{
		HttpClient:     newRestyClient(opt, "http"),
		serverEndpoint: opt.ServerEndpoint,
		scheme:         "http",
	}, nil
}

// NewClientContextWithTLS creates a Client HTTP Context instance, wrapped in TLS.
// This returns an http client instance along with an error reflecting the failure state.
func NewClientContextWithTLS(opt ClientHttpTLSOptions) (*ClientHttpContext, error) {
	if opt.ServerEndpoint == "" {
		return nil, fmt.Errorf("server endpoint cannot be empty")
	}

	tlsConfig, err := createTlsConfig(opt)
	if err != nil {
		return nil, fmt.Errorf("failed client context creation: %v", err)
	}

	r := newRestyClient(opt.ClientHttpOptions, "https")
	r.SetTLSClientConfig(tlsConfig)

	return &ClientHttpContext{
		HttpClient:     r,
		serverEndpoint: opt.ServerEndpoint,
		scheme:         "https",
	}, nil
}

// NewClientContextFromConfig picks a plain or TLS client context based on the
// configured scheme.
func NewClientContextFromConfig(cfg config.ServerEndpointConfig) (*ClientHttpContext, error) {
	opts := ClientHttpOptions{
		ServerEndpoint: cfg.Endpoint(),
		Timeout:        cfg.Timeout,
	}

	if cfg.Scheme == "https" {
		log.Println("Constructing client instance with TLS")
		return NewClientContextWithTLS(ClientHttpTLSOptions{
			ClientHttpOptions:     opts,
			TrustedCaPath:         cfg.TrustedCA,
			ClientCertificatePath: cfg.CertPath,
			ClientKeyPath:         cfg.KeyPath,
		})
	}

	if config.Verbose {
		log.Println("Constructing insecure client instance")
	}
	return NewClientContext(opts)
}

// URL resolves an API path or a server-relative source into an absolute URL.
// Absolute URLs are returned untouched.
func (ctx *ClientHttpContext) URL(path string) string {
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return path
	}
	return fmt.Sprintf("%s://%s/%s", ctx.scheme, ctx.serverEndpoint, strings.TrimPrefix(path, "/"))
}

// Invoke is a Client HTTP Context function which invokes the camdeck API endpoint,
// handling URI construction and JSON request bodies. A nil request body sends an
// empty body.
// This returns the response body along with an error instance reflecting the
// failure state.
func (ctx *ClientHttpContext) Invoke(c context.Context, apiEndpoint string, httpMethod string, requestBody interface{}) ([]byte, error) {
	endpoint := "/" + strings.TrimPrefix(apiEndpoint, "/")

	req := ctx.HttpClient.R().SetContext(c)
	if requestBody != nil {
		req.SetHeader("Content-Type", "application/json")
		req.SetBody(requestBody)
	}

	if config.Verbose {
		log.Println("Invoking a request to endpoint:", ctx.URL(endpoint))
	}
	resp, err := req.Execute(httpMethod, endpoint)
	if err != nil {
		return nil, fmt.Errorf("failed to invoke %s request with server: %v", httpMethod, err)
	}

	if !resp.IsSuccess() {
		return resp.Body(), &StatusError{
			Method:     httpMethod,
			Endpoint:   endpoint,
			StatusCode: resp.StatusCode(),
			Body:       strings.TrimSpace(resp.String()),
		}
	}

	return resp.Body(), nil
}
