// Package fetch reads ckv documents over HTTP
package fetch

import (
	"bytes"
	"context"
	"net/http"
	"time"

	"github.com/carlmjohnson/requests"
	"github.com/kjk/ckv/ckv"
	"github.com/kjk/ckv/log"
)

const defaultTimeout = time.Second * 30

type Config struct {
	// if 0, we use 30 seconds
	Timeout time.Duration
	// additional HTTP headers, e.g. for authorization
	Header map[string]string
	// if nil, http.DefaultClient is used
	Client *http.Client
}

func (c *Config) timeout() time.Duration {
	if c == nil || c.Timeout <= 0 {
		return defaultTimeout
	}
	return c.Timeout
}

// Data downloads uri and returns the body
func Data(ctx context.Context, uri string, config *Config) ([]byte, error) {
	var buf bytes.Buffer
	r := requests.
		URL(uri).
		Accept("text/plain").
		ToBytesBuffer(&buf)
	if config != nil {
		for k, v := range config.Header {
			r = r.Header(k, v)
		}
		if config.Client != nil {
			r = r.Client(config.Client)
		}
	}
	ctx, cancel := context.WithTimeout(ctx, config.timeout())
	defer cancel()
	timeStart := time.Now()
	err := r.Fetch(ctx)
	if err != nil {
		return nil, err
	}
	log.Verbosef("fetch: downloaded %d bytes from '%s' in %s\n", buf.Len(), uri, time.Since(timeStart))
	return buf.Bytes(), nil
}

// Document downloads uri and returns it as a ckv.Document.
// The whole body is kept in memory.
func Document(ctx context.Context, uri string, config *Config) (*ckv.Document, error) {
	d, err := Data(ctx, uri, config)
	if err != nil {
		return nil, err
	}
	return ckv.NewDocument(bytes.NewReader(d)), nil
}

// Table downloads uri and parses it
func Table(ctx context.Context, uri string, config *Config) (*ckv.Table, error) {
	doc, err := Document(ctx, uri, config)
	if err != nil {
		return nil, err
	}
	return doc.Table()
}

// Value downloads uri and returns value for key
func Value(ctx context.Context, uri string, key string, config *Config) (string, error) {
	doc, err := Document(ctx, uri, config)
	if err != nil {
		return "", err
	}
	return doc.Find(key)
}
