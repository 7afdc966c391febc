// Package s3 implements a file-like client for S3-compatible object stores.
//
// A Client issues individually signed HTTP requests (signature v2, see the
// sign package) against one bucket. Objects are opened through read- or
// write-mode handles (Object); bucket contents are enumerated through a
// marker-paging ListPaginator. No retries happen here; retry policy belongs
// to the caller.
package s3

import (
	"bytes"
	"context"
	"crypto/md5"
	"crypto/tls"
	"encoding/base64"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"opens3/internal/sign"
)

// maxErrorBody bounds how much of an error response body is retained for
// diagnostics.
const maxErrorBody = 8 << 10

type Options struct {
	// Endpoint overrides the store URL. Empty means virtual-host style
	// addressing against https://<bucket>.s3.amazonaws.com.
	Endpoint           string
	AccessKey          string
	SecretKey          string
	Bucket             string
	Prefix             string
	PathStyle          bool
	InsecureSkipVerify bool
	// HTTPClient supplies the transport, including any timeout policy.
	// Defaults to http.DefaultClient.
	HTTPClient *http.Client
}

// Client talks to a single bucket. It holds immutable credentials and is safe
// for concurrent use; every open handle and paginator owns its own state.
type Client struct {
	httpClient *http.Client
	creds      sign.Credentials
	endpoint   *url.URL
	bucket     string
	prefix     string
	pathStyle  bool
}

func New(opts Options) (*Client, error) {
	if opts.Bucket == "" {
		return nil, fmt.Errorf("s3: bucket is required")
	}
	if opts.AccessKey == "" || opts.SecretKey == "" {
		return nil, fmt.Errorf("s3: %w", sign.ErrMissingCredentials)
	}

	endpoint := strings.TrimSpace(opts.Endpoint)
	pathStyle := opts.PathStyle
	if endpoint == "" {
		endpoint = fmt.Sprintf("https://%s.s3.amazonaws.com", opts.Bucket)
		pathStyle = false
	}
	endpointURL, err := url.Parse(endpoint)
	if err != nil {
		return nil, fmt.Errorf("s3 endpoint: %w", err)
	}
	if endpointURL.Scheme == "" {
		endpointURL.Scheme = "https"
		endpointURL, err = url.Parse(endpointURL.String())
		if err != nil {
			return nil, fmt.Errorf("s3 endpoint: %w", err)
		}
	}

	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	if opts.InsecureSkipVerify {
		httpClient = &http.Client{
			Timeout: httpClient.Timeout,
			Transport: &http.Transport{
				TLSClientConfig: &tls.Config{InsecureSkipVerify: true},
			},
		}
	}

	return &Client{
		httpClient: httpClient,
		creds:      sign.Credentials{AccessKeyID: opts.AccessKey, SecretAccessKey: opts.SecretKey},
		endpoint:   endpointURL,
		bucket:     opts.Bucket,
		prefix:     strings.Trim(opts.Prefix, "/"),
		pathStyle:  pathStyle,
	}, nil
}

// Key returns the full object key for a path relative to the configured
// prefix.
func (c *Client) Key(relative string) string {
	return JoinKey(c.prefix, relative)
}

func (c *Client) Bucket() string { return c.bucket }

func (c *Client) Prefix() string { return c.prefix }

// URL returns the address of key on the store, without any authentication.
func (c *Client) URL(key string) string {
	return c.requestURL(c.Key(key), nil)
}

// GetObject fetches the full body of key in one GET. Returns ErrNotFound for
// absent keys.
func (c *Client) GetObject(ctx context.Context, key string) ([]byte, http.Header, error) {
	key = c.Key(key)
	resp, err := c.do(ctx, http.MethodGet, key, nil, nil, "", nil)
	if err != nil {
		return nil, nil, err
	}
	defer resp.Body.Close()
	if err := c.responseError("get", key, resp); err != nil {
		return nil, nil, err
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, nil, &TransportError{Op: "get", Key: key, Err: err}
	}
	return body, resp.Header, nil
}

// PutObject uploads body to key in a single PUT. Content-MD5 is computed
// here; contentType falls back to a guess from the key extension. Extra
// headers are passed through unchanged except that Date and Authorization
// cannot be overridden.
func (c *Client) PutObject(ctx context.Context, key string, body []byte, contentType string, extra http.Header) error {
	key = c.Key(key)
	if contentType == "" {
		contentType = GuessContentType(key)
	}
	resp, err := c.do(ctx, http.MethodPut, key, nil, body, contentType, extra)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	return c.responseError("put", key, resp)
}

// DeleteObject removes key from the bucket. Deleting an absent key is not an
// error; the store answers 204 either way.
func (c *Client) DeleteObject(ctx context.Context, key string) error {
	key = c.Key(key)
	resp, err := c.do(ctx, http.MethodDelete, key, nil, nil, "", nil)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	return c.responseError("delete", key, resp)
}

// HeadObject returns metadata for key without fetching the body. Returns
// ErrNotFound for absent keys.
func (c *Client) HeadObject(ctx context.Context, key string) (*ObjectInfo, error) {
	key = c.Key(key)
	resp, err := c.do(ctx, http.MethodHead, key, nil, nil, "", nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if err := c.responseError("head", key, resp); err != nil {
		return nil, err
	}
	info := &ObjectInfo{Key: key}
	if v := resp.Header.Get("Content-Length"); v != "" {
		info.Size, _ = strconv.ParseInt(v, 10, 64)
	}
	if v := resp.Header.Get("Last-Modified"); v != "" {
		info.LastModified, _ = time.Parse(http.TimeFormat, v)
	}
	return info, nil
}

// Exists reports whether key is present in the bucket.
func (c *Client) Exists(ctx context.Context, key string) (bool, error) {
	_, err := c.HeadObject(ctx, key)
	switch {
	case err == nil:
		return true, nil
	case isNotFound(err):
		return false, nil
	default:
		return false, err
	}
}

// do signs and issues one request. key must already carry the client prefix
// and be clean; an empty key addresses the bucket itself (listings).
func (c *Client) do(ctx context.Context, method, key string, query url.Values, body []byte, contentType string, extra http.Header) (*http.Response, error) {
	var reqBody io.Reader
	contentMD5 := ""
	if body != nil {
		sum := md5.Sum(body)
		contentMD5 = base64.StdEncoding.EncodeToString(sum[:])
		reqBody = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.requestURL(key, query), reqBody)
	if err != nil {
		return nil, fmt.Errorf("s3 request: %w", err)
	}

	date := time.Now().UTC().Format(http.TimeFormat)
	req.Header.Set("Date", date)
	if contentMD5 != "" {
		req.Header.Set("Content-MD5", contentMD5)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	amz := map[string]string{}
	for name, values := range extra {
		if len(values) == 0 {
			continue
		}
		canonical := http.CanonicalHeaderKey(name)
		// The computed Date and Authorization headers are never
		// caller-overridable.
		if canonical == "Date" || canonical == "Authorization" {
			continue
		}
		req.Header.Set(canonical, values[0])
	}
	for name, values := range req.Header {
		if strings.HasPrefix(strings.ToLower(name), "x-amz-") && len(values) > 0 {
			amz[strings.ToLower(name)] = values[0]
		}
	}

	resourceKey := "/" + key
	resource := sign.CanonicalResource(c.bucket, resourceKey, query)
	auth, err := sign.Authorization(sign.Request{
		Method:      method,
		Resource:    resource,
		ContentMD5:  contentMD5,
		ContentType: req.Header.Get("Content-Type"),
		Date:        date,
		AmzHeaders:  amz,
	}, c.creds)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", auth)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &TransportError{Op: method, Key: key, Err: err}
	}
	return resp, nil
}

func (c *Client) requestURL(key string, query url.Values) string {
	u := *c.endpoint
	if c.pathStyle {
		u.Path = "/" + c.bucket + "/" + key
	} else {
		u.Path = "/" + key
	}
	if len(query) > 0 {
		u.RawQuery = query.Encode()
	}
	return u.String()
}

// responseError maps a store response status onto the error taxonomy. 2xx is
// success; the caller owns the body in that case.
func (c *Client) responseError(op, key string, resp *http.Response) error {
	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		return nil
	case resp.StatusCode == http.StatusNotFound:
		return fmt.Errorf("%s %s: %w", op, key, ErrNotFound)
	case resp.StatusCode == http.StatusForbidden:
		return fmt.Errorf("%s %s: %w", op, key, ErrAuthFailed)
	default:
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return &StoreError{Status: resp.StatusCode, Body: body}
	}
}
