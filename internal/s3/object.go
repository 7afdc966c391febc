package s3

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
)

// Mode selects what an object handle may do for its lifetime.
type Mode string

const (
	ModeRead  Mode = "r"
	ModeWrite Mode = "w"
)

// OpenOption adjusts how an object handle is opened.
type OpenOption func(*Object)

// WithContentType sets the Content-Type sent on the closing PUT of a
// write-mode handle, overriding the extension-based guess.
func WithContentType(ct string) OpenOption {
	return func(o *Object) { o.contentType = ct }
}

// WithACL sets the canned ACL for a write-mode handle. The default is
// "private".
func WithACL(acl string) OpenOption {
	return func(o *Object) { o.extra.Set("x-amz-acl", acl) }
}

// WithHeader adds one extra request header, e.g. x-amz-meta-* metadata. The
// computed Date and Authorization headers cannot be overridden this way.
func WithHeader(name, value string) OpenOption {
	return func(o *Object) { o.extra.Set(name, value) }
}

// WithHeaders adds a set of extra request headers.
func WithHeaders(headers map[string]string) OpenOption {
	return func(o *Object) {
		for name, value := range headers {
			o.extra.Set(name, value)
		}
	}
}

// Object is a mode-bound handle on one remote object. A read handle fetches
// the body lazily on first Read and caches it; a write handle buffers writes
// in memory and uploads everything in exactly one PUT when closed. Handles
// are not safe for concurrent use; each handle owns its buffer exclusively.
//
// Close must run on every exit path, typically via defer:
//
//	obj, err := client.Open("reports/2026/total.csv", s3.ModeWrite)
//	if err != nil {
//		return err
//	}
//	defer func() { err = errors.Join(err, obj.Close(ctx)) }()
type Object struct {
	client      *Client
	key         string
	mode        Mode
	contentType string
	extra       http.Header

	buf     bytes.Buffer
	data    []byte
	header  http.Header
	fetched bool
	written bool
	closed  bool
}

// Open returns a handle on key bound to mode. No request is issued here; a
// read handle fetches on first Read, a write handle uploads on Close. Any
// mode other than ModeRead or ModeWrite fails with ErrInvalidMode before any
// request is constructed.
func (c *Client) Open(key string, mode Mode, opts ...OpenOption) (*Object, error) {
	if mode != ModeRead && mode != ModeWrite {
		return nil, fmt.Errorf("open %s: %w (got %q)", key, ErrInvalidMode, mode)
	}
	o := &Object{
		client: c,
		key:    CleanKey(key),
		mode:   mode,
		extra:  http.Header{},
	}
	for _, opt := range opts {
		opt(o)
	}
	if mode == ModeWrite && o.extra.Get("x-amz-acl") == "" {
		o.extra.Set("x-amz-acl", "private")
	}
	return o, nil
}

// Key returns the object key relative to the client prefix.
func (o *Object) Key() string { return o.key }

// Mode returns the mode the handle was opened with.
func (o *Object) Mode() Mode { return o.mode }

// URL returns the unauthenticated address of the object.
func (o *Object) URL() string { return o.client.URL(o.key) }

// Read returns the full object body. The first call issues one GET; the body
// and response headers are cached for the handle's lifetime, so repeated
// reads cost no further round trips. Absent keys surface ErrNotFound.
func (o *Object) Read(ctx context.Context) ([]byte, error) {
	if o.closed {
		return nil, fmt.Errorf("read %s: %w", o.key, ErrClosed)
	}
	if o.mode != ModeRead {
		return nil, fmt.Errorf("read %s: %w (handle is write-mode)", o.key, ErrInvalidMode)
	}
	if o.fetched {
		return o.data, nil
	}
	data, header, err := o.get(ctx)
	if err != nil {
		return nil, err
	}
	o.data = data
	o.header = header
	o.fetched = true
	return o.data, nil
}

// Write appends p to the handle's buffer and reports len(p). Nothing goes on
// the wire until Close.
func (o *Object) Write(p []byte) (int, error) {
	if o.closed {
		return 0, fmt.Errorf("write %s: %w", o.key, ErrClosed)
	}
	if o.mode != ModeWrite {
		return 0, fmt.Errorf("write %s: %w (handle is read-mode)", o.key, ErrInvalidMode)
	}
	o.written = true
	return o.buf.Write(p)
}

// WriteString appends s to the handle's buffer.
func (o *Object) WriteString(s string) (int, error) {
	return o.Write([]byte(s))
}

// Size returns the number of buffered bytes on a write handle, or the length
// of the cached body on a read handle after the first Read.
func (o *Object) Size() int64 {
	if o.mode == ModeWrite {
		return int64(o.buf.Len())
	}
	return int64(len(o.data))
}

// Header returns the response headers cached by the first Read. It is empty
// before that.
func (o *Object) Header() http.Header { return o.header }

// ContentType returns the type the closing PUT will carry: the explicit
// override if set, otherwise a guess from the key extension.
func (o *Object) ContentType() string {
	if o.contentType != "" {
		return o.contentType
	}
	return GuessContentType(o.key)
}

// Close releases the handle. For a write handle that received any writes it
// issues the single PUT of the buffered bytes; the PUT error, if any, is
// returned after the buffer has been released, so a failed upload never
// leaks the handle. Closing twice is a no-op.
func (o *Object) Close(ctx context.Context) error {
	if o.closed {
		return nil
	}
	o.closed = true
	if o.mode != ModeWrite || !o.written {
		o.data = nil
		return nil
	}
	body := o.buf.Bytes()
	o.buf = bytes.Buffer{}
	if err := o.client.PutObject(ctx, o.key, body, o.ContentType(), o.extra); err != nil {
		return fmt.Errorf("close %s: %w", o.key, err)
	}
	return nil
}

// Delete removes the object from the bucket.
func (o *Object) Delete(ctx context.Context) error {
	return o.client.DeleteObject(ctx, o.key)
}

// Exists reports whether the object is currently present, via one HEAD.
func (o *Object) Exists(ctx context.Context) (bool, error) {
	return o.client.Exists(ctx, o.key)
}

// get issues the handle's GET, merging any extra headers into the request.
func (o *Object) get(ctx context.Context) ([]byte, http.Header, error) {
	key := o.client.Key(o.key)
	resp, err := o.client.do(ctx, http.MethodGet, key, nil, nil, "", o.extra)
	if err != nil {
		return nil, nil, err
	}
	defer resp.Body.Close()
	if err := o.client.responseError("get", key, resp); err != nil {
		return nil, nil, err
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, nil, &TransportError{Op: "get", Key: key, Err: err}
	}
	return data, resp.Header, nil
}
