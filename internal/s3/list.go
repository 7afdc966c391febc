package s3

import (
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

// ObjectInfo is one listing entry: either an object key or, when listing with
// a delimiter, a common prefix ("directory") with IsPrefix set. Size and
// LastModified are zero for prefixes.
type ObjectInfo struct {
	Key          string
	Size         int64
	LastModified time.Time
	IsPrefix     bool
}

type ListOptions struct {
	// Prefix restricts the listing to keys starting with it. It is relative
	// to the client prefix.
	Prefix string
	// Delimiter groups keys: keys sharing prefix+...+delimiter collapse into
	// one common-prefix entry. Usually "/".
	Delimiter string
	// MaxKeys caps the page size; 0 leaves it to the store.
	MaxKeys int
}

// ListPaginator walks a bucket listing one store page at a time, carrying the
// continuation marker between round trips. Pages are requested strictly in
// order, never twice; the first failed page exhausts the paginator and a
// retry means building a fresh one. Not safe for concurrent use.
type ListPaginator struct {
	client *Client
	opts   ListOptions
	marker string
	done   bool
}

// ListPaginator returns a paginator over keys under opts.Prefix. It mirrors
// how the result pages come off the wire: entries in store order, common
// prefixes flagged, no re-sorting.
func (c *Client) ListPaginator(opts ListOptions) *ListPaginator {
	return &ListPaginator{client: c, opts: opts}
}

// HasMorePages reports whether NextPage has another round trip to make.
func (p *ListPaginator) HasMorePages() bool {
	return !p.done
}

// NextPage issues one listing request and returns that page's entries.
func (p *ListPaginator) NextPage(ctx context.Context) ([]ObjectInfo, error) {
	if p.done {
		return nil, fmt.Errorf("list %s: no more pages", p.opts.Prefix)
	}
	result, err := p.client.listObjectsPage(ctx, p.opts, p.marker)
	if err != nil {
		p.done = true
		return nil, err
	}

	entries := make([]ObjectInfo, 0, len(result.Contents)+len(result.CommonPrefixes))
	for _, obj := range result.Contents {
		entries = append(entries, ObjectInfo{
			Key:          obj.Key,
			Size:         obj.Size,
			LastModified: obj.LastModified,
		})
	}
	for _, cp := range result.CommonPrefixes {
		entries = append(entries, ObjectInfo{Key: cp.Prefix, IsPrefix: true})
	}

	if !result.IsTruncated {
		p.done = true
		return entries, nil
	}
	// The store reports NextMarker only for delimited listings; otherwise
	// the marker is the last key of the page.
	switch {
	case result.NextMarker != "":
		p.marker = result.NextMarker
	case len(result.Contents) > 0:
		p.marker = result.Contents[len(result.Contents)-1].Key
	default:
		p.done = true
	}
	return entries, nil
}

// ListObjects drains a paginator for prefix into one slice, in store order.
func (c *Client) ListObjects(ctx context.Context, prefix, delimiter string) ([]ObjectInfo, error) {
	paginator := c.ListPaginator(ListOptions{Prefix: prefix, Delimiter: delimiter})
	var entries []ObjectInfo
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, err
		}
		entries = append(entries, page...)
	}
	return entries, nil
}

type listBucketResult struct {
	XMLName        xml.Name           `xml:"ListBucketResult"`
	Name           string             `xml:"Name"`
	Prefix         string             `xml:"Prefix"`
	Marker         string             `xml:"Marker"`
	NextMarker     string             `xml:"NextMarker"`
	IsTruncated    bool               `xml:"IsTruncated"`
	Contents       []listObject       `xml:"Contents"`
	CommonPrefixes []listCommonPrefix `xml:"CommonPrefixes"`
}

type listObject struct {
	Key          string    `xml:"Key"`
	LastModified time.Time `xml:"LastModified"`
	Size         int64     `xml:"Size"`
	ETag         string    `xml:"ETag"`
}

type listCommonPrefix struct {
	Prefix string `xml:"Prefix"`
}

// listObjectsPage performs one GET against the bucket root with the listing
// query parameters and parses the ListBucketResult page.
func (c *Client) listObjectsPage(ctx context.Context, opts ListOptions, marker string) (*listBucketResult, error) {
	query := url.Values{}
	prefix := JoinKey(c.prefix, opts.Prefix)
	if opts.Prefix == "" && prefix != "" {
		// Listing the whole client prefix: close it off so sibling
		// prefixes ("site-old/...") stay out of the results.
		prefix += Delimiter
	}
	if prefix != "" {
		query.Set("prefix", prefix)
	}
	if opts.Delimiter != "" {
		query.Set("delimiter", opts.Delimiter)
	}
	if opts.MaxKeys > 0 {
		query.Set("max-keys", strconv.Itoa(opts.MaxKeys))
	}
	if marker != "" {
		query.Set("marker", marker)
	}

	resp, err := c.do(ctx, http.MethodGet, "", query, nil, "", nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if err := c.responseError("list", prefix, resp); err != nil {
		return nil, err
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &TransportError{Op: "list", Key: prefix, Err: err}
	}
	var result listBucketResult
	if err := xml.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("list %s: decode page: %w", prefix, err)
	}
	return &result, nil
}
