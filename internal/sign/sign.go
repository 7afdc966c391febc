// Package sign builds S3 signature-v2 Authorization header values.
//
// The signature is an HMAC-SHA1 over a canonical string assembled from the
// request verb, content headers, date, canonicalized x-amz-* headers, and the
// canonical resource path. Everything here is a pure function of its inputs
// so request signing can be unit tested against fixed vectors.
package sign

import (
	"crypto/hmac"
	"crypto/sha1"
	"encoding/base64"
	"errors"
	"fmt"
	"net/url"
	"sort"
	"strings"
)

// Credentials holds an S3 access key pair. The zero value is invalid; both
// fields are required for signing.
type Credentials struct {
	AccessKeyID     string
	SecretAccessKey string
}

var ErrMissingCredentials = errors.New("sign: access key and secret key are required")

// Request carries the request fields that participate in the string to sign.
// Resource is the canonical resource ("/bucket/key", see CanonicalResource);
// Date is the value of the Date header in RFC 1123 GMT form. AmzHeaders maps
// x-amz-* header names (any case) to their values.
type Request struct {
	Method      string
	Resource    string
	ContentMD5  string
	ContentType string
	Date        string
	AmzHeaders  map[string]string
}

// StringToSign assembles the canonical string for r:
//
//	Method \n ContentMD5 \n ContentType \n Date \n
//	canonicalized x-amz headers (sorted, "name:value\n" each)
//	canonical resource
func StringToSign(r Request) string {
	var b strings.Builder
	b.WriteString(r.Method)
	b.WriteByte('\n')
	b.WriteString(r.ContentMD5)
	b.WriteByte('\n')
	b.WriteString(r.ContentType)
	b.WriteByte('\n')
	b.WriteString(r.Date)
	b.WriteByte('\n')
	b.WriteString(canonicalizedAmzHeaders(r.AmzHeaders))
	b.WriteString(r.Resource)
	return b.String()
}

// Authorization returns the Authorization header value for r, in the form
// "AWS <accessKeyID>:<base64 HMAC-SHA1 signature>". It never signs with a
// partial key pair.
func Authorization(r Request, creds Credentials) (string, error) {
	if creds.AccessKeyID == "" || creds.SecretAccessKey == "" {
		return "", ErrMissingCredentials
	}
	mac := hmac.New(sha1.New, []byte(creds.SecretAccessKey))
	mac.Write([]byte(StringToSign(r)))
	sig := base64.StdEncoding.EncodeToString(mac.Sum(nil))
	return fmt.Sprintf("AWS %s:%s", creds.AccessKeyID, sig), nil
}

// Subresources that are part of the canonical resource when present in the
// query string. List parameters (prefix, delimiter, marker, max-keys) are
// deliberately absent: they do not participate in signing.
var signableSubresources = map[string]bool{
	"acl":        true,
	"delete":     true,
	"lifecycle":  true,
	"location":   true,
	"logging":    true,
	"torrent":    true,
	"versioning": true,
	"website":    true,
}

// CanonicalResource builds the "/bucket/key" resource string for signing,
// appending signable subresources in sorted order.
func CanonicalResource(bucket, key string, query url.Values) string {
	if key != "" && !strings.HasPrefix(key, "/") {
		key = "/" + key
	}
	res := "/" + bucket + key
	if len(query) == 0 {
		return res
	}
	var subs []string
	for name := range query {
		if signableSubresources[name] {
			subs = append(subs, name)
		}
	}
	if len(subs) == 0 {
		return res
	}
	sort.Strings(subs)
	for i, name := range subs {
		sep := "&"
		if i == 0 {
			sep = "?"
		}
		res += sep + name
		if v := query.Get(name); v != "" {
			res += "=" + v
		}
	}
	return res
}

func canonicalizedAmzHeaders(headers map[string]string) string {
	if len(headers) == 0 {
		return ""
	}
	keys := make([]string, 0, len(headers))
	for name := range headers {
		lower := strings.ToLower(strings.TrimSpace(name))
		if strings.HasPrefix(lower, "x-amz-") {
			keys = append(keys, lower)
		}
	}
	sort.Strings(keys)
	var b strings.Builder
	for _, lower := range keys {
		b.WriteString(lower)
		b.WriteByte(':')
		b.WriteString(strings.TrimSpace(valueForLower(headers, lower)))
		b.WriteByte('\n')
	}
	return b.String()
}

func valueForLower(headers map[string]string, lower string) string {
	for name, value := range headers {
		if strings.ToLower(strings.TrimSpace(name)) == lower {
			return value
		}
	}
	return ""
}
