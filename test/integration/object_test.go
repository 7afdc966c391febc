//go:build integration

package integration

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"opens3/internal/s3"
)

func TestLive_WriteReadDelete(t *testing.T) {
	opts := getS3Env(t)
	client, err := s3.New(opts)
	if err != nil {
		t.Fatalf("s3.New: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	key := fmt.Sprintf("integration-test/%s/test.txt", time.Now().Format("20060102150405"))
	payload := []byte("file uploaded at about " + time.Now().String())

	// Before the upload the key must not exist.
	ok, err := client.Exists(ctx, key)
	if err != nil {
		t.Fatalf("Exists: %v", err)
	}
	if ok {
		t.Fatalf("key %s should not exist yet", key)
	}

	wr, err := client.Open(key, s3.ModeWrite)
	if err != nil {
		t.Fatalf("Open write: %v", err)
	}
	if _, err := wr.Write(payload); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if err := wr.Close(ctx); err != nil {
		t.Fatalf("Close (PUT): %v", err)
	}
	defer func() {
		if err := client.DeleteObject(ctx, key); err != nil {
			t.Errorf("cleanup DeleteObject: %v", err)
		}
	}()

	rd, err := client.Open(key, s3.ModeRead)
	if err != nil {
		t.Fatalf("Open read: %v", err)
	}
	defer rd.Close(ctx)
	got, err := rd.Read(ctx)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if !bytes.Equal(got, payload) {
		t.Errorf("round trip = %q, want %q", got, payload)
	}
	if ct := rd.Header().Get("Content-Type"); ct != "text/plain" {
		t.Errorf("Content-Type = %q, want text/plain", ct)
	}

	info, err := client.HeadObject(ctx, key)
	if err != nil {
		t.Fatalf("HeadObject: %v", err)
	}
	if info.Size != int64(len(payload)) {
		t.Errorf("size = %d, want %d", info.Size, len(payload))
	}
}

func TestLive_ReadMissingKey(t *testing.T) {
	opts := getS3Env(t)
	client, err := s3.New(opts)
	if err != nil {
		t.Fatalf("s3.New: %v", err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	obj, err := client.Open("integration-test/definitely-not-there.txt", s3.ModeRead)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer obj.Close(ctx)
	if _, err := obj.Read(ctx); !errors.Is(err, s3.ErrNotFound) {
		t.Errorf("Read err = %v, want ErrNotFound", err)
	}
}

func TestLive_ListPrefixDelimiter(t *testing.T) {
	opts := getS3Env(t)
	client, err := s3.New(opts)
	if err != nil {
		t.Fatalf("s3.New: %v", err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	base := fmt.Sprintf("integration-test/list-%s", time.Now().Format("20060102150405"))
	keys := []string{
		base + "/static/css/site.css",
		base + "/static/css/print.css",
		base + "/static/css/themes/dark.css",
	}
	for _, key := range keys {
		wr, err := client.Open(key, s3.ModeWrite)
		if err != nil {
			t.Fatalf("Open %s: %v", key, err)
		}
		if _, err := wr.WriteString("body{}"); err != nil {
			t.Fatalf("Write %s: %v", key, err)
		}
		if err := wr.Close(ctx); err != nil {
			t.Fatalf("Close %s: %v", key, err)
		}
		defer func(key string) { _ = client.DeleteObject(ctx, key) }(key)
	}

	entries, err := client.ListObjects(ctx, base+"/static/css/", "/")
	if err != nil {
		t.Fatalf("ListObjects: %v", err)
	}

	var plain, prefixes []string
	for _, e := range entries {
		if e.IsPrefix {
			prefixes = append(prefixes, e.Key)
		} else {
			plain = append(plain, e.Key)
		}
	}
	if len(plain) != 2 {
		t.Errorf("plain keys = %v, want the two direct css files", plain)
	}
	if len(prefixes) != 1 || prefixes[0] != base+"/static/css/themes/" {
		t.Errorf("common prefixes = %v, want only themes/", prefixes)
	}
}
