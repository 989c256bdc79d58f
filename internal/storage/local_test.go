package storage

import (
	"context"
	"io"
	"net/url"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStorage(t *testing.T) *LocalStorage {
	t.Helper()
	s, err := NewLocalStorage(t.TempDir(), "https://files.example.com", "test-secret", 15*time.Minute)
	require.NoError(t, err)
	return s
}

func TestLocalStorage_RequestUploadTarget(t *testing.T) {
	s := newTestStorage(t)
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		target, err := s.RequestUploadTarget(ctx, "receipts/g1/123.jpg", "image/jpeg")
		assert.NoError(t, err)
		assert.Equal(t, "https://files.example.com/storage/object/receipts/g1/123.jpg", target.PublicURL)

		u, err := url.Parse(target.UploadURL)
		require.NoError(t, err)
		assert.Equal(t, "/storage/upload", u.Path)

		q := u.Query()
		assert.Equal(t, "receipts/g1/123.jpg", q.Get("key"))
		assert.Equal(t, "image/jpeg", q.Get("ct"))
		expires, err := strconv.ParseInt(q.Get("expires"), 10, 64)
		require.NoError(t, err)
		// The signature on the URL must verify against key, content type
		// and expiry.
		assert.NoError(t, s.VerifyUploadSignature(q.Get("key"), q.Get("ct"), expires, q.Get("sig")))
	})

	t.Run("Error_TraversalKey", func(t *testing.T) {
		_, err := s.RequestUploadTarget(ctx, "../etc/passwd", "image/jpeg")
		assert.Error(t, err)
	})
}

func TestLocalStorage_VerifyUploadSignature(t *testing.T) {
	s := newTestStorage(t)
	expires := time.Now().Add(time.Minute).Unix()
	sig := s.sign("receipts/g1/123.jpg", "image/jpeg", expires)

	t.Run("Success", func(t *testing.T) {
		assert.NoError(t, s.VerifyUploadSignature("receipts/g1/123.jpg", "image/jpeg", expires, sig))
	})

	t.Run("Error_TamperedKey", func(t *testing.T) {
		assert.Error(t, s.VerifyUploadSignature("receipts/g1/other.jpg", "image/jpeg", expires, sig))
	})

	t.Run("Error_TamperedContentType", func(t *testing.T) {
		assert.Error(t, s.VerifyUploadSignature("receipts/g1/123.jpg", "application/octet-stream", expires, sig))
	})

	t.Run("Error_TamperedExpiry", func(t *testing.T) {
		assert.Error(t, s.VerifyUploadSignature("receipts/g1/123.jpg", "image/jpeg", expires+3600, sig))
	})

	t.Run("Error_Expired", func(t *testing.T) {
		past := time.Now().Add(-time.Minute).Unix()
		assert.Error(t, s.VerifyUploadSignature("receipts/g1/123.jpg", "image/jpeg", past, s.sign("receipts/g1/123.jpg", "image/jpeg", past)))
	})
}

func TestLocalStorage_SaveReadDelete(t *testing.T) {
	s := newTestStorage(t)
	ctx := context.Background()

	err := s.SaveFile("receipts/g1/123.jpg", strings.NewReader("receipt bytes"))
	require.NoError(t, err)

	rc, err := s.ReadFile("receipts/g1/123.jpg")
	require.NoError(t, err)
	data, err := io.ReadAll(rc)
	rc.Close()
	assert.NoError(t, err)
	assert.Equal(t, "receipt bytes", string(data))

	assert.NoError(t, s.DeleteFile(ctx, "receipts/g1/123.jpg"))
	_, err = s.ReadFile("receipts/g1/123.jpg")
	assert.Error(t, err)
}

func TestLocalStorage_PathTraversalRejected(t *testing.T) {
	s := newTestStorage(t)

	for _, key := range []string{"../outside.txt", "/etc/passwd", "a/../../outside.txt"} {
		err := s.SaveFile(key, strings.NewReader("x"))
		assert.Error(t, err, "key %q", key)
	}
}

func TestLocalStorage_ListObjects(t *testing.T) {
	s := newTestStorage(t)
	ctx := context.Background()

	require.NoError(t, s.SaveFile("receipts/g1/1.jpg", strings.NewReader("a")))
	require.NoError(t, s.SaveFile("receipts/g2/2.pdf", strings.NewReader("b")))

	objects, err := s.ListObjects(ctx)
	assert.NoError(t, err)
	assert.Len(t, objects, 2)
	assert.Contains(t, objects, "receipts/g1/1.jpg")
	assert.Contains(t, objects, "receipts/g2/2.pdf")
}
