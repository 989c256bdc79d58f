package storage

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// LocalStorage keeps receipt objects on the local filesystem and implements
// the presigned-PUT contract with an HMAC over key, content type and
// expiry. Every URL
// handed out carries the configured public base URL.
type LocalStorage struct {
	uploadDir     string
	publicBaseURL string
	signSecret    []byte
	uploadTTL     time.Duration
}

func NewLocalStorage(uploadDir, publicBaseURL, signSecret string, uploadTTL time.Duration) (*LocalStorage, error) {
	if err := os.MkdirAll(uploadDir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &LocalStorage{
		uploadDir:     uploadDir,
		publicBaseURL: strings.TrimRight(publicBaseURL, "/"),
		signSecret:    []byte(signSecret),
		uploadTTL:     uploadTTL,
	}, nil
}

func (s *LocalStorage) RequestUploadTarget(ctx context.Context, objectKey, contentType string) (*UploadTarget, error) {
	if objectKey == "" || strings.Contains(objectKey, "..") {
		return nil, fmt.Errorf("invalid object key %q", objectKey)
	}
	expires := time.Now().Add(s.uploadTTL).Unix()
	sig := s.sign(objectKey, contentType, expires)

	q := url.Values{}
	q.Set("key", objectKey)
	q.Set("ct", contentType)
	q.Set("expires", strconv.FormatInt(expires, 10))
	q.Set("sig", sig)

	return &UploadTarget{
		UploadURL: fmt.Sprintf("%s/storage/upload?%s", s.publicBaseURL, q.Encode()),
		PublicURL: fmt.Sprintf("%s/storage/object/%s", s.publicBaseURL, objectKey),
	}, nil
}

// VerifyUploadSignature checks a PUT request's key, content type, expiry and
// signature. The content type is part of the signed payload, so an upload
// declaring a different type than the one presigned is rejected.
func (s *LocalStorage) VerifyUploadSignature(objectKey, contentType string, expires int64, sig string) error {
	if time.Now().Unix() > expires {
		return fmt.Errorf("upload url expired")
	}
	expected := s.sign(objectKey, contentType, expires)
	if !hmac.Equal([]byte(expected), []byte(sig)) {
		return fmt.Errorf("bad upload signature")
	}
	return nil
}

func (s *LocalStorage) sign(objectKey, contentType string, expires int64) string {
	mac := hmac.New(sha256.New, s.signSecret)
	fmt.Fprintf(mac, "%s\n%s\n%d", objectKey, contentType, expires)
	return hex.EncodeToString(mac.Sum(nil))
}

func (s *LocalStorage) SaveFile(key string, reader io.Reader) error {
	path, err := s.pathFor(key)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create object dir: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create object: %w", err)
	}
	defer f.Close()
	if _, err := io.Copy(f, reader); err != nil {
		return fmt.Errorf("write object: %w", err)
	}
	return nil
}

func (s *LocalStorage) ReadFile(key string) (io.ReadCloser, error) {
	path, err := s.pathFor(key)
	if err != nil {
		return nil, err
	}
	return os.Open(path)
}

func (s *LocalStorage) DeleteFile(ctx context.Context, key string) error {
	path, err := s.pathFor(key)
	if err != nil {
		return err
	}
	return os.Remove(path)
}

func (s *LocalStorage) ListObjects(ctx context.Context) (map[string]time.Time, error) {
	objects := make(map[string]time.Time)
	err := filepath.WalkDir(s.uploadDir, func(path string, d os.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}
		info, err := d.Info()
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(s.uploadDir, path)
		if err != nil {
			return err
		}
		objects[filepath.ToSlash(rel)] = info.ModTime()
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk upload dir: %w", err)
	}
	return objects, nil
}

// PublicURLFor returns the public URL an object key resolves to, matching
// what RequestUploadTarget hands to clients.
func (s *LocalStorage) PublicURLFor(key string) string {
	return fmt.Sprintf("%s/storage/object/%s", s.publicBaseURL, key)
}

func (s *LocalStorage) pathFor(key string) (string, error) {
	clean := filepath.Clean(filepath.FromSlash(key))
	if strings.HasPrefix(clean, "..") || filepath.IsAbs(clean) {
		return "", fmt.Errorf("invalid object key %q", key)
	}
	return filepath.Join(s.uploadDir, clean), nil
}
