package adapters

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"time"

	"github.com/shouni/go-gemini-client/pkg/gemini"
)

// --- Mocks ---

// mockHTTPClient は httpkit.ClientInterface のテスト用モックなのだ。
type mockHTTPClient struct {
	fetchFunc  func(ctx context.Context, url string) ([]byte, error)
	fetchCalls int
}

func (m *mockHTTPClient) FetchBytes(ctx context.Context, url string) ([]byte, error) {
	m.fetchCalls++
	if m.fetchFunc != nil {
		return m.fetchFunc(ctx, url)
	}
	return nil, nil
}

// インターフェースを満たすための空実装群なのだ
func (m *mockHTTPClient) Do(req *http.Request) (*http.Response, error) {
	return nil, nil
}

func (m *mockHTTPClient) DoRequest(req *http.Request) ([]byte, error) {
	return nil, nil
}

func (m *mockHTTPClient) FetchAndDecodeJSON(ctx context.Context, url string, v any) error {
	return nil
}

func (m *mockHTTPClient) PostJSONAndFetchBytes(ctx context.Context, url string, data any) ([]byte, error) {
	return nil, nil
}

func (m *mockHTTPClient) PostRawBodyAndFetchBytes(ctx context.Context, url string, body []byte, contentType string) ([]byte, error) {
	return nil, nil
}

func (m *mockHTTPClient) IsSafeURL(urlStr string) (bool, error) {
	return true, nil
}

func (m *mockHTTPClient) IsSecureServiceURL(serviceURL string) bool {
	return true
}

// mockReader は remoteio.InputReader のテスト用モックなのだ。
type mockReader struct {
	openFunc func(ctx context.Context, uri string) (io.ReadCloser, error)
}

func (m *mockReader) Open(ctx context.Context, uri string) (io.ReadCloser, error) {
	if m.openFunc != nil {
		return m.openFunc(ctx, uri)
	}
	return io.NopCloser(bytes.NewReader(nil)), nil
}

func (m *mockReader) List(ctx context.Context, uri string, fn func(string) error) error {
	return nil
}

// mockAIClient は gemini.GenerativeModel のテスト用モックなのだ。
// 使わないメソッドはインターフェースの埋め込みで解決します。
type mockAIClient struct {
	gemini.GenerativeModel
	uploadFunc      func(ctx context.Context, data []byte, mimeType, displayName string) (string, string, error)
	deleteFunc      func(ctx context.Context, name string) error
	uploadCalled    bool
	lastDisplayName string
	lastFileName    string
}

func (m *mockAIClient) UploadFile(ctx context.Context, data []byte, mimeType, displayName string) (string, string, error) {
	m.uploadCalled = true
	m.lastDisplayName = displayName
	if m.uploadFunc != nil {
		return m.uploadFunc(ctx, data, mimeType, displayName)
	}
	return "https://gemini.api/files/new-file-id", "files/new-file-id", nil
}

func (m *mockAIClient) DeleteFile(ctx context.Context, name string) error {
	m.lastFileName = name
	if m.deleteFunc != nil {
		return m.deleteFunc(ctx, name)
	}
	return nil
}

// mockCache は ImageCacher インターフェースを実装するのだ。
type mockCache struct {
	data map[string]interface{}
}

func (m *mockCache) Get(key string) (interface{}, bool) {
	v, ok := m.data[key]
	return v, ok
}

func (m *mockCache) Set(key string, value interface{}, d time.Duration) {
	if m.data == nil {
		m.data = make(map[string]interface{})
	}
	m.data[key] = value
}
