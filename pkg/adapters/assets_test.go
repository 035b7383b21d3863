package adapters

import (
	"context"
	"errors"
	"testing"
	"time"
)

func newTestIngestor(t *testing.T, httpClient *mockHTTPClient) *Ingestor {
	t.Helper()
	ing, err := NewIngestor(httpClient, &mockReader{}, nil, time.Hour, 0)
	if err != nil {
		t.Fatalf("テスト用Ingestorの初期化に失敗したのだ: %v", err)
	}
	return ing
}

func TestNewAssetManager(t *testing.T) {
	ing := newTestIngestor(t, &mockHTTPClient{})

	t.Run("aiClientがnilの場合はエラーを返すのだ", func(t *testing.T) {
		_, err := NewAssetManager(nil, ing, nil, time.Hour)
		if err == nil {
			t.Fatal("エラーが返されるべきなのだ")
		}
	})

	t.Run("ingestorがnilの場合はエラーを返すのだ", func(t *testing.T) {
		_, err := NewAssetManager(&mockAIClient{}, nil, nil, time.Hour)
		if err == nil {
			t.Fatal("エラーが返されるべきなのだ")
		}
	})

	t.Run("cacheはnilでも初期化できるのだ", func(t *testing.T) {
		mgr, err := NewAssetManager(&mockAIClient{}, ing, nil, time.Hour)
		if err != nil {
			t.Fatalf("初期化に失敗したのだ: %v", err)
		}
		if mgr == nil {
			t.Fatal("AssetManagerが返されるべきなのだ")
		}
	})
}

func TestAssetManager_UploadAsset(t *testing.T) {
	ctx := context.Background()
	const imageURL = "http://203.0.113.10/assets/cat.png"

	t.Run("キャッシュ済みならアップロードせずURIを返すのだ", func(t *testing.T) {
		aiClient := &mockAIClient{}
		httpClient := &mockHTTPClient{}
		cache := &mockCache{data: map[string]interface{}{cacheKeyFileAPIURI + imageURL: "https://gemini.api/files/cached-id"}}
		mgr, _ := NewAssetManager(aiClient, newTestIngestor(t, httpClient), cache, time.Hour)

		uri, err := mgr.UploadAsset(ctx, imageURL)
		if err != nil {
			t.Fatalf("URIの取得に失敗したのだ: %v", err)
		}
		if uri != "https://gemini.api/files/cached-id" {
			t.Errorf("キャッシュ済みURIが返されるべきなのだ: %s", uri)
		}
		if aiClient.uploadCalled {
			t.Error("キャッシュヒット時にアップロードしてはいけないのだ")
		}
		if httpClient.fetchCalls != 0 {
			t.Error("キャッシュヒット時に画像を取得してはいけないのだ")
		}
	})

	t.Run("未登録なら取得してアップロードしキャッシュするのだ", func(t *testing.T) {
		aiClient := &mockAIClient{}
		httpClient := &mockHTTPClient{
			fetchFunc: func(ctx context.Context, url string) ([]byte, error) {
				return validPng, nil
			},
		}
		cache := &mockCache{data: make(map[string]interface{})}
		mgr, _ := NewAssetManager(aiClient, newTestIngestor(t, httpClient), cache, time.Hour)

		uri, err := mgr.UploadAsset(ctx, imageURL)
		if err != nil {
			t.Fatalf("アップロードに失敗したのだ: %v", err)
		}
		if uri != "https://gemini.api/files/new-file-id" {
			t.Errorf("アップロード結果のURIが返されるべきなのだ: %s", uri)
		}
		if !aiClient.uploadCalled {
			t.Error("UploadFileが呼ばれるべきなのだ")
		}
		if aiClient.lastDisplayName != "cat.png" {
			t.Errorf("表示名はURLのパス末尾から導出されるべきなのだ: %s", aiClient.lastDisplayName)
		}
		if got, _ := cache.Get(cacheKeyFileAPIURI + imageURL); got != "https://gemini.api/files/new-file-id" {
			t.Error("URIがキャッシュされていないのだ")
		}
		if got, _ := cache.Get(cacheKeyFileAPIName + imageURL); got != "files/new-file-id" {
			t.Error("ファイル名がキャッシュされていないのだ")
		}
	})

	t.Run("画像の取得に失敗したらエラーを返すのだ", func(t *testing.T) {
		aiClient := &mockAIClient{}
		httpClient := &mockHTTPClient{
			fetchFunc: func(ctx context.Context, url string) ([]byte, error) {
				return nil, errors.New("接続失敗")
			},
		}
		mgr, _ := NewAssetManager(aiClient, newTestIngestor(t, httpClient), nil, time.Hour)

		_, err := mgr.UploadAsset(ctx, imageURL)
		if err == nil {
			t.Fatal("エラーが返されるべきなのだ")
		}
		if aiClient.uploadCalled {
			t.Error("取得に失敗したらアップロードしてはいけないのだ")
		}
	})

	t.Run("アップロードに失敗したらエラーを返すのだ", func(t *testing.T) {
		wantErr := errors.New("quota exceeded")
		aiClient := &mockAIClient{
			uploadFunc: func(ctx context.Context, data []byte, mimeType, displayName string) (string, string, error) {
				return "", "", wantErr
			},
		}
		httpClient := &mockHTTPClient{
			fetchFunc: func(ctx context.Context, url string) ([]byte, error) {
				return validPng, nil
			},
		}
		mgr, _ := NewAssetManager(aiClient, newTestIngestor(t, httpClient), nil, time.Hour)

		_, err := mgr.UploadAsset(ctx, imageURL)
		if !errors.Is(err, wantErr) {
			t.Errorf("元のエラーが伝播していないのだ: %v", err)
		}
	})
}

func TestAssetManager_DeleteAsset(t *testing.T) {
	ctx := context.Background()
	const imageURL = "http://203.0.113.10/assets/cat.png"

	t.Run("キャッシュ済みのファイル名で削除するのだ", func(t *testing.T) {
		aiClient := &mockAIClient{}
		cache := &mockCache{data: map[string]interface{}{cacheKeyFileAPIName + imageURL: "files/registered-id"}}
		mgr, _ := NewAssetManager(aiClient, newTestIngestor(t, &mockHTTPClient{}), cache, time.Hour)

		if err := mgr.DeleteAsset(ctx, imageURL); err != nil {
			t.Fatalf("削除に失敗したのだ: %v", err)
		}
		if aiClient.lastFileName != "files/registered-id" {
			t.Errorf("キャッシュ済みのファイル名で削除すべきなのだ: %s", aiClient.lastFileName)
		}
	})

	t.Run("キャッシュ未登録の場合はエラーを返すのだ", func(t *testing.T) {
		cache := &mockCache{data: make(map[string]interface{})}
		mgr, _ := NewAssetManager(&mockAIClient{}, newTestIngestor(t, &mockHTTPClient{}), cache, time.Hour)

		if err := mgr.DeleteAsset(ctx, imageURL); err == nil {
			t.Fatal("エラーが返されるべきなのだ")
		}
	})

	t.Run("cacheがnilの場合もエラーを返すのだ", func(t *testing.T) {
		mgr, _ := NewAssetManager(&mockAIClient{}, newTestIngestor(t, &mockHTTPClient{}), nil, time.Hour)

		if err := mgr.DeleteAsset(ctx, imageURL); err == nil {
			t.Fatal("エラーが返されるべきなのだ")
		}
	})

	t.Run("File API側の削除失敗は伝播するのだ", func(t *testing.T) {
		wantErr := errors.New("not found")
		aiClient := &mockAIClient{
			deleteFunc: func(ctx context.Context, name string) error { return wantErr },
		}
		cache := &mockCache{data: map[string]interface{}{cacheKeyFileAPIName + imageURL: "files/registered-id"}}
		mgr, _ := NewAssetManager(aiClient, newTestIngestor(t, &mockHTTPClient{}), cache, time.Hour)

		if err := mgr.DeleteAsset(ctx, imageURL); !errors.Is(err, wantErr) {
			t.Errorf("元のエラーが伝播していないのだ: %v", err)
		}
	})
}

func TestAssetManager_ReferencePart(t *testing.T) {
	ctx := context.Background()
	const imageURL = "http://203.0.113.10/assets/ref.png"

	t.Run("アップロード済みならFile API URIのPartを返すのだ", func(t *testing.T) {
		httpClient := &mockHTTPClient{}
		cache := &mockCache{data: map[string]interface{}{cacheKeyFileAPIURI + imageURL: "https://gemini.api/files/ref-id"}}
		mgr, _ := NewAssetManager(&mockAIClient{}, newTestIngestor(t, httpClient), cache, time.Hour)

		part := mgr.ReferencePart(ctx, imageURL)
		if part == nil || part.FileData == nil {
			t.Fatal("FileData形式のPartが返されるべきなのだ")
		}
		if part.FileData.FileURI != "https://gemini.api/files/ref-id" {
			t.Errorf("URIが期待と異なるのだ: %s", part.FileData.FileURI)
		}
		if httpClient.fetchCalls != 0 {
			t.Error("アップロード済みなら画像を取得してはいけないのだ")
		}
	})

	t.Run("未アップロードならインラインのPartを返すのだ", func(t *testing.T) {
		httpClient := &mockHTTPClient{
			fetchFunc: func(ctx context.Context, url string) ([]byte, error) {
				return validPng, nil
			},
		}
		mgr, _ := NewAssetManager(&mockAIClient{}, newTestIngestor(t, httpClient), nil, time.Hour)

		part := mgr.ReferencePart(ctx, imageURL)
		if part == nil || part.InlineData == nil {
			t.Fatal("InlineData形式のPartが返されるべきなのだ")
		}
		if part.InlineData.MIMEType != "image/png" {
			t.Errorf("MIMEタイプが期待と異なるのだ: %s", part.InlineData.MIMEType)
		}
	})

	t.Run("解決に失敗したらnilを返すのだ", func(t *testing.T) {
		httpClient := &mockHTTPClient{
			fetchFunc: func(ctx context.Context, url string) ([]byte, error) {
				return nil, errors.New("接続失敗")
			},
		}
		mgr, _ := NewAssetManager(&mockAIClient{}, newTestIngestor(t, httpClient), nil, time.Hour)

		if part := mgr.ReferencePart(ctx, imageURL); part != nil {
			t.Error("解決失敗時はnilが返されるべきなのだ")
		}
	})
}

func TestDisplayNameFor(t *testing.T) {
	tests := []struct {
		name string
		url  string
		want string
	}{
		{"パス末尾のファイル名", "http://203.0.113.10/assets/cat.png", "cat.png"},
		{"クエリ付きURL", "https://203.0.113.10/img.jpg?w=512", "img.jpg"},
		{"gs://のオブジェクト名", "gs://bucket/dir/obj.png", "obj.png"},
		{"パスなしURLはフォールバック", "http://203.0.113.10", "reference-image"},
		{"ルートのみのURLもフォールバック", "http://203.0.113.10/", "reference-image"},
	}

	for _, tt := range tests {
		t.Run(tt.name+"なのだ", func(t *testing.T) {
			if got := displayNameFor(tt.url); got != tt.want {
				t.Errorf("displayNameFor(%q) = %q, want %q", tt.url, got, tt.want)
			}
		})
	}
}
