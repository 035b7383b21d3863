package adapters

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"path"
	"time"

	"github.com/shouni/gemini-edit-kit/pkg/domain"
	"github.com/shouni/go-gemini-client/pkg/gemini"
	"google.golang.org/genai"
)

// AssetManager は参照画像を Gemini File API に登録し、生成リクエストから
// URI で参照できるようにするコンポーネントです。
// 同じ参照画像を複数回の生成で使い回す場合、インライン添付よりも
// リクエストサイズを大幅に節約できます。
type AssetManager struct {
	aiClient gemini.GenerativeModel
	fetcher  ImageFetcher
	cache    ImageCacher
	cacheTTL time.Duration
}

// NewAssetManager は依存関係を注入して AssetManager を初期化します。
// cache は nil を許容します（毎回アップロードし直す動作になります）。
func NewAssetManager(aiClient gemini.GenerativeModel, fetcher ImageFetcher, cache ImageCacher, cacheTTL time.Duration) (*AssetManager, error) {
	if aiClient == nil {
		return nil, fmt.Errorf("aiClient is required")
	}
	if fetcher == nil {
		return nil, fmt.Errorf("fetcher is required")
	}

	return &AssetManager{
		aiClient: aiClient,
		fetcher:  fetcher,
		cache:    cache,
		cacheTTL: cacheTTL,
	}, nil
}

// UploadAsset は URL の画像を取得して File API にアップロードし、
// 参照用 URI を返します。結果は URL をキーにキャッシュされ、
// 以降の ReferencePart はアップロード済み URI を再利用します。
func (m *AssetManager) UploadAsset(ctx context.Context, rawURL string) (string, error) {
	if uri, ok := m.cachedURI(rawURL); ok {
		return uri, nil
	}

	buf, err := m.fetcher.FetchImage(ctx, rawURL)
	if err != nil {
		return "", fmt.Errorf("参照画像の取得に失敗しました: %w", err)
	}

	uri, name, err := m.aiClient.UploadFile(ctx, buf.Data, buf.MIMEType, displayNameFor(rawURL))
	if err != nil {
		return "", fmt.Errorf("File APIへのアップロードに失敗しました: %w", err)
	}

	if m.cache != nil {
		m.cache.Set(cacheKeyFileAPIURI+rawURL, uri, m.cacheTTL)
		m.cache.Set(cacheKeyFileAPIName+rawURL, name, m.cacheTTL)
	}

	slog.InfoContext(ctx, "参照画像をFile APIへアップロードしました", "url", rawURL, "uri", uri)
	return uri, nil
}

// DeleteAsset はアップロード済みアセットを File API から削除します。
// キャッシュにファイル名が残っていない場合はエラーを返します。
func (m *AssetManager) DeleteAsset(ctx context.Context, rawURL string) error {
	if m.cache == nil {
		return fmt.Errorf("削除対象のファイル名が特定できません（キャッシュ未登録）: %s", rawURL)
	}

	cached, ok := m.cache.Get(cacheKeyFileAPIName + rawURL)
	name, isString := cached.(string)
	if !ok || !isString || name == "" {
		return fmt.Errorf("削除対象のファイル名が特定できません（キャッシュ未登録）: %s", rawURL)
	}

	if err := m.aiClient.DeleteFile(ctx, name); err != nil {
		return fmt.Errorf("File APIからの削除に失敗しました (%s): %w", name, err)
	}

	m.cache.Set(cacheKeyFileAPIURI+rawURL, "", 0)
	m.cache.Set(cacheKeyFileAPIName+rawURL, "", 0)
	return nil
}

// ReferencePart は参照画像 URL をリクエストに添付可能な Part へ解決します。
// アップロード済みであれば File API URI を指す軽量な Part を、
// そうでなければ画像を取得してインラインの Part を返します。
// 解決に失敗した場合は nil を返します（参照なしとして生成を続行できます）。
func (m *AssetManager) ReferencePart(ctx context.Context, rawURL string) *genai.Part {
	if uri, ok := m.cachedURI(rawURL); ok {
		return &genai.Part{FileData: &genai.FileData{FileURI: uri}}
	}

	buf, err := m.fetcher.FetchImage(ctx, rawURL)
	if err != nil {
		slog.WarnContext(ctx, "参照画像の解決に失敗したため、参照なしで続行します", "url", rawURL, "error", err)
		return nil
	}
	return inlineReferencePart(buf)
}

func (m *AssetManager) cachedURI(rawURL string) (string, bool) {
	if m.cache == nil {
		return "", false
	}
	cached, ok := m.cache.Get(cacheKeyFileAPIURI + rawURL)
	if !ok {
		return "", false
	}
	uri, isString := cached.(string)
	if !isString || uri == "" {
		return "", false
	}
	return uri, true
}

func inlineReferencePart(buf *domain.ImageBuffer) *genai.Part {
	return &genai.Part{
		InlineData: &genai.Blob{
			MIMEType: buf.MIMEType,
			Data:     buf.Data,
		},
	}
}

// displayNameFor は File API 上の表示名を URL のパス末尾から導出します。
func displayNameFor(rawURL string) string {
	parsed, err := url.Parse(rawURL)
	if err != nil || parsed.Path == "" || parsed.Path == "/" {
		return "reference-image"
	}
	return path.Base(parsed.Path)
}
