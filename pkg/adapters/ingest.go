// Package adapters は外部サービスとの境界です。画像の取得・正規化と、
// Gemini File API 上のアセット管理を担当します。
package adapters

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/shouni/gemini-edit-kit/pkg/domain"
	"github.com/shouni/gemini-edit-kit/pkg/imgutil"
	"github.com/shouni/go-http-kit/pkg/httpkit"
	"github.com/shouni/go-remote-io/pkg/remoteio"
)

const (
	cacheKeyImageData   = "image_data:"
	cacheKeyFileAPIURI  = "fileapi_uri:"
	cacheKeyFileAPIName = "fileapi_name:"
)

// ImageCacher は画像データや File API URI のキャッシュ操作を抽象化する
// インターフェースです。実装は nil でも構いません（キャッシュなし動作）。
type ImageCacher interface {
	Get(key string) (any, bool)
	Set(key string, value any, d time.Duration)
}

// ImageFetcher は画像の取得と正規化の窓口です。Ingestor が標準実装です。
type ImageFetcher interface {
	FetchImage(ctx context.Context, rawURL string) (*domain.ImageBuffer, error)
	FromBytes(data []byte) (*domain.ImageBuffer, error)
}

// Ingestor はソース・参照画像を取得し、MIME と寸法を確定した
// domain.ImageBuffer へ正規化するコンポーネントです。
// http(s) は SSRF 検証のうえ go-http-kit で、gs:// は go-remote-io で取得します。
type Ingestor struct {
	httpClient httpkit.ClientInterface
	reader     remoteio.InputReader
	cache      ImageCacher
	cacheTTL   time.Duration
	quality    int // JPEG再圧縮の品質。0以下で再圧縮なし
}

// NewIngestor は依存関係を注入して Ingestor を初期化します。
// cache は nil を許容します。quality が 0 以下の場合、取得した画像は
// 再圧縮せずそのまま使います。
func NewIngestor(httpClient httpkit.ClientInterface, reader remoteio.InputReader, cache ImageCacher, cacheTTL time.Duration, quality int) (*Ingestor, error) {
	if httpClient == nil {
		return nil, fmt.Errorf("httpClient is required")
	}
	if reader == nil {
		return nil, fmt.Errorf("reader is required")
	}

	return &Ingestor{
		httpClient: httpClient,
		reader:     reader,
		cache:      cache,
		cacheTTL:   cacheTTL,
		quality:    quality,
	}, nil
}

// FetchImage は URL から画像を取得して ImageBuffer へ正規化します。
// 結果は URL をキーにキャッシュします。
func (n *Ingestor) FetchImage(ctx context.Context, rawURL string) (*domain.ImageBuffer, error) {
	if n.cache != nil {
		if cached, ok := n.cache.Get(cacheKeyImageData + rawURL); ok {
			if buf, ok := cached.(*domain.ImageBuffer); ok {
				return buf, nil
			}
			slog.WarnContext(ctx, "キャッシュデータが不正な型です", "url", rawURL, "type", fmt.Sprintf("%T", cached))
		}
	}

	data, err := n.fetchBytes(ctx, rawURL)
	if err != nil {
		return nil, err
	}

	buf, err := n.FromBytes(data)
	if err != nil {
		return nil, fmt.Errorf("画像の正規化に失敗しました (%s): %w", rawURL, err)
	}

	if n.cache != nil {
		n.cache.Set(cacheKeyImageData+rawURL, buf, n.cacheTTL)
	}
	return buf, nil
}

// FromBytes は手元のバイト列（アップロードフォーム等から渡された画像）を
// 検証し、MIME と寸法を確定した ImageBuffer を返します。
// 品質が設定されていれば JPEG へ再圧縮します（失敗時は原本のまま続行）。
func (n *Ingestor) FromBytes(data []byte) (*domain.ImageBuffer, error) {
	if n.quality > 0 {
		if compressed, err := imgutil.CompressToJPEG(data, n.quality); err == nil {
			data = compressed
		}
	}

	mimeType := http.DetectContentType(data)
	if !strings.HasPrefix(mimeType, "image/") {
		return nil, fmt.Errorf("画像ではないMIMEタイプです: %s", mimeType)
	}

	width, height, err := imgutil.Dimensions(data)
	if err != nil {
		return nil, fmt.Errorf("画像寸法の取得に失敗しました: %w", err)
	}

	return &domain.ImageBuffer{
		Data:     data,
		MIMEType: mimeType,
		Width:    width,
		Height:   height,
	}, nil
}

func (n *Ingestor) fetchBytes(ctx context.Context, rawURL string) ([]byte, error) {
	if strings.HasPrefix(rawURL, "gs://") {
		rc, err := n.reader.Open(ctx, rawURL)
		if err != nil {
			return nil, fmt.Errorf("GCSからの取得に失敗しました: %w", err)
		}
		defer rc.Close()
		return io.ReadAll(rc)
	}

	if safe, err := isSafeURL(rawURL); err != nil || !safe {
		return nil, fmt.Errorf("安全ではないURLが指定されました: %w", err)
	}
	return n.httpClient.FetchBytes(ctx, rawURL)
}

// isSafeURL は SSRF 対策として URL を検証します。
// 許可されたスキーム (http, https) かつ、名前解決されたすべての IP が
// プライベート・ループバック・リンクローカルでないことを確認します。
func isSafeURL(rawURL string) (bool, error) {
	parsedURL, err := url.ParseRequestURI(rawURL)
	if err != nil {
		return false, fmt.Errorf("URLパース失敗: %w", err)
	}

	if parsedURL.Scheme != "http" && parsedURL.Scheme != "https" {
		return false, fmt.Errorf("不許可スキーム: %s", parsedURL.Scheme)
	}

	host := parsedURL.Hostname()
	var ips []net.IP

	// IPアドレスが直接指定されている場合は名前解決を挟まない
	if ip := net.ParseIP(host); ip != nil {
		ips = []net.IP{ip}
	} else {
		resolvedIPs, err := net.LookupIP(host)
		if err != nil {
			return false, fmt.Errorf("ホスト '%s' の名前解決に失敗しました: %w", host, err)
		}
		ips = resolvedIPs
	}

	if len(ips) == 0 {
		return false, fmt.Errorf("IPが見つかりません")
	}

	for _, ip := range ips {
		if ip.IsPrivate() || ip.IsLoopback() || ip.IsLinkLocalUnicast() || ip.IsLinkLocalMulticast() {
			return false, fmt.Errorf("制限されたネットワークへのアクセスを検知: %s", ip.String())
		}
	}

	return true, nil
}
