package generator

import (
	"context"

	"google.golang.org/genai"
)

// ImageModel は画像生成サービスとの通信窓口です。順序付きのパーツ列と
// 設定ブロックを受け取り、生のレスポンスをそのまま返します。
// 解釈（成功・失敗の分類）は呼び出し側が行います。
type ImageModel interface {
	GenerateImage(ctx context.Context, model string, parts []*genai.Part, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// AssetStore は参照画像URLを genai.Part へ解決する窓口です。
// File API にアップロード済みならその URI を、未登録ならインラインデータを
// 返します。解決できない場合は nil を返し、呼び出し側は参照なしで続行します。
type AssetStore interface {
	ReferencePart(ctx context.Context, rawURL string) *genai.Part
}
