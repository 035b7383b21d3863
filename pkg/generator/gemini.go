package generator

import (
	"context"
	"fmt"

	"google.golang.org/genai"
)

// GeminiModel は genai クライアントを用いた ImageModel の実装です。
// Gemini API バックエンドに接続します。
type GeminiModel struct {
	client *genai.Client
}

// NewGeminiModel は API キーから GeminiModel を初期化します。
// キーは不透明な文字列として扱い、形式の検証は行いません。
func NewGeminiModel(ctx context.Context, apiKey string) (*GeminiModel, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("apiKey is required")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("genaiクライアントの初期化に失敗しました: %w", err)
	}
	return &GeminiModel{client: client}, nil
}

// GenerateImage はパーツ列を1つのユーザーコンテンツとして送信し、
// 生のレスポンスを返します。
func (g *GeminiModel) GenerateImage(ctx context.Context, model string, parts []*genai.Part, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
	contents := []*genai.Content{genai.NewContentFromParts(parts, genai.RoleUser)}
	return g.client.Models.GenerateContent(ctx, model, contents, config)
}
