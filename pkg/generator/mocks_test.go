package generator

import (
	"context"

	"google.golang.org/genai"
)

// --- Mocks ---

type mockImageModel struct {
	generateFunc func(ctx context.Context, model string, parts []*genai.Part, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
	callCount    int
}

func (m *mockImageModel) GenerateImage(ctx context.Context, model string, parts []*genai.Part, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
	m.callCount++
	if m.generateFunc != nil {
		return m.generateFunc(ctx, model, parts, config)
	}
	return imageResponse("image/png", []byte("fake")), nil
}

type mockAssetStore struct {
	referenceFunc func(ctx context.Context, rawURL string) *genai.Part
}

func (m *mockAssetStore) ReferencePart(ctx context.Context, rawURL string) *genai.Part {
	if m.referenceFunc != nil {
		return m.referenceFunc(ctx, rawURL)
	}
	return nil
}

// imageResponse はインライン画像1つを含むレスポンスを作るヘルパー
func imageResponse(mimeType string, data []byte) *genai.GenerateContentResponse {
	return &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{
			Content: &genai.Content{
				Parts: []*genai.Part{{InlineData: &genai.Blob{MIMEType: mimeType, Data: data}}},
			},
		}},
	}
}

// textResponse はテキストのみのレスポンスを作るヘルパー
func textResponse(text string) *genai.GenerateContentResponse {
	return &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{
			Content: &genai.Content{
				Parts: []*genai.Part{{Text: text}},
			},
		}},
	}
}
