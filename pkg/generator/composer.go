package generator

import (
	"github.com/shouni/gemini-edit-kit/pkg/domain"
	"github.com/shouni/gemini-edit-kit/pkg/prompt"
	"github.com/shouni/gemini-edit-kit/pkg/utils"
	"google.golang.org/genai"
)

// BuildRequest はソース・マスク・参照（いずれも任意）と設定から Request を
// 組み立てます。パーツの並び順は固定です:
//
//	1. ソース画像（あれば先頭）
//	2. マスク画像（ソースと組でのみ意味を持つ）
//	3. 参照画像
//	4. テキストパーツ（必ず1つ、必ず末尾）
//
// 指示文の「最後の画像」等の位置参照はこの並びを前提にしているため、
// 並び順と文面は1つの不変条件として扱います（prompt.Inputs 参照）。
// 検証は行いません。画像もプロンプトもない要求は呼び出し側の前提違反です。
func BuildRequest(source, mask, reference *domain.ImageBuffer, s domain.GenerationSettings) *Request {
	var refPart *genai.Part
	if reference != nil {
		refPart = inlinePart(reference)
	}
	return assembleRequest(source, mask, refPart, s)
}

// assembleRequest は並び順の規則と指示文の選択を1か所で行います。
// prompt.Inputs はここで積むパーツと同じ条件から導くため、
// 「参照は最後の画像」という位置参照が実際の並びとずれることはありません。
func assembleRequest(source, mask *domain.ImageBuffer, refPart *genai.Part, s domain.GenerationSettings) *Request {
	in := prompt.Inputs{
		HasSource:    source != nil,
		HasMask:      source != nil && mask != nil,
		HasReference: refPart != nil,
	}

	parts := make([]*genai.Part, 0, 4)
	if in.HasSource {
		parts = append(parts, inlinePart(source))
	}
	if in.HasMask {
		parts = append(parts, inlinePart(mask))
	}
	if in.HasReference {
		parts = append(parts, refPart)
	}
	parts = append(parts, genai.NewPartFromText(prompt.Build(in, s)))

	return &Request{Parts: parts, Config: buildConfig(s)}
}

func inlinePart(buf *domain.ImageBuffer) *genai.Part {
	return &genai.Part{InlineData: &genai.Blob{MIMEType: buf.MIMEType, Data: buf.Data}}
}

// buildConfig は設定からサイズ・比率の設定ブロックを組み立てます。
// 未指定の項目はバックエンドの既定に委ねます。
func buildConfig(s domain.GenerationSettings) *genai.GenerateContentConfig {
	cfg := &genai.GenerateContentConfig{}
	if s.AspectRatio != "" || s.ImageSize != "" {
		cfg.ImageConfig = &genai.ImageConfig{
			AspectRatio: s.AspectRatio,
			ImageSize:   s.ImageSize,
		}
	}
	if s.Seed != nil {
		cfg.Seed = utils.SeedToPtrInt32(s.Seed)
	}
	return cfg
}
