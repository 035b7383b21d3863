package generator

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/shouni/gemini-edit-kit/pkg/domain"
	"github.com/shouni/gemini-edit-kit/pkg/imgutil"
	"google.golang.org/genai"
)

// Interpret はサービスの応答を GenerationResult へ分類します。
// 規則は順に適用します:
//
//	1. 候補が1つもない場合は SafetyBlocked（サービスは拒否した出力を黙って落とす）。
//	2. 最初の候補のパーツを順に走査し、最初のインライン画像を成功として返す。
//	3. 画像パーツがない（テキストのみ等）場合は NoImage。
//
// どの分類も致命的ではなく、呼び出し側は入力を変えて再試行できます。
func Interpret(resp *genai.GenerateContentResponse) *domain.GenerationResult {
	if resp == nil || len(resp.Candidates) == 0 {
		msg := "サービスが候補を1つも返しませんでした"
		if resp != nil && resp.PromptFeedback != nil && resp.PromptFeedback.BlockReason != "" {
			msg = fmt.Sprintf("%s (BlockReason: %s)", msg, resp.PromptFeedback.BlockReason)
		}
		return &domain.GenerationResult{Failure: domain.NewFailure(domain.FailureSafetyBlocked, msg)}
	}

	candidate := resp.Candidates[0]
	if candidate.Content != nil {
		for _, part := range candidate.Content.Parts {
			if part.InlineData != nil && len(part.InlineData.Data) > 0 {
				img := &domain.ImageBuffer{
					Data:     part.InlineData.Data,
					MIMEType: part.InlineData.MIMEType,
				}
				// 寸法はヘッダから読めた場合のみ付与する
				if w, h, err := imgutil.Dimensions(img.Data); err == nil {
					img.Width, img.Height = w, h
				}
				return &domain.GenerationResult{Image: img}
			}
		}
	}

	return &domain.GenerationResult{Failure: domain.NewFailure(domain.FailureNoImage, "応答に画像データが含まれていませんでした")}
}

// ClassifyError は通信エラーを失敗分類へ写します。genai の型付きエラーを
// 先に調べ、取れない場合はエラー文中のステータス標識で判定します。
// どの標識にも該当しないものは Unknown とし、メッセージを原文のまま保持します。
func ClassifyError(err error) *domain.GenerationFailure {
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		switch {
		case apiErr.Code == http.StatusForbidden || apiErr.Status == "PERMISSION_DENIED":
			return domain.NewFailure(domain.FailurePermissionDenied, apiErr.Message)
		case apiErr.Code == http.StatusTooManyRequests || apiErr.Status == "RESOURCE_EXHAUSTED":
			return domain.NewFailure(domain.FailureQuotaExceeded, apiErr.Message)
		}
	}

	msg := err.Error()
	lower := strings.ToLower(msg)
	switch {
	case strings.Contains(lower, "permission") || strings.Contains(lower, "forbidden") || strings.Contains(lower, "403"):
		return domain.NewFailure(domain.FailurePermissionDenied, msg)
	case strings.Contains(lower, "resource exhausted") || strings.Contains(lower, "rate limit") ||
		strings.Contains(lower, "quota") || strings.Contains(lower, "429"):
		return domain.NewFailure(domain.FailureQuotaExceeded, msg)
	default:
		return domain.NewFailure(domain.FailureUnknown, msg)
	}
}
