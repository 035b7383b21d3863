package generator

import (
	"context"
	"fmt"
	"log/slog"
	"sync/atomic"

	"github.com/shouni/gemini-edit-kit/pkg/domain"
	"github.com/shouni/gemini-edit-kit/pkg/utils"
	"google.golang.org/genai"
)

// Executor は1回の生成アクションを実行する司令塔です。
// 生成呼び出しはシステム内で唯一のブロッキング操作で、同時に1つしか
// 実行させません。実行中の再要求は ErrGenerationInFlight で拒否します
// （結果スロットの所有者を常に1つへ保つため）。途中キャンセルは ctx に、
// タイムアウトは下層のトランスポートに委ねます。自動再試行は行いません。
type Executor struct {
	model     ImageModel
	modelName string
	assets    AssetStore
	inFlight  atomic.Bool
}

// NewExecutor は依存関係を注入して Executor を初期化します。
// assets は nil を許容します（File API・リモート参照なし動作）。
func NewExecutor(model ImageModel, modelName string, assets AssetStore) (*Executor, error) {
	if model == nil {
		return nil, fmt.Errorf("model is required")
	}
	if modelName == "" {
		return nil, fmt.Errorf("modelName is required")
	}

	return &Executor{
		model:     model,
		modelName: modelName,
		assets:    assets,
	}, nil
}

// Generate は組み立て済みの Request を実行し、分類済みの結果を返します。
// 通信エラーも分類して GenerationResult に畳み込むため、error が返るのは
// 多重実行の拒否（ErrGenerationInFlight）と前提違反のみです。
func (e *Executor) Generate(ctx context.Context, req *Request) (*domain.GenerationResult, error) {
	if req == nil || len(req.Parts) == 0 {
		return nil, fmt.Errorf("リクエストが空です")
	}

	if !e.inFlight.CompareAndSwap(false, true) {
		return nil, ErrGenerationInFlight
	}
	defer e.inFlight.Store(false)

	slog.Info("画像生成リクエストを送信します", "model", e.modelName, "parts", len(req.Parts))

	resp, err := e.model.GenerateImage(ctx, e.modelName, req.Parts, req.Config)
	if err != nil {
		failure := ClassifyError(err)
		slog.WarnContext(ctx, "画像生成リクエストが失敗しました", "model", e.modelName, "kind", failure.Kind, "error", err)
		return &domain.GenerationResult{Failure: failure}, nil
	}

	result := Interpret(resp)
	if result.OK() {
		slog.Info("画像生成が完了しました", "model", e.modelName, "mime_type", result.Image.MIMEType, "bytes", len(result.Image.Data))
	} else {
		slog.WarnContext(ctx, "画像生成は成立しませんでした", "model", e.modelName, "kind", result.Failure.Kind)
	}
	return result, nil
}

// GenerateEdit はソース・マスク・参照（いずれも任意）と設定から要求を
// 組み立てて実行します。
func (e *Executor) GenerateEdit(ctx context.Context, source, mask, reference *domain.ImageBuffer, s domain.GenerationSettings) (*domain.GenerationResult, error) {
	slog.Info("編集リクエストを組み立てます",
		"has_source", source != nil,
		"has_mask", mask != nil,
		"has_reference", reference != nil,
		"seed", utils.DereferenceSeed(s.Seed))
	return e.Generate(ctx, BuildRequest(source, mask, reference, s))
}

// GenerateWithRemoteReference は参照画像をURLで受け取る変種です。
// 参照は AssetStore 経由で File API の URI かインラインデータへ解決されます。
// 解決できなかった場合は参照なしで続行します（指示文も参照なしの形になります）。
func (e *Executor) GenerateWithRemoteReference(ctx context.Context, source, mask *domain.ImageBuffer, referenceURL string, s domain.GenerationSettings) (*domain.GenerationResult, error) {
	var refPart *genai.Part
	if referenceURL != "" && e.assets != nil {
		refPart = e.assets.ReferencePart(ctx, referenceURL)
		if refPart == nil {
			slog.WarnContext(ctx, "参照画像を解決できませんでした。参照なしで続行します", "url", referenceURL)
		}
	}
	return e.Generate(ctx, assembleRequest(source, mask, refPart, s))
}
