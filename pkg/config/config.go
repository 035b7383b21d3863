package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// DefaultModel は画像の生成・編集に使う既定のモデル名です。
const DefaultModel = "gemini-2.5-flash-image"

// Config は環境変数から読み込む実行時設定です。APIキーは不透明な文字列として
// 扱い、形式の検証は行いません。
type Config struct {
	// APIKey は生成サービスの認証情報です。必須。
	APIKey string
	// Model は使用するモデル名です。
	Model string
	// CompressionQuality は取得した参照画像をJPEG再圧縮する際の品質(1-100)です。
	// 0 以下で再圧縮を無効化します。
	CompressionQuality int
	// CacheTTL は画像・File API URI キャッシュの有効期限です。
	CacheTTL time.Duration
}

// Load は .env（存在する場合）と環境変数から設定を構築します。
// GEMINI_API_KEY が未設定の場合はエラーを返します。
func Load() (*Config, error) {
	_ = godotenv.Load()

	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY is required")
	}

	return &Config{
		APIKey:             apiKey,
		Model:              getEnv("GEMINI_EDIT_MODEL", DefaultModel),
		CompressionQuality: getEnvInt("IMAGE_COMPRESSION_QUALITY", 75),
		CacheTTL:           time.Minute * time.Duration(getEnvInt("IMAGE_CACHE_TTL_MINUTES", 60)),
	}, nil
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}
