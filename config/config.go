package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

const (
	// DefaultGraphQLURL は GitHub の GraphQL エンドポイントです
	DefaultGraphQLURL     = "https://api.github.com/graphql"
	defaultDelimiter      = ","
	defaultRateSleep      = 250 * time.Millisecond
	defaultRequestTimeout = 60 * time.Second
)

// ErrMissingToken はトークンがどこからも得られなかった場合のエラーです
var ErrMissingToken = errors.New("GitHubトークンがありません。--token か環境変数 GITHUB_TOKEN を指定してください")

// Config はアプリケーション全体の設定を保持します
type Config struct {
	// GitHub API設定
	GitHubToken    string
	GraphQLURL     string
	KeyringService string
	RequestTimeout time.Duration

	// インポート対象
	ProjectOwner  string
	ProjectNumber int
	Repo          string

	// 入力ファイル
	CSVPath   string
	Delimiter string

	// 動作モード
	Draft     bool
	RateSleep time.Duration
	Verbose   bool
}

type fileConfig struct {
	GraphQLURL     *string  `toml:"graphql_url"`
	KeyringService *string  `toml:"keyring_service"`
	RequestTimeout *string  `toml:"request_timeout"`
	ProjectOwner   *string  `toml:"project_owner"`
	ProjectNumber  *int     `toml:"project_number"`
	Repo           *string  `toml:"repo"`
	Delimiter      *string  `toml:"delimiter"`
	Draft          *bool    `toml:"draft"`
	RateSleep      *float64 `toml:"rate_sleep"`
}

// LoadConfig は設定ファイル・.env・環境変数から設定を読み込みます
//
// 優先順位: デフォルト < ~/.config/csv2project/config.toml < ./.csv2project.toml < 環境変数
func LoadConfig() (*Config, error) {
	// .envファイルを読み込む
	_ = godotenv.Load()

	var paths []string
	if homeDir, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(homeDir, ".config", "csv2project", "config.toml"))
	}
	if workingDir, err := os.Getwd(); err == nil {
		paths = append(paths, filepath.Join(workingDir, ".csv2project.toml"))
	}

	return loadConfig(paths)
}

func loadConfig(paths []string) (*Config, error) {
	cfg := defaults()

	for _, path := range paths {
		if err := overlayFromFile(&cfg, path); err != nil {
			return nil, err
		}
	}

	if err := overlayFromEnv(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func defaults() Config {
	return Config{
		GraphQLURL:     DefaultGraphQLURL,
		RequestTimeout: defaultRequestTimeout,
		Delimiter:      defaultDelimiter,
		RateSleep:      defaultRateSleep,
	}
}

func overlayFromFile(cfg *Config, path string) error {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("設定ファイル確認エラー %q: %w", path, err)
	}

	var decoded fileConfig
	if _, err := toml.DecodeFile(path, &decoded); err != nil {
		return fmt.Errorf("設定ファイル解析エラー %q: %w", path, err)
	}

	if decoded.GraphQLURL != nil {
		cfg.GraphQLURL = strings.TrimRight(*decoded.GraphQLURL, "/")
	}
	if decoded.KeyringService != nil {
		cfg.KeyringService = *decoded.KeyringService
	}
	if decoded.RequestTimeout != nil {
		timeout, err := time.ParseDuration(*decoded.RequestTimeout)
		if err != nil {
			return fmt.Errorf("request_timeout が不正です %q: %w", path, err)
		}
		cfg.RequestTimeout = timeout
	}
	if decoded.ProjectOwner != nil {
		cfg.ProjectOwner = *decoded.ProjectOwner
	}
	if decoded.ProjectNumber != nil {
		cfg.ProjectNumber = *decoded.ProjectNumber
	}
	if decoded.Repo != nil {
		cfg.Repo = *decoded.Repo
	}
	if decoded.Delimiter != nil {
		cfg.Delimiter = *decoded.Delimiter
	}
	if decoded.Draft != nil {
		cfg.Draft = *decoded.Draft
	}
	if decoded.RateSleep != nil {
		cfg.RateSleep = SecondsToDuration(*decoded.RateSleep)
	}

	return nil
}

func overlayFromEnv(cfg *Config) error {
	cfg.GitHubToken = os.Getenv("GITHUB_TOKEN")
	cfg.GraphQLURL = strings.TrimRight(getEnvWithDefault("GITHUB_GRAPHQL_URL", cfg.GraphQLURL), "/")
	cfg.KeyringService = getEnvWithDefault("CSV2PROJECT_KEYRING_SERVICE", cfg.KeyringService)
	cfg.ProjectOwner = getEnvWithDefault("PROJECT_OWNER", cfg.ProjectOwner)
	cfg.ProjectNumber = getEnvAsIntWithDefault("PROJECT_NUMBER", cfg.ProjectNumber)
	cfg.Repo = getEnvWithDefault("IMPORT_REPO", cfg.Repo)

	if value := os.Getenv("RATE_SLEEP"); value != "" {
		seconds, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return fmt.Errorf("RATE_SLEEP が数値ではありません: %q", value)
		}
		cfg.RateSleep = SecondsToDuration(seconds)
	}

	return nil
}

// ResolveToken はトークンを確定させます (--token / GITHUB_TOKEN / キーリングの順)
func (c *Config) ResolveToken() error {
	if strings.TrimSpace(c.GitHubToken) != "" {
		c.GitHubToken = strings.TrimSpace(c.GitHubToken)
		return nil
	}

	if c.KeyringService != "" {
		token, err := keyringLookup(c.KeyringService, keyringTokenKey)
		if err != nil {
			return fmt.Errorf("%w (キーリング: %v)", ErrMissingToken, err)
		}
		if strings.TrimSpace(token) != "" {
			c.GitHubToken = strings.TrimSpace(token)
			return nil
		}
	}

	return ErrMissingToken
}

// ValidateProject はプロジェクト指定を検証します
func (c *Config) ValidateProject() error {
	if c.ProjectOwner == "" {
		return errors.New("--project-owner を指定してください")
	}
	if c.ProjectNumber <= 0 {
		return fmt.Errorf("--project-number は正の整数で指定してください: %d", c.ProjectNumber)
	}
	return nil
}

// ValidateImport はインポート実行に必要な設定を検証します
func (c *Config) ValidateImport() error {
	if err := c.ValidateProject(); err != nil {
		return err
	}
	if c.CSVPath == "" {
		return errors.New("--csv を指定してください")
	}
	if utf8.RuneCountInString(c.Delimiter) != 1 {
		return fmt.Errorf("区切り文字は1文字で指定してください: %q", c.Delimiter)
	}
	if c.RateSleep < 0 {
		return fmt.Errorf("--rate-sleep は0以上で指定してください: %s", c.RateSleep)
	}
	if c.Draft {
		return nil
	}
	if c.Repo == "" {
		return errors.New("ドラフト以外のモードでは --repo (例: org/repo) が必要です。または --draft を使用してください")
	}
	if _, _, err := SplitRepo(c.Repo); err != nil {
		return err
	}
	return nil
}

// DelimiterRune は区切り文字をruneで返します
func (c *Config) DelimiterRune() rune {
	r, _ := utf8.DecodeRuneInString(c.Delimiter)
	if r == utf8.RuneError {
		return ','
	}
	return r
}

// SplitRepo は "owner/name" を分割します
func SplitRepo(repo string) (string, string, error) {
	owner, name, ok := strings.Cut(repo, "/")
	if !ok || owner == "" || name == "" {
		return "", "", fmt.Errorf("リポジトリは owner/name 形式で指定してください: %q", repo)
	}
	return owner, name, nil
}

// SecondsToDuration は秒数 (小数可) を time.Duration に変換します
func SecondsToDuration(seconds float64) time.Duration {
	return time.Duration(seconds * float64(time.Second))
}

// デフォルト値付きで環境変数を取得
func getEnvWithDefault(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

// デフォルト値付きで環境変数を整数として取得
func getEnvAsIntWithDefault(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}

	return value
}
