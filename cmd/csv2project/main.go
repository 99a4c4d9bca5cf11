package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"csv2project/api"
	"csv2project/config"
	"csv2project/utils"
)

// Version はビルド時に設定されます
var Version = "dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	// 設定の読み込み
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("設定の読み込みに失敗しました: %w", err)
	}

	cmd := newRootCommand(cfg, stdout, stderr)
	cmd.SetArgs(args)
	return cmd.ExecuteContext(ctx)
}

// app はサブコマンド間で共有する実行時の状態です
type app struct {
	cfg    *config.Config
	logger *utils.Logger
	// --token の値。ヘルプにデフォルト値として表示されないよう設定とは別に保持します
	token string
}

// client はトークンを確定させてからGitHubクライアントを作成します。トークンがなければ通信前に失敗します
func (a *app) client() (*api.GitHubClient, error) {
	if a.token != "" {
		a.cfg.GitHubToken = a.token
	}
	if err := a.cfg.ResolveToken(); err != nil {
		return nil, err
	}
	return api.NewGitHubClient(a.cfg.GraphQLURL, a.cfg.GitHubToken, a.cfg.RequestTimeout), nil
}

func newRootCommand(cfg *config.Config, stdout, stderr io.Writer) *cobra.Command {
	a := &app{cfg: cfg}

	root := &cobra.Command{
		Use:   "csv2project",
		Short: "CSVの行を GitHub Project (v2) のアイテムとして一括登録します",
		Long: `CSVの行を GitHub Project (v2) のアイテムとして一括登録します。

環境変数:
  GITHUB_TOKEN                 GitHubトークン (--token 未指定時)
  GITHUB_GRAPHQL_URL           GraphQLエンドポイント (デフォルト: https://api.github.com/graphql)
  CSV2PROJECT_KEYRING_SERVICE  トークンを保存したキーリングのサービス名 (任意)
  PROJECT_OWNER                Projectの所有者 (org または user)
  PROJECT_NUMBER               Projectの番号
  IMPORT_REPO                  イシューを作成するリポジトリ (owner/name)
  RATE_SLEEP                   行ごとの待機秒数 (デフォルト: 0.25)

設定ファイル:
  ~/.config/csv2project/config.toml と ./.csv2project.toml を順に読み込みます。`,
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       Version,
	}
	root.SetOut(stdout)
	root.SetErr(stderr)
	root.SetVersionTemplate("{{printf \"%s\\n\" .Version}}")

	flags := root.PersistentFlags()
	flags.StringVar(&a.token, "token", "", "GitHubトークン (未指定なら環境変数 GITHUB_TOKEN)")
	flags.StringVar(&cfg.GraphQLURL, "graphql-url", cfg.GraphQLURL, "GraphQLエンドポイント")
	flags.DurationVar(&cfg.RequestTimeout, "timeout", cfg.RequestTimeout, "1リクエストあたりのタイムアウト")
	flags.BoolVarP(&cfg.Verbose, "verbose", "v", cfg.Verbose, "デバッグログを出力する")

	root.PersistentPreRunE = func(cmd *cobra.Command, _ []string) error {
		a.logger = utils.NewLogger(stdout, stderr, cfg.Verbose).With("run_id", uuid.NewString()[:8])
		a.logger.LogDebug("コマンド %s を実行します", cmd.Name())
		return nil
	}

	root.AddCommand(
		newImportCommand(a),
		newFieldsCommand(a),
		newAuthCommand(a),
	)

	return root
}

// addProjectFlags は Project 指定のフラグを追加します
func addProjectFlags(cmd *cobra.Command, cfg *config.Config) {
	cmd.Flags().StringVar(&cfg.ProjectOwner, "project-owner", cfg.ProjectOwner, "Projectの所有者 (org または user)")
	cmd.Flags().IntVar(&cfg.ProjectNumber, "project-number", cfg.ProjectNumber, "Projectの番号 (URLに含まれる数字)")
}
