package main

import (
	"github.com/spf13/cobra"

	"csv2project/config"
	"csv2project/services"
)

func newImportCommand(a *app) *cobra.Command {
	cfg := a.cfg
	rateSleep := cfg.RateSleep.Seconds()

	cmd := &cobra.Command{
		Use:   "import",
		Short: "CSVからイシューまたはドラフトイシューを作成しProjectに追加する",
		Example: `  # org/repo にイシューを作成して Project #3 に追加
  csv2project import --project-owner my-org --project-number 3 --csv tasks.csv --repo my-org/app

  # ドラフトイシューとして追加 (セミコロン区切り)
  csv2project import --project-owner my-user --project-number 1 --csv tasks.csv --draft --delimiter ";"`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			client, err := a.client()
			if err != nil {
				return err
			}

			cfg.RateSleep = config.SecondsToDuration(rateSleep)
			if err := cfg.ValidateImport(); err != nil {
				return err
			}

			a.logger.LogInfo("CSV → GitHub Project インポート (Project: %s #%d, draft=%t)", cfg.ProjectOwner, cfg.ProjectNumber, cfg.Draft)

			importService := services.NewImportService(cfg, client, a.logger)
			_, err = importService.Run(cmd.Context())
			return err
		},
	}

	addProjectFlags(cmd, cfg)
	cmd.Flags().StringVar(&cfg.CSVPath, "csv", cfg.CSVPath, "入力CSVファイルのパス")
	cmd.Flags().StringVar(&cfg.Repo, "repo", cfg.Repo, "イシューを作成するリポジトリ (例: org/repo)。--draft の場合は不要")
	cmd.Flags().StringVar(&cfg.Delimiter, "delimiter", cfg.Delimiter, "CSVの区切り文字")
	cmd.Flags().BoolVar(&cfg.Draft, "draft", cfg.Draft, "リポジトリのイシューではなくProjectのドラフトイシューを作成する")
	cmd.Flags().Float64Var(&rateSleep, "rate-sleep", rateSleep, "行ごとの待機秒数")

	return cmd
}
