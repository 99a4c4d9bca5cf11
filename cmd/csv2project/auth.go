package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newAuthCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "auth",
		Short: "GitHubトークンが有効か確認する",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			client, err := a.client()
			if err != nil {
				return err
			}

			a.logger.LogInfo("GitHub APIの認証を確認しています...")
			login, err := client.Viewer(cmd.Context())
			if err != nil {
				return fmt.Errorf("GitHub認証エラー: %w", err)
			}

			a.logger.LogInfo("GitHub認証成功！ ユーザー: %s (接続先: %s)", login, a.cfg.GraphQLURL)
			return nil
		},
	}
}
