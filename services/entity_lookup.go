package services

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"csv2project/api"
	"csv2project/config"
	"csv2project/utils"
)

// EntityLookup はリポジトリ・ラベル・ユーザー名をノードIDに解決します
type EntityLookup struct {
	client ProjectAPI
	logger *utils.Logger
}

// NewEntityLookup は新しいEntityLookupを作成します
func NewEntityLookup(client ProjectAPI, logger *utils.Logger) *EntityLookup {
	return &EntityLookup{client: client, logger: logger}
}

// ResolveRepository は "owner/name" のリポジトリIDを返します。見つからなければ *NotFoundError
func (e *EntityLookup) ResolveRepository(ctx context.Context, repo string) (string, error) {
	owner, name, err := config.SplitRepo(repo)
	if err != nil {
		return "", err
	}

	id, err := e.client.GetRepositoryID(ctx, owner, name)
	if err != nil && !api.IsNotFound(err) {
		return "", fmt.Errorf("リポジトリ検索エラー: %w", err)
	}
	if err != nil || id == "" {
		return "", &NotFoundError{Kind: "Repository", Name: repo, Detail: "存在しないかアクセス権がありません"}
	}

	return id, nil
}

// ResolveLabels はラベル名ごとに検索し、大文字小文字を無視した完全一致のIDを返します
//
// 検索APIはあいまい一致で先頭100件しか返さないため、完全一致が100件目以降に
// ある場合は見つからない扱いになります。見つからない名前は警告して除外します。
func (e *EntityLookup) ResolveLabels(ctx context.Context, repo string, names []string) ([]string, error) {
	wanted := uniqueNonEmpty(names, nil)
	if len(wanted) == 0 {
		return nil, nil
	}

	owner, name, err := config.SplitRepo(repo)
	if err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(wanted))
	var missing []string
	for _, label := range wanted {
		candidates, err := e.client.SearchLabels(ctx, owner, name, label)
		if err != nil {
			return nil, fmt.Errorf("ラベル検索エラー %q: %w", label, err)
		}

		if id, ok := matchLabel(candidates, label); ok {
			ids = append(ids, id)
		} else {
			missing = append(missing, label)
		}
	}

	if len(missing) > 0 {
		sort.Strings(missing)
		e.logger.LogWarn("リポジトリに存在しないラベル: %s", strings.Join(missing, ", "))
	}

	return ids, nil
}

// ResolveUsers はログイン名ごとにユーザーIDを取得します。見つからない名前は警告して除外します
func (e *EntityLookup) ResolveUsers(ctx context.Context, logins []string) ([]string, error) {
	wanted := uniqueNonEmpty(logins, func(s string) string { return strings.TrimLeft(s, "@") })
	if len(wanted) == 0 {
		return nil, nil
	}

	ids := make([]string, 0, len(wanted))
	for _, login := range wanted {
		id, err := e.client.GetUserID(ctx, login)
		if err != nil && !api.IsNotFound(err) {
			return nil, fmt.Errorf("ユーザー検索エラー %q: %w", login, err)
		}
		if err != nil || id == "" {
			e.logger.LogWarn("存在しないユーザー: %s", login)
			continue
		}
		ids = append(ids, id)
	}

	return ids, nil
}

func matchLabel(candidates []api.LabelNode, name string) (string, bool) {
	for _, c := range candidates {
		if strings.EqualFold(c.Name, name) {
			return c.ID, true
		}
	}
	return "", false
}

// uniqueNonEmpty は前後の空白を除き、空と重複を取り除きます (順序は維持)
func uniqueNonEmpty(values []string, normalize func(string) string) []string {
	seen := make(map[string]bool, len(values))
	result := make([]string, 0, len(values))
	for _, v := range values {
		v = strings.TrimSpace(v)
		if normalize != nil {
			v = normalize(v)
		}
		if v == "" || seen[v] {
			continue
		}
		seen[v] = true
		result = append(result, v)
	}
	return result
}
