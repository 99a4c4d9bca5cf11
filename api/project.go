package api

import (
	"context"
	"fmt"
)

// ProjectNode は projectV2 のレスポンスです
type ProjectNode struct {
	ID     string `json:"id"`
	Title  string `json:"title"`
	Fields struct {
		Nodes []*FieldNode `json:"nodes"`
	} `json:"fields"`
}

// FieldNode はプロジェクトフィールドのノードです
type FieldNode struct {
	Typename string        `json:"__typename"`
	ID       string        `json:"id"`
	Name     string        `json:"name"`
	DataType string        `json:"dataType"`
	Options  []*OptionNode `json:"options"`
}

// OptionNode は SINGLE_SELECT の選択肢です
type OptionNode struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// LabelNode はラベル検索結果です
type LabelNode struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// IssueNode は作成されたイシューです
type IssueNode struct {
	ID     string `json:"id"`
	Number int    `json:"number"`
	URL    string `json:"url"`
}

// CreateIssueInput は createIssue の入力です
//
// 空のIDリストは null (未指定) として送信します。
type CreateIssueInput struct {
	RepositoryID string   `json:"repositoryId"`
	Title        string   `json:"title"`
	Body         string   `json:"body"`
	LabelIDs     []string `json:"labelIds"`
	AssigneeIDs  []string `json:"assigneeIds"`
}

// DraftIssueInput は addProjectV2DraftIssue の入力です
type DraftIssueInput struct {
	ProjectID   string   `json:"projectId"`
	Title       string   `json:"title"`
	Body        string   `json:"body"`
	AssigneeIDs []string `json:"assigneeIds"`
}

// FieldValue は updateProjectV2ItemFieldValue の value です (いずれか1つのみ設定)
type FieldValue struct {
	Text                 *string  `json:"text,omitempty"`
	Number               *float64 `json:"number,omitempty"`
	Date                 *string  `json:"date,omitempty"`
	SingleSelectOptionID *string  `json:"singleSelectOptionId,omitempty"`
}

// FieldValueInput は updateProjectV2ItemFieldValue の入力です
type FieldValueInput struct {
	ProjectID string     `json:"projectId"`
	ItemID    string     `json:"itemId"`
	FieldID   string     `json:"fieldId"`
	Value     FieldValue `json:"value"`
}

// FindUserProject は個人アカウント配下のプロジェクトを取得します (存在しなければ nil)
func (g *GitHubClient) FindUserProject(ctx context.Context, owner string, number int) (*ProjectNode, error) {
	var data struct {
		User *struct {
			ProjectV2 *ProjectNode `json:"projectV2"`
		} `json:"user"`
	}
	if err := g.Do(ctx, queryUserProject, map[string]interface{}{"owner": owner, "number": number}, &data); err != nil {
		return nil, err
	}
	if data.User == nil {
		return nil, nil
	}
	return data.User.ProjectV2, nil
}

// FindOrganizationProject は組織アカウント配下のプロジェクトを取得します (存在しなければ nil)
func (g *GitHubClient) FindOrganizationProject(ctx context.Context, owner string, number int) (*ProjectNode, error) {
	var data struct {
		Organization *struct {
			ProjectV2 *ProjectNode `json:"projectV2"`
		} `json:"organization"`
	}
	if err := g.Do(ctx, queryOrganizationProject, map[string]interface{}{"owner": owner, "number": number}, &data); err != nil {
		return nil, err
	}
	if data.Organization == nil {
		return nil, nil
	}
	return data.Organization.ProjectV2, nil
}

// GetRepositoryID はリポジトリのノードIDを取得します (存在しなければ空文字)
func (g *GitHubClient) GetRepositoryID(ctx context.Context, owner, name string) (string, error) {
	var data struct {
		Repository *struct {
			ID string `json:"id"`
		} `json:"repository"`
	}
	if err := g.Do(ctx, queryRepository, map[string]interface{}{"owner": owner, "name": name}, &data); err != nil {
		return "", err
	}
	if data.Repository == nil {
		return "", nil
	}
	return data.Repository.ID, nil
}

// SearchLabels はラベルを検索します (先頭100件のみ、あいまい一致)
func (g *GitHubClient) SearchLabels(ctx context.Context, owner, name, query string) ([]LabelNode, error) {
	var data struct {
		Repository *struct {
			Labels struct {
				Nodes []LabelNode `json:"nodes"`
			} `json:"labels"`
		} `json:"repository"`
	}
	vars := map[string]interface{}{"owner": owner, "name": name, "query": query}
	if err := g.Do(ctx, queryRepositoryLabels, vars, &data); err != nil {
		return nil, err
	}
	if data.Repository == nil {
		return nil, fmt.Errorf("リポジトリ %s/%s が見つかりません", owner, name)
	}
	return data.Repository.Labels.Nodes, nil
}

// GetUserID はユーザーのノードIDを取得します (存在しなければ空文字)
func (g *GitHubClient) GetUserID(ctx context.Context, login string) (string, error) {
	var data struct {
		User *struct {
			ID    string `json:"id"`
			Login string `json:"login"`
		} `json:"user"`
	}
	if err := g.Do(ctx, queryUser, map[string]interface{}{"login": login}, &data); err != nil {
		return "", err
	}
	if data.User == nil {
		return "", nil
	}
	return data.User.ID, nil
}

// Viewer はトークンの持ち主のログイン名を返します
func (g *GitHubClient) Viewer(ctx context.Context) (string, error) {
	var data struct {
		Viewer struct {
			Login string `json:"login"`
		} `json:"viewer"`
	}
	if err := g.Do(ctx, queryViewer, nil, &data); err != nil {
		return "", err
	}
	return data.Viewer.Login, nil
}

// CreateIssue はリポジトリにイシューを作成します
func (g *GitHubClient) CreateIssue(ctx context.Context, input CreateIssueInput) (*IssueNode, error) {
	input.LabelIDs = nilIfEmpty(input.LabelIDs)
	input.AssigneeIDs = nilIfEmpty(input.AssigneeIDs)

	var data struct {
		CreateIssue struct {
			Issue *IssueNode `json:"issue"`
		} `json:"createIssue"`
	}
	if err := g.Do(ctx, mutationCreateIssue, map[string]interface{}{"input": input}, &data); err != nil {
		return nil, err
	}
	if data.CreateIssue.Issue == nil {
		return nil, fmt.Errorf("createIssue のレスポンスにイシューがありません")
	}
	return data.CreateIssue.Issue, nil
}

// AddItemToProject は既存のイシューをプロジェクトに追加し、アイテムIDを返します
func (g *GitHubClient) AddItemToProject(ctx context.Context, projectID, contentID string) (string, error) {
	var data struct {
		AddProjectV2ItemByID struct {
			Item *struct {
				ID string `json:"id"`
			} `json:"item"`
		} `json:"addProjectV2ItemById"`
	}
	vars := map[string]interface{}{"projectId": projectID, "contentId": contentID}
	if err := g.Do(ctx, mutationAddProjectItem, vars, &data); err != nil {
		return "", err
	}
	if data.AddProjectV2ItemByID.Item == nil {
		return "", fmt.Errorf("addProjectV2ItemById のレスポンスにアイテムがありません")
	}
	return data.AddProjectV2ItemByID.Item.ID, nil
}

// AddDraftIssue はプロジェクトにドラフトイシューを作成し、アイテムIDを返します
func (g *GitHubClient) AddDraftIssue(ctx context.Context, input DraftIssueInput) (string, error) {
	input.AssigneeIDs = nilIfEmpty(input.AssigneeIDs)

	var data struct {
		AddProjectV2DraftIssue struct {
			ProjectItem *struct {
				ID string `json:"id"`
			} `json:"projectItem"`
		} `json:"addProjectV2DraftIssue"`
	}
	if err := g.Do(ctx, mutationAddDraftIssue, map[string]interface{}{"input": input}, &data); err != nil {
		return "", err
	}
	if data.AddProjectV2DraftIssue.ProjectItem == nil {
		return "", fmt.Errorf("addProjectV2DraftIssue のレスポンスにアイテムがありません")
	}
	return data.AddProjectV2DraftIssue.ProjectItem.ID, nil
}

// UpdateItemFieldValue はアイテムのフィールド値を更新します
func (g *GitHubClient) UpdateItemFieldValue(ctx context.Context, input FieldValueInput) error {
	return g.Do(ctx, mutationUpdateFieldValue, map[string]interface{}{"input": input}, nil)
}

func nilIfEmpty(ids []string) []string {
	if len(ids) == 0 {
		return nil
	}
	return ids
}
