package services

import (
	"context"
	"fmt"

	"csv2project/api"
	"csv2project/models"
	"csv2project/utils"
)

// ItemCreator はイシューまたはドラフトイシューを作成し、プロジェクトに載せます
type ItemCreator struct {
	client ProjectAPI
	logger *utils.Logger
}

// NewItemCreator は新しいItemCreatorを作成します
func NewItemCreator(client ProjectAPI, logger *utils.Logger) *ItemCreator {
	return &ItemCreator{client: client, logger: logger}
}

// CreateDraft はプロジェクトに直接ドラフトイシューを作成します
func (c *ItemCreator) CreateDraft(ctx context.Context, projectID, title, body string, assigneeIDs []string) (*models.CreatedItem, error) {
	itemID, err := c.client.AddDraftIssue(ctx, api.DraftIssueInput{
		ProjectID:   projectID,
		Title:       title,
		Body:        body,
		AssigneeIDs: assigneeIDs,
	})
	if err != nil {
		return nil, fmt.Errorf("ドラフトイシュー作成エラー: %w", err)
	}

	c.logger.LogInfo("ドラフトイシューを作成しProjectに追加しました (item %s)", itemID)
	return &models.CreatedItem{ItemID: itemID, Draft: true}, nil
}

// CreateTracked はリポジトリにイシューを作成し、プロジェクトに追加します
func (c *ItemCreator) CreateTracked(ctx context.Context, projectID, repoID, title, body string, labelIDs, assigneeIDs []string) (*models.CreatedItem, error) {
	issue, err := c.client.CreateIssue(ctx, api.CreateIssueInput{
		RepositoryID: repoID,
		Title:        title,
		Body:         body,
		LabelIDs:     labelIDs,
		AssigneeIDs:  assigneeIDs,
	})
	if err != nil {
		return nil, fmt.Errorf("イシュー作成エラー: %w", err)
	}
	c.logger.LogInfo("イシュー #%d を作成しました: %s", issue.Number, issue.URL)

	itemID, err := c.client.AddItemToProject(ctx, projectID, issue.ID)
	if err != nil {
		return nil, fmt.Errorf("Project追加エラー (#%d): %w", issue.Number, err)
	}
	c.logger.LogInfo("Projectに追加しました (item %s)", itemID)

	return &models.CreatedItem{
		ItemID:    itemID,
		ContentID: issue.ID,
		Number:    issue.Number,
		URL:       issue.URL,
	}, nil
}
