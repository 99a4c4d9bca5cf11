package services

import (
	"context"

	"csv2project/api"
)

// ProjectAPI はインポートで使うGitHub操作です (*api.GitHubClient が実装)
type ProjectAPI interface {
	FindUserProject(ctx context.Context, owner string, number int) (*api.ProjectNode, error)
	FindOrganizationProject(ctx context.Context, owner string, number int) (*api.ProjectNode, error)
	GetRepositoryID(ctx context.Context, owner, name string) (string, error)
	SearchLabels(ctx context.Context, owner, name, query string) ([]api.LabelNode, error)
	GetUserID(ctx context.Context, login string) (string, error)
	CreateIssue(ctx context.Context, input api.CreateIssueInput) (*api.IssueNode, error)
	AddItemToProject(ctx context.Context, projectID, contentID string) (string, error)
	AddDraftIssue(ctx context.Context, input api.DraftIssueInput) (string, error)
	UpdateItemFieldValue(ctx context.Context, input api.FieldValueInput) error
}

var _ ProjectAPI = (*api.GitHubClient)(nil)
