package services

import (
	"context"
	"fmt"
	"sort"

	"csv2project/api"
	"csv2project/models"
	"csv2project/utils"
)

// ownerStrategy は所有者種別ごとのプロジェクト検索です
type ownerStrategy struct {
	ownerType models.OwnerType
	find      func(ctx context.Context, owner string, number int) (*api.ProjectNode, error)
}

// ProjectResolver はプロジェクトとフィールド定義を解決します
type ProjectResolver struct {
	strategies []ownerStrategy
	logger     *utils.Logger
}

// NewProjectResolver は個人 → 組織の順で検索するリゾルバを作成します
func NewProjectResolver(client ProjectAPI, logger *utils.Logger) *ProjectResolver {
	return &ProjectResolver{
		strategies: []ownerStrategy{
			{ownerType: models.OwnerTypeUser, find: client.FindUserProject},
			{ownerType: models.OwnerTypeOrganization, find: client.FindOrganizationProject},
		},
		logger: logger,
	}
}

// Resolve は所有者名と番号からプロジェクトを解決します
//
// GitHubには所有者種別をまたいだ検索がないため、各種別を順に試します。
// 最後以外の検索で起きたエラーは「見つからない」として扱います。
func (r *ProjectResolver) Resolve(ctx context.Context, owner string, number int) (*models.Project, error) {
	for i, strategy := range r.strategies {
		last := i == len(r.strategies)-1

		node, err := strategy.find(ctx, owner, number)
		if err != nil {
			if !last {
				r.logger.LogDebug("%s としてのプロジェクト検索に失敗: %v", strategy.ownerType, err)
				continue
			}
			if !api.IsNotFound(err) {
				return nil, fmt.Errorf("プロジェクト検索エラー (%s): %w", strategy.ownerType, err)
			}
			node = nil
		}
		if node == nil {
			continue
		}

		r.logger.LogInfo("Project #%d を %s (%s) で見つけました", number, owner, strategy.ownerType)
		return buildProject(node, owner, strategy.ownerType, number), nil
	}

	return nil, &NotFoundError{
		Kind:   "Project",
		Name:   fmt.Sprintf("%s #%d", owner, number),
		Detail: "user / organization のどちらにもありません",
	}
}

// buildProject はレスポンスをフィールド名で引けるモデルに変換します
func buildProject(node *api.ProjectNode, owner string, ownerType models.OwnerType, number int) *models.Project {
	project := &models.Project{
		ID:        node.ID,
		Title:     node.Title,
		Owner:     owner,
		OwnerType: ownerType,
		Number:    number,
		Fields:    make(map[string]models.ProjectField, len(node.Fields.Nodes)),
	}

	for _, fn := range node.Fields.Nodes {
		if fn == nil || fn.Name == "" {
			continue
		}

		field := models.ProjectField{
			ID:       fn.ID,
			Name:     fn.Name,
			DataType: models.FieldDataType(fn.DataType),
		}
		if fn.Typename == "ProjectV2SingleSelectField" {
			field.Options = make([]models.FieldOption, 0, len(fn.Options))
			for _, opt := range fn.Options {
				if opt == nil {
					continue
				}
				field.Options = append(field.Options, models.FieldOption{ID: opt.ID, Name: opt.Name})
			}
		}

		// 同名フィールドは後勝ち
		project.Fields[field.Name] = field
	}

	return project
}

// SortedFields はフィールドを名前順で返します
func SortedFields(project *models.Project) []models.ProjectField {
	fields := make([]models.ProjectField, 0, len(project.Fields))
	for _, f := range project.Fields {
		fields = append(fields, f)
	}
	sort.Slice(fields, func(i, j int) bool { return fields[i].Name < fields[j].Name })
	return fields
}
