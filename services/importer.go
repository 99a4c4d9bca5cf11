package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"csv2project/config"
	"csv2project/models"
	"csv2project/utils"
)

// ImportService はCSVの各行をGitHub Projectのアイテムとして取り込みます
type ImportService struct {
	config   *config.Config
	csvProc  *CSVProcessor
	resolver *ProjectResolver
	lookup   *EntityLookup
	creator  *ItemCreator
	setter   *FieldSetter
	logger   *utils.Logger
	sleep    func(ctx context.Context, d time.Duration) error
}

// NewImportService は新しいインポートサービスを作成します
func NewImportService(cfg *config.Config, client ProjectAPI, logger *utils.Logger) *ImportService {
	return &ImportService{
		config:   cfg,
		csvProc:  NewCSVProcessor(cfg, logger),
		resolver: NewProjectResolver(client, logger),
		lookup:   NewEntityLookup(client, logger),
		creator:  NewItemCreator(client, logger),
		setter:   NewFieldSetter(client),
		logger:   logger,
		sleep:    sleepContext,
	}
}

// Run はインポート全体を実行します
//
// 順序: プロジェクト解決 → (通常モード) リポジトリ解決 → CSVを1行ずつ読みながら各行の処理。
// フィールド単位の失敗は警告のみで続行し、それ以外のエラーで中断します。
func (s *ImportService) Run(ctx context.Context) (*models.ImportSummary, error) {
	startTime := time.Now()
	defer s.logger.TrackTime(startTime, "インポート")

	project, err := s.resolver.Resolve(ctx, s.config.ProjectOwner, s.config.ProjectNumber)
	if err != nil {
		return nil, err
	}

	var repoID string
	if !s.config.Draft {
		repoID, err = s.lookup.ResolveRepository(ctx, s.config.Repo)
		if err != nil {
			return nil, err
		}
	}

	summary := &models.ImportSummary{}
	err = s.csvProc.EachImportRow(func(row models.ImportRow) error {
		summary.Rows++
		if row.Title == "" {
			s.logger.LogError("行 %d: Title 列がありません。スキップします", row.Line)
			summary.SkippedRows++
			return nil
		}

		item, outcomes, err := s.processRow(ctx, project, repoID, row)
		if err != nil {
			return fmt.Errorf("行 %d の処理に失敗: %w", row.Line, err)
		}
		summary.Created++
		if item.Draft {
			summary.Drafts++
		}
		tallyOutcomes(summary, outcomes)

		return s.sleep(ctx, s.config.RateSleep)
	})
	if err != nil {
		return summary, err
	}

	s.logger.LogInfo("インポートが完了しました: 行=%d, 作成=%d (ドラフト=%d), スキップ行=%d, フィールド設定=%d, フィールドスキップ=%d, フィールド失敗=%d",
		summary.Rows, summary.Created, summary.Drafts, summary.SkippedRows, summary.FieldsSet, summary.FieldsSkipped, summary.FieldsFailed)
	return summary, nil
}

// processRow は1行を処理しアイテムを作成してフィールドを設定します
func (s *ImportService) processRow(ctx context.Context, project *models.Project, repoID string, row models.ImportRow) (*models.CreatedItem, []models.FieldOutcome, error) {
	assigneeIDs, err := s.lookup.ResolveUsers(ctx, row.Assignees)
	if err != nil {
		return nil, nil, err
	}

	var item *models.CreatedItem
	if s.config.Draft {
		item, err = s.creator.CreateDraft(ctx, project.ID, row.Title, row.Body, assigneeIDs)
	} else {
		var labelIDs []string
		labelIDs, err = s.lookup.ResolveLabels(ctx, s.config.Repo, row.Labels)
		if err != nil {
			return nil, nil, err
		}
		item, err = s.creator.CreateTracked(ctx, project.ID, repoID, row.Title, row.Body, labelIDs, assigneeIDs)
	}
	if err != nil {
		return nil, nil, err
	}
	s.logger.LogDebug("行 %d: item=%s content=%s draft=%t", row.Line, item.ItemID, item.ContentID, item.Draft)

	return item, s.applyFields(ctx, project, item.ItemID, row), nil
}

// applyFields は予約列以外の列のうち、フィールド名と一致するものを設定します
func (s *ImportService) applyFields(ctx context.Context, project *models.Project, itemID string, row models.ImportRow) []models.FieldOutcome {
	var outcomes []models.FieldOutcome
	for _, col := range row.Extras {
		value := strings.TrimSpace(col.Value)
		if value == "" {
			continue
		}
		field, ok := project.Fields[col.Name]
		if !ok {
			continue
		}

		outcome := s.setter.Set(ctx, project.ID, itemID, field, value)
		s.reportOutcome(row.Line, outcome)
		outcomes = append(outcomes, outcome)
	}
	return outcomes
}

func (s *ImportService) reportOutcome(line int, outcome models.FieldOutcome) {
	switch outcome.Status {
	case models.FieldSkipped:
		s.logger.LogWarn("行 %d: フィールド '%s' をスキップしました: %s", line, outcome.Field, outcome.Reason)
	case models.FieldUnsupported:
		s.logger.LogNotice("行 %d: フィールド '%s' は無視します: %s", line, outcome.Field, outcome.Reason)
	case models.FieldFailed:
		s.logger.LogWarn("行 %d: フィールド '%s' を '%s' に設定できませんでした: %s", line, outcome.Field, outcome.Value, outcome.Reason)
	default:
		s.logger.LogDebug("行 %d: フィールド '%s' = '%s'", line, outcome.Field, outcome.Value)
	}
}

func tallyOutcomes(summary *models.ImportSummary, outcomes []models.FieldOutcome) {
	for _, o := range outcomes {
		switch o.Status {
		case models.FieldSet:
			summary.FieldsSet++
		case models.FieldFailed:
			summary.FieldsFailed++
		default:
			summary.FieldsSkipped++
		}
	}
}

// sleepContext は d だけ待機します。コンテキストがキャンセルされたら即座に戻ります
func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
