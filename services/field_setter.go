package services

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"strings"

	"csv2project/api"
	"csv2project/models"
)

// FieldSetter はCSVの値をフィールドの種別に合わせて変換し、アイテムに設定します
type FieldSetter struct {
	client ProjectAPI
}

// NewFieldSetter は新しいFieldSetterを作成します
func NewFieldSetter(client ProjectAPI) *FieldSetter {
	return &FieldSetter{client: client}
}

// CoerceFieldValue は生の文字列をフィールド種別に応じた値に変換します
//
// 変換できない場合は FieldSkipped、未対応の種別は FieldUnsupported を返します。
func CoerceFieldValue(field models.ProjectField, raw string) (api.FieldValue, models.FieldStatus, string) {
	switch field.DataType {
	case models.FieldTypeText:
		return api.FieldValue{Text: &raw}, models.FieldSet, ""

	case models.FieldTypeNumber:
		num, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
		if err != nil || math.IsNaN(num) || math.IsInf(num, 0) {
			return api.FieldValue{}, models.FieldSkipped, fmt.Sprintf("数値ではありません: %q", raw)
		}
		return api.FieldValue{Number: &num}, models.FieldSet, ""

	case models.FieldTypeDate:
		// 形式 (YYYY-MM-DD) の検証はGitHub側に任せる
		return api.FieldValue{Date: &raw}, models.FieldSet, ""

	case models.FieldTypeSingleSelect:
		if len(field.Options) == 0 {
			return api.FieldValue{}, models.FieldSkipped, "SINGLE_SELECT フィールドに選択肢がありません"
		}
		for _, opt := range field.Options {
			if strings.EqualFold(opt.Name, raw) {
				id := opt.ID
				return api.FieldValue{SingleSelectOptionID: &id}, models.FieldSet, ""
			}
		}
		return api.FieldValue{}, models.FieldSkipped, fmt.Sprintf("不明な選択肢 %q", raw)

	default:
		return api.FieldValue{}, models.FieldUnsupported, fmt.Sprintf("未対応のフィールド種別 %s", field.DataType)
	}
}

// Set は1フィールドを設定し、結果を返します。APIエラーも FieldFailed として返します
func (s *FieldSetter) Set(ctx context.Context, projectID, itemID string, field models.ProjectField, raw string) models.FieldOutcome {
	outcome := models.FieldOutcome{Field: field.Name, Value: raw}

	value, status, reason := CoerceFieldValue(field, raw)
	if status != models.FieldSet {
		outcome.Status = status
		outcome.Reason = reason
		return outcome
	}

	err := s.client.UpdateItemFieldValue(ctx, api.FieldValueInput{
		ProjectID: projectID,
		ItemID:    itemID,
		FieldID:   field.ID,
		Value:     value,
	})
	if err != nil {
		outcome.Status = models.FieldFailed
		outcome.Reason = err.Error()
		return outcome
	}

	outcome.Status = models.FieldSet
	return outcome
}
