package models

// OwnerType はプロジェクト所有者の種別を表します
type OwnerType string

const (
	// OwnerTypeUser は個人アカウント所有のプロジェクトです
	OwnerTypeUser OwnerType = "user"
	// OwnerTypeOrganization は組織アカウント所有のプロジェクトです
	OwnerTypeOrganization OwnerType = "organization"
)

// FieldDataType はプロジェクトフィールドの値の種別です (GitHubの dataType そのまま)
type FieldDataType string

const (
	FieldTypeText         FieldDataType = "TEXT"
	FieldTypeNumber       FieldDataType = "NUMBER"
	FieldTypeDate         FieldDataType = "DATE"
	FieldTypeSingleSelect FieldDataType = "SINGLE_SELECT"
)

// Project は解決済みの GitHub Project (v2) を表します
type Project struct {
	ID        string
	Title     string
	Owner     string
	OwnerType OwnerType
	Number    int
	// フィールド名 → フィールド定義
	Fields map[string]ProjectField
}

// ProjectField はプロジェクトのカスタムフィールド定義です
type ProjectField struct {
	ID       string
	Name     string
	DataType FieldDataType
	// SINGLE_SELECT の場合のみ non-nil
	Options []FieldOption
}

// FieldOption は SINGLE_SELECT フィールドの選択肢です
type FieldOption struct {
	ID   string
	Name string
}

// ImportRow はCSVの1行を取り込み用に整形したものです
type ImportRow struct {
	Line      int // データ行の番号 (1始まり、ヘッダーを除く)
	Title     string
	Body      string
	Labels    []string
	Assignees []string
	Extras    []ExtraColumn
}

// ExtraColumn は予約列以外の列です (ヘッダー順)
type ExtraColumn struct {
	Name  string
	Value string
}

// CreatedItem は作成済みのプロジェクトアイテムです
type CreatedItem struct {
	ItemID    string // プロジェクトアイテムID (フィールド設定に使用)
	ContentID string // イシューのノードID (ドラフトの場合は空)
	Number    int
	URL       string
	Draft     bool
}

// FieldStatus はフィールド設定の結果種別です
type FieldStatus string

const (
	FieldSet         FieldStatus = "set"
	FieldSkipped     FieldStatus = "skipped"
	FieldUnsupported FieldStatus = "unsupported"
	FieldFailed      FieldStatus = "failed"
)

// FieldOutcome は1フィールド分の設定結果です
type FieldOutcome struct {
	Field  string
	Value  string
	Status FieldStatus
	Reason string
}

// ImportSummary はインポート全体の集計です
type ImportSummary struct {
	Rows          int
	Created       int
	Drafts        int // Created のうちドラフトイシュー
	SkippedRows   int
	FieldsSet     int
	FieldsSkipped int
	FieldsFailed  int
}
