package services

import "fmt"

// NotFoundError は必須の対象 (プロジェクト・リポジトリ) が見つからない場合のエラーです
type NotFoundError struct {
	Kind   string
	Name   string
	Detail string
}

func (e *NotFoundError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("%s %s が見つかりません (%s)", e.Kind, e.Name, e.Detail)
	}
	return fmt.Sprintf("%s %s が見つかりません", e.Kind, e.Name)
}
