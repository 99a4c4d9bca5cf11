package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// DefaultTimeout は1リクエストあたりのタイムアウトです
const DefaultTimeout = 60 * time.Second

const maxResponseSize = 50 * 1024 * 1024

// GitHubClient は GitHub GraphQL API とのやり取りを処理します
type GitHubClient struct {
	endpoint string
	token    string
	client   *http.Client
}

// NewGitHubClient は新しいGitHubクライアントを作成します
func NewGitHubClient(endpoint, token string, timeout time.Duration) *GitHubClient {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &GitHubClient{
		endpoint: endpoint,
		token:    token,
		client:   &http.Client{Timeout: timeout},
	}
}

type graphQLRequest struct {
	Query     string                 `json:"query"`
	Variables map[string]interface{} `json:"variables"`
}

type graphQLResponse struct {
	Data   json.RawMessage `json:"data"`
	Errors []GraphQLError  `json:"errors"`
}

// Do はクエリ/ミューテーションを送信し、data を result にデコードします
//
// リトライは行いません。HTTPステータスが200以外なら *TransportError、
// errors が含まれていれば *ApplicationError を返します。
func (g *GitHubClient) Do(ctx context.Context, query string, variables map[string]interface{}, result interface{}) error {
	if variables == nil {
		variables = map[string]interface{}{}
	}

	payloadBytes, err := json.Marshal(graphQLRequest{Query: query, Variables: variables})
	if err != nil {
		return fmt.Errorf("JSONエンコードエラー: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.endpoint, bytes.NewReader(payloadBytes))
	if err != nil {
		return fmt.Errorf("リクエスト作成エラー: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+g.token)
	req.Header.Set("Accept", "application/vnd.github+json")
	req.Header.Set("Content-Type", "application/json")
	// Projects v2 のミューテーション (addProjectV2DraftIssue など) に必要
	req.Header.Set("GraphQL-Features", "projects_next_graphql")

	resp, err := g.client.Do(req)
	if err != nil {
		return fmt.Errorf("リクエスト送信エラー: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return fmt.Errorf("レスポンス読み込みエラー: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return &TransportError{StatusCode: resp.StatusCode, Body: string(body)}
	}

	var decoded graphQLResponse
	if err := json.Unmarshal(body, &decoded); err != nil {
		return fmt.Errorf("レスポンス解析エラー: %w", err)
	}

	if len(decoded.Errors) > 0 {
		return &ApplicationError{Errors: decoded.Errors}
	}

	if result == nil || len(decoded.Data) == 0 {
		return nil
	}
	if err := json.Unmarshal(decoded.Data, result); err != nil {
		return fmt.Errorf("data 解析エラー: %w", err)
	}

	return nil
}
