package services

import (
	"context"
	"fmt"
	"strings"

	"csv2project/api"
)

// fakeAPI は呼び出しを記録する ProjectAPI のテスト実装です
type fakeAPI struct {
	userProjects map[string]*api.ProjectNode
	orgProjects  map[string]*api.ProjectNode
	userProbeErr error
	orgProbeErr  error

	repos  map[string]string
	labels map[string][]api.LabelNode // 検索語 → 候補 (未登録なら全ラベルから部分一致)
	all    []api.LabelNode
	users  map[string]string

	createIssueErr error
	updateErrs     map[string]error // fieldID → エラー

	calls       []string
	issues      []api.CreateIssueInput
	drafts      []api.DraftIssueInput
	addedItems  []string
	fieldValues []api.FieldValueInput
	issueSeq    int
}

func newFakeAPI() *fakeAPI {
	return &fakeAPI{
		userProjects: map[string]*api.ProjectNode{},
		orgProjects:  map[string]*api.ProjectNode{},
		repos:        map[string]string{},
		labels:       map[string][]api.LabelNode{},
		users:        map[string]string{},
		updateErrs:   map[string]error{},
	}
}

func projectKey(owner string, number int) string {
	return fmt.Sprintf("%s#%d", owner, number)
}

func (f *fakeAPI) FindUserProject(_ context.Context, owner string, number int) (*api.ProjectNode, error) {
	f.calls = append(f.calls, "user-project")
	if f.userProbeErr != nil {
		return nil, f.userProbeErr
	}
	return f.userProjects[projectKey(owner, number)], nil
}

func (f *fakeAPI) FindOrganizationProject(_ context.Context, owner string, number int) (*api.ProjectNode, error) {
	f.calls = append(f.calls, "org-project")
	if f.orgProbeErr != nil {
		return nil, f.orgProbeErr
	}
	return f.orgProjects[projectKey(owner, number)], nil
}

func (f *fakeAPI) GetRepositoryID(_ context.Context, owner, name string) (string, error) {
	f.calls = append(f.calls, "repository")
	return f.repos[owner+"/"+name], nil
}

func (f *fakeAPI) SearchLabels(_ context.Context, _, _, query string) ([]api.LabelNode, error) {
	f.calls = append(f.calls, "labels:"+query)
	if candidates, ok := f.labels[query]; ok {
		return candidates, nil
	}
	var result []api.LabelNode
	for _, l := range f.all {
		if strings.Contains(strings.ToLower(l.Name), strings.ToLower(query)) {
			result = append(result, l)
		}
	}
	return result, nil
}

func (f *fakeAPI) GetUserID(_ context.Context, login string) (string, error) {
	f.calls = append(f.calls, "user:"+login)
	id, ok := f.users[login]
	if !ok {
		return "", &api.ApplicationError{Errors: []api.GraphQLError{{Type: "NOT_FOUND", Message: "Could not resolve to a User"}}}
	}
	return id, nil
}

func (f *fakeAPI) CreateIssue(_ context.Context, input api.CreateIssueInput) (*api.IssueNode, error) {
	f.calls = append(f.calls, "create-issue")
	if f.createIssueErr != nil {
		return nil, f.createIssueErr
	}
	f.issues = append(f.issues, input)
	f.issueSeq++
	return &api.IssueNode{
		ID:     fmt.Sprintf("I_%d", f.issueSeq),
		Number: f.issueSeq,
		URL:    fmt.Sprintf("https://github.com/octo/app/issues/%d", f.issueSeq),
	}, nil
}

func (f *fakeAPI) AddItemToProject(_ context.Context, _, contentID string) (string, error) {
	f.calls = append(f.calls, "add-item")
	f.addedItems = append(f.addedItems, contentID)
	return "PVTI_" + contentID, nil
}

func (f *fakeAPI) AddDraftIssue(_ context.Context, input api.DraftIssueInput) (string, error) {
	f.calls = append(f.calls, "add-draft")
	f.drafts = append(f.drafts, input)
	return fmt.Sprintf("PVTI_draft_%d", len(f.drafts)), nil
}

func (f *fakeAPI) UpdateItemFieldValue(_ context.Context, input api.FieldValueInput) error {
	f.calls = append(f.calls, "update-field:"+input.FieldID)
	if err := f.updateErrs[input.FieldID]; err != nil {
		return err
	}
	f.fieldValues = append(f.fieldValues, input)
	return nil
}

// countCalls は prefix で始まる呼び出しの回数を返します
func (f *fakeAPI) countCalls(prefix string) int {
	n := 0
	for _, c := range f.calls {
		if strings.HasPrefix(c, prefix) {
			n++
		}
	}
	return n
}

// boardNode はテスト用の標準的なプロジェクトです
func boardNode() *api.ProjectNode {
	node := &api.ProjectNode{ID: "PVT_1", Title: "Roadmap"}
	node.Fields.Nodes = []*api.FieldNode{
		{Typename: "ProjectV2Field", ID: "F_title", Name: "Title", DataType: "TITLE"},
		{Typename: "ProjectV2Field", ID: "F_points", Name: "Points", DataType: "NUMBER"},
		{Typename: "ProjectV2Field", ID: "F_notes", Name: "Notes", DataType: "TEXT"},
		{Typename: "ProjectV2Field", ID: "F_due", Name: "Due", DataType: "DATE"},
		{Typename: "ProjectV2SingleSelectField", ID: "F_priority", Name: "Priority", DataType: "SINGLE_SELECT",
			Options: []*api.OptionNode{{ID: "O_low", Name: "Low"}, {ID: "O_med", Name: "Medium"}, {ID: "O_high", Name: "High"}}},
		{Typename: "ProjectV2IterationField", ID: "F_sprint", Name: "Sprint", DataType: "ITERATION"},
	}
	return node
}
