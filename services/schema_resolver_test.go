package services

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"csv2project/api"
	"csv2project/models"
	"csv2project/utils"
)

func TestResolveUserProject(t *testing.T) {
	fake := newFakeAPI()
	fake.userProjects[projectKey("octocat", 1)] = boardNode()
	var stdout bytes.Buffer
	resolver := NewProjectResolver(fake, utils.NewLogger(&stdout, &bytes.Buffer{}, false))

	project, err := resolver.Resolve(context.Background(), "octocat", 1)
	require.NoError(t, err)

	assert.Equal(t, "PVT_1", project.ID)
	assert.Equal(t, models.OwnerTypeUser, project.OwnerType)
	assert.Equal(t, []string{"user-project"}, fake.calls)
	assert.Contains(t, stdout.String(), "user")

	points := project.Fields["Points"]
	assert.Equal(t, models.FieldTypeNumber, points.DataType)
	assert.Nil(t, points.Options)

	priority := project.Fields["Priority"]
	require.Len(t, priority.Options, 3)
	assert.Equal(t, models.FieldOption{ID: "O_high", Name: "High"}, priority.Options[2])
}

func TestResolveFallsBackToOrganization(t *testing.T) {
	fake := newFakeAPI()
	fake.orgProjects[projectKey("octo-org", 5)] = boardNode()
	fake.userProbeErr = &api.ApplicationError{Errors: []api.GraphQLError{{Type: "NOT_FOUND", Message: "Could not resolve to a User"}}}
	var stdout bytes.Buffer
	resolver := NewProjectResolver(fake, utils.NewLogger(&stdout, &bytes.Buffer{}, false))

	project, err := resolver.Resolve(context.Background(), "octo-org", 5)
	require.NoError(t, err)

	assert.Equal(t, models.OwnerTypeOrganization, project.OwnerType)
	assert.Equal(t, []string{"user-project", "org-project"}, fake.calls)
	assert.Contains(t, stdout.String(), "organization")
}

func TestResolveNotFoundUnderEitherOwner(t *testing.T) {
	fake := newFakeAPI()
	fake.orgProbeErr = &api.ApplicationError{Errors: []api.GraphQLError{{Type: "NOT_FOUND", Message: "Could not resolve to an Organization"}}}
	resolver := NewProjectResolver(fake, utils.Discard())

	_, err := resolver.Resolve(context.Background(), "ghost", 9)

	var notFound *NotFoundError
	require.True(t, errors.As(err, &notFound))
	assert.Equal(t, "Project", notFound.Kind)
	assert.Equal(t, []string{"user-project", "org-project"}, fake.calls)
}

func TestResolvePropagatesTransportErrorOnLastProbe(t *testing.T) {
	fake := newFakeAPI()
	fake.orgProbeErr = &api.TransportError{StatusCode: 401, Body: "Bad credentials"}
	resolver := NewProjectResolver(fake, utils.Discard())

	_, err := resolver.Resolve(context.Background(), "octo-org", 1)

	var transportErr *api.TransportError
	require.True(t, errors.As(err, &transportErr))
	assert.Equal(t, 401, transportErr.StatusCode)
}

func TestBuildProjectDuplicateNamesLastWins(t *testing.T) {
	node := &api.ProjectNode{ID: "PVT_1"}
	node.Fields.Nodes = []*api.FieldNode{
		{ID: "F_a", Name: "Estimate", DataType: "TEXT"},
		nil,
		{ID: "F_noname", Name: "", DataType: "TEXT"},
		{ID: "F_b", Name: "Estimate", DataType: "NUMBER"},
		{Typename: "ProjectV2SingleSelectField", ID: "F_c", Name: "Status", DataType: "SINGLE_SELECT"},
	}

	project := buildProject(node, "octocat", models.OwnerTypeUser, 1)

	require.Len(t, project.Fields, 2)
	assert.Equal(t, "F_b", project.Fields["Estimate"].ID)
	assert.NotNil(t, project.Fields["Status"].Options)
	assert.Empty(t, project.Fields["Status"].Options)
}

func TestSortedFields(t *testing.T) {
	project := buildProject(boardNode(), "octocat", models.OwnerTypeUser, 1)

	fields := SortedFields(project)

	names := make([]string, 0, len(fields))
	for _, f := range fields {
		names = append(names, f.Name)
	}
	assert.Equal(t, []string{"Due", "Notes", "Points", "Priority", "Sprint", "Title"}, names)
}
