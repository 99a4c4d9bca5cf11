package api

const projectFieldsSelection = `
      id
      title
      fields(first: 100) {
        nodes {
          __typename
          ... on ProjectV2FieldCommon { id name dataType }
          ... on ProjectV2SingleSelectField { id name dataType options { id name } }
          ... on ProjectV2IterationField { id name dataType }
        }
      }`

const queryUserProject = `
query UserProject($owner: String!, $number: Int!) {
  user(login: $owner) {
    projectV2(number: $number) {` + projectFieldsSelection + `
    }
  }
}`

const queryOrganizationProject = `
query OrganizationProject($owner: String!, $number: Int!) {
  organization(login: $owner) {
    projectV2(number: $number) {` + projectFieldsSelection + `
    }
  }
}`

const queryRepository = `
query Repository($owner: String!, $name: String!) {
  repository(owner: $owner, name: $name) { id }
}`

const queryRepositoryLabels = `
query RepositoryLabels($owner: String!, $name: String!, $query: String!) {
  repository(owner: $owner, name: $name) {
    labels(first: 100, query: $query) { nodes { id name } }
  }
}`

const queryUser = `
query User($login: String!) {
  user(login: $login) { id login }
}`

const queryViewer = `
query Viewer {
  viewer { login }
}`

const mutationCreateIssue = `
mutation CreateIssue($input: CreateIssueInput!) {
  createIssue(input: $input) {
    issue { id number url }
  }
}`

const mutationAddProjectItem = `
mutation AddProjectItem($projectId: ID!, $contentId: ID!) {
  addProjectV2ItemById(input: {projectId: $projectId, contentId: $contentId}) {
    item { id }
  }
}`

const mutationAddDraftIssue = `
mutation AddDraftIssue($input: AddProjectV2DraftIssueInput!) {
  addProjectV2DraftIssue(input: $input) {
    projectItem { id }
  }
}`

const mutationUpdateFieldValue = `
mutation UpdateFieldValue($input: UpdateProjectV2ItemFieldValueInput!) {
  updateProjectV2ItemFieldValue(input: $input) {
    projectV2Item { id }
  }
}`
