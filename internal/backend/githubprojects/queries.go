package githubprojects

// GraphQL queries and mutations.
const (
	queryProjectID = `query ProjectID($owner: String!, $number: Int!) {
  organization(login: $owner) {
    projectV2(number: $number) { id }
  }
}`

	queryProjectFields = `query ProjectFields($projectId: ID!, $first: Int!) {
  node(id: $projectId) {
    ... on ProjectV2 {
      fields(first: $first) {
        nodes {
          ... on ProjectV2Field { id name dataType }
          ... on ProjectV2SingleSelectField {
            id
            name
            dataType
            options { id name }
          }
          ... on ProjectV2IterationField {
            id
            name
            dataType
            configuration {
              iterations { id title startDate duration }
            }
          }
        }
      }
    }
  }
}`

	queryProjectItems = `query ProjectItems($projectId: ID!, $first: Int!, $values: Int!) {
  node(id: $projectId) {
    ... on ProjectV2 {
      items(first: $first) {
        nodes {
          id
          fieldValues(first: $values) {
            nodes {
              ... on ProjectV2ItemFieldTextValue {
                text
                field { ... on ProjectV2FieldCommon { id name } }
              }
              ... on ProjectV2ItemFieldDateValue {
                date
                field { ... on ProjectV2FieldCommon { id name } }
              }
              ... on ProjectV2ItemFieldNumberValue {
                number
                field { ... on ProjectV2FieldCommon { id name } }
              }
              ... on ProjectV2ItemFieldSingleSelectValue {
                name
                field { ... on ProjectV2FieldCommon { id name } }
              }
              ... on ProjectV2ItemFieldIterationValue {
                title
                field { ... on ProjectV2FieldCommon { id name } }
              }
            }
          }
          content {
            __typename
            ... on Issue {
              id
              number
              title
              repository {
                name
                owner { login }
              }
            }
          }
        }
      }
    }
  }
}`

	queryIssueReference = `query IssueReference($id: ID!) {
  node(id: $id) {
    __typename
    ... on Issue {
      id
      number
      repository { nameWithOwner }
      projectItems(first: 10) {
        nodes {
          id
          project { ... on ProjectV2 { id } }
          fieldValues(first: 20) {
            nodes {
              ... on ProjectV2ItemFieldTextValue {
                text
                field { ... on ProjectV2FieldCommon { id } }
              }
            }
          }
        }
      }
      subIssues(first: 50) {
        nodes {
          id
          number
          repository { nameWithOwner }
          projectItems(first: 10) {
            nodes {
              id
              project { ... on ProjectV2 { id } }
            }
          }
        }
      }
    }
  }
}`

	mutationUpdateText = `mutation UpdateText($projectId: ID!, $itemId: ID!, $fieldId: ID!, $text: String!) {
  updateProjectV2ItemFieldValue(input: {
    projectId: $projectId
    itemId: $itemId
    fieldId: $fieldId
    value: { text: $text }
  }) {
    projectV2Item { id }
  }
}`

	mutationUpdateNumber = `mutation UpdateNumber($projectId: ID!, $itemId: ID!, $fieldId: ID!, $number: Float!) {
  updateProjectV2ItemFieldValue(input: {
    projectId: $projectId
    itemId: $itemId
    fieldId: $fieldId
    value: { number: $number }
  }) {
    projectV2Item { id }
  }
}`

	mutationUpdateOption = `mutation UpdateOption($projectId: ID!, $itemId: ID!, $fieldId: ID!, $optionId: String!) {
  updateProjectV2ItemFieldValue(input: {
    projectId: $projectId
    itemId: $itemId
    fieldId: $fieldId
    value: { singleSelectOptionId: $optionId }
  }) {
    projectV2Item { id }
  }
}`

	mutationUpdateIteration = `mutation UpdateIteration($projectId: ID!, $itemId: ID!, $fieldId: ID!, $iterationId: String!) {
  updateProjectV2ItemFieldValue(input: {
    projectId: $projectId
    itemId: $itemId
    fieldId: $fieldId
    value: { iterationId: $iterationId }
  }) {
    projectV2Item { id }
  }
}`

	mutationAddIteration = `mutation AddIteration($projectId: ID!, $fieldId: ID!, $title: String!, $start: Date!, $duration: Int!) {
  addProjectV2Iteration(input: {
    projectId: $projectId
    fieldId: $fieldId
    title: $title
    startDate: $start
    duration: $duration
  }) {
    iteration { id }
  }
}`

	mutationAddItem = `mutation AddItem($projectId: ID!, $contentId: ID!) {
  addProjectV2ItemById(input: { projectId: $projectId, contentId: $contentId }) {
    item { id }
  }
}`
)
