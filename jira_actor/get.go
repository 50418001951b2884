// low level jira interaction to get info out of jira //
package jira_actor

import (
	jira "github.com/andygrunwald/go-jira"

	glb "github.ibmgcloud.net/dth/pmo_saver/global_structs"
	lg "github.ibmgcloud.net/dth/pmo_saver/logging"
)

func GetJiraClient(url string, token string) (*jira.Client, error) {
	lg.Logf("getting jira client for %s\n", url)
	tp := jira.BearerAuthTransport{
		Token: token,
	}
	return jira.NewClient(tp.Client(), url)
}

// GetMyself round trips the credentials and returns the display name,
// used by the settings connection test
func GetMyself(client *jira.Client) (string, error) {
	lg.Logf("getting current jira user\n")
	user, resp, err := client.User.GetSelf()
	if err != nil {
		printJiraResponse(resp)
		return "", err
	}
	if user.DisplayName != "" {
		return user.DisplayName, nil
	}
	if user.Name != "" {
		return user.Name, nil
	}
	return "User", nil
}

// SearchIssues runs the jql filter and maps the result into the fields the
// ticket dropdown needs
func SearchIssues(client *jira.Client, jql string) ([]glb.JiraIssue, error) {
	lg.Logf("searching jira issues\n")
	options := &jira.SearchOptions{
		StartAt:    0,
		MaxResults: 1000,
		Fields:     []string{"project", "summary", "status", "issuetype"},
	}
	found, resp, err := client.Issue.Search(jql, options)
	if err != nil {
		printJiraResponse(resp)
		return nil, err
	}

	issues := make([]glb.JiraIssue, 0, len(found))
	for _, issue := range found {
		if issue.Fields == nil {
			continue
		}
		mapped := glb.JiraIssue{
			Key:         issue.Key,
			Summary:     issue.Fields.Summary,
			Status:      "Unknown",
			IssueType:   issue.Fields.Type.Name,
			ProjectKey:  issue.Fields.Project.Key,
			ProjectName: issue.Fields.Project.Name,
		}
		if mapped.Summary == "" {
			mapped.Summary = "No summary"
		}
		if issue.Fields.Status != nil {
			mapped.Status = issue.Fields.Status.Name
		}
		if mapped.IssueType == "" {
			mapped.IssueType = "Unknown"
		}
		issues = append(issues, mapped)
	}
	lg.Logf("jql filter returned %d issues\n", len(issues))
	return issues, nil
}
