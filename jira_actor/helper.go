// low level jira interaction //
package jira_actor

import (
	"bytes"
	"io"
	"regexp"
	"strings"

	jira "github.com/andygrunwald/go-jira"

	glb "github.ibmgcloud.net/dth/pmo_saver/global_structs"
	lg "github.ibmgcloud.net/dth/pmo_saver/logging"
)

// used for debugging errors
func printJiraResponse(resp *jira.Response) {
	if resp == nil {
		return
	}
	body := bytes.NewBuffer(nil)
	resp.Request.Write(body)
	resp.Response.Write(body)
	bodyBytes, _ := io.ReadAll(body)
	lg.Logf(string(bodyBytes))
}

// summaries look like "1234 - Client Name | rest", the client part makes the
// dropdown entry readable
var clientInfoPattern = regexp.MustCompile(`^(\d+)\s*-\s*([^|]+)`)

// CompactDisplay builds the short dropdown label for a ticket
func CompactDisplay(issue glb.JiraIssue) string {
	match := clientInfoPattern.FindStringSubmatch(issue.Summary)
	if match == nil || strings.TrimSpace(match[2]) == "" {
		return issue.Key
	}
	clientName := strings.TrimSpace(match[2])
	if len(clientName) > 20 {
		clientName = clientName[:17] + "..."
	}
	return issue.Key + " - " + clientName
}
