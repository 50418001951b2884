// other structs //
package global_structs

// per user settings, stored wholesale as one json blob in the property store
type Settings struct {
	JiraURL   string `json:"jiraUrl" validate:"omitempty,url"`
	JiraToken string `json:"jiraToken"`
	CustomJQL string `json:"customJql"`

	PMOWebhookURL string `json:"pmoWebhookUrl" validate:"required,url"`
	PMOTimeoutMs  int    `json:"pmoTimeoutMs" validate:"min=5000,max=60000"`
	// bounded retries against a webhook that may still be creating the folder
	PMORetryAttempts int `json:"pmoRetryAttempts" validate:"min=1,max=5"`

	SavedAt string `json:"savedAt,omitempty"`
}

// one attachment pulled out of a mail thread
// rebuilt from the thread on every call, never persisted
type AttachmentRecord struct {
	Name string
	Size int64
	// index in the thread wide enumeration order, part of the selection key
	SourceIndex int
	Bytes       []byte
}

// terminal outcome of one webhook resolution call
type PMOResolution struct {
	Success  bool
	FolderID string
	// true iff the folder id appeared on a retry attempt
	// best effort hint only, the webhook may just have been slow
	Created bool
	Error   string
}

// aggregate over one writer run
type FolderWriteResult struct {
	SavedCount   int
	SkippedCount int
	SavedNames   []string
	SkippedNames []string
}

type JiraIssue struct {
	Key         string
	Summary     string
	Status      string
	IssueType   string
	ProjectKey  string
	ProjectName string
}

// everything you need to perform one save invocation
type SaveParam struct {
	Settings *Settings
	ThreadID string
	// the ticket the user ended up picking, dropdown, manual number or full key
	FinalTicket string
	Attachments []AttachmentRecord
	Selected    []AttachmentRecord
	// full checkbox state as persisted for the thread
	SelectionState map[string]bool
}

// what one save invocation reports back to the caller
type SaveReport struct {
	Ticket     string
	FolderID   string
	FolderName string
	// see PMOResolution.Created
	FolderCreated bool
	Requested     int
	Write         FolderWriteResult
}
