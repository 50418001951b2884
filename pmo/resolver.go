// resolve a ticket key into a drive folder id via the pmo webhook //
// the webhook creates missing folders asynchronously, so undefined ids get polled //
package pmo

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	glb "github.ibmgcloud.net/dth/pmo_saver/global_structs"
	lg "github.ibmgcloud.net/dth/pmo_saver/logging"
)

// Response is what a single webhook call came back with
// non-2xx statuses land here, only transport failures surface as errors
type Response struct {
	StatusCode int
	Body       string
}

type Poster interface {
	Post(url string, body []byte, timeout time.Duration) (*Response, error)
}

type Config struct {
	WebhookURL string
	Timeout    time.Duration
	MaxRetries int
	// delay between polls of a not-yet-created folder
	// zero means DefaultBackoff, tests inject a negative value to skip sleeping
	Backoff time.Duration
}

const DefaultBackoff = 1000 * time.Millisecond

// ConfigFromSettings derives the resolver config from the stored user settings
func ConfigFromSettings(s *glb.Settings) Config {
	return Config{
		WebhookURL: s.PMOWebhookURL,
		Timeout:    time.Duration(s.PMOTimeoutMs) * time.Millisecond,
		MaxRetries: s.PMORetryAttempts,
	}
}

func (c Config) backoff() time.Duration {
	if c.Backoff == 0 {
		return DefaultBackoff
	}
	if c.Backoff < 0 {
		return 0
	}
	return c.Backoff
}

// folderIDValid rejects the webhook's "not ready yet" placeholders:
// missing, blank and the literal string "undefined"
func folderIDValid(folderID string) bool {
	trimmed := strings.TrimSpace(folderID)
	return trimmed != "" && trimmed != "undefined"
}

// ResolveFolder asks the webhook for the folder of ticketKey and polls until a
// real folder id appears or the retry budget runs out
// every call is independent, no state survives between calls
func ResolveFolder(ticketKey string, cfg Config, client Poster) glb.PMOResolution {
	lg.Logf("resolving pmo folder for %s, max retries: %d, timeout: %s\n", ticketKey, cfg.MaxRetries, cfg.Timeout)

	if strings.TrimSpace(cfg.WebhookURL) == "" {
		return glb.PMOResolution{Success: false, Error: "PMO webhook URL not configured"}
	}

	payload, err := json.Marshal(map[string]string{"text": ticketKey})
	if err != nil {
		return glb.PMOResolution{Success: false, Error: fmt.Sprintf("PMO webhook error: %s", err.Error())}
	}

	for attempt := 1; attempt <= cfg.MaxRetries; attempt++ {
		lg.Logf("pmo request attempt %d of %d\n", attempt, cfg.MaxRetries)

		resp, err := client.Post(cfg.WebhookURL, payload, cfg.Timeout)
		if err != nil {
			lg.Logf("pmo webhook network error on attempt %d: %s\n", attempt, err.Error())
			if attempt == cfg.MaxRetries {
				return glb.PMOResolution{
					Success: false,
					Error:   fmt.Sprintf("PMO webhook network error after %d attempts: %s", cfg.MaxRetries, err.Error()),
				}
			}
			time.Sleep(cfg.backoff())
			continue
		}

		if resp.StatusCode != 200 {
			// protocol errors don't get retried
			return glb.PMOResolution{
				Success: false,
				Error:   fmt.Sprintf("PMO webhook HTTP error: %d - %s", resp.StatusCode, resp.Body),
			}
		}

		var data []struct {
			FolderID string `json:"folderid"`
		}
		if err := json.Unmarshal([]byte(resp.Body), &data); err != nil || len(data) == 0 {
			return glb.PMOResolution{
				Success: false,
				Error:   fmt.Sprintf("PMO webhook returned invalid response format for ticket: %s", ticketKey),
			}
		}

		folderID := data[0].FolderID
		if folderIDValid(folderID) {
			lg.Logf("pmo webhook returned valid folder id %s on attempt %d\n", folderID, attempt)
			return glb.PMOResolution{
				Success:  true,
				FolderID: strings.TrimSpace(folderID),
				// best effort guess, true iff the id only appeared after a retry
				Created: attempt > 1,
			}
		}

		lg.Logf("pmo webhook returned undefined folder id on attempt %d\n", attempt)
		if attempt == cfg.MaxRetries {
			return glb.PMOResolution{
				Success: false,
				Error:   fmt.Sprintf("PMO webhook returned undefined folder ID after %d attempts for ticket: %s", cfg.MaxRetries, ticketKey),
			}
		}
		// the folder creation side effect needs time to propagate
		time.Sleep(cfg.backoff())
	}

	// unreachable, the loop always returns on its last attempt
	return glb.PMOResolution{Success: false, Error: "PMO webhook error: no attempts made"}
}
