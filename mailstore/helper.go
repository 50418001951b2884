// attachment grouping and display helpers //
package mailstore

import (
	"fmt"
	"sort"
	"strings"

	glb "github.ibmgcloud.net/dth/pmo_saver/global_structs"
)

const NoExtension = "no-extension"

// Extension returns the lowercase file extension without the dot,
// NoExtension when the name carries none
func Extension(fileName string) string {
	dot := strings.LastIndex(fileName, ".")
	if dot < 0 || dot == len(fileName)-1 {
		return NoExtension
	}
	return strings.ToLower(fileName[dot+1:])
}

// GroupByExtension buckets the attachments for display, the second return
// value lists the bucket names alphabetically for a stable rendering order
func GroupByExtension(records []glb.AttachmentRecord) (map[string][]glb.AttachmentRecord, []string) {
	groups := make(map[string][]glb.AttachmentRecord)
	for _, record := range records {
		ext := Extension(record.Name)
		groups[ext] = append(groups[ext], record)
	}
	extensions := make([]string, 0, len(groups))
	for ext := range groups {
		extensions = append(extensions, ext)
	}
	sort.Strings(extensions)
	return groups, extensions
}

func FormatFileSize(bytes int64) string {
	if bytes == 0 {
		return "0 B"
	}
	sizes := []string{"B", "KB", "MB", "GB"}
	size := float64(bytes)
	i := 0
	for size >= 1024 && i < len(sizes)-1 {
		size /= 1024
		i++
	}
	return fmt.Sprintf("%s %s", strings.TrimSuffix(fmt.Sprintf("%.1f", size), ".0"), sizes[i])
}
