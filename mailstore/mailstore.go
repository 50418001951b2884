// turn raw thread dumps into ordered attachment records //
package mailstore

import (
	"mime"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/h2non/filetype"
	"github.com/jhillyerd/enmime/v2"

	glb "github.ibmgcloud.net/dth/pmo_saver/global_structs"
	lg "github.ibmgcloud.net/dth/pmo_saver/logging"
)

// Store reads mail threads dumped as directories of raw rfc 5322 messages,
// one directory per thread id below Root
type Store struct {
	Root string
}

// constructFilename interprets the mime part as an (inline) attachment and returns its filename
// If no filename is given it guesses a sensible filename for it based on the filetype.
func constructFilename(part *enmime.Part) string {
	if strings.TrimSpace(part.FileName) != "" {
		return part.FileName
	}

	filenameWOExtension := "unnamed_file"
	if strings.TrimSpace(part.ContentID) != "" {
		filenameWOExtension = part.ContentID
	}

	fileExtension := ".unknown"
	match, err := filetype.Match(part.Content)
	if err != nil {
		mimeExtensions, err := mime.ExtensionsByType(part.ContentType)
		if err == nil && len(mimeExtensions) != 0 {
			// just use the first one we find, this is just a fallback anyways
			fileExtension = mimeExtensions[0]
		}
	} else {
		// while the mime detector includes the leading dot the filetype library does not
		fileExtension = "." + match.Extension
	}
	return filenameWOExtension + fileExtension
}

func partsOf(env *enmime.Envelope) []*enmime.Part {
	parts := make([]*enmime.Part, 0, len(env.Inlines)+len(env.Attachments)+len(env.OtherParts))
	parts = append(parts, env.Inlines...)
	parts = append(parts, env.Attachments...)
	// other parts are mostly multipart/related files, for example embedded images in an html mail
	parts = append(parts, env.OtherParts...)
	return parts
}

// GetThreadAttachments enumerates all attachments of the thread in a
// deterministic order, messages sorted by file name, parts in mime order
// the running index over that enumeration is the attachment's SourceIndex
func (s *Store) GetThreadAttachments(threadID string) ([]glb.AttachmentRecord, error) {
	threadDir := filepath.Join(s.Root, threadID)
	entries, err := os.ReadDir(threadDir)
	if err != nil {
		return nil, err
	}

	var messageFiles []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".eml") {
			continue
		}
		messageFiles = append(messageFiles, entry.Name())
	}
	sort.Strings(messageFiles)

	var records []glb.AttachmentRecord
	index := 0
	for _, messageFile := range messageFiles {
		body, err := os.ReadFile(filepath.Join(threadDir, messageFile))
		if err != nil {
			return nil, err
		}
		env, err := enmime.ReadEnvelope(strings.NewReader(string(body)))
		// soft parsing errors, we can continue even with such an error
		if env != nil {
			for _, e := range env.Errors {
				lg.Logf("Warning: enmime decoding error in %s: %s", messageFile, e)
			}
		}
		// hard parsing error
		if err != nil {
			return nil, err
		}

		for _, part := range partsOf(env) {
			records = append(records, glb.AttachmentRecord{
				Name:        constructFilename(part),
				Size:        int64(len(part.Content)),
				SourceIndex: index,
				Bytes:       part.Content,
			})
			index++
		}
	}
	lg.Logf("found %d attachments in thread %s\n", len(records), threadID)
	return records, nil
}
