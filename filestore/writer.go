// duplicate aware attachment writer //
package filestore

import (
	"math"
	"regexp"
	"strings"
	"time"
	"unicode"

	glb "github.ibmgcloud.net/dth/pmo_saver/global_structs"
	lg "github.ibmgcloud.net/dth/pmo_saver/logging"
)

var forbiddenFileNameChars = regexp.MustCompile(`(\\")|[\\/%:$?*]`)

func cleanUnicode(str string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsControl(r) && !unicode.IsPrint(r) && !unicode.IsSpace(r) {
			return -1
		}
		return r
	}, str)
}

// file name length is limited by the storage provider
func capLength(str string, length int) string {
	str = cleanUnicode(str)
	str = strings.TrimSpace(str)
	if str == "" {
		str = "unnamed_file"
	}
	return str[:int(math.Min(float64(len(str)), float64(length)))]
}

func sanitizeFileName(name string) string {
	name = capLength(name, 255)
	return forbiddenFileNameChars.ReplaceAllString(name, "")
}

func splitExtension(fileName string) (string, string) {
	dot := strings.LastIndex(fileName, ".")
	if dot < 0 {
		return fileName, ""
	}
	return fileName[:dot], fileName[dot:]
}

// timestampedName disambiguates a same-name, different-size file
func timestampedName(fileName string, now time.Time) string {
	base, ext := splitExtension(fileName)
	return base + "_" + now.Format("20060102_150405") + ext
}

// WriteAttachments writes each attachment into the folder in the order given
// an existing file of the same name and byte size counts as duplicate and is
// skipped, same name with different size gets a timestamp suffix instead
// a failing write is logged and never aborts the remaining attachments
func WriteAttachments(folder *Folder, attachments []glb.AttachmentRecord) glb.FolderWriteResult {
	result := glb.FolderWriteResult{}
	// one timestamp per save operation is good enough for disambiguation
	now := time.Now()

	for _, attachment := range attachments {
		fileName := sanitizeFileName(attachment.Name)
		lg.Logf("processing attachment %s\n", fileName)

		existing, err := folder.FilesByName(fileName)
		if err != nil {
			lg.Logf("failed to list existing files for %s: %s\n", fileName, err.Error())
			continue
		}

		if len(existing) > 0 {
			lg.Logf("file exists: %s, existing size: %d, new size: %d\n", fileName, existing[0].Size, attachment.Size)
			if existing[0].Size == attachment.Size {
				lg.Logf("skipping duplicate file %s\n", fileName)
				result.SkippedCount++
				result.SkippedNames = append(result.SkippedNames, fileName)
				continue
			}
			newName := timestampedName(fileName, now)
			lg.Logf("creating file with new name %s\n", newName)
			if err := folder.CreateFile(newName, attachment.Bytes); err != nil {
				lg.Logf("failed to save %s: %s\n", newName, err.Error())
				continue
			}
			result.SavedCount++
			result.SavedNames = append(result.SavedNames, newName)
			continue
		}

		lg.Logf("saving new file %s\n", fileName)
		if err := folder.CreateFile(fileName, attachment.Bytes); err != nil {
			lg.Logf("failed to save %s: %s\n", fileName, err.Error())
			continue
		}
		result.SavedCount++
		result.SavedNames = append(result.SavedNames, fileName)
	}

	lg.Logf("saved %d files, skipped %d duplicates\n", result.SavedCount, result.SkippedCount)
	return result
}
