package intake

import (
	"mime/multipart"

	"github.com/recuperacasa/intake-api/internal/domain/form"
)

// SummarizeFiles maps uploaded file parts to attachment metadata, in the
// order the parts arrived. The byte payload is dropped here and never
// persisted. No validation happens at this level: size ceilings are
// enforced by the request layer before the pipeline runs.
func SummarizeFiles(files []*multipart.FileHeader) []form.Attachment {
	attachments := make([]form.Attachment, 0, len(files))
	for _, file := range files {
		attachments = append(attachments, form.Attachment{
			OriginalName: file.Filename,
			SizeBytes:    file.Size,
			MediaType:    file.Header.Get("Content-Type"),
		})
	}
	return attachments
}
