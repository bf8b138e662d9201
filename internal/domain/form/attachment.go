package form

// Attachment describes one uploaded file without its bytes. The metadata
// is embedded on the submission row as a JSON array, in upload order.
type Attachment struct {
	OriginalName string `json:"original_name"`
	SizeBytes    int64  `json:"size_bytes"`
	MediaType    string `json:"media_type"`
}
