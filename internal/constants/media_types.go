package constants

// AllowedContentTypes is the compiled-in allow-list of upload media types.
// Only PDF and DOC/DOCX documents are accepted; the list is deliberately
// not configurable.
var AllowedContentTypes = []string{
	"application/pdf",
	"application/msword",
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document",
}

// IsAllowedContentType reports whether the declared media type is in the
// allow-list. Matching is exact; parameters like "; charset=" are not
// stripped because document uploads do not carry them.
func IsAllowedContentType(contentType string) bool {
	for _, allowed := range AllowedContentTypes {
		if contentType == allowed {
			return true
		}
	}
	return false
}
