package crawler

import "strings"

// FileType classifies a URL by its trailing extension.
type FileType string

// Known file types. HTML is the default for anything without a
// recognized suffix.
const (
	FileTypeHTML  FileType = "HTML"
	FileTypePDF   FileType = "PDF"
	FileTypeDOCX  FileType = "DOCX"
	FileTypeDOC   FileType = "DOC"
	FileTypeExcel FileType = "EXCEL"
	FileTypeText  FileType = "TEXT"
	FileTypeImage FileType = "IMAGE"
)

// ClassifyURL maps a URL to its FileType by case-insensitive suffix.
// Other components rely on this exact table, so keep it in sync with
// DownloadableSuffixes below.
func ClassifyURL(rawURL string) FileType {
	lower := strings.ToLower(rawURL)
	switch {
	case strings.HasSuffix(lower, ".pdf"):
		return FileTypePDF
	case strings.HasSuffix(lower, ".docx"):
		return FileTypeDOCX
	case strings.HasSuffix(lower, ".doc"):
		return FileTypeDOC
	case strings.HasSuffix(lower, ".xlsx"), strings.HasSuffix(lower, ".xls"):
		return FileTypeExcel
	case strings.HasSuffix(lower, ".txt"):
		return FileTypeText
	case strings.HasSuffix(lower, ".jpg"), strings.HasSuffix(lower, ".jpeg"),
		strings.HasSuffix(lower, ".png"), strings.HasSuffix(lower, ".gif"):
		return FileTypeImage
	default:
		return FileTypeHTML
	}
}

// DownloadableSuffixes lists the extensions link discovery treats as
// downloadable files.
var DownloadableSuffixes = []string{".pdf", ".doc", ".docx", ".xls", ".xlsx", ".txt"}

// IsDownloadable reports whether the URL ends in a downloadable-file
// suffix (case-insensitive).
func IsDownloadable(rawURL string) bool {
	lower := strings.ToLower(rawURL)
	for _, suffix := range DownloadableSuffixes {
		if strings.HasSuffix(lower, suffix) {
			return true
		}
	}
	return false
}
