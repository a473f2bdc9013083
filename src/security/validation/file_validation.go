package validation

import (
	"bytes"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/username/tradevault/backend/src/logger"
)

// AllowedClientContentTypes is a map for quick lookup of allowed
// client-declared MIME types per upload kind.
var AllowedClientContentTypes = map[string]bool{
	"text/csv":                 true,
	"application/csv":          true,
	"application/vnd.ms-excel": true, // often used for CSV by older Excel
	"text/plain":               true,
	"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet": true, // .xlsx
	"application/pdf": true,
}

// ValidateClientContentType checks the Content-Type header provided by the client.
func ValidateClientContentType(contentType string) error {
	base := strings.ToLower(strings.TrimSpace(strings.Split(contentType, ";")[0]))
	if allowed, exists := AllowedClientContentTypes[base]; !exists || !allowed {
		logger.L.Warn("Disallowed client-declared Content-Type", "contentType", contentType)
		return fmt.Errorf("client-declared file type '%s' is not allowed for import upload", contentType)
	}
	return nil
}

var (
	zipMagic = []byte{0x50, 0x4b, 0x03, 0x04} // .xlsx is a zip container
	pdfMagic = []byte("%PDF-")
	oleMagic = []byte{0xd0, 0xcf, 0x11, 0xe0} // legacy .xls
)

// isBinaryContent checks for control bytes that indicate the buffer is not
// text-based.
func isBinaryContent(buf []byte) bool {
	if bytes.IndexByte(buf, 0) != -1 {
		return true
	}
	return !utf8.Valid(buf)
}

// ValidateFileContentByMagicBytes inspects the actual file content.
// Spreadsheets and PDFs are recognized by signature; everything else must
// look like text for the delimited extractor.
func ValidateFileContentByMagicBytes(file io.ReadSeeker) (string, error) {
	if file == nil {
		return "", fmt.Errorf("file is nil")
	}

	buffer := make([]byte, 1024)
	n, err := file.Read(buffer)
	if err != nil && err != io.EOF {
		return "", fmt.Errorf("failed to read file for content type checking: %w", err)
	}

	// Reset so the actual extractor reads the full file.
	if _, seekErr := file.Seek(0, io.SeekStart); seekErr != nil {
		return "", fmt.Errorf("failed to reset file read pointer: %w", seekErr)
	}

	if n == 0 {
		return "", fmt.Errorf("file is empty")
	}
	buf := buffer[:n]

	switch {
	case bytes.HasPrefix(buf, zipMagic):
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", nil
	case bytes.HasPrefix(buf, oleMagic):
		return "application/vnd.ms-excel", nil
	case bytes.HasPrefix(buf, pdfMagic):
		return "application/pdf", nil
	}

	if isBinaryContent(buf) {
		logger.L.Warn("File rejected: binary content with no recognized signature")
		return "application/octet-stream", fmt.Errorf("file appears to be binary, not CSV/Excel/PDF")
	}
	return "text/csv", nil
}
