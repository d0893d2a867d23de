package utils

import (
	"os"            // Directory creation
	"path/filepath" // Path joining and extension handling

	"github.com/gin-gonic/gin" // Gin web framework
	"github.com/google/uuid"   // Random filenames for stored uploads
)

// SaveUpload stores the named multipart file under dir and returns its public path.
// It returns an empty path with a nil error when the field is absent.
func SaveUpload(c *gin.Context, field, dir string) (string, error) {
	file, err := c.FormFile(field) // Look up the multipart file
	if err != nil {
		return "", nil // No file uploaded, nothing to do
	}
	// Make sure the uploads directory exists
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err // Return error if the directory cannot be created
	}
	filename := uuid.NewString() + filepath.Ext(file.Filename) // Random name, original extension
	// Persist the file to disk
	if err := c.SaveUploadedFile(file, filepath.Join(dir, filename)); err != nil {
		return "", err // Return error if writing fails
	}
	return "/uploads/" + filename, nil // Public path served by the static route
}
