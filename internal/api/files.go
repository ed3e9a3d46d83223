package api

import (
	"errors"                         // Error inspection
	"fmt"                            // Message formatting
	"net/http"                       // HTTP status codes
	"time"                           // Upload timestamps
	"userportal/internal/domain"     // Importing domain models
	"userportal/internal/repository" // Persistence
	"userportal/internal/storage"    // Blob storage

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Logging library
)

const fileNotFound = "Not found."

// FileResponse is the wire shape of a FileUpload
type FileResponse struct {
	ID          uint      `json:"id"`          // File ID
	User        uint      `json:"user"`        // Owner ID
	File        string    `json:"file"`        // Blob reference
	UploadDate  time.Time `json:"upload_date"` // Upload time
	Description *string   `json:"description"` // Optional description
	FileType    string    `json:"file_type"`   // Derived file type
	FileURL     string    `json:"file_url"`    // Absolute URL of the blob
}

// newFileResponse serializes a FileUpload with an absolute URL for its blob
func newFileResponse(c *gin.Context, blobs storage.BlobStore, f domain.FileUpload) FileResponse {
	return FileResponse{
		ID:          f.ID,
		User:        f.UserID,
		File:        f.File,
		UploadDate:  f.UploadDate,
		Description: f.Description,
		FileType:    f.FileType,
		FileURL:     absoluteURL(c, blobs.URL(f.File)),
	}
}

// ListFilesHandler returns every file uploaded by the authenticated user
func ListFilesHandler(store repository.Store, blobs storage.BlobStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			return
		}
		files, err := store.ListFiles(c.Request.Context(), userID)
		if err != nil {
			respondStoreError(c, err, "list_files", fileNotFound)
			return
		}
		resp := make([]FileResponse, len(files))
		for i, f := range files {
			resp[i] = newFileResponse(c, blobs, f)
		}
		c.JSON(http.StatusOK, resp)
	}
}

// UploadFileHandler stores a multipart upload and records it for the authenticated user.
// The file type comes from the uploaded filename; client-supplied values are ignored.
func UploadFileHandler(store repository.Store, blobs storage.BlobStore, maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			return
		}
		// Leave headroom for the other multipart fields
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes+(1<<20))
		header, err := c.FormFile("file")
		if err != nil {
			var tooBig *http.MaxBytesError
			if errors.As(err, &tooBig) {
				c.JSON(http.StatusBadRequest, FieldErrors{"file": {fmt.Sprintf("The file may not exceed %d bytes.", maxBytes)}})
				return
			}
			c.JSON(http.StatusBadRequest, gin.H{"error": "No file was uploaded."})
			return
		}
		if header.Size == 0 {
			c.JSON(http.StatusBadRequest, FieldErrors{"file": {"The submitted file is empty."}})
			return
		}
		if header.Size > maxBytes {
			c.JSON(http.StatusBadRequest, FieldErrors{"file": {fmt.Sprintf("The file may not exceed %d bytes.", maxBytes)}})
			return
		}
		var description *string
		if d, present := c.GetPostForm("description"); present {
			description = &d
		}

		src, err := header.Open()
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "No file was uploaded."})
			return
		}
		defer src.Close()

		ctx := c.Request.Context()
		key := storage.UploadKey(header.Filename)
		if err := blobs.Save(ctx, key, src, header.Size, header.Header.Get("Content-Type")); err != nil {
			logrus.WithFields(logrus.Fields{
				"user_id": userID,      // User ID
				"file":    key,         // Blob key
				"error":   err.Error(), // Error message
			}).Error("Failed to store blob")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store file"})
			return
		}

		record := domain.FileUpload{
			UserID:      userID,
			File:        key,
			Description: description,
			FileType:    domain.DeriveFileType(header.Filename),
		}
		if err := store.CreateFile(ctx, &record); err != nil {
			_ = blobs.Delete(ctx, key) // Do not keep a blob no record points to
			respondStoreError(c, err, "create_file", fileNotFound)
			return
		}
		logrus.WithFields(logrus.Fields{
			"user_id":   userID,          // User ID
			"file_id":   record.ID,       // File ID
			"file_type": record.FileType, // Derived type
			"size":      header.Size,     // Bytes stored
		}).Info("File uploaded")
		c.JSON(http.StatusCreated, newFileResponse(c, blobs, record))
	}
}

// GetFileHandler returns one of the authenticated user's files
func GetFileHandler(store repository.Store, blobs storage.BlobStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			return
		}
		id, ok := pathID(c, "id", fileNotFound)
		if !ok {
			return
		}
		file, err := store.GetFile(c.Request.Context(), id, userID)
		if err != nil {
			respondStoreError(c, err, "get_file", fileNotFound)
			return
		}
		c.JSON(http.StatusOK, newFileResponse(c, blobs, *file))
	}
}

// DeleteFileHandler deletes one of the authenticated user's files and its blob
func DeleteFileHandler(store repository.Store, blobs storage.BlobStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			return
		}
		id, ok := pathID(c, "id", fileNotFound)
		if !ok {
			return
		}
		ctx := c.Request.Context()
		file, err := store.DeleteFile(ctx, id, userID)
		if err != nil {
			respondStoreError(c, err, "delete_file", fileNotFound)
			return
		}
		if err := blobs.Delete(ctx, file.File); err != nil {
			logrus.WithFields(logrus.Fields{"user_id": userID, "file": file.File, "error": err.Error()}).Warn("Failed to delete blob")
		}
		logrus.WithFields(logrus.Fields{
			"user_id": userID,  // User ID
			"file_id": file.ID, // File ID
		}).Info("File deleted")
		c.Status(http.StatusNoContent)
	}
}
