package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yoockh/joblynk/internal/services"
)

type FileHandler struct {
	files services.FileService
}

func NewFileHandler(files services.FileService) *FileHandler {
	return &FileHandler{files: files}
}

type UploadURLRequest struct {
	FileName string `json:"fileName" binding:"required"`
	FileType string `json:"fileType" binding:"required"`
	FileSize int64  `json:"fileSize"`
}

func (h *FileHandler) UploadURL(c *gin.Context) {
	var req UploadURLRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "FileHandler.UploadURL", "fileName and fileType are required", err)
		return
	}

	ticket, err := h.files.UploadURL(c.Request.Context(), services.UploadRequest{
		FileName: req.FileName,
		FileType: req.FileType,
		FileSize: req.FileSize,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	respond(c, http.StatusOK, ticket, "Presigned URL generated successfully")
}

type ResumeURLRequest struct {
	Key string `json:"key"`
}

// ResumeURL signs a download for an uploaded object. The key may come in
// the body or the query string.
func (h *FileHandler) ResumeURL(c *gin.Context) {
	var req ResumeURLRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, "FileHandler.ResumeURL", "invalid request body", err)
			return
		}
	}
	if req.Key == "" {
		req.Key = c.Query("key")
	}

	ticket, err := h.files.DownloadURL(c.Request.Context(), req.Key)
	if err != nil {
		writeError(c, err)
		return
	}
	respond(c, http.StatusOK, ticket, "Presigned URL generated successfully")
}
