package stubserver

import (
	"io"
	"net/http"
	"strings"

	"civicsync-client/models"

	"github.com/gabriel-vasile/mimetype"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const mediaPrefix = "/media/"

func mediaName(webPath string) string {
	return strings.TrimPrefix(webPath, mediaPrefix)
}

// uploadFile stores an image sent as multipart field "file" and returns its
// web path
func (s *Server) uploadFile(c *gin.Context) {
	header, err := c.FormFile("file")
	if err != nil {
		respondError(c, http.StatusBadRequest, "Required file part 'file' is missing")
		return
	}
	if header.Size > models.MaxAttachmentSize {
		respondError(c, http.StatusBadRequest, "File exceeds the maximum upload size")
		return
	}

	file, err := header.Open()
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Failed to store file.")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Failed to store file.")
		return
	}
	if len(data) == 0 {
		respondError(c, http.StatusBadRequest, "Failed to store empty file.")
		return
	}

	mtype := mimetype.Detect(data)
	if !strings.HasPrefix(mtype.String(), "image/") {
		respondError(c, http.StatusBadRequest, "Only image uploads are allowed")
		return
	}

	name := uuid.NewString() + mtype.Extension()
	s.store.putMedia(name, mediaFile{ContentType: mtype.String(), Data: data})
	s.log.WithField("name", name).Debug("Stored upload")

	c.JSON(http.StatusOK, models.UploadResult{URL: mediaPrefix + name})
}

// serveMedia returns a stored image
func (s *Server) serveMedia(c *gin.Context) {
	f, ok := s.store.getMedia(c.Param("name"))
	if !ok {
		respondError(c, http.StatusNotFound, "File not found")
		return
	}
	c.Data(http.StatusOK, f.ContentType, f.Data)
}
