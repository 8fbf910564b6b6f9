package handlers

import (
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/AtlasFacilities/service-desk-api/internal/httperr"
	"github.com/AtlasFacilities/service-desk-api/internal/infra/storage"
)

// resolveProofUpload builds a payment proof from the request. A multipart
// "file" part is stored in the object store keyed under prefix; otherwise
// a JSON body carrying an external link is accepted as-is. Writes the
// HTTP error itself when ok is false.
func resolveProofUpload(
	c *gin.Context,
	store storage.ObjectStore,
	prefix string,
) (url, proofType, fileName string, ok bool) {

	file, header, err := c.Request.FormFile("file")
	if err == nil {
		defer file.Close()

		if header.Size > maxProofSize {
			httperr.BadRequest(c, "file_too_large", "Proof file exceeds the size limit.")
			return "", "", "", false
		}

		data, err := io.ReadAll(io.LimitReader(file, maxProofSize))
		if err != nil {
			httperr.Internal(c, "failed_to_read_file", "Could not read the uploaded file.")
			return "", "", "", false
		}

		contentType := header.Header.Get("Content-Type")
		if contentType == "" {
			contentType = "application/octet-stream"
		}

		key := fmt.Sprintf("%s/%d%s", prefix, time.Now().UnixNano(), filepath.Ext(header.Filename))
		stored, err := store.Put(c.Request.Context(), key, contentType, data)
		if err != nil {
			httperr.Internal(c, "failed_to_store_file", "Could not store the uploaded file.")
			return "", "", "", false
		}

		return stored, "file", header.Filename, true
	}

	var req ProofLinkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Provide a proof file or link.")
		return "", "", "", false
	}

	return req.Link, "link", "", true
}
