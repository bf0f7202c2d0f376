package stubapi

import (
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"artconsole/internal/domain/media"
)

const defaultPerPage = 10

func pageParams(c *gin.Context) (page, perPage int) {
	page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}
	perPage, _ = strconv.Atoi(c.DefaultQuery("per_page", strconv.Itoa(defaultPerPage)))
	if perPage < 1 {
		perPage = defaultPerPage
	}
	return page, perPage
}

// paginate slices the full result into the pagination envelope.
func paginate[T any](c *gin.Context, all []T) gin.H {
	page, perPage := pageParams(c)

	total := len(all)
	lastPage := (total + perPage - 1) / perPage
	if lastPage < 1 {
		lastPage = 1
	}
	if page > lastPage {
		page = lastPage
	}

	start := (page - 1) * perPage
	end := start + perPage
	if end > total {
		end = total
	}

	return gin.H{
		"data":         all[start:end],
		"current_page": page,
		"last_page":    lastPage,
		"total":        total,
		"per_page":     perPage,
	}
}

// wrapped is the {success, data} envelope variant some routes use.
func wrapped(envelope gin.H) gin.H {
	return gin.H{"success": true, "data": envelope}
}

func validationError(c *gin.Context, fields map[string][]string) {
	c.JSON(http.StatusUnprocessableEntity, gin.H{
		"message": "The given data was invalid.",
		"errors":  fields,
	})
}

func notFound(c *gin.Context, what string) {
	c.JSON(http.StatusNotFound, gin.H{"message": what + " not found"})
}

// requireMethodOverride enforces the _method=PUT marker on multipart
// updates, which always travel as POST.
func requireMethodOverride(c *gin.Context) bool {
	if c.PostForm("_method") != "PUT" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "update requires _method=PUT"})
		return false
	}
	return true
}

func formBool(c *gin.Context, key string) bool {
	return c.PostForm(key) == "1"
}

func formJSONMap(c *gin.Context, key string) map[string]string {
	raw := c.PostForm(key)
	if raw == "" {
		return nil
	}
	out := map[string]string{}
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		return nil
	}
	return out
}

// removedIDs decodes the removed_media field: a JSON list of existing
// attachment ids to delete.
func removedIDs(c *gin.Context) map[string]bool {
	raw := c.PostForm("removed_media")
	if raw == "" {
		return nil
	}
	var ids []string
	if err := json.Unmarshal([]byte(raw), &ids); err != nil {
		return nil
	}
	out := make(map[string]bool, len(ids))
	for _, id := range ids {
		out[id] = true
	}
	return out
}

func storeUpload(header *multipart.FileHeader) (*media.Image, error) {
	f, err := header.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()
	// Content is discarded; only the record matters to the stub.
	if _, err := io.Copy(io.Discard, f); err != nil {
		return nil, err
	}
	return newImage(header.Filename), nil
}

// singleUpload returns the uploaded file for a single-role field, or
// nil when none was sent.
func singleUpload(c *gin.Context, key string) (*media.Image, error) {
	header, err := c.FormFile(key)
	if err != nil {
		if err == http.ErrMissingFile {
			return nil, nil
		}
		return nil, nil
	}
	return storeUpload(header)
}

// listUploads returns all files sent under a repeated key.
func listUploads(c *gin.Context, key string) ([]media.Image, error) {
	mpForm, err := c.MultipartForm()
	if err != nil {
		return nil, nil
	}
	headers := mpForm.File[key]
	out := make([]media.Image, 0, len(headers))
	for _, h := range headers {
		img, err := storeUpload(h)
		if err != nil {
			return nil, err
		}
		out = append(out, *img)
	}
	return out, nil
}

// keepImages filters an image list down to the entries not marked
// removed. Omission alone never removes anything.
func keepImages(existing []media.Image, removed map[string]bool) []media.Image {
	if len(removed) == 0 {
		return existing
	}
	out := make([]media.Image, 0, len(existing))
	for _, img := range existing {
		if !removed[img.ID] {
			out = append(out, img)
		}
	}
	return out
}
