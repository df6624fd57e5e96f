// handlers_files.go - File upload, view and deletion handlers
package api

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/sheetdash/backend/internal/files"
	"github.com/sheetdash/backend/internal/models"
)

// FileHandler exposes the files service over HTTP.
type FileHandler struct {
	files *files.Service
}

func NewFileHandler(svc *files.Service) *FileHandler {
	return &FileHandler{files: svc}
}

// HandleListFiles returns every file record, newest first. Records marked
// for deletion are included so the admin dashboard can show their state.
func (h *FileHandler) HandleListFiles(c echo.Context) error {
	records, err := h.files.List(c.Request().Context())
	if err != nil {
		return NewInternalError("failed to list files", err)
	}
	if records == nil {
		records = []*models.UploadedFile{}
	}
	return c.JSON(http.StatusOK, map[string]any{"files": records})
}

// HandleUpload accepts one multipart file under the "file" field.
func (h *FileHandler) HandleUpload(c echo.Context) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return NewBadRequestError("No files were uploaded.", err)
	}

	src, err := fileHeader.Open()
	if err != nil {
		return NewInternalError("failed to open uploaded file", err)
	}
	defer src.Close()

	data, err := io.ReadAll(src)
	if err != nil {
		return NewInternalError("failed to read uploaded file", err)
	}

	mimeType := fileHeader.Header.Get(echo.HeaderContentType)
	record, err := h.files.Upload(c.Request().Context(), fileHeader.Filename, mimeType, data)
	if err != nil {
		return mapFileError(err, fileHeader.Filename)
	}

	return c.JSON(http.StatusOK, map[string]any{
		"message": "File uploaded successfully",
		"file":    record,
	})
}

// HandleView returns the parsed, visibility-filtered workbook as JSON.
func (h *FileHandler) HandleView(c echo.Context) error {
	id := c.Param("id")
	if id == "" {
		return NewValidationError("id")
	}

	result, err := h.files.View(c.Request().Context(), id)
	if err != nil {
		return mapFileError(err, id)
	}
	return c.JSON(http.StatusOK, result)
}

// HandleViewMsgpack is the msgpack rendition of HandleView, for dashboards
// that prefer the lighter wire format on large sheets.
func (h *FileHandler) HandleViewMsgpack(c echo.Context) error {
	id := c.Param("id")
	if id == "" {
		return NewValidationError("id")
	}

	result, err := h.files.View(c.Request().Context(), id)
	if err != nil {
		return mapFileError(err, id)
	}

	data, err := msgpack.Marshal(result)
	if err != nil {
		return NewInternalError("failed to encode msgpack", err)
	}
	return c.Blob(http.StatusOK, "application/msgpack", data)
}

// HandleDelete removes one file immediately: bytes and record.
func (h *FileHandler) HandleDelete(c echo.Context) error {
	id := c.Param("id")
	if id == "" {
		return NewValidationError("id")
	}

	if err := h.files.Delete(c.Request().Context(), id); err != nil {
		return mapFileError(err, id)
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "File deleted successfully"})
}

// HandleMarkForDeletion flags a file for the next batch apply.
func (h *FileHandler) HandleMarkForDeletion(c echo.Context) error {
	id := c.Param("id")
	if id == "" {
		return NewValidationError("id")
	}

	if err := h.files.MarkForDeletion(c.Request().Context(), id); err != nil {
		return mapFileError(err, id)
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "File marked for deletion"})
}

// HandleApplyChanges deletes every marked file. Full success is 200,
// partial success 207 with both lists, total failure 500 with the errors.
func (h *FileHandler) HandleApplyChanges(c echo.Context) error {
	result, err := h.files.ApplyPendingDeletions(c.Request().Context())
	if err != nil {
		return NewInternalError("failed to apply changes", err)
	}

	switch {
	case result.AllSucceeded():
		return c.JSON(http.StatusOK, map[string]any{
			"message":      "All changes applied successfully",
			"deletedFiles": result.Deleted,
		})
	case result.NoneSucceeded():
		return c.JSON(http.StatusInternalServerError, map[string]any{
			"message": "Failed to apply changes",
			"errors":  result.Errors,
		})
	default:
		return c.JSON(http.StatusMultiStatus, map[string]any{
			"message":      "Some changes applied with errors",
			"deletedFiles": result.Deleted,
			"errors":       result.Errors,
		})
	}
}

type updateVisibilityRequest struct {
	SheetVisibility json.RawMessage `json:"sheetVisibility"`
}

// HandleUpdateVisibility replaces a file's sheet visibility list.
func (h *FileHandler) HandleUpdateVisibility(c echo.Context) error {
	id := c.Param("id")
	if id == "" {
		return NewValidationError("id")
	}

	var req updateVisibilityRequest
	if err := c.Bind(&req); err != nil {
		return NewBadRequestError("invalid JSON body", err)
	}

	visibility, ok := decodeVisibilityList(req.SheetVisibility)
	if !ok {
		return NewBadRequestError("Invalid sheet visibility data", nil)
	}

	updated, err := h.files.UpdateVisibility(c.Request().Context(), id, visibility)
	if err != nil {
		return mapFileError(err, id)
	}

	return c.JSON(http.StatusOK, map[string]any{
		"message":         "Sheet visibility updated successfully",
		"sheetVisibility": updated,
	})
}

// decodeVisibilityList insists the payload field is a proper JSON array;
// null, absent or any other shape is rejected.
func decodeVisibilityList(raw json.RawMessage) ([]models.SheetVisibility, bool) {
	if len(raw) == 0 {
		return nil, false
	}
	var visibility []models.SheetVisibility
	if err := json.Unmarshal(raw, &visibility); err != nil {
		return nil, false
	}
	if string(raw) == "null" {
		return nil, false
	}
	if visibility == nil {
		visibility = []models.SheetVisibility{}
	}
	return visibility, true
}
