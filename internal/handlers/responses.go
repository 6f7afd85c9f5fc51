package handlers

import (
	"errors"
	"fmt"
	"log"
	"mime/multipart"
	"net/http"

	"boutique/internal/common"
	"boutique/internal/repositories"
	"boutique/internal/services"

	"github.com/labstack/echo/v4"
)

// respondError maps service errors onto the standard error envelope
func respondError(c echo.Context, err error, resource string) error {
	switch {
	case errors.Is(err, repositories.ErrNotFound):
		return common.SendNotFoundError(c, resource)
	case errors.Is(err, services.ErrValidation):
		return common.SendError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
	case errors.Is(err, services.ErrInvalidFileType), errors.Is(err, services.ErrInvalidCategory):
		return common.SendError(c, http.StatusBadRequest, "INVALID_FILE_TYPE", err.Error())
	case errors.Is(err, services.ErrFileTooLarge):
		return common.SendError(c, http.StatusRequestEntityTooLarge, "FILE_TOO_LARGE", err.Error())
	case errors.Is(err, services.ErrDecode):
		return common.SendError(c, http.StatusUnprocessableEntity, "DECODE_ERROR", err.Error())
	case errors.Is(err, services.ErrEncode):
		return common.SendError(c, http.StatusBadGateway, "ENCODE_ERROR", err.Error())
	case errors.Is(err, services.ErrUpload):
		return common.SendError(c, http.StatusBadGateway, "UPLOAD_ERROR", err.Error())
	case errors.Is(err, services.ErrDelete):
		return common.SendError(c, http.StatusBadGateway, "DELETE_ERROR", err.Error())
	case errors.Is(err, services.ErrInvalidTransition):
		return common.SendError(c, http.StatusConflict, "CONFLICT", err.Error())
	case errors.Is(err, services.ErrSettingsMissing):
		return common.SendError(c, http.StatusServiceUnavailable, "SETTINGS_MISSING", err.Error())
	}

	log.Printf("ERROR: %s %s failed: %v", c.Request().Method, c.Path(), err)
	return common.SendServerError(c, fmt.Sprintf("Failed to process %s", resource))
}

// pathID reads the :id parameter
func pathID(c echo.Context) (int64, error) {
	id, err := common.ParseID(c.Param("id"), "id")
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return id, nil
}

// formImage opens the multipart image field. The returned closer must be called.
func formImage(c echo.Context, field string) (*services.UploadFile, func(), error) {
	fh, err := c.FormFile(field)
	if err != nil {
		return nil, nil, err
	}
	return openUpload(fh)
}

func openUpload(fh *multipart.FileHeader) (*services.UploadFile, func(), error) {
	f, err := fh.Open()
	if err != nil {
		return nil, nil, err
	}
	file := &services.UploadFile{
		Filename:    fh.Filename,
		ContentType: fh.Header.Get(echo.HeaderContentType),
		Size:        fh.Size,
		Reader:      f,
	}
	return file, func() { _ = f.Close() }, nil
}
