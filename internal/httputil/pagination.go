package httputil

import (
	"strconv"

	"github.com/gin-gonic/gin"
	validation "github.com/jellydator/validation"

	apperrors "github.com/allisson/reptend/internal/errors"
)

const (
	DefaultLimit = 50
	MaxLimit     = 100
)

type page struct {
	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}

// ParsePagination reads the offset and limit query parameters. offset defaults to
// 0 and limit to DefaultLimit. Failures wrap ErrInvalidInput.
func ParsePagination(c *gin.Context) (offset, limit int, err error) {
	var p page

	if p.Offset, err = strconv.Atoi(c.DefaultQuery("offset", "0")); err != nil {
		return 0, 0, apperrors.Wrap(apperrors.ErrInvalidInput, "offset: must be an integer")
	}
	if p.Limit, err = strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(DefaultLimit))); err != nil {
		return 0, 0, apperrors.Wrap(apperrors.ErrInvalidInput, "limit: must be an integer")
	}

	err = validation.ValidateStruct(&p,
		validation.Field(&p.Offset, validation.Min(0)),
		validation.Field(&p.Limit, validation.Required, validation.Min(1), validation.Max(MaxLimit)),
	)
	if err != nil {
		return 0, 0, apperrors.Wrap(apperrors.ErrInvalidInput, err.Error())
	}

	return p.Offset, p.Limit, nil
}
