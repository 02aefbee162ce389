package handlers

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	apperrors "github.com/catalogkit/catalog-admin-service/internal/errors"
	"github.com/catalogkit/catalog-admin-service/internal/models"
	"github.com/shopspring/decimal"
)

// Uploads above this size are rejected at the boundary.
const maxUploadSize = 10 << 20

// readImageUpload pulls the optional image part out of a parsed multipart
// form. A missing or empty part means "no upload", not an error.
func readImageUpload(r *http.Request, field string) (*models.ImageUpload, error) {
	file, header, err := r.FormFile(field)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return nil, nil
		}

		return nil, apperrors.BadRequestError("Invalid image upload").WithError(err)
	}

	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, apperrors.BadRequestError("Failed to read image upload").WithError(err)
	}

	if len(data) == 0 {
		return nil, nil
	}

	return &models.ImageUpload{
		Filename:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Data:        data,
	}, nil
}

// formString returns the value and whether the field was present at all, so
// update handlers can distinguish "unchanged" from "set to empty".
func formString(r *http.Request, key string) (string, bool) {
	if r.MultipartForm == nil {
		return "", false
	}

	values, ok := r.MultipartForm.Value[key]
	if !ok || len(values) == 0 {
		return "", false
	}

	return values[0], true
}

func formBool(r *http.Request, key string) (*bool, error) {
	raw, ok := formString(r, key)
	if !ok {
		return nil, nil
	}

	value, err := strconv.ParseBool(raw)
	if err != nil {
		return nil, apperrors.AddValidationError(key, "must be a boolean")
	}

	return &value, nil
}

func formInt(r *http.Request, key string) (*int, error) {
	raw, ok := formString(r, key)
	if !ok {
		return nil, nil
	}

	value, err := strconv.Atoi(raw)
	if err != nil {
		return nil, apperrors.AddValidationError(key, "must be an integer")
	}

	return &value, nil
}

func formInt64(r *http.Request, key string) (*int64, error) {
	raw, ok := formString(r, key)
	if !ok {
		return nil, nil
	}

	value, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return nil, apperrors.AddValidationError(key, "must be an integer")
	}

	return &value, nil
}

func formDecimal(r *http.Request, key string) (*decimal.Decimal, error) {
	raw, ok := formString(r, key)
	if !ok {
		return nil, nil
	}

	value, err := decimal.NewFromString(raw)
	if err != nil {
		return nil, apperrors.AddValidationError(key, "must be a number")
	}

	return &value, nil
}

func pathID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		return 0, apperrors.BadRequestError("Invalid id")
	}

	return id, nil
}
