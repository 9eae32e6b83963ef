package http

import (
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"github.com/DRSN-tech/search-backend/internal/usecase"
	"github.com/DRSN-tech/search-backend/pkg/e"
	"github.com/jimlawless/whereami"
)

type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func NewErrorResponse(code int, message string) *ErrorResponse {
	return &ErrorResponse{
		Code:    code,
		Message: message,
	}
}

func ToHTTPResponse(err error) (int, string) {
	switch {
	case errors.Is(err, e.ErrMissingQuery):
		return http.StatusBadRequest, e.ErrMissingQuery.Error()
	case errors.Is(err, e.ErrBothQueries):
		return http.StatusBadRequest, e.ErrBothQueries.Error()
	case errors.Is(err, e.ErrInvalidImage):
		return http.StatusBadRequest, e.ErrInvalidImage.Error()
	case errors.Is(err, e.ErrMissingBrand):
		return http.StatusBadRequest, e.ErrMissingBrand.Error()
	case errors.Is(err, e.ErrInvalidSku):
		return http.StatusBadRequest, e.ErrInvalidSku.Error()
	case errors.Is(err, e.ErrInvalidTopK):
		return http.StatusBadRequest, e.ErrInvalidTopK.Error()
	case errors.Is(err, e.ErrExpectedMultipart):
		return http.StatusBadRequest, e.ErrExpectedMultipart.Error()
	case errors.Is(err, e.ErrProductNotFound):
		return http.StatusNotFound, e.ErrProductNotFound.Error()
	case errors.Is(err, e.ErrSearchFailed):
		return http.StatusInternalServerError, e.ErrSearchFailed.Error()
	default:
		return http.StatusInternalServerError, e.ErrInternalServerError.Error()
	}
}

func WriteError(w http.ResponseWriter, err error) {
	code, msg := ToHTTPResponse(err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(NewErrorResponse(code, msg))
}

func WriteSuccess(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func ensureMultipartForm(r *http.Request, maxMemory int64) error {
	if !strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		return e.Wrap(whereami.WhereAmI(), e.ErrExpectedMultipart)
	}
	return r.ParseMultipartForm(maxMemory)
}

// parseSkuParam разбирает sku из строки: положительное целое, иначе ErrInvalidSku.
func parseSkuParam(s string) (int64, error) {
	sku, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil || sku <= 0 {
		return 0, e.ErrInvalidSku
	}
	return sku, nil
}

// parseTopKParam разбирает необязательный top_k: отсутствующее значение — размер
// выдачи по умолчанию, явный "0" — пустая выдача.
func parseTopKParam(s string) (int, error) {
	if strings.TrimSpace(s) == "" {
		return usecase.DefaultTopK, nil
	}

	topK, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || topK < 0 {
		return 0, e.ErrInvalidTopK
	}
	return topK, nil
}

// readImageFile читает первый загруженный файл формы. Отсутствие файла — не ошибка:
// запрос может быть текстовым.
func readImageFile(files []*multipart.FileHeader, maxSize int64) ([]byte, error) {
	if len(files) == 0 {
		return nil, nil
	}

	src, err := files[0].Open()
	if err != nil {
		return nil, e.ErrInternalServerError
	}
	defer src.Close()

	data, err := io.ReadAll(src)
	if err != nil {
		return nil, e.ErrInternalServerError
	}
	if int64(len(data)) > maxSize {
		return nil, e.Wrap(files[0].Filename, e.ErrInvalidImage)
	}

	return data, nil
}
