package e

import "fmt"

var (
	// Внутренние ошибки с векторами
	ErrEmptyVector       = fmt.Errorf("embedding vector is empty")
	ErrVectorSizeInvalid = fmt.Errorf("embedding vector has unexpected size")

	// 400 Bad Request
	ErrMissingQuery      = fmt.Errorf("please provide an image file or a text query")
	ErrBothQueries       = fmt.Errorf("provide either an image file or a text query, not both")
	ErrInvalidImage      = fmt.Errorf("invalid image file")
	ErrMissingBrand      = fmt.Errorf("brand is required")
	ErrInvalidSku        = fmt.Errorf("sku must be a positive integer")
	ErrInvalidTopK       = fmt.Errorf("top_k must not be negative")
	ErrExpectedMultipart = fmt.Errorf("expected multipart/form-data request")

	// 404 Not Found
	ErrProductNotFound = fmt.Errorf("product not found")

	// Изображения товаров
	ErrImageNotFound    = fmt.Errorf("product image not found in storage")
	ErrImageUnavailable = fmt.Errorf("no readable image available for product")

	// 500 Internal Server Error
	ErrSearchFailed        = fmt.Errorf("similarity search failed")
	ErrInternalServerError = fmt.Errorf("internal server error")

	// Конфигурация
	ErrIncorrectEnvVariable = fmt.Errorf("incorrect environment variable value")
)

// Wrap оборачивает ошибку
func Wrap(msg string, err error) error {
	return fmt.Errorf("%s: %w", msg, err)
}
