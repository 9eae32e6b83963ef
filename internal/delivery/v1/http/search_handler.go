package http

import (
	"encoding/json"
	"net/http"

	"github.com/DRSN-tech/search-backend/internal/usecase"
	"github.com/DRSN-tech/search-backend/pkg/e"
	"github.com/DRSN-tech/search-backend/pkg/logger"
)

type SearchHandler struct {
	searchUsecase usecase.SearchUC
	logger        logger.Logger
}

func NewSearchHandler(searchUsecase usecase.SearchUC, logger logger.Logger) *SearchHandler {
	return &SearchHandler{searchUsecase: searchUsecase, logger: logger}
}

// getProduct
//
//	@Summary		Карточка товара
//	@Description	Возвращает полную запись товара по sku
//	@Tags			products
//	@Produce		json
//	@Param			sku	query		integer					true	"SKU товара"
//	@Success		200	{object}	usecase.ProductRecord	"Запись товара"
//	@Failure		400	{object}	ErrorResponse			"Некорректный sku"
//	@Failure		404	{object}	ErrorResponse			"Товар не найден"
//	@Router			/ [get]
func (h *SearchHandler) getProduct(w http.ResponseWriter, r *http.Request) {
	sku, err := parseSkuParam(r.URL.Query().Get("sku"))
	if err != nil {
		h.logger.Warnf("%d %s: sku=%q", http.StatusBadRequest, e.ErrInvalidSku.Error(), r.URL.Query().Get("sku"))
		WriteError(w, err)
		return
	}

	record, err := h.searchUsecase.GetProduct(r.Context(), sku)
	if err != nil {
		h.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, record)
}

// productsByBrand
//
//	@Summary		Товары бренда
//	@Description	Возвращает до четырёх товаров указанного бренда (без учёта регистра)
//	@Tags			products
//	@Accept			json
//	@Produce		json
//	@Param			request	body		BrandRequest			true	"Бренд"
//	@Success		200		{array}		usecase.ProductRecord	"Товары бренда"
//	@Failure		400		{object}	ErrorResponse			"Бренд не указан"
//	@Router			/products-by-brand [post]
func (h *SearchHandler) productsByBrand(w http.ResponseWriter, r *http.Request) {
	var req BrandRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warnf("%d %s: %s", http.StatusBadRequest, e.ErrMissingBrand.Error(), err.Error())
		WriteError(w, e.ErrMissingBrand)
		return
	}

	records, err := h.searchUsecase.GetProductsByBrand(r.Context(), usecase.NewBrandReq(req.Brand))
	if err != nil {
		h.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, records)
}

// search
//
//	@Summary		Мультимодальный поиск
//	@Description	Поиск по каталогу: либо файл изображения, либо текстовый запрос, но не оба сразу
//	@Tags			search
//	@Accept			multipart/form-data
//	@Produce		json
//	@Param			file		formData	file					false	"Изображение-запрос"
//	@Param			query_text	formData	string					false	"Текстовый запрос"
//	@Param			brand		formData	string					false	"Фильтр по бренду"
//	@Param			color		formData	string					false	"Фильтр по цвету"
//	@Param			top_k		formData	integer					false	"Размер выдачи (по умолчанию 12)"
//	@Success		200			{array}		usecase.ProductRecord	"Ранжированная выдача"
//	@Failure		400			{object}	ErrorResponse			"Ошибка валидации"
//	@Failure		500			{object}	ErrorResponse			"Ошибка поиска"
//	@Router			/search [post]
func (h *SearchHandler) search(w http.ResponseWriter, r *http.Request) {
	const (
		maxTotalRequestSize = 20 << 20
		maxMemory           = 16 << 20
		maxImageFileSize    = 10 << 20
	)

	r.Body = http.MaxBytesReader(w, r.Body, maxTotalRequestSize)

	if err := ensureMultipartForm(r, maxMemory); err != nil {
		h.logger.Warnf("%d %s: %s", http.StatusBadRequest, e.ErrExpectedMultipart.Error(), r.Header.Get("Content-Type"))
		WriteError(w, err)
		return
	}

	topK, err := parseTopKParam(r.FormValue("top_k"))
	if err != nil {
		h.logger.Warnf("%d %s: top_k=%q", http.StatusBadRequest, e.ErrInvalidTopK.Error(), r.FormValue("top_k"))
		WriteError(w, err)
		return
	}

	image, err := readImageFile(r.MultipartForm.File["file"], maxImageFileSize)
	if err != nil {
		h.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	res, err := h.searchUsecase.SearchProducts(r.Context(), usecase.NewSearchReq(
		r.FormValue("query_text"), image, r.FormValue("brand"), r.FormValue("color"), topK))
	if err != nil {
		h.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, res.Products)
}

// preference
//
//	@Summary		Рекомендации по товару
//	@Description	Две выдачи похожих товаров на опорный: по изображению и по тексту
//	@Tags			search
//	@Accept			json
//	@Produce		json
//	@Param			request	body		PreferenceRequest		true	"SKU опорного товара"
//	@Success		200		{object}	usecase.PreferenceRes	"Рекомендации"
//	@Failure		400		{object}	ErrorResponse			"Некорректный sku или нечитаемое изображение"
//	@Failure		404		{object}	ErrorResponse			"Товар не найден"
//	@Router			/preference [post]
func (h *SearchHandler) preference(w http.ResponseWriter, r *http.Request) {
	var req PreferenceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warnf("%d %s: %s", http.StatusBadRequest, e.ErrInvalidSku.Error(), err.Error())
		WriteError(w, e.ErrInvalidSku)
		return
	}

	if req.SKU <= 0 {
		h.logger.Warnf("%d %s: sku=%d", http.StatusBadRequest, e.ErrInvalidSku.Error(), req.SKU)
		WriteError(w, e.ErrInvalidSku)
		return
	}

	res, err := h.searchUsecase.GetPreference(r.Context(), usecase.NewPreferenceReq(req.SKU))
	if err != nil {
		h.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, res)
}

// BrandRequest — тело запроса POST /products-by-brand.
type BrandRequest struct {
	Brand string `json:"brand"`
}

// PreferenceRequest — тело запроса POST /preference.
type PreferenceRequest struct {
	SKU int64 `json:"sku"`
}
