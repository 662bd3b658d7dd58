package handlers

import (
	"io"
	"net/http"
	"strconv"

	"github.com/automation-market/marketplace/internal/domain"
	"go.uber.org/zap"
)

// maxMediaSize ограничение размера загружаемого медиафайла
const maxMediaSize = 20 << 20

type CatalogHandler struct {
	catalogService domain.CatalogService
	logger         *zap.Logger
}

func NewCatalogHandler(catalogService domain.CatalogService, logger *zap.Logger) *CatalogHandler {
	return &CatalogHandler{
		catalogService: catalogService,
		logger:         logger,
	}
}

// ListAutomations отдает каталог. Параметры: category, search, available, sort.
func (h *CatalogHandler) ListAutomations(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	available, _ := strconv.ParseBool(q.Get("available"))
	filter := domain.AutomationFilter{
		Category:      q.Get("category"),
		Search:        q.Get("search"),
		AvailableOnly: available,
		Sort:          domain.SortKey(q.Get("sort")),
	}

	// Анонимный посетитель получает uuid.Nil и не видит эксклюзивных позиций
	viewerID, _ := GetUserID(r.Context())

	items, err := h.catalogService.ListAutomations(r.Context(), viewerID, filter)
	if err != nil {
		writeError(w, h.logger, err, "failed to list automations")
		return
	}

	writeJSON(w, h.logger, http.StatusOK, items)
}

func (h *CatalogHandler) GetAutomation(w http.ResponseWriter, r *http.Request) {
	id, ok := uuidParam(r, "id")
	if !ok {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	viewerID, _ := GetUserID(r.Context())

	a, err := h.catalogService.GetAutomation(r.Context(), viewerID, id)
	if err != nil {
		writeError(w, h.logger, err, "failed to get automation")
		return
	}

	writeJSON(w, h.logger, http.StatusOK, a)
}

func (h *CatalogHandler) CreateAutomation(w http.ResponseWriter, r *http.Request) {
	var input domain.AutomationInput
	if err := decodeJSON(r, &input); err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	a, err := h.catalogService.CreateAutomation(r.Context(), input)
	if err != nil {
		writeError(w, h.logger, err, "failed to create automation")
		return
	}

	writeJSON(w, h.logger, http.StatusCreated, a)
}

func (h *CatalogHandler) UpdateAutomation(w http.ResponseWriter, r *http.Request) {
	id, ok := uuidParam(r, "id")
	if !ok {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	var input domain.AutomationInput
	if err := decodeJSON(r, &input); err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	a, err := h.catalogService.UpdateAutomation(r.Context(), id, input)
	if err != nil {
		writeError(w, h.logger, err, "failed to update automation")
		return
	}

	writeJSON(w, h.logger, http.StatusOK, a)
}

// UploadMedia принимает multipart форму с полем file
func (h *CatalogHandler) UploadMedia(w http.ResponseWriter, r *http.Request) {
	id, ok := uuidParam(r, "id")
	if !ok {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxMediaSize)
	file, header, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	a, err := h.catalogService.UploadMedia(r.Context(), id, header.Filename, data)
	if err != nil {
		writeError(w, h.logger, err, "failed to upload media")
		return
	}

	writeJSON(w, h.logger, http.StatusOK, a)
}
