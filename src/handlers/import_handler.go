package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/username/tradevault/backend/src/config"
	"github.com/username/tradevault/backend/src/logger"
	"github.com/username/tradevault/backend/src/parsers"
	"github.com/username/tradevault/backend/src/security/validation"
	"github.com/username/tradevault/backend/src/services"
	"github.com/username/tradevault/backend/src/utils"
)

type ImportHandler struct {
	importService services.ImportService
}

func NewImportHandler(service services.ImportService) *ImportHandler {
	return &ImportHandler{importService: service}
}

// HandleImport accepts a multipart file upload for one platform and runs
// the full import pipeline on it.
func (h *ImportHandler) HandleImport(w http.ResponseWriter, r *http.Request) {
	userID, ok := GetUserIDFromContext(r.Context())
	if !ok {
		utils.SendJSONError(w, "authentication required or user ID not found in context", http.StatusUnauthorized)
		return
	}

	platform := parsers.Platform(chi.URLParam(r, "platform"))
	if _, err := parsers.GetStrategy(platform); err != nil {
		utils.SendJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := r.ParseMultipartForm(config.Cfg.MaxUploadSizeBytes); err != nil {
		logger.L.Warn("Failed to parse multipart form or request too large", "userID", userID, "error", err, "limit", config.Cfg.MaxUploadSizeBytes)
		utils.SendJSONError(w, fmt.Sprintf("Failed to parse form or request too large (max %d MB)", config.Cfg.MaxUploadSizeBytes/(1024*1024)), http.StatusBadRequest)
		return
	}

	file, fileHeader, err := r.FormFile("file")
	if err != nil {
		logger.L.Warn("Failed to retrieve file from request", "userID", userID, "error", err)
		utils.SendJSONError(w, "Failed to retrieve file from request. Ensure 'file' field is used.", http.StatusBadRequest)
		return
	}
	defer file.Close()

	if fileHeader.Size > config.Cfg.MaxUploadSizeBytes {
		utils.SendJSONError(w, fmt.Sprintf("File too large, max %d MB", config.Cfg.MaxUploadSizeBytes/(1024*1024)), http.StatusBadRequest)
		return
	}

	clientContentType := fileHeader.Header.Get("Content-Type")
	if err := validation.ValidateClientContentType(clientContentType); err != nil {
		utils.SendJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}

	detectedContentType, err := validation.ValidateFileContentByMagicBytes(file)
	if err != nil {
		logger.L.Warn("Server-side file content validation failed", "userID", userID, "filename", fileHeader.Filename, "error", err)
		utils.SendJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}
	logger.L.Info("Processing import request", "userID", userID, "platform", platform,
		"filename", fileHeader.Filename, "detectedType", detectedContentType)

	result, err := h.importService.ProcessImport(r.Context(), file, userID, platform)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrParsingFailed):
			logger.L.Warn("Import failed during parsing", "userID", userID, "platform", platform, "error", err)
			utils.SendJSONError(w, fmt.Sprintf("Error parsing file: %v", err), http.StatusBadRequest)
		case errors.Is(err, services.ErrProcessingFailed):
			logger.L.Warn("Import failed during processing", "userID", userID, "platform", platform, "error", err)
			utils.SendJSONError(w, fmt.Sprintf("Error processing trades in file: %v", err), http.StatusBadRequest)
		default:
			logger.L.Error("Internal error processing import", "userID", userID, "platform", platform, "error", err)
			utils.SendJSONError(w, "An internal error occurred while processing the file. Please try again later.", http.StatusInternalServerError)
		}
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(result); err != nil {
		logger.L.Error("Error encoding JSON response for import result", "userID", userID, "error", err)
	}
}

// HandleGetLatestResult returns the most recent import result for the user.
func (h *ImportHandler) HandleGetLatestResult(w http.ResponseWriter, r *http.Request) {
	userID, ok := GetUserIDFromContext(r.Context())
	if !ok {
		utils.SendJSONError(w, "authentication required or user ID not found in context", http.StatusUnauthorized)
		return
	}

	result, err := h.importService.GetLatestImportResult(userID)
	if err != nil {
		utils.SendJSONError(w, "no import result available", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(result); err != nil {
		logger.L.Error("Error encoding latest import result", "userID", userID, "error", err)
	}
}

// HandleApplyCommissionRates consumes the per-instrument rates the user
// supplied for instruments flagged as missing commission.
func (h *ImportHandler) HandleApplyCommissionRates(w http.ResponseWriter, r *http.Request) {
	userID, ok := GetUserIDFromContext(r.Context())
	if !ok {
		utils.SendJSONError(w, "authentication required or user ID not found in context", http.StatusUnauthorized)
		return
	}

	var payload struct {
		Rates map[string]float64 `json:"rates"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil || len(payload.Rates) == 0 {
		utils.SendJSONError(w, "request body must carry a non-empty 'rates' object", http.StatusBadRequest)
		return
	}
	for instrument, rate := range payload.Rates {
		if rate < 0 {
			utils.SendJSONError(w, fmt.Sprintf("negative rate for instrument %s", instrument), http.StatusBadRequest)
			return
		}
	}

	updated, err := h.importService.ApplyCommissionRates(userID, payload.Rates)
	if err != nil {
		logger.L.Error("Failed to apply commission rates", "userID", userID, "error", err)
		utils.SendJSONError(w, "failed to apply commission rates", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]int{"tradesUpdated": updated})
}

// HandleListPlatforms lists the registered platform identifiers.
func (h *ImportHandler) HandleListPlatforms(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(parsers.Platforms())
}
