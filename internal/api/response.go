package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/shaiso/Election/internal/domain"
	"github.com/shaiso/Election/internal/repo"
)

// Значения поля message в успешных ответах.
const (
	MessageSuccess = "success"
	MessageDeleted = "deleted"
)

// ErrorResponse — структура ответа с ошибкой.
type ErrorResponse struct {
	Error string `json:"error"`
}

// DataResponse — успешный ответ list/get/create.
type DataResponse struct {
	Message string `json:"message"`
	Data    any    `json:"data"`
}

// UpdateResponse — успешный ответ update: принятый payload и число изменённых строк.
type UpdateResponse struct {
	Message string `json:"message"`
	Data    any    `json:"data"`
	Changes int64  `json:"changes"`
}

// DeleteResponse — успешный ответ delete.
type DeleteResponse struct {
	Message string `json:"message"`
	Changes int64  `json:"changes"`
	ID      int64  `json:"id"`
}

// JSON отправляет JSON ответ.
func JSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// Success отправляет {message: "success", data}.
func Success(w http.ResponseWriter, data any) {
	JSON(w, http.StatusOK, DataResponse{Message: MessageSuccess, Data: data})
}

// Updated отправляет {message: "success", data, changes}.
func Updated(w http.ResponseWriter, data any, changes int64) {
	JSON(w, http.StatusOK, UpdateResponse{Message: MessageSuccess, Data: data, Changes: changes})
}

// Deleted отправляет {message: "deleted", changes, id}.
func Deleted(w http.ResponseWriter, changes, id int64) {
	JSON(w, http.StatusOK, DeleteResponse{Message: MessageDeleted, Changes: changes, ID: id})
}

// Error отправляет ответ с ошибкой.
func Error(w http.ResponseWriter, status int, message string) {
	JSON(w, status, ErrorResponse{Error: message})
}

// BadRequest отправляет ошибку 400.
func BadRequest(w http.ResponseWriter, message string) {
	Error(w, http.StatusBadRequest, message)
}

// NotFound отправляет ошибку 404.
func NotFound(w http.ResponseWriter, message string) {
	Error(w, http.StatusNotFound, message)
}

// Conflict отправляет ошибку 409.
func Conflict(w http.ResponseWriter, message string) {
	Error(w, http.StatusConflict, message)
}

// InternalError отправляет ошибку 500. Подробности только в логе.
func InternalError(w http.ResponseWriter, logger *slog.Logger, err error) {
	logger.Error("internal error", "error", err)
	Error(w, http.StatusInternalServerError, "internal server error")
}

// HandleRepoError преобразует ошибку репозитория в HTTP ответ.
// Возвращает true, если ответ уже записан.
func HandleRepoError(w http.ResponseWriter, logger *slog.Logger, err error, entity domain.Entity) bool {
	if err == nil {
		return false
	}

	switch {
	case errors.Is(err, repo.ErrNotFound):
		NotFound(w, string(entity)+" not found")
	case errors.Is(err, repo.ErrAlreadyExists):
		Conflict(w, string(entity)+" already exists")
	case errors.Is(err, repo.ErrInvalidReference):
		BadRequest(w, string(entity)+" references a record that does not exist")
	case errors.Is(err, repo.ErrInvalidValue):
		BadRequest(w, "invalid "+string(entity)+" value")
	default:
		InternalError(w, logger, err)
	}
	return true
}
