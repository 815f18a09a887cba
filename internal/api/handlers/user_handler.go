package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"go.uber.org/zap"

	"github.com/userhub/api/internal/api/types"
	"github.com/userhub/api/internal/api/validators"
	"github.com/userhub/api/internal/services"
	"github.com/userhub/api/internal/upload"
	appErr "github.com/userhub/api/pkg/errors"
	"github.com/userhub/api/pkg/logger"
)

// multipart form fields and headers need some room on top of the file
// size limit before MaxBytesReader cuts the request off.
const formOverhead = 512 * 1024

type UserHandler struct {
	users          services.UserService
	ingest         *upload.Ingestor
	maxUploadBytes int64
}

func NewUserHandler(users services.UserService, ingest *upload.Ingestor, maxUploadBytes int64) *UserHandler {
	return &UserHandler{users: users, ingest: ingest, maxUploadBytes: maxUploadBytes}
}

// Create handles POST /user/create.
func (h *UserHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req types.CreateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if errs := validators.CreateUserErrors(req.FullName, req.Email, req.Password); len(errs) > 0 {
		writeJSON(w, http.StatusBadRequest, types.ValidationErrorResponse{Message: "Validation error", Errors: errs})
		return
	}

	user, err := h.users.Create(r.Context(), req.FullName, req.Email, req.Password)
	if err != nil {
		if appErr.IsCode(err, appErr.CodeConflict) {
			writeMessage(w, http.StatusConflict, "User already exists")
			return
		}
		logger.L().Error("create user failed", zap.Error(err))
		writeMessage(w, http.StatusInternalServerError, "Error creating user")
		return
	}

	writeJSON(w, http.StatusCreated, types.CreateUserResponse{Message: "User created successfully", User: *user})
}

// Edit handles PUT /user/edit. The email is the lookup key; the full
// name is always overwritten and the password only when supplied.
func (h *UserHandler) Edit(w http.ResponseWriter, r *http.Request) {
	var req types.EditUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if errs := validators.EditUserErrors(req.FullName, req.Password); len(errs) > 0 {
		writeJSON(w, http.StatusBadRequest, types.ValidationErrorResponse{Errors: errs})
		return
	}

	if _, err := h.users.Edit(r.Context(), req.Email, req.FullName, req.Password); err != nil {
		if appErr.IsCode(err, appErr.CodeNotFound) {
			writeMessage(w, http.StatusNotFound, "User not found")
			return
		}
		logger.L().Error("edit user failed", zap.Error(err))
		writeMessage(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	writeMessage(w, http.StatusOK, "User updated successfully")
}

// Delete handles DELETE /user/delete.
func (h *UserHandler) Delete(w http.ResponseWriter, r *http.Request) {
	var req types.DeleteUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		writeMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if req.Email == "" {
		writeMessage(w, http.StatusBadRequest, "Validation error: Email is required")
		return
	}

	if _, err := h.users.Delete(r.Context(), req.Email); err != nil {
		if appErr.IsCode(err, appErr.CodeNotFound) {
			writeMessage(w, http.StatusNotFound, "User not found")
			return
		}
		logger.L().Error("delete user failed", zap.Error(err))
		writeMessage(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	writeMessage(w, http.StatusOK, "User deleted successfully")
}

// List handles GET /user/getAll. Only the fullName/email projection is
// returned, never passwords or image paths.
func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	users, err := h.users.List(r.Context())
	if err != nil {
		logger.L().Error("list users failed", zap.Error(err))
		writeMessage(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	writeJSON(w, http.StatusOK, users)
}

// UploadImage handles POST /user/uploadImage: a multipart form with a
// userId field and a single file field named "image".
func (h *UserHandler) UploadImage(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadBytes+formOverhead)
	if err := r.ParseMultipartForm(h.maxUploadBytes); err != nil {
		var mbe *http.MaxBytesError
		if errors.As(err, &mbe) {
			writeMessage(w, http.StatusRequestEntityTooLarge, upload.ErrTooLarge.Error())
			return
		}
		writeMessage(w, http.StatusBadRequest, "Missing image file or user ID")
		return
	}

	userID := r.FormValue("userId")
	file, header, err := r.FormFile("image")
	if err != nil || userID == "" {
		writeMessage(w, http.StatusBadRequest, "Missing image file or user ID")
		return
	}
	file.Close() // Save reopens through the header

	path, err := h.ingest.Save(header, "image")
	if err != nil {
		switch {
		case errors.Is(err, upload.ErrTooLarge):
			writeMessage(w, http.StatusRequestEntityTooLarge, err.Error())
		case errors.Is(err, upload.ErrBadType):
			writeMessage(w, http.StatusBadRequest, err.Error())
		default:
			logger.L().Error("store image failed", zap.Error(err))
			writeMessage(w, http.StatusInternalServerError, "Failed to upload image")
		}
		return
	}

	if _, err := h.users.AttachImage(r.Context(), userID, path); err != nil {
		// the stored file is orphaned from here on; not cleaned up
		switch {
		case appErr.IsCode(err, appErr.CodeNotFound):
			writeMessage(w, http.StatusNotFound, "User not found")
		case appErr.IsCode(err, appErr.CodeInvalid):
			writeMessage(w, http.StatusBadRequest, "Invalid user ID")
		default:
			logger.L().Error("attach image failed", zap.Error(err), zap.String("path", path))
			writeMessage(w, http.StatusInternalServerError, "Failed to upload image")
		}
		return
	}

	writeJSON(w, http.StatusOK, types.UploadImageResponse{ImagePath: path, Message: "Image uploaded successfully."})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeMessage(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, types.MessageResponse{Message: msg})
}
