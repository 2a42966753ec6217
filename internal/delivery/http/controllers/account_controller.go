package controllers

import (
	"errors"
	"log/slog"
	"net/http"
	"regexp"
	"strings"

	"proeventos/internal/delivery/http/helpers"
	"proeventos/internal/delivery/http/middleware"
	"proeventos/internal/domain"
)

var emailRegexp = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// RegisterRequest is the request body for POST /api/Account/Register.
type RegisterRequest struct {
	UserName  string `json:"userName"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"primeiroNome"`
	LastName  string `json:"ultimoNome"`
}

// Validate implements Validator.
func (r RegisterRequest) Validate() []string {
	var errs []string
	if strings.TrimSpace(r.UserName) == "" {
		errs = append(errs, "userName is required")
	}
	email := strings.TrimSpace(strings.ToLower(r.Email))
	if email == "" {
		errs = append(errs, "email is required")
	} else if !emailRegexp.MatchString(email) {
		errs = append(errs, "invalid email format")
	}
	if r.Password == "" {
		errs = append(errs, "password is required")
	} else if len(r.Password) < 6 {
		errs = append(errs, "password must be at least 6 characters")
	}
	return errs
}

// LoginRequest is the request body for POST /api/Account/Login.
type LoginRequest struct {
	UserName string `json:"userName"`
	Password string `json:"password"`
}

// Validate implements Validator.
func (l LoginRequest) Validate() []string {
	var errs []string
	if strings.TrimSpace(l.UserName) == "" {
		errs = append(errs, "userName is required")
	}
	if l.Password == "" {
		errs = append(errs, "password is required")
	}
	return errs
}

// UpdateUserRequest is the request body for PUT /api/Account/UpdateUser.
// Password is optional; empty means unchanged.
type UpdateUserRequest struct {
	UserName    string `json:"userName"`
	Email       string `json:"email"`
	FirstName   string `json:"primeiroNome"`
	LastName    string `json:"ultimoNome"`
	Title       string `json:"titulo"`
	PhoneNumber string `json:"phoneNumber"`
	Description string `json:"descricao"`
	Password    string `json:"password"`
}

// Validate implements Validator.
func (u UpdateUserRequest) Validate() []string {
	var errs []string
	if strings.TrimSpace(u.UserName) == "" {
		errs = append(errs, "userName is required")
	}
	if u.Email != "" && !emailRegexp.MatchString(strings.TrimSpace(strings.ToLower(u.Email))) {
		errs = append(errs, "invalid email format")
	}
	return errs
}

// AuthResponse is the session triple returned by Register, Login, and
// UpdateUser. The misspelled PrimeroNome key is part of the published API
// contract.
type AuthResponse struct {
	UserName  string `json:"userName"`
	FirstName string `json:"PrimeroNome"`
	Token     string `json:"token"`
}

// RegisterSuccessResponse is the success response envelope for POST /api/Account/Register (200).
type RegisterSuccessResponse struct {
	Data  AuthResponse      `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// LoginSuccessResponse is the success response envelope for POST /api/Account/Login (200).
type LoginSuccessResponse struct {
	Data  AuthResponse      `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// GetUserSuccessResponse is the success response envelope for GET /api/Account/GetUser (200).
type GetUserSuccessResponse struct {
	Data  *domain.User      `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// UploadImageSuccessResponse is the success response envelope for POST /api/Account/upload-image (200).
type UploadImageSuccessResponse struct {
	Data  *domain.User      `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// AccountController handles registration, login, and profile endpoints.
type AccountController struct {
	Logger  *slog.Logger
	Service domain.AccountService
}

// NewAccountController creates an AccountController with the given logger
// and service.
func NewAccountController(logger *slog.Logger, svc domain.AccountService) *AccountController {
	return &AccountController{
		Logger:  logger,
		Service: svc,
	}
}

// Register godoc
// @Summary Register a new account
// @Description Create a new account. A taken username fails with 400 "Usuário já existe". On success returns the username, first name, and a session token.
// @Tags account
// @Accept json
// @Produce json
// @Param body body RegisterRequest true "Registration data"
// @Success 200 {object} controllers.RegisterSuccessResponse "data contains the session triple"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /api/Account/Register [post]
func (c *AccountController) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	user, token, err := c.Service.Register(r.Context(), domain.RegisterInput{
		UserName:  req.UserName,
		Email:     req.Email,
		Password:  req.Password,
		FirstName: req.FirstName,
		LastName:  req.LastName,
	})
	if err != nil {
		if errors.Is(err, domain.ErrDuplicateUserName) {
			helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "Usuário já existe")
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, AuthResponse{
		UserName:  user.UserName,
		FirstName: user.FirstName,
		Token:     token,
	})
}

// Login godoc
// @Summary Log in
// @Description Authenticates by username and password. An unknown username and a wrong password both respond 401; only the unknown-username case carries a message.
// @Tags account
// @Accept json
// @Produce json
// @Param body body LoginRequest true "Credentials"
// @Success 200 {object} controllers.LoginSuccessResponse "data contains the session triple"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /api/Account/Login [post]
func (c *AccountController) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	user, token, err := c.Service.Login(r.Context(), req.UserName, req.Password)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "Usuário inválido")
			return
		}
		if errors.Is(err, domain.ErrInvalidCredentials) {
			helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "")
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, AuthResponse{
		UserName:  user.UserName,
		FirstName: user.FirstName,
		Token:     token,
	})
}

// GetUser godoc
// @Summary Get the current user
// @Description Returns the authenticated user's profile, resolved from the token claims.
// @Tags account
// @Produce json
// @Security BearerAuth
// @Success 200 {object} controllers.GetUserSuccessResponse "data contains the user"
// @Success 204 "no matching account"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /api/Account/GetUser [get]
func (c *AccountController) GetUser(w http.ResponseWriter, r *http.Request) {
	userName, ok := middleware.UserNameFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	user, err := c.Service.GetByUserName(r.Context(), userName)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			helpers.WriteNoContent(w)
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, user)
}

// UpdateUser godoc
// @Summary Update the current user
// @Description Updates the authenticated user's profile. The body's userName must match the caller's own claims; a mismatch is rejected with 401. Returns a fresh session triple.
// @Tags account
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body UpdateUserRequest true "Profile fields"
// @Success 200 {object} controllers.RegisterSuccessResponse "data contains the session triple"
// @Success 204 "no matching account"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /api/Account/UpdateUser [put]
func (c *AccountController) UpdateUser(w http.ResponseWriter, r *http.Request) {
	var req UpdateUserRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	userName, _ := middleware.UserNameFromContext(r.Context())
	// A body naming someone else's account is an authorization failure, not
	// a validation one.
	if !strings.EqualFold(strings.TrimSpace(req.UserName), userName) {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "Usuário inválido")
		return
	}
	user, token, err := c.Service.Update(r.Context(), userID, domain.UpdateAccountInput{
		UserName:    req.UserName,
		Email:       req.Email,
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		Title:       req.Title,
		PhoneNumber: req.PhoneNumber,
		Description: req.Description,
		Password:    req.Password,
	})
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			helpers.WriteNoContent(w)
			return
		}
		if errors.Is(err, domain.ErrDuplicateUserName) {
			helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "Usuário já existe")
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, AuthResponse{
		UserName:  user.UserName,
		FirstName: user.FirstName,
		Token:     token,
	})
}

// UploadProfileImage godoc
// @Summary Upload a profile image
// @Description Replaces the caller's profile image with the first uploaded file. An empty file leaves the current image in place. The old file is removed best-effort.
// @Tags account
// @Accept mpfd
// @Produce json
// @Security BearerAuth
// @Param file formData file true "Image file"
// @Success 200 {object} controllers.UploadImageSuccessResponse "data contains the updated user"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /api/Account/upload-image [post]
func (c *AccountController) UploadProfileImage(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	file, header, err := helpers.FormImageFile(r)
	if err != nil {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, err.Error())
		return
	}
	defer file.Close()

	user, err := c.Service.SetProfileImage(r.Context(), userID, header.Filename, header.Size, file)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			helpers.WriteNoContent(w)
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, user)
}
