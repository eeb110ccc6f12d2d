// Copyright (c) 2026 Clipstream. All rights reserved.

/*
Package users provides the HTTP delivery layer for account registration.

# Endpoint

POST /api/v1/users/register accepts a multipart form with the text fields
email, fullname, username, password and the file fields avatar (required)
and coverImage (optional). File staging happens in middleware before the
handler runs.
*/
package users

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/clipstream/api/internal/media"
	"github.com/clipstream/api/internal/platform/ctxutil"
	"github.com/clipstream/api/internal/platform/respond"
)

// Multipart file field names accepted by the registration endpoint.
const (
	FileFieldAvatar     = "avatar"
	FileFieldCoverImage = "coverImage"
)

// Handler implements the HTTP layer for account registration.
type Handler struct {
	userService *Service
	staging     *media.Staging
}

// NewHandler constructs a new users [Handler].
func NewHandler(service *Service, scratchDir string, logger *slog.Logger) *Handler {
	return &Handler{
		userService: service,
		staging:     media.NewStaging(scratchDir, logger, FileFieldAvatar, FileFieldCoverImage),
	}
}

// Routes returns a [chi.Router] configured with the users domain's endpoints.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.With(handler.staging.Middleware).Post("/register", handler.register)

	return router
}

// # Registration Endpoint

/*
POST /api/v1/users/register.

Description: Registers a new account from a multipart form. Image files
have already been staged to the local scratch directory by the middleware;
this handler only extracts values and delegates to the workflow.

Response:
  - 201: User: The sanitized created account
  - 400: ValidationError: Missing or malformed fields
  - 409: ConflictError: Duplicate email or username
  - 500: UploadError/InternalError: Avatar upload or post-write failure
*/
func (handler *Handler) register(writer http.ResponseWriter, request *http.Request) {
	requestContext := request.Context()

	input := RegisterInput{
		Email:          request.FormValue("email"),
		FullName:       request.FormValue("fullname"),
		Username:       request.FormValue("username"),
		Password:       request.FormValue("password"),
		AvatarPath:     ctxutil.GetStagedFile(requestContext, FileFieldAvatar),
		CoverImagePath: ctxutil.GetStagedFile(requestContext, FileFieldCoverImage),
	}

	user, err := handler.userService.Register(requestContext, input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, user, "User registered successfully")
}
