package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/talenthub/jobboard-api/internal/api/metrics"
	"github.com/talenthub/jobboard-api/internal/core/domain"
	"github.com/talenthub/jobboard-api/internal/core/ports"
)

// UserHandler handles profile reads/updates and the file upload lifecycle.
type UserHandler struct {
	userService   ports.UserService
	uploadService ports.UploadService
}

func NewUserHandler(userService ports.UserService, uploadService ports.UploadService) *UserHandler {
	return &UserHandler{userService: userService, uploadService: uploadService}
}

type updateProfileRequest struct {
	FullName string `json:"full_name" validate:"max=120"`
	Headline string `json:"headline"  validate:"max=200"`
}

type uploadResponse struct {
	Path string `json:"path"`
}

// Get returns an account's public profile.
//
// @Summary      Get a user
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "User id"
// @Success      200  {object}  domain.User
// @Failure      404  {object}  map[string]string
// @Router       /users/{id} [get]
func (h *UserHandler) Get(c echo.Context) error {
	user, err := h.userService.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}

// Update modifies the profile fields of an account (self or admin).
//
// @Summary      Update a profile
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string                true  "User id"
// @Param        body  body      updateProfileRequest  true  "Profile fields"
// @Success      200   {object}  domain.User
// @Failure      403   {object}  map[string]string
// @Router       /users/{id} [put]
func (h *UserHandler) Update(c echo.Context) error {
	var req updateProfileRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user, err := h.userService.UpdateProfile(c.Request().Context(), c.Param("id"), ports.UpdateProfileInput{
		FullName: req.FullName,
		Headline: req.Headline,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}

// UploadPicture accepts a profile picture (multipart field "picture").
//
// @Summary      Upload a profile picture
// @Tags         uploads
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        picture  formData  file  true  "Image file"
// @Success      200      {object}  uploadResponse
// @Failure      400      {object}  map[string]string
// @Router       /users/profile/picture [post]
func (h *UserHandler) UploadPicture(c echo.Context) error {
	return h.upload(c, domain.PurposeAvatar, "picture")
}

// UploadResume accepts a resume (multipart field "resume").
//
// @Summary      Upload a resume
// @Tags         uploads
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        resume  formData  file  true  "Resume file"
// @Success      200     {object}  uploadResponse
// @Failure      400     {object}  map[string]string
// @Router       /users/profile/resume [post]
func (h *UserHandler) UploadResume(c echo.Context) error {
	return h.upload(c, domain.PurposeResume, "resume")
}

// upload runs the shared multipart handling: exactly one file, under the
// expected field name, then hands off to the pipeline.
func (h *UserHandler) upload(c echo.Context, purpose domain.Purpose, field string) error {
	id, err := requireIdentity(c)
	if err != nil {
		return err
	}

	form, err := c.MultipartForm()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid multipart form")
	}

	total := 0
	for _, fhs := range form.File {
		total += len(fhs)
	}
	if total != 1 || len(form.File[field]) != 1 {
		return domain.ErrUnknownField
	}
	fh := form.File[field][0]

	src, err := fh.Open()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "cannot read uploaded file")
	}
	defer src.Close()

	rel, err := h.uploadService.Store(c.Request().Context(), ports.UploadInput{
		OwnerID:  id.ID,
		Purpose:  purpose,
		Filename: fh.Filename,
		Size:     fh.Size,
		MIMEType: fh.Header.Get("Content-Type"),
		Content:  src,
	})
	if err != nil {
		metrics.UploadsTotal.WithLabelValues(string(purpose), uploadOutcome(err)).Inc()
		return err
	}

	metrics.UploadsTotal.WithLabelValues(string(purpose), "success").Inc()
	metrics.UploadSizeBytes.WithLabelValues(string(purpose)).Observe(float64(fh.Size))
	return c.JSON(http.StatusOK, uploadResponse{Path: rel})
}

func uploadOutcome(err error) string {
	switch {
	case errors.Is(err, domain.ErrUnknownField),
		errors.Is(err, domain.ErrFileTooLarge),
		errors.Is(err, domain.ErrInvalidFileType),
		errors.Is(err, domain.ErrInvalidFilename):
		return "rejected"
	default:
		return "failed"
	}
}

// DeletePicture removes the caller's profile picture.
//
// @Summary      Delete the profile picture
// @Tags         uploads
// @Security     BearerAuth
// @Success      204
// @Failure      404  {object}  map[string]string
// @Router       /users/profile/picture [delete]
func (h *UserHandler) DeletePicture(c echo.Context) error {
	return h.deleteUpload(c, domain.PurposeAvatar)
}

// DeleteResume removes the caller's resume.
//
// @Summary      Delete the resume
// @Tags         uploads
// @Security     BearerAuth
// @Success      204
// @Failure      404  {object}  map[string]string
// @Router       /users/profile/resume [delete]
func (h *UserHandler) DeleteResume(c echo.Context) error {
	return h.deleteUpload(c, domain.PurposeResume)
}

func (h *UserHandler) deleteUpload(c echo.Context, purpose domain.Purpose) error {
	id, err := requireIdentity(c)
	if err != nil {
		return err
	}
	if err := h.uploadService.Delete(c.Request().Context(), id.ID, purpose); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// DownloadResume streams the caller's own resume as an attachment.
//
// @Summary      Download own resume
// @Tags         uploads
// @Produce      application/octet-stream
// @Security     BearerAuth
// @Success      200
// @Failure      404  {object}  map[string]string
// @Router       /users/profile/resume/download [get]
func (h *UserHandler) DownloadResume(c echo.Context) error {
	id, err := requireIdentity(c)
	if err != nil {
		return err
	}
	return h.serveResume(c, id.ID)
}

// DownloadResumeByID streams another account's resume. Routed behind the
// self-or-admin gate.
//
// @Summary      Download a user's resume
// @Tags         uploads
// @Produce      application/octet-stream
// @Security     BearerAuth
// @Param        id  path  string  true  "User id"
// @Success      200
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /users/{id}/resume/download [get]
func (h *UserHandler) DownloadResumeByID(c echo.Context) error {
	return h.serveResume(c, c.Param("id"))
}

func (h *UserHandler) serveResume(c echo.Context, userID string) error {
	res, err := h.uploadService.Resolve(c.Request().Context(), userID, domain.PurposeResume)
	if err != nil {
		return err
	}

	c.Response().Header().Set(echo.HeaderContentType, res.ContentType)
	return c.Attachment(res.AbsPath, res.Filename)
}
