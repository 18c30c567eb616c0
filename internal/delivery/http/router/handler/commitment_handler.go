package handler

import (
	"log/slog"
	"net/http"
	"strconv"

	"pledger/internal/delivery/http/middleware"
	"pledger/internal/delivery/http/render"
	domainerrors "pledger/internal/domain/errors"
	"pledger/internal/usecase"

	validation "github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// CreateCommitmentRequest represents the commitment creation form fields.
// The confidence percentage stays a string so a non-numeric value surfaces as
// a validation message instead of a binding failure.
type CreateCommitmentRequest struct {
	Text          string `form:"commitment_text" validate:"required"`
	ConfidencePct string `form:"declared_confidence_pct" validate:"required,numeric"`
	Deadline      string `form:"deadline" validate:"required"`
}

// ResolveCommitmentRequest represents the resolve form fields. The status
// value is deliberately untagged: an already-resolved commitment must report
// its state before any complaint about the submitted status.
type ResolveCommitmentRequest struct {
	Status       string `form:"status"`
	OutcomeNotes string `form:"outcome_notes"`
}

// CommitmentHandler holds dependencies for the dashboard and commitment pages.
type CommitmentHandler struct {
	uc     usecase.CommitmentUsecase
	logger *slog.Logger
}

// NewCommitmentHandler is the constructor for CommitmentHandler, injected by Fx.
func NewCommitmentHandler(uc usecase.CommitmentUsecase, logger *slog.Logger) *CommitmentHandler {
	return &CommitmentHandler{
		uc:     uc,
		logger: logger,
	}
}

// Dashboard lists the signed-in user's commitments ordered by deadline.
func (h *CommitmentHandler) Dashboard(c echo.Context) error {
	user := middleware.CurrentUser(c)

	output, err := h.uc.ListByUser(c.Request().Context(), user.ID)
	if err != nil {
		return errors.WithStack(err)
	}

	return c.Render(http.StatusOK, "dashboard.html", render.DashboardPage{
		Username:    user.Username,
		Commitments: output.Commitments,
	})
}

// NewPage renders the commitment creation form.
func (h *CommitmentHandler) NewPage(c echo.Context) error {
	return c.Render(http.StatusOK, "commitment_new.html", render.FormPage{})
}

// Create handles the commitment creation form. Validation problems re-render
// the form inline; success redirects to the dashboard.
func (h *CommitmentHandler) Create(c echo.Context) error {
	user := middleware.CurrentUser(c)

	var req CreateCommitmentRequest
	if err := c.Bind(&req); err != nil {
		return c.Render(http.StatusOK, "commitment_new.html", render.FormPage{
			Error: domainerrors.ErrValidationFailed.Message(),
		})
	}

	if err := c.Validate(&req); err != nil {
		return c.Render(http.StatusOK, "commitment_new.html", render.FormPage{
			Error: createFormMessage(err),
		})
	}

	confidence, err := strconv.Atoi(req.ConfidencePct)
	if err != nil {
		return c.Render(http.StatusOK, "commitment_new.html", render.FormPage{
			Error: domainerrors.ErrValidationFailed.Message(),
		})
	}

	input := &usecase.CreateCommitmentInput{
		UserID:        user.ID,
		Text:          req.Text,
		ConfidencePct: confidence,
		Deadline:      req.Deadline,
	}

	if _, err := h.uc.Create(c.Request().Context(), input); err != nil {
		if domainerrors.IsValidation(err) {
			return c.Render(http.StatusOK, "commitment_new.html", render.FormPage{Error: domainerrors.UserMessage(err)})
		}

		return errors.WithStack(err)
	}

	return c.Redirect(http.StatusSeeOther, "/dashboard")
}

// createFormMessage maps the first failed form field to its user-facing
// message.
func createFormMessage(err error) string {
	var fieldErrs validation.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		switch fieldErrs[0].Field() {
		case "Text":
			return domainerrors.ErrCommitmentTextRequired.Message()
		case "Deadline":
			return domainerrors.ErrInvalidDeadline.Message()
		}
	}

	return domainerrors.ErrValidationFailed.Message()
}

// ResolvePage renders the resolve form for one of the user's commitments. An
// unknown or foreign id silently returns to the dashboard.
func (h *CommitmentHandler) ResolvePage(c echo.Context) error {
	user := middleware.CurrentUser(c)

	commitmentID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.Redirect(http.StatusSeeOther, "/dashboard")
	}

	output, err := h.uc.GetOwned(c.Request().Context(), user.ID, commitmentID)
	if err != nil {
		if domainerrors.IsNotFound(err) {
			return c.Redirect(http.StatusSeeOther, "/dashboard")
		}

		return errors.WithStack(err)
	}

	return c.Render(http.StatusOK, "commitment_resolve.html", render.ResolvePage{
		Commitment: output.Commitment,
	})
}

// Resolve handles the resolve form submission.
func (h *CommitmentHandler) Resolve(c echo.Context) error {
	user := middleware.CurrentUser(c)

	commitmentID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.Redirect(http.StatusSeeOther, "/dashboard")
	}

	var req ResolveCommitmentRequest
	if err := c.Bind(&req); err != nil {
		return h.renderResolveError(c, user.ID, commitmentID, domainerrors.ErrValidationFailed.Message())
	}

	input := &usecase.ResolveCommitmentInput{
		UserID:       user.ID,
		CommitmentID: commitmentID,
		Status:       req.Status,
		OutcomeNotes: req.OutcomeNotes,
	}

	if _, err := h.uc.Resolve(c.Request().Context(), input); err != nil {
		if domainerrors.IsNotFound(err) {
			return c.Redirect(http.StatusSeeOther, "/dashboard")
		}
		if domainerrors.IsValidation(err) {
			return h.renderResolveError(c, user.ID, commitmentID, domainerrors.UserMessage(err))
		}

		return errors.WithStack(err)
	}

	return c.Redirect(http.StatusSeeOther, "/dashboard")
}

// renderResolveError re-renders the resolve page with an inline error. The
// commitment is re-fetched so the page reflects its current state.
func (h *CommitmentHandler) renderResolveError(c echo.Context, userID, commitmentID uuid.UUID, message string) error {
	output, err := h.uc.GetOwned(c.Request().Context(), userID, commitmentID)
	if err != nil {
		if domainerrors.IsNotFound(err) {
			return c.Redirect(http.StatusSeeOther, "/dashboard")
		}

		return errors.WithStack(err)
	}

	return c.Render(http.StatusOK, "commitment_resolve.html", render.ResolvePage{
		Error:      message,
		Commitment: output.Commitment,
	})
}
