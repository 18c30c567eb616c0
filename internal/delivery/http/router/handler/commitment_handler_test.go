package handler

import (
	"context"
	"net/http"
	"net/url"
	"testing"

	"pledger/internal/domain/entity"
	domainerrors "pledger/internal/domain/errors"
	"pledger/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommitmentHandler_Dashboard(t *testing.T) {
	e := newTestEcho(t)
	user := testUser()
	commitment := openCommitment(user.ID)

	uc := &stubCommitmentUsecase{
		listFn: func(_ context.Context, userID uuid.UUID) (*usecase.CommitmentListOutput, error) {
			assert.Equal(t, user.ID, userID)

			return &usecase.CommitmentListOutput{Commitments: []*entity.Commitment{commitment}}, nil
		},
	}
	h := NewCommitmentHandler(uc, testLogger())

	c, rec := newFormContext(e, http.MethodGet, "/dashboard", nil)
	c.Set("currentUser", user)

	require.NoError(t, h.Dashboard(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "alice")
	assert.Contains(t, body, "ship the release")
	assert.Contains(t, body, "80%")
	assert.Contains(t, body, "/commitments/"+commitment.ID.String()+"/resolve")
}

func TestCommitmentHandler_Dashboard_Empty(t *testing.T) {
	e := newTestEcho(t)
	user := testUser()

	uc := &stubCommitmentUsecase{
		listFn: func(_ context.Context, _ uuid.UUID) (*usecase.CommitmentListOutput, error) {
			return &usecase.CommitmentListOutput{}, nil
		},
	}
	h := NewCommitmentHandler(uc, testLogger())

	c, rec := newFormContext(e, http.MethodGet, "/dashboard", nil)
	c.Set("currentUser", user)

	require.NoError(t, h.Dashboard(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Nothing tracked yet.")
}

func TestCommitmentHandler_Create_Success(t *testing.T) {
	e := newTestEcho(t)
	user := testUser()

	uc := &stubCommitmentUsecase{
		createFn: func(_ context.Context, input *usecase.CreateCommitmentInput) (*usecase.CommitmentOutput, error) {
			assert.Equal(t, user.ID, input.UserID)
			assert.Equal(t, "ship the release", input.Text)
			assert.Equal(t, 80, input.ConfidencePct)
			assert.Equal(t, "2026-10-01T12:00", input.Deadline)

			return &usecase.CommitmentOutput{Commitment: openCommitment(user.ID)}, nil
		},
	}
	h := NewCommitmentHandler(uc, testLogger())

	c, rec := newFormContext(e, http.MethodPost, "/commitments/new", url.Values{
		"commitment_text":         {"ship the release"},
		"declared_confidence_pct": {"80"},
		"deadline":                {"2026-10-01T12:00"},
	})
	c.Set("currentUser", user)

	require.NoError(t, h.Create(c))

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/dashboard", rec.Header().Get("Location"))
}

func TestCommitmentHandler_Create_ValidationErrors(t *testing.T) {
	e := newTestEcho(t)
	user := testUser()

	cases := []struct {
		name    string
		err     error
		message string
	}{
		{name: "empty text", err: domainerrors.ErrCommitmentTextRequired, message: "Commitment text required."},
		{name: "bad deadline", err: domainerrors.ErrInvalidDeadline, message: "Invalid deadline format."},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			uc := &stubCommitmentUsecase{
				createFn: func(_ context.Context, _ *usecase.CreateCommitmentInput) (*usecase.CommitmentOutput, error) {
					return nil, errors.Wrap(tc.err, "create rejected")
				},
			}
			h := NewCommitmentHandler(uc, testLogger())

			c, rec := newFormContext(e, http.MethodPost, "/commitments/new", url.Values{
				"commitment_text":         {"whatever"},
				"declared_confidence_pct": {"50"},
				"deadline":                {"whenever"},
			})
			c.Set("currentUser", user)

			require.NoError(t, h.Create(c))

			assert.Equal(t, http.StatusOK, rec.Code)
			assert.Contains(t, rec.Body.String(), tc.message)
		})
	}
}

func TestCommitmentHandler_Create_MissingFieldsRejectedBeforeUsecase(t *testing.T) {
	e := newTestEcho(t)
	user := testUser()

	cases := []struct {
		name    string
		form    url.Values
		message string
	}{
		{
			name: "empty text",
			form: url.Values{
				"commitment_text":         {""},
				"declared_confidence_pct": {"50"},
				"deadline":                {"2026-10-01"},
			},
			message: "Commitment text required.",
		},
		{
			name: "empty deadline",
			form: url.Values{
				"commitment_text":         {"ship it"},
				"declared_confidence_pct": {"50"},
				"deadline":                {""},
			},
			message: "Invalid deadline format.",
		},
		{
			name: "empty confidence",
			form: url.Values{
				"commitment_text":         {"ship it"},
				"declared_confidence_pct": {""},
				"deadline":                {"2026-10-01"},
			},
			message: "Invalid input.",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			uc := &stubCommitmentUsecase{
				createFn: func(_ context.Context, _ *usecase.CreateCommitmentInput) (*usecase.CommitmentOutput, error) {
					t.Fatal("create should not be reached with missing fields")

					return nil, nil
				},
			}
			h := NewCommitmentHandler(uc, testLogger())

			c, rec := newFormContext(e, http.MethodPost, "/commitments/new", tc.form)
			c.Set("currentUser", user)

			require.NoError(t, h.Create(c))

			assert.Equal(t, http.StatusOK, rec.Code)
			assert.Contains(t, rec.Body.String(), tc.message)
		})
	}
}

func TestCommitmentHandler_Create_NonNumericConfidence(t *testing.T) {
	e := newTestEcho(t)
	user := testUser()

	uc := &stubCommitmentUsecase{
		createFn: func(_ context.Context, _ *usecase.CreateCommitmentInput) (*usecase.CommitmentOutput, error) {
			t.Fatal("create should not be reached with a non-numeric confidence")

			return nil, nil
		},
	}
	h := NewCommitmentHandler(uc, testLogger())

	c, rec := newFormContext(e, http.MethodPost, "/commitments/new", url.Values{
		"commitment_text":         {"ship it"},
		"declared_confidence_pct": {"plenty"},
		"deadline":                {"2026-10-01"},
	})
	c.Set("currentUser", user)

	require.NoError(t, h.Create(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Invalid input.")
}

func TestCommitmentHandler_ResolvePage(t *testing.T) {
	e := newTestEcho(t)
	user := testUser()
	commitment := openCommitment(user.ID)

	uc := &stubCommitmentUsecase{
		getOwnedFn: func(_ context.Context, userID, commitmentID uuid.UUID) (*usecase.CommitmentOutput, error) {
			assert.Equal(t, user.ID, userID)
			assert.Equal(t, commitment.ID, commitmentID)

			return &usecase.CommitmentOutput{Commitment: commitment}, nil
		},
	}
	h := NewCommitmentHandler(uc, testLogger())

	c, rec := newFormContext(e, http.MethodGet, "/commitments/"+commitment.ID.String()+"/resolve", nil)
	c.SetParamNames("id")
	c.SetParamValues(commitment.ID.String())
	c.Set("currentUser", user)

	require.NoError(t, h.ResolvePage(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "ship the release")
	assert.Contains(t, body, `value="completed"`)
	assert.Contains(t, body, `value="failed"`)
}

func TestCommitmentHandler_ResolvePage_NotFoundRedirects(t *testing.T) {
	e := newTestEcho(t)
	user := testUser()

	uc := &stubCommitmentUsecase{
		getOwnedFn: func(_ context.Context, _, _ uuid.UUID) (*usecase.CommitmentOutput, error) {
			return nil, errors.Wrap(domainerrors.ErrCommitmentNotFound, "commitment lookup failed")
		},
	}
	h := NewCommitmentHandler(uc, testLogger())

	c, rec := newFormContext(e, http.MethodGet, "/commitments/"+uuid.NewString()+"/resolve", nil)
	c.SetParamNames("id")
	c.SetParamValues(uuid.NewString())
	c.Set("currentUser", user)

	require.NoError(t, h.ResolvePage(c))

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/dashboard", rec.Header().Get("Location"))
}

func TestCommitmentHandler_ResolvePage_MalformedIDRedirects(t *testing.T) {
	e := newTestEcho(t)

	h := NewCommitmentHandler(&stubCommitmentUsecase{}, testLogger())

	c, rec := newFormContext(e, http.MethodGet, "/commitments/42/resolve", nil)
	c.SetParamNames("id")
	c.SetParamValues("42")
	c.Set("currentUser", testUser())

	require.NoError(t, h.ResolvePage(c))

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/dashboard", rec.Header().Get("Location"))
}

func TestCommitmentHandler_Resolve_Success(t *testing.T) {
	e := newTestEcho(t)
	user := testUser()
	commitment := openCommitment(user.ID)

	uc := &stubCommitmentUsecase{
		resolveFn: func(_ context.Context, input *usecase.ResolveCommitmentInput) (*usecase.CommitmentOutput, error) {
			assert.Equal(t, user.ID, input.UserID)
			assert.Equal(t, commitment.ID, input.CommitmentID)
			assert.Equal(t, "completed", input.Status)
			assert.Equal(t, "done early", input.OutcomeNotes)

			resolved := *commitment
			resolved.Status = entity.StatusCompleted

			return &usecase.CommitmentOutput{Commitment: &resolved}, nil
		},
	}
	h := NewCommitmentHandler(uc, testLogger())

	c, rec := newFormContext(e, http.MethodPost, "/commitments/"+commitment.ID.String()+"/resolve", url.Values{
		"status":        {"completed"},
		"outcome_notes": {"done early"},
	})
	c.SetParamNames("id")
	c.SetParamValues(commitment.ID.String())
	c.Set("currentUser", user)

	require.NoError(t, h.Resolve(c))

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/dashboard", rec.Header().Get("Location"))
}

func TestCommitmentHandler_Resolve_AlreadyResolved(t *testing.T) {
	e := newTestEcho(t)
	user := testUser()
	commitment := openCommitment(user.ID)
	commitment.Status = entity.StatusCompleted

	uc := &stubCommitmentUsecase{
		resolveFn: func(_ context.Context, _ *usecase.ResolveCommitmentInput) (*usecase.CommitmentOutput, error) {
			return nil, errors.Wrap(domainerrors.ErrCommitmentNotOpen, "resolve rejected")
		},
		getOwnedFn: func(_ context.Context, _, _ uuid.UUID) (*usecase.CommitmentOutput, error) {
			return &usecase.CommitmentOutput{Commitment: commitment}, nil
		},
	}
	h := NewCommitmentHandler(uc, testLogger())

	c, rec := newFormContext(e, http.MethodPost, "/commitments/"+commitment.ID.String()+"/resolve", url.Values{
		"status": {"failed"},
	})
	c.SetParamNames("id")
	c.SetParamValues(commitment.ID.String())
	c.Set("currentUser", user)

	require.NoError(t, h.Resolve(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Only open commitments can be resolved.")
}

func TestCommitmentHandler_Resolve_InvalidStatus(t *testing.T) {
	e := newTestEcho(t)
	user := testUser()
	commitment := openCommitment(user.ID)

	uc := &stubCommitmentUsecase{
		resolveFn: func(_ context.Context, _ *usecase.ResolveCommitmentInput) (*usecase.CommitmentOutput, error) {
			return nil, errors.Wrap(domainerrors.ErrInvalidOutcomeStatus, "resolve rejected")
		},
		getOwnedFn: func(_ context.Context, _, _ uuid.UUID) (*usecase.CommitmentOutput, error) {
			return &usecase.CommitmentOutput{Commitment: commitment}, nil
		},
	}
	h := NewCommitmentHandler(uc, testLogger())

	c, rec := newFormContext(e, http.MethodPost, "/commitments/"+commitment.ID.String()+"/resolve", url.Values{
		"status": {"postponed"},
	})
	c.SetParamNames("id")
	c.SetParamValues(commitment.ID.String())
	c.Set("currentUser", user)

	require.NoError(t, h.Resolve(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Invalid status selected.")
}

func TestCommitmentHandler_Resolve_NotFoundRedirects(t *testing.T) {
	e := newTestEcho(t)
	user := testUser()

	uc := &stubCommitmentUsecase{
		resolveFn: func(_ context.Context, _ *usecase.ResolveCommitmentInput) (*usecase.CommitmentOutput, error) {
			return nil, errors.Wrap(domainerrors.ErrCommitmentNotFound, "resolve rejected")
		},
	}
	h := NewCommitmentHandler(uc, testLogger())

	id := uuid.NewString()
	c, rec := newFormContext(e, http.MethodPost, "/commitments/"+id+"/resolve", url.Values{
		"status": {"completed"},
	})
	c.SetParamNames("id")
	c.SetParamValues(id)
	c.Set("currentUser", user)

	require.NoError(t, h.Resolve(c))

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/dashboard", rec.Header().Get("Location"))
}
