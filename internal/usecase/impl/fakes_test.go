package impl

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"maps"
	"sort"
	"strings"
	"time"

	"pledger/internal/domain/entity"
	"pledger/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// In-memory fakes standing in for the persistence layer. They implement the
// repository interfaces directly so the services under test run their real
// control flow, including the transaction closure.

type fakeUserRepository struct {
	users map[uuid.UUID]*entity.User
}

func newFakeUserRepository() *fakeUserRepository {
	return &fakeUserRepository{users: make(map[uuid.UUID]*entity.User)}
}

func (r *fakeUserRepository) Create(_ context.Context, user *entity.User) error {
	for _, existing := range r.users {
		if existing.Username == user.Username {
			return repository.ErrUsernameExists
		}
	}

	user.ID = uuid.New()
	user.CreatedAt = time.Now()
	stored := *user
	r.users[user.ID] = &stored

	return nil
}

func (r *fakeUserRepository) FindByID(_ context.Context, id uuid.UUID) (*entity.User, error) {
	user, ok := r.users[id]
	if !ok {
		return nil, repository.ErrUserNotFound
	}
	found := *user

	return &found, nil
}

func (r *fakeUserRepository) FindByUsername(_ context.Context, username string) (*entity.User, error) {
	for _, user := range r.users {
		if user.Username == username {
			found := *user

			return &found, nil
		}
	}

	return nil, repository.ErrUserNotFound
}

type fakeCommitmentRepository struct {
	commitments map[uuid.UUID]*entity.Commitment
}

func newFakeCommitmentRepository() *fakeCommitmentRepository {
	return &fakeCommitmentRepository{commitments: make(map[uuid.UUID]*entity.Commitment)}
}

func (r *fakeCommitmentRepository) Create(_ context.Context, commitment *entity.Commitment) error {
	commitment.ID = uuid.New()
	commitment.CreatedAt = time.Now()
	stored := *commitment
	r.commitments[commitment.ID] = &stored

	return nil
}

func (r *fakeCommitmentRepository) FindOwned(_ context.Context, userID, id uuid.UUID) (*entity.Commitment, error) {
	commitment, ok := r.commitments[id]
	if !ok || commitment.UserID != userID {
		return nil, repository.ErrCommitmentNotFound
	}
	found := *commitment

	return &found, nil
}

func (r *fakeCommitmentRepository) ListByUser(_ context.Context, userID uuid.UUID) ([]*entity.Commitment, error) {
	var result []*entity.Commitment
	for _, commitment := range r.commitments {
		if commitment.UserID == userID {
			found := *commitment
			result = append(result, &found)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Deadline.Before(result[j].Deadline)
	})

	return result, nil
}

func (r *fakeCommitmentRepository) UpdateOutcome(_ context.Context, commitment *entity.Commitment) error {
	stored, ok := r.commitments[commitment.ID]
	if !ok || stored.UserID != commitment.UserID {
		return repository.ErrCommitmentNotFound
	}

	stored.Status = commitment.Status
	stored.OutcomeNotes = commitment.OutcomeNotes

	return nil
}

type fakeSessionRepository struct {
	sessions map[string]*entity.Session
}

func newFakeSessionRepository() *fakeSessionRepository {
	return &fakeSessionRepository{sessions: make(map[string]*entity.Session)}
}

func (r *fakeSessionRepository) Create(_ context.Context, session *entity.Session) error {
	session.ID = uuid.New()
	session.CreatedAt = time.Now()
	stored := *session
	r.sessions[session.TokenHash] = &stored

	return nil
}

func (r *fakeSessionRepository) FindByTokenHash(_ context.Context, tokenHash string) (*entity.Session, error) {
	session, ok := r.sessions[tokenHash]
	if !ok {
		return nil, repository.ErrSessionNotFound
	}
	if session.Expired(time.Now()) {
		return nil, repository.ErrSessionExpired
	}
	found := *session

	return &found, nil
}

func (r *fakeSessionRepository) DeleteByTokenHash(_ context.Context, tokenHash string) error {
	delete(r.sessions, tokenHash)

	return nil
}

// fakeTransactionManager hands the closure a factory over the shared fakes.
// Rollback is not simulated; tests assert on returned errors instead.
type fakeTransactionManager struct {
	factory *fakeRepositoryFactory
}

func (m *fakeTransactionManager) Execute(_ context.Context, fn func(repository.RepositoryFactory) error) error {
	return fn(m.factory)
}

// rollbackTransactionManager snapshots the fake stores before running the
// closure and restores them when it fails, mimicking a real rollback.
type rollbackTransactionManager struct {
	factory        *fakeRepositoryFactory
	userRepo       *fakeUserRepository
	commitmentRepo *fakeCommitmentRepository
	sessionRepo    *fakeSessionRepository
}

func (m *rollbackTransactionManager) Execute(_ context.Context, fn func(repository.RepositoryFactory) error) error {
	users := maps.Clone(m.userRepo.users)
	commitments := maps.Clone(m.commitmentRepo.commitments)
	sessions := maps.Clone(m.sessionRepo.sessions)

	if err := fn(m.factory); err != nil {
		m.userRepo.users = users
		m.commitmentRepo.commitments = commitments
		m.sessionRepo.sessions = sessions

		return err
	}

	return nil
}

type fakeRepositoryFactory struct {
	userRepo       repository.UserRepository
	commitmentRepo repository.CommitmentRepository
	sessionRepo    repository.SessionRepository
}

func (f *fakeRepositoryFactory) UserRepo() repository.UserRepository {
	return f.userRepo
}

func (f *fakeRepositoryFactory) CommitmentRepo() repository.CommitmentRepository {
	return f.commitmentRepo
}

func (f *fakeRepositoryFactory) SessionRepo() repository.SessionRepository {
	return f.sessionRepo
}

// fakePasswordHasher marks hashes deterministically so tests stay fast.
type fakePasswordHasher struct{}

func (fakePasswordHasher) Hash(password string) (string, error) {
	return "hashed:" + password, nil
}

func (fakePasswordHasher) Check(password, hash string) bool {
	return hash == "hashed:"+password
}

// fakeSessionTokenService embeds the user id in the cookie value so Verify
// can recover it without real signing.
type fakeSessionTokenService struct {
	issued int
}

func (s *fakeSessionTokenService) Issue(userID uuid.UUID, _ time.Duration) (string, string, error) {
	s.issued++
	cookieValue := userID.String() + "." + uuid.NewString()

	return cookieValue, fakeHashToken(cookieValue), nil
}

func (s *fakeSessionTokenService) Verify(cookieValue string) (uuid.UUID, string, error) {
	idPart, _, ok := strings.Cut(cookieValue, ".")
	if !ok {
		return uuid.Nil, "", errors.New("malformed session cookie")
	}

	userID, err := uuid.Parse(idPart)
	if err != nil {
		return uuid.Nil, "", err
	}

	return userID, fakeHashToken(cookieValue), nil
}

func fakeHashToken(token string) string {
	sum := sha256.Sum256([]byte(token))

	return hex.EncodeToString(sum[:])
}

// failingSessionRepository fails Create so tests can drive the rollback leg
// of signup.
type failingSessionRepository struct {
	*fakeSessionRepository
	createErr error
}

func (r *failingSessionRepository) Create(ctx context.Context, session *entity.Session) error {
	if r.createErr != nil {
		return r.createErr
	}

	return r.fakeSessionRepository.Create(ctx, session)
}

// failingCommitmentRepository fails UpdateOutcome so tests can drive the
// rollback leg of resolve.
type failingCommitmentRepository struct {
	*fakeCommitmentRepository
	updateErr error
}

func (r *failingCommitmentRepository) UpdateOutcome(ctx context.Context, commitment *entity.Commitment) error {
	if r.updateErr != nil {
		return r.updateErr
	}

	return r.fakeCommitmentRepository.UpdateOutcome(ctx, commitment)
}

// failingSessionTokenService fails Issue while delegating everything else.
type failingSessionTokenService struct {
	fakeSessionTokenService
	issueErr error
}

func (s *failingSessionTokenService) Issue(userID uuid.UUID, ttl time.Duration) (string, string, error) {
	if s.issueErr != nil {
		return "", "", s.issueErr
	}

	return s.fakeSessionTokenService.Issue(userID, ttl)
}
