package application

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
	"github.com/sirupsen/logrus"

	"github.com/igorsily/users-api/internal/domain/entity"
	repo "github.com/igorsily/users-api/internal/domain/repository"
	"github.com/igorsily/users-api/pkg/apperrors"
	"github.com/igorsily/users-api/pkg/helpers"
	"github.com/igorsily/users-api/pkg/mailer"
)

// Service enforces the user business invariants: uniqueness before any write,
// password hashing, and not-found translation. It is the only layer that
// mutates persisted state. Logger, Publisher and ES are optional
// collaborators; a nil value disables the corresponding side channel.
type Service struct {
	Repo         repo.UserRepository
	Logger       *logrus.Logger
	Publisher    *helpers.RabbitPublisher
	ES           *elasticsearch.Client
	ESUsersIndex string
}

func NewService(r repo.UserRepository, logger *logrus.Logger, pub *helpers.RabbitPublisher, es *elasticsearch.Client, esUsersIndex string) *Service {
	return &Service{
		Repo:         r,
		Logger:       logger,
		Publisher:    pub,
		ES:           es,
		ESUsersIndex: esUsersIndex,
	}
}

type CreateUserInput struct {
	Email     string
	Username  string
	Password  string
	FirstName *string
	LastName  *string
}

type UpdateUserInput struct {
	FirstName *string
	LastName  *string
}

// conflictFromConstraint maps a storage unique-constraint name to the same
// ConflictError the pre-checks produce, so a create that races past the
// pre-checks still reports 409 instead of a generic failure.
func conflictFromConstraint(constraint string) *apperrors.Error {
	switch {
	case strings.Contains(constraint, "email"):
		return apperrors.NewConflict("Email already exists")
	case strings.Contains(constraint, "username"):
		return apperrors.NewConflict("Username already exists")
	default:
		return apperrors.NewConflict("User already exists")
	}
}

// CreateUser checks email uniqueness first, then username: when both are
// duplicated the caller observes the email conflict. The password is hashed
// only after both checks pass.
func (s *Service) CreateUser(ctx context.Context, in CreateUserInput) (*entity.User, error) {
	if s.Logger != nil {
		s.Logger.WithField("email", in.Email).Info("creating user")
	}

	existing, err := s.Repo.FindByEmail(ctx, in.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperrors.NewConflict("Email already exists")
	}

	existing, err = s.Repo.FindByUsername(ctx, in.Username)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperrors.NewConflict("Username already exists")
	}

	hash, err := helpers.HashPassword(in.Password)
	if err != nil {
		return nil, err
	}

	u := &entity.User{
		Email:        in.Email,
		Username:     in.Username,
		PasswordHash: hash,
		FirstName:    in.FirstName,
		LastName:     in.LastName,
	}
	if err := s.Repo.Create(ctx, u); err != nil {
		var uv *repo.UniqueViolationError
		if errors.As(err, &uv) {
			return nil, conflictFromConstraint(uv.Constraint)
		}
		return nil, err
	}

	s.enqueueVerifyEmail(ctx, u)
	s.indexUser(ctx, u)
	return u, nil
}

func (s *Service) GetUserByID(ctx context.Context, id string) (*entity.User, error) {
	u, err := s.Repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, apperrors.NewNotFound("User")
	}
	return u, nil
}

// UpdateUser merges the profile fields. It never re-checks uniqueness: the
// update path cannot touch email or username.
func (s *Service) UpdateUser(ctx context.Context, id string, in UpdateUserInput) (*entity.User, error) {
	u, err := s.Repo.Update(ctx, id, repo.UpdateUserFields{FirstName: in.FirstName, LastName: in.LastName})
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, apperrors.NewNotFound("User")
	}
	s.indexUser(ctx, u)
	return u, nil
}

func (s *Service) DeleteUser(ctx context.Context, id string) error {
	deleted, err := s.Repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return apperrors.NewNotFound("User")
	}
	s.removeUserIndex(ctx, id)
	return nil
}

// ListUsers converts the 1-based page number to a zero-based offset. Bounds
// checks on page and pageSize belong to the schema layer.
func (s *Service) ListUsers(ctx context.Context, page, pageSize int) ([]entity.User, error) {
	offset := (page - 1) * pageSize
	return s.Repo.FindAll(ctx, pageSize, offset)
}

// enqueueVerifyEmail publishes a verification email job. Best-effort: a
// publish failure never fails the create.
func (s *Service) enqueueVerifyEmail(ctx context.Context, u *entity.User) {
	if s.Publisher == nil {
		return
	}
	job := mailer.EmailJob{
		To:       u.Email,
		Template: mailer.TemplateVerifyEmail,
		Data: map[string]any{
			"Username": u.Username,
		},
	}
	if err := s.Publisher.PublishJSON(ctx, job); err != nil && s.Logger != nil {
		s.Logger.WithError(err).WithField("user_id", u.ID).Warn("verify email enqueue failed")
	}
}

// indexUser mirrors the searchable profile fields into Elasticsearch. The
// password hash is never indexed. Best-effort.
func (s *Service) indexUser(ctx context.Context, u *entity.User) {
	if s.ES == nil || s.ESUsersIndex == "" {
		return
	}
	doc := map[string]any{
		"id":         u.ID,
		"email":      u.Email,
		"username":   u.Username,
		"first_name": u.FirstName,
		"last_name":  u.LastName,
		"created_at": u.CreatedAt.Format(time.RFC3339Nano),
		"updated_at": u.UpdatedAt.Format(time.RFC3339Nano),
	}
	b, _ := json.Marshal(doc)
	req := esapi.IndexRequest{Index: s.ESUsersIndex, DocumentID: u.ID, Body: strings.NewReader(string(b)), Refresh: "false"}
	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	res, err := req.Do(c, s.ES)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("user_id", u.ID).Warn("es index failed")
		}
		return
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() && s.Logger != nil {
		s.Logger.WithField("status", res.Status()).WithField("user_id", u.ID).Warn("es index response error")
	}
}

func (s *Service) removeUserIndex(ctx context.Context, id string) {
	if s.ES == nil || s.ESUsersIndex == "" {
		return
	}
	req := esapi.DeleteRequest{Index: s.ESUsersIndex, DocumentID: id}
	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	res, err := req.Do(c, s.ES)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("user_id", id).Warn("es delete failed")
		}
		return
	}
	_ = res.Body.Close()
}

// SearchUsers performs a multi_match search on email, username and names.
func (s *Service) SearchUsers(ctx context.Context, q string, size int) ([]map[string]any, error) {
	if s.ES == nil || s.ESUsersIndex == "" {
		return []map[string]any{}, nil
	}
	if size <= 0 || size > 50 {
		size = 10
	}
	query := map[string]any{
		"query": map[string]any{
			"multi_match": map[string]any{
				"query":  q,
				"fields": []string{"email^2", "username^2", "first_name", "last_name"},
			},
		},
		"size": size,
	}
	b, _ := json.Marshal(query)

	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	res, err := s.ES.Search(
		s.ES.Search.WithContext(c),
		s.ES.Search.WithIndex(s.ESUsersIndex),
		s.ES.Search.WithBody(strings.NewReader(string(b))),
	)
	if err != nil {
		return nil, err
	}
	defer func() { _ = res.Body.Close() }()

	var parsed struct {
		Hits struct {
			Hits []struct {
				ID     string         `json:"_id"`
				Source map[string]any `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, err
	}

	out := make([]map[string]any, 0, len(parsed.Hits.Hits))
	for _, h := range parsed.Hits.Hits {
		out = append(out, h.Source)
	}
	return out, nil
}
