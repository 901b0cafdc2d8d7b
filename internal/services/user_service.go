package services

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/AnshRaj112/calsum-backend/internal/models"
	"github.com/AnshRaj112/calsum-backend/pkg/utils"
	"github.com/jmoiron/sqlx"
)

const (
	DefaultPageSize = 10
	MaxPageSize     = 100
)

const userColumns = `id, username, email, password_hash, is_admin, created_at`

// AdminAccount names the account granted the admin role at registration.
// With Email empty the username alone decides, so the first visitor to
// register it becomes admin.
type AdminAccount struct {
	Username string
	Email    string
}

func (a AdminAccount) matches(username, email string) bool {
	if a.Username == "" || username != a.Username {
		return false
	}
	return a.Email == "" || email == a.Email
}

// UserService is the credential store plus the admin view of users.
type UserService struct {
	db            *sqlx.DB
	tokens        *TokenService
	cache         *CacheService
	admin         AdminAccount
	now           func() time.Time
	hashPassword  func(string) (string, error)
	dummyHash     string
}

func NewUserService(db *sqlx.DB, tokens *TokenService, cache *CacheService, admin AdminAccount) *UserService {
	s := &UserService{
		db:            db,
		tokens:        tokens,
		cache:         cache,
		admin:         AdminAccount{Username: utils.NormalizeUsername(admin.Username), Email: utils.NormalizeEmail(admin.Email)},
		now:           time.Now,
		hashPassword:  utils.HashPassword,
	}
	// Compared against on unknown usernames so both login failures cost the same.
	s.dummyHash, _ = utils.HashPassword("calsum-dummy-password")
	return s
}

// DeletedUser describes what a user deletion removed.
type DeletedUser struct {
	User             models.User
	FoodsRemoved     int64
	ExercisesRemoved int64
}

// Register creates an account and returns it with a fresh token.
func (s *UserService) Register(ctx context.Context, req models.RegisterRequest) (models.AuthResponse, error) {
	if err := utils.ValidateUsername(req.Username); err != nil {
		return models.AuthResponse{}, validationError(err.Error())
	}
	if err := utils.ValidateEmail(req.Email); err != nil {
		return models.AuthResponse{}, validationError(err.Error())
	}
	if err := utils.ValidatePassword(req.Password); err != nil {
		return models.AuthResponse{}, validationError(err.Error())
	}

	username := utils.NormalizeUsername(req.Username)
	email := utils.NormalizeEmail(req.Email)

	hash, err := s.hashPassword(req.Password)
	if err != nil {
		return models.AuthResponse{}, &Error{Kind: KindStore, Message: "Error hashing password", Err: err}
	}

	user := models.User{
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		IsAdmin:      s.admin.matches(username, email),
		CreatedAt:    s.now().UTC().Truncate(time.Microsecond),
	}
	query := s.db.Rebind(`INSERT INTO users (username, email, password_hash, is_admin, created_at)
		VALUES (?, ?, ?, ?, ?) RETURNING id`)
	err = s.db.QueryRowxContext(ctx, query, user.Username, user.Email, user.PasswordHash, user.IsAdmin, user.CreatedAt).Scan(&user.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return models.AuthResponse{}, errDuplicateCredential
		}
		return models.AuthResponse{}, storeError(err)
	}

	return s.authResponse(user, "User registered successfully")
}

// Login checks the credentials. Unknown user and wrong password fail identically.
func (s *UserService) Login(ctx context.Context, req models.LoginRequest) (models.AuthResponse, error) {
	if strings.TrimSpace(req.Username) == "" || req.Password == "" {
		return models.AuthResponse{}, validationError("Username and password are required")
	}

	user, err := s.byUsername(ctx, utils.NormalizeUsername(req.Username))
	if IsKind(err, KindNotFound) {
		_, _ = utils.VerifyPassword(req.Password, s.dummyHash)
		return models.AuthResponse{}, errInvalidCredentials
	}
	if err != nil {
		return models.AuthResponse{}, err
	}

	ok, err := utils.VerifyPassword(req.Password, user.PasswordHash)
	if err != nil || !ok {
		return models.AuthResponse{}, errInvalidCredentials
	}
	return s.authResponse(user, "Login successful")
}

func (s *UserService) authResponse(user models.User, message string) (models.AuthResponse, error) {
	token, err := s.tokens.Issue(models.Identity{ID: user.ID, Username: user.Username})
	if err != nil {
		return models.AuthResponse{}, &Error{Kind: KindStore, Message: "Error generating token", Err: err}
	}
	return models.AuthResponse{
		ID:       formatID(user.ID),
		Username: user.Username,
		Email:    user.Email,
		Token:    token,
		Message:  message,
	}, nil
}

// Profile returns the caller's own account.
func (s *UserService) Profile(ctx context.Context, id int64) (models.UserResponse, error) {
	user, err := s.byID(ctx, id)
	if err != nil {
		return models.UserResponse{}, err
	}
	return FormatUser(user), nil
}

// IsAdmin reads the role from the store, so revoking it takes effect immediately.
func (s *UserService) IsAdmin(ctx context.Context, id int64) (bool, error) {
	var isAdmin bool
	err := s.db.GetContext(ctx, &isAdmin, s.db.Rebind(`SELECT is_admin FROM users WHERE id = ?`), id)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, storeError(err)
	}
	return isAdmin, nil
}

// escapeLike makes search match literally inside a LIKE pattern.
func escapeLike(search string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return "%" + r.Replace(search) + "%"
}

// ListUsers pages through users newest first, optionally filtered by a
// substring of username or email.
func (s *UserService) ListUsers(ctx context.Context, page, limit int, search string) (models.UserPage, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = DefaultPageSize
	}
	if limit > MaxPageSize {
		limit = MaxPageSize
	}
	search = strings.TrimSpace(search)

	where := ""
	var args []interface{}
	if search != "" {
		pattern := escapeLike(search)
		where = ` WHERE username LIKE ? ESCAPE '\' OR email LIKE ? ESCAPE '\'`
		args = append(args, pattern, pattern)
	}

	var total int64
	if err := s.db.GetContext(ctx, &total, s.db.Rebind(`SELECT COUNT(*) FROM users`+where), args...); err != nil {
		return models.UserPage{}, storeError(err)
	}

	result := models.UserPage{
		Users:      []models.UserResponse{},
		Total:      total,
		Page:       page,
		TotalPages: int((total + int64(limit) - 1) / int64(limit)),
	}
	// Past the last page there is nothing to fetch, and (page-1)*limit could overflow.
	if page > result.TotalPages {
		return result, nil
	}

	var rows []models.User
	offset := int64(page-1) * int64(limit)
	query := s.db.Rebind(`SELECT ` + userColumns + ` FROM users` + where + ` ORDER BY created_at DESC, id DESC LIMIT ? OFFSET ?`)
	if err := s.db.SelectContext(ctx, &rows, query, append(args, limit, offset)...); err != nil {
		return models.UserPage{}, storeError(err)
	}
	for _, u := range rows {
		result.Users = append(result.Users, FormatUser(u))
	}
	return result, nil
}

// GetUser returns a user with the number of foods and exercises they own.
func (s *UserService) GetUser(ctx context.Context, rawID string) (models.UserDetail, error) {
	id, ok := parseID(rawID)
	if !ok {
		return models.UserDetail{}, notFound("User not found")
	}
	user, err := s.byID(ctx, id)
	if err != nil {
		return models.UserDetail{}, err
	}

	detail := models.UserDetail{UserResponse: FormatUser(user)}
	if err := s.db.GetContext(ctx, &detail.FoodsCount, s.db.Rebind(`SELECT COUNT(*) FROM foods WHERE user_id = ?`), id); err != nil {
		return models.UserDetail{}, storeError(err)
	}
	if err := s.db.GetContext(ctx, &detail.ExercisesCount, s.db.Rebind(`SELECT COUNT(*) FROM exercises WHERE user_id = ?`), id); err != nil {
		return models.UserDetail{}, storeError(err)
	}
	return detail, nil
}

// DeleteUser removes a user's foods, exercises and account in one transaction.
func (s *UserService) DeleteUser(ctx context.Context, rawID string) (DeletedUser, error) {
	id, ok := parseID(rawID)
	if !ok {
		return DeletedUser{}, notFound("User not found")
	}
	user, err := s.byID(ctx, id)
	if err != nil {
		return DeletedUser{}, err
	}

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return DeletedUser{}, storeError(err)
	}
	defer tx.Rollback()

	result := DeletedUser{User: user}
	steps := []struct {
		query   string
		removed *int64
	}{
		{`DELETE FROM foods WHERE user_id = ?`, &result.FoodsRemoved},
		{`DELETE FROM exercises WHERE user_id = ?`, &result.ExercisesRemoved},
	}
	for _, step := range steps {
		res, err := tx.ExecContext(ctx, tx.Rebind(step.query), id)
		if err != nil {
			return DeletedUser{}, storeError(err)
		}
		*step.removed, _ = res.RowsAffected()
	}

	res, err := tx.ExecContext(ctx, tx.Rebind(`DELETE FROM users WHERE id = ?`), id)
	if err != nil {
		return DeletedUser{}, storeError(err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return DeletedUser{}, notFound("User not found")
	}
	if err := tx.Commit(); err != nil {
		return DeletedUser{}, storeError(err)
	}

	invalidateSummaries(ctx, s.cache, id)
	return result, nil
}

func (s *UserService) byID(ctx context.Context, id int64) (models.User, error) {
	var user models.User
	err := s.db.GetContext(ctx, &user, s.db.Rebind(`SELECT `+userColumns+` FROM users WHERE id = ?`), id)
	if errors.Is(err, sql.ErrNoRows) {
		return models.User{}, notFound("User not found")
	}
	if err != nil {
		return models.User{}, storeError(err)
	}
	return user, nil
}

func (s *UserService) byUsername(ctx context.Context, username string) (models.User, error) {
	var user models.User
	err := s.db.GetContext(ctx, &user, s.db.Rebind(`SELECT `+userColumns+` FROM users WHERE username = ?`), username)
	if errors.Is(err, sql.ErrNoRows) {
		return models.User{}, notFound("User not found")
	}
	if err != nil {
		return models.User{}, storeError(err)
	}
	return user, nil
}
