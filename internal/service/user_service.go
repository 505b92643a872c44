package service

import (
	"context"
	"net/mail"
	"time"

	"github.com/Drasasse/gestion-commerce-sub002/internal/auth"
	"github.com/Drasasse/gestion-commerce-sub002/internal/model"
	"github.com/Drasasse/gestion-commerce-sub002/internal/repository"
	"github.com/Drasasse/gestion-commerce-sub002/pkg/apperror"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// --- DTOs ---

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

type CreateUserRequest struct {
	Nom        string `json:"nom"`
	Email      string `json:"email"`
	Password   string `json:"password"`
	Role       string `json:"role"`
	BoutiqueID string `json:"boutique_id"`
}

type UpdateUserRequest struct {
	Nom        *string `json:"nom"`
	Email      *string `json:"email"`
	Password   *string `json:"password"`
	Role       *string `json:"role"`
	BoutiqueID *string `json:"boutique_id"` // empty string unassigns the boutique
}

type UserResponse struct {
	ID          uuid.UUID  `json:"id"`
	Nom         string     `json:"nom"`
	Email       string     `json:"email"`
	Role        string     `json:"role"`
	BoutiqueID  *uuid.UUID `json:"boutique_id"`
	BoutiqueNom string     `json:"boutique_nom,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// --- Interface ---

type UserService interface {
	Login(ctx context.Context, req LoginRequest) (LoginResponse, error)
	GetMe(ctx context.Context, session auth.Session) (UserResponse, error)
	CreateUser(ctx context.Context, session auth.Session, req CreateUserRequest) (UserResponse, error)
	GetUser(ctx context.Context, session auth.Session, id string) (UserResponse, error)
	UpdateUser(ctx context.Context, session auth.Session, id string, req UpdateUserRequest) (UserResponse, error)
	DeleteUser(ctx context.Context, session auth.Session, id string) error
	ListUsers(ctx context.Context, session auth.Session, requestedBoutique, search string, page, limit int) ([]UserResponse, int64, error)
}

type userService struct {
	userRepo     repository.UserRepository
	boutiqueRepo repository.BoutiqueRepository
	jwtSecret    []byte
}

func NewUserService(userRepo repository.UserRepository, boutiqueRepo repository.BoutiqueRepository, jwtSecret []byte) UserService {
	return &userService{userRepo: userRepo, boutiqueRepo: boutiqueRepo, jwtSecret: jwtSecret}
}

// --- Implementation ---

func (s *userService) Login(ctx context.Context, req LoginRequest) (LoginResponse, error) {
	user, err := s.userRepo.FindByEmail(ctx, req.Email)
	if err != nil {
		// Same message for unknown email and bad password
		return LoginResponse{}, apperror.Authentication("invalid email or password")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return LoginResponse{}, apperror.Authentication("invalid email or password")
	}

	session := auth.Session{UserID: user.ID, Role: user.Role, BoutiqueID: user.BoutiqueID}
	token, err := auth.IssueToken(s.jwtSecret, session)
	if err != nil {
		return LoginResponse{}, apperror.Internal(err)
	}

	return LoginResponse{Token: token, User: toUserResponse(*user)}, nil
}

func (s *userService) GetMe(ctx context.Context, session auth.Session) (UserResponse, error) {
	user, err := s.userRepo.FindByID(ctx, session.UserID)
	if err != nil {
		return UserResponse{}, notFoundOr(err, "user not found")
	}
	return toUserResponse(*user), nil
}

func (s *userService) CreateUser(ctx context.Context, session auth.Session, req CreateUserRequest) (UserResponse, error) {
	if err := auth.RequireAdmin(session); err != nil {
		return UserResponse{}, err
	}

	var violations []apperror.FieldViolation
	if req.Nom == "" {
		violations = append(violations, apperror.FieldViolation{Field: "nom", Message: "nom is required"})
	}
	if req.Email == "" {
		violations = append(violations, apperror.FieldViolation{Field: "email", Message: "email is required"})
	} else if _, err := mail.ParseAddress(req.Email); err != nil {
		violations = append(violations, apperror.FieldViolation{Field: "email", Message: "invalid email format"})
	}
	if len(req.Password) < 6 {
		violations = append(violations, apperror.FieldViolation{Field: "password", Message: "password must be at least 6 characters"})
	}
	if !auth.ValidRole(req.Role) {
		violations = append(violations, apperror.FieldViolation{Field: "role", Message: "role must be one of: ADMIN, GESTIONNAIRE"})
	}
	if req.Role == auth.RoleGestionnaire && req.BoutiqueID == "" {
		violations = append(violations, apperror.FieldViolation{Field: "boutique_id", Message: "a gestionnaire must be assigned to a boutique"})
	}
	if len(violations) > 0 {
		return UserResponse{}, apperror.Validation(violations...)
	}

	var boutiqueID *uuid.UUID
	if req.BoutiqueID != "" {
		bid, err := uuid.Parse(req.BoutiqueID)
		if err != nil {
			return UserResponse{}, apperror.Validation(apperror.FieldViolation{Field: "boutique_id", Message: "invalid boutique_id"})
		}
		if _, err := s.boutiqueRepo.FindByID(ctx, bid); err != nil {
			return UserResponse{}, notFoundOr(err, "boutique not found")
		}
		boutiqueID = &bid
	}

	if _, err := s.userRepo.FindByEmail(ctx, req.Email); err == nil {
		return UserResponse{}, apperror.Conflict("a user with this email already exists")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return UserResponse{}, apperror.Internal(err)
	}

	user := &model.User{
		Nom:        req.Nom,
		Email:      req.Email,
		Password:   string(hashed),
		Role:       req.Role,
		BoutiqueID: boutiqueID,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		if isDuplicateKey(err) {
			return UserResponse{}, apperror.Conflict("a user with this email already exists")
		}
		return UserResponse{}, apperror.Internal(err)
	}

	return toUserResponse(*user), nil
}

func (s *userService) GetUser(ctx context.Context, session auth.Session, id string) (UserResponse, error) {
	if err := auth.RequireAdmin(session); err != nil {
		return UserResponse{}, err
	}
	uid, err := uuid.Parse(id)
	if err != nil {
		return UserResponse{}, apperror.ValidationMsg("invalid user ID")
	}

	user, err := s.userRepo.FindByID(ctx, uid)
	if err != nil {
		return UserResponse{}, notFoundOr(err, "user not found")
	}
	return toUserResponse(*user), nil
}

func (s *userService) UpdateUser(ctx context.Context, session auth.Session, id string, req UpdateUserRequest) (UserResponse, error) {
	if err := auth.RequireAdmin(session); err != nil {
		return UserResponse{}, err
	}
	uid, err := uuid.Parse(id)
	if err != nil {
		return UserResponse{}, apperror.ValidationMsg("invalid user ID")
	}

	user, err := s.userRepo.FindByID(ctx, uid)
	if err != nil {
		return UserResponse{}, notFoundOr(err, "user not found")
	}

	if req.Nom != nil {
		if *req.Nom == "" {
			return UserResponse{}, apperror.Validation(apperror.FieldViolation{Field: "nom", Message: "nom cannot be empty"})
		}
		user.Nom = *req.Nom
	}
	if req.Email != nil && *req.Email != user.Email {
		if _, err := mail.ParseAddress(*req.Email); err != nil {
			return UserResponse{}, apperror.Validation(apperror.FieldViolation{Field: "email", Message: "invalid email format"})
		}
		if _, err := s.userRepo.FindByEmail(ctx, *req.Email); err == nil {
			return UserResponse{}, apperror.Conflict("a user with this email already exists")
		}
		user.Email = *req.Email
	}
	if req.Password != nil {
		if len(*req.Password) < 6 {
			return UserResponse{}, apperror.Validation(apperror.FieldViolation{Field: "password", Message: "password must be at least 6 characters"})
		}
		hashed, err := bcrypt.GenerateFromPassword([]byte(*req.Password), bcrypt.DefaultCost)
		if err != nil {
			return UserResponse{}, apperror.Internal(err)
		}
		user.Password = string(hashed)
	}
	if req.Role != nil {
		if !auth.ValidRole(*req.Role) {
			return UserResponse{}, apperror.Validation(apperror.FieldViolation{Field: "role", Message: "role must be one of: ADMIN, GESTIONNAIRE"})
		}
		user.Role = *req.Role
	}
	if req.BoutiqueID != nil {
		if *req.BoutiqueID == "" {
			user.BoutiqueID = nil
			user.Boutique = nil
		} else {
			bid, err := uuid.Parse(*req.BoutiqueID)
			if err != nil {
				return UserResponse{}, apperror.Validation(apperror.FieldViolation{Field: "boutique_id", Message: "invalid boutique_id"})
			}
			if _, err := s.boutiqueRepo.FindByID(ctx, bid); err != nil {
				return UserResponse{}, notFoundOr(err, "boutique not found")
			}
			user.BoutiqueID = &bid
		}
	}
	if user.Role == auth.RoleGestionnaire && user.BoutiqueID == nil {
		return UserResponse{}, apperror.Validation(apperror.FieldViolation{Field: "boutique_id", Message: "a gestionnaire must be assigned to a boutique"})
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		if isDuplicateKey(err) {
			return UserResponse{}, apperror.Conflict("a user with this email already exists")
		}
		return UserResponse{}, apperror.Internal(err)
	}

	return toUserResponse(*user), nil
}

func (s *userService) DeleteUser(ctx context.Context, session auth.Session, id string) error {
	if err := auth.RequireAdmin(session); err != nil {
		return err
	}
	uid, err := uuid.Parse(id)
	if err != nil {
		return apperror.ValidationMsg("invalid user ID")
	}
	if uid == session.UserID {
		return apperror.ValidationMsg("cannot delete your own account")
	}

	if _, err := s.userRepo.FindByID(ctx, uid); err != nil {
		return notFoundOr(err, "user not found")
	}
	if err := s.userRepo.Delete(ctx, uid); err != nil {
		return apperror.Internal(err)
	}
	return nil
}

func (s *userService) ListUsers(ctx context.Context, session auth.Session, requestedBoutique, search string, page, limit int) ([]UserResponse, int64, error) {
	if err := auth.RequireAdmin(session); err != nil {
		return nil, 0, err
	}
	scope, err := auth.Resolve(session, requestedBoutique)
	if err != nil {
		return nil, 0, err
	}

	users, total, err := s.userRepo.List(ctx, scope.BoutiqueID, search, page, limit)
	if err != nil {
		return nil, 0, apperror.Internal(err)
	}

	res := make([]UserResponse, 0, len(users))
	for _, u := range users {
		res = append(res, toUserResponse(u))
	}
	return res, total, nil
}

func toUserResponse(u model.User) UserResponse {
	res := UserResponse{
		ID:         u.ID,
		Nom:        u.Nom,
		Email:      u.Email,
		Role:       u.Role,
		BoutiqueID: u.BoutiqueID,
		CreatedAt:  u.CreatedAt,
		UpdatedAt:  u.UpdatedAt,
	}
	if u.Boutique != nil {
		res.BoutiqueNom = u.Boutique.Nom
	}
	return res
}
