package auth

import (
	"context"
	"errors"

	"github.com/hugh/staffhub/internal/audit"
	"github.com/hugh/staffhub/internal/database/models"
	"gorm.io/gorm"
)

var (
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

type Service struct {
	db    *gorm.DB
	jwt   *JWTService
	audit *audit.Logger
}

func NewService(db *gorm.DB, jwt *JWTService, audit *audit.Logger) *Service {
	return &Service{db: db, jwt: jwt, audit: audit}
}

type RegisterInput struct {
	OrgName   string
	AdminName string
	Email     string
	Password  string
}

type LoginInput struct {
	Email    string
	Password string
}

type AuthResult struct {
	Token string
	User  *models.User
}

// Register creates an Organisation and its first User atomically. This is
// the only place a new Organisation comes into existence.
func (s *Service) Register(ctx context.Context, input RegisterInput) (*AuthResult, error) {
	var existing models.User
	if err := s.db.WithContext(ctx).Where("email = ?", input.Email).First(&existing).Error; err == nil {
		return nil, ErrEmailTaken
	}

	hash, err := HashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	org := models.Organisation{Name: input.OrgName}
	var user models.User

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&org).Error; err != nil {
			return err
		}

		user = models.User{
			OrganisationID: org.ID,
			Email:          input.Email,
			PasswordHash:   hash,
			Name:           input.AdminName,
		}

		return tx.Create(&user).Error
	})

	if err != nil {
		// The unique index on users.email is the backstop when two
		// registrations race past the pre-check.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}

	s.audit.Record(ctx, &org.ID, &user.ID, models.ActionOrganisationCreated, audit.Meta{
		"orgName":   input.OrgName,
		"adminName": input.AdminName,
		"email":     input.Email,
	})

	token, err := s.jwt.GenerateToken(user.ID, org.ID, user.Email)
	if err != nil {
		return nil, err
	}

	user.Organisation = &org

	return &AuthResult{Token: token, User: &user}, nil
}

// Login authenticates by email and password. Absent user and wrong password
// return the same ErrInvalidCredentials so callers cannot enumerate accounts.
func (s *Service) Login(ctx context.Context, input LoginInput) (*AuthResult, error) {
	var user models.User
	if err := s.db.WithContext(ctx).
		Preload("Organisation").
		Where("email = ?", input.Email).
		First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if !CheckPassword(input.Password, user.PasswordHash) {
		return nil, ErrInvalidCredentials
	}

	s.audit.Record(ctx, &user.OrganisationID, &user.ID, models.ActionUserLogin, audit.Meta{
		"email": user.Email,
	})

	token, err := s.jwt.GenerateToken(user.ID, user.OrganisationID, user.Email)
	if err != nil {
		return nil, err
	}

	return &AuthResult{Token: token, User: &user}, nil
}

// Logout records the event. The token itself stays valid until expiry;
// stateless tokens have no revocation here.
func (s *Service) Logout(ctx context.Context, identity Identity) {
	s.audit.Record(ctx, &identity.OrganisationID, &identity.UserID, models.ActionUserLogout, audit.Meta{
		"email": identity.Email,
	})
}
