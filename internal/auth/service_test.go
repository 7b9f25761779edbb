package auth_test

import (
	"context"
	"testing"

	"github.com/hugh/staffhub/internal/audit"
	"github.com/hugh/staffhub/internal/auth"
	"github.com/hugh/staffhub/internal/database/models"
	"github.com/hugh/staffhub/internal/testutil"
	"github.com/hugh/staffhub/pkg/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupAuthService(t *testing.T) (*auth.Service, *gorm.DB) {
	t.Helper()

	db := testutil.SetupTestDB(t)
	t.Cleanup(func() { testutil.CleanupTestDB(t, db) })

	logger := util.NewLogger("development")
	auditLogger := audit.NewLogger(db, logger)
	return auth.NewService(db, testutil.CreateTestJWTService(), auditLogger), db
}

func TestService_Register(t *testing.T) {
	svc, db := setupAuthService(t)
	ctx := context.Background()

	t.Run("creates organisation and user together", func(t *testing.T) {
		result, err := svc.Register(ctx, auth.RegisterInput{
			OrgName:   "Acme",
			AdminName: "Ann",
			Email:     "ann@acme.com",
			Password:  "secret1",
		})
		require.NoError(t, err)
		assert.NotEmpty(t, result.Token)
		assert.Equal(t, "Ann", result.User.Name)
		require.NotNil(t, result.User.Organisation)
		assert.Equal(t, "Acme", result.User.Organisation.Name)
		assert.Equal(t, result.User.Organisation.ID, result.User.OrganisationID)
	})

	t.Run("stores password as hash only", func(t *testing.T) {
		result, err := svc.Register(ctx, auth.RegisterInput{
			OrgName:   "Hashed Co",
			AdminName: "Hasher",
			Email:     "hash@example.com",
			Password:  "secret1",
		})
		require.NoError(t, err)

		var stored models.User
		require.NoError(t, db.First(&stored, result.User.ID).Error)
		assert.NotEqual(t, "secret1", stored.PasswordHash)
		assert.True(t, auth.CheckPassword("secret1", stored.PasswordHash))
	})

	t.Run("duplicate email returns conflict and creates no second organisation", func(t *testing.T) {
		input := auth.RegisterInput{
			OrgName:   "First Org",
			AdminName: "First",
			Email:     "dup@example.com",
			Password:  "secret1",
		}

		_, err := svc.Register(ctx, input)
		require.NoError(t, err)

		var orgsBefore int64
		db.Model(&models.Organisation{}).Count(&orgsBefore)

		input.OrgName = "Second Org"
		_, err = svc.Register(ctx, input)
		assert.ErrorIs(t, err, auth.ErrEmailTaken)

		var orgsAfter int64
		db.Model(&models.Organisation{}).Count(&orgsAfter)
		assert.Equal(t, orgsBefore, orgsAfter)
	})

	t.Run("records organisation_created audit entry", func(t *testing.T) {
		result, err := svc.Register(ctx, auth.RegisterInput{
			OrgName:   "Audited",
			AdminName: "Aud",
			Email:     "aud@example.com",
			Password:  "secret1",
		})
		require.NoError(t, err)

		var logs []models.Log
		require.NoError(t, db.Where("organisation_id = ?", result.User.OrganisationID).Find(&logs).Error)
		require.Len(t, logs, 1)
		assert.Equal(t, models.ActionOrganisationCreated, logs[0].Action)
		assert.Equal(t, "Audited", logs[0].Meta["orgName"])
	})
}

func TestService_Login(t *testing.T) {
	svc, db := setupAuthService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, auth.RegisterInput{
		OrgName:   "Login Org",
		AdminName: "Lori",
		Email:     "lori@example.com",
		Password:  "secret1",
	})
	require.NoError(t, err)

	t.Run("valid credentials", func(t *testing.T) {
		result, err := svc.Login(ctx, auth.LoginInput{Email: "lori@example.com", Password: "secret1"})
		require.NoError(t, err)
		assert.NotEmpty(t, result.Token)
		require.NotNil(t, result.User.Organisation)
		assert.Equal(t, "Login Org", result.User.Organisation.Name)
	})

	t.Run("wrong password and unknown email yield the same error", func(t *testing.T) {
		_, errWrong := svc.Login(ctx, auth.LoginInput{Email: "lori@example.com", Password: "nope"})
		_, errAbsent := svc.Login(ctx, auth.LoginInput{Email: "ghost@example.com", Password: "nope"})

		assert.ErrorIs(t, errWrong, auth.ErrInvalidCredentials)
		assert.ErrorIs(t, errAbsent, auth.ErrInvalidCredentials)
		assert.Equal(t, errWrong.Error(), errAbsent.Error())
	})

	t.Run("records user_login audit entry", func(t *testing.T) {
		result, err := svc.Login(ctx, auth.LoginInput{Email: "lori@example.com", Password: "secret1"})
		require.NoError(t, err)

		var count int64
		db.Model(&models.Log{}).
			Where("organisation_id = ? AND action = ?", result.User.OrganisationID, models.ActionUserLogin).
			Count(&count)
		assert.GreaterOrEqual(t, count, int64(1))
	})
}

func TestService_Logout(t *testing.T) {
	svc, db := setupAuthService(t)
	ctx := context.Background()

	result, err := svc.Register(ctx, auth.RegisterInput{
		OrgName:   "Bye Org",
		AdminName: "Bye",
		Email:     "bye@example.com",
		Password:  "secret1",
	})
	require.NoError(t, err)

	svc.Logout(ctx, auth.Identity{
		UserID:         result.User.ID,
		OrganisationID: result.User.OrganisationID,
		Email:          result.User.Email,
	})

	var count int64
	db.Model(&models.Log{}).
		Where("organisation_id = ? AND action = ?", result.User.OrganisationID, models.ActionUserLogout).
		Count(&count)
	assert.Equal(t, int64(1), count)
}
