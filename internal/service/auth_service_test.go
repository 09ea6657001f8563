// internal/service/auth_service_test.go
package service

import (
	"context"
	"testing"

	"go_5_flash_srs/internal/config"
	"go_5_flash_srs/internal/model"
	"go_5_flash_srs/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newAuthServiceForTest(db *gorm.DB) AuthService {
	cfg := &config.Config{
		JWT: config.JWTConfig{
			SecretKey:     "test-secret-key",
			ExpiryMinutes: 60,
		},
	}
	return NewAuthService(db, repository.NewGormTenantRepository(), cfg)
}

func Test_authService_Register(t *testing.T) {
	ctx := context.Background()

	t.Run("正常系: 登録成功 (パスワードは平文で保存されない)", func(t *testing.T) {
		db := setupStudyTestDB(t)
		svc := newAuthServiceForTest(db)

		tenant, err := svc.Register(ctx, &model.RegisterRequest{
			Name: "taro", Email: "taro@example.com", Password: "password123",
		})
		require.NoError(t, err)
		assert.NotEqual(t, uuid.Nil, tenant.TenantID)
		assert.Equal(t, "taro", tenant.Name)
		assert.NotEqual(t, "password123", tenant.PasswordHash)
		assert.NotEmpty(t, tenant.PasswordHash)
	})

	t.Run("異常系: メールアドレス重複", func(t *testing.T) {
		db := setupStudyTestDB(t)
		svc := newAuthServiceForTest(db)

		_, err := svc.Register(ctx, &model.RegisterRequest{Name: "taro", Email: "dup@example.com", Password: "password123"})
		require.NoError(t, err)

		_, err = svc.Register(ctx, &model.RegisterRequest{Name: "jiro", Email: "dup@example.com", Password: "password123"})
		assert.ErrorIs(t, err, model.ErrConflict)
	})

	t.Run("異常系: ユーザ名重複", func(t *testing.T) {
		db := setupStudyTestDB(t)
		svc := newAuthServiceForTest(db)

		_, err := svc.Register(ctx, &model.RegisterRequest{Name: "taro", Email: "a@example.com", Password: "password123"})
		require.NoError(t, err)

		_, err = svc.Register(ctx, &model.RegisterRequest{Name: "taro", Email: "b@example.com", Password: "password123"})
		assert.ErrorIs(t, err, model.ErrConflict)
	})
}

func Test_authService_Login(t *testing.T) {
	ctx := context.Background()

	register := func(t *testing.T, svc AuthService) *model.Tenant {
		t.Helper()
		tenant, err := svc.Register(ctx, &model.RegisterRequest{
			Name: "taro", Email: "taro@example.com", Password: "password123",
		})
		require.NoError(t, err)
		return tenant
	}

	t.Run("正常系: ログイン成功でJWTが返りsubjectがテナントID", func(t *testing.T) {
		db := setupStudyTestDB(t)
		svc := newAuthServiceForTest(db)
		tenant := register(t, svc)

		resp, err := svc.Login(ctx, &model.LoginRequest{Email: "taro@example.com", Password: "password123"})
		require.NoError(t, err)
		require.NotEmpty(t, resp.AccessToken)

		token, err := jwt.ParseWithClaims(resp.AccessToken, &jwt.RegisteredClaims{}, func(token *jwt.Token) (interface{}, error) {
			return []byte("test-secret-key"), nil
		})
		require.NoError(t, err)
		require.True(t, token.Valid)
		claims := token.Claims.(*jwt.RegisteredClaims)
		assert.Equal(t, tenant.TenantID.String(), claims.Subject)
		assert.Equal(t, config.AppName, claims.Issuer)
	})

	t.Run("異常系: パスワード不一致", func(t *testing.T) {
		db := setupStudyTestDB(t)
		svc := newAuthServiceForTest(db)
		register(t, svc)

		_, err := svc.Login(ctx, &model.LoginRequest{Email: "taro@example.com", Password: "wrong-password"})
		require.Error(t, err)
		var appErr *model.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, "AUTHENTICATION_FAILED", appErr.Detail.Code)
	})

	t.Run("異常系: 未登録のメールアドレス (存在有無は露出しない)", func(t *testing.T) {
		db := setupStudyTestDB(t)
		svc := newAuthServiceForTest(db)

		_, err := svc.Login(ctx, &model.LoginRequest{Email: "nobody@example.com", Password: "password123"})
		require.Error(t, err)
		var appErr *model.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, "AUTHENTICATION_FAILED", appErr.Detail.Code)
	})
}

func Test_authService_GetTenant(t *testing.T) {
	ctx := context.Background()
	db := setupStudyTestDB(t)
	svc := newAuthServiceForTest(db)

	tenant, err := svc.Register(ctx, &model.RegisterRequest{
		Name: "hanako", Email: "hanako@example.com", Password: "password123",
	})
	require.NoError(t, err)

	t.Run("正常系: 取得成功", func(t *testing.T) {
		got, err := svc.GetTenant(ctx, tenant.TenantID)
		require.NoError(t, err)
		assert.Equal(t, tenant.Email, got.Email)
	})

	t.Run("異常系: 存在しないテナント", func(t *testing.T) {
		_, err := svc.GetTenant(ctx, uuid.New())
		assert.ErrorIs(t, err, model.ErrNotFound)
	})
}
