package restapi

import (
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/restokit/restopos/config"
	"github.com/restokit/restopos/internal/app"
	"github.com/restokit/restopos/internal/domain"
	"github.com/restokit/restopos/internal/webserver"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type testEnv struct {
	echo *echo.Echo
	app  *app.Application
	db   *gorm.DB
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(domain.Tables...))

	application := app.NewApplication(config.DefaultAppConfig)
	application.OverrideDB(db)

	e := echo.New()
	e.Validator = webserver.NewAPIValidator()

	return &testEnv{echo: e, app: application, db: db}
}

// newContext builds an echo context with the application injected and a
// session for the given user.
func (env *testEnv) newContext(t *testing.T, method, path, body string, user *domain.User) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	c := env.echo.NewContext(req, rec)
	c.Set(webserver.AppContextKey, env.app)
	if user != nil {
		token := jwt.NewWithClaims(jwt.SigningMethodHS256, &webserver.SessionClaims{
			UserID: user.ID,
			Role:   user.Role,
			Name:   user.Name,
		})
		c.Set("user", token)
	}
	return c, rec
}

func (env *testEnv) seedAdmin(t *testing.T) *domain.User {
	t.Helper()
	admin := domain.User{Name: "Admin", Email: "admin@test.local", Role: domain.RoleAdmin}
	require.NoError(t, env.db.Create(&admin).Error)
	return &admin
}

func (env *testEnv) seedCustomer(t *testing.T, email string) *domain.User {
	t.Helper()
	user := domain.User{Name: "Customer", Email: email, Role: domain.RoleCustomer}
	require.NoError(t, env.db.Create(&user).Error)
	return &user
}
