package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"strconv"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"github.com/synctask-dev/synctask/db"
	"github.com/synctask-dev/synctask/internal/auth"
	"github.com/synctask-dev/synctask/internal/middleware"
	"github.com/synctask-dev/synctask/internal/models"
	"github.com/synctask-dev/synctask/internal/realtime"
	"github.com/synctask-dev/synctask/internal/store"
	"github.com/synctask-dev/synctask/internal/types"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Setenv("JWT_SECRET", "test-secret")

	if err := auth.InitJWTSecret(); err != nil {
		panic(err)
	}

	os.Exit(m.Run())
}

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_fk=1", strings.ReplaceAll(t.Name(), "/", "_"))

	database, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.Migrate(database))

	return database
}

func newTestHandler(t *testing.T) (*Handler, *gorm.DB, *realtime.Notifier) {
	t.Helper()

	database := openTestDB(t)
	st := store.New(database, store.NewProfileDirectory(database))
	notifier := realtime.NewNotifier()

	return New(st, notifier, realtime.NewHub(), "localhost", MemberSourceProfiles), database, notifier
}

func createProfile(t *testing.T, database *gorm.DB, fullName, email, role string) models.Profile {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("Secret@123"), bcrypt.DefaultCost)
	require.NoError(t, err)

	profile := models.Profile{
		Email:        email,
		FullName:     fullName,
		Emoji:        "👤",
		Role:         role,
		PasswordHash: string(hash),
	}
	require.NoError(t, database.Create(&profile).Error)

	return profile
}

func asUser(profile models.Profile) middleware.AuthenticatedUser {
	return middleware.AuthenticatedUser{
		ID:       profile.ID,
		FullName: profile.FullName,
		Email:    profile.Email,
		Emoji:    profile.Emoji,
		Role:     profile.Role,
	}
}

// testContext builds a gin context carrying an authenticated user, a JSON
// body and optional path params, the way the router and auth middleware
// would have prepared it.
func testContext(t *testing.T, user middleware.AuthenticatedUser, method, target string, body interface{}, params ...gin.Param) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()

	recorder := httptest.NewRecorder()
	ctx, _ := gin.CreateTestContext(recorder)

	var reader *bytes.Reader

	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequest(method, target, reader)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	ctx.Request = req
	ctx.Params = params
	ctx.Set(types.ContextUserKey, user)

	return ctx, recorder
}

func decodeBody(t *testing.T, recorder *httptest.ResponseRecorder, out interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), out))
}

func idString(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}

func testRequestContext() context.Context {
	return context.Background()
}
