package di

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"todo_backend/internal/app/config"
	authentity "todo_backend/internal/feature/auth/domain/entity"
	"todo_backend/internal/feature/tasks/domain/entity"
	"todo_backend/internal/platform/db/dbtest"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

func testConfig() *config.Config {
	return &config.Config{
		JWTSecret:     "integration-secret",
		JWTExpiration: time.Hour,
		BcryptCost:    bcrypt.MinCost,
		TaskCacheTTL:  time.Minute,
	}
}

type testServer struct {
	t      *testing.T
	engine *gin.Engine
	db     *gorm.DB
}

func newTestServer(t *testing.T, rdb *redis.Client) *testServer {
	t.Helper()

	db := dbtest.OpenSQLite(t, &authentity.User{}, &entity.Task{})
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	engine, err := NewApp(testConfig(), db, rdb, logger)
	require.NoError(t, err)

	return &testServer{t: t, engine: engine, db: db}
}

func (s *testServer) do(method, path, token string, body interface{}) *httptest.ResponseRecorder {
	s.t.Helper()

	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(s.t, err)
		reader = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", token)
	}
	w := httptest.NewRecorder()
	s.engine.ServeHTTP(w, req)
	return w
}

// register signs up and logs in, returning the issued token.
func (s *testServer) register(name, email, pass string) string {
	s.t.Helper()

	w := s.do(http.MethodPost, "/signup", "", gin.H{"name": name, "email": email, "password": pass})
	require.Equal(s.t, http.StatusOK, w.Code, w.Body.String())
	return s.login(email, pass)
}

type taskBody struct {
	ID        uint   `json:"id"`
	Title     string `json:"title"`
	Completed bool   `json:"completed"`
	UserID    uint   `json:"userId"`
}

func decodeTasks(t *testing.T, w *httptest.ResponseRecorder) []taskBody {
	t.Helper()
	var out []taskBody
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func decodeTask(t *testing.T, w *httptest.ResponseRecorder) taskBody {
	t.Helper()
	var out taskBody
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func TestApp_Scenario(t *testing.T) {
	for _, withCache := range []bool{false, true} {
		t.Run(fmt.Sprintf("cache=%v", withCache), func(t *testing.T) {
			var rdb *redis.Client
			if withCache {
				mr := miniredis.RunT(t)
				rdb = redis.NewClient(&redis.Options{Addr: mr.Addr()})
				t.Cleanup(func() { _ = rdb.Close() })
			}
			s := newTestServer(t, rdb)

			w := s.do(http.MethodPost, "/signup", "", gin.H{"name": "A", "email": "a@x.com", "password": "p"})
			require.Equal(t, http.StatusOK, w.Code)
			assert.JSONEq(t, `{"message":"User created successfully"}`, w.Body.String())

			token := s.login("a@x.com", "p")

			w = s.do(http.MethodPost, "/tasks", token, gin.H{"title": "buy milk"})
			require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
			created := decodeTask(t, w)
			assert.NotZero(t, created.ID)
			assert.Equal(t, "buy milk", created.Title)
			assert.False(t, created.Completed)

			w = s.do(http.MethodGet, "/tasks", token, nil)
			require.Equal(t, http.StatusOK, w.Code)
			list := decodeTasks(t, w)
			require.Len(t, list, 1)
			assert.Equal(t, created.ID, list[0].ID)

			w = s.do(http.MethodPut, fmt.Sprintf("/tasks/%d", created.ID), token, gin.H{"completed": true})
			require.Equal(t, http.StatusOK, w.Code, w.Body.String())
			updated := decodeTask(t, w)
			assert.True(t, updated.Completed)
			assert.Equal(t, "buy milk", updated.Title, "title must survive a completed-only update")

			// The cached list must reflect the update.
			w = s.do(http.MethodGet, "/tasks", token, nil)
			list = decodeTasks(t, w)
			require.Len(t, list, 1)
			assert.True(t, list[0].Completed)

			w = s.do(http.MethodDelete, fmt.Sprintf("/tasks/%d", created.ID), token, nil)
			require.Equal(t, http.StatusOK, w.Code)
			assert.JSONEq(t, `{"message":"Task deleted"}`, w.Body.String())

			w = s.do(http.MethodGet, "/tasks", token, nil)
			require.Equal(t, http.StatusOK, w.Code)
			assert.Equal(t, "[]", w.Body.String())

			w = s.do(http.MethodDelete, fmt.Sprintf("/tasks/%d", created.ID), token, nil)
			assert.Equal(t, http.StatusNotFound, w.Code, "second delete")
		})
	}
}

// login logs in an already registered user.
func (s *testServer) login(email, pass string) string {
	s.t.Helper()

	w := s.do(http.MethodPost, "/login", "", gin.H{"email": email, "password": pass})
	require.Equal(s.t, http.StatusOK, w.Code, w.Body.String())
	var res struct {
		Token string `json:"token"`
	}
	require.NoError(s.t, json.Unmarshal(w.Body.Bytes(), &res))
	require.NotEmpty(s.t, res.Token)
	return res.Token
}

func TestApp_BearerPrefixAccepted(t *testing.T) {
	s := newTestServer(t, nil)
	token := s.register("A", "a@x.com", "p")

	w := s.do(http.MethodGet, "/tasks", "Bearer "+token, nil)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestApp_LongPasswordSignupAndLogin(t *testing.T) {
	s := newTestServer(t, nil)
	long := strings.Repeat("a", 80)

	token := s.register("A", "long@x.com", long)

	w := s.do(http.MethodGet, "/tasks", token, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = s.do(http.MethodPost, "/login", "", gin.H{"email": "long@x.com", "password": strings.Repeat("b", 80)})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestApp_DuplicateSignup(t *testing.T) {
	s := newTestServer(t, nil)
	s.register("A", "a@x.com", "p")

	w := s.do(http.MethodPost, "/signup", "", gin.H{"name": "B", "email": "a@x.com", "password": "q"})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"error":"User already exists"}`, w.Body.String())

	var count int64
	require.NoError(t, s.db.Model(&authentity.User{}).Where("email = ?", "a@x.com").Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestApp_WrongPassword(t *testing.T) {
	s := newTestServer(t, nil)
	s.register("A", "a@x.com", "p")

	var before authentity.User
	require.NoError(t, s.db.Where("email = ?", "a@x.com").First(&before).Error)

	w := s.do(http.MethodPost, "/login", "", gin.H{"email": "a@x.com", "password": "wrong"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.NotContains(t, w.Body.String(), "token")

	var after authentity.User
	require.NoError(t, s.db.Where("email = ?", "a@x.com").First(&after).Error)
	assert.Equal(t, before.Password, after.Password)
	assert.NotEqual(t, "p", after.Password, "password must be stored hashed")
}

func TestApp_CrossUserAccessIsNotFound(t *testing.T) {
	s := newTestServer(t, nil)
	tokenA := s.register("A", "a@x.com", "p")
	tokenB := s.register("B", "b@x.com", "p")

	w := s.do(http.MethodPost, "/tasks", tokenB, gin.H{"title": "b's task"})
	require.Equal(t, http.StatusCreated, w.Code)
	bTask := decodeTask(t, w)

	path := fmt.Sprintf("/tasks/%d", bTask.ID)

	w = s.do(http.MethodPut, path, tokenA, gin.H{"title": "hijacked"})
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = s.do(http.MethodDelete, path, tokenA, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = s.do(http.MethodGet, "/tasks", tokenA, nil)
	assert.Equal(t, "[]", w.Body.String())

	w = s.do(http.MethodGet, "/tasks", tokenB, nil)
	list := decodeTasks(t, w)
	require.Len(t, list, 1)
	assert.Equal(t, "b's task", list[0].Title)
}

func TestApp_TasksRequireToken(t *testing.T) {
	s := newTestServer(t, nil)

	routes := []struct {
		method string
		path   string
	}{
		{http.MethodPost, "/tasks"},
		{http.MethodGet, "/tasks"},
		{http.MethodPut, "/tasks/1"},
		{http.MethodDelete, "/tasks/1"},
	}

	for _, rt := range routes {
		w := s.do(rt.method, rt.path, "", gin.H{"title": "x"})
		assert.Equal(t, http.StatusUnauthorized, w.Code, rt.method+" "+rt.path)
		assert.JSONEq(t, `{"error":"No token provided"}`, w.Body.String())

		w = s.do(rt.method, rt.path, "garbage", gin.H{"title": "x"})
		assert.Equal(t, http.StatusUnauthorized, w.Code, rt.method+" "+rt.path)
		assert.JSONEq(t, `{"error":"Invalid token"}`, w.Body.String())
	}

	var count int64
	require.NoError(t, s.db.Model(&entity.Task{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestApp_Liveness(t *testing.T) {
	s := newTestServer(t, nil)

	w := s.do(http.MethodGet, "/", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Todo API is running", w.Body.String())

	w = s.do(http.MethodGet, "/healthz", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
}

func TestNewApp_EmptySecret(t *testing.T) {
	db := dbtest.OpenSQLite(t)
	cfg := testConfig()
	cfg.JWTSecret = ""

	_, err := NewApp(cfg, db, nil, nil)

	assert.Error(t, err)
}
