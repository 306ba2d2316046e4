package controllers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/hibiken/asynq"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/gorm"

	"stockbot/internal/config"
	dbpkg "stockbot/internal/db"
	"stockbot/internal/models"
	"stockbot/internal/routes"
	"stockbot/internal/security"
	"stockbot/internal/testhelpers"
)

// fakeEnqueuer records tasks instead of pushing them to Redis.
type fakeEnqueuer struct {
	enqueued []*asynq.Task
}

func (f *fakeEnqueuer) Enqueue(ctx context.Context, task *asynq.Task) error {
	f.enqueued = append(f.enqueued, task)
	return nil
}

func performJSON(router *gin.Engine, method, path string, body any, token string) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		Expect(err).NotTo(HaveOccurred())
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)
	return recorder
}

func decodeBody(recorder *httptest.ResponseRecorder) map[string]any {
	var body map[string]any
	Expect(json.Unmarshal(recorder.Body.Bytes(), &body)).To(Succeed())
	return body
}

func accessTokenFor(cfg *config.Config, user *models.User) string {
	maker := security.NewTokenMaker(cfg.SecretKey)
	token, err := maker.CreateToken(user.ID, security.TokenTypeAccess, time.Hour)
	Expect(err).NotTo(HaveOccurred())
	return token
}

var _ = Describe("AuthController", func() {
	var (
		dbConn   *gorm.DB
		cfg      *config.Config
		router   *gin.Engine
		enqueuer *fakeEnqueuer
	)

	BeforeEach(func() {
		gin.SetMode(gin.TestMode)

		var err error
		cfg, err = config.LoadConfig()
		Expect(err).NotTo(HaveOccurred())

		dbConn, err = dbpkg.InitDB(cfg.DatabaseURL)
		if err != nil {
			Skip("database not available: " + err.Error())
		}

		Expect(dbpkg.Migrate(dbConn)).To(Succeed())
		testhelpers.CleanupDB(dbConn)

		enqueuer = &fakeEnqueuer{}
		router = routes.SetupRouter(dbConn, cfg, enqueuer)
	})

	Describe("POST /api/v1/auth/register", func() {
		It("creates a user and returns the profile", func() {
			recorder := performJSON(router, http.MethodPost, "/api/v1/auth/register", gin.H{
				"email":    "alice@example.com",
				"password": "supersecret",
			}, "")

			Expect(recorder.Code).To(Equal(http.StatusCreated))

			body := decodeBody(recorder)
			Expect(body["email"]).To(Equal("alice@example.com"))
			Expect(body["is_active"]).To(Equal(true))
			Expect(body["id"]).NotTo(BeNil())
			Expect(body["created_at"]).NotTo(BeNil())
			Expect(body["updated_at"]).NotTo(BeNil())
			Expect(body).NotTo(HaveKey("hash_password"))
		})

		It("rejects a duplicate email", func() {
			ctx := context.Background()
			testhelpers.CreateUser(dbConn, ctx, &models.User{Email: "alice@example.com"}, "supersecret")

			recorder := performJSON(router, http.MethodPost, "/api/v1/auth/register", gin.H{
				"email":    "alice@example.com",
				"password": "anotherpassword",
			}, "")

			Expect(recorder.Code).To(Equal(http.StatusBadRequest))
		})

		It("rejects a malformed body", func() {
			recorder := performJSON(router, http.MethodPost, "/api/v1/auth/register", gin.H{
				"email": "not-an-email",
			}, "")

			Expect(recorder.Code).To(Equal(http.StatusUnprocessableEntity))
		})
	})

	Describe("POST /api/v1/auth/login", func() {
		BeforeEach(func() {
			testhelpers.CreateUser(dbConn, context.Background(), &models.User{Email: "alice@example.com"}, "supersecret")
		})

		It("returns an access and a refresh token", func() {
			recorder := performJSON(router, http.MethodPost, "/api/v1/auth/login", gin.H{
				"email":    "alice@example.com",
				"password": "supersecret",
			}, "")

			Expect(recorder.Code).To(Equal(http.StatusOK))

			body := decodeBody(recorder)
			Expect(body["token_type"]).To(Equal("bearer"))
			Expect(body["access_token"]).NotTo(BeEmpty())
			Expect(body["refresh_token"]).NotTo(BeEmpty())
		})

		It("fails identically for unknown email and wrong password", func() {
			unknownEmail := performJSON(router, http.MethodPost, "/api/v1/auth/login", gin.H{
				"email":    "nobody@example.com",
				"password": "supersecret",
			}, "")
			wrongPassword := performJSON(router, http.MethodPost, "/api/v1/auth/login", gin.H{
				"email":    "alice@example.com",
				"password": "wrongpassword",
			}, "")

			Expect(unknownEmail.Code).To(Equal(http.StatusBadRequest))
			Expect(wrongPassword.Code).To(Equal(http.StatusBadRequest))
			Expect(unknownEmail.Body.String()).To(Equal(wrongPassword.Body.String()))
		})

		It("issues tokens whose subject is the user id", func() {
			recorder := performJSON(router, http.MethodPost, "/api/v1/auth/login", gin.H{
				"email":    "alice@example.com",
				"password": "supersecret",
			}, "")
			Expect(recorder.Code).To(Equal(http.StatusOK))

			var user models.User
			Expect(dbConn.Where("email = ?", "alice@example.com").First(&user).Error).To(Succeed())

			body := decodeBody(recorder)
			maker := security.NewTokenMaker(cfg.SecretKey)
			claims, err := maker.ParseToken(body["access_token"].(string))
			Expect(err).NotTo(HaveOccurred())

			userID, err := claims.UserID()
			Expect(err).NotTo(HaveOccurred())
			Expect(userID).To(Equal(user.ID))
		})
	})

	Describe("GET /api/v1/auth/me", func() {
		It("rejects a request without a token", func() {
			recorder := performJSON(router, http.MethodGet, "/api/v1/auth/me", nil, "")
			Expect(recorder.Code).To(Equal(http.StatusUnauthorized))
		})

		It("rejects a refresh token used as an access token", func() {
			user := testhelpers.CreateUser(dbConn, context.Background(), &models.User{Email: "alice@example.com"}, "supersecret")

			maker := security.NewTokenMaker(cfg.SecretKey)
			refreshToken, err := maker.CreateToken(user.ID, security.TokenTypeRefresh, time.Hour)
			Expect(err).NotTo(HaveOccurred())

			recorder := performJSON(router, http.MethodGet, "/api/v1/auth/me", nil, refreshToken)
			Expect(recorder.Code).To(Equal(http.StatusUnauthorized))
		})

		It("returns the authenticated profile", func() {
			user := testhelpers.CreateUser(dbConn, context.Background(), &models.User{Email: "alice@example.com", FirstName: "Alice"}, "supersecret")

			recorder := performJSON(router, http.MethodGet, "/api/v1/auth/me", nil, accessTokenFor(cfg, user))
			Expect(recorder.Code).To(Equal(http.StatusOK))

			body := decodeBody(recorder)
			Expect(body["email"]).To(Equal("alice@example.com"))
			Expect(body["first_name"]).To(Equal("Alice"))
			Expect(body["role"]).To(Equal("user"))
		})
	})

	Describe("PUT /api/v1/auth/me", func() {
		It("applies a partial profile patch", func() {
			user := testhelpers.CreateUser(dbConn, context.Background(), &models.User{Email: "alice@example.com"}, "supersecret")

			recorder := performJSON(router, http.MethodPut, "/api/v1/auth/me", gin.H{
				"first_name": "Alice",
				"last_name":  "Liddell",
			}, accessTokenFor(cfg, user))

			Expect(recorder.Code).To(Equal(http.StatusOK))

			body := decodeBody(recorder)
			Expect(body["first_name"]).To(Equal("Alice"))
			Expect(body["last_name"]).To(Equal("Liddell"))
			Expect(body["email"]).To(Equal("alice@example.com"))
		})
	})

	Describe("POST /api/v1/auth/change-password", func() {
		It("requires the current password to match", func() {
			user := testhelpers.CreateUser(dbConn, context.Background(), &models.User{Email: "alice@example.com"}, "supersecret")
			token := accessTokenFor(cfg, user)

			rejected := performJSON(router, http.MethodPost, "/api/v1/auth/change-password", gin.H{
				"old_password": "wrongpassword",
				"new_password": "newpassword1",
			}, token)
			Expect(rejected.Code).To(Equal(http.StatusBadRequest))

			accepted := performJSON(router, http.MethodPost, "/api/v1/auth/change-password", gin.H{
				"old_password": "supersecret",
				"new_password": "newpassword1",
			}, token)
			Expect(accepted.Code).To(Equal(http.StatusOK))

			login := performJSON(router, http.MethodPost, "/api/v1/auth/login", gin.H{
				"email":    "alice@example.com",
				"password": "newpassword1",
			}, "")
			Expect(login.Code).To(Equal(http.StatusOK))
		})
	})

	Describe("POST /api/v1/auth/refresh-token", func() {
		It("exchanges a refresh token for a new access token", func() {
			testhelpers.CreateUser(dbConn, context.Background(), &models.User{Email: "alice@example.com"}, "supersecret")

			login := performJSON(router, http.MethodPost, "/api/v1/auth/login", gin.H{
				"email":    "alice@example.com",
				"password": "supersecret",
			}, "")
			Expect(login.Code).To(Equal(http.StatusOK))
			refreshToken := decodeBody(login)["refresh_token"].(string)

			recorder := performJSON(router, http.MethodPost, "/api/v1/auth/refresh-token", gin.H{
				"refresh_token": refreshToken,
			}, "")
			Expect(recorder.Code).To(Equal(http.StatusOK))

			body := decodeBody(recorder)
			Expect(body["access_token"]).NotTo(BeEmpty())
			Expect(body).NotTo(HaveKey("refresh_token"))
		})

		It("rejects an access token passed as a refresh token", func() {
			user := testhelpers.CreateUser(dbConn, context.Background(), &models.User{Email: "alice@example.com"}, "supersecret")

			recorder := performJSON(router, http.MethodPost, "/api/v1/auth/refresh-token", gin.H{
				"refresh_token": accessTokenFor(cfg, user),
			}, "")
			Expect(recorder.Code).To(Equal(http.StatusBadRequest))
		})
	})
})
