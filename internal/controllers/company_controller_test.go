package controllers_test

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/gorm"

	"stockbot/internal/config"
	dbpkg "stockbot/internal/db"
	"stockbot/internal/models"
	"stockbot/internal/routes"
	"stockbot/internal/testhelpers"
)

var _ = Describe("CompanyController", func() {
	var (
		dbConn *gorm.DB
		cfg    *config.Config
		router *gin.Engine
		token  string
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

		router = routes.SetupRouter(dbConn, cfg, &fakeEnqueuer{})

		user := testhelpers.CreateUser(dbConn, context.Background(), &models.User{Email: "user@example.com"}, "supersecret")
		token = accessTokenFor(cfg, user)
	})

	Describe("GET /api/v1/companies", func() {
		It("requires authentication", func() {
			recorder := performJSON(router, http.MethodGet, "/api/v1/companies/", nil, "")
			Expect(recorder.Code).To(Equal(http.StatusUnauthorized))
		})

		It("pages companies", func() {
			ctx := context.Background()
			for i := 0; i < 25; i++ {
				testhelpers.CreateCompany(dbConn, ctx, &models.Company{Code: fmt.Sprintf("E%05d", i)})
			}

			recorder := performJSON(router, http.MethodGet, "/api/v1/companies/?page=1&limit=10", nil, token)
			Expect(recorder.Code).To(Equal(http.StatusOK))

			body := decodeBody(recorder)
			Expect(body["total"]).To(BeEquivalentTo(25))
			Expect(body["size"]).To(BeEquivalentTo(10))
			Expect(body["pages"]).To(BeEquivalentTo(3))
		})

		It("filters by code", func() {
			ctx := context.Background()
			testhelpers.CreateCompany(dbConn, ctx, &models.Company{Code: "E02144", Name: "Toyota Motor"})
			testhelpers.CreateCompany(dbConn, ctx, &models.Company{Code: "E02166", Name: "Sony Group"})

			recorder := performJSON(router, http.MethodGet, "/api/v1/companies/?code=E02144", nil, token)
			Expect(recorder.Code).To(Equal(http.StatusOK))

			body := decodeBody(recorder)
			Expect(body["total"]).To(BeEquivalentTo(1))
		})
	})

	Describe("GET /api/v1/companies/:id", func() {
		It("returns a company by id", func() {
			company := testhelpers.CreateCompany(dbConn, context.Background(), &models.Company{Code: "E02144", Name: "Toyota Motor"})

			recorder := performJSON(router, http.MethodGet, fmt.Sprintf("/api/v1/companies/%d", company.ID), nil, token)
			Expect(recorder.Code).To(Equal(http.StatusOK))
			Expect(decodeBody(recorder)["code"]).To(Equal("E02144"))
		})

		It("returns 404 for an unknown id", func() {
			recorder := performJSON(router, http.MethodGet, "/api/v1/companies/99999", nil, token)
			Expect(recorder.Code).To(Equal(http.StatusNotFound))
		})
	})

	Describe("GET /api/v1/companies/:id/reports", func() {
		It("pages the company's archived filings", func() {
			ctx := context.Background()
			company := testhelpers.CreateCompany(dbConn, ctx, &models.Company{Code: "E02144", Name: "Toyota Motor"})
			other := testhelpers.CreateCompany(dbConn, ctx, &models.Company{Code: "E02166", Name: "Sony Group"})

			for i := 0; i < 3; i++ {
				report := models.Report{
					CompanyID:    company.ID,
					Code:         company.Code,
					ReportType:   models.ReportTypeReport,
					DocumentType: models.DocumentTypeZIP,
				}
				Expect(dbConn.WithContext(ctx).Create(&report).Error).To(Succeed())
			}
			stranger := models.Report{
				CompanyID:    other.ID,
				Code:         other.Code,
				ReportType:   models.ReportTypeReport,
				DocumentType: models.DocumentTypeZIP,
			}
			Expect(dbConn.WithContext(ctx).Create(&stranger).Error).To(Succeed())

			recorder := performJSON(router, http.MethodGet, fmt.Sprintf("/api/v1/companies/%d/reports?limit=2", company.ID), nil, token)
			Expect(recorder.Code).To(Equal(http.StatusOK))

			body := decodeBody(recorder)
			Expect(body["total"]).To(BeEquivalentTo(3))
			Expect(body["size"]).To(BeEquivalentTo(2))
			Expect(body["pages"]).To(BeEquivalentTo(2))
		})

		It("returns 404 for an unknown company", func() {
			recorder := performJSON(router, http.MethodGet, "/api/v1/companies/99999/reports", nil, token)
			Expect(recorder.Code).To(Equal(http.StatusNotFound))
		})
	})
})

var _ = Describe("NotificationController", func() {
	var (
		dbConn *gorm.DB
		router *gin.Engine
		token  string
	)

	BeforeEach(func() {
		gin.SetMode(gin.TestMode)

		cfg, err := config.LoadConfig()
		Expect(err).NotTo(HaveOccurred())

		dbConn, err = dbpkg.InitDB(cfg.DatabaseURL)
		if err != nil {
			Skip("database not available: " + err.Error())
		}

		Expect(dbpkg.Migrate(dbConn)).To(Succeed())
		testhelpers.CleanupDB(dbConn)

		router = routes.SetupRouter(dbConn, cfg, &fakeEnqueuer{})

		user := testhelpers.CreateUser(dbConn, context.Background(), &models.User{Email: "user@example.com"}, "supersecret")
		token = accessTokenFor(cfg, user)
	})

	Describe("GET /api/v1/notifications", func() {
		It("requires authentication", func() {
			recorder := performJSON(router, http.MethodGet, "/api/v1/notifications/", nil, "")
			Expect(recorder.Code).To(Equal(http.StatusUnauthorized))
		})

		It("searches notification content", func() {
			ctx := context.Background()
			testhelpers.CreateNotification(dbConn, ctx, &models.Notification{Content: "New filing for Toyota", ShortContent: "Toyota"})
			testhelpers.CreateNotification(dbConn, ctx, &models.Notification{Content: "New filing for Sony", ShortContent: "Sony"})

			recorder := performJSON(router, http.MethodGet, "/api/v1/notifications/?search=Toyota", nil, token)
			Expect(recorder.Code).To(Equal(http.StatusOK))

			body := decodeBody(recorder)
			Expect(body["total"]).To(BeEquivalentTo(1))
		})
	})

	Describe("GET /api/v1/notifications/:id", func() {
		It("returns a notification by id", func() {
			notification := testhelpers.CreateNotification(dbConn, context.Background(), &models.Notification{Content: "New filing for Toyota", ShortContent: "Toyota"})

			recorder := performJSON(router, http.MethodGet, fmt.Sprintf("/api/v1/notifications/%d", notification.ID), nil, token)
			Expect(recorder.Code).To(Equal(http.StatusOK))
			Expect(decodeBody(recorder)["short_content"]).To(Equal("Toyota"))
		})

		It("returns 404 for an unknown id", func() {
			recorder := performJSON(router, http.MethodGet, "/api/v1/notifications/99999", nil, token)
			Expect(recorder.Code).To(Equal(http.StatusNotFound))
		})
	})
})

var _ = Describe("HealthController", func() {
	It("reports liveness and readiness", func() {
		gin.SetMode(gin.TestMode)

		cfg, err := config.LoadConfig()
		Expect(err).NotTo(HaveOccurred())

		dbConn, err := dbpkg.InitDB(cfg.DatabaseURL)
		if err != nil {
			Skip("database not available: " + err.Error())
		}

		router := routes.SetupRouter(dbConn, cfg, &fakeEnqueuer{})

		for _, path := range []string{"/api/v1/healths/liveness", "/api/v1/healths/readiness"} {
			recorder := performJSON(router, http.MethodGet, path, nil, "")
			Expect(recorder.Code).To(Equal(http.StatusOK))
			Expect(decodeBody(recorder)["status"]).To(Equal("UP"))
		}
	})
})
