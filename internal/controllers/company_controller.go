package controllers

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"stockbot/internal/service"
)

type CompanyController struct {
	Companies *service.CompanyService
}

// GetCompanies returns a page of companies, optionally filtered by code or
// name substring.
func (cc *CompanyController) GetCompanies(c *gin.Context) {
	page, limit, skip := pageParams(c)
	code := c.Query("code")

	companies, total, err := cc.Companies.GetCompanies(c.Request.Context(), code, skip, limit)
	if err != nil {
		log.Printf("failed to get companies: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Something went wrong"})
		return
	}

	c.JSON(http.StatusOK, NewPage(companies, total, page, len(companies), limit))
}

// GetCompany returns a single company by id.
func (cc *CompanyController) GetCompany(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "invalid company id"})
		return
	}

	company, err := cc.Companies.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrCompanyNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Company not found"})
			return
		}
		log.Printf("failed to get company: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Something went wrong"})
		return
	}

	c.JSON(http.StatusOK, company)
}

// GetCompanyReports returns a page of archived filings for a company.
func (cc *CompanyController) GetCompanyReports(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "invalid company id"})
		return
	}
	page, limit, skip := pageParams(c)

	reports, total, err := cc.Companies.GetReports(c.Request.Context(), id, skip, limit)
	if err != nil {
		if errors.Is(err, service.ErrCompanyNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Company not found"})
			return
		}
		log.Printf("failed to get company reports: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Something went wrong"})
		return
	}

	c.JSON(http.StatusOK, NewPage(reports, total, page, len(reports), limit))
}
