package server

import (
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/smallbiznis/coopbilling/internal/console"
	"github.com/smallbiznis/coopbilling/pkg/db/pagination"
)

func (s *Server) ListModels(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"data": s.site.Models()})
}

func (s *Server) ListRecords(c *gin.Context) {
	admin, ok := s.modelAdmin(c)
	if !ok {
		return
	}

	var query pagination.Pagination
	if err := c.ShouldBindQuery(&query); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := admin.List(c.Request.Context(), query)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (s *Server) CreateRecord(c *gin.Context) {
	admin, ok := s.modelAdmin(c)
	if !ok {
		return
	}

	payload, err := io.ReadAll(c.Request.Body)
	if err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := admin.Create(c.Request.Context(), payload)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"data": resp})
}

func (s *Server) GetRecord(c *gin.Context) {
	admin, ok := s.modelAdmin(c)
	if !ok {
		return
	}
	id, ok := recordID(c)
	if !ok {
		return
	}

	resp, err := admin.Get(c.Request.Context(), id)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) UpdateRecord(c *gin.Context) {
	admin, ok := s.modelAdmin(c)
	if !ok {
		return
	}
	id, ok := recordID(c)
	if !ok {
		return
	}

	payload, err := io.ReadAll(c.Request.Body)
	if err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := admin.Update(c.Request.Context(), id, payload)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) DeleteRecord(c *gin.Context) {
	admin, ok := s.modelAdmin(c)
	if !ok {
		return
	}
	id, ok := recordID(c)
	if !ok {
		return
	}

	if err := admin.Delete(c.Request.Context(), id); err != nil {
		AbortWithError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (s *Server) modelAdmin(c *gin.Context) (console.ModelAdmin, bool) {
	admin, err := s.site.Admin(strings.TrimSpace(c.Param("model")))
	if err != nil {
		AbortWithError(c, err)
		return nil, false
	}
	return admin, true
}

func recordID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(strings.TrimSpace(c.Param("id")), 10, 64)
	if err != nil || id <= 0 {
		AbortWithError(c, newValidationError("id", "invalid_id", "invalid id"))
		return 0, false
	}
	return id, true
}
