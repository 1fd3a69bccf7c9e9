package server

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/smallbiznis/coopbilling/internal/console"
	"github.com/smallbiznis/coopbilling/internal/forms"
)

// Autocomplete returns related-row candidates whose display column
// contains q.
func (s *Server) Autocomplete(c *gin.Context) {
	table := strings.TrimSpace(c.Param("model"))
	if !s.site.IsRegistered(table) {
		AbortWithError(c, fmt.Errorf("%w: %s", console.ErrNotRegistered, table))
		return
	}

	cfg := s.formsCfg.Get()
	column, ok := cfg.DisplayFields[table]
	if !ok || column == "" {
		AbortWithError(c, fmt.Errorf("%w: %w for %s", ErrNotFound, forms.ErrNoDisplayField, table))
		return
	}

	var query struct {
		Q     string `form:"q"`
		Limit int    `form:"limit"`
	}
	if err := c.ShouldBindQuery(&query); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	limit := cfg.AutocompleteLimit
	if query.Limit > 0 && query.Limit < limit {
		limit = query.Limit
	}

	candidates, err := s.lookup.Search(c.Request.Context(), table, column, strings.TrimSpace(query.Q), limit)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	if candidates == nil {
		candidates = []forms.Candidate{}
	}

	c.JSON(http.StatusOK, gin.H{"data": candidates})
}
