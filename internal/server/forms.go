package server

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/flosch/pongo2/v6"
	"github.com/gin-gonic/gin"
	"github.com/smallbiznis/coopbilling/internal/console"
	"github.com/smallbiznis/coopbilling/internal/forms"
	obsmetrics "github.com/smallbiznis/coopbilling/internal/observability/metrics"
	"go.uber.org/zap"
)

func (s *Server) customizer() forms.Customizer {
	cfg := s.formsCfg.Get()
	return forms.Customizer{
		Clock:         s.clock,
		Lookup:        s.lookup,
		DisplayFields: cfg.DisplayFields,
		DateYears:     cfg.DateYears,
	}
}

// NewForm renders an empty form and creates a record from its submission.
func (s *Server) NewForm(c *gin.Context) {
	s.handleForm(c, 0)
}

// EditForm renders a record in its form and updates it from the submission.
func (s *Server) EditForm(c *gin.Context) {
	id, ok := recordID(c)
	if !ok {
		return
	}
	s.handleForm(c, id)
}

func (s *Server) handleForm(c *gin.Context, id int64) {
	ctx := c.Request.Context()

	def, err := s.forms.Get(strings.TrimSpace(c.Param("form")))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	admin, err := s.site.Admin(def.Name)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	form, err := forms.New(def.Meta, s.customizer().FormField)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	if c.Request.Method != http.MethodPost {
		if id > 0 {
			values, err := admin.Values(ctx, id)
			if err != nil {
				AbortWithError(c, err)
				return
			}
			form.SetInitial(values)
		}
		s.renderForm(c, def, form, id)
		return
	}

	if err := c.Request.ParseForm(); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}
	form.Bind(c.Request.PostForm)

	valid, err := form.IsValid(ctx)
	if err != nil {
		s.formMetrics.RecordSubmission(def.Name, obsmetrics.FormOutcomeFailed)
		AbortWithError(c, err)
		return
	}
	if !valid {
		s.formMetrics.RecordSubmission(def.Name, obsmetrics.FormOutcomeInvalid)
		s.renderForm(c, def, form, id)
		return
	}

	data := form.CleanedData()
	if id == 0 {
		created, err := admin.CreateValues(ctx, data)
		if err == nil {
			id = created.Int64()
		}
		err = s.saveError(form, err)
		if err != nil {
			s.formMetrics.RecordSubmission(def.Name, obsmetrics.FormOutcomeFailed)
			AbortWithError(c, err)
			return
		}
	} else if err := s.saveError(form, admin.UpdateValues(ctx, id, data)); err != nil {
		s.formMetrics.RecordSubmission(def.Name, obsmetrics.FormOutcomeFailed)
		AbortWithError(c, err)
		return
	}

	if len(form.NonFieldErrors()) > 0 {
		s.formMetrics.RecordSubmission(def.Name, obsmetrics.FormOutcomeInvalid)
		s.renderForm(c, def, form, id)
		return
	}

	s.formMetrics.RecordSubmission(def.Name, obsmetrics.FormOutcomeSaved)
	s.log.Info("form saved", zap.String("form", def.Name), zap.Int64("id", id))
	c.Redirect(http.StatusSeeOther, fmt.Sprintf("/forms/%s/%d/edit?saved=1", def.Name, id))
}

// saveError turns persistence conflicts into form errors and returns any
// other failure.
func (s *Server) saveError(form *forms.Form, err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, console.ErrConflict):
		form.AddError("", "A record with these values already exists.")
		return nil
	case errors.Is(err, console.ErrInvalidReference):
		form.AddError("", "A related record does not exist.")
		return nil
	default:
		return err
	}
}

func (s *Server) renderForm(c *gin.Context, def forms.Definition, form *forms.Form, id int64) {
	html, err := form.AsMDL(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	title := "New " + strings.ToLower(def.Title)
	action := fmt.Sprintf("/forms/%s/new", def.Name)
	if id > 0 {
		title = "Edit " + strings.ToLower(def.Title)
		action = fmt.Sprintf("/forms/%s/%d/edit", def.Name, id)
	}

	s.renderPage(c, http.StatusOK, "form.html", pongo2.Context{
		"title":     title,
		"action":    action,
		"form_html": html,
		"saved":     c.Query("saved") != "" && c.Request.Method != http.MethodPost,
	})
}
