package server

import (
	"embed"
	"fmt"
	"io/fs"
	"net/http"

	"github.com/flosch/pongo2/v6"
	"github.com/gin-gonic/gin"
)

//go:embed templates/*.html
var templateFiles embed.FS

//go:embed assets/*.js
var assetFiles embed.FS

// FormsScriptName binds autocomplete inputs and client-side validation hooks.
const FormsScriptName = "forms.js"

func assetsFS() (fs.FS, error) {
	sub, err := fs.Sub(assetFiles, "assets")
	if err != nil {
		return nil, fmt.Errorf("load page assets: %w", err)
	}
	return sub, nil
}

func newPageSet() (*pongo2.TemplateSet, error) {
	sub, err := fs.Sub(templateFiles, "templates")
	if err != nil {
		return nil, fmt.Errorf("load page templates: %w", err)
	}
	return pongo2.NewSet("coopbilling", pongo2.NewFSLoader(sub)), nil
}

func (s *Server) renderPage(c *gin.Context, status int, name string, data pongo2.Context) {
	tpl, err := s.pages.FromCache(name)
	if err != nil {
		AbortWithError(c, fmt.Errorf("page %s: %w", name, err))
		return
	}

	data["app_name"] = s.cfg.AppName
	data["forms_script"] = FormsScriptName
	out, err := tpl.Execute(data)
	if err != nil {
		AbortWithError(c, fmt.Errorf("page %s: %w", name, err))
		return
	}
	c.Data(status, "text/html; charset=utf-8", []byte(out))
}

func (s *Server) FormIndex(c *gin.Context) {
	s.renderPage(c, http.StatusOK, "index.html", pongo2.Context{
		"forms": s.forms.List(),
	})
}
