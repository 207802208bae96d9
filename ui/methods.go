package ui

import (
	"embed"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"

	"epilag/domain/correlation"
	"epilag/internal/errors"
)

//go:embed docs/*.md
var methodDocs embed.FS

func (s *Server) handleListMethods(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"methods": correlation.Methods()})
}

// handleMethodInfo renders a method's analyst-facing explainer to HTML.
func (s *Server) handleMethodInfo(c *gin.Context) {
	method, err := correlation.ParseMethod(c.Param("method"))
	if err != nil {
		respondError(c, errors.InvalidInput(err.Error()))
		return
	}

	src, err := methodDocs.ReadFile(fmt.Sprintf("docs/%s.md", method))
	if err != nil {
		respondError(c, errors.NotFound(fmt.Sprintf("documentation for method %s", method)))
		return
	}

	p := parser.NewWithExtensions(parser.CommonExtensions)
	renderer := html.NewRenderer(html.RendererOptions{Flags: html.CommonFlags})
	c.Data(http.StatusOK, "text/html; charset=utf-8", markdown.ToHTML(src, p, renderer))
}
