package api

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"webgen_ai_server/internal/ai"
	"webgen_ai_server/internal/htmldoc"
	"webgen_ai_server/internal/spec"
	"webgen_ai_server/internal/types"
)

// SiteGenerator is the slice of the AI layer the handlers need.
type SiteGenerator interface {
	GenerateSite(ctx context.Context, spec types.WebsiteSpec) (string, error)
}

// APIHandler holds dependencies for API endpoints.
type APIHandler struct {
	generator SiteGenerator
}

func NewAPIHandler(generator SiteGenerator) *APIHandler {
	return &APIHandler{generator: generator}
}

type GenerateRequest struct {
	Spec types.WebsiteSpec `json:"spec"`
}

// POST /api/generate
func (h *APIHandler) Generate(c *gin.Context) {
	var req GenerateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		// A non-string brief is a validation failure, not a malformed body.
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) && strings.HasSuffix(typeErr.Field, "brief") {
			c.JSON(http.StatusBadRequest, gin.H{"error": spec.ErrBriefRequired.Error()})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}

	normalized, err := spec.Normalize(req.Spec)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	html, err := h.generator.GenerateSite(c.Request.Context(), normalized)
	if err != nil {
		var exhausted *ai.ExhaustedError
		if errors.As(err, &exhausted) {
			log.Printf("generation exhausted after %d model(s): %v", len(exhausted.Tried), exhausted.LastErr)
			resp := gin.H{
				"error": "Model did not return usable HTML",
				"tried": exhausted.Tried,
			}
			if exhausted.LastErr != nil {
				resp["details"] = exhausted.LastErr.Error()
			}
			c.JSON(http.StatusBadGateway, resp)
			return
		}
		log.Printf("unexpected generation error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, types.GenerationResult{
		HTML:        html,
		DownloadURL: htmldoc.DataURI(html),
	})
}
