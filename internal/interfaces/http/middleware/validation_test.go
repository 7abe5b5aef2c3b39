package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turkmasale/backend/internal/interfaces/http/dto"
)

type contactForm struct {
	Name    string `json:"name" binding:"required,min=1,max=100"`
	Email   string `json:"email" binding:"required,email"`
	Message string `json:"message" binding:"required,min=1"`
}

func newValidationRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	SetupValidator()

	router := gin.New()
	router.POST("/contact", func(c *gin.Context) {
		var form contactForm
		if err := c.ShouldBindJSON(&form); err != nil {
			HandleValidationError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true})
	})
	return router
}

func postContact(router *gin.Engine, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest("POST", "/contact", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestSetupValidator_UsesJSONFieldNames(t *testing.T) {
	router := newValidationRouter()

	w := postContact(router, `{"name": "Asha", "email": "not-an-email", "message": "hi"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	var resp dto.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Error.Details, 1)
	assert.Equal(t, "email", resp.Error.Details[0].Field)
}

func TestHandleValidationError_DetailPerField(t *testing.T) {
	router := newValidationRouter()

	w := postContact(router, `{"email": "not-an-email"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	var resp dto.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.False(t, resp.Success)
	assert.Equal(t, dto.ErrCodeValidation, resp.Error.Code)
	assert.Equal(t, "Request validation failed", resp.Error.Message)
	assert.Len(t, resp.Error.Details, 3)
}

func TestHandleValidationError_ValidInputPasses(t *testing.T) {
	router := newValidationRouter()

	w := postContact(router, `{"name": "Asha", "email": "asha@example.com", "message": "Do you ship to Pune?"}`)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestFormatValidationErrors_NonValidatorError(t *testing.T) {
	resp := FormatValidationErrors(assert.AnError, "req-1")

	assert.False(t, resp.Success)
	assert.Equal(t, dto.ErrCodeValidation, resp.Error.Code)
	assert.Empty(t, resp.Error.Details)
	assert.Equal(t, "req-1", resp.Error.RequestID)
}

func TestValidationMessage(t *testing.T) {
	type ruleSet struct {
		Required string `binding:"required"`
		Email    string `binding:"email"`
		Min      string `binding:"min=5"`
		MinInt   int    `binding:"min=2"`
		Max      string `binding:"max=3"`
		Len      string `binding:"len=5"`
		UUID     string `binding:"uuid"`
		OneOf    string `binding:"oneof=asc desc"`
		URL      string `binding:"url"`
		Numeric  string `binding:"numeric"`
		Unknown  string `binding:"lowercase"`
	}

	v := validator.New()
	v.SetTagName("binding")
	err := v.Struct(ruleSet{
		Email:   "invalid",
		Min:     "ab",
		MinInt:  1,
		Max:     "toolong",
		Len:     "ab",
		UUID:    "invalid",
		OneOf:   "sideways",
		URL:     "invalid",
		Numeric: "abc",
		Unknown: "MIXED",
	})
	require.Error(t, err)

	expected := map[string]string{
		"Required": "This field is required",
		"Email":    "Invalid email format",
		"Min":      "Must be at least 5 characters",
		"MinInt":   "Must be at least 2",
		"Max":      "Must be at most 3 characters",
		"Len":      "Must be exactly 5 characters",
		"UUID":     "Invalid UUID format",
		"OneOf":    "Must be one of: asc desc",
		"URL":      "Invalid URL format",
		"Numeric":  "Must be numeric",
		"Unknown":  "Invalid value",
	}

	validationErrors := err.(validator.ValidationErrors)
	require.Len(t, validationErrors, len(expected))
	for _, e := range validationErrors {
		assert.Equal(t, expected[e.StructField()], validationMessage(e), e.StructField())
	}
}
