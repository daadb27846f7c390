package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"main/services"
	"main/utils"

	"github.com/gin-gonic/gin"
)

func init() {
	gin.SetMode(gin.TestMode)
	utils.JWTSecretKey = "test_secret_key"
	utils.JWTExpirationTime = 3600
	utils.RefreshTokenExpirationTime = 604800
}

func newRefreshRouter() *gin.Engine {
	router := gin.New()
	router.POST("/api/auth/refresh", RefreshTokenHandler)
	return router
}

func TestRefreshTokenHandler(t *testing.T) {
	router := newRefreshRouter()

	refreshToken, err := services.GenerateRefreshToken("user-123")
	if err != nil {
		t.Fatalf("GenerateRefreshToken: %v", err)
	}

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/auth/refresh", nil)
	req.Header.Set("Authorization", "Bearer "+refreshToken)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var response utils.Response
	if err := json.Unmarshal(w.Body.Bytes(), &response); err != nil {
		t.Fatalf("parse response: %v", err)
	}
	data, ok := response.Data.(map[string]interface{})
	if !ok {
		t.Fatal("response missing data object")
	}

	newAccess, _ := data["access_token"].(string)
	if newAccess == "" {
		t.Fatal("response missing access_token")
	}
	if _, ok := data["refresh_token"].(string); !ok {
		t.Fatal("response missing refresh_token")
	}

	userID, err := services.ValidateToken(newAccess, "access")
	if err != nil {
		t.Fatalf("new access token invalid: %v", err)
	}
	if userID != "user-123" {
		t.Errorf("expected user-123, got %q", userID)
	}
}

func TestRefreshTokenHandlerMissingHeader(t *testing.T) {
	router := newRefreshRouter()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/auth/refresh", nil)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", w.Code)
	}
}

func TestRefreshTokenHandlerRejectsAccessToken(t *testing.T) {
	router := newRefreshRouter()

	accessToken, err := services.GenerateAccessToken("user-123")
	if err != nil {
		t.Fatalf("GenerateAccessToken: %v", err)
	}

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/auth/refresh", nil)
	req.Header.Set("Authorization", "Bearer "+accessToken)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401 for access token, got %d", w.Code)
	}
}

func TestRefreshTokenHandlerRejectsGarbage(t *testing.T) {
	router := newRefreshRouter()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/auth/refresh", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	router.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401 for malformed token, got %d", w.Code)
	}
}
