package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/kyisaiah47/springforge/internal/auth"
	"github.com/kyisaiah47/springforge/internal/utils"
)

func identityRouter(t *testing.T, verifier *auth.TokenVerifier) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/me", RequireIdentity(verifier), func(ctx *gin.Context) {
		identity, err := utils.GetCurrentIdentity(ctx)
		if err != nil {
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		ctx.JSON(http.StatusOK, gin.H{"email": identity.Email})
	})
	return r
}

func TestRequireIdentityAcceptsBearerToken(t *testing.T) {
	verifier, err := auth.NewTokenVerifier("test-secret")
	if err != nil {
		t.Fatalf("NewTokenVerifier returned error: %v", err)
	}
	router := identityRouter(t, verifier)

	token, err := verifier.GenerateToken(auth.Identity{Email: "a@x.com"})
	if err != nil {
		t.Fatalf("GenerateToken returned error: %v", err)
	}

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d (body %s)", w.Code, http.StatusOK, w.Body.String())
	}
}

func TestRequireIdentityRejectsMissingHeader(t *testing.T) {
	verifier, _ := auth.NewTokenVerifier("test-secret")
	router := identityRouter(t, verifier)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/me", nil))

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusUnauthorized)
	}
}

func TestRequireIdentityRejectsMalformedHeader(t *testing.T) {
	verifier, _ := auth.NewTokenVerifier("test-secret")
	router := identityRouter(t, verifier)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Token abc")
	router.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusUnauthorized)
	}
}

func TestRequireIdentityRejectsForgedToken(t *testing.T) {
	minter, _ := auth.NewTokenVerifier("other-secret")
	verifier, _ := auth.NewTokenVerifier("test-secret")
	router := identityRouter(t, verifier)

	token, err := minter.GenerateToken(auth.Identity{Email: "a@x.com"})
	if err != nil {
		t.Fatalf("GenerateToken returned error: %v", err)
	}

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusUnauthorized)
	}
}
