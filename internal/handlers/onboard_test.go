package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/kyisaiah47/springforge/internal/auth"
	"github.com/kyisaiah47/springforge/internal/models"
	"github.com/kyisaiah47/springforge/internal/onboarding"
	"github.com/kyisaiah47/springforge/internal/types"
)

type fakeResolver struct {
	result onboarding.Result
	err    error
	got    auth.Identity
}

func (r *fakeResolver) Resolve(ctx context.Context, identity auth.Identity) (onboarding.Result, error) {
	r.got = identity
	return r.result, r.err
}

func onboardRouter(resolver OnboardingResolver, identity *auth.Identity) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/onboard", func(ctx *gin.Context) {
		if identity != nil {
			ctx.Set(types.ContextIdentityKey, *identity)
		}
		ctx.Next()
	}, Onboard(resolver))
	return r
}

func TestOnboardNewUser(t *testing.T) {
	resolver := &fakeResolver{
		result: onboarding.Result{
			Member:       &models.Member{ID: "m-1", OrgID: "o-1", Email: "a@x.com", Role: types.RoleAdmin},
			Organization: &models.Organization{ID: "o-1", Name: "Ann's Team"},
			IsNewUser:    true,
		},
	}
	identity := auth.Identity{Email: "a@x.com"}
	router := onboardRouter(resolver, &identity)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/onboard", nil)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d (body %s)", w.Code, http.StatusOK, w.Body.String())
	}

	var body struct {
		Member       *models.Member       `json:"member"`
		Organization *models.Organization `json:"organization"`
		IsNewUser    bool                 `json:"is_new_user"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode response: %v", err)
	}

	if !body.IsNewUser {
		t.Errorf("is_new_user = false, want true")
	}
	if body.Organization == nil || body.Organization.Name != "Ann's Team" {
		t.Errorf("organization = %+v, want Ann's Team", body.Organization)
	}
	if body.Member == nil || body.Member.OrgID != body.Organization.ID {
		t.Errorf("member/organization mismatch: %+v", body)
	}
	if resolver.got.Email != "a@x.com" {
		t.Errorf("resolver saw identity %+v", resolver.got)
	}
}

func TestOnboardExistingUserOmitsOrganization(t *testing.T) {
	resolver := &fakeResolver{
		result: onboarding.Result{
			Member:    &models.Member{ID: "m-1", OrgID: "o-1", Email: "a@x.com"},
			IsNewUser: false,
		},
	}
	identity := auth.Identity{Email: "a@x.com"}
	router := onboardRouter(resolver, &identity)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/onboard", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}

	var body map[string]json.RawMessage
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if _, ok := body["organization"]; ok {
		t.Errorf("existing-member response must not carry an organization")
	}
}

func TestOnboardWithoutIdentity(t *testing.T) {
	router := onboardRouter(&fakeResolver{}, nil)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/onboard", nil))

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusUnauthorized)
	}
}

func TestOnboardResolverFailure(t *testing.T) {
	resolver := &fakeResolver{err: errors.New("insert failed")}
	identity := auth.Identity{Email: "a@x.com"}
	router := onboardRouter(resolver, &identity)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/onboard", nil))

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusInternalServerError)
	}

	var body map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if body["error"] == "" {
		t.Errorf("expected error field in body, got %s", w.Body.String())
	}
}
