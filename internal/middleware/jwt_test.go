package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"taka_track/internal/models"
	"taka_track/internal/stores"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func authedRouter() *gin.Engine {
	r := gin.New()
	r.GET("/protected", RequireAuth(), func(c *gin.Context) {
		id, ok := CurrentUserID(c)
		if !ok {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false})
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "user_id": id})
	})
	return r
}

func doGet(r *gin.Engine, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRequireAuth_ValidToken(t *testing.T) {
	token, err := GenerateToken(42, "jane@example.com", models.RoleUser)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	w := doGet(authedRouter(), "/protected", token)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", w.Code, w.Body.String())
	}
}

func TestRequireAuth_MissingHeader(t *testing.T) {
	w := doGet(authedRouter(), "/protected", "")
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}
}

func TestRequireAuth_MalformedToken(t *testing.T) {
	w := doGet(authedRouter(), "/protected", "not-a-jwt")
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}
}

func TestRequireAuth_ExpiredToken(t *testing.T) {
	claims := jwt.MapClaims{
		"user_id": 42,
		"email":   "jane@example.com",
		"role":    models.RoleUser,
		"exp":     time.Now().Add(-time.Hour).Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	w := doGet(authedRouter(), "/protected", token)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for expired token, got %d", w.Code)
	}
}

func TestRequireAuth_WrongSignature(t *testing.T) {
	claims := jwt.MapClaims{
		"user_id": 42,
		"exp":     time.Now().Add(time.Hour).Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("other-secret"))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	w := doGet(authedRouter(), "/protected", token)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for bad signature, got %d", w.Code)
	}
}

func adminRouter(users stores.UserStore) *gin.Engine {
	r := gin.New()
	r.GET("/admin", RequireAdmin(users), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"success": true})
	})
	return r
}

func TestRequireAdmin(t *testing.T) {
	users := stores.NewMemoryUserStore()
	admin := models.User{Name: "Root", Email: "root@example.com", Password: "x", Role: models.RoleAdmin}
	if err := users.Create(context.Background(), &admin); err != nil {
		t.Fatalf("seed admin: %v", err)
	}
	citizen := models.User{Name: "Jane", Email: "jane@example.com", Password: "x", Role: models.RoleUser}
	if err := users.Create(context.Background(), &citizen); err != nil {
		t.Fatalf("seed user: %v", err)
	}

	r := adminRouter(users)

	adminToken, _ := GenerateToken(admin.ID, admin.Email, admin.Role)
	if w := doGet(r, "/admin", adminToken); w.Code != http.StatusOK {
		t.Fatalf("admin should pass, got %d", w.Code)
	}

	// Authenticated but wrong role is forbidden, not unauthorized.
	userToken, _ := GenerateToken(citizen.ID, citizen.Email, citizen.Role)
	if w := doGet(r, "/admin", userToken); w.Code != http.StatusForbidden {
		t.Fatalf("non-admin should get 403, got %d", w.Code)
	}

	// Token for a user absent from the store is unauthorized.
	ghostToken, _ := GenerateToken(999, "ghost@example.com", models.RoleAdmin)
	if w := doGet(r, "/admin", ghostToken); w.Code != http.StatusUnauthorized {
		t.Fatalf("absent user should get 401, got %d", w.Code)
	}

	if w := doGet(r, "/admin", ""); w.Code != http.StatusUnauthorized {
		t.Fatalf("missing token should get 401, got %d", w.Code)
	}
}
