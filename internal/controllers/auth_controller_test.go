package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"

	"taka_track/internal/models"
	"taka_track/internal/stores"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func authTestRouter(users stores.UserStore) *gin.Engine {
	ac := NewAuthController(users)
	r := gin.New()
	r.POST("/auth/signup", ac.Signup)
	r.POST("/auth/login", ac.Login)
	r.POST("/auth/admin/login", ac.AdminLogin)
	return r
}

func postJSON(r *gin.Engine, path string, body any) *httptest.ResponseRecorder {
	payload, _ := json.Marshal(body)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func seedUser(t *testing.T, users *stores.MemoryUserStore, email, password, role string) models.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	u := models.User{Name: "Seeded", Email: email, Password: string(hash), Role: role}
	if err := users.Create(context.Background(), &u); err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return u
}

func TestSignup(t *testing.T) {
	users := stores.NewMemoryUserStore()
	r := authTestRouter(users)

	w := postJSON(r, "/auth/signup", map[string]string{
		"name":     "Jane",
		"email":    "jane@example.com",
		"password": "secret123",
		"role":     "admin", // must be ignored
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d body=%s", w.Code, w.Body.String())
	}

	var resp struct {
		Success bool   `json:"success"`
		Token   string `json:"token"`
		User    struct {
			Role string `json:"role"`
		} `json:"user"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !resp.Success || resp.Token == "" {
		t.Fatalf("expected success with token, got %s", w.Body.String())
	}
	if resp.User.Role != models.RoleUser {
		t.Fatalf("role must never be client-settable at signup, got %q", resp.User.Role)
	}
	if bytes.Contains(w.Body.Bytes(), []byte("secret123")) {
		t.Fatal("response must not leak the password")
	}

	stored, err := users.FindByEmail(context.Background(), "jane@example.com")
	if err != nil {
		t.Fatalf("user not persisted: %v", err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(stored.Password), []byte("secret123")); err != nil {
		t.Fatal("stored password must be a bcrypt hash of the input")
	}
}

func TestSignup_DuplicateEmail(t *testing.T) {
	users := stores.NewMemoryUserStore()
	seedUser(t, users, "jane@example.com", "pw123456", models.RoleUser)
	r := authTestRouter(users)

	w := postJSON(r, "/auth/signup", map[string]string{
		"name": "Jane Again", "email": "jane@example.com", "password": "pw123456",
	})
	if w.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", w.Code)
	}
}

func TestSignup_Validation(t *testing.T) {
	r := authTestRouter(stores.NewMemoryUserStore())

	for name, body := range map[string]map[string]string{
		"missing name":   {"email": "a@b.com", "password": "pw123456"},
		"bad email":      {"name": "A", "email": "not-an-email", "password": "pw123456"},
		"short password": {"name": "A", "email": "a@b.com", "password": "pw"},
	} {
		if w := postJSON(r, "/auth/signup", body); w.Code != http.StatusBadRequest {
			t.Fatalf("%s: expected 400, got %d", name, w.Code)
		}
	}
}

func TestLogin(t *testing.T) {
	users := stores.NewMemoryUserStore()
	seedUser(t, users, "jane@example.com", "secret123", models.RoleUser)
	r := authTestRouter(users)

	w := postJSON(r, "/auth/login", map[string]string{"email": "jane@example.com", "password": "secret123"})
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", w.Code, w.Body.String())
	}

	w = postJSON(r, "/auth/login", map[string]string{"email": "jane@example.com", "password": "wrong"})
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("wrong password: expected 401, got %d", w.Code)
	}

	w = postJSON(r, "/auth/login", map[string]string{"email": "nobody@example.com", "password": "secret123"})
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("unknown email: expected 401, got %d", w.Code)
	}
}

func TestAdminLogin(t *testing.T) {
	users := stores.NewMemoryUserStore()
	seedUser(t, users, "user@example.com", "secret123", models.RoleUser)
	seedUser(t, users, "root@example.com", "secret123", models.RoleAdmin)
	r := authTestRouter(users)

	w := postJSON(r, "/auth/admin/login", map[string]string{"email": "root@example.com", "password": "secret123"})
	if w.Code != http.StatusOK {
		t.Fatalf("admin login: expected 200, got %d", w.Code)
	}

	// Valid credentials but user role: forbidden, distinct from unauthorized.
	w = postJSON(r, "/auth/admin/login", map[string]string{"email": "user@example.com", "password": "secret123"})
	if w.Code != http.StatusForbidden {
		t.Fatalf("non-admin: expected 403, got %d", w.Code)
	}
}
