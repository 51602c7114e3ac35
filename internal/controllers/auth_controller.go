package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"taka_track/internal/middleware"
	"taka_track/internal/models"
	"taka_track/internal/stores"
)

// AuthController handles signup and token issuance.
type AuthController struct {
	Users stores.UserStore
}

func NewAuthController(users stores.UserStore) *AuthController {
	return &AuthController{Users: users}
}

type signupInput struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

type loginInput struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// Signup creates a user account. The role is always "user"; admin accounts
// are provisioned out of band (cmd/createadmin).
func (ac *AuthController) Signup(c *gin.Context) {
	var input signupInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
		return
	}

	hashed, err := hashPassword(input.Password)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "could not hash password"})
		return
	}

	user := models.User{
		Name:     input.Name,
		Email:    input.Email,
		Password: hashed,
		Role:     models.RoleUser,
	}
	if err := ac.Users.Create(c.Request.Context(), &user); err != nil {
		if errors.Is(err, stores.ErrDuplicateEmail) {
			c.JSON(http.StatusConflict, gin.H{"success": false, "message": "email already in use"})
			return
		}
		logrus.WithError(err).Error("Signup: could not create user")
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "could not create user"})
		return
	}

	token, err := middleware.GenerateToken(user.ID, user.Email, user.Role)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "could not generate token"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"token":   token,
		"user":    user,
	})
}

// Login verifies credentials and issues a token.
func (ac *AuthController) Login(c *gin.Context) {
	ac.login(c, false)
}

// AdminLogin is Login restricted to admin-role accounts.
func (ac *AuthController) AdminLogin(c *gin.Context) {
	ac.login(c, true)
}

func (ac *AuthController) login(c *gin.Context, adminOnly bool) {
	var input loginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
		return
	}

	user, err := ac.Users.FindByEmail(c.Request.Context(), input.Email)
	if err != nil {
		if errors.Is(err, stores.ErrNotFound) {
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "invalid credentials"})
			return
		}
		logrus.WithError(err).Error("Login: store failure")
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "database error"})
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(input.Password)); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "invalid credentials"})
		return
	}

	if adminOnly && !user.IsAdmin() {
		c.JSON(http.StatusForbidden, gin.H{"success": false, "message": "Access denied. Admin privileges required."})
		return
	}

	token, err := middleware.GenerateToken(user.ID, user.Email, user.Role)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "could not generate token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"token":   token,
		"user":    user,
	})
}

func hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
