package middleware

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"local-chef-bazaar-api/models"
	"local-chef-bazaar-api/storage"
)

// CookieName carries the credential; http-only, set by POST /jwt.
const CookieName = "token"

// TokenTTL is the credential lifetime.
const TokenTTL = 7 * 24 * time.Hour

type Claims struct {
	Email string          `json:"email"`
	Role  models.UserRole `json:"role"`
	jwt.RegisteredClaims
}

// Auth verifies the cookie-carried JWT and gates admin-only routes.
type Auth struct {
	secret []byte
	store  storage.Store
}

func NewAuth(secret []byte, store storage.Store) *Auth {
	return &Auth{secret: secret, store: store}
}

// GenerateToken creates a signed JWT for a given principal
func (a *Auth) GenerateToken(email string, role models.UserRole) (string, error) {
	claims := Claims{
		Email: email,
		Role:  role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(TokenTTL)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(a.secret)
}

// AuthRequired validates the cookie JWT and injects the principal into
// the context
func (a *Auth) AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenStr, err := c.Cookie(CookieName)
		if err != nil || tokenStr == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication cookie required"})
			c.Abort()
			return
		}
		claims := &Claims{}
		token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, errors.New("unexpected signing method")
			}
			return a.secret, nil
		})
		if err != nil || !token.Valid {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			c.Abort()
			return
		}
		c.Set("email", claims.Email)
		c.Set("role", string(claims.Role))
		c.Next()
	}
}

// AdminRequired re-reads the caller's role from the store instead of
// trusting the role baked into the token: the token may predate a role
// change. Must run after AuthRequired.
func (a *Auth) AdminRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		email := GetEmail(c)
		user, err := a.store.GetUserByEmail(c.Request.Context(), email)
		if err != nil || user.Role != models.RoleAdmin {
			c.JSON(http.StatusForbidden, gin.H{"error": "Admin access required"})
			c.Abort()
			return
		}
		c.Next()
	}
}

// GetEmail extracts the caller's email from context
func GetEmail(c *gin.Context) string {
	val, _ := c.Get("email")
	email, _ := val.(string)
	return email
}

// GetRole extracts the caller's token role from context
func GetRole(c *gin.Context) models.UserRole {
	val, _ := c.Get("role")
	role, _ := val.(string)
	return models.UserRole(role)
}
