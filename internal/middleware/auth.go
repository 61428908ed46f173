package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/BruksfildServices01/barber-booking/internal/config"
	domain "github.com/BruksfildServices01/barber-booking/internal/domain/reservation"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
)

const (
	ContextUserID   = "userID"
	ContextUserType = "userType"
)

// AuthMiddleware accepts HS256 bearer tokens whose "sub" is the user uuid
// and whose "type" is customer, barber or admin. Admin tokens are still
// checked against storage by the use cases.
func AuthMiddleware(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			abortUnauthorized(c)
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			abortUnauthorized(c)
			return
		}

		token, err := jwt.Parse(parts[1], func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrTokenMalformed
			}
			return []byte(cfg.JWTSecret), nil
		})
		if err != nil || !token.Valid {
			abortUnauthorized(c)
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			abortUnauthorized(c)
			return
		}

		sub, _ := claims["sub"].(string)
		userID, err := uuid.Parse(sub)
		userType := domain.CallerType(toString(claims["type"]))
		if err != nil || userID == uuid.Nil || !userType.Valid() {
			abortUnauthorized(c)
			return
		}

		c.Set(ContextUserID, userID)
		c.Set(ContextUserType, userType)

		c.Next()
	}
}

// CallerFrom returns the identity set by AuthMiddleware.
func CallerFrom(c *gin.Context) (domain.Caller, bool) {
	id, ok1 := c.Get(ContextUserID)
	typ, ok2 := c.Get(ContextUserType)
	if !ok1 || !ok2 {
		return domain.Caller{}, false
	}
	return domain.Caller{ID: id.(uuid.UUID), Type: typ.(domain.CallerType)}, true
}

func abortUnauthorized(c *gin.Context) {
	httperr.Code(c, httperr.CodeUnauthorized)
	c.Abort()
}

func toString(v any) string {
	s, _ := v.(string)
	return s
}
