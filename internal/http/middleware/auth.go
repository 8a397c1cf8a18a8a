package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/yungbote/trainwise-backend/internal/http/response"
	"github.com/yungbote/trainwise-backend/internal/platform/ctxutil"
	"github.com/yungbote/trainwise-backend/internal/platform/logger"
)

var errMissingToken = errors.New("missing or invalid token")

type AuthConfig struct {
	SecretKey string
	// Disabled lets anonymous requests through. A valid token still sets the
	// user so strength history applies.
	Disabled bool
}

type AuthMiddleware struct {
	log    *logger.Logger
	cfg    AuthConfig
	parser *jwt.Parser
}

func NewAuthMiddleware(log *logger.Logger, cfg AuthConfig) *AuthMiddleware {
	if log == nil {
		log = logger.NewNop()
	}
	return &AuthMiddleware{
		log:    log.With("middleware", "AuthMiddleware"),
		cfg:    cfg,
		parser: jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired()),
	}
}

func (am *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractToken(c)
		if token == "" {
			if am.cfg.Disabled {
				c.Next()
				return
			}
			response.AbortError(c, http.StatusUnauthorized, "unauthorized", errMissingToken)
			return
		}
		userID, err := am.ParseUserID(token)
		if err != nil {
			am.log.Debug("Rejected bearer token", "error", err)
			if am.cfg.Disabled {
				c.Next()
				return
			}
			response.AbortError(c, http.StatusUnauthorized, "unauthorized", errMissingToken)
			return
		}
		ctx := ctxutil.WithRequestData(c.Request.Context(), &ctxutil.RequestData{UserID: userID})
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

// ParseUserID verifies an HS256 token and returns its subject as a user id.
func (am *AuthMiddleware) ParseUserID(token string) (uuid.UUID, error) {
	if strings.TrimSpace(am.cfg.SecretKey) == "" {
		return uuid.Nil, errors.New("jwt secret not configured")
	}
	claims := &jwt.RegisteredClaims{}
	parsed, err := am.parser.ParseWithClaims(token, claims, func(*jwt.Token) (any, error) {
		return []byte(am.cfg.SecretKey), nil
	})
	if err != nil {
		return uuid.Nil, fmt.Errorf("parse token: %w", err)
	}
	if !parsed.Valid {
		return uuid.Nil, errors.New("invalid token")
	}
	userID, err := uuid.Parse(claims.Subject)
	if err != nil || userID == uuid.Nil {
		return uuid.Nil, fmt.Errorf("invalid subject %q", claims.Subject)
	}
	return userID, nil
}

func extractToken(c *gin.Context) string {
	h := strings.TrimSpace(c.GetHeader("Authorization"))
	if len(h) > 7 && strings.EqualFold(h[:7], "Bearer ") {
		return strings.TrimSpace(h[7:])
	}
	return ""
}
