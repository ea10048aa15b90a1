package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/m04kA/SMC-SalonService/internal/api/handlers"
)

const (
	msgMissingToken = "token de acesso ausente"
	msgInvalidToken = "token de acesso inválido ou expirado"
	msgForbidden    = "acesso negado"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Claims полезная нагрузка токена внешнего провайдера авторизации
// sub - UUID пользователя, role - роль в салоне
type Claims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// Authenticator проверка bearer-токенов (HMAC)
type Authenticator struct {
	secret []byte
	logger Logger
}

// NewAuthenticator создает проверку токенов с общим секретом
func NewAuthenticator(secret string, logger Logger) *Authenticator {
	return &Authenticator{secret: []byte(secret), logger: logger}
}

// Middleware проверяет Authorization: Bearer <token> и кладет пользователя в контекст
func (a *Authenticator) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if header == "" {
			a.logger.Warn("Auth: missing Authorization header: %s %s", r.Method, r.URL.Path)
			handlers.RespondUnauthorized(w, msgMissingToken)
			return
		}

		tokenString, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || tokenString == "" {
			a.logger.Warn("Auth: malformed Authorization header: %s %s", r.Method, r.URL.Path)
			handlers.RespondUnauthorized(w, msgInvalidToken)
			return
		}

		claims, err := a.parse(tokenString)
		if err != nil {
			a.logger.Warn("Auth: token rejected: %s %s: %v", r.Method, r.URL.Path, err)
			handlers.RespondUnauthorized(w, msgInvalidToken)
			return
		}

		ctx := WithUser(r.Context(), claims.Subject, claims.Role)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (a *Authenticator) parse(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return a.secret, nil
	}, jwt.WithValidMethods([]string{
		jwt.SigningMethodHS256.Alg(),
		jwt.SigningMethodHS384.Alg(),
		jwt.SigningMethodHS512.Alg(),
	}))
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, errors.New("invalid token")
	}
	if _, err := uuid.Parse(claims.Subject); err != nil {
		return nil, fmt.Errorf("subject must be a UUID: %w", err)
	}
	return claims, nil
}

// RequireRole пропускает только пользователей с указанной ролью
// Должен стоять после Authenticator.Middleware
func RequireRole(role string, logger Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userRole, _ := GetRole(r.Context())
			if userRole != role {
				userID, _ := GetUserID(r.Context())
				logger.Warn("Auth: role %q required, user_id=%s has %q: %s %s", role, userID, userRole, r.Method, r.URL.Path)
				handlers.RespondForbidden(w, msgForbidden)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
