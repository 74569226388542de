package middleware

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/uida/property-portal/internal/config"
)

type contextKey string

const (
	ownerIDKey contextKey = "owner_id"
	phoneKey   contextKey = "phone"
)

// AuthMiddleware verifies the Bearer token and puts the owner identity into
// the request context
func AuthMiddleware(cfg *config.Config) func(http.Handler) http.Handler {
	jwtKey := []byte(cfg.JWTSecret)
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tokenString := r.Header.Get("Authorization")
			if tokenString == "" {
				http.Error(w, "Authorization header is required", http.StatusUnauthorized)
				return
			}
			tokenString = strings.TrimPrefix(tokenString, "Bearer ")

			token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
				if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
				}
				return jwtKey, nil
			})
			if err != nil || !token.Valid {
				http.Error(w, "Invalid token", http.StatusUnauthorized)
				return
			}

			claims, ok := token.Claims.(jwt.MapClaims)
			if !ok {
				http.Error(w, "Invalid token claims", http.StatusUnauthorized)
				return
			}
			sub, _ := claims["sub"].(string)
			ownerID, err := strconv.ParseInt(sub, 10, 64)
			if err != nil {
				http.Error(w, "Invalid subject in token", http.StatusUnauthorized)
				return
			}
			phone, ok := claims["phone"].(string)
			if !ok || phone == "" {
				http.Error(w, "Invalid phone in token", http.StatusUnauthorized)
				return
			}

			ctx := context.WithValue(r.Context(), ownerIDKey, ownerID)
			ctx = context.WithValue(ctx, phoneKey, phone)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// OwnerFromContext returns the authenticated owner id and phone
func OwnerFromContext(r *http.Request) (int64, string, error) {
	ownerID, ok := r.Context().Value(ownerIDKey).(int64)
	if !ok {
		return 0, "", fmt.Errorf("owner id not found in context")
	}
	phone, ok := r.Context().Value(phoneKey).(string)
	if !ok {
		return 0, "", fmt.Errorf("phone not found in context")
	}
	return ownerID, phone, nil
}
