package middleware

import (
	"context"
	"net/http"
	"strconv"

	"github.com/Akhil21232123/hirematrix/internal/models"
	"github.com/Akhil21232123/hirematrix/internal/utils"
)

const candidateIDKey contextKey = "candidate_id"

// SessionAuth verifies the candidate's session token and stashes their ID in
// the request context. Tokens scoped to anything other than "interview" are
// rejected.
func SessionAuth(secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, err := utils.VerifyToken(r, secret)
			if err != nil {
				utils.JSON(w, http.StatusUnauthorized, models.ErrorResponse{
					Code:    "unauthorized",
					Message: err.Error(),
				})
				return
			}

			if scope, _ := claims["scope"].(string); scope != "interview" {
				utils.JSON(w, http.StatusForbidden, models.ErrorResponse{
					Code:    "forbidden",
					Message: "Token scope does not permit interview access",
				})
				return
			}

			sub, err := utils.GetCandidateIDFromClaims(claims)
			if err != nil {
				utils.JSON(w, http.StatusUnauthorized, models.ErrorResponse{
					Code:    "unauthorized",
					Message: err.Error(),
				})
				return
			}
			candidateID, err := strconv.ParseUint(sub, 10, 64)
			if err != nil {
				utils.JSON(w, http.StatusUnauthorized, models.ErrorResponse{
					Code:    "unauthorized",
					Message: "Invalid candidate identifier in token",
				})
				return
			}

			ctx := context.WithValue(r.Context(), candidateIDKey, uint(candidateID))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// AdminAuth guards the monitor endpoints with the admin secret.
func AdminAuth(secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, err := utils.VerifyToken(r, secret)
			if err != nil {
				utils.JSON(w, http.StatusUnauthorized, models.ErrorResponse{
					Code:    "unauthorized",
					Message: err.Error(),
				})
				return
			}
			if scope, _ := claims["scope"].(string); scope != "admin" {
				utils.JSON(w, http.StatusForbidden, models.ErrorResponse{
					Code:    "forbidden",
					Message: "Token scope does not permit admin access",
				})
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// GetCandidateID returns the authenticated candidate's ID, or false when the
// request skipped SessionAuth.
func GetCandidateID(r *http.Request) (uint, bool) {
	id, ok := r.Context().Value(candidateIDKey).(uint)
	return id, ok
}
