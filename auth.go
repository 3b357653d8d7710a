package main

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
)

// dummyHash is a pre-computed bcrypt hash used when a login username isn't found.
// Running bcrypt against it (instead of returning early) keeps response time
// constant, preventing timing-based username enumeration.
var dummyHash, _ = bcrypt.GenerateFromPassword([]byte("dummy"), bcrypt.DefaultCost)

// loginRow is a member joined with the onboarding flag from their profile.
// Members without a profile row have not started onboarding.
type loginRow struct {
	ID                 int    `db:"id"`
	AuthToken          string `db:"auth_token"`
	Password           string `db:"password"`
	OnboardingComplete bool   `db:"onboarding_complete"`
}

// loginResponse tells the client where to send the member next: the
// onboarding form, or straight to their targets.
type loginResponse struct {
	Token              string `json:"token"`
	MemberID           int    `json:"member_id"`
	OnboardingComplete bool   `json:"onboarding_complete"`
}

func newLoginResponse(r loginRow) loginResponse {
	return loginResponse{Token: r.AuthToken, MemberID: r.ID, OnboardingComplete: r.OnboardingComplete}
}

// login verifies username/password and returns the member's auth token
// together with whether onboarding is finished.
// POST /api/login (public, no auth required).
func (h *Handler) login(c *gin.Context) {
	var body struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		apiError(c, http.StatusBadRequest, "invalid request body")
		return
	}

	row, lookupErr := queryOne[loginRow](h.db, c, `
		SELECT m.id, m.auth_token, m.password,
		       COALESCE(p.onboarding_complete, false) AS onboarding_complete
		FROM members m
		LEFT JOIN member_profiles p ON p.member_id = m.id
		WHERE m.username = @username`,
		pgx.NamedArgs{"username": body.Username})

	hashToCheck := string(dummyHash)
	if lookupErr == nil {
		hashToCheck = row.Password
	}
	compareErr := bcrypt.CompareHashAndPassword([]byte(hashToCheck), []byte(body.Password))

	if lookupErr != nil || compareErr != nil {
		apiError(c, http.StatusUnauthorized, "invalid credentials")
		return
	}

	log.Info().Int("member_id", row.ID).Bool("onboarding_complete", row.OnboardingComplete).Msg("[login] member signed in")
	c.JSON(http.StatusOK, newLoginResponse(row))
}

// authMiddleware validates the Bearer token and sets member_id on the context.
func (h *Handler) authMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			apiError(c, http.StatusUnauthorized, "missing or invalid authorization header")
			c.Abort()
			return
		}
		token := strings.TrimPrefix(header, "Bearer ")

		var memberID int
		err := h.db.QueryRow(c, "SELECT id FROM members WHERE auth_token = $1", token).Scan(&memberID)
		if err != nil {
			apiError(c, http.StatusUnauthorized, "invalid token")
			c.Abort()
			return
		}

		c.Set("member_id", memberID)
		c.Next()
	}
}
