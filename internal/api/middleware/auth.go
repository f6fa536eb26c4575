package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/lottotrack/backoffice/internal/api/handler/v1/response"
	"github.com/lottotrack/backoffice/internal/pkg/jwthelper"
)

// CtxKeyUserID is where VerifyJWT stores the authenticated user's ID.
const CtxKeyUserID = "user_id"

type Authenticator struct {
	signingKey []byte
}

func NewAuthenticator(signingKey string) *Authenticator {
	return &Authenticator{
		signingKey: []byte(signingKey),
	}
}

func (a *Authenticator) VerifyJWT() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		header := ctx.GetHeader("Authorization")
		if header == "" {
			response.RenderErr(ctx, response.ErrUnauthorized("missing Authorization header"))
			return
		}

		token, found := strings.CutPrefix(header, "Bearer ")
		if !found {
			response.RenderErr(ctx, response.ErrUnauthorized("malformed Authorization header"))
			return
		}

		claims, err := jwthelper.ParseToken(a.signingKey, token)
		if err != nil {
			response.RenderErr(ctx, response.ErrUnauthorized("invalid or expired token"))
			return
		}

		ctx.Set(CtxKeyUserID, claims.UserID)
		ctx.Next()
	}
}
