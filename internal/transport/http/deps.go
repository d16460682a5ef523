package http

import (
	"github.com/phone-auth-api/internal/infrastructure/dynamo"
	jwtinfra "github.com/phone-auth-api/internal/infrastructure/jwt"
	"github.com/phone-auth-api/internal/infrastructure/sns"
)

// Deps holds all infrastructure dependencies for the router.
type Deps struct {
	VerificationRepo *dynamo.VerificationRepo
	UserRepo         *dynamo.UserRepo
	CodeSender       sns.CodeSender
	JWTProvider      *jwtinfra.Provider
}
