package ports

import "github.com/quantor-dev/cerberus/core"

// Tokenizer converts between sessions and signed tokens.
// Access and refresh tokens are signed with independent secrets, so a
// token minted for one purpose never verifies as the other.
type Tokenizer interface {
	// Access token operations
	SessionToAccessToken(session *core.Session) (string, error)
	AccessTokenToSession(token string) (*core.Session, error)

	// Refresh token operations
	SessionToRefreshToken(session *core.Session) (string, error)
	RefreshTokenToSession(token string) (*core.Session, error)
}
