package repositories

import (
	"time"

	"github.com/checkmarble/asset-lists/models"
	"github.com/cockroachdb/errors"

	"github.com/golang-jwt/jwt/v5"
)

// Claims of the tokens issued by the identity provider. The subject is the user id.
type Claims struct {
	Email string `json:"email,omitempty"`
	Name  string `json:"name,omitempty"`
	jwt.RegisteredClaims
}

var ValidationAlgo = jwt.SigningMethodHS256

type JwtRepository struct {
	signingKey []byte
}

func NewJWTRepository(signingKey string) *JwtRepository {
	return &JwtRepository{
		signingKey: []byte(signingKey),
	}
}

func (repo *JwtRepository) EncodeToken(expirationTime time.Time, user models.User) (string, error) {
	claims := &Claims{
		Email: user.Email,
		Name:  user.Name,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   string(user.UserId),
			ExpiresAt: jwt.NewNumericDate(expirationTime),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(ValidationAlgo, claims)
	return token.SignedString(repo.signingKey)
}

func (repo *JwtRepository) ValidateToken(token string) (models.Credentials, error) {
	keyFunc := func(token *jwt.Token) (any, error) {
		return repo.signingKey, nil
	}

	parsed, err := jwt.ParseWithClaims(token, &Claims{}, keyFunc,
		jwt.WithValidMethods([]string{ValidationAlgo.Alg()}),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return models.Credentials{}, errors.Join(
			models.UnAuthorizedError,
			errors.Wrap(err, "error parsing jwt token claims"),
		)
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return models.Credentials{}, errors.Wrap(models.UnAuthorizedError, "invalid jwt token")
	}
	if claims.Subject == "" {
		return models.Credentials{}, errors.Wrap(models.UnAuthorizedError, "jwt token has no subject")
	}

	return models.User{
		UserId: models.UserId(claims.Subject),
		Email:  claims.Email,
		Name:   claims.Name,
	}.IntoCredentials(), nil
}
