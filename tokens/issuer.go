package tokens

import (
	"os"
	"strconv"
	"time"

	"github.com/crewline/crewline/config"
	"github.com/lestrrat-go/jwx/v2/jwa"
	"github.com/lestrrat-go/jwx/v2/jwk"
	"github.com/lestrrat-go/jwx/v2/jwt"
	"go.uber.org/zap"
)

const (
	// ClaimEmail is the email claim
	ClaimEmail = "email"
	// ClaimUsername is the display name claim
	ClaimUsername = "username"
	// ClaimRole is the role claim
	ClaimRole = "role"
	// ClaimRestaurantID is the tenant binding claim
	ClaimRestaurantID = "restaurant_id"
)

// TokenIssuer issues HMAC signed access tokens
type TokenIssuer struct {
	log        *zap.Logger
	iss        string
	expiry     time.Duration
	alg        jwa.SignatureAlgorithm
	privateKey jwk.Key
}

func loadHMACKey(cfg *config.JWTConfiguration, log *zap.Logger) jwk.Key {
	var raw []byte
	//direct key takes precedence
	if len(cfg.HMACSigningKey) > 0 {
		raw = []byte(cfg.HMACSigningKey)
	} else if len(cfg.HMACSigningKeyFile) > 0 {
		content, err := os.ReadFile(cfg.HMACSigningKeyFile)
		if err != nil {
			log.Error("could not load key file",
				zap.String("file", cfg.HMACSigningKeyFile),
				zap.Error(err))
			panic("could not load key file")
		}
		raw = content
	} else {
		log.Error("no HMAC key defined, either set jwt.hmac-signing-key or jwt.hmac-signing-key-file")
		panic("no HMAC key defined")
	}
	if len(raw) < 32 {
		log.Warn("the configured HMAC key is shorter than 32 bytes")
	}
	key, err := jwk.FromRaw(raw)
	if err != nil {
		log.Error("unable to process symetric key", zap.Error(err))
		panic("unable to process symetric key")
	}
	return key
}

func NewIssuer(log *zap.Logger, cfg *config.JWTConfiguration) *TokenIssuer {
	expiry := cfg.Expiry
	if expiry == 0 {
		expiry = 24 * time.Hour
	}
	return &TokenIssuer{
		log:        log,
		iss:        cfg.Issuer,
		expiry:     expiry,
		alg:        jwa.HS256,
		privateKey: loadHMACKey(cfg, log),
	}
}

// IssueAccessToken issues a signed access token carrying the role and
// restaurant binding of the user
func (t *TokenIssuer) IssueAccessToken(
	userID int,
	email string,
	username string,
	role string,
	restaurantID *int,
) (string, error) {
	tokenBuilder := jwt.NewBuilder().
		IssuedAt(time.Now().UTC()).
		Expiration(time.Now().UTC().Add(t.expiry)).
		Issuer(t.iss).
		Subject(strconv.Itoa(userID)).
		Claim(ClaimEmail, email).
		Claim(ClaimUsername, username).
		Claim(ClaimRole, role)
	if restaurantID != nil {
		tokenBuilder.Claim(ClaimRestaurantID, *restaurantID)
	}
	token, err := tokenBuilder.Build()
	if err != nil {
		return "", err
	}
	signed, err := jwt.Sign(token, jwt.WithKey(t.alg, t.privateKey))
	if err != nil {
		return "", err
	}
	return string(signed), nil
}

func (t *TokenIssuer) Alg() string {
	return string(t.alg)
}

func (t *TokenIssuer) PrivateKey() jwk.Key {
	return t.privateKey
}

func (t *TokenIssuer) Expiry() time.Duration {
	return t.expiry
}
