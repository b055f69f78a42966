package jwtmanager

import (
	"fmt"
	"mdtcare-service/internal/app/config"
	"mdtcare-service/internal/app/models"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v4"
)

// JWTManager issues and verifies HS256 tokens carrying the authenticated
// clinician's identity. The parsed claims become the models.TeamMember that
// authorization checks run against.
type JWTManager struct {
	secret []byte
	ttl    time.Duration
}

type clinicianClaims struct {
	Name                string `json:"name"`
	Specialty           string `json:"specialty"`
	Role                string `json:"role"`
	IsPrimaryConsultant bool   `json:"is_primary_consultant"`
	jwt.RegisteredClaims
}

var (
	jwtManagerInstance *JWTManager
	onceJWTManager     sync.Once
)

func NewJWTManager(cfg *config.InternalConfig) (*JWTManager, error) {
	secret := strings.TrimSpace(cfg.JWT.Secret)
	if secret == "" {
		return nil, fmt.Errorf("JWT_SECRET is empty")
	}

	onceJWTManager.Do(func() {
		jwtManagerInstance = &JWTManager{
			secret: []byte(secret),
			ttl:    time.Duration(cfg.JWT.ExpTimeInHour) * time.Hour,
		}
	})
	return jwtManagerInstance, nil
}

func (j *JWTManager) CreateToken(member models.TeamMember) (string, error) {
	now := time.Now().UTC()
	claims := clinicianClaims{
		Name:                member.Name,
		Specialty:           member.Specialty,
		Role:                member.Role,
		IsPrimaryConsultant: member.IsPrimaryConsultant,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   member.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(j.ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(j.secret)
}

func (j *JWTManager) ParseToken(tokenString string) (*models.TeamMember, error) {
	claims := &clinicianClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return j.secret, nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid || claims.Subject == "" {
		return nil, fmt.Errorf("token is invalid")
	}

	return &models.TeamMember{
		ID:                  claims.Subject,
		Name:                claims.Name,
		Specialty:           claims.Specialty,
		Role:                claims.Role,
		IsPrimaryConsultant: claims.IsPrimaryConsultant,
	}, nil
}
