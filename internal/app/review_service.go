package app

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/form3tech-oss/jwt-go"

	"bridgetutor/internal/domain"
	"bridgetutor/internal/engine"
)

// ReviewService mints signed tokens the external review UI uses to verify
// that a graded deal really came from this server.
type ReviewService struct {
	reviewSecret string
	reviewIssuer string
}

func NewReviewService(secret, issuer string) *ReviewService {
	return &ReviewService{
		reviewSecret: secret,
		reviewIssuer: issuer,
	}
}

// GenerateToken signs the grading outcome for one seat of one deal.
func (s *ReviewService) GenerateToken(user, dealID string, seat domain.Seat, rating engine.Rating, score float64) (string, error) {
	if s == nil {
		return "", fmt.Errorf("review service is nil")
	}
	if user == "" {
		return "", fmt.Errorf("user is required")
	}
	if dealID == "" {
		return "", fmt.Errorf("deal id is required")
	}
	if s.reviewSecret == "" || s.reviewIssuer == "" {
		return "", fmt.Errorf("review config is incomplete")
	}

	switch rating {
	case engine.RatingOptimal, engine.RatingAcceptable, engine.RatingSuboptimal, engine.RatingError:
	default:
		return "", fmt.Errorf("unsupported rating: %s", rating)
	}

	claims := jwt.MapClaims{
		"iss":    s.reviewIssuer,
		"sub":    user,
		"exp":    time.Now().Add(time.Hour * 1).Unix(),
		"jti":    fmt.Sprintf("%d-%d", time.Now().UnixNano(), rand.Int63()),
		"deal":   dealID,
		"seat":   seat.String(),
		"rating": string(rating),
		"score":  score,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.reviewSecret))
}
