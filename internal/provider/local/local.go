// Package local is a development stand-in for the SMS verification provider.
// It issues codes itself, keeps a salted hash of each one in redis for the
// challenge lifetime and hands delivery off to a Deliverer (log output or
// the email queue), so the full dispatch/verify flow can run without SMS
// credentials or per-message cost.
package local

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/wellness-compass/backend/internal/provider"
	"github.com/wellness-compass/backend/pkg/hash"
	"github.com/wellness-compass/backend/pkg/logger"
	"github.com/wellness-compass/backend/pkg/otp"
)

const codeKeyPrefix = "otp:code:"

// Deliverer delivers an issued code out of band. Failures are logged and
// never fail the dispatch; locally the log line itself is the delivery.
type Deliverer interface {
	Deliver(ctx context.Context, phoneNumber string, code string) error
}

type Provider struct {
	redis     redis.UniversalClient
	generator otp.Generator
	hasher    hash.CodeHasher
	deliverer Deliverer
	ttl       time.Duration
}

func NewProvider(
	redisClient redis.UniversalClient,
	generator otp.Generator,
	hasher hash.CodeHasher,
	deliverer Deliverer,
	ttl time.Duration,
) *Provider {
	return &Provider{
		redis:     redisClient,
		generator: generator,
		hasher:    hasher,
		deliverer: deliverer,
		ttl:       ttl,
	}
}

func (p *Provider) Configured() bool {
	return p.redis != nil
}

func (p *Provider) Start(ctx context.Context, phoneNumber string) (*provider.StartResult, error) {
	code := p.generator.RandomCode()

	hashed, err := p.hasher.Hash(code)
	if err != nil {
		return nil, &provider.Error{Message: fmt.Sprintf("local provider error: %s", err.Error())}
	}

	if err := p.redis.Set(ctx, codeKeyPrefix+phoneNumber, hashed, p.ttl).Err(); err != nil {
		return nil, &provider.Error{Message: fmt.Sprintf("local provider error: %s", err.Error())}
	}

	logger.Info("local verification code issued",
		zap.String("phone_number", phoneNumber),
		zap.String("code", code),
	)

	if p.deliverer != nil {
		if err := p.deliverer.Deliver(ctx, phoneNumber, code); err != nil {
			logger.Error("deliver local verification code failed", zap.Error(err))
		}
	}

	sid, err := uuid.NewV7()
	if err != nil {
		return nil, &provider.Error{Message: fmt.Sprintf("local provider error: %s", err.Error())}
	}

	return &provider.StartResult{SID: "local-" + sid.String()}, nil
}

func (p *Provider) Check(ctx context.Context, phoneNumber string, code string) error {
	stored, err := p.redis.Get(ctx, codeKeyPrefix+phoneNumber).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return provider.ErrCodeRejected
		}
		return &provider.Error{Message: fmt.Sprintf("local provider error: %s", err.Error())}
	}

	hashed, err := p.hasher.Hash(code)
	if err != nil {
		return &provider.Error{Message: fmt.Sprintf("local provider error: %s", err.Error())}
	}

	if hashed != stored {
		return provider.ErrCodeRejected
	}

	// One-shot: a code cannot be replayed once accepted.
	if err := p.redis.Del(ctx, codeKeyPrefix+phoneNumber).Err(); err != nil {
		logger.Error("delete consumed local code failed", zap.Error(err))
	}

	return nil
}
