package otp

import "github.com/xlzd/gotp"

// Generator produces numeric one-time codes for the local verification
// provider. Production uses the SMS provider's own codes instead.
type Generator interface {
	RandomCode() string
}

type GOTPGenerator struct{}

func NewGOTPGenerator() *GOTPGenerator {
	return &GOTPGenerator{}
}

// RandomCode returns a 6-digit numeric code derived from a fresh random
// secret.
func (g *GOTPGenerator) RandomCode() string {
	secret := gotp.RandomSecret(16)
	return gotp.NewDefaultTOTP(secret).Now()
}
