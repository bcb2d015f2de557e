package provider

import "context"

// OTP delivers and checks one-time codes sent to a phone number.
type OTP interface {
	// Name identifies the provider in logs.
	Name() string

	// SendCode texts a fresh code to phone and returns the session id the
	// caller must present when verifying.
	SendCode(ctx context.Context, phone string) (sessionID string, err error)

	// VerifyCode reports whether code is valid for sessionID. A rejected code
	// is ok=false with a nil error; err is reserved for transport failures.
	VerifyCode(ctx context.Context, sessionID, code string) (ok bool, err error)
}
