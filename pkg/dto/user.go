package dto

// SendOTP is the body of POST /api/auth/send-otp.
type SendOTP struct {
	Phone string `json:"phone" validate:"required"`
}

// VerifyOTP is the body of POST /api/auth/verify-otp.
type VerifyOTP struct {
	Phone     string `json:"phone" validate:"required"`
	OTP       string `json:"otp" validate:"required"`
	SessionID string `json:"sessionId" validate:"required"`
}

// Consent is the body of POST /api/auth/consent. A pointer so that a
// missing field can be told apart from false.
type Consent struct {
	Consent *bool `json:"consent" validate:"required"`
}

// LoginResult is returned by a successful OTP verification.
type LoginResult struct {
	Token              string `json:"token"`
	IsNewUser          bool   `json:"isNewUser"`
	IsProfileCompleted bool   `json:"isProfileCompleted"`
	ConsentGiven       bool   `json:"consentGiven"`
}

func (*SendOTP) ValidationMessage() string { return "Valid 10-digit phone required" }

func (*VerifyOTP) ValidationMessage() string { return "phone, otp, and sessionId are required" }

func (*Consent) ValidationMessage() string { return "consent must be true or false" }
