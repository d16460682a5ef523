package domain

// VerificationRecord is a pending phone verification.
// PK: code_id. The code_id is the opaque handle returned to the caller;
// the six-digit code itself is only ever delivered over SMS.
// CreatedAt/ExpiresAt are Unix millisecond timestamps.
// Records are never updated in place: created by the issuer, deleted exactly
// once — on consumption, on expiry detection, or by the sweeper.
type VerificationRecord struct {
	CodeID    string `json:"code_id" dynamodbav:"code_id"`
	Phone     string `json:"phone" dynamodbav:"phone"`
	Code      string `json:"code" dynamodbav:"code"`
	CreatedAt int64  `json:"created_at" dynamodbav:"created_at"`
	ExpiresAt int64  `json:"expires_at" dynamodbav:"expires_at"`

	// SweepBucket is a constant partition key for the sweep-index GSI so the
	// sweeper can range-query records by expires_at. Set by the repository on
	// write; callers never touch it.
	SweepBucket string `json:"-" dynamodbav:"sweep_bucket"`
}

// Expired reports whether the record's expiry has passed at the given Unix
// millisecond timestamp.
func (v *VerificationRecord) Expired(nowMillis int64) bool {
	return v.ExpiresAt < nowMillis
}
