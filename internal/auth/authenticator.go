package auth

// Gate defines the interface for secret hashing implementations.
// Groups, posts and comments are protected by a secret chosen at creation;
// the service layer only ever sees the stored hash and asks the gate whether
// a candidate matches it.
type Gate interface {
	// Hash returns the stored form of a secret.
	// Called at creation and whenever the secret changes.
	Hash(secret string) (string, error)

	// Verify reports whether candidate matches the stored form.
	// Any internal failure is reported as a mismatch.
	Verify(candidate, stored string) bool
}
