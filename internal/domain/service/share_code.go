package service

// ShareCodeGenerator produces the short codes users hand to friends to
// establish a sharing relationship. Codes are 6 uppercase alphanumeric
// characters; global uniqueness is best-effort and enforced elsewhere.
type ShareCodeGenerator interface {
	// Generate returns a fresh share code.
	Generate() (string, error)
}
