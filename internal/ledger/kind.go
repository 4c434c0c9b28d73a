package ledger

// Kind is the direction of a stock movement.
type Kind string

const (
	KindIn  Kind = "IN"
	KindOut Kind = "OUT"
)

// ParseKind maps a request value onto a Kind. Anything other than the two
// canonical values is rejected.
func ParseKind(s string) (Kind, error) {
	switch Kind(s) {
	case KindIn:
		return KindIn, nil
	case KindOut:
		return KindOut, nil
	}
	return "", ErrInvalidInput
}
