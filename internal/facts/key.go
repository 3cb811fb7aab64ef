// Package facts defines the per-learner records tracked for arithmetic
// facts: the SM-2 fact record, the append-only attempt log entry, and the
// table-practice addition record.
package facts

import (
	"fmt"
	"strconv"
	"strings"
)

// Key identifies one fact for one learner. Operands keep their presentation
// order, so 8+3 and 3+8 are different keys.
type Key struct {
	UserID   string
	Operand1 int
	Operand2 int
}

// NewKey returns the key for operand1+operand2 as presented to userID.
func NewKey(userID string, operand1, operand2 int) Key {
	return Key{UserID: userID, Operand1: operand1, Operand2: operand2}
}

// FactKey renders the stored fact key, e.g. "8+3".
func (k Key) FactKey() string {
	return FormatFactKey(k.Operand1, k.Operand2)
}

// Sum returns the correct answer for the fact.
func (k Key) Sum() int {
	return k.Operand1 + k.Operand2
}

func (k Key) String() string {
	return k.UserID + "/" + k.FactKey()
}

// FormatFactKey renders operands as a fact key without normalizing order.
func FormatFactKey(operand1, operand2 int) string {
	return strconv.Itoa(operand1) + "+" + strconv.Itoa(operand2)
}

// ParseFactKey splits a fact key back into its operands.
func ParseFactKey(factKey string) (int, int, error) {
	// Skip a leading sign so "-2+5" splits at the operator.
	idx := strings.Index(factKey[min(1, len(factKey)):], "+")
	if idx < 0 {
		return 0, 0, fmt.Errorf("invalid fact key %q: missing '+'", factKey)
	}
	idx += min(1, len(factKey))

	op1, err := strconv.Atoi(factKey[:idx])
	if err != nil {
		return 0, 0, fmt.Errorf("invalid fact key %q: %w", factKey, err)
	}
	op2, err := strconv.Atoi(factKey[idx+1:])
	if err != nil {
		return 0, 0, fmt.Errorf("invalid fact key %q: %w", factKey, err)
	}
	return op1, op2, nil
}

// KeyOf rebuilds a Key from a user ID and a stored fact key.
func KeyOf(userID, factKey string) (Key, error) {
	op1, op2, err := ParseFactKey(factKey)
	if err != nil {
		return Key{}, err
	}
	return NewKey(userID, op1, op2), nil
}
