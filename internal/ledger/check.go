package ledger

import (
	"errors"
	"fmt"

	"holdem-server/internal/store"
)

var ErrUnbalanced = errors.New("ledger_unbalanced")

// Check verifies that a hand's debits and credits cancel out.
func Check(rec store.HandRecord) error {
	var debits, credits int64
	for _, e := range rec.Entries {
		switch e.Type {
		case TypeBlindDebit, TypeBetDebit:
			debits += e.Amount
		case TypePotCredit:
			credits += e.Amount
		default:
			return fmt.Errorf("%w: unknown entry type %q", ErrUnbalanced, e.Type)
		}
	}
	if debits != credits {
		return fmt.Errorf("%w: debits %d credits %d", ErrUnbalanced, debits, credits)
	}
	return nil
}
