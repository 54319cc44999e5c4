package config

import (
	"errors"
	"fmt"
)

var ErrInvalid = errors.New("invalid config")

func (c ServerConfig) Validate() error {
	switch {
	case c.SmallBlind <= 0:
		return fmt.Errorf("%w: SMALL_BLIND must be positive", ErrInvalid)
	case c.StartingStack <= 0:
		return fmt.Errorf("%w: STARTING_STACK must be positive", ErrInvalid)
	case c.MaxSeats < 2 || c.MaxSeats > 8:
		return fmt.Errorf("%w: MAX_SEATS must be between 2 and 8", ErrInvalid)
	case c.TableIdleTimeout <= 0:
		return fmt.Errorf("%w: TABLE_IDLE_TIMEOUT must be positive", ErrInvalid)
	case c.JanitorInterval <= 0:
		return fmt.Errorf("%w: JANITOR_INTERVAL must be positive", ErrInvalid)
	case c.ActionTimeout < 0:
		return fmt.Errorf("%w: ACTION_TIMEOUT must not be negative", ErrInvalid)
	}
	return nil
}
