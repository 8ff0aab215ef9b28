package config

import "fmt"

// Error wraps anything that goes wrong while loading the config file.
type Error struct {
	reason string
}

func (e Error) Error() string {
	return fmt.Sprintf("config error: %s", e.reason)
}
