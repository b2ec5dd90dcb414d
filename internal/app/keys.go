package app

import "github.com/Hemanth040/farm-management-system/internal/keys"

// KeyMap aliases the shared keymap type.
type KeyMap = keys.KeyMap

// DefaultKeyMap delegates to keys.DefaultKeyMap.
func DefaultKeyMap() *KeyMap {
	return keys.DefaultKeyMap()
}
