package redis

import "fmt"

// Key prefix for all jumpbble data
const keyPrefix = "jumpbble"

// dictionaryKey returns the Redis key for the dictionary word set
func dictionaryKey() string {
	return fmt.Sprintf("%s:dictionary", keyPrefix)
}
