package redis

import (
	"fmt"

	"github.com/shadowhunt/shadowhunt-go/internal/model"
)

// Key prefix for all event data
const keyPrefix = "shadowhunt"

// userKey returns the Redis key for a User hash.
// Users are stored as hashes (not JSON blobs) so score increments can use
// HINCRBY and stay atomic under concurrent submissions.
func userKey(id model.UserID) string {
	return fmt.Sprintf("%s:user:%s", keyPrefix, id)
}

// usernameIndexKey returns the Redis key for the username -> user_id index
func usernameIndexKey(username string) string {
	return fmt.Sprintf("%s:idx:username:%s", keyPrefix, username)
}

// usersIndexKey returns the Redis key for the SET of all user IDs
func usersIndexKey() string {
	return fmt.Sprintf("%s:idx:users", keyPrefix)
}

// huntSessionKey returns the Redis key for a HuntSession
func huntSessionKey(id model.HuntID) string {
	return fmt.Sprintf("%s:hunt:%s", keyPrefix, id)
}

// huntProgressKey returns the Redis key for a device's room-unlock marker
func huntProgressKey(deviceID string) string {
	return fmt.Sprintf("%s:hunt_progress:%s", keyPrefix, deviceID)
}

// oracleRoundKey returns the Redis key for a user's oracle round state
func oracleRoundKey(userID model.UserID) string {
	return fmt.Sprintf("%s:oracle:%s", keyPrefix, userID)
}

// puzzleStateKey returns the Redis key for a user's timed puzzle state
func puzzleStateKey(userID model.UserID, puzzleID model.PuzzleID) string {
	return fmt.Sprintf("%s:puzzle:%s:%s", keyPrefix, userID, puzzleID)
}

// spentTokenKey returns the Redis key marking a redeemed round token
func spentTokenKey(tokenID string) string {
	return fmt.Sprintf("%s:spent_token:%s", keyPrefix, tokenID)
}
