package common

import "fmt"

func RedisKeyUserPublicName(userID string) string {
	return fmt.Sprintf("user_public_name:%s", userID)
}
