package utils

import (
	"crypto/rand"
	"encoding/json"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
)

const orderRefAlphabet = "abcdefghijklmnopqrstuvwxyz0123456789"

// GenerateOrderReference builds a merchant-unique order id in the form
// ORDER_<unix-ms>_<RANDOM>. The random suffix disambiguates orders created
// in the same millisecond.
func GenerateOrderReference() string {
	suffix := make([]byte, 8)
	for i := range suffix {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(len(orderRefAlphabet))))
		if err != nil {
			// crypto/rand only fails when the OS entropy source is broken
			return fmt.Sprintf("ORDER_%d_%s", time.Now().UnixMilli(),
				strings.ToUpper(uuid.New().String()[:8]))
		}
		suffix[i] = orderRefAlphabet[n.Int64()]
	}
	return fmt.Sprintf("ORDER_%d_%s", time.Now().UnixMilli(), strings.ToUpper(string(suffix)))
}

func ParseStringToUUID(s string) uuid.UUID {
	uid, err := uuid.Parse(s)
	if err != nil || s == "" {
		return uuid.Nil
	}
	return uid
}

// UnmarshalTask decodes an asynq task payload into dest.
func UnmarshalTask(t *asynq.Task, dest interface{}) error {
	if err := json.Unmarshal(t.Payload(), dest); err != nil {
		return fmt.Errorf("unmarshal task %s: %w", t.Type(), err)
	}
	return nil
}
