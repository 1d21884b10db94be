package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLimit(t *testing.T) {
	five := 5

	tests := []struct {
		name  string
		promo PromoCode
		want  int
	}{
		{"explicit limit", PromoCode{UsageLimit: &five}, 5},
		{"explicit limit on personal code", PromoCode{Kind: KindPersonal, UsageLimit: &five}, 5},
		{"personal defaults to one", PromoCode{Kind: KindPersonal}, 1},
		{"reusable without limit is unbounded", PromoCode{Kind: KindReusable}, UnlimitedUses},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.promo.Limit())
		})
	}
}

func TestNormalizeCode(t *testing.T) {
	assert.Equal(t, "SAVE20", NormalizeCode("  save20 "))
	assert.Equal(t, "SAVE20", NormalizeCode("SAVE20"))
	assert.Equal(t, "", NormalizeCode("   "))
}

func TestReservationIsLive(t *testing.T) {
	now := time.Now()
	future := now.Add(time.Minute)
	past := now.Add(-time.Minute)

	assert.True(t, (&Reservation{Status: StatusReserved, ValidUntil: future}).IsLive(now))
	assert.False(t, (&Reservation{Status: StatusReserved, ValidUntil: past}).IsLive(now))
	assert.False(t, (&Reservation{Status: StatusCancelled, ValidUntil: future}).IsLive(now))
	assert.False(t, (&Reservation{Status: StatusConfirmed, ValidUntil: future}).IsLive(now))
}
