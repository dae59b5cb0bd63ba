package fee

import (
	"testing"

	"btcwallet/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestCalculate(t *testing.T) {
	alice1 := &models.Wallet{Address: "wallet-1", OwnerKey: "user-alice"}
	alice2 := &models.Wallet{Address: "wallet-2", OwnerKey: "user-alice"}
	bob := &models.Wallet{Address: "wallet-3", OwnerKey: "user-bob"}

	tests := []struct {
		name        string
		source      *models.Wallet
		destination *models.Wallet
		amount      int64
		want        int64
	}{
		{"same owner is free", alice1, alice2, 1000, 0},
		{"same wallet is free", alice1, alice1, 1000, 0},
		{"other owner 1.5 percent", alice1, bob, 1000, 15},
		{"rounds 0.75 up", alice1, bob, 50, 1},
		{"half rounds to even 1.5", alice1, bob, 100, 2},
		{"half rounds to even 4.5", alice1, bob, 300, 4},
		{"half rounds to even 7.5", bob, alice1, 500, 8},
		{"zero amount", alice1, bob, 0, 0},
		{"whole bitcoin", alice1, bob, models.SatoshiInBTC, 1_500_000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Calculate(tt.source, tt.destination, tt.amount))
		})
	}
}

func TestCalculatorFunc(t *testing.T) {
	flat := CalculatorFunc(func(_, _ *models.Wallet, _ int64) int64 { return 7 })
	assert.Equal(t, int64(7), flat.Calculate(&models.Wallet{}, &models.Wallet{}, 1000))
}

func TestPercentCalculator_CustomRates(t *testing.T) {
	c := NewPercentCalculator(1, 10)
	a := &models.Wallet{OwnerKey: "a"}
	b := &models.Wallet{OwnerKey: "b"}

	assert.Equal(t, int64(10), c.Calculate(a, a, 1000))
	assert.Equal(t, int64(100), c.Calculate(a, b, 1000))
}
