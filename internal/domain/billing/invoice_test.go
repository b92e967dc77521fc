package billing

import (
	"errors"
	"testing"

	"github.com/erp/reporting/internal/domain/shared"
	"github.com/erp/reporting/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func payment(amount int64, currency valueobject.Currency, rate float64) InvoicePayment {
	return InvoicePayment{
		Amount:         decimal.NewFromInt(amount),
		Currency:       currency,
		ConversionRate: decimal.NewFromFloat(rate),
	}
}

func TestInvoicePaidAmount(t *testing.T) {
	t.Run("sums base currency payments as recorded", func(t *testing.T) {
		inv := Invoice{
			Amount: decimal.NewFromInt(300),
			Payments: []InvoicePayment{
				payment(100, valueobject.CNY, 1),
				payment(50, valueobject.CNY, 1),
			},
		}

		paid, err := inv.PaidAmount()
		require.NoError(t, err)
		assert.True(t, paid.Equal(decimal.NewFromInt(150)))
	})

	t.Run("divides foreign payments by their stored rate", func(t *testing.T) {
		inv := Invoice{
			Amount: decimal.NewFromInt(300),
			Payments: []InvoicePayment{
				payment(100, valueobject.CNY, 1),
				payment(70, valueobject.USD, 7),
			},
		}

		paid, err := inv.PaidAmount()
		require.NoError(t, err)
		assert.True(t, paid.Equal(decimal.NewFromInt(110)))
	})

	t.Run("surfaces an invalid rate on a foreign payment", func(t *testing.T) {
		inv := Invoice{
			Amount:   decimal.NewFromInt(300),
			Payments: []InvoicePayment{payment(70, valueobject.USD, 0)},
		}

		_, err := inv.PaidAmount()
		assert.True(t, errors.Is(err, shared.ErrInvalidRate))
	})
}

func TestInvoiceNetAmount(t *testing.T) {
	inv := Invoice{
		Amount: decimal.NewFromInt(200),
		Returns: []InvoiceReturn{
			{Value: decimal.NewFromInt(30)},
			{Value: decimal.NewFromInt(20)},
		},
	}

	assert.True(t, inv.ReturnsTotal().Equal(decimal.NewFromInt(50)))
	assert.True(t, inv.NetAmount().Equal(decimal.NewFromInt(150)))
}

func TestInvoiceRemainingAmount(t *testing.T) {
	inv := Invoice{
		Amount:   decimal.NewFromInt(300),
		Payments: []InvoicePayment{payment(120, valueobject.CNY, 1)},
	}

	remaining, err := inv.RemainingAmount()
	require.NoError(t, err)
	assert.True(t, remaining.Equal(decimal.NewFromInt(180)))
}

func TestInvoiceIsOutstanding(t *testing.T) {
	t.Run("outstanding while paid is strictly below the amount", func(t *testing.T) {
		inv := Invoice{
			Amount:   decimal.NewFromInt(300),
			Payments: []InvoicePayment{payment(299, valueobject.CNY, 1)},
		}

		outstanding, err := inv.IsOutstanding()
		require.NoError(t, err)
		assert.True(t, outstanding)
	})

	t.Run("settled once paid reaches the amount exactly", func(t *testing.T) {
		inv := Invoice{
			Amount:   decimal.NewFromInt(300),
			Payments: []InvoicePayment{payment(300, valueobject.CNY, 1)},
		}

		outstanding, err := inv.IsOutstanding()
		require.NoError(t, err)
		assert.False(t, outstanding)
	})

	t.Run("overpaid invoices are settled", func(t *testing.T) {
		inv := Invoice{
			Amount:   decimal.NewFromInt(300),
			Payments: []InvoicePayment{payment(350, valueobject.CNY, 1)},
		}

		outstanding, err := inv.IsOutstanding()
		require.NoError(t, err)
		assert.False(t, outstanding)
	})

	t.Run("unpaid invoice is outstanding", func(t *testing.T) {
		inv := Invoice{Amount: decimal.NewFromInt(300)}

		outstanding, err := inv.IsOutstanding()
		require.NoError(t, err)
		assert.True(t, outstanding)
	})
}
