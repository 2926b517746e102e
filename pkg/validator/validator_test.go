package validator

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	Reason   string           `json:"reason" validate:"notblank"`
	Quantity *int             `json:"quantity" validate:"omitempty,gte=1"`
	Amount   *decimal.Decimal `json:"amount" validate:"omitempty,gt=0"`
	Type     string           `json:"type" validate:"omitempty,oneof=daily monthly 10days"`
	Price    *decimal.Decimal `json:"price" validate:"omitempty,gte=0"`
}

func ptr[T any](v T) *T { return &v }

func TestValidateStruct(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		errs := ValidateStruct(&sample{Reason: "gift", Quantity: ptr(1), Amount: ptr(decimal.RequireFromString("0.5")), Type: "10days"})
		assert.Empty(t, errs)
	})

	t.Run("optional fields may be absent", func(t *testing.T) {
		assert.Empty(t, ValidateStruct(&sample{Reason: "gift"}))
	})

	t.Run("blank reason", func(t *testing.T) {
		errs := ValidateStruct(&sample{Reason: "   "})
		require.Len(t, errs, 1)
		assert.Equal(t, "reason", errs[0].FailedField)
		assert.Equal(t, "notblank", errs[0].Tag)
	})

	t.Run("decimal compared as number", func(t *testing.T) {
		errs := ValidateStruct(&sample{Reason: "x", Amount: ptr(decimal.Zero)})
		require.Len(t, errs, 1)
		assert.Equal(t, "amount", errs[0].FailedField)
		assert.Equal(t, "gt", errs[0].Tag)
		assert.Equal(t, "0", errs[0].Value)
	})

	t.Run("decimal below float64 precision keeps its sign", func(t *testing.T) {
		errs := ValidateStruct(&sample{Reason: "x", Price: ptr(decimal.RequireFromString("-1e-400"))})
		require.Len(t, errs, 1)
		assert.Equal(t, "price", errs[0].FailedField)
		assert.Equal(t, "gte", errs[0].Tag)

		errs = ValidateStruct(&sample{Reason: "x", Amount: ptr(decimal.RequireFromString("1e-400"))})
		assert.Empty(t, errs)
	})

	t.Run("several failures", func(t *testing.T) {
		errs := ValidateStruct(&sample{Reason: "x", Quantity: ptr(0), Type: "weekly"})
		require.Len(t, errs, 2)
		assert.Equal(t, "quantity", errs[0].FailedField)
		assert.Equal(t, "type", errs[1].FailedField)
		assert.Equal(t, "oneof", errs[1].Tag)
	})
}
