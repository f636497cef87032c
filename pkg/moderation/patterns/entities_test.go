package patterns

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLuhn(t *testing.T) {
	assert.True(t, Luhn("4111111111111111"))
	assert.True(t, Luhn("5500005555555559"))
	assert.False(t, Luhn("4111111111111112"))
	assert.False(t, Luhn("1234567812345678"))
}

func TestValidCreditCard(t *testing.T) {
	assert.True(t, ValidCreditCard("4111111111111111"))
	assert.True(t, ValidCreditCard("4111 1111 1111 1111"))
	assert.True(t, ValidCreditCard("4111-1111-1111-1111"))

	// checksum failure
	assert.False(t, ValidCreditCard("4111111111111112"))
	// wrong length even if Luhn-valid
	assert.False(t, ValidCreditCard("411111111111111"))
}

func TestValidSSN(t *testing.T) {
	assert.True(t, ValidSSN("856-45-6789"))
	assert.True(t, ValidSSN("856 45 6789"))

	assert.False(t, ValidSSN("123-45-6789"), "sequential test number")
	assert.False(t, ValidSSN("987-65-4321"), "sequential test number")
	assert.False(t, ValidSSN("111-11-1111"), "all same digits")
	assert.False(t, ValidSSN("85645678"), "too short")
}

func TestValidPhone(t *testing.T) {
	assert.True(t, ValidPhone("555-123-4567"))
	assert.True(t, ValidPhone("(555) 123-4567"))
	assert.True(t, ValidPhone("+1 555 123 4567"))

	assert.False(t, ValidPhone("123-4567"), "too few digits")
	assert.False(t, ValidPhone("111-111-1111"), "all same digits")
}

func TestValidEmail(t *testing.T) {
	assert.True(t, ValidEmail("user@example.com"))
	assert.True(t, ValidEmail("first.last+tag@sub.example.org"))

	assert.False(t, ValidEmail("user@localhost"))
	assert.False(t, ValidEmail("@example.com"))
	assert.False(t, ValidEmail("user@"))
}

func TestEntityPatterns(t *testing.T) {
	tests := []struct {
		entity Entity
		text   string
		want   string
	}{
		{EntityCreditCard, "my card is 4111 1111 1111 1111", "4111 1111 1111 1111"},
		{EntitySSN, "ssn 856-45-6789 here", "856-45-6789"},
		{EntityEmail, "mail me at user@example.com please", "user@example.com"},
		{EntityPhone, "call 555-123-4567 now", "555-123-4567"},
	}

	for _, tt := range tests {
		t.Run(string(tt.entity), func(t *testing.T) {
			got := EntityPatterns[tt.entity].FindString(tt.text)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestEntityDetectionOrderCoversAllEntities(t *testing.T) {
	assert.Len(t, EntityDetectionOrder, len(EntityPatterns))
	for _, e := range EntityDetectionOrder {
		assert.Contains(t, EntityPatterns, e)
		assert.Contains(t, EntityValidators, e)
		assert.Contains(t, EntityPlaceholders, e)
	}
}
