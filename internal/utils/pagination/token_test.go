package pagination

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestEncodeDecodeToken(t *testing.T) {
	txnDate := time.Date(2024, 11, 3, 0, 0, 0, 0, time.UTC)
	createdAt := time.Date(2024, 11, 3, 14, 30, 45, 123456789, time.UTC)

	token := EncodeToken(txnDate, createdAt)
	assert.NotEmpty(t, token, "Token should not be empty")

	decodedDate, decodedCreatedAt, err := DecodeToken(token)
	assert.NoError(t, err, "Decoding should not return an error")
	assert.Equal(t, txnDate, decodedDate, "Transaction date should match after decode")
	assert.Equal(t, createdAt, decodedCreatedAt, "Created at time should match after decode")

	// Zero time values round-trip too.
	zeroTime := time.Time{}
	zeroToken := EncodeToken(zeroTime, zeroTime)
	decodedZeroDate, decodedZeroTime, err := DecodeToken(zeroToken)
	assert.NoError(t, err)
	assert.Equal(t, zeroTime, decodedZeroDate)
	assert.Equal(t, zeroTime, decodedZeroTime)

	now := time.Now().UTC()
	nowToken := EncodeToken(now, now)
	decodedNowDate, decodedNowTime, err := DecodeToken(nowToken)
	assert.NoError(t, err)
	assert.True(t, now.Equal(decodedNowDate))
	assert.True(t, now.Equal(decodedNowTime))
}

func TestDecodeTokenError(t *testing.T) {
	_, _, err := DecodeToken("this is not base64!")
	assert.Error(t, err, "Should return an error for invalid base64")
	assert.Contains(t, err.Error(), "base64 decode")

	// Base64 encoded date without separator
	_, _, err = DecodeToken("MjAyMy0wNS0xNVQwMDowMDowMFo=")
	assert.Error(t, err, "Should return an error for invalid token format")
	assert.Contains(t, err.Error(), "split")

	// Base64 encoded "notadate|2023-05-15T14:30:45.123456789Z"
	_, _, err = DecodeToken("bm90YWRhdGV8MjAyMy0wNS0xNVQxNDozMDo0NS4xMjM0NTY3ODla")
	assert.Error(t, err, "Should return an error for invalid date format")
	assert.Contains(t, err.Error(), "date parse")
}
