package pagination

import (
	"encoding/base64"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeDecodeToken(t *testing.T) {
	dueDate := time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)

	token := EncodeToken(dueDate, 42)
	assert.NotEmpty(t, token, "Token should not be empty")

	decodedDate, decodedSeq, err := DecodeToken(token)
	require.NoError(t, err)
	assert.Equal(t, dueDate, decodedDate)
	assert.Equal(t, int64(42), decodedSeq)
}

func TestDecodeTokenError(t *testing.T) {
	_, _, err := DecodeToken("this is not base64!")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "base64 decode")

	_, _, err = DecodeToken(base64.URLEncoding.EncodeToString([]byte("2025-05-01")))
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "split")

	_, _, err = DecodeToken(base64.URLEncoding.EncodeToString([]byte("notadate|3")))
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "due date parse")

	_, _, err = DecodeToken(base64.URLEncoding.EncodeToString([]byte("2025-05-01|x")))
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "sequence parse")
}

func TestAfter(t *testing.T) {
	may := time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)
	june := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	assert.True(t, After(june, 1, may, 9))
	assert.False(t, After(may, 9, june, 1))
	assert.True(t, After(may, 4, may, 3))
	assert.False(t, After(may, 3, may, 3))
}
