package pagination

import (
	"encoding/base64"
	"fmt"
	"strconv"
	"strings"
	"time"
)

const dateFormat = "2006-01-02"

// EncodeToken creates a base64 encoded cursor from a due date and creation sequence.
// Charges are listed in (due date, sequence) order so the pair uniquely positions a page.
func EncodeToken(dueDate time.Time, sequence int64) string {
	tokenStr := fmt.Sprintf("%s|%d", dueDate.UTC().Format(dateFormat), sequence)
	return base64.URLEncoding.EncodeToString([]byte(tokenStr))
}

// DecodeToken parses the base64 encoded token back into due date and sequence.
func DecodeToken(token string) (time.Time, int64, error) {
	decodedBytes, err := base64.URLEncoding.DecodeString(token)
	if err != nil {
		return time.Time{}, 0, fmt.Errorf("invalid pagination token format (base64 decode): %w", err)
	}
	parts := strings.SplitN(string(decodedBytes), "|", 2)
	if len(parts) != 2 {
		return time.Time{}, 0, fmt.Errorf("invalid pagination token format (split)")
	}

	dueDate, err := time.Parse(dateFormat, parts[0])
	if err != nil {
		return time.Time{}, 0, fmt.Errorf("invalid pagination token format (due date parse): %w", err)
	}

	sequence, err := strconv.ParseInt(parts[1], 10, 64)
	if err != nil {
		return time.Time{}, 0, fmt.Errorf("invalid pagination token format (sequence parse): %w", err)
	}

	return dueDate, sequence, nil
}

// After reports whether the (dueDate, sequence) position sorts strictly after the cursor.
func After(dueDate time.Time, sequence int64, cursorDate time.Time, cursorSeq int64) bool {
	if !dueDate.Equal(cursorDate) {
		return dueDate.After(cursorDate)
	}
	return sequence > cursorSeq
}
