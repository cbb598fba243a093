package validation

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestValidateDate(t *testing.T) {
	got, err := ValidateDate("2026-03-01")
	assert.NoError(t, err)
	assert.Equal(t, "2026-03-01", got)

	for _, bad := range []string{"", "03/01/2026", "2026-3-1", "2026-02-30", "yesterday"} {
		_, err := ValidateDate(bad)
		assert.Error(t, err, bad)

		var invalid *Error
		assert.ErrorAs(t, err, &invalid)
	}
}

func TestValidateEmail(t *testing.T) {
	assert.NoError(t, ValidateEmail("user@example.com"))
	assert.Error(t, ValidateEmail(""))
	assert.Error(t, ValidateEmail("not an email"))
}

func TestValidatePassword(t *testing.T) {
	assert.NoError(t, ValidatePassword("long-enough"))
	assert.Error(t, ValidatePassword("short"))
}

func TestTodayIsUTC(t *testing.T) {
	assert.Equal(t, time.Now().UTC().Format(DateLayout), Today())
}
