package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestValidateCronSchedule_Valid(t *testing.T) {
	valid := []string{
		"0 3 * * *",
		"30 5 * * *",
		"*/15 * * * *",
		"0 0 1 * *",
		"0 9 * * 1-5",
	}

	for _, schedule := range valid {
		assert.NoError(t, ValidateCronSchedule(schedule), "schedule %q should be valid", schedule)
	}
}

func TestValidateCronSchedule_Invalid(t *testing.T) {
	invalid := []string{
		"",
		"not a schedule",
		"61 3 * * *",
		"0 25 * * *",
		"0 3 * *",
	}

	for _, schedule := range invalid {
		assert.Error(t, ValidateCronSchedule(schedule), "schedule %q should be invalid", schedule)
	}
}

func TestValidateTimezone(t *testing.T) {
	assert.NoError(t, ValidateTimezone("UTC"))
	assert.NoError(t, ValidateTimezone("Asia/Tokyo"))
	assert.NoError(t, ValidateTimezone("America/New_York"))

	assert.Error(t, ValidateTimezone(""))
	assert.Error(t, ValidateTimezone("Mars/Olympus_Mons"))
}

func TestValidatePositiveDuration(t *testing.T) {
	assert.NoError(t, ValidatePositiveDuration(time.Second))
	assert.Error(t, ValidatePositiveDuration(0))
	assert.Error(t, ValidatePositiveDuration(-time.Minute))
}

func TestValidateDuration(t *testing.T) {
	assert.NoError(t, ValidateDuration(30*time.Second, time.Second, time.Minute))
	assert.Error(t, ValidateDuration(500*time.Millisecond, time.Second, time.Minute))
	assert.Error(t, ValidateDuration(2*time.Minute, time.Second, time.Minute))
	assert.Error(t, ValidateDuration(30*time.Second, time.Minute, time.Second))
}

func TestValidateIntRange(t *testing.T) {
	assert.NoError(t, ValidateIntRange(500, 1, 4096))
	assert.NoError(t, ValidateIntRange(1, 1, 4096))
	assert.NoError(t, ValidateIntRange(4096, 1, 4096))
	assert.Error(t, ValidateIntRange(0, 1, 4096))
	assert.Error(t, ValidateIntRange(5000, 1, 4096))
	assert.Error(t, ValidateIntRange(5, 10, 1))
}

func TestValidateFloatRange(t *testing.T) {
	assert.NoError(t, ValidateFloatRange(0.7, 0, 2))
	assert.NoError(t, ValidateFloatRange(0, 0, 2))
	assert.NoError(t, ValidateFloatRange(2, 0, 2))
	assert.Error(t, ValidateFloatRange(-0.1, 0, 2))
	assert.Error(t, ValidateFloatRange(2.1, 0, 2))
	assert.Error(t, ValidateFloatRange(1, 2, 0))
}
