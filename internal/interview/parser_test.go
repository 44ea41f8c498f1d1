package interview

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCompletion_NoSentinel(t *testing.T) {
	clean, profile, done := ParseCompletion("  Yaxshi! Endi budjet haqida gaplashamiz.  ")

	assert.False(t, done)
	assert.Nil(t, profile)
	assert.Equal(t, "Yaxshi! Endi budjet haqida gaplashamiz.", clean)
}

func TestParseCompletion_WithProfile(t *testing.T) {
	raw := `Ajoyib! Profilingiz tayyor.

INTERVIEW_COMPLETE
{"goal": "uy olish", "horizon": "10 yil", "budget": "1000$ + 100$ oylik", "risk_tolerance": "yuqori", "liquidity": "kerak emas", "currency": "USD", "experience": "yangi", "restrictions": "yo'q", "halal_filter": true}`

	clean, profile, done := ParseCompletion(raw)

	require.True(t, done)
	require.NotNil(t, profile)
	assert.Equal(t, "uy olish", profile.Goal)
	assert.Equal(t, "10 yil", profile.Horizon)
	assert.Equal(t, "USD", profile.Currency)
	assert.True(t, profile.HalalFilter)
	assert.Equal(t, "Ajoyib! Profilingiz tayyor.", clean)
	assert.NotContains(t, clean, CompletionToken)
	assert.NotContains(t, clean, "{")
}

func TestParseCompletion_HalalFilterDefaultsFalse(t *testing.T) {
	raw := `INTERVIEW_COMPLETE
{"goal": "pensiya", "horizon": "20 yil", "budget": "500", "risk_tolerance": "past", "liquidity": "ha", "currency": "UZS", "experience": "bor", "restrictions": "yo'q"}`

	_, profile, done := ParseCompletion(raw)

	require.True(t, done)
	require.NotNil(t, profile)
	assert.False(t, profile.HalalFilter)
}

func TestParseCompletion_SentinelWithoutJSON(t *testing.T) {
	clean, profile, done := ParseCompletion("Deyarli tayyor! INTERVIEW_COMPLETE")

	// Not complete, and the text passes through untouched.
	assert.False(t, done)
	assert.Nil(t, profile)
	assert.Equal(t, "Deyarli tayyor! INTERVIEW_COMPLETE", clean)
}

func TestParseCompletion_SentinelWithBrokenJSON(t *testing.T) {
	raw := `Tayyor!
INTERVIEW_COMPLETE
{"goal": "uy", "horizon":`

	clean, profile, done := ParseCompletion(raw)

	assert.False(t, done)
	assert.Nil(t, profile)
	assert.Equal(t, raw, clean)
}

func TestParseCompletion_TextAfterJSON(t *testing.T) {
	raw := `Profil tayyor!
INTERVIEW_COMPLETE
{"goal": "ta'lim", "currency": "EUR"}
Savollaringiz bo'lsa bemalol yozing.`

	clean, profile, done := ParseCompletion(raw)

	require.True(t, done)
	require.NotNil(t, profile)
	assert.Equal(t, "ta'lim", profile.Goal)
	assert.Contains(t, clean, "Profil tayyor!")
	assert.Contains(t, clean, "Savollaringiz")
	assert.NotContains(t, clean, "{")
}
