package texts

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ozodbekAI/uznetix-bot/internal/model"
)

func TestDetectScript(t *testing.T) {
	tests := []struct {
		name string
		text string
		want model.Script
	}{
		{"latin uzbek", "Uy olmoqchiman", model.ScriptLatin},
		{"cyrillic uzbek", "Уй олмоқчиман", model.ScriptCyrillic},
		{"russian", "Хочу купить дом", model.ScriptCyrillic},
		{"mixed mostly latin", "Men 1000 dollar yig'dim, зўр", model.ScriptLatin},
		{"empty defaults to latin", "", model.ScriptLatin},
		{"digits only", "12345", model.ScriptLatin},
		{"email", "user@example.com", model.ScriptLatin},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DetectScript(tt.text))
		})
	}
}

func TestGet_BothScripts(t *testing.T) {
	for _, key := range []string{"verification_prompt", "rate_prompt"} {
		latin := Get(key, model.ScriptLatin)
		cyr := Get(key, model.ScriptCyrillic)

		assert.NotEmpty(t, latin, key)
		assert.NotEmpty(t, cyr, key)
		assert.NotEqual(t, latin, cyr, key)
		assert.Equal(t, model.ScriptLatin, DetectScript(latin), key)
		assert.Equal(t, model.ScriptCyrillic, DetectScript(cyr), key)
	}
}

func TestGet_UnknownKey(t *testing.T) {
	assert.Contains(t, Get("no_such_key", model.ScriptLatin), "no_such_key")
}

func TestGetf(t *testing.T) {
	got := Getf("welcome_back", model.ScriptLatin, "Aziz")
	assert.Contains(t, got, "Aziz")
}

func TestAllKeysHaveBothVariants(t *testing.T) {
	for key, e := range table {
		assert.NotEmpty(t, e.latin, "latin text missing for %s", key)
		assert.NotEmpty(t, e.cyrillic, "cyrillic text missing for %s", key)
	}
}
