package bot

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"
)

func TestAcceptDetailsShortInput(t *testing.T) {
	v := NewValidator()

	rapid.Check(t, func(rt *rapid.T) {
		text := rapid.StringMatching(`[a-zA-Z0-9 ]{0,24}`).Draw(rt, "text")
		assert.False(t, v.AcceptDetails(text), "accepted %q below the length floor", text)
	})
}

func TestAcceptDetailsStructuredInput(t *testing.T) {
	v := NewValidator()

	// Multi-line messages past the floor always pass, the guided-path
	// compiler depends on this.
	block := "1. Name: U Kyaw\n2. Age: 45\n3. Last seen: Hlaing township"
	assert.True(t, v.AcceptDetails(block))

	long := strings.Repeat("near the collapsed school on Baho road ", 4)
	assert.True(t, v.AcceptDetails(long))
}

func TestAcceptDetailsGreetings(t *testing.T) {
	v := NewValidator()

	// Padded past the floor with punctuation, still just a greeting.
	assert.False(t, v.AcceptDetails("good morning!!!!!!!!!!!!!!!!"))
	assert.True(t, v.AcceptDetails("My father went missing near Hledan junction"))
	// Short but carries a number, likely a phone contact.
	assert.True(t, v.AcceptDetails("Call me please 09791112233"))
}

func TestAcceptFieldAnswer(t *testing.T) {
	v := NewValidator()

	assert.True(t, v.AcceptFieldAnswer("45"))
	assert.True(t, v.AcceptFieldAnswer("male"))
	assert.False(t, v.AcceptFieldAnswer("   "))
	assert.False(t, v.AcceptFieldAnswer("hello"))
}
