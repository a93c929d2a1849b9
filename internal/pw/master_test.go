package pw_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pw-go/internal/pw"
	"pw-go/internal/testutil"
)

func TestMasterAuth_NotSet(t *testing.T) {
	t.Parallel()

	m := pw.NewMasterAuth(pw.CryptoRandom{})
	assert.False(t, m.IsSet())

	ok, err := m.Verify("anything-at-all")
	assert.False(t, ok)
	assert.ErrorIs(t, err, pw.ErrMasterPasswordNotSet)
}

func TestMasterAuth_SetPassword(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		plaintext string
		wantErr   bool
	}{
		{name: "empty", plaintext: "", wantErr: true},
		{name: "seven characters", plaintext: "1234567", wantErr: true},
		{name: "eight characters", plaintext: "12345678"},
		{name: "eight multibyte characters", plaintext: "pässwörd"},
		{name: "long", plaintext: "correct horse battery staple"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := pw.NewMasterAuth(pw.CryptoRandom{})
			err := m.SetPassword(tt.plaintext)
			if tt.wantErr {
				assert.ErrorIs(t, err, pw.ErrMasterPasswordTooShort)
				assert.False(t, m.IsSet())
				return
			}
			require.NoError(t, err)

			ok, err := m.Verify(tt.plaintext)
			require.NoError(t, err)
			assert.True(t, ok)

			ok, err = m.Verify(tt.plaintext + "x")
			require.NoError(t, err)
			assert.False(t, ok)
		})
	}
}

func TestMasterAuth_ResetReplacesCredential(t *testing.T) {
	t.Parallel()

	m := pw.NewMasterAuth(testutil.NewSequenceRandom())
	require.NoError(t, m.SetPassword("first-passphrase"))
	require.NoError(t, m.SetPassword("second-passphrase"))

	ok, err := m.Verify("first-passphrase")
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = m.Verify("second-passphrase")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestMasterAuth_RejectedPasswordKeepsCredential(t *testing.T) {
	t.Parallel()

	m := pw.NewMasterAuth(pw.CryptoRandom{})
	require.NoError(t, m.SetPassword("long-enough"))
	require.ErrorIs(t, m.SetPassword("short"), pw.ErrMasterPasswordTooShort)

	ok, err := m.Verify("long-enough")
	require.NoError(t, err)
	assert.True(t, ok)
}
