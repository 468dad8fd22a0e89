package topics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultSeed(t *testing.T) {
	dir, err := Default()
	require.NoError(t, err)

	assert.Equal(t, 50, dir.Len())

	names := dir.Names()
	assert.Equal(t, "Artificial Intelligence in Healthcare", names[0])
	assert.Equal(t, "Quantum Computing Applications", names[1])
	assert.Equal(t, "Renewable Microgrids", names[len(names)-1])

	entry, ok := dir.Lookup("Quantum Computing Applications")
	require.True(t, ok)
	assert.Equal(t, "Quantum algorithms and their use in cryptography and simulations.", entry.Description)
}

func TestParseSeed(t *testing.T) {
	tests := []struct {
		name    string
		data    string
		wantErr error
		wantLen int
	}{
		{
			name: "keeps document order",
			data: `
- name: "B topic"
  description: "second letter first"
- name: "A topic"
  description: "first letter second"
`,
			wantLen: 2,
		},
		{
			name:    "empty sequence",
			data:    "[]",
			wantErr: ErrEmptySeed,
		},
		{
			name: "missing description",
			data: `
- name: "Lonely"
`,
			wantErr: ErrEmptyTopic,
		},
		{
			name: "duplicate names",
			data: `
- name: "Twice"
  description: "one"
- name: "Twice"
  description: "two"
`,
			wantErr: ErrDuplicateTopic,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir, err := ParseSeed([]byte(tt.data))
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantLen, dir.Len())
		})
	}

	t.Run("order", func(t *testing.T) {
		dir, err := ParseSeed([]byte("- {name: Z, description: z}\n- {name: A, description: a}\n"))
		require.NoError(t, err)
		assert.Equal(t, []string{"Z", "A"}, dir.Names())
	})

	t.Run("unknown field", func(t *testing.T) {
		_, err := ParseSeed([]byte("- {name: Z, description: z, extra: nope}\n"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "decode topic seed")
	})
}
