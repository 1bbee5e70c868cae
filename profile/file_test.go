package profile_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.jacobcolvin.com/perfwrap/profile"
	"go.jacobcolvin.com/perfwrap/stringtest"
)

func TestDecode(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		wantErr error
		input   string
		want    []profile.Profile
	}{
		"single profile": {
			input: stringtest.Input(`
				profiles:
				  - name: llc
				    references: LLC-loads
				    misses: LLC-load-misses
				    column: llc-misses
			`),
			want: []profile.Profile{{
				Name:       "llc",
				References: "LLC-loads",
				Misses:     "LLC-load-misses",
				Column:     "llc-misses",
			}},
		},
		"empty list": {
			input: "profiles: []\n",
			want:  []profile.Profile{},
		},
		"missing misses": {
			input: stringtest.Input(`
				profiles:
				  - name: llc
				    references: LLC-loads
			`),
			wantErr: profile.ErrInvalidProfile,
		},
		"unknown key": {
			input: stringtest.Input(`
				profiles:
				  - name: llc
				    references: LLC-loads
				    misses: LLC-load-misses
				    scope: user
			`),
			wantErr: profile.ErrInvalidProfile,
		},
		"event list instead of event": {
			input: stringtest.Input(`
				profiles:
				  - name: llc
				    references: LLC-loads,LLC-stores
				    misses: LLC-load-misses
			`),
			wantErr: profile.ErrInvalidProfile,
		},
		"duplicate name": {
			input: stringtest.Input(`
				profiles:
				  - name: llc
				    references: LLC-loads
				    misses: LLC-load-misses
				  - name: llc
				    references: LLC-stores
				    misses: LLC-store-misses
			`),
			wantErr: profile.ErrInvalidProfile,
		},
		"missing profiles key": {
			input:   "other: 1\n",
			wantErr: profile.ErrInvalidProfile,
		},
		"malformed yaml": {
			input:   "profiles: [\n",
			wantErr: profile.ErrReadProfiles,
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			got, err := profile.Decode([]byte(tc.input))
			if tc.wantErr != nil {
				require.ErrorIs(t, err, tc.wantErr)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestLoadFileMissing(t *testing.T) {
	t.Parallel()

	_, err := profile.LoadFile(filepath.Join(t.TempDir(), "absent.yaml"))
	require.ErrorIs(t, err, profile.ErrReadProfiles)
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestSchema(t *testing.T) {
	t.Parallel()

	s := profile.Schema()
	assert.Equal(t, []string{"profiles"}, s.Required)
	require.Contains(t, s.Properties, "profiles")
	assert.Equal(t, []string{"name", "references", "misses"}, s.Properties["profiles"].Items.Required)
}
