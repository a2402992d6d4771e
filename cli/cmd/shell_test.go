package cmd

import (
	"bytes"
	"context"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/require"
	"github.com/wkalt/tileland/landmgr"
	"github.com/wkalt/tileland/routes"
	"github.com/wkalt/tileland/spiral"
)

func TestShell(t *testing.T) {
	color.NoColor = true
	ctx := context.Background()
	url := routes.MakeTestRoutes(t, landmgr.TestLandManager(ctx, t), "")
	s := newShell(url, "", "alice")

	cases := []struct {
		assertion string
		line      string
		output    string
		err       error
	}{
		{"blank line", "   ", "", nil},
		{"encode", "encode -2 -1", "5\n", nil},
		{"decode", "decode 7", "-1 -2\n", nil},
		{"decode malformed", "decode 7a", "", spiral.MalformedIDError{}},
		{"area", "area 7 2 3", "7 0 3 8 1 2\n", nil},
		{"area usage", "area 7", "", errUsage},
		{"whoami", "whoami", "alice\n", nil},
		{"mint", "mint 7 3 2", "minted 7 0 8 1 9 10\n", nil},
		{"merge", "merge 7 2 2", "merged\n", nil},
		{"token", "token 7", "7 owner=alice size=2x2\n", nil},
		{"covered token", "token 8", "8 owner=alice size=1x1 covered-by=7\n", nil},
		{"switch account", "as bob", "", nil},
		{"whoami after switch", "whoami", "bob\n", nil},
		{"mint as bob", "mint 6", "minted 6\n", nil},
		{"map", "map 2", "6779\n.770\n....\n....\n", nil},
	}
	for _, c := range cases {
		t.Run(c.assertion, func(t *testing.T) {
			buf := &bytes.Buffer{}
			err := s.exec(ctx, buf, c.line)
			if c.err != nil {
				require.ErrorIs(t, err, c.err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, c.output, buf.String())
		})
	}

	t.Run("merge as non-owner fails", func(t *testing.T) {
		require.Error(t, s.exec(ctx, &bytes.Buffer{}, "merge 9 1 2"))
	})
	t.Run("unknown command", func(t *testing.T) {
		require.ErrorContains(t, s.exec(ctx, &bytes.Buffer{}, "frobnicate"), "unrecognized command")
	})
	t.Run("help topics", func(t *testing.T) {
		for topic := range help {
			buf := &bytes.Buffer{}
			require.NoError(t, s.exec(ctx, buf, "help "+topic))
			require.NotEmpty(t, buf.String())
		}
		require.Error(t, s.exec(ctx, &bytes.Buffer{}, "help nothing"))
	})
}
