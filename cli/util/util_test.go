package util

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/require"
	"github.com/wkalt/tileland/coverage"
)

func TestWriteTable(t *testing.T) {
	headers := []string{"id", "width", "height"}
	rows := [][]string{{"7", "2", "2"}, {"19", "1", "1"}}
	t.Run("grid", func(t *testing.T) {
		buf := &bytes.Buffer{}
		writeTable(buf, 80, headers, rows)
		expected := strings.Join([]string{
			"| id | width | height |",
			"|----|-------|--------|",
			"| 7  | 2     | 2      |",
			"| 19 | 1     | 1      |",
			"",
		}, "\n")
		require.Equal(t, expected, buf.String())
	})
	t.Run("records when too wide", func(t *testing.T) {
		buf := &bytes.Buffer{}
		writeTable(buf, 10, headers, rows[:1])
		expected := strings.Join([]string{
			"-[ RECORD 1 ]-",
			"id     | 7",
			"width  | 2",
			"height | 2",
			"",
		}, "\n")
		require.Equal(t, expected, buf.String())
	})
}

func TestRenderMap(t *testing.T) {
	color.NoColor = true
	tiles := []coverage.Tile{
		{ID: 7, Width: 2, Height: 2},
		{ID: 5, Width: 1, Height: 1},
	}
	buf := &bytes.Buffer{}
	require.NoError(t, RenderMap(buf, tiles, 2))
	expected := strings.Join([]string{
		".77.",
		"577.",
		"....",
		"....",
		"",
	}, "\n")
	require.Equal(t, expected, buf.String())
	require.Error(t, RenderMap(buf, tiles, 0))
}

func TestCheckResponse(t *testing.T) {
	cases := []struct {
		assertion string
		status    int
		body      string
		expected  string
	}{
		{"ok", http.StatusOK, "", ""},
		{"error response", http.StatusForbidden, `{"error":"permission denied"}`, "permission denied (403)"},
		{"plain body", http.StatusBadGateway, "upstream", "Bad Gateway (502)"},
	}
	for _, c := range cases {
		t.Run(c.assertion, func(t *testing.T) {
			rec := httptest.NewRecorder()
			rec.WriteHeader(c.status)
			rec.WriteString(c.body)
			err := CheckResponse(rec.Result())
			if c.expected == "" {
				require.NoError(t, err)
				return
			}
			require.EqualError(t, err, c.expected)
		})
	}
}
