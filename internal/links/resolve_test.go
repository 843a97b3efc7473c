package links

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JonMunkholm/storelinks/internal/table"
)

func TestResolveStoreColumn(t *testing.T) {
	tests := []struct {
		name     string
		columns  []string
		explicit string
		want     string
		wantErr  error
	}{
		{"explicit wins", []string{"store", "shop"}, "shop", "shop", nil},
		{"named store", []string{"id", "store"}, "", "store", nil},
		{"first column fallback", []string{"tienda", "link"}, "", "tienda", nil},
		{"explicit missing", []string{"store"}, "shop", "", ErrSchema},
		{"no columns", nil, "", "", ErrResolution},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ResolveStoreColumn(table.Empty(tt.columns...), tt.explicit)
			if tt.wantErr != nil {
				require.Error(t, err)
				assert.True(t, errors.Is(err, tt.wantErr), "got %v", err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestResolveStoreColumn_ErrorNamesColumn(t *testing.T) {
	_, err := ResolveStoreColumn(table.Empty("store", "link"), "branch")

	require.Error(t, err)
	assert.Contains(t, err.Error(), `"branch"`)
	assert.Contains(t, err.Error(), "store, link")
}

func TestResolveLinkColumns_Priority(t *testing.T) {
	tests := []struct {
		name     string
		tbl      *table.Table
		explicit string
		want     []string
	}{
		{
			name: "all link prefixed columns in order",
			tbl:  table.Empty("store", "Link_2", "other", "link_1"),
			want: []string{"Link_2", "link_1"},
		},
		{
			name:     "link prefix beats explicit",
			tbl:      table.Empty("store", "link_1", "url"),
			explicit: "url",
			want:     []string{"link_1"},
		},
		{
			name:     "explicit singleton",
			tbl:      table.Empty("store", "address", "web"),
			explicit: "web",
			want:     []string{"web"},
		},
		{
			name: "preferred name",
			tbl:  table.Empty("store", "id_visita", "id_visita (URL extraída)"),
			want: []string{"id_visita (URL extraída)"},
		},
		{
			name: "first column with an http value",
			tbl: table.New([]string{"store", "notes", "site", "backup"}, [][]string{
				{"A", "none", "", "http://b"},
				{"B", "", "HTTPS://example.com/x", ""},
			}),
			want: []string{"site"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ResolveLinkColumns(tt.tbl, tt.explicit, nil)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestResolveLinkColumns_CustomPreference(t *testing.T) {
	tbl := table.Empty("store", "visit", "url")

	got, err := ResolveLinkColumns(tbl, "", []string{"visit"})

	require.NoError(t, err)
	assert.Equal(t, []string{"visit"}, got)
}

func TestResolveLinkColumns_Errors(t *testing.T) {
	_, err := ResolveLinkColumns(table.Empty("store", "web"), "site", nil)
	assert.True(t, errors.Is(err, ErrSchema), "got %v", err)

	noURL := table.New([]string{"store", "notes"}, [][]string{{"A", "ftp://x"}})
	_, err = ResolveLinkColumns(noURL, "", nil)
	assert.True(t, errors.Is(err, ErrResolution), "got %v", err)
}

func TestURLColumns(t *testing.T) {
	tbl := table.New([]string{"a", "b", "c"}, [][]string{
		{"http://1", "x", ""},
		{"", "y", "see https://2"},
	})

	assert.Equal(t, []string{"a", "c"}, URLColumns(tbl))
}

func TestHasURL(t *testing.T) {
	assert.True(t, HasURL("http://x"))
	assert.True(t, HasURL("go to HTTPS://x"))
	assert.False(t, HasURL("www.example.com"))
	assert.False(t, HasURL("http:/broken"))
}
