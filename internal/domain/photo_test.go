package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDriveFileID(t *testing.T) {
	tests := []struct {
		name     string
		link     string
		expected string
	}{
		{"path segment", "https://drive.google.com/file/d/1aBcDeFgHiJkLmN/view?usp=sharing", "1aBcDeFgHiJkLmN"},
		{"query parameter", "https://drive.google.com/open?id=1aBcDeFgHiJkLmN", "1aBcDeFgHiJkLmN"},
		{"query parameter not first", "https://drive.google.com/uc?export=view&id=1aBcDeFgHiJkLmN", "1aBcDeFgHiJkLmN"},
		{"id too short", "https://drive.google.com/file/d/short/view", ""},
		{"direct image url", "https://example.com/photo.jpg", ""},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, DriveFileID(tt.link))
		})
	}
}

func TestResolvePhoto(t *testing.T) {
	t.Run("drive link synthesizes thumbnail urls", func(t *testing.T) {
		r := Record{
			Code:      "VIV-001",
			Name:      "Lagoa Azul",
			PhotoLink: "https://drive.google.com/file/d/1aBcDeFgHiJkLmN/view",
		}

		p, ok := ResolvePhoto(r)
		require.True(t, ok)
		assert.Equal(t, "https://drive.google.com/thumbnail?id=1aBcDeFgHiJkLmN&sz=w450", p.Thumb)
		assert.Equal(t, "https://drive.google.com/thumbnail?id=1aBcDeFgHiJkLmN&sz=w2048", p.Full)
		assert.Equal(t, "VIV-001 • Lagoa Azul", p.Caption)
	})

	t.Run("non-drive link passes through", func(t *testing.T) {
		r := Record{Code: "VIV-002", PhotoLink: "https://example.com/photo.jpg"}

		p, ok := ResolvePhoto(r)
		require.True(t, ok)
		assert.Equal(t, "https://example.com/photo.jpg", p.Thumb)
		assert.Equal(t, "https://example.com/photo.jpg", p.Full)
		assert.Equal(t, "VIV-002", p.Caption)
	})

	t.Run("blank link resolves to nothing", func(t *testing.T) {
		_, ok := ResolvePhoto(Record{PhotoLink: "   "})
		assert.False(t, ok)
	})
}

func TestGallery(t *testing.T) {
	schema := Schema{Photo: true}

	t.Run("deduplicates by link preserving order", func(t *testing.T) {
		table := Table{
			Schema: schema,
			Rows: []Record{
				{Code: "a", PhotoLink: "https://example.com/1.jpg"},
				{Code: "b", PhotoLink: "https://example.com/2.jpg"},
				{Code: "c", PhotoLink: "https://example.com/1.jpg"},
				{Code: "d", PhotoLink: ""},
			},
		}

		photos := Gallery(table)
		require.Len(t, photos, 2)
		assert.Equal(t, "a", photos[0].Caption)
		assert.Equal(t, "b", photos[1].Caption)
	})

	t.Run("nil when photo column absent", func(t *testing.T) {
		table := Table{Rows: []Record{{PhotoLink: "https://example.com/1.jpg"}}}
		assert.Nil(t, Gallery(table))
	})
}
