package content

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault_ParsesEmbeddedCatalog(t *testing.T) {
	cat, err := Default()
	require.NoError(t, err)

	assert.Len(t, cat.Slides, 3)
	assert.Len(t, cat.Testimonials, 3)
	assert.NotEmpty(t, cat.Portfolio)
	assert.Contains(t, cat.Services, "Wedding")
}

func TestLoad_EmptyPathUsesDefault(t *testing.T) {
	cat, err := Load("  ")
	require.NoError(t, err)
	assert.Len(t, cat.Slides, 3)
}

func TestLoad_ReadsOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "site.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
slides:
  - title: Only Slide
testimonials: []
portfolio:
  - title: Pier
    category: Landscape
    image: https://example.com/pier.jpg
`), 0o600))

	cat, err := Load(path)
	require.NoError(t, err)
	require.Len(t, cat.Slides, 1)
	assert.Equal(t, "Only Slide", cat.Slides[0].Title)
	assert.Empty(t, cat.Testimonials)
	assert.Equal(t, []string{FilterAll, "landscape"}, cat.Categories())
}

func TestLoad_MissingFileFails(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestLoad_InvalidYAMLFails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "site.yaml")
	require.NoError(t, os.WriteFile(path, []byte("slides: [\n"), 0o600))

	_, err := Load(path)
	require.Error(t, err)
	assert.True(t, strings.HasPrefix(err.Error(), "parse content"), err.Error())
}

func TestLoad_ValidationFailure(t *testing.T) {
	path := filepath.Join(t.TempDir(), "site.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
testimonials:
  - quote: ""
    author: Someone
portfolio:
  - title: Broken
    image: not a url
`), 0o600))

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Quote is required")
	assert.Contains(t, err.Error(), "Image must be a valid URL")
}

func TestCategories_OrderedAndDeduplicated(t *testing.T) {
	cat := Catalog{Portfolio: []Item{
		{Category: "Wedding"},
		{Category: "portrait"},
		{Category: "wedding "},
		{Category: ""},
		{Category: "Event"},
	}}
	assert.Equal(t, []string{"all", "wedding", "portrait", "event"}, cat.Categories())
}

func TestFilter(t *testing.T) {
	items := []Item{
		{Title: "a", Category: "Wedding"},
		{Title: "b", Category: "portrait"},
		{Title: "c"},
		{Title: "d", Category: "wedding"},
	}

	tests := []struct {
		filter string
		want   []string
	}{
		{"all", []string{"a", "b", "c", "d"}},
		{"", []string{"a", "b", "c", "d"}},
		{"ALL", []string{"a", "b", "c", "d"}},
		{"wedding", []string{"a", "d"}},
		{"Portrait", []string{"b"}},
		{"event", nil},
	}

	for _, tt := range tests {
		t.Run(tt.filter, func(t *testing.T) {
			var got []string
			for _, item := range Filter(items, tt.filter) {
				got = append(got, item.Title)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFilter_ReturnsCopy(t *testing.T) {
	items := []Item{{Title: "a"}}
	out := Filter(items, FilterAll)
	out[0].Title = "changed"
	assert.Equal(t, "a", items[0].Title)
}

func TestItemSource_PrefersFull(t *testing.T) {
	assert.Equal(t, "full", Item{Image: "thumb", Full: "full"}.Source())
	assert.Equal(t, "thumb", Item{Image: "thumb"}.Source())
}
