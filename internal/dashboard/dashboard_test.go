package dashboard

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"lema/internal/models"

	"github.com/mattn/go-runewidth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPageNumbers(t *testing.T) {
	tests := []struct {
		name           string
		current, total int
		want           []int
	}{
		{"no pages", 1, 0, nil},
		{"single page", 1, 1, []int{1}},
		{"two pages", 2, 2, []int{1, 2}},
		{"first of ten", 1, 10, []int{1, 2, 3, 4, 10}},
		{"middle of ten", 5, 10, []int{1, 4, 5, 6, 10}},
		{"last of ten", 10, 10, []int{1, 9, 10}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, PageNumbers(tt.current, tt.total))
		})
	}
}

func TestPageControls(t *testing.T) {
	assert.Equal(t, "‹ Previous  1 ... 4 [5] 6 ... 10  Next ›  |  Page 5 of 10", PageControls(5, 10))
	assert.Equal(t, "[1]  |  Page 1 of 1", PageControls(1, 1))
	assert.Equal(t, "Page 1 of 1", PageControls(1, 0))
}

func TestSortUsersByName(t *testing.T) {
	users := []models.UserWithAddress{
		{User: models.User{ID: "3", Name: "zoe"}},
		{User: models.User{ID: "1", Name: "Émile"}},
		{User: models.User{ID: "2", Name: "Adam"}},
		{User: models.User{ID: "4", Name: "eve"}},
	}
	SortUsersByName(users)

	var names []string
	for _, u := range users {
		names = append(names, u.Name)
	}
	assert.Equal(t, []string{"Adam", "Émile", "eve", "zoe"}, names)
}

func TestRenderUsers(t *testing.T) {
	page := models.NewPage([]models.UserWithAddress{
		{User: models.User{ID: "2", Name: "Zed", Email: "zed@example.com"}},
		{
			User: models.User{ID: "1", Name: "Ada", Email: "ada@example.com"},
			Address: &models.Address{
				Street:  "12 Long Street With A Name That Keeps Going",
				State:   "Lagos",
				City:    "Ikeja",
				Zipcode: "100001",
			},
		},
	}, 9, 2, 4)

	var buf bytes.Buffer
	require.NoError(t, RenderUsers(&buf, page, 80))
	out := buf.String()

	assert.Contains(t, out, "Full name")
	assert.Contains(t, out, "Email Address")
	assert.Less(t, strings.Index(out, "Ada"), strings.Index(out, "Zed"))
	assert.Contains(t, out, "12 Long Street")
	assert.Contains(t, out, "…")
	assert.Contains(t, out, "Page 2 of 3")

	for _, line := range strings.Split(strings.TrimRight(out, "\n"), "\n") {
		assert.LessOrEqual(t, runewidth.StringWidth(line), 80, line)
	}

	zedLine := out[strings.Index(out, "Zed"):]
	zedLine = zedLine[:strings.Index(zedLine, "\n")]
	assert.True(t, strings.HasSuffix(zedLine, "-"))
}

func TestRenderUsers_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, RenderUsers(&buf, models.NewPage[models.UserWithAddress](nil, 0, 1, 4), 100))
	assert.Contains(t, buf.String(), "No users found")
	assert.Contains(t, buf.String(), "Page 1 of 1")
}

func TestRenderPosts(t *testing.T) {
	user := &models.User{ID: "u1", Name: "Ada", Email: "ada@example.com"}
	long := strings.Repeat("lorem ipsum dolor ", 40)
	page := models.NewPage([]models.Post{
		{ID: "p1", Title: "First", Body: "short body"},
		{ID: "p2", Title: "Second", Body: long},
	}, 2, 1, 10)

	var buf bytes.Buffer
	require.NoError(t, RenderPosts(&buf, user, page, 120))
	out := buf.String()

	assert.Contains(t, out, "Back to Users")
	assert.Contains(t, out, "ada@example.com • 2 Posts")
	assert.Contains(t, out, "+ New Post")
	assert.Contains(t, out, "First")
	assert.Contains(t, out, "Second")
	assert.Contains(t, out, "ipsum dolor lorem ipsum dolor…")
	assert.NotContains(t, out, "Page 1 of")
	// three cards side by side on one row
	assert.Equal(t, 1, strings.Count(out, "┌"+strings.Repeat("─", cardInner+2)+"┐"+cardGap+"┌"+strings.Repeat("─", cardInner+2)+"┐"+cardGap+"┌"))
}

func TestGridColumns(t *testing.T) {
	assert.Equal(t, 1, GridColumns(40))
	assert.Equal(t, 2, GridColumns(80))
	assert.Equal(t, 3, GridColumns(120))
	assert.Equal(t, 3, GridColumns(400))
}

func TestWrapText(t *testing.T) {
	assert.Equal(t, []string{"hello", "world"}, wrapText("hello world", 8))
	assert.Equal(t, []string{"abcd", "efgh", "ij"}, wrapText("abcdefghij", 4))
	assert.Equal(t, []string{"日本", "語"}, wrapText("日本語", 4))
	assert.Equal(t, []string{"one", "two"}, wrapText("one\ntwo", 10))
}

func TestCell(t *testing.T) {
	assert.Equal(t, "abc  ", cell("abc", 5))
	assert.Equal(t, "abcd…", cell("abcdefgh", 5))
	assert.Equal(t, "a b  ", cell("a\n  b", 5))
	assert.Equal(t, 6, runewidth.StringWidth(cell("日本語テキスト", 6)))
}

func TestNotifier(t *testing.T) {
	var buf bytes.Buffer
	n := NewNotifier(&buf)
	n.Success("Post added successfully!")
	n.Error("title: Title is required\nbody: Body is required")

	assert.Equal(t, "✓ Post added successfully!\n✗ title: Title is required\n  body: Body is required\n", buf.String())
}

func TestPageMemory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lema", "dashboard.yml")

	m, err := LoadPageMemory(path)
	require.NoError(t, err)
	assert.Equal(t, 1, m.State.UsersPage)

	require.NoError(t, m.RememberUsersPage(3, 4))
	require.NoError(t, m.RememberUser("u7"))

	restored, err := LoadPageMemory(path)
	require.NoError(t, err)
	assert.Equal(t, MemoryState{UsersPage: 3, UsersLimit: 4, LastUserID: "u7"}, restored.State)
}
