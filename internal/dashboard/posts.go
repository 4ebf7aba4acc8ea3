package dashboard

import (
	"fmt"
	"io"
	"strings"

	"lema/internal/models"
)

const (
	cardInner    = 30
	cardGap      = "  "
	maxGridCols  = 3
	bodyMaxLines = 6
)

// RenderPosts writes a user's header and their posts as a grid of cards.
// The first card is the "New Post" tile. Page controls follow the grid when
// the posts span more than one page.
func RenderPosts(w io.Writer, user *models.User, page *models.Page[models.Post], width int) error {
	width = clampWidth(width)

	var b strings.Builder
	b.WriteString("‹ Back to Users\n\n")
	if user != nil {
		b.WriteString(user.Name + "\n")
		fmt.Fprintf(&b, "%s • %d Posts\n\n", user.Email, page.Total)
	} else {
		fmt.Fprintf(&b, "%d Posts\n\n", page.Total)
	}

	cards := [][]string{newPostCard()}
	for _, p := range page.Data {
		cards = append(cards, postCard(p))
	}

	cols := GridColumns(width)
	for i := 0; i < len(cards); i += cols {
		end := min(i+cols, len(cards))
		for _, line := range joinCards(cards[i:end]) {
			b.WriteString(strings.TrimRight(line, " ") + "\n")
		}
	}
	if page.TotalPages > 1 {
		b.WriteString("\n" + PageControls(page.Page, page.TotalPages) + "\n")
	}

	_, err := io.WriteString(w, b.String())
	return err
}

// GridColumns returns how many cards fit side by side in width columns (1 to 3).
func GridColumns(width int) int {
	cardWidth := cardInner + 4
	cols := (width + len(cardGap)) / (cardWidth + len(cardGap))
	return max(1, min(maxGridCols, cols))
}

func postCard(p models.Post) []string {
	body := clampLines(wrapText(p.Body, cardInner), bodyMaxLines, cardInner)
	lines := []string{cell("#"+p.ID, cardInner), cell(p.Title, cardInner), ""}
	lines = append(lines, body...)
	return box(lines)
}

func newPostCard() []string {
	return box([]string{"", "", cell("+ New Post", cardInner)})
}

// box frames lines at a fixed height so cards line up in a row.
func box(lines []string) []string {
	height := 3 + bodyMaxLines
	for len(lines) < height {
		lines = append(lines, "")
	}
	out := []string{"┌" + strings.Repeat("─", cardInner+2) + "┐"}
	for _, l := range lines {
		out = append(out, "│ "+cell(l, cardInner)+" │")
	}
	return append(out, "└"+strings.Repeat("─", cardInner+2)+"┘")
}

func joinCards(cards [][]string) []string {
	if len(cards) == 0 {
		return nil
	}
	out := make([]string, len(cards[0]))
	for i := range out {
		parts := make([]string, len(cards))
		for j, c := range cards {
			parts[j] = c[i]
		}
		out[i] = strings.Join(parts, cardGap)
	}
	return out
}
