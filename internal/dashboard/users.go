package dashboard

import (
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"

	"lema/internal/models"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

const (
	nameColumn  = 22
	emailColumn = 28
	columnGap   = "  "
)

// SortUsersByName orders users by name using locale-aware collation.
func SortUsersByName(users []models.UserWithAddress) {
	col := collate.New(language.English)
	slices.SortStableFunc(users, func(a, b models.UserWithAddress) int {
		return col.CompareString(a.Name, b.Name)
	})
}

// FormatAddress renders an address as "street, state, city, zipcode".
func FormatAddress(a *models.Address) string {
	if a == nil {
		return "-"
	}
	return strings.Join([]string{a.Street, a.State, a.City, a.Zipcode}, ", ")
}

// RenderUsers writes one page of users as a table followed by page controls.
func RenderUsers(w io.Writer, page *models.Page[models.UserWithAddress], width int) error {
	width = clampWidth(width)
	addressColumn := width - nameColumn - emailColumn - 2*len(columnGap)
	if addressColumn < 8 {
		addressColumn = 8
	}

	rows := slices.Clone(page.Data)
	SortUsersByName(rows)

	var b strings.Builder
	b.WriteString("Users\n\n")
	b.WriteString(row(cell("Full name", nameColumn), cell("Email Address", emailColumn), cell("Address", addressColumn)))
	b.WriteString(strings.Repeat("─", nameColumn+emailColumn+addressColumn+2*len(columnGap)) + "\n")
	if len(rows) == 0 {
		b.WriteString("No users found\n")
	}
	for _, u := range rows {
		b.WriteString(row(
			cell(u.Name, nameColumn),
			cell(u.Email, emailColumn),
			cell(FormatAddress(u.Address), addressColumn),
		))
	}
	b.WriteString("\n" + PageControls(page.Page, page.TotalPages) + "\n")

	_, err := io.WriteString(w, b.String())
	return err
}

func row(cols ...string) string {
	return strings.TrimRight(strings.Join(cols, columnGap), " ") + "\n"
}

// PageNumbers returns the 1-based page links to show: the first and last
// pages plus a window around current.
func PageNumbers(current, totalPages int) []int {
	if totalPages <= 0 {
		return nil
	}
	pages := []int{1}
	start := max(2, current-1)
	end := min(totalPages-1, start+2)
	for i := start; i <= end; i++ {
		pages = append(pages, i)
	}
	if totalPages > 1 {
		pages = append(pages, totalPages)
	}
	return pages
}

// PageControls renders "‹ Previous  1 [2] 3 … 9  Next ›" and the page position.
func PageControls(current, totalPages int) string {
	var parts []string
	if current > 1 {
		parts = append(parts, "‹ Previous")
	}

	pages := PageNumbers(current, totalPages)
	var links []string
	for i, p := range pages {
		if i > 0 && p-pages[i-1] > 1 {
			links = append(links, "...")
		}
		label := strconv.Itoa(p)
		if p == current {
			label = "[" + label + "]"
		}
		links = append(links, label)
	}
	if len(links) > 0 {
		parts = append(parts, strings.Join(links, " "))
	}

	if current < totalPages {
		parts = append(parts, "Next ›")
	}

	controls := strings.Join(parts, "  ")
	position := fmt.Sprintf("Page %d of %d", current, max(totalPages, 1))
	if controls == "" {
		return position
	}
	return controls + "  |  " + position
}
