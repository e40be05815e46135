package ui

import (
	"strconv"
	"strings"
)

// pageItem is one slot of the pagination control: a 0-indexed page or a break.
type pageItem struct {
	page    int
	isBreak bool
}

// pageWindow lays out the pagination control: rng pages around active plus
// margin pages at each end, with a single break for every gap.
func pageWindow(total, active, rng, margin int) []pageItem {
	if total <= 0 {
		return nil
	}
	if rng < 1 {
		rng = 1
	}
	if margin < 0 {
		margin = 0
	}

	start := active - rng/2
	if start < 0 {
		start = 0
	}
	end := start + rng - 1
	if end > total-1 {
		end = total - 1
		start = max(0, end-rng+1)
	}

	var items []pageItem
	for i := 0; i < total; i++ {
		if i < margin || i >= total-margin || (i >= start && i <= end) {
			items = append(items, pageItem{page: i})
			continue
		}
		if len(items) > 0 && !items[len(items)-1].isBreak {
			items = append(items, pageItem{isBreak: true})
		}
	}

	return items
}

func (m Model) renderPagination(total, active int) string {
	var sb strings.Builder

	if active > 0 {
		sb.WriteString(pageStyle.Render("←"))
	} else {
		sb.WriteString(disabledPageStyle.Render("←"))
	}

	for _, item := range pageWindow(total, active, m.cfg.PageRange, m.cfg.PageMargin) {
		switch {
		case item.isBreak:
			sb.WriteString(mutedTextStyle.Padding(0, 1).Render("…"))
		case item.page == active:
			sb.WriteString(activePageStyle.Render(strconv.Itoa(item.page + 1)))
		default:
			sb.WriteString(pageStyle.Render(strconv.Itoa(item.page + 1)))
		}
	}

	if active < total-1 {
		sb.WriteString(pageStyle.Render("→"))
	} else {
		sb.WriteString(disabledPageStyle.Render("→"))
	}

	return sb.String()
}
