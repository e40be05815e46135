package rottentomatoes

import (
	"html"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

var (
	yearInHTMLRe   = regexp.MustCompile(`\b((?:19|20)\d{2})\b`)
	yearInURLRe    = regexp.MustCompile(`/m/[^/]*_(\d{4})(?:/|$)`)
	yearInTitleRe  = regexp.MustCompile(`\((\d{4})\)$`)
	criticScoreRe  = regexp.MustCompile(`"aggregateRating".*?"ratingValue":"?(\d+)"?`)
	consensusRe    = regexp.MustCompile(`"reviewBody":\s*"([^"]{20,})"`)
	consensusPfxRe = regexp.MustCompile(`(?i)^Critics\s+Consensus:?\s*`)
	htmlTagsRe     = regexp.MustCompile(`<[^>]*>`)
	whitespaceRe   = regexp.MustCompile(`\s+`)

	criticFallbackRes = []*regexp.Regexp{
		regexp.MustCompile(`(?:tomatometer|criticsScore)["\']?\s*:\s*["\']?(\d+)["\']?`),
		regexp.MustCompile(`data-qa="tomatometer"[^>]*>(\d+)%`),
	}
	audienceRes = []*regexp.Regexp{
		regexp.MustCompile(`"audience[sS]core":\s*"?(\d+)"?`),
		regexp.MustCompile(`<score-board[^>]*audiencescore="(\d+)"`),
		regexp.MustCompile(`popcornmeter[^>]*>(\d+)%`),
		regexp.MustCompile(`data-qa="audience-score"[^>]*>(\d+)%`),
	}
	releaseYearRes = []*regexp.Regexp{
		regexp.MustCompile(`(?:dateCreated|release)["\']?\s*:\s*["\']?(?:[^"\']*?)(\d{4})`),
		regexp.MustCompile(`(?:release|released|year)[^<>\d]{1,20}((?:19|20)\d{2})`),
	}
)

var consensusSelectors = []string{
	`[data-qa="critics-consensus"]`,
	`#critics-consensus p`,
	".what-to-know__consensus",
	".critic_consensus",
	".consensus",
}

// parseSearchResults reads movie rows from a search page. Relative links are
// resolved against baseURL.
func parseSearchResults(doc *goquery.Document, baseURL string) []SearchResult {
	var results []SearchResult

	collect := func(item *goquery.Selection, titleSel, yearSel string) {
		title := strings.TrimSpace(item.Find(titleSel).First().Text())
		if title == "" {
			return
		}

		link, _ := item.Find("a").Attr("href")
		if link != "" && !strings.HasPrefix(link, "http") {
			link = baseURL + link
		}

		year := firstNonEmpty(
			attr(item, "releaseyear"),
			attr(item, "data-year"),
			strings.TrimSpace(item.Find(yearSel).First().Text()),
			submatch(yearInURLRe, link),
			submatch(yearInTitleRe, title),
		)
		if year == "" {
			inner, _ := item.Html()
			year = submatch(yearInHTMLRe, inner)
		}
		if year == "" {
			year = NotAvailable
		}

		results = append(results, SearchResult{Title: title, Year: year, URL: link})
	}

	rows := doc.Find(`search-page-result[type="movie"] search-page-media-row`)
	if rows.Length() == 0 {
		rows = doc.Find("search-page-media-row")
	}
	rows.Each(func(_ int, item *goquery.Selection) {
		collect(item, "[slot=title]", "[slot=year]")
	})

	// Older layout
	if len(results) == 0 {
		doc.Find(".findify-components--cards__inner, .js-tile-link, .search__results .poster").Each(func(_ int, item *goquery.Selection) {
			collect(item, ".movieTitle", ".movieYear")
		})
	}

	return dedupe(results)
}

// parseMoviePage extracts title, year, scores and consensus from a movie page.
func parseMoviePage(doc *goquery.Document) *Scores {
	raw, _ := doc.Html()

	scores := &Scores{
		Title:         NotAvailable,
		Year:          NotAvailable,
		CriticScore:   NotAvailable,
		AudienceScore: NotAvailable,
		Consensus:     "No consensus yet.",
	}

	if og, ok := doc.Find(`meta[property="og:title"]`).Attr("content"); ok && strings.TrimSpace(og) != "" {
		scores.Title = cleanTitle(og)
	} else if t := strings.TrimSpace(doc.Find("title").First().Text()); t != "" {
		scores.Title = cleanTitle(t)
	}

	if v := scoreFromBoard(doc, "tomatometerscore", "criticsScore"); v != "" {
		scores.CriticScore = v
	} else if v := submatch(criticScoreRe, raw); v != "" {
		scores.CriticScore = v
	} else {
		for _, re := range criticFallbackRes {
			if v := submatch(re, raw); v != "" {
				scores.CriticScore = v
				break
			}
		}
	}

	if v := scoreFromBoard(doc, "audiencescore", "audienceScore"); v != "" {
		scores.AudienceScore = v
	} else {
		for _, re := range audienceRes {
			if v := submatch(re, raw); v != "" {
				scores.AudienceScore = v
				break
			}
		}
	}

	for _, re := range releaseYearRes {
		if v := submatch(re, raw); v != "" {
			scores.Year = v
			break
		}
	}

	if c := parseConsensus(doc, raw); c != "" {
		scores.Consensus = c
	}

	return scores
}

// scoreFromBoard reads a score from the score-board element's attribute or
// from an element with the given slot.
func scoreFromBoard(doc *goquery.Document, boardAttr, slot string) string {
	if v, ok := doc.Find("score-board, score-board-deprecated").First().Attr(boardAttr); ok {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	text := strings.TrimSpace(doc.Find(`[slot="` + slot + `"]`).First().Text())
	return strings.TrimSuffix(text, "%")
}

func parseConsensus(doc *goquery.Document, raw string) string {
	var text string
	for _, selector := range consensusSelectors {
		if sel := doc.Find(selector).First(); sel.Length() > 0 {
			if t := strings.TrimSpace(sel.Text()); len(t) > 20 {
				text = t
				break
			}
		}
	}
	if text == "" {
		text = html.UnescapeString(submatch(consensusRe, raw))
	}
	if text == "" {
		return ""
	}

	text = consensusPfxRe.ReplaceAllString(text, "")
	text = htmlTagsRe.ReplaceAllString(text, " ")
	return strings.TrimSpace(whitespaceRe.ReplaceAllString(text, " "))
}

// cleanTitle strips the " | Rotten Tomatoes" suffix.
func cleanTitle(s string) string {
	if i := strings.Index(s, "|"); i >= 0 {
		s = s[:i]
	}
	return strings.TrimSpace(s)
}

func attr(s *goquery.Selection, name string) string {
	v, _ := s.Attr(name)
	return strings.TrimSpace(v)
}

func submatch(re *regexp.Regexp, s string) string {
	if m := re.FindStringSubmatch(s); len(m) > 1 {
		return m[1]
	}
	return ""
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func dedupe(results []SearchResult) []SearchResult {
	seen := make(map[string]bool, len(results))
	out := results[:0]
	for _, r := range results {
		key := r.URL
		if key == "" {
			key = r.Title + "|" + r.Year
		}
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, r)
	}
	return out
}
