package reddit

import (
	"html"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// htmlToText 把上游返回的 HTML 片段（selftext_html/body_html）抽取为纯文本。
// 上游会对片段做一次实体转义，先还原再交给 goquery 解析。
func htmlToText(fragment string) string {
	raw := html.UnescapeString(fragment)
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(raw))
	if err != nil {
		return strings.TrimSpace(raw)
	}
	return strings.Join(strings.Fields(doc.Text()), " ")
}
