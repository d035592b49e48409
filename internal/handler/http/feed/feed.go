// Package feed serves the blog's RSS 2.0 feed.
package feed

import (
	"bytes"
	"context"
	"encoding/xml"
	"fmt"
	"net/http"
	"time"

	"autoblog/internal/domain/entity"
	"autoblog/internal/handler/http/respond"
	"autoblog/internal/utils/text"
)

// itemLimit caps the feed at the newest articles; readers poll, they don't
// need the archive.
const itemLimit = 20

// descriptionLimit truncates the plain-text description; full content ships
// in content:encoded.
const descriptionLimit = 300

// Lister is the slice of the article use cases the feed needs.
type Lister interface {
	List(ctx context.Context) ([]*entity.Article, error)
}

// Config names the channel. BaseURL is the externally visible origin used
// for links and GUIDs.
type Config struct {
	Title       string
	Description string
	BaseURL     string
}

// Handler answers GET /feed.xml with an RSS 2.0 document of the newest
// articles.
type Handler struct {
	Svc Lister
	Cfg Config
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	articles, err := h.Svc.List(r.Context())
	if err != nil {
		respond.SafeError(w, http.StatusInternalServerError, "failed to build feed", err)
		return
	}
	if len(articles) > itemLimit {
		articles = articles[:itemLimit]
	}

	w.Header().Set("Content-Type", "application/rss+xml; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(generate(h.Cfg, articles))
}

// generate renders the document by hand: the structure is small and fixed,
// and encoding/xml cannot emit CDATA sections for content:encoded.
func generate(cfg Config, articles []*entity.Article) []byte {
	var buf bytes.Buffer

	buf.WriteString(`<?xml version="1.0" encoding="UTF-8"?>`)
	buf.WriteString("\n")
	buf.WriteString(`<rss version="2.0" xmlns:content="http://purl.org/rss/1.0/modules/content/" xmlns:atom="http://www.w3.org/2005/Atom">`)
	buf.WriteString("\n  <channel>\n")

	writeElement(&buf, "title", cfg.Title, 4)
	writeElement(&buf, "link", cfg.BaseURL, 4)
	writeElement(&buf, "description", cfg.Description, 4)
	fmt.Fprintf(&buf, "    <atom:link href=\"%s/feed.xml\" rel=\"self\" type=\"application/rss+xml\" />\n", cfg.BaseURL)

	lastBuild := time.Now().UTC()
	if len(articles) > 0 {
		lastBuild = articles[0].CreatedAt.UTC()
	}
	writeElement(&buf, "lastBuildDate", lastBuild.Format(time.RFC1123Z), 4)

	for _, a := range articles {
		writeItem(&buf, cfg, a)
	}

	buf.WriteString("  </channel>\n</rss>")
	return buf.Bytes()
}

func writeItem(buf *bytes.Buffer, cfg Config, a *entity.Article) {
	link := fmt.Sprintf("%s/api/articles/%d", cfg.BaseURL, a.ID)

	buf.WriteString("    <item>\n")

	buf.WriteString(`      <guid isPermaLink="true">`)
	_ = xml.EscapeText(buf, []byte(link))
	buf.WriteString("</guid>\n")

	writeElement(buf, "title", a.Title, 6)
	writeElement(buf, "link", link, 6)
	writeElement(buf, "description", text.Truncate(a.Content, descriptionLimit), 6)

	buf.WriteString("      <content:encoded><![CDATA[")
	buf.WriteString(a.Content)
	buf.WriteString("]]></content:encoded>\n")

	writeElement(buf, "pubDate", a.CreatedAt.UTC().Format(time.RFC1123Z), 6)
	buf.WriteString("    </item>\n")
}

func writeElement(buf *bytes.Buffer, tag, content string, indent int) {
	if content == "" {
		return
	}
	for i := 0; i < indent; i++ {
		buf.WriteByte(' ')
	}
	buf.WriteString("<")
	buf.WriteString(tag)
	buf.WriteString(">")
	_ = xml.EscapeText(buf, []byte(content))
	buf.WriteString("</")
	buf.WriteString(tag)
	buf.WriteString(">\n")
}
