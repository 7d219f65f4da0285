// Copyright 2026 The Scriggo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package rss generates the RSS 2.0 feed of the posts of a site.
package rss

import (
	"encoding/xml"
	"fmt"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"golang.org/x/net/html"
)

// Default values of the configuration.
const (
	DefaultTitle       = "My Arc Site"
	DefaultDescription = "A site generated with Arc"
	DefaultURL         = "http://localhost:8080"
	DefaultLanguage    = "en-us"
	DefaultMaxItems    = 10
)

// Generator is the value of the generator element of the channel.
const Generator = "Arc Static Site Generator"

// descriptionLength is the maximum length, in characters, of a description
// taken from the content of a post.
const descriptionLength = 200

const contentNamespace = "http://purl.org/rss/1.0/modules/content/"

// Config is the configuration of a feed.
type Config struct {
	Title       string
	Description string
	URL         string
	Language    string
	MaxItems    int
}

// ConfigFrom returns the configuration read from the keys of a site
// configuration. Missing keys take the default values. site can be nil.
func ConfigFrom(site map[string]string) Config {
	cfg := Config{
		Title:       DefaultTitle,
		Description: DefaultDescription,
		URL:         DefaultURL,
		Language:    DefaultLanguage,
		MaxItems:    DefaultMaxItems,
	}
	if v, ok := site["title"]; ok {
		cfg.Title = v
	}
	if v, ok := site["description"]; ok {
		cfg.Description = v
	}
	if v, ok := site["url"]; ok {
		cfg.URL = v
	}
	if v, ok := site["language"]; ok {
		cfg.Language = v
	}
	if v, ok := site["rss_max_items"]; ok {
		if n, err := strconv.Atoi(strings.TrimSpace(v)); err == nil {
			cfg.MaxItems = n
		}
	}
	return cfg
}

// String returns cfg as a site configuration file.
func (cfg Config) String() string {
	return fmt.Sprintf("---\ntitle: %s\ndescription: %s\nurl: %s\nlanguage: %s\nrss_max_items: %d\n---\n",
		cfg.Title, cfg.Description, cfg.URL, cfg.Language, cfg.MaxItems)
}

// RSS is the root element of a feed.
type RSS struct {
	XMLName   xml.Name `xml:"rss"`
	Version   string   `xml:"version,attr"`
	ContentNS string   `xml:"xmlns:content,attr"`
	Channel   Channel  `xml:"channel"`
}

// Channel is the channel of a feed.
type Channel struct {
	Title         string `xml:"title"`
	Link          string `xml:"link"`
	Description   string `xml:"description"`
	Language      string `xml:"language"`
	LastBuildDate string `xml:"lastBuildDate"`
	Generator     string `xml:"generator"`
	Items         []Item `xml:"item"`
}

// Item is an item of a channel.
type Item struct {
	Title       string   `xml:"title"`
	Link        string   `xml:"link"`
	Description string   `xml:"description,omitempty"`
	PubDate     string   `xml:"pubDate"`
	GUID        GUID     `xml:"guid"`
	Content     *Content `xml:"content:encoded,omitempty"`
}

// GUID is the unique identifier of an item.
type GUID struct {
	IsPermaLink bool   `xml:"isPermaLink,attr"`
	Value       string `xml:",chardata"`
}

// Content is the full HTML content of an item, written as CDATA.
type Content struct {
	Value string `xml:",cdata"`
}

// NewFeed returns the feed of posts, already sorted from the newest.
//
// posts are the metadata of the posts. The keys title, date and url are
// required, posts without one of them are skipped. The optional excerpt is
// the description of the item; without it, the description is the
// beginning of the text of rendered_content, the HTML content of the post.
// now is used as build date, and as publication date of the posts whose
// date is not in the form "2006-01-02".
func NewFeed(posts []map[string]string, cfg Config, now time.Time) *RSS {
	base := strings.TrimSuffix(cfg.URL, "/")
	feed := &RSS{
		Version:   "2.0",
		ContentNS: contentNamespace,
		Channel: Channel{
			Title:         cfg.Title,
			Link:          cfg.URL,
			Description:   cfg.Description,
			Language:      cfg.Language,
			LastBuildDate: now.Format(time.RFC1123Z),
			Generator:     Generator,
			Items:         []Item{},
		},
	}
	for _, post := range posts {
		if len(feed.Channel.Items) >= cfg.MaxItems {
			break
		}
		title, ok1 := post["title"]
		date, ok2 := post["date"]
		url, ok3 := post["url"]
		if !ok1 || !ok2 || !ok3 {
			continue
		}
		if !strings.HasPrefix(url, "/") {
			url = "/" + url
		}
		link := base + url
		item := Item{
			Title:   title,
			Link:    link,
			PubDate: pubDate(date, now),
			GUID:    GUID{IsPermaLink: true, Value: link},
		}
		content, hasContent := post["rendered_content"]
		if excerpt := post["excerpt"]; excerpt != "" {
			item.Description = excerpt
		} else if hasContent {
			item.Description = truncate(textOf(content), descriptionLength)
		}
		if hasContent {
			item.Content = &Content{Value: content}
		}
		feed.Channel.Items = append(feed.Channel.Items, item)
	}
	return feed
}

// Marshal returns the XML document of feed.
func Marshal(feed *RSS) ([]byte, error) {
	data, err := xml.MarshalIndent(feed, "", "  ")
	if err != nil {
		return nil, err
	}
	b := make([]byte, 0, len(xml.Header)+len(data)+1)
	b = append(b, xml.Header...)
	b = append(b, data...)
	b = append(b, '\n')
	return b, nil
}

// pubDate returns the ISO date as an RFC 822 date, with a four digit year.
func pubDate(date string, now time.Time) string {
	t, err := time.Parse(time.DateOnly, strings.TrimSpace(date))
	if err != nil {
		t = now
	}
	return t.Format(time.RFC1123Z)
}

// textOf returns the text of an HTML fragment, without the tags.
func textOf(fragment string) string {
	var b strings.Builder
	z := html.NewTokenizer(strings.NewReader(fragment))
	for {
		switch z.Next() {
		case html.ErrorToken:
			return strings.TrimSpace(b.String())
		case html.TextToken:
			b.Write(z.Text())
		}
	}
}

// truncate truncates s to at most n characters, at the last space, and
// appends "...". s is returned as is if it is not longer than n characters.
func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	// Index of the byte after the first n characters.
	end := 0
	for i := 0; i < n; i++ {
		_, size := utf8.DecodeRuneInString(s[end:])
		end += size
	}
	// A space right after the first n characters is a word boundary.
	limit := end
	if s[end] == ' ' {
		limit++
	}
	if i := strings.LastIndexByte(s[:limit], ' '); i > 0 {
		return s[:i] + "..."
	}
	return s[:end] + "..."
}
