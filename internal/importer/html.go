// Package importer parses Netscape bookmark HTML back into directory
// bookmarks. Only file:// links are considered; anything else in the
// document is ignored.
package importer

import (
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/nikbrunner/dm/internal/model"
	"golang.org/x/net/html"
)

// ParseHTMLBookmarks parses Netscape bookmark HTML and returns the
// directory bookmarks keyed by name. The enclosing folder becomes the
// category; root-level links get the default category. Duplicate names
// within the document keep the first occurrence.
func ParseHTMLBookmarks(r io.Reader) (map[string]model.Bookmark, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, err
	}

	bookmarks := map[string]model.Bookmark{}

	// Track current folder stack for the category
	var folderStack []string
	pendingFolder := ""

	var parse func(*html.Node)
	parse = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch strings.ToLower(n.Data) {
			case "h3":
				// Folder definition - becomes the category of links inside.
				// Pushed when we see the folder's DL.
				pendingFolder = getTextContent(n)
				return // Don't recurse into H3

			case "a":
				href := getAttr(n, "href")
				path, ok := strings.CutPrefix(href, "file://")
				if !ok || path == "" {
					return
				}

				name := getTextContent(n)
				if name == "" {
					return
				}
				if _, exists := bookmarks[name]; exists {
					return
				}

				category := model.DefaultCategory
				if len(folderStack) > 0 {
					category = folderStack[len(folderStack)-1]
				}

				b := model.Bookmark{
					Path:     path,
					Category: category,
				}

				if lastVisit := getAttr(n, "last_visit"); lastVisit != "" {
					if ts, err := strconv.ParseInt(lastVisit, 10, 64); err == nil {
						t := time.Unix(ts, 0)
						b.LastAccessed = &t
					}
				}
				if visits := getAttr(n, "visit_count"); visits != "" {
					if count, err := strconv.Atoi(visits); err == nil && count >= 0 {
						b.AccessCount = count
					}
				}

				bookmarks[name] = b
				return // Don't recurse into A

			case "dl":
				// Definition list - marks folder contents
				pushed := false
				if pendingFolder != "" {
					folderStack = append(folderStack, pendingFolder)
					pendingFolder = ""
					pushed = true
				}

				for c := n.FirstChild; c != nil; c = c.NextSibling {
					parse(c)
				}

				if pushed {
					folderStack = folderStack[:len(folderStack)-1]
				}
				return // We handled children
			}
		}

		for c := n.FirstChild; c != nil; c = c.NextSibling {
			parse(c)
		}
	}

	parse(doc)
	return bookmarks, nil
}

// getTextContent returns the trimmed text content of a node.
func getTextContent(n *html.Node) string {
	var text strings.Builder
	var extract func(*html.Node)
	extract = func(n *html.Node) {
		if n.Type == html.TextNode {
			text.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			extract(c)
		}
	}
	extract(n)
	return strings.TrimSpace(text.String())
}

// getAttr returns the value of an attribute, case-insensitive.
func getAttr(n *html.Node, key string) string {
	key = strings.ToLower(key)
	for _, attr := range n.Attr {
		if strings.ToLower(attr.Key) == key {
			return attr.Val
		}
	}
	return ""
}
