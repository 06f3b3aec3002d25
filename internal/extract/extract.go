package extract

import (
    "bytes"
    "strings"

    "github.com/PuerkitoBio/goquery"
    "golang.org/x/net/html"
)

// Document is a simplified representation of a fetched post page.
type Document struct {
    Title string
    // Description is the og:description (or description) meta content.
    // Social sites put the post caption there.
    Description string
    // Article is the text of the first <article>, empty when absent.
    Article string
    // Text is the readable text of <main>, <article> or <body>, in that order.
    Text string
}

// FromHTML extracts the caption metadata and readable text from HTML.
// Text collection skips scripts, navigation and consent banners.
func FromHTML(input []byte) Document {
    node, err := html.Parse(bytes.NewReader(input))
    if err != nil || node == nil {
        return Document{}
    }

    doc := Document{
        Title:       strings.TrimSpace(findTitle(node)),
        Description: metaDescription(node),
    }
    article := findFirst(node, "article")
    if article != nil {
        doc.Article = textOf(article)
    }
    content := findFirst(node, "main")
    if content == nil {
        content = article
    }
    if content == nil {
        content = findFirst(node, "body")
    }
    if content != nil {
        doc.Text = textOf(content)
    }
    return doc
}

// metaDescription prefers Open Graph over the plain description tag.
func metaDescription(root *html.Node) string {
    sel := goquery.NewDocumentFromNode(root)
    for _, q := range []string{`meta[property="og:description"]`, `meta[name="description"]`} {
        if v, ok := sel.Find(q).First().Attr("content"); ok {
            if v = strings.TrimSpace(v); v != "" {
                return v
            }
        }
    }
    return ""
}

func textOf(n *html.Node) string {
    var b strings.Builder
    collectText(&b, n, false)
    return normalizeWhitespace(b.String())
}

func findTitle(n *html.Node) string {
    head := findFirst(n, "head")
    if head == nil {
        return ""
    }
    t := findFirst(head, "title")
    if t == nil || t.FirstChild == nil {
        return ""
    }
    return t.FirstChild.Data
}

func findFirst(n *html.Node, tag string) *html.Node {
    var res *html.Node
    var dfs func(*html.Node)
    dfs = func(cur *html.Node) {
        if res != nil {
            return
        }
        if cur.Type == html.ElementNode && strings.EqualFold(cur.Data, tag) {
            res = cur
            return
        }
        for c := cur.FirstChild; c != nil; c = c.NextSibling {
            dfs(c)
        }
    }
    dfs(n)
    return res
}

func collectText(b *strings.Builder, n *html.Node, inPre bool) {
    if n.Type == html.ElementNode {
        if isBoilerplateContainer(n) {
            return
        }
        switch strings.ToLower(n.Data) {
        case "script", "style", "noscript", "nav", "footer", "aside", "iframe", "button":
            return
        case "pre":
            inPre = true
        case "br", "hr", "p", "div", "li", "ul", "ol", "h1", "h2", "h3", "h4", "h5", "h6":
            b.WriteString("\n")
        }
    }

    if n.Type == html.TextNode {
        data := n.Data
        if !inPre {
            data = strings.NewReplacer("\t", " ", "\r", " ").Replace(data)
        }
        b.WriteString(data)
    }

    for c := n.FirstChild; c != nil; c = c.NextSibling {
        collectText(b, c, inPre)
    }

    if n.Type == html.ElementNode {
        switch strings.ToLower(n.Data) {
        case "p", "div", "li", "pre", "h1", "h2", "h3", "h4", "h5", "h6":
            b.WriteString("\n")
        }
    }
}

// isBoilerplateContainer returns true if the element looks like a cookie/consent
// banner or a login wall overlay.
func isBoilerplateContainer(n *html.Node) bool {
    for _, attr := range n.Attr {
        key := strings.ToLower(attr.Key)
        if key != "id" && key != "class" && key != "role" && !strings.HasPrefix(key, "data-") {
            continue
        }
        val := strings.ToLower(attr.Val)
        if containsAny(val, []string{"cookie", "consent", "gdpr", "login-wall", "loginwall"}) {
            return true
        }
    }
    return false
}

func containsAny(s string, needles []string) bool {
    for _, n := range needles {
        if strings.Contains(s, n) {
            return true
        }
    }
    return false
}

// normalizeWhitespace collapses runs of spaces within lines and keeps at most
// one blank line between blocks.
func normalizeWhitespace(s string) string {
    lines := strings.Split(s, "\n")
    out := make([]string, 0, len(lines))
    for _, line := range lines {
        trimmed := strings.Join(strings.Fields(line), " ")
        if trimmed == "" {
            if len(out) > 0 && out[len(out)-1] == "" {
                continue
            }
            out = append(out, "")
            continue
        }
        out = append(out, trimmed)
    }
    for len(out) > 0 && out[0] == "" {
        out = out[1:]
    }
    for len(out) > 0 && out[len(out)-1] == "" {
        out = out[:len(out)-1]
    }
    return strings.Join(out, "\n")
}
