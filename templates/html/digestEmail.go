package templates

import (
	"fmt"
	"html"
	"strings"
)

// FlaggedEntry is one reported item in the moderation digest
type FlaggedEntry struct {
	ItemID   string
	Title    string
	Type     string
	Status   string
	Reporter string
	Reports  int
}

// DigestSubject is the subject line of the moderation digest
func DigestSubject(count int) string {
	if count == 1 {
		return "1 flagged item needs review"
	}
	return fmt.Sprintf("%d flagged items need review", count)
}

// RenderModerationDigest generates the HTML and plain text bodies of the daily
// moderation digest
func RenderModerationDigest(entries []FlaggedEntry) (htmlContent, plainText string) {
	subject := DigestSubject(len(entries))

	var hb, pb strings.Builder
	hb.WriteString("<p>The following items have been reported by students and may be hidden from the feed.</p>")
	pb.WriteString(subject + "\n\n")
	for _, e := range entries {
		fmt.Fprintf(&hb, `<div class="item"><h3>%s</h3><p>%s &middot; %s &middot; reported by %d user(s)</p><p>Posted by %s &middot; id %s</p></div>`,
			html.EscapeString(e.Title),
			html.EscapeString(e.Type),
			html.EscapeString(e.Status),
			e.Reports,
			html.EscapeString(e.Reporter),
			html.EscapeString(e.ItemID),
		)
		fmt.Fprintf(&pb, "- %s (%s, %s): %d report(s), posted by %s, id %s\n",
			e.Title, e.Type, e.Status, e.Reports, e.Reporter, e.ItemID)
	}
	return renderLayout(html.EscapeString(subject), hb.String()), pb.String()
}
