package templates

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRenderGenericEmail_EscapesContent(t *testing.T) {
	out := RenderGenericEmail("Hello <team>", "line one\n<script>x</script>")

	assert.Contains(t, out, "<title>Hello &lt;team&gt;</title>")
	assert.Contains(t, out, "line one<br>&lt;script&gt;x&lt;/script&gt;")
	assert.NotContains(t, out, "<script>")
	assert.Contains(t, out, "Campus Lost &amp; Found")
}

func TestDigestSubject(t *testing.T) {
	assert.Equal(t, "1 flagged item needs review", DigestSubject(1))
	assert.Equal(t, "3 flagged items need review", DigestSubject(3))
}

func TestRenderModerationDigest(t *testing.T) {
	htmlContent, plain := RenderModerationDigest([]FlaggedEntry{
		{ItemID: "i1", Title: "Black <Wallet>", Type: "FOUND", Status: "NEW", Reporter: "Alice", Reports: 3},
		{ItemID: "i2", Title: "Keys", Type: "LOST", Status: "PENDING_CLAIM", Reporter: "Bob", Reports: 1},
	})

	assert.Contains(t, htmlContent, "2 flagged items need review")
	assert.Contains(t, htmlContent, "Black &lt;Wallet&gt;")
	assert.Contains(t, htmlContent, "reported by 3 user(s)")
	assert.Contains(t, plain, "- Black <Wallet> (FOUND, NEW): 3 report(s), posted by Alice, id i1\n")
	assert.Contains(t, plain, "- Keys (LOST, PENDING_CLAIM): 1 report(s), posted by Bob, id i2\n")
}
