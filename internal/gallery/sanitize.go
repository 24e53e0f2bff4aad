package gallery

import (
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	thumbnailPolicyOnce sync.Once
	thumbnailPolicy     *bluemonday.Policy
)

func sanitizeThumbnail(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ""
	}
	return strings.TrimSpace(thumbnailSanitizer().Sanitize(trimmed))
}

// thumbnailSanitizer only lets through the paragraph and image markup that the
// markdown renderer emits for a card thumbnail.
func thumbnailSanitizer() *bluemonday.Policy {
	thumbnailPolicyOnce.Do(func() {
		policy := bluemonday.NewPolicy()
		policy.AllowStandardURLs()
		policy.AllowElements("p")
		policy.AllowImages()
		policy.AllowAttrs("title").OnElements("img")
		thumbnailPolicy = policy
	})
	return thumbnailPolicy
}
