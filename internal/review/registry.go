package review

import (
	"github.com/aliGhadyani/loupe/internal/language"
)

// Registry maps language tags to reviewers. Resolve never fails: tags
// without a registered reviewer get the fallback, so the orchestrator never
// branches on language itself.
type Registry struct {
	byTag    map[language.Tag]Reviewer
	fallback Reviewer
}

// NewRegistry creates a registry with the default fallback reviewer.
func NewRegistry() *Registry {
	return &Registry{
		byTag:    make(map[language.Tag]Reviewer),
		fallback: Fallback{},
	}
}

// Register installs a reviewer for a tag, replacing any previous one.
func (r *Registry) Register(tag language.Tag, rev Reviewer) {
	r.byTag[tag] = rev
}

// SetFallback replaces the fallback reviewer.
func (r *Registry) SetFallback(rev Reviewer) {
	r.fallback = rev
}

// Resolve returns the reviewer for a tag, or the fallback.
func (r *Registry) Resolve(tag language.Tag) Reviewer {
	if rev, ok := r.byTag[tag]; ok {
		return rev
	}
	return r.fallback
}

// Tags returns the tags with a dedicated reviewer, in no particular order.
func (r *Registry) Tags() []language.Tag {
	tags := make([]language.Tag, 0, len(r.byTag))
	for tag := range r.byTag {
		tags = append(tags, tag)
	}
	return tags
}
