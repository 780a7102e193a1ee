package vorbistag

import (
	"sort"
	"strings"
)

// Comment is a single name=value tag pair.
type Comment struct {
	Name  string
	Value string
}

// CommentHeader holds the decoded form of a Vorbis comment block: the
// vendor string and the ordered tag list.
//
// Order is significant and preserved through encode/decode; duplicate
// names are allowed and meaningful (a tag may carry several values).
// Tag names compare case-insensitively everywhere; the mutation methods
// store names lowercased, but literal construction (and decoding) keeps
// whatever casing the caller or the stream provides.
//
// The zero value is an empty header ready for use.
type CommentHeader struct {
	// Vendor identifies the encoder that produced the stream.
	Vendor string

	// Comments is the ordered tag list.
	Comments []Comment
}

// TagNames returns the distinct tag names of the header, lowercased,
// sorted ascending.
func (h *CommentHeader) TagNames() []string {
	names := make([]string, 0, len(h.Comments))
	seen := make(map[string]bool, len(h.Comments))
	for _, c := range h.Comments {
		name := strings.ToLower(c.Name)
		if !seen[name] {
			seen[name] = true
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}

// Tag returns the first value stored under name (case-insensitive) and
// whether any was found.
func (h *CommentHeader) Tag(name string) (string, bool) {
	values := h.Tags(name)
	if len(values) == 0 {
		return "", false
	}
	return values[0], true
}

// Tags returns every value stored under name (case-insensitive), in
// storage order.
func (h *CommentHeader) Tags(name string) []string {
	name = strings.ToLower(name)
	var values []string
	for _, c := range h.Comments {
		if strings.ToLower(c.Name) == name {
			values = append(values, c.Value)
		}
	}
	return values
}

// ClearTag removes every entry stored under name (case-insensitive).
// The relative order of the remaining entries is unchanged.
func (h *CommentHeader) ClearTag(name string) {
	name = strings.ToLower(name)
	kept := h.Comments[:0]
	for _, c := range h.Comments {
		if strings.ToLower(c.Name) != name {
			kept = append(kept, c)
		}
	}
	h.Comments = kept
}

// AddTag appends one entry. The name is stored lowercased; the value is
// stored as given.
func (h *CommentHeader) AddTag(name, value string) {
	h.Comments = append(h.Comments, Comment{
		Name:  strings.ToLower(name),
		Value: value,
	})
}

// AddTags appends one entry per value under the same lowercased name,
// preserving the given value order.
func (h *CommentHeader) AddTags(name string, values ...string) {
	for _, v := range values {
		h.AddTag(name, v)
	}
}
