package paths

import (
	"regexp"
	"strings"

	"synagogue-manager/internal/shared/errors"
)

// SynagoguesSegment is the root segment under which every tenant-owned
// collection is nested.
const SynagoguesSegment = "synagogues"

// PathInfo represents a parsed collection path.
type PathInfo struct {
	SynagogueID string // empty for global collections
	Collection  string
	Segments    []string
}

var (
	// Valid ID pattern (alphanumeric, hyphens, underscores, dots for email ids)
	validIDPattern = regexp.MustCompile(`^[a-zA-Z0-9_.@-]+$`)
)

// Global returns the path of a top-level collection shared by all tenants.
func Global(collection string) string {
	return strings.Trim(collection, "/")
}

// Scoped returns the effective path of a tenant-owned collection:
// synagogues/{synagogueID}/{collection}. An empty synagogue ID falls back
// to the global path.
func Scoped(synagogueID, collection string) string {
	collection = strings.Trim(collection, "/")
	if synagogueID == "" {
		return collection
	}
	return SynagoguesSegment + "/" + synagogueID + "/" + collection
}

// Parse splits a collection path back into its tenant and collection parts.
func Parse(path string) (*PathInfo, error) {
	path = strings.Trim(path, "/")
	if path == "" {
		return nil, errors.NewValidationError("collection path cannot be empty")
	}

	segments := splitSegments(path)
	for _, segment := range segments {
		if !IsValidID(segment) {
			return nil, errors.NewValidationError("invalid path segment").
				WithDetail("segment", segment).
				WithDetail("path", path)
		}
	}

	switch len(segments) {
	case 1:
		return &PathInfo{Collection: segments[0], Segments: segments}, nil
	case 3:
		if segments[0] != SynagoguesSegment {
			return nil, errors.NewValidationError("tenant-scoped path must start with synagogues/").
				WithDetail("path", path)
		}
		return &PathInfo{
			SynagogueID: segments[1],
			Collection:  segments[2],
			Segments:    segments,
		}, nil
	default:
		return nil, errors.NewValidationError("collection path must be {collection} or synagogues/{id}/{collection}").
			WithDetail("path", path)
	}
}

// isScoped reports whether the path addresses a tenant-owned collection.
func isScoped(path string) bool {
	info, err := Parse(path)
	return err == nil && info.SynagogueID != ""
}

// IsValidID validates a path segment or document ID. Mongo forbids "$" and
// the empty string in namespace components; everything persisted here also
// stays URL-safe.
func IsValidID(id string) bool {
	if id == "" {
		return false
	}
	return validIDPattern.MatchString(id)
}

// Validate checks that a full collection path is well formed.
func Validate(path string) error {
	_, err := Parse(path)
	return err
}

func splitSegments(path string) []string {
	var out []string
	for _, p := range strings.Split(path, "/") {
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
