package urlutil

import (
	"net/url"
	"strings"
)

// BuildAbsolute builds an absolute URL from a base origin and a path.
func BuildAbsolute(base, path string) string {
	base = normalizeBaseURL(base)
	if path == "" {
		return base
	}
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return path
	}
	if strings.HasPrefix(path, "/") {
		return base + path
	}
	return base + "/" + path
}

// ObjectHomePath is the Lightning list view of an object.
func ObjectHomePath(object string) string {
	return "/lightning/o/" + object + "/list"
}

// ObjectListPath is the Lightning list view of an object restricted to a named filter.
func ObjectListPath(object, filterName string) string {
	if filterName == "" {
		return ObjectHomePath(object)
	}
	return ObjectHomePath(object) + "?filterName=" + url.QueryEscape(filterName)
}

// NewRecordPath opens the new-record modal of an object.
func NewRecordPath(object string) string {
	return "/lightning/o/" + object + "/new"
}

// RecordViewPath is the Lightning detail view of a single record.
func RecordViewPath(object, recordID string) string {
	return "/lightning/r/" + object + "/" + recordID + "/view"
}

// LightningRoute is the parsed form of a Lightning Experience location.
type LightningRoute struct {
	// Kind is "o" for object-level routes and "r" for record-level routes.
	Kind     string
	Object   string
	RecordID string
	Action   string // list, new, view, ...
}

// ParseLightningRoute extracts the object and action from a Lightning URL or path.
func ParseLightningRoute(location string) (LightningRoute, bool) {
	path := location
	if u, err := url.Parse(location); err == nil && u.Path != "" {
		path = u.Path
	}
	parts := strings.Split(strings.Trim(path, "/"), "/")
	if len(parts) < 3 || parts[0] != "lightning" {
		return LightningRoute{}, false
	}
	route := LightningRoute{Kind: parts[1], Object: parts[2]}
	switch route.Kind {
	case "o":
		if len(parts) > 3 {
			route.Action = parts[3]
		}
	case "r":
		if len(parts) > 3 {
			route.RecordID = parts[3]
		}
		if len(parts) > 4 {
			route.Action = parts[4]
		}
	default:
		return LightningRoute{}, false
	}
	return route, true
}

func normalizeBaseURL(base string) string {
	base = strings.TrimSpace(base)
	if base == "" {
		return ""
	}
	return strings.TrimRight(base, "/")
}
