package extract

import "strings"

// ClassifyVisibility maps an identifier to its visibility class based purely
// on its leading/trailing underscore pattern:
//
//	__name__  -> magic
//	__name    -> private
//	_name     -> protected
//	name      -> public
func ClassifyVisibility(name string) Visibility {
	switch {
	case strings.HasPrefix(name, "__") && strings.HasSuffix(name, "__") && len(name) > 4:
		return VisibilityMagic
	case strings.HasPrefix(name, "__"):
		return VisibilityPrivate
	case strings.HasPrefix(name, "_"):
		return VisibilityProtected
	default:
		return VisibilityPublic
	}
}

// IsPrivateName reports whether a name is hidden by default during
// extraction. Magic methods stay visible; single and double underscore
// prefixed names do not.
func IsPrivateName(name string) bool {
	v := ClassifyVisibility(name)
	return v == VisibilityPrivate || v == VisibilityProtected
}
