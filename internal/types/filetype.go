package types

// Category identifies which test tier produced a classification result.
type Category string

const (
	CategoryFilesystem Category = "filesystem"
	CategoryMagic      Category = "magic"
	CategoryLanguage   Category = "language"
	CategoryNone       Category = "none"
)

// FileType is a single classification result. Immutable once constructed.
type FileType struct {
	Label    string   `json:"label"`
	Category Category `json:"category"`
	Detail   string   `json:"detail,omitempty"`
}

// Unknown is the terminal result when every tier declines to classify.
// It is a valid result, not a failure.
var Unknown = FileType{Label: "unknown", Category: CategoryNone}

// IsUnknown reports whether the result came from no tier at all.
func (t FileType) IsUnknown() bool {
	return t.Category == CategoryNone
}

func (t FileType) String() string {
	if t.Detail != "" {
		return t.Label + " (" + t.Detail + ")"
	}
	return t.Label
}

// Result records the outcome of classifying one path. A traversal collects
// one Result per file; failures are data in the sequence, not control flow.
type Result struct {
	Path string   `json:"path"`
	Type FileType `json:"type"`
	Err  error    `json:"-"`
}
