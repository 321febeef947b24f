package v1alpha1

// Coordinates name one artifact version.
type Coordinates struct {
	Group   string `json:"group" validate:"required"`
	Name    string `json:"name" validate:"required"`
	Version string `json:"version" validate:"required"`
	// Type defaults to "jar".
	Type       string `json:"type,omitempty"`
	Classifier string `json:"classifier,omitempty"`
}

// Exclusions are "group:name" patterns; either part may be "*".
type Exclusions []string
