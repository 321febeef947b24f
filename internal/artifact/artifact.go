package artifact

import (
	"errors"
	"fmt"
	"strings"
)

// DefaultType is the packaging type assumed when a declaration omits one.
const DefaultType = "jar"

// ErrInvalidCoordinate is returned when a coordinate string cannot be parsed.
var ErrInvalidCoordinate = errors.New("invalid artifact coordinate")

// Identity keys an artifact without its version.
//
// Competing version requests for the same group and name are compared within
// a single graph vertex, so version is deliberately not part of identity.
type Identity struct {
	Group string `json:"group"`
	Name  string `json:"name"`
}

func (id Identity) String() string {
	return id.Group + ":" + id.Name
}

func (id Identity) IsZero() bool {
	return id.Group == "" && id.Name == ""
}

// Compare orders identities by group, then name.
func Compare(a, b Identity) int {
	if c := strings.Compare(a.Group, b.Group); c != 0 {
		return c
	}
	return strings.Compare(a.Name, b.Name)
}

// ParseIdentity parses "group:name". Extra segments (version, type) are
// rejected; use ParseMetadata for full coordinates.
func ParseIdentity(raw string) (Identity, error) {
	parts := strings.Split(strings.TrimSpace(raw), ":")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return Identity{}, fmt.Errorf("artifact: parse identity %q: %w", raw, ErrInvalidCoordinate)
	}
	return Identity{Group: parts[0], Name: parts[1]}, nil
}

// Metadata describes an artifact as declared. The version here is nominal;
// versions used for resolution live on graph edges.
type Metadata struct {
	Identity
	Version    string `json:"version,omitempty"`
	Type       string `json:"type,omitempty"`
	Classifier string `json:"classifier,omitempty"`
}

// New returns metadata with the default packaging type.
func New(group, name, version string) Metadata {
	return Metadata{
		Identity: Identity{Group: group, Name: name},
		Version:  version,
		Type:     DefaultType,
	}
}

// ParseMetadata parses group:name[:version[:type[:classifier]]].
func ParseMetadata(raw string) (Metadata, error) {
	parts := strings.Split(strings.TrimSpace(raw), ":")
	if len(parts) < 2 || len(parts) > 5 || parts[0] == "" || parts[1] == "" {
		return Metadata{}, fmt.Errorf("artifact: parse coordinate %q: %w", raw, ErrInvalidCoordinate)
	}
	md := New(parts[0], parts[1], "")
	if len(parts) > 2 {
		md.Version = parts[2]
	}
	if len(parts) > 3 && parts[3] != "" {
		md.Type = parts[3]
	}
	if len(parts) > 4 {
		md.Classifier = parts[4]
	}
	return md, nil
}

func (m Metadata) String() string {
	var b strings.Builder
	b.WriteString(m.Identity.String())
	typ := m.Type
	if typ == "" {
		typ = DefaultType
	}
	b.WriteString(":")
	b.WriteString(typ)
	if m.Classifier != "" {
		b.WriteString(":")
		b.WriteString(m.Classifier)
	}
	if m.Version != "" {
		b.WriteString(":")
		b.WriteString(m.Version)
	}
	return b.String()
}
