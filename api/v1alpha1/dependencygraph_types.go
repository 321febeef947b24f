package v1alpha1

import (
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
)

// DependencyGraph lists vertices and edges explicitly, with the hop distance
// and declaration sequence already computed by whoever collected them.
//
// +kubebuilder:object:root=true
type DependencyGraph struct {
	metav1.TypeMeta   `json:",inline"`
	metav1.ObjectMeta `json:"metadata,omitempty"`

	Spec DependencyGraphSpec `json:"spec"`
}

type DependencyGraphSpec struct {
	// Entry is the "group:name" of the module being built.
	Entry    string            `json:"entry" validate:"required"`
	Vertices []Coordinates     `json:"vertices" validate:"required,min=1,dive"`
	Edges    []EdgeDeclaration `json:"edges,omitempty" validate:"dive"`
}

// EdgeDeclaration is one version request between two declared vertices.
type EdgeDeclaration struct {
	// Source and Target are "group:name".
	Source     string     `json:"source" validate:"required"`
	Target     string     `json:"target" validate:"required"`
	Version    string     `json:"version" validate:"required"`
	Resolved   string     `json:"resolved,omitempty"`
	Scope      string     `json:"scope,omitempty"`
	Exclusions Exclusions `json:"exclusions,omitempty"`
	Hop        int        `json:"hop" validate:"gte=1"`
	// Sequence defaults to the edge's position in the list, counting from 1.
	Sequence int `json:"sequence,omitempty" validate:"gte=0"`
}

func init() {
	SchemeBuilder.Register(&DependencyGraph{})
}
