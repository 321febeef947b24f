package v1alpha1

import (
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
)

// DependencyTree declares a module and its dependencies as nested
// declarations, the way a build file lists them. Hop distance and declaration
// order are derived from the nesting.
//
// +kubebuilder:object:root=true
type DependencyTree struct {
	metav1.TypeMeta   `json:",inline"`
	metav1.ObjectMeta `json:"metadata,omitempty"`

	Spec DependencyTreeSpec `json:"spec"`
}

type DependencyTreeSpec struct {
	Root         Coordinates   `json:"root"`
	Dependencies []Declaration `json:"dependencies,omitempty" validate:"dive"`
}

// Declaration is one dependency request and, recursively, what it requests.
type Declaration struct {
	Coordinates `json:",inline"`

	// Scope is one of build, run, provided, system or test. Empty means build.
	Scope string `json:"scope,omitempty"`
	// Resolved is the location of the artifact, if known.
	Resolved     string        `json:"resolved,omitempty"`
	Exclusions   Exclusions    `json:"exclusions,omitempty"`
	Dependencies []Declaration `json:"dependencies,omitempty" validate:"dive"`
}

func init() {
	SchemeBuilder.Register(&DependencyTree{})
}
