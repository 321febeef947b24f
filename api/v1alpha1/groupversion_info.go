// Package v1alpha1 contains the declaration documents read by the depgraph
// CLI.
package v1alpha1

import (
	"k8s.io/apimachinery/pkg/runtime/schema"
	"sigs.k8s.io/controller-runtime/pkg/scheme"
)

var (
	GroupVersion = schema.GroupVersion{Group: "depgraph.bayleafwalker.io", Version: "v1alpha1"}

	SchemeBuilder = &scheme.Builder{GroupVersion: GroupVersion}

	AddToScheme = SchemeBuilder.AddToScheme
)

const (
	KindDependencyTree  = "DependencyTree"
	KindDependencyGraph = "DependencyGraph"
)
