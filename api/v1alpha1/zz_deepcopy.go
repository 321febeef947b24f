package v1alpha1

import (
	"k8s.io/apimachinery/pkg/runtime"
)

// DeepCopyInto copies the receiver, writing into out. in must be non-nil.
func (in *DependencyTree) DeepCopyInto(out *DependencyTree) {
	*out = *in
	out.TypeMeta = in.TypeMeta
	in.ObjectMeta.DeepCopyInto(&out.ObjectMeta)
	in.Spec.DeepCopyInto(&out.Spec)
}

// DeepCopy copies the receiver, creating a new DependencyTree.
func (in *DependencyTree) DeepCopy() *DependencyTree {
	if in == nil {
		return nil
	}
	out := new(DependencyTree)
	in.DeepCopyInto(out)
	return out
}

// DeepCopyObject copies the receiver, creating a new runtime.Object.
func (in *DependencyTree) DeepCopyObject() runtime.Object {
	if c := in.DeepCopy(); c != nil {
		return c
	}
	return nil
}

// DeepCopyInto copies the receiver, writing into out. in must be non-nil.
func (in *DependencyTreeSpec) DeepCopyInto(out *DependencyTreeSpec) {
	*out = *in
	out.Dependencies = copyDeclarations(in.Dependencies)
}

// DeepCopyInto copies the receiver, writing into out. in must be non-nil.
func (in *Declaration) DeepCopyInto(out *Declaration) {
	*out = *in
	out.Exclusions = in.Exclusions.DeepCopy()
	out.Dependencies = copyDeclarations(in.Dependencies)
}

func copyDeclarations(in []Declaration) []Declaration {
	if in == nil {
		return nil
	}
	out := make([]Declaration, len(in))
	for i := range in {
		in[i].DeepCopyInto(&out[i])
	}
	return out
}

// DeepCopy copies the receiver, creating new Exclusions.
func (in Exclusions) DeepCopy() Exclusions {
	if in == nil {
		return nil
	}
	out := make(Exclusions, len(in))
	copy(out, in)
	return out
}

// DeepCopyInto copies the receiver, writing into out. in must be non-nil.
func (in *DependencyGraph) DeepCopyInto(out *DependencyGraph) {
	*out = *in
	out.TypeMeta = in.TypeMeta
	in.ObjectMeta.DeepCopyInto(&out.ObjectMeta)
	in.Spec.DeepCopyInto(&out.Spec)
}

// DeepCopy copies the receiver, creating a new DependencyGraph.
func (in *DependencyGraph) DeepCopy() *DependencyGraph {
	if in == nil {
		return nil
	}
	out := new(DependencyGraph)
	in.DeepCopyInto(out)
	return out
}

// DeepCopyObject copies the receiver, creating a new runtime.Object.
func (in *DependencyGraph) DeepCopyObject() runtime.Object {
	if c := in.DeepCopy(); c != nil {
		return c
	}
	return nil
}

// DeepCopyInto copies the receiver, writing into out. in must be non-nil.
func (in *DependencyGraphSpec) DeepCopyInto(out *DependencyGraphSpec) {
	*out = *in
	if in.Vertices != nil {
		out.Vertices = make([]Coordinates, len(in.Vertices))
		copy(out.Vertices, in.Vertices)
	}
	if in.Edges != nil {
		out.Edges = make([]EdgeDeclaration, len(in.Edges))
		for i := range in.Edges {
			out.Edges[i] = in.Edges[i]
			out.Edges[i].Exclusions = in.Edges[i].Exclusions.DeepCopy()
		}
	}
}
