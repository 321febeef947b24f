package v1alpha1

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"k8s.io/apimachinery/pkg/runtime"
)

func TestAddToScheme(t *testing.T) {
	scheme := runtime.NewScheme()
	require.NoError(t, AddToScheme(scheme))

	obj, err := scheme.New(GroupVersion.WithKind(KindDependencyTree))
	require.NoError(t, err)
	assert.IsType(t, &DependencyTree{}, obj)

	obj, err = scheme.New(GroupVersion.WithKind(KindDependencyGraph))
	require.NoError(t, err)
	assert.IsType(t, &DependencyGraph{}, obj)
}

func TestDependencyTree_DeepCopy(t *testing.T) {
	in := &DependencyTree{
		Spec: DependencyTreeSpec{
			Root: Coordinates{Group: "g", Name: "app", Version: "1"},
			Dependencies: []Declaration{{
				Coordinates: Coordinates{Group: "g", Name: "web", Version: "2"},
				Exclusions:  Exclusions{"g:log"},
				Dependencies: []Declaration{
					{Coordinates: Coordinates{Group: "g", Name: "json", Version: "1"}},
				},
			}},
		},
	}
	out := in.DeepCopy()
	require.Equal(t, in, out)

	out.Spec.Dependencies[0].Exclusions[0] = "g:other"
	out.Spec.Dependencies[0].Dependencies[0].Version = "9"
	assert.Equal(t, "g:log", in.Spec.Dependencies[0].Exclusions[0])
	assert.Equal(t, "1", in.Spec.Dependencies[0].Dependencies[0].Version)
}

func TestDependencyGraph_DeepCopy(t *testing.T) {
	in := &DependencyGraph{
		Spec: DependencyGraphSpec{
			Entry:    "g:app",
			Vertices: []Coordinates{{Group: "g", Name: "app", Version: "1"}},
			Edges:    []EdgeDeclaration{{Source: "g:app", Target: "g:app", Version: "1", Hop: 1, Exclusions: Exclusions{"*:*"}}},
		},
	}
	out, ok := in.DeepCopyObject().(*DependencyGraph)
	require.True(t, ok)
	require.Equal(t, in, out)

	out.Spec.Vertices[0].Version = "2"
	out.Spec.Edges[0].Exclusions[0] = "g:x"
	assert.Equal(t, "1", in.Spec.Vertices[0].Version)
	assert.Equal(t, "*:*", in.Spec.Edges[0].Exclusions[0])

	var nilGraph *DependencyGraph
	assert.Nil(t, nilGraph.DeepCopy())
}
