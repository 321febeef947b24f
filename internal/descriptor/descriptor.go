// Package descriptor reads declaration documents (DependencyTree and
// DependencyGraph, YAML or JSON) into an unresolved graph.
package descriptor

import (
	"errors"
	"fmt"
	"io"
	"os"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/runtime"
	"k8s.io/apimachinery/pkg/runtime/schema"
	utilruntime "k8s.io/apimachinery/pkg/util/runtime"
	"sigs.k8s.io/yaml"

	depv1alpha1 "github.com/bayleafwalker/depgraph/api/v1alpha1"
	"github.com/bayleafwalker/depgraph/internal/graph"
)

var (
	// ErrUnsupportedKind is returned for documents whose apiVersion and kind
	// are not a registered declaration type.
	ErrUnsupportedKind = errors.New("descriptor: unsupported kind")
	// ErrInvalidDocument wraps every validation and conversion failure of a
	// well-formed document.
	ErrInvalidDocument = errors.New("descriptor: invalid document")
)

var (
	scheme   = runtime.NewScheme()
	validate = newValidator()
)

func init() {
	utilruntime.Must(depv1alpha1.AddToScheme(scheme))
}

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			return f.Name
		}
		return name
	})
	return v
}

// Load reads and decodes the document at path.
func Load(path string) (*graph.Graph, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("descriptor: read %s: %w", path, err)
	}
	g, err := Decode(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return g, nil
}

// Read decodes a document from r.
func Read(r io.Reader) (*graph.Graph, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("descriptor: read: %w", err)
	}
	return Decode(data)
}

// Decode parses a YAML or JSON document, validates it, and builds the raw
// graph it declares. Unknown fields are rejected.
func Decode(data []byte) (*graph.Graph, error) {
	obj, err := decodeObject(data)
	if err != nil {
		return nil, err
	}
	switch doc := obj.(type) {
	case *depv1alpha1.DependencyTree:
		return FromDependencyTree(doc)
	case *depv1alpha1.DependencyGraph:
		return FromDependencyGraph(doc)
	default:
		return nil, fmt.Errorf("%w: %T", ErrUnsupportedKind, obj)
	}
}

func decodeObject(data []byte) (runtime.Object, error) {
	var meta metav1.TypeMeta
	if err := yaml.Unmarshal(data, &meta); err != nil {
		return nil, fmt.Errorf("descriptor: parse: %w", err)
	}
	gvk := schema.FromAPIVersionAndKind(meta.APIVersion, meta.Kind)
	obj, err := scheme.New(gvk)
	if err != nil {
		if runtime.IsNotRegisteredError(err) {
			return nil, fmt.Errorf("%w: apiVersion=%q kind=%q", ErrUnsupportedKind, meta.APIVersion, meta.Kind)
		}
		return nil, err
	}
	if err := yaml.UnmarshalStrict(data, obj); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrInvalidDocument, gvk.Kind, err)
	}
	return obj, nil
}

// structErrors flattens validator output into one error per field.
func structErrors(s any) []error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return []error{err}
	}
	out := make([]error, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		out = append(out, fmt.Errorf("%s: failed %q validation", fieldPath(fe.Namespace()), fe.Tag()))
	}
	return out
}

// fieldPath drops the leading Go type name from a validator namespace.
func fieldPath(ns string) string {
	if i := strings.IndexByte(ns, '.'); i >= 0 {
		return "spec." + ns[i+1:]
	}
	return ns
}
