package component

import (
	"errors"
	"fmt"
	"reflect"
	"sync/atomic"
)

var (
	ErrEntityNotAlive       = errors.New("ecs: entity not alive")
	ErrNilComponent         = errors.New("ecs: component is nil")
	ErrInvalidComponentKind = errors.New("ecs: invalid component kind")
)

type ComponentID uint32

var nextComponentID atomic.Uint32

// Kind is the untyped view of a component kind, used by multi-kind queries.
type Kind interface {
	ID() ComponentID
}

// ComponentKind identifies storage for values of type T. Two kinds over the
// same T are distinct stores.
type ComponentKind[T any] struct {
	id   ComponentID
	name string
}

func NewComponentKind[T any]() ComponentKind[T] {
	return ComponentKind[T]{
		id:   ComponentID(nextComponentID.Add(1)),
		name: reflect.TypeFor[T]().String(),
	}
}

func (k ComponentKind[T]) ID() ComponentID { return k.id }
func (k ComponentKind[T]) Valid() bool     { return k.id != 0 }

// String names the kind by its value type and id, e.g. "component.Transform#3".
func (k ComponentKind[T]) String() string {
	if !k.Valid() {
		return "invalid"
	}
	return fmt.Sprintf("%s#%d", k.name, k.id)
}

// KindError ties a storage failure to the kind it happened on. It unwraps to
// one of the Err values above.
type KindError struct {
	Kind string
	Err  error
}

func (e *KindError) Error() string {
	return fmt.Sprintf("%s: %v", e.Kind, e.Err)
}

func (e *KindError) Unwrap() error {
	return e.Err
}

// ComponentHandle is the package-level declaration form:
//
//	var TransformComponent = NewComponent[Transform]()
type ComponentHandle[T any] struct {
	kind ComponentKind[T]
}

func NewComponent[T any]() ComponentHandle[T] {
	return ComponentHandle[T]{kind: NewComponentKind[T]()}
}

func (h ComponentHandle[T]) Kind() ComponentKind[T] {
	return h.kind
}
