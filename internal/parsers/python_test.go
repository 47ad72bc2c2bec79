package parsers

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test Plan for PythonExtractor:
// - Extract standalone functions with parameters, defaults, and type hints
// - Build signatures including default values and return-type arrows
// - Detect async functions and generators
// - Attach decorators from decorated_definition wrappers
// - Hide underscore-prefixed names by default, show them on request
// - Keep magic names visible regardless of the private filter
// - Exclude methods from ExtractFunctions (they belong to their class)
// - Extract classes with base classification (parents, interfaces, mixins)
// - Mark abstract classes via ABC bases, ABCMeta, and abstractmethod
// - Extract class-body and constructor attributes, class body winning collisions
// - Detect staticmethod/classmethod/property decorators on methods
// - Track nested classes bidirectionally
// - Flag dataclasses
// - Extract docstrings at module, class, and function level
// - Report malformed input as a typed syntax error with a line number

func TestPythonExtractor_Functions(t *testing.T) {
	t.Parallel()

	source := `def add(a, b=2):
    """Add two numbers."""
    return a + b
`
	ext := NewPythonExtractor()
	fns, notes, err := ext.ExtractFunctions(source, DefaultOptions())

	require.NoError(t, err)
	assert.Empty(t, notes)
	require.Len(t, fns, 1)

	fn := fns[0]
	assert.Equal(t, "add", fn.Name)
	assert.Equal(t, "add(a, b=2)", fn.Signature)
	assert.Equal(t, 1, fn.LineStart)
	assert.Equal(t, 3, fn.LineEnd)
	assert.Equal(t, "public", string(fn.Visibility))

	require.Len(t, fn.Parameters, 2)
	assert.Equal(t, "a", fn.Parameters[0].Name)
	assert.False(t, fn.Parameters[0].HasDefault)
	assert.Equal(t, "b", fn.Parameters[1].Name)
	assert.True(t, fn.Parameters[1].HasDefault)
	assert.Equal(t, "2", fn.Parameters[1].Default)

	require.NotNil(t, fn.Docstring)
	assert.Equal(t, "Add two numbers.", fn.Docstring.Summary)

	require.NotNil(t, fn.Complexity)
	assert.Equal(t, 1, fn.Complexity.Cyclomatic)
	assert.Equal(t, 0, fn.Complexity.Cognitive)
	assert.Equal(t, 3, fn.Complexity.LinesOfCode)
}

func TestPythonExtractor_TypedSignature(t *testing.T) {
	t.Parallel()

	source := `def greet(name: str, times: int = 1) -> str:
    return name * times
`
	fns, _, err := NewPythonExtractor().ExtractFunctions(source, DefaultOptions())

	require.NoError(t, err)
	require.Len(t, fns, 1)

	fn := fns[0]
	assert.Equal(t, "greet(name: str, times: int = 1) -> str", fn.Signature)
	assert.Equal(t, "str", fn.ReturnType)
	require.Len(t, fn.Parameters, 2)
	assert.Equal(t, "str", fn.Parameters[0].Type)
	assert.Equal(t, "int", fn.Parameters[1].Type)
	assert.Equal(t, "1", fn.Parameters[1].Default)
}

func TestPythonExtractor_AsyncAndGenerator(t *testing.T) {
	t.Parallel()

	source := `async def fetch(url):
    return url


def numbers():
    yield 1
    yield 2
`
	fns, _, err := NewPythonExtractor().ExtractFunctions(source, DefaultOptions())

	require.NoError(t, err)
	require.Len(t, fns, 2)

	assert.Equal(t, "fetch", fns[0].Name)
	assert.True(t, fns[0].IsAsync)
	assert.False(t, fns[0].IsGenerator)

	assert.Equal(t, "numbers", fns[1].Name)
	assert.False(t, fns[1].IsAsync)
	assert.True(t, fns[1].IsGenerator)
}

func TestPythonExtractor_SplatParameters(t *testing.T) {
	t.Parallel()

	source := `def call(*args, **kwargs):
    pass
`
	fns, _, err := NewPythonExtractor().ExtractFunctions(source, DefaultOptions())

	require.NoError(t, err)
	require.Len(t, fns, 1)
	require.Len(t, fns[0].Parameters, 2)
	assert.Equal(t, "*args", fns[0].Parameters[0].Name)
	assert.Equal(t, "**kwargs", fns[0].Parameters[1].Name)
}

func TestPythonExtractor_PrivateFilter(t *testing.T) {
	t.Parallel()

	source := `def visible():
    pass


def _hidden():
    pass


def __very_hidden():
    pass
`
	ext := NewPythonExtractor()

	fns, _, err := ext.ExtractFunctions(source, DefaultOptions())
	require.NoError(t, err)
	require.Len(t, fns, 1)
	assert.Equal(t, "visible", fns[0].Name)

	opts := DefaultOptions()
	opts.IncludePrivate = true
	fns, _, err = ext.ExtractFunctions(source, opts)
	require.NoError(t, err)
	assert.Len(t, fns, 3)
	assert.Equal(t, "protected", string(fns[1].Visibility))
	assert.Equal(t, "private", string(fns[2].Visibility))
}

func TestPythonExtractor_Decorators(t *testing.T) {
	t.Parallel()

	source := `@lru_cache
@timed
def cached(x):
    return x
`
	fns, _, err := NewPythonExtractor().ExtractFunctions(source, DefaultOptions())

	require.NoError(t, err)
	require.Len(t, fns, 1)
	assert.Equal(t, []string{"lru_cache", "timed"}, fns[0].Decorators)
}

func TestPythonExtractor_MethodsExcludedFromFunctions(t *testing.T) {
	t.Parallel()

	source := `class Box:
    def open(self):
        pass


def standalone():
    pass
`
	fns, _, err := NewPythonExtractor().ExtractFunctions(source, DefaultOptions())

	require.NoError(t, err)
	require.Len(t, fns, 1)
	assert.Equal(t, "standalone", fns[0].Name)
}

func TestPythonExtractor_Classes(t *testing.T) {
	t.Parallel()

	source := `from abc import ABC, abstractmethod


class Animal(ABC):
    """Base animal."""

    kingdom = "Animalia"

    def __init__(self, name):
        self.name = name
        self._age = 0

    @abstractmethod
    def speak(self):
        ...

    @property
    def age(self):
        return self._age


class Dog(Animal):
    def speak(self):
        return "woof"


class JSONMixin:
    def to_json(self):
        return "{}"


class Serializer(Dog, JSONMixin):
    pass
`
	classes, notes, err := NewPythonExtractor().ExtractClasses(source, DefaultOptions())

	require.NoError(t, err)
	assert.Empty(t, notes)
	require.Len(t, classes, 4)

	animal := classes[0]
	assert.Equal(t, "Animal", animal.Name)
	assert.Equal(t, 4, animal.LineStart)
	assert.Equal(t, []string{"ABC"}, animal.Inheritance.Parents)
	assert.True(t, animal.IsAbstract)
	require.NotNil(t, animal.Docstring)
	assert.Equal(t, "Base animal.", animal.Docstring.Summary)

	// __init__ stays visible: magic names bypass the private filter
	require.Len(t, animal.Methods, 3)
	assert.Equal(t, "__init__", animal.Methods[0].Name)
	assert.Equal(t, "magic", string(animal.Methods[0].Visibility))
	assert.True(t, animal.Methods[1].IsAbstract)
	assert.True(t, animal.Methods[2].IsProperty)

	// receiver is dropped from method parameters
	require.Len(t, animal.Methods[0].Parameters, 1)
	assert.Equal(t, "name", animal.Methods[0].Parameters[0].Name)

	// class-body attribute first, then constructor self-assignments
	require.Len(t, animal.Attributes, 3)
	assert.Equal(t, "kingdom", animal.Attributes[0].Name)
	assert.True(t, animal.Attributes[0].IsClassVar)
	assert.Equal(t, "name", animal.Attributes[1].Name)
	assert.Equal(t, "_age", animal.Attributes[2].Name)
	assert.Equal(t, "protected", string(animal.Attributes[2].Visibility))

	dog := classes[1]
	assert.Equal(t, []string{"Animal"}, dog.Inheritance.Parents)
	assert.False(t, dog.IsAbstract)

	serializer := classes[3]
	assert.Equal(t, []string{"Dog"}, serializer.Inheritance.Parents)
	assert.Equal(t, []string{"JSONMixin"}, serializer.Inheritance.Mixins)
}

func TestPythonExtractor_InterfaceBases(t *testing.T) {
	t.Parallel()

	source := `class Reader(ReadableProtocol, Closeable):
    pass
`
	classes, _, err := NewPythonExtractor().ExtractClasses(source, DefaultOptions())

	require.NoError(t, err)
	require.Len(t, classes, 1)
	assert.Equal(t, []string{"ReadableProtocol"}, classes[0].Inheritance.Interfaces)
	assert.Equal(t, []string{"Closeable"}, classes[0].Inheritance.Parents)
}

func TestPythonExtractor_ABCMetaMarksAbstract(t *testing.T) {
	t.Parallel()

	source := `class Plugin(metaclass=ABCMeta):
    pass
`
	classes, _, err := NewPythonExtractor().ExtractClasses(source, DefaultOptions())

	require.NoError(t, err)
	require.Len(t, classes, 1)
	assert.True(t, classes[0].IsAbstract)
	assert.Empty(t, classes[0].Inheritance.Parents)
}

func TestPythonExtractor_StaticAndClassMethods(t *testing.T) {
	t.Parallel()

	source := `class Tools:
    @staticmethod
    def helper():
        pass

    @classmethod
    def create(cls):
        pass
`
	classes, _, err := NewPythonExtractor().ExtractClasses(source, DefaultOptions())

	require.NoError(t, err)
	require.Len(t, classes, 1)
	require.Len(t, classes[0].Methods, 2)

	assert.True(t, classes[0].Methods[0].IsStatic)
	assert.True(t, classes[0].Methods[1].IsClassMethod)
	assert.Empty(t, classes[0].Methods[1].Parameters, "cls receiver should be dropped")
}

func TestPythonExtractor_NestedClasses(t *testing.T) {
	t.Parallel()

	source := `class Outer:
    class Inner:
        pass
`
	classes, _, err := NewPythonExtractor().ExtractClasses(source, DefaultOptions())

	require.NoError(t, err)
	require.Len(t, classes, 2)

	assert.Equal(t, "Outer", classes[0].Name)
	assert.Equal(t, []string{"Inner"}, classes[0].NestedClasses)
	assert.Equal(t, "Inner", classes[1].Name)
	assert.Equal(t, "Outer", classes[1].ParentClass)
}

func TestPythonExtractor_Dataclass(t *testing.T) {
	t.Parallel()

	source := `from dataclasses import dataclass


@dataclass
class Point:
    x: int = 0
    y: int = 0
`
	classes, _, err := NewPythonExtractor().ExtractClasses(source, DefaultOptions())

	require.NoError(t, err)
	require.Len(t, classes, 1)

	point := classes[0]
	assert.True(t, point.IsDataclass)
	assert.Equal(t, []string{"dataclass"}, point.Decorators)
	require.Len(t, point.Attributes, 2)
	assert.Equal(t, "x", point.Attributes[0].Name)
	assert.Equal(t, "int", point.Attributes[0].Type)
	assert.True(t, point.Attributes[0].IsClassVar)
}

func TestPythonExtractor_Docstrings(t *testing.T) {
	t.Parallel()

	source := `"""Module for shapes."""


class Circle:
    """A circle."""

    def area(self):
        """Compute the area."""
        return 0


def describe():
    """Describe all shapes."""
    pass
`
	docs, err := NewPythonExtractor().ExtractDocstrings(source)

	require.NoError(t, err)
	require.Len(t, docs, 4)

	assert.Equal(t, "module", docs[0].Type)
	assert.Equal(t, "Module for shapes.", docs[0].Summary)

	byParent := map[string]string{}
	for _, d := range docs[1:] {
		byParent[d.Parent] = d.Type
	}
	assert.Equal(t, "class", byParent["Circle"])
	assert.Equal(t, "method", byParent["area"])
	assert.Equal(t, "function", byParent["describe"])
}

func TestPythonExtractor_SyntaxError(t *testing.T) {
	t.Parallel()

	source := `def broken(:
    pass
`
	ext := NewPythonExtractor()

	_, _, err := ext.ExtractFunctions(source, DefaultOptions())
	require.Error(t, err)

	var synErr *SyntaxError
	require.True(t, errors.As(err, &synErr))
	assert.GreaterOrEqual(t, synErr.Line, 1)
	assert.Contains(t, err.Error(), "syntax error at line")

	_, _, err = ext.ExtractClasses(source, DefaultOptions())
	assert.Error(t, err)
}

func TestPythonExtractor_Confidence(t *testing.T) {
	t.Parallel()

	ext := NewPythonExtractor()
	assert.Equal(t, ConfidenceFull, ext.Confidence())
	assert.Equal(t, "python", string(ext.Language()))
}
