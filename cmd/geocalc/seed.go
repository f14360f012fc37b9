package main

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/woozymasta/geocalc"
	"gopkg.in/yaml.v3"
)

// errSeedInput reports a value that cannot be decoded for the requested kind.
var errSeedInput = errors.New("seed: invalid value")

// decodeValue decodes a YAML or JSON document into a value of kind k.
// Accepted shapes are a scalar (number only), a sequence of components in
// constructor order, or a mapping with the component names of the kind,
// e.g. {x: 1, y: 2, z: 3} or {r: 1, g: 0, b: 0, a: 1}.
func decodeValue(k geocalc.Kind, text string) (geocalc.Value, error) {
	if k == geocalc.KindNone {
		return nil, fmt.Errorf("%w: a kind is required", errSeedInput)
	}

	var doc yaml.Node
	if err := yaml.Unmarshal([]byte(text), &doc); err != nil {
		return nil, fmt.Errorf("%w: %w", errSeedInput, err)
	}
	if doc.Kind != yaml.DocumentNode || len(doc.Content) != 1 {
		return nil, fmt.Errorf("%w: empty document", errSeedInput)
	}
	node := doc.Content[0]

	switch node.Kind {
	case yaml.ScalarNode:
		if k != geocalc.KindNumber {
			return nil, fmt.Errorf("%w: %s needs %d components", errSeedInput, k, k.Arity())
		}
		var f float64
		if err := node.Decode(&f); err != nil {
			return nil, fmt.Errorf("%w: %w", errSeedInput, err)
		}
		return geocalc.Number(f), nil

	case yaml.SequenceNode:
		var c []float64
		if err := node.Decode(&c); err != nil {
			return nil, fmt.Errorf("%w: %w", errSeedInput, err)
		}
		v, ok := geocalc.FromComponents(k, c)
		if !ok {
			return nil, fmt.Errorf("%w: %s needs %d components, got %d", errSeedInput, k, k.Arity(), len(c))
		}
		return v, nil

	case yaml.MappingNode:
		return decodeMapping(k, text)

	default:
		return nil, fmt.Errorf("%w: unsupported YAML node", errSeedInput)
	}
}

// decodeMapping decodes a component mapping, rejecting unknown keys.
func decodeMapping(k geocalc.Kind, text string) (geocalc.Value, error) {
	var target any
	switch k {
	case geocalc.KindVec2:
		target = &geocalc.Vec2{}
	case geocalc.KindVec3:
		target = &geocalc.Vec3{}
	case geocalc.KindVec4:
		target = &geocalc.Vec4{}
	case geocalc.KindColor:
		target = &geocalc.Color{}
	case geocalc.KindRotation:
		target = &geocalc.Rotation{}
	default:
		return nil, fmt.Errorf("%w: %s has no named components", errSeedInput, k)
	}

	dec := yaml.NewDecoder(bytes.NewReader([]byte(text)))
	dec.KnownFields(true)
	if err := dec.Decode(target); err != nil {
		return nil, fmt.Errorf("%w: %w", errSeedInput, err)
	}

	switch v := target.(type) {
	case *geocalc.Vec2:
		return *v, nil
	case *geocalc.Vec3:
		return *v, nil
	case *geocalc.Vec4:
		return *v, nil
	case *geocalc.Color:
		return *v, nil
	default:
		return *target.(*geocalc.Rotation), nil
	}
}
