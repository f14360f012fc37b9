package geocalc

// Coerce converts v to the target kind, for callers that store a result into
// a field of a fixed type. KindNone and the value's own kind return v as is.
//
// Supported conversions follow the implicit vector casts of common engines:
// vectors widen with zero components and narrow by dropping trailing ones,
// Vec4 and Color convert channel for channel, and Vec3 becomes an opaque
// Color. Everything else fails with KindTypeMismatch.
func Coerce(v Value, target Kind) (Value, error) {
	from := v.Kind()
	if target == KindNone || target == from {
		return v, nil
	}

	switch {
	case from.IsVector() && target.IsVector():
		c := Components(v)
		out := make([]float64, target.Arity())
		copy(out, c)
		res, _ := FromComponents(target, out)
		return res, nil

	case from == KindVec4 && target == KindColor:
		x := v.(Vec4)
		return SetColorRGBA(x.X, x.Y, x.Z, x.W), nil

	case from == KindColor && target == KindVec4:
		return v.(Color).Vec4(), nil

	case from == KindVec3 && target == KindColor:
		x := v.(Vec3)
		return SetColorRGB(x.X, x.Y, x.Z), nil
	}

	return nil, newError(KindTypeMismatch, -1, "cannot convert %s to %s", from, target)
}
