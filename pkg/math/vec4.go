package math

// Vec4 is a 4-component vector. Colors are stored as RGBA Vec4 values.
type Vec4 [4]float32

// RGBA builds a color vector.
func RGBA(r, g, b, a float32) Vec4 {
	return Vec4{r, g, b, a}
}

// XYZ drops the w component.
func (v Vec4) XYZ() Vec3 {
	return Vec3{v[0], v[1], v[2]}
}
