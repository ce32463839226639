package vec

// Vec2Float представляет 2D координаты с плавающей точкой (UV, центры фигур)
type Vec2Float struct {
	X, Y float64
}

// Add складывает два вектора
func (v Vec2Float) Add(other Vec2Float) Vec2Float {
	return Vec2Float{X: v.X + other.X, Y: v.Y + other.Y}
}

// Scale умножает вектор на скаляр
func (v Vec2Float) Scale(s float64) Vec2Float {
	return Vec2Float{X: v.X * s, Y: v.Y * s}
}
