package geo

import "math"

// EarthRadiusKm средний радиус Земли в километрах
const EarthRadiusKm = 6371.0

// Point географическая точка в градусах
type Point struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Distance возвращает расстояние по большому кругу между точками в километрах (формула гаверсинусов)
func Distance(a, b Point) float64 {
	dLat := toRad(b.Latitude - a.Latitude)
	dLon := toRad(b.Longitude - a.Longitude)

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(toRad(a.Latitude))*math.Cos(toRad(b.Latitude))*
			math.Sin(dLon/2)*math.Sin(dLon/2)

	// Для почти антиподальных точек h может чуть выйти за [0, 1] из-за погрешности
	h = math.Min(1, math.Max(0, h))

	return EarthRadiusKm * 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
}

// IsWithinRadius проверяет, что расстояние между точками не превышает radiusKm
func IsWithinRadius(a, b Point, radiusKm float64) bool {
	return Distance(a, b) <= radiusKm
}

func toRad(deg float64) float64 {
	return deg * math.Pi / 180
}
