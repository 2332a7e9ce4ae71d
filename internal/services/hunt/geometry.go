package hunt

import (
	"math"

	"github.com/shadowhunt/shadowhunt-go/internal/model"
)

// Camera projection constants matching the scene the clients render: a
// perspective camera fixed at the origin inside a 600-radius panorama
// sphere.
const (
	cameraFOVDegrees = 75.0
	defaultAspect    = 16.0 / 9.0
	latClampDegrees  = 85.0
)

type vec3 struct {
	X, Y, Z float64
}

func (v vec3) add(o vec3) vec3      { return vec3{v.X + o.X, v.Y + o.Y, v.Z + o.Z} }
func (v vec3) sub(o vec3) vec3      { return vec3{v.X - o.X, v.Y - o.Y, v.Z - o.Z} }
func (v vec3) scale(s float64) vec3 { return vec3{v.X * s, v.Y * s, v.Z * s} }
func (v vec3) dot(o vec3) float64   { return v.X*o.X + v.Y*o.Y + v.Z*o.Z }

func (v vec3) cross(o vec3) vec3 {
	return vec3{
		v.Y*o.Z - v.Z*o.Y,
		v.Z*o.X - v.X*o.Z,
		v.X*o.Y - v.Y*o.X,
	}
}

func (v vec3) length() float64 { return math.Sqrt(v.dot(v)) }

func (v vec3) normalize() vec3 {
	l := v.length()
	if l == 0 {
		return v
	}
	return v.scale(1 / l)
}

// mat3 is a row-major 3x3 matrix
type mat3 [9]float64

func (m mat3) mulVec(v vec3) vec3 {
	return vec3{
		m[0]*v.X + m[1]*v.Y + m[2]*v.Z,
		m[3]*v.X + m[4]*v.Y + m[5]*v.Z,
		m[6]*v.X + m[7]*v.Y + m[8]*v.Z,
	}
}

func (m mat3) transpose() mat3 {
	return mat3{
		m[0], m[3], m[6],
		m[1], m[4], m[7],
		m[2], m[5], m[8],
	}
}

// rotationXYZ builds the rotation matrix for intrinsic X-then-Y-then-Z
// Euler angles, the same composition the clients' scene graph uses.
func rotationXYZ(r model.Vec3) mat3 {
	cx, sx := math.Cos(r.X), math.Sin(r.X)
	cy, sy := math.Cos(r.Y), math.Sin(r.Y)
	cz, sz := math.Cos(r.Z), math.Sin(r.Z)

	return mat3{
		cy * cz, -cy * sz, sy,
		cx*sz + sx*sy*cz, cx*cz - sx*sy*sz, -sx * cy,
		sx*sz - cx*sy*cz, sx*cz + cx*sy*sz, cx * cy,
	}
}

// lookDirection converts the camera's lon/lat degrees into a forward
// vector, using the panorama convention: lon sweeps around Y, lat tilts
// toward the poles.
func lookDirection(cam model.Camera) vec3 {
	phi := degToRad(90 - cam.Lat)
	theta := degToRad(cam.Lon)
	return vec3{
		math.Sin(phi) * math.Cos(theta),
		math.Cos(phi),
		math.Sin(phi) * math.Sin(theta),
	}
}

func degToRad(d float64) float64 { return d * math.Pi / 180 }

// clampLat keeps the camera from flipping over the poles
func clampLat(lat float64) float64 {
	return math.Max(-latClampDegrees, math.Min(latClampDegrees, lat))
}

// pointerRay builds the world-space ray through a normalized device
// coordinate (x, y in [-1, 1], y up) for the given camera orientation.
// The camera sits at the origin, so the ray's origin is implicit.
func pointerRay(cam model.Camera, ndcX, ndcY, aspect float64) vec3 {
	if aspect <= 0 {
		aspect = defaultAspect
	}
	forward := lookDirection(cam)

	worldUp := vec3{0, 1, 0}
	right := forward.cross(worldUp).normalize()
	up := right.cross(forward)

	tanHalf := math.Tan(degToRad(cameraFOVDegrees) / 2)
	dir := forward.
		add(right.scale(ndcX * tanHalf * aspect)).
		add(up.scale(ndcY * tanHalf))
	return dir.normalize()
}

// intersectItem tests a ray from the origin against an item's textured
// plane. Returns the ray parameter (world distance for a unit direction)
// and whether the ray passes inside the plane's bounds.
func intersectItem(item *model.SceneItem, dir vec3) (float64, bool) {
	rot := rotationXYZ(item.Rotation)
	inv := rot.transpose()

	// Ray into the plane's local frame: unrotate, then unscale
	origin := inv.mulVec(vec3{-item.Position.X, -item.Position.Y, -item.Position.Z})
	local := inv.mulVec(dir)
	if item.Scale.X == 0 || item.Scale.Y == 0 || item.Scale.Z == 0 {
		return 0, false
	}
	origin = vec3{origin.X / item.Scale.X, origin.Y / item.Scale.Y, origin.Z / item.Scale.Z}
	local = vec3{local.X / item.Scale.X, local.Y / item.Scale.Y, local.Z / item.Scale.Z}

	if math.Abs(local.Z) < 1e-12 {
		return 0, false
	}
	t := -origin.Z / local.Z
	if t <= 0 {
		return 0, false
	}

	hit := origin.add(local.scale(t))
	if math.Abs(hit.X) > item.Width/2 || math.Abs(hit.Y) > item.Height/2 {
		return 0, false
	}
	return t, true
}

// hitTest casts a pointer ray against the given items and returns the
// nearest hit's index, front to back. ok is false when nothing is struck.
func hitTest(items []*model.SceneItem, cam model.Camera, ndcX, ndcY, aspect float64) (int, bool) {
	dir := pointerRay(cam, ndcX, ndcY, aspect)

	best := -1
	bestT := math.Inf(1)
	for i, item := range items {
		if t, ok := intersectItem(item, dir); ok && t < bestT {
			best = i
			bestT = t
		}
	}
	return best, best >= 0
}
