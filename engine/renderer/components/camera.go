package components

import (
	"github.com/Precipitator80/CS4102-Practical-1/engine/algebra"
	"github.com/Precipitator80/CS4102-Practical-1/engine/math"
)

/**
 * @brief Represents an orbiting camera. The camera is first moved Distance
 * along +Z, then rotated by Pitch about X and finally by Yaw about Y, so its
 * world transform is Ry·Rx·Tc and the view matrix is the inverse of that.
 */
type Camera struct {
	/**
	 * @brief Rotation about the X axis in radians.
	 * NOTE: Do not set this directly, use SetPitch() instead
	 * so the view matrix is recalculated when needed.
	 */
	Pitch float64
	/** @brief Rotation about the Y axis in radians. */
	Yaw float64
	/** @brief Dolly distance along +Z before rotating. */
	Distance float64
	/** @brief Internal flag used to determine when the matrices need to be rebuilt. */
	IsDirty bool
	/**
	 * @brief The world transform of this camera.
	 * NOTE: IMPORTANT: Do not get this directly, use GetWorld() instead.
	 */
	WorldMatrix math.Mat4
	ViewMatrix  math.Mat4
}

// CameraSymbols names the unknowns of the symbolic camera.
type CameraSymbols struct {
	Pitch    *algebra.Symbol
	Yaw      *algebra.Symbol
	Distance *algebra.Symbol
}

func NewCamera(pitch, yaw, distance float64) *Camera {
	camera := &Camera{}
	camera.Reset()
	camera.SetPitch(pitch)
	camera.SetYaw(yaw)
	camera.SetDistance(distance)
	return camera
}

func (c *Camera) Reset() {
	c.Pitch = 0
	c.Yaw = 0
	c.Distance = 0
	c.IsDirty = false
	c.WorldMatrix = math.NewMat4Identity()
	c.ViewMatrix = math.NewMat4Identity()
}

// SetPitch accepts any angle; Ry·Rx·Tc stays invertible past the poles.
func (c *Camera) SetPitch(pitch float64) {
	c.Pitch = pitch
	c.IsDirty = true
}

func (c *Camera) SetYaw(yaw float64) {
	c.Yaw = yaw
	c.IsDirty = true
}

func (c *Camera) SetDistance(distance float64) {
	c.Distance = distance
	c.IsDirty = true
}

func (c *Camera) rebuild() error {
	if !c.IsDirty {
		return nil
	}
	rotation := math.NewMat4EulerY(c.Yaw).Mul(math.NewMat4EulerX(c.Pitch))
	translation := math.NewMat4Translation(math.NewVec3(0, 0, c.Distance))
	world := rotation.Mul(translation)
	view, err := world.Inverse()
	if err != nil {
		return err
	}
	c.WorldMatrix = world
	c.ViewMatrix = view
	c.IsDirty = false
	return nil
}

// GetWorld returns Ryx·Tc.
func (c *Camera) GetWorld() (math.Mat4, error) {
	if err := c.rebuild(); err != nil {
		return math.Mat4{}, err
	}
	return c.WorldMatrix, nil
}

// GetView returns the inverse of the world transform.
func (c *Camera) GetView() (math.Mat4, error) {
	if err := c.rebuild(); err != nil {
		return math.Mat4{}, err
	}
	return c.ViewMatrix, nil
}

// Position is where the camera sits in world space.
func (c *Camera) Position() (math.Vec3, error) {
	world, err := c.GetWorld()
	if err != nil {
		return math.Vec3{}, err
	}
	return math.NewVec3Zero().Transform(world), nil
}

// Bindings binds the symbolic camera unknowns to this camera's values.
func (c *Camera) Bindings(s CameraSymbols) algebra.Bindings {
	return algebra.Bindings{
		s.Pitch.Name:    c.Pitch,
		s.Yaw.Name:      c.Yaw,
		s.Distance.Name: c.Distance,
	}
}

// SymbolicRotation returns Ryc·Rxc over the camera symbols.
func SymbolicRotation(s CameraSymbols) *algebra.Matrix {
	return algebra.RotationY(s.Yaw).Mul(algebra.RotationX(s.Pitch))
}

// SymbolicWorld returns Ryc·Rxc·Tc over the camera symbols.
func SymbolicWorld(s CameraSymbols) *algebra.Matrix {
	zero := algebra.N(0)
	return SymbolicRotation(s).Mul(algebra.Translation(zero, zero, s.Distance))
}
